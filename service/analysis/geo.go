/*
 * @module service/analysis/geo
 * @description 巴西各州（UF）近似质心坐标，用于州级汇总的地图渲染
 * @architecture 静态元数据
 * @documentReference dev_docs/model.md
 * @stateFlow 无状态查表
 * @rules 未知州码查不到坐标，汇总行HasCoords为false，地图层自行跳过
 * @dependencies 无
 * @refs service/analysis/aggregator.go
 */

package analysis

// ufCentroid 州质心坐标
type ufCentroid struct {
	Lat float64
	Lon float64
}

// ufCentroids 27个联邦单位的近似质心
var ufCentroids = map[string]ufCentroid{
	"AC": {-9.0238, -70.8120},
	"AL": {-9.5713, -36.7820},
	"AM": {-3.4168, -65.8561},
	"AP": {0.9016, -52.0023},
	"BA": {-12.5797, -41.7007},
	"CE": {-5.3265, -39.7150},
	"DF": {-15.7998, -47.8645},
	"ES": {-19.1834, -40.3089},
	"GO": {-15.8270, -49.8362},
	"MA": {-5.1187, -45.1070},
	"MG": {-18.5122, -44.5550},
	"MS": {-20.7722, -54.7852},
	"MT": {-12.6819, -55.6370},
	"PA": {-2.1970, -52.0048},
	"PB": {-7.1219, -36.7247},
	"PE": {-8.8137, -36.9541},
	"PI": {-7.7183, -42.7289},
	"PR": {-24.4842, -51.8149},
	"RJ": {-22.2763, -42.4194},
	"RN": {-5.7842, -36.6296},
	"RO": {-10.9340, -62.8278},
	"RR": {1.9981, -61.3266},
	"RS": {-30.0346, -53.0925},
	"SC": {-27.2423, -50.2189},
	"SE": {-10.5741, -37.3857},
	"SP": {-22.3510, -48.4942},
	"TO": {-10.1753, -48.2982},
}
