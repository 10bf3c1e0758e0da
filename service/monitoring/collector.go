/*
 * @module service/monitoring/collector
 * @description 管线指标收集：数据集加载次数、缓存失效次数、过滤重算次数
 * @architecture 分层架构 - 监控层
 * @documentReference dev_docs/model.md
 * @stateFlow 管线事件 -> 计数器递增 -> promhttp暴露
 * @rules 指标注册在包初始化时完成一次，计数器只增不减
 * @dependencies github.com/prometheus/client_golang
 * @refs main.go
 */

package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// DatasetLoads 数据集快照重建次数
	DatasetLoads = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_dataset_loads_total",
		Help: "数据集快照重建总次数",
	})

	// CacheInvalidations 源文件变化触发的缓存失效次数
	CacheInvalidations = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_cache_invalidations_total",
		Help: "加载缓存失效总次数",
	})

	// FilterRuns 过滤管线执行次数
	FilterRuns = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_filter_runs_total",
		Help: "过滤管线执行总次数",
	})
)

func init() {
	prometheus.MustRegister(DatasetLoads, CacheInvalidations, FilterRuns)
}
