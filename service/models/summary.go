/*
 * @module service/models/summary
 * @description 聚合输出模型：州级汇总、月度序列、支付方式展开、品类排行、时效×评分、RFM汇总
 * @architecture DDD领域驱动设计 - 值对象
 * @documentReference dev_docs/model.md
 * @stateFlow 过滤后订单视图 -> 聚合器 -> 汇总表 -> 展示层/CSV导出
 * @rules 汇总表是纯函数输出，空输入产生空表而非错误；均值类字段在计数为0时取0
 * @dependencies 无
 * @refs service/analysis
 */

package models

// StateSummary 州级汇总：去重订单数、支付总额、客单价，默认按客单价降序
type StateSummary struct {
	State     string  `json:"customer_state"`
	Orders    int     `json:"orders"`
	Revenue   float64 `json:"revenue"`
	AvgTicket float64 `json:"avg_ticket"`
	HasCoords bool    `json:"has_coords"` // 是否有州质心坐标（用于地图渲染）
	Lat       float64 `json:"lat,omitempty"`
	Lon       float64 `json:"lon,omitempty"`
}

// MonthlySummary 月度汇总，Month为"YYYY-MM"格式的购买自然月
type MonthlySummary struct {
	Month     string  `json:"year_month"`
	Orders    int     `json:"orders"`
	Revenue   float64 `json:"revenue"`
	AvgTicket float64 `json:"avg_ticket"`
}

// MonthlyPaymentRevenue 月度×支付方式的展开记录
// 订单按其使用的每种支付方式各计一次全额，表示"可归因于该支付渠道的营收"，
// 刻意的反规范化，不是互斥的订单营收
type MonthlyPaymentRevenue struct {
	Month       string  `json:"year_month"`
	PaymentType string  `json:"payment_type"`
	Revenue     float64 `json:"revenue"`
}

// CategorySummary 品类排行：条目营收合计与去重订单数
type CategorySummary struct {
	Category string  `json:"product_category_name"`
	Revenue  float64 `json:"revenue"`
	Orders   int     `json:"orders"`
}

// 品类排行的排序指标
const (
	CategoryMetricRevenue = "revenue"
	CategoryMetricOrders  = "orders"
)

// ReviewDelaySummary 按评分分组的交付时效汇总
// DelayDays为实际送达与预计送达的天数差，正值表示迟到
type ReviewDelaySummary struct {
	Score     float64 `json:"review_score"`
	Count     int     `json:"count"`
	MeanDelay float64 `json:"mean_delay_days"`
	LatePct   float64 `json:"late_pct"`
}

// SegmentCount RFM分群计数
type SegmentCount struct {
	Segment string `json:"segment"`
	Count   int    `json:"count"`
}

// RFMSummary RFM透传汇总：分群计数 + 按Monetary排序的Top-N原始行
type RFMSummary struct {
	SegmentCounts []SegmentCount      `json:"segment_counts"`
	TopByMonetary []map[string]string `json:"top_by_monetary"`
}

// OverviewKPI 看板头部指标
type OverviewKPI struct {
	Orders        int      `json:"orders"`
	Revenue       float64  `json:"revenue"`
	RevenueText   string   `json:"revenue_text"`
	AvgTicket     float64  `json:"avg_ticket"`
	AvgTicketText string   `json:"avg_ticket_text"`
	OnTimePct     *float64 `json:"on_time_pct"` // 无可评估订单时为nil
}

// FilterMeta 过滤控件元数据：数据时间跨度、可选州、可选支付方式
type FilterMeta struct {
	MinPurchaseDate *string  `json:"min_purchase_date"` // YYYY-MM-DD，无数据时为nil
	MaxPurchaseDate *string  `json:"max_purchase_date"`
	States          []string `json:"states"`
	PaymentTypes    []string `json:"payment_types"`
}
