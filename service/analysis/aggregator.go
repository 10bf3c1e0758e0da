/*
 * @module service/analysis/aggregator
 * @description 聚合器族：州级汇总、月度序列、支付方式展开、品类排行、时效×评分、RFM透传、头部KPI
 * @architecture 分层架构 - 分析层
 * @documentReference dev_docs/model.md
 * @stateFlow 过滤后订单视图(+辅助视图) -> 分组聚合 -> 汇总表
 * @rules
 *   - 每个聚合器是纯函数，空输入产出空表，不产生错误
 *   - 均值类指标计数为0时取0，不出现除零与NaN
 *   - 各聚合器彼此独立，单个数据源缺失不影响其余聚合器
 * @dependencies service/dataset, service/models, service/utils, github.com/spf13/cast
 * @refs api/controllers
 */

package analysis

import (
	"sort"

	"marketing-dashboard-service/service/dataset"
	"marketing-dashboard-service/service/models"
	"marketing-dashboard-service/service/utils"

	"github.com/spf13/cast"
)

// SummarizeByState 按客户州分组：去重订单数、支付总额、客单价
// 展示默认按客单价降序，同值按州码升序保证输出稳定
func SummarizeByState(view dataset.OrderView) []models.StateSummary {
	type bucket struct {
		orders  map[string]bool
		revenue float64
	}
	buckets := make(map[string]*bucket)
	for i := range view {
		o := &view[i]
		b, ok := buckets[o.CustomerState]
		if !ok {
			b = &bucket{orders: make(map[string]bool)}
			buckets[o.CustomerState] = b
		}
		b.orders[o.OrderID] = true
		b.revenue += o.PaymentValueOrZero()
	}

	summaries := make([]models.StateSummary, 0, len(buckets))
	for state, b := range buckets {
		s := models.StateSummary{
			State:     state,
			Orders:    len(b.orders),
			Revenue:   b.revenue,
			AvgTicket: utils.SafeDiv(b.revenue, float64(len(b.orders))),
		}
		if c, ok := ufCentroids[state]; ok {
			s.HasCoords = true
			s.Lat = c.Lat
			s.Lon = c.Lon
		}
		summaries = append(summaries, s)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].AvgTicket != summaries[j].AvgTicket {
			return summaries[i].AvgTicket > summaries[j].AvgTicket
		}
		return summaries[i].State < summaries[j].State
	})
	return summaries
}

// SummarizeByMonth 按购买自然月分组的时间序列，升序排列
// 购买时间缺失的订单无法归入任何月份，不参与本聚合
func SummarizeByMonth(view dataset.OrderView) []models.MonthlySummary {
	type bucket struct {
		orders  map[string]bool
		revenue float64
	}
	buckets := make(map[string]*bucket)
	for i := range view {
		o := &view[i]
		if o.PurchaseTimestamp == nil {
			continue
		}
		key := utils.MonthKey(*o.PurchaseTimestamp)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{orders: make(map[string]bool)}
			buckets[key] = b
		}
		b.orders[o.OrderID] = true
		b.revenue += o.PaymentValueOrZero()
	}

	summaries := make([]models.MonthlySummary, 0, len(buckets))
	for month, b := range buckets {
		summaries = append(summaries, models.MonthlySummary{
			Month:     month,
			Orders:    len(b.orders),
			Revenue:   b.revenue,
			AvgTicket: utils.SafeDiv(b.revenue, float64(len(b.orders))),
		})
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Month < summaries[j].Month })
	return summaries
}

// BreakdownMonthlyPayments 月度×支付方式展开
// 每个订单按其使用的每种支付方式各计一次全额——表示可归因于该渠道的营收，
// 跨渠道求和必然 ≥ 未展开的月度营收
func BreakdownMonthlyPayments(view dataset.OrderView) []models.MonthlyPaymentRevenue {
	type key struct {
		month string
		ptype string
	}
	revenue := make(map[key]float64)
	for i := range view {
		o := &view[i]
		if o.PurchaseTimestamp == nil {
			continue
		}
		month := utils.MonthKey(*o.PurchaseTimestamp)
		for _, pt := range o.PaymentTypes {
			revenue[key{month: month, ptype: pt}] += o.PaymentValueOrZero()
		}
	}

	rows := make([]models.MonthlyPaymentRevenue, 0, len(revenue))
	for k, v := range revenue {
		rows = append(rows, models.MonthlyPaymentRevenue{Month: k.month, PaymentType: k.ptype, Revenue: v})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Month != rows[j].Month {
			return rows[i].Month < rows[j].Month
		}
		return rows[i].PaymentType < rows[j].PaymentType
	})
	return rows
}

// RankCategories 品类排行：条目视图内连接过滤后订单的id集合，按品类汇总
// 商品未匹配（品类缺失）的条目没有分组键，不参与排行
// topN<=0 表示不截断；metric取revenue或orders
func RankCategories(view dataset.OrderView, items dataset.ItemView, topN int, metric string) []models.CategorySummary {
	keep := make(map[string]bool, len(view))
	for i := range view {
		keep[view[i].OrderID] = true
	}

	type bucket struct {
		orders  map[string]bool
		revenue float64
	}
	buckets := make(map[string]*bucket)
	for i := range items {
		it := &items[i]
		if !keep[it.OrderID] || it.Category == nil {
			continue
		}
		b, ok := buckets[*it.Category]
		if !ok {
			b = &bucket{orders: make(map[string]bool)}
			buckets[*it.Category] = b
		}
		b.orders[it.OrderID] = true
		b.revenue += it.Revenue
	}

	summaries := make([]models.CategorySummary, 0, len(buckets))
	for category, b := range buckets {
		summaries = append(summaries, models.CategorySummary{
			Category: category,
			Revenue:  b.revenue,
			Orders:   len(b.orders),
		})
	}

	byOrders := metric == models.CategoryMetricOrders
	sort.Slice(summaries, func(i, j int) bool {
		if byOrders {
			if summaries[i].Orders != summaries[j].Orders {
				return summaries[i].Orders > summaries[j].Orders
			}
		} else if summaries[i].Revenue != summaries[j].Revenue {
			return summaries[i].Revenue > summaries[j].Revenue
		}
		return summaries[i].Category < summaries[j].Category
	})

	if topN > 0 && len(summaries) > topN {
		summaries = summaries[:topN]
	}
	return summaries
}

// CorrelateDelayReviews 交付时效×评分：仅统计实际与预计送达时间齐全的订单，
// 左连接评价分值后按分值分组（分值缺失的行丢弃），计算数量、平均延迟天数与迟到占比
func CorrelateDelayReviews(view dataset.OrderView, reviews []models.ReviewRecord) []models.ReviewDelaySummary {
	scoreByOrder := make(map[string]*float64, len(reviews))
	for i := range reviews {
		scoreByOrder[reviews[i].OrderID] = reviews[i].Score
	}

	type bucket struct {
		count    int
		sumDelay float64
		late     int
	}
	buckets := make(map[float64]*bucket)
	for i := range view {
		o := &view[i]
		if o.DeliveredCustomerDate == nil || o.EstimatedDeliveryDate == nil {
			continue
		}
		score, ok := scoreByOrder[o.OrderID]
		if !ok || score == nil {
			continue
		}
		delay := utils.WholeDays(*o.DeliveredCustomerDate, *o.EstimatedDeliveryDate)
		b, exists := buckets[*score]
		if !exists {
			b = &bucket{}
			buckets[*score] = b
		}
		b.count++
		b.sumDelay += float64(delay)
		if delay > 0 {
			b.late++
		}
	}

	summaries := make([]models.ReviewDelaySummary, 0, len(buckets))
	for score, b := range buckets {
		summaries = append(summaries, models.ReviewDelaySummary{
			Score:     score,
			Count:     b.count,
			MeanDelay: utils.SafeDiv(b.sumDelay, float64(b.count)),
			LatePct:   utils.SafeDiv(float64(b.late), float64(b.count)) * 100,
		})
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Score < summaries[j].Score })
	return summaries
}

// OverviewKPIs 头部指标：去重订单数、营收、客单价、按时送达占比
// 按时送达仅统计实际与预计送达时间齐全的订单，无可统计订单时为nil
func OverviewKPIs(view dataset.OrderView) models.OverviewKPI {
	orders := make(map[string]bool, len(view))
	var revenue float64
	var delivered, onTime int
	for i := range view {
		o := &view[i]
		orders[o.OrderID] = true
		revenue += o.PaymentValueOrZero()
		if o.DeliveredCustomerDate != nil && o.EstimatedDeliveryDate != nil {
			delivered++
			if !o.EstimatedDeliveryDate.Before(*o.DeliveredCustomerDate) {
				onTime++
			}
		}
	}

	kpi := models.OverviewKPI{
		Orders:    len(orders),
		Revenue:   revenue,
		AvgTicket: utils.SafeDiv(revenue, float64(len(orders))),
	}
	kpi.RevenueText = utils.FormatBRL(kpi.Revenue)
	kpi.AvgTicketText = utils.FormatBRL(kpi.AvgTicket)
	if delivered > 0 {
		pct := float64(onTime) / float64(delivered) * 100
		kpi.OnTimePct = &pct
	}
	return kpi
}

// SummarizeRFM RFM透传汇总：Segment列分群计数 + 按Monetary降序的Top-N原始行
// 表结构对本服务不透明，列缺失时对应部分为空，不报错
func SummarizeRFM(rfm *models.RFMTable, topN int) models.RFMSummary {
	summary := models.RFMSummary{
		SegmentCounts: []models.SegmentCount{},
		TopByMonetary: []map[string]string{},
	}
	if rfm == nil {
		return summary
	}
	if topN <= 0 {
		topN = 15
	}

	if rfm.HasColumn("Segment") {
		counts := make(map[string]int)
		for _, row := range rfm.Rows {
			counts[row["Segment"]]++
		}
		for segment, count := range counts {
			summary.SegmentCounts = append(summary.SegmentCounts, models.SegmentCount{Segment: segment, Count: count})
		}
		sort.Slice(summary.SegmentCounts, func(i, j int) bool {
			if summary.SegmentCounts[i].Count != summary.SegmentCounts[j].Count {
				return summary.SegmentCounts[i].Count > summary.SegmentCounts[j].Count
			}
			return summary.SegmentCounts[i].Segment < summary.SegmentCounts[j].Segment
		})
	}

	rows := make([]map[string]string, len(rfm.Rows))
	copy(rows, rfm.Rows)
	if rfm.HasColumn("Monetary") {
		sort.SliceStable(rows, func(i, j int) bool {
			return cast.ToFloat64(rows[i]["Monetary"]) > cast.ToFloat64(rows[j]["Monetary"])
		})
	}
	if len(rows) > topN {
		rows = rows[:topN]
	}
	summary.TopByMonetary = rows
	return summary
}
