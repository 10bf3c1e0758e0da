/*
 * @module service/analysis/filter
 * @description 过滤引擎：对订单视图施加条件谓词，并在其结果上做离群值剔除
 * @architecture 分层架构 - 分析层
 * @documentReference dev_docs/model.md
 * @stateFlow 完整订单视图 + 过滤条件 -> 谓词过滤 -> 离群值剔除 -> 过滤后视图
 * @rules
 *   - 四个谓词纯AND组合，求值顺序无关
 *   - 离群值边界必须基于条件过滤后的总体计算，因此剔除是第二阶段而非谓词
 *   - 支付金额缺失的行无法被判为离群值，始终保留
 * @dependencies service/dataset, service/models, service/utils
 * @refs service/analysis/service.go
 */

package analysis

import (
	"time"

	"marketing-dashboard-service/service/dataset"
	"marketing-dashboard-service/service/models"
	"marketing-dashboard-service/service/utils"
)

// ApplyCriteria 条件谓词过滤，产出新的派生视图，不修改输入
func ApplyCriteria(view dataset.OrderView, criteria models.FilterCriteria) dataset.OrderView {
	states := toSet(criteria.States)
	ptypes := toSet(criteria.PaymentTypes)

	filtered := make(dataset.OrderView, 0, len(view))
	for i := range view {
		o := &view[i]
		if !inDateRange(o.PurchaseTimestamp, criteria.StartDate, criteria.EndDate) {
			continue
		}
		// 空集合表示不限制（界面默认全选）
		if len(states) > 0 && !states[o.CustomerState] {
			continue
		}
		if o.PaymentValueOrZero() < criteria.MinTicket {
			continue
		}
		if len(ptypes) > 0 && !intersects(o.PaymentTypes, ptypes) {
			continue
		}
		filtered = append(filtered, *o)
	}
	return filtered
}

// TrimOutliers 基于payment_value分布剔除离群行
// 注意IQR方法并非幂等：第二次应用时Q1/Q3基于已剔除的总体重新计算，
// 结果可能进一步收缩，但绝不会扩大
func TrimOutliers(view dataset.OrderView, method string, p float64) dataset.OrderView {
	values := make([]float64, 0, len(view))
	for i := range view {
		if view[i].PaymentValue != nil {
			values = append(values, *view[i].PaymentValue)
		}
	}
	if len(values) == 0 {
		return view
	}

	var low, high float64
	if method == models.OutlierMethodPercentile {
		if p <= 0 || p >= 1 {
			p = 0.99
		}
		low = utils.Quantile(values, 1-p)
		high = utils.Quantile(values, p)
	} else {
		q1 := utils.Quantile(values, 0.25)
		q3 := utils.Quantile(values, 0.75)
		iqr := q3 - q1
		low = q1 - 1.5*iqr
		high = q3 + 1.5*iqr
	}

	trimmed := make(dataset.OrderView, 0, len(view))
	for i := range view {
		o := &view[i]
		if o.PaymentValue == nil {
			trimmed = append(trimmed, *o)
			continue
		}
		if v := *o.PaymentValue; v >= low && v <= high {
			trimmed = append(trimmed, *o)
		}
	}
	return trimmed
}

// FilterOrders 完整两阶段过滤：谓词 -> 可选离群值剔除
func FilterOrders(view dataset.OrderView, criteria models.FilterCriteria) dataset.OrderView {
	filtered := ApplyCriteria(view, criteria)
	if criteria.RemoveOutliers {
		filtered = TrimOutliers(filtered, criteria.OutlierMethod, criteria.Percentile)
	}
	return filtered
}

// inDateRange 购买时间是否落在[start, end]闭区间内
// 两侧均不设界时缺失时间戳也放行；任一侧设界时缺失时间戳无法落入区间，判否
func inDateRange(ts *time.Time, start, end time.Time) bool {
	if start.IsZero() && end.IsZero() {
		return true
	}
	if ts == nil {
		return false
	}
	if !start.IsZero() && ts.Before(start) {
		return false
	}
	if !end.IsZero() && ts.After(end) {
		return false
	}
	return true
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		if v != "" {
			set[v] = true
		}
	}
	return set
}

func intersects(values []string, set map[string]bool) bool {
	for _, v := range values {
		if set[v] {
			return true
		}
	}
	return false
}
