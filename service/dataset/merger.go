/*
 * @module service/dataset/merger
 * @description 合并器：将订单+支付+客户合并为订单视图，将条目+商品合并为条目视图
 * @architecture 分层架构 - 数据集构建层
 * @documentReference dev_docs/model.md
 * @stateFlow 规范化表 -> 左连接 -> 不可变视图
 * @rules
 *   - 订单视图基数等于订单表基数：支付/客户未匹配不丢行
 *   - 支付按订单聚合：金额求和、支付方式去重收集（保留首见顺序）
 *   - 条目视图基数等于条目表基数：商品未匹配时品类为nil
 * @dependencies service/models
 * @refs service/loader, service/analysis
 */

package dataset

import (
	"marketing-dashboard-service/service/models"
)

// OrderView 订单视图：每订单一行的反规范化表
type OrderView []models.OrderRecord

// ItemView 条目视图：每条目一行的反规范化表
type ItemView []models.ItemRecord

// paymentAgg 单订单的支付聚合结果
type paymentAgg struct {
	total float64
	types []string
	seen  map[string]bool
}

// BuildOrderView 构建订单视图
// orders LEFT JOIN (payments按order_id聚合) LEFT JOIN customers选定列
func BuildOrderView(orders []models.OrderRow, payments []models.PaymentRow, customers []models.CustomerRow) OrderView {
	aggs := make(map[string]*paymentAgg)
	for _, p := range payments {
		agg, ok := aggs[p.OrderID]
		if !ok {
			agg = &paymentAgg{seen: make(map[string]bool)}
			aggs[p.OrderID] = agg
		}
		agg.total += p.PaymentValue
		if p.PaymentType != "" && !agg.seen[p.PaymentType] {
			agg.seen[p.PaymentType] = true
			agg.types = append(agg.types, p.PaymentType)
		}
	}

	customerByID := make(map[string]models.CustomerRow, len(customers))
	for _, c := range customers {
		if _, ok := customerByID[c.CustomerID]; !ok {
			customerByID[c.CustomerID] = c
		}
	}

	view := make(OrderView, 0, len(orders))
	for _, o := range orders {
		rec := models.OrderRecord{
			OrderID:               o.OrderID,
			CustomerID:            o.CustomerID,
			PurchaseTimestamp:     o.PurchaseTimestamp,
			ApprovedAt:            o.ApprovedAt,
			DeliveredCarrierDate:  o.DeliveredCarrierDate,
			DeliveredCustomerDate: o.DeliveredCustomerDate,
			EstimatedDeliveryDate: o.EstimatedDeliveryDate,
		}
		if agg, ok := aggs[o.OrderID]; ok {
			total := agg.total
			rec.PaymentValue = &total
			rec.PaymentTypes = agg.types
		}
		if c, ok := customerByID[o.CustomerID]; ok {
			rec.CustomerUniqueID = c.CustomerUniqueID
			rec.CustomerCity = c.CustomerCity
			rec.CustomerState = c.CustomerState
		}
		view = append(view, rec)
	}
	return view
}

// BuildItemView 构建条目视图
// items LEFT JOIN products，并计算条目营收 = 价格 + 运费
func BuildItemView(items []models.ItemRow, products []models.ProductRow) ItemView {
	categoryByProduct := make(map[string]string, len(products))
	for _, p := range products {
		if _, ok := categoryByProduct[p.ProductID]; !ok {
			categoryByProduct[p.ProductID] = p.CategoryName
		}
	}

	view := make(ItemView, 0, len(items))
	for _, it := range items {
		rec := models.ItemRecord{
			OrderID:      it.OrderID,
			ProductID:    it.ProductID,
			Price:        it.Price,
			FreightValue: it.FreightValue,
			Revenue:      it.Price + it.FreightValue,
		}
		if category, ok := categoryByProduct[it.ProductID]; ok && category != "" {
			c := category
			rec.Category = &c
		}
		view = append(view, rec)
	}
	return view
}
