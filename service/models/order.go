/*
 * @module service/models/order
 * @description 订单分析核心实体模型，包括原始表行、订单视图、条目视图、评价与RFM记录
 * @architecture DDD领域驱动设计 - 实体模型
 * @documentReference dev_docs/model.md
 * @stateFlow 原始CSV行 -> 加载器规范化 -> 合并器构建视图 -> 过滤与聚合
 * @rules 视图记录一经构建不可变，缺失字段用指针nil表示，不得用哨兵数值
 * @dependencies time
 * @refs service/loader, service/dataset
 */

package models

import "time"

// OrderRow 订单原始行，时间戳已由加载器规范化（解析失败为nil）
type OrderRow struct {
	OrderID               string     `json:"order_id"`
	CustomerID            string     `json:"customer_id"`
	PurchaseTimestamp     *time.Time `json:"order_purchase_timestamp"`
	ApprovedAt            *time.Time `json:"order_approved_at"`
	DeliveredCarrierDate  *time.Time `json:"order_delivered_carrier_date"`
	DeliveredCustomerDate *time.Time `json:"order_delivered_customer_date"`
	EstimatedDeliveryDate *time.Time `json:"order_estimated_delivery_date"`
}

// PaymentRow 支付原始行，同一订单可能存在多行（分期/多种支付方式）
type PaymentRow struct {
	OrderID      string  `json:"order_id"`
	PaymentType  string  `json:"payment_type"`
	PaymentValue float64 `json:"payment_value"`
}

// CustomerRow 客户原始行，仅保留订单视图需要的列
type CustomerRow struct {
	CustomerID       string `json:"customer_id"`
	CustomerUniqueID string `json:"customer_unique_id"`
	CustomerCity     string `json:"customer_city"`
	CustomerState    string `json:"customer_state"`
}

// ItemRow 订单条目原始行，主键为(order_id, 序号)
type ItemRow struct {
	OrderID      string  `json:"order_id"`
	ProductID    string  `json:"product_id"`
	Price        float64 `json:"price"`
	FreightValue float64 `json:"freight_value"`
}

// ProductRow 商品原始行
type ProductRow struct {
	ProductID    string `json:"product_id"`
	CategoryName string `json:"product_category_name"`
}

// OrderRecord 订单视图记录：orders LEFT JOIN 聚合后的payments LEFT JOIN customers
// 每个order_id唯一一行；支付缺失时PaymentValue为nil、PaymentTypes为空集，行不丢弃
type OrderRecord struct {
	OrderID               string     `json:"order_id"`
	CustomerID            string     `json:"customer_id"`
	PurchaseTimestamp     *time.Time `json:"order_purchase_timestamp"`
	ApprovedAt            *time.Time `json:"order_approved_at"`
	DeliveredCarrierDate  *time.Time `json:"order_delivered_carrier_date"`
	DeliveredCustomerDate *time.Time `json:"order_delivered_customer_date"`
	EstimatedDeliveryDate *time.Time `json:"order_estimated_delivery_date"`
	PaymentValue          *float64   `json:"payment_value"`
	PaymentTypes          []string   `json:"payment_types"`
	CustomerUniqueID      string     `json:"customer_unique_id"`
	CustomerCity          string     `json:"customer_city"`
	CustomerState         string     `json:"customer_state"`
}

// PaymentValueOrZero 支付总额，缺失按0处理
func (o *OrderRecord) PaymentValueOrZero() float64 {
	if o.PaymentValue == nil {
		return 0
	}
	return *o.PaymentValue
}

// ItemRecord 条目视图记录：items LEFT JOIN products
// 商品未匹配时Category为nil，行不丢弃；Revenue = Price + FreightValue（缺失按0）
type ItemRecord struct {
	OrderID      string  `json:"order_id"`
	ProductID    string  `json:"product_id"`
	Price        float64 `json:"price"`
	FreightValue float64 `json:"freight_value"`
	Revenue      float64 `json:"revenue_item"`
	Category     *string `json:"product_category_name"`
}

// ReviewRecord 评价记录，每个订单至多一条（加载器按创建日期保留最新）
// 分值为1-5的数值，非法输入规范化为nil
type ReviewRecord struct {
	OrderID      string     `json:"order_id"`
	Score        *float64   `json:"review_score"`
	CreationDate *time.Time `json:"review_creation_date"`
}

// RFMTable 外部预计算的RFM分群表，对本服务整体不透明，按原样透传
// Headers保留源文件列顺序，Rows按列名取值
type RFMTable struct {
	Headers []string            `json:"headers"`
	Rows    []map[string]string `json:"rows"`
}

// HasColumn 判断RFM表是否包含指定列
func (t *RFMTable) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// 离群值剔除方法
const (
	OutlierMethodIQR        = "iqr"
	OutlierMethodPercentile = "percentile"
)

// FilterCriteria 一次交互的过滤条件
// States/PaymentTypes为空集表示"不限制"而非"全部排除"：界面默认全选，
// 空集提交视作全选
type FilterCriteria struct {
	StartDate      time.Time `json:"start_date"`      // 零值表示该侧不设界
	EndDate        time.Time `json:"end_date"`        // 零值表示该侧不设界，含当日
	States         []string  `json:"states"`          // 允许的客户州（UF）集合
	PaymentTypes   []string  `json:"payment_types"`   // 允许的支付方式集合
	MinTicket      float64   `json:"min_ticket"`      // 订单最低支付总额
	RemoveOutliers bool      `json:"remove_outliers"` // 是否剔除payment_value离群值
	OutlierMethod  string    `json:"outlier_method"`  // iqr 或 percentile
	Percentile     float64   `json:"percentile"`      // percentile方法的p值，默认0.99
}
