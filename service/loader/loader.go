/*
 * @module service/loader/loader
 * @description CSV数据源加载器，负责读取原始表格文件、按列名定位字段并做类型规范化
 * @architecture 分层架构 - 数据接入层
 * @documentReference dev_docs/model.md
 * @stateFlow 文件读取 -> 表头定位 -> 逐行规范化 -> 规范化表输出
 * @rules
 *   - 文件缺失或不可读返回ErrSourceUnavailable，属于"功能禁用"而非致命错误
 *   - 无法解析的时间戳规范化为nil，非法评分规范化为nil，行保留
 *   - 金额字段解析失败按0计，缺失分量不向下游传播
 *   - 加载器不做过滤、不做跨表连接
 * @dependencies encoding/csv, github.com/spf13/cast
 * @refs service/dataset, service/models
 */

package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"marketing-dashboard-service/service/models"
	"marketing-dashboard-service/service/utils"

	"github.com/spf13/cast"
)

// ErrSourceUnavailable 数据源不可用（文件缺失或不可读）
var ErrSourceUnavailable = errors.New("数据源不可用")

// table 读入内存的原始表：原始表头、表头索引 + 行
type table struct {
	headers []string
	index   map[string]int
	rows    [][]string
}

// cell 按列名取单元格，列不存在或行过短时返回空串
func (t *table) cell(row []string, column string) string {
	idx, ok := t.index[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// readTable 读取带表头的CSV文件
func readTable(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开数据源文件 %s 失败: %w", path, ErrSourceUnavailable)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("读取数据源表头 %s 失败: %w", path, ErrSourceUnavailable)
	}

	// 重复列名时索引指向最后一列
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[h] = i
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("读取数据源行 %s 失败: %w", path, ErrSourceUnavailable)
		}
		rows = append(rows, record)
	}

	return &table{headers: headers, index: index, rows: rows}, nil
}

// parseMoney 金额字段解析，失败按0计
func parseMoney(value string) float64 {
	v, err := cast.ToFloat64E(value)
	if err != nil {
		return 0
	}
	return v
}

// parseScore 评分字段解析，非法输入规范化为nil
func parseScore(value string) *float64 {
	v, err := cast.ToFloat64E(value)
	if err != nil {
		return nil
	}
	return &v
}

// parseOrders 订单表规范化
func parseOrders(t *table) []models.OrderRow {
	rows := make([]models.OrderRow, 0, len(t.rows))
	for _, r := range t.rows {
		rows = append(rows, models.OrderRow{
			OrderID:               t.cell(r, "order_id"),
			CustomerID:            t.cell(r, "customer_id"),
			PurchaseTimestamp:     utils.ParseTimestamp(t.cell(r, "order_purchase_timestamp")),
			ApprovedAt:            utils.ParseTimestamp(t.cell(r, "order_approved_at")),
			DeliveredCarrierDate:  utils.ParseTimestamp(t.cell(r, "order_delivered_carrier_date")),
			DeliveredCustomerDate: utils.ParseTimestamp(t.cell(r, "order_delivered_customer_date")),
			EstimatedDeliveryDate: utils.ParseTimestamp(t.cell(r, "order_estimated_delivery_date")),
		})
	}
	return rows
}

// parsePayments 支付表规范化
func parsePayments(t *table) []models.PaymentRow {
	rows := make([]models.PaymentRow, 0, len(t.rows))
	for _, r := range t.rows {
		rows = append(rows, models.PaymentRow{
			OrderID:      t.cell(r, "order_id"),
			PaymentType:  t.cell(r, "payment_type"),
			PaymentValue: parseMoney(t.cell(r, "payment_value")),
		})
	}
	return rows
}

// parseCustomers 客户表规范化，仅保留视图所需列
func parseCustomers(t *table) []models.CustomerRow {
	rows := make([]models.CustomerRow, 0, len(t.rows))
	for _, r := range t.rows {
		rows = append(rows, models.CustomerRow{
			CustomerID:       t.cell(r, "customer_id"),
			CustomerUniqueID: t.cell(r, "customer_unique_id"),
			CustomerCity:     t.cell(r, "customer_city"),
			CustomerState:    t.cell(r, "customer_state"),
		})
	}
	return rows
}

// parseItems 订单条目表规范化
func parseItems(t *table) []models.ItemRow {
	rows := make([]models.ItemRow, 0, len(t.rows))
	for _, r := range t.rows {
		rows = append(rows, models.ItemRow{
			OrderID:      t.cell(r, "order_id"),
			ProductID:    t.cell(r, "product_id"),
			Price:        parseMoney(t.cell(r, "price")),
			FreightValue: parseMoney(t.cell(r, "freight_value")),
		})
	}
	return rows
}

// parseProducts 商品表规范化
func parseProducts(t *table) []models.ProductRow {
	rows := make([]models.ProductRow, 0, len(t.rows))
	for _, r := range t.rows {
		rows = append(rows, models.ProductRow{
			ProductID:    t.cell(r, "product_id"),
			CategoryName: t.cell(r, "product_category_name"),
		})
	}
	return rows
}

// parseReviews 评价表规范化并按订单去重
// 源数据假定每订单一条评价；出现重复时保留创建日期最新的一条（无日期的让位于有日期的），
// 避免下游时效×评分聚合的订单数被连接扇出
func parseReviews(t *table) []models.ReviewRecord {
	latest := make(map[string]models.ReviewRecord, len(t.rows))
	order := make([]string, 0, len(t.rows))

	for _, r := range t.rows {
		rec := models.ReviewRecord{
			OrderID:      t.cell(r, "order_id"),
			Score:        parseScore(t.cell(r, "review_score")),
			CreationDate: utils.ParseTimestamp(t.cell(r, "review_creation_date")),
		}
		existing, seen := latest[rec.OrderID]
		if !seen {
			latest[rec.OrderID] = rec
			order = append(order, rec.OrderID)
			continue
		}
		if newerReview(rec, existing) {
			latest[rec.OrderID] = rec
		}
	}

	rows := make([]models.ReviewRecord, 0, len(order))
	for _, id := range order {
		rows = append(rows, latest[id])
	}
	return rows
}

// newerReview 候选评价是否应替换已有评价
func newerReview(candidate, existing models.ReviewRecord) bool {
	if candidate.CreationDate == nil {
		return false
	}
	if existing.CreationDate == nil {
		return true
	}
	return candidate.CreationDate.After(*existing.CreationDate)
}

// parseRFM RFM表按原样透传，保留原始列顺序
// 外部文件可能带重复列名，同名列按取值时的索引规则取最后一列
func parseRFM(t *table) *models.RFMTable {
	headers := append([]string(nil), t.headers...)

	rows := make([]map[string]string, 0, len(t.rows))
	for _, r := range t.rows {
		row := make(map[string]string, len(headers))
		for _, h := range headers {
			row[h] = t.cell(r, h)
		}
		rows = append(rows, row)
	}

	return &models.RFMTable{Headers: headers, Rows: rows}
}
