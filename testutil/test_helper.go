/*
 * @module testutil/test_helper
 * @description 测试工具和辅助函数：CSV数据工厂、订单记录工厂与HTTP断言工具
 * @architecture 测试基础设施 - 提供测试通用工具和数据工厂
 * @documentReference dev_docs/test_plan.md
 * @stateFlow 测试环境初始化 -> 测试数据创建 -> 测试执行 -> 清理资源
 * @rules 提供可重用的测试工具，确保测试环境的一致性
 * @dependencies testify, uuid, encoding/csv
 * @refs service/models
 */

package testutil

import (
	"encoding/csv"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"marketing-dashboard-service/service/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// CSVFixture CSV测试数据工厂，文件写入临时目录，测试结束自动清理
type CSVFixture struct {
	t   *testing.T
	dir string
}

// NewCSVFixture 创建CSV测试数据工厂
func NewCSVFixture(t *testing.T) *CSVFixture {
	return &CSVFixture{t: t, dir: t.TempDir()}
}

// Dir 临时目录路径
func (f *CSVFixture) Dir() string {
	return f.dir
}

// WriteCSV 写出一个CSV文件并返回路径
func (f *CSVFixture) WriteCSV(name string, headers []string, rows [][]string) string {
	path := filepath.Join(f.dir, name)
	file, err := os.Create(path)
	require.NoError(f.t, err, "failed to create fixture file")

	w := csv.NewWriter(file)
	require.NoError(f.t, w.Write(headers))
	for _, row := range rows {
		require.NoError(f.t, w.Write(row))
	}
	w.Flush()
	require.NoError(f.t, w.Error())
	require.NoError(f.t, file.Close())
	return path
}

// WriteOrders 写出订单表，列布局与Olist源文件一致
func (f *CSVFixture) WriteOrders(rows [][]string) string {
	return f.WriteCSV("olist_orders_dataset.csv", []string{
		"order_id", "customer_id", "order_status",
		"order_purchase_timestamp", "order_approved_at",
		"order_delivered_carrier_date", "order_delivered_customer_date",
		"order_estimated_delivery_date",
	}, rows)
}

// WritePayments 写出支付表
func (f *CSVFixture) WritePayments(rows [][]string) string {
	return f.WriteCSV("olist_order_payments_dataset.csv", []string{
		"order_id", "payment_sequential", "payment_type",
		"payment_installments", "payment_value",
	}, rows)
}

// WriteCustomers 写出客户表
func (f *CSVFixture) WriteCustomers(rows [][]string) string {
	return f.WriteCSV("olist_customers_dataset.csv", []string{
		"customer_id", "customer_unique_id", "customer_zip_code_prefix",
		"customer_city", "customer_state",
	}, rows)
}

// WriteItems 写出订单条目表
func (f *CSVFixture) WriteItems(rows [][]string) string {
	return f.WriteCSV("olist_order_items_dataset.csv", []string{
		"order_id", "order_item_id", "product_id", "seller_id",
		"shipping_limit_date", "price", "freight_value",
	}, rows)
}

// WriteProducts 写出商品表
func (f *CSVFixture) WriteProducts(rows [][]string) string {
	return f.WriteCSV("olist_products_dataset.csv", []string{
		"product_id", "product_category_name",
	}, rows)
}

// WriteReviews 写出评价表
func (f *CSVFixture) WriteReviews(rows [][]string) string {
	return f.WriteCSV("olist_order_reviews_dataset.csv", []string{
		"review_id", "order_id", "review_score", "review_creation_date",
	}, rows)
}

// WriteRFM 写出外部RFM分群表
func (f *CSVFixture) WriteRFM(headers []string, rows [][]string) string {
	return f.WriteCSV("rfm_table.csv", headers, rows)
}

// MustParseTime 解析测试时间戳，失败直接终止测试
func MustParseTime(t *testing.T, value string) time.Time {
	ts, err := time.Parse("2006-01-02 15:04:05", value)
	require.NoError(t, err, "invalid test timestamp")
	return ts
}

// TimePtr 时间指针辅助
func TimePtr(ts time.Time) *time.Time {
	return &ts
}

// FloatPtr 数值指针辅助
func FloatPtr(v float64) *float64 {
	return &v
}

// OrderRecordOption 订单记录选项函数类型
type OrderRecordOption func(*models.OrderRecord)

// NewOrderRecord 创建测试订单记录，默认为SP州、单笔credit_card支付
func NewOrderRecord(opts ...OrderRecordOption) models.OrderRecord {
	value := 100.0
	purchase := time.Date(2017, 5, 1, 10, 0, 0, 0, time.UTC)
	record := models.OrderRecord{
		OrderID:           generateID("o"),
		CustomerID:        generateID("c"),
		CustomerUniqueID:  generateID("cu"),
		CustomerCity:      "sao paulo",
		CustomerState:     "SP",
		PurchaseTimestamp: &purchase,
		PaymentValue:      &value,
		PaymentTypes:      []string{"credit_card"},
	}

	for _, opt := range opts {
		opt(&record)
	}
	return record
}

// WithOrderID 指定订单ID
func WithOrderID(id string) OrderRecordOption {
	return func(o *models.OrderRecord) { o.OrderID = id }
}

// WithState 指定客户州
func WithState(state string) OrderRecordOption {
	return func(o *models.OrderRecord) { o.CustomerState = state }
}

// WithPayment 指定支付总额与支付方式
func WithPayment(value float64, types ...string) OrderRecordOption {
	return func(o *models.OrderRecord) {
		o.PaymentValue = &value
		o.PaymentTypes = types
	}
}

// WithoutPayment 模拟支付记录缺失
func WithoutPayment() OrderRecordOption {
	return func(o *models.OrderRecord) {
		o.PaymentValue = nil
		o.PaymentTypes = nil
	}
}

// WithPurchaseAt 指定购买时间
func WithPurchaseAt(ts time.Time) OrderRecordOption {
	return func(o *models.OrderRecord) { o.PurchaseTimestamp = &ts }
}

// WithoutPurchaseTime 模拟购买时间缺失
func WithoutPurchaseTime() OrderRecordOption {
	return func(o *models.OrderRecord) { o.PurchaseTimestamp = nil }
}

// WithDelivery 指定实际与预计送达时间
func WithDelivery(actual, estimated time.Time) OrderRecordOption {
	return func(o *models.OrderRecord) {
		o.DeliveredCustomerDate = &actual
		o.EstimatedDeliveryDate = &estimated
	}
}

// Envelope 统一API响应信封的测试侧镜像
type Envelope struct {
	Status int             `json:"status"`
	Msg    string          `json:"msg"`
	Data   json.RawMessage `json:"data"`
}

// DecodeEnvelope 解析响应信封
func DecodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "response is not a valid envelope")
	return env
}

// 辅助函数
func generateID(prefix string) string {
	return prefix + "_" + uuid.New().String()[:8]
}
