/*
 * @module api/controllers/export_controller
 * @description 导出控制器：将过滤后视图与各聚合汇总导出为CSV下载
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/model.md
 * @stateFlow 解析过滤条件 -> 分析服务产出数据 -> CSV流式写出
 * @rules
 *   - 导出与看板共用同一套过滤参数，所见即所得
 *   - 数值单元格整数值不带小数尾巴，时间戳输出"2006-01-02 15:04:05"
 * @dependencies net/http, encoding/csv, service/analysis, github.com/google/uuid
 * @refs api/routes.go
 */

package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"time"

	"marketing-dashboard-service/service/analysis"
	"marketing-dashboard-service/service/models"
	"marketing-dashboard-service/service/utils"

	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/spf13/cast"
)

// ExportController 导出控制器
type ExportController struct {
	service *analysis.Service
}

// NewExportController 创建导出控制器实例
func NewExportController(service *analysis.Service) *ExportController {
	return &ExportController{service: service}
}

// writeCSV 设置下载头并写出CSV内容，文件名带短随机后缀避免浏览器缓存冲突
func writeCSV(w http.ResponseWriter, prefix string, headers []string, rows [][]string) {
	filename := fmt.Sprintf("%s_%s.csv", prefix, uuid.New().String()[:8])
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)

	cw := csv.NewWriter(w)
	_ = cw.Write(headers)
	for _, row := range rows {
		_ = cw.Write(row)
	}
	cw.Flush()
}

// formatTimeCell 时间戳转CSV单元格，缺失输出空串
func formatTimeCell(ts *time.Time) string {
	if ts == nil {
		return ""
	}
	return ts.Format("2006-01-02 15:04:05")
}

// ExportOrders 导出过滤后订单明细
// @Summary 导出过滤后订单明细
// @Description 按当前过滤条件导出订单视图CSV
// @Tags 导出
// @Produce text/csv
// @Success 200 {string} string "CSV内容"
// @Failure 400 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /export/orders [get]
func (c *ExportController) ExportOrders(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r)
	if err != nil {
		render.JSON(w, r, BadRequestResponse("过滤参数解析失败", err))
		return
	}

	view, err := c.service.FilteredOrders(criteria)
	if err != nil {
		render.JSON(w, r, renderServiceError("导出订单失败", err))
		return
	}

	headers := []string{
		"order_id", "customer_id", "customer_unique_id", "customer_state", "customer_city",
		"order_purchase_timestamp", "order_delivered_customer_date", "order_estimated_delivery_date",
		"payment_value", "payment_types",
	}
	rows := make([][]string, 0, len(view))
	for i := range view {
		o := &view[i]
		paymentValue := ""
		if o.PaymentValue != nil {
			paymentValue = utils.FormatFloatCell(*o.PaymentValue)
		}
		rows = append(rows, []string{
			o.OrderID, o.CustomerID, o.CustomerUniqueID, o.CustomerState, o.CustomerCity,
			formatTimeCell(o.PurchaseTimestamp),
			formatTimeCell(o.DeliveredCustomerDate),
			formatTimeCell(o.EstimatedDeliveryDate),
			paymentValue,
			strings.Join(o.PaymentTypes, "|"),
		})
	}
	writeCSV(w, "orders", headers, rows)
}

// ExportItems 导出条目明细
// @Summary 导出条目明细
// @Description 导出条目视图CSV（条目/商品数据源缺失时功能禁用）
// @Tags 导出
// @Produce text/csv
// @Success 200 {string} string "CSV内容"
// @Failure 404 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /export/items [get]
func (c *ExportController) ExportItems(w http.ResponseWriter, r *http.Request) {
	view, err := c.service.ItemView()
	if err != nil {
		render.JSON(w, r, renderServiceError("导出条目失败", err))
		return
	}

	headers := []string{"order_id", "product_id", "product_category_name", "price", "freight_value", "revenue_item"}
	rows := make([][]string, 0, len(view))
	for i := range view {
		it := &view[i]
		category := ""
		if it.Category != nil {
			category = *it.Category
		}
		rows = append(rows, []string{
			it.OrderID, it.ProductID, category,
			utils.FormatFloatCell(it.Price),
			utils.FormatFloatCell(it.FreightValue),
			utils.FormatFloatCell(it.Revenue),
		})
	}
	writeCSV(w, "items", headers, rows)
}

// ExportStates 导出州级汇总
// @Summary 导出州级汇总
// @Tags 导出
// @Produce text/csv
// @Success 200 {string} string "CSV内容"
// @Failure 400 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /export/states [get]
func (c *ExportController) ExportStates(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r)
	if err != nil {
		render.JSON(w, r, BadRequestResponse("过滤参数解析失败", err))
		return
	}

	summaries, err := c.service.States(criteria)
	if err != nil {
		render.JSON(w, r, renderServiceError("导出州级汇总失败", err))
		return
	}

	headers := []string{"customer_state", "orders", "revenue", "avg_ticket"}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.State,
			utils.FormatFloatCell(float64(s.Orders)),
			utils.FormatFloatCell(s.Revenue),
			utils.FormatFloatCell(s.AvgTicket),
		})
	}
	writeCSV(w, "states", headers, rows)
}

// ExportMonthly 导出月度序列
// @Summary 导出月度序列
// @Tags 导出
// @Produce text/csv
// @Success 200 {string} string "CSV内容"
// @Failure 400 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /export/monthly [get]
func (c *ExportController) ExportMonthly(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r)
	if err != nil {
		render.JSON(w, r, BadRequestResponse("过滤参数解析失败", err))
		return
	}

	summaries, err := c.service.Monthly(criteria)
	if err != nil {
		render.JSON(w, r, renderServiceError("导出月度序列失败", err))
		return
	}

	headers := []string{"year_month", "orders", "revenue", "avg_ticket"}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Month,
			utils.FormatFloatCell(float64(s.Orders)),
			utils.FormatFloatCell(s.Revenue),
			utils.FormatFloatCell(s.AvgTicket),
		})
	}
	writeCSV(w, "monthly", headers, rows)
}

// ExportCategories 导出品类排行
// @Summary 导出品类排行
// @Description 不传top_n时导出全部品类
// @Tags 导出
// @Produce text/csv
// @Param top_n query int false "排行条数，默认全部"
// @Param metric query string false "排序指标 revenue/orders，默认revenue"
// @Success 200 {string} string "CSV内容"
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /export/categories [get]
func (c *ExportController) ExportCategories(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r)
	if err != nil {
		render.JSON(w, r, BadRequestResponse("过滤参数解析失败", err))
		return
	}

	topN := 0
	if raw := r.URL.Query().Get("top_n"); raw != "" {
		v, err := cast.ToIntE(raw)
		if err != nil || v <= 0 {
			render.JSON(w, r, BadRequestResponse("top_n无效: "+raw, nil))
			return
		}
		topN = v
	}
	metric := models.CategoryMetricRevenue
	if raw := r.URL.Query().Get("metric"); raw != "" {
		if raw != models.CategoryMetricRevenue && raw != models.CategoryMetricOrders {
			render.JSON(w, r, BadRequestResponse("metric无效: "+raw, nil))
			return
		}
		metric = raw
	}

	summaries, err := c.service.Categories(criteria, topN, metric)
	if err != nil {
		render.JSON(w, r, renderServiceError("导出品类排行失败", err))
		return
	}

	headers := []string{"product_category_name", "revenue", "orders"}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Category,
			utils.FormatFloatCell(s.Revenue),
			utils.FormatFloatCell(float64(s.Orders)),
		})
	}
	writeCSV(w, "categories", headers, rows)
}

// ExportSatisfaction 导出时效×评分分析
// @Summary 导出时效评分分析
// @Tags 导出
// @Produce text/csv
// @Success 200 {string} string "CSV内容"
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /export/satisfaction [get]
func (c *ExportController) ExportSatisfaction(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r)
	if err != nil {
		render.JSON(w, r, BadRequestResponse("过滤参数解析失败", err))
		return
	}

	summaries, err := c.service.Satisfaction(criteria)
	if err != nil {
		render.JSON(w, r, renderServiceError("导出时效评分分析失败", err))
		return
	}

	headers := []string{"review_score", "count", "mean_delay_days", "late_pct"}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			utils.FormatFloatCell(s.Score),
			utils.FormatFloatCell(float64(s.Count)),
			utils.FormatFloatCell(s.MeanDelay),
			utils.FormatFloatCell(s.LatePct),
		})
	}
	writeCSV(w, "satisfaction", headers, rows)
}

// ExportRFM 导出RFM分群原始表
// @Summary 导出RFM分群原始表
// @Description 外部预计算表按原始列顺序透传
// @Tags 导出
// @Produce text/csv
// @Success 200 {string} string "CSV内容"
// @Failure 404 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /export/rfm [get]
func (c *ExportController) ExportRFM(w http.ResponseWriter, r *http.Request) {
	table, err := c.service.RFMTable()
	if err != nil {
		render.JSON(w, r, renderServiceError("导出RFM分群失败", err))
		return
	}

	rows := make([][]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		cells := make([]string, len(table.Headers))
		for i, h := range table.Headers {
			cells[i] = row[h]
		}
		rows = append(rows, cells)
	}
	writeCSV(w, "rfm", table.Headers, rows)
}
