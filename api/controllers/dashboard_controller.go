/*
 * @module api/controllers/dashboard_controller
 * @description 看板控制器：头部KPI、州级汇总、月度序列、品类排行、时效×评分、RFM分群
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/model.md
 * @stateFlow 解析查询参数为过滤条件 -> 分析服务执行过滤与聚合 -> 统一响应信封
 * @rules
 *   - 过滤参数解析失败返回参数错误，不做静默兜底
 *   - 依赖数据源缺失的看板返回功能禁用提示，不影响其余看板
 * @dependencies net/http, service/analysis, github.com/spf13/cast
 * @refs api/routes.go
 */

package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"marketing-dashboard-service/service/analysis"
	"marketing-dashboard-service/service/models"

	"github.com/go-chi/render"
	"github.com/spf13/cast"
)

// DashboardController 看板控制器
type DashboardController struct {
	service *analysis.Service
}

// NewDashboardController 创建看板控制器实例
func NewDashboardController(service *analysis.Service) *DashboardController {
	return &DashboardController{service: service}
}

// parseCriteria 从查询参数解析过滤条件
// start_date/end_date 为 YYYY-MM-DD，end_date含当日；states/payment_types 为逗号分隔列表
func parseCriteria(r *http.Request) (models.FilterCriteria, error) {
	q := r.URL.Query()
	criteria := models.FilterCriteria{
		OutlierMethod: models.OutlierMethodIQR,
		Percentile:    0.99,
	}

	if raw := q.Get("start_date"); raw != "" {
		ts, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return criteria, fmt.Errorf("start_date格式错误: %w", err)
		}
		criteria.StartDate = ts
	}
	if raw := q.Get("end_date"); raw != "" {
		ts, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return criteria, fmt.Errorf("end_date格式错误: %w", err)
		}
		// 结束日期取当日最后一纳秒，保证区间含当日
		criteria.EndDate = ts.Add(24*time.Hour - time.Nanosecond)
	}
	if !criteria.StartDate.IsZero() && !criteria.EndDate.IsZero() && criteria.EndDate.Before(criteria.StartDate) {
		return criteria, errors.New("end_date不能早于start_date")
	}

	criteria.States = splitList(q.Get("states"))
	criteria.PaymentTypes = splitList(q.Get("payment_types"))

	if raw := q.Get("min_ticket"); raw != "" {
		v, err := cast.ToFloat64E(raw)
		if err != nil || v < 0 {
			return criteria, fmt.Errorf("min_ticket无效: %s", raw)
		}
		criteria.MinTicket = v
	}
	if raw := q.Get("remove_outliers"); raw != "" {
		v, err := cast.ToBoolE(raw)
		if err != nil {
			return criteria, fmt.Errorf("remove_outliers无效: %s", raw)
		}
		criteria.RemoveOutliers = v
	}
	if raw := q.Get("outlier_method"); raw != "" {
		if raw != models.OutlierMethodIQR && raw != models.OutlierMethodPercentile {
			return criteria, fmt.Errorf("outlier_method无效: %s", raw)
		}
		criteria.OutlierMethod = raw
	}
	if raw := q.Get("percentile"); raw != "" {
		v, err := cast.ToFloat64E(raw)
		if err != nil || v <= 0 || v >= 1 {
			return criteria, fmt.Errorf("percentile必须位于(0,1)区间: %s", raw)
		}
		criteria.Percentile = v
	}

	return criteria, nil
}

// splitList 解析逗号分隔列表，剔除空白项
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// renderServiceError 将分析服务错误映射为响应信封
func renderServiceError(msg string, err error) *APIResponse {
	switch {
	case errors.Is(err, analysis.ErrNotReady):
		return ErrorResponse(http.StatusServiceUnavailable, msg, err)
	case errors.Is(err, analysis.ErrFeatureDisabled):
		return NotFoundResponse(msg, err)
	default:
		return InternalErrorResponse(msg, err)
	}
}

// GetOverview 获取看板头部KPI
// @Summary 获取看板头部KPI
// @Description 返回过滤后的去重订单数、营收、客单价与按时送达占比
// @Tags 看板
// @Produce json
// @Param start_date query string false "起始购买日期 YYYY-MM-DD"
// @Param end_date query string false "结束购买日期 YYYY-MM-DD（含当日）"
// @Param states query string false "客户州列表，逗号分隔"
// @Param payment_types query string false "支付方式列表，逗号分隔"
// @Param min_ticket query number false "订单最低支付总额"
// @Param remove_outliers query bool false "是否剔除payment_value离群值"
// @Param outlier_method query string false "离群值方法 iqr/percentile"
// @Param percentile query number false "percentile方法的p值，默认0.99"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /dashboard/overview [get]
func (c *DashboardController) GetOverview(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r)
	if err != nil {
		render.JSON(w, r, BadRequestResponse("过滤参数解析失败", err))
		return
	}

	kpi, err := c.service.Overview(criteria)
	if err != nil {
		render.JSON(w, r, renderServiceError("获取头部指标失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("获取头部指标成功", kpi))
}

// GetStates 获取州级汇总
// @Summary 获取州级汇总
// @Description 按客户州分组的订单数、营收与客单价，附州质心坐标
// @Tags 看板
// @Produce json
// @Param start_date query string false "起始购买日期 YYYY-MM-DD"
// @Param end_date query string false "结束购买日期 YYYY-MM-DD（含当日）"
// @Param states query string false "客户州列表，逗号分隔"
// @Param payment_types query string false "支付方式列表，逗号分隔"
// @Param min_ticket query number false "订单最低支付总额"
// @Param remove_outliers query bool false "是否剔除payment_value离群值"
// @Param outlier_method query string false "离群值方法 iqr/percentile"
// @Param percentile query number false "percentile方法的p值，默认0.99"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /dashboard/states [get]
func (c *DashboardController) GetStates(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r)
	if err != nil {
		render.JSON(w, r, BadRequestResponse("过滤参数解析失败", err))
		return
	}

	summaries, err := c.service.States(criteria)
	if err != nil {
		render.JSON(w, r, renderServiceError("获取州级汇总失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("获取州级汇总成功", summaries))
}

// MonthlyResponse 月度看板响应：时间序列 + 可选的支付方式展开
type MonthlyResponse struct {
	Series           []models.MonthlySummary        `json:"series"`
	PaymentBreakdown []models.MonthlyPaymentRevenue `json:"payment_breakdown,omitempty"`
}

// GetMonthly 获取月度序列与支付方式展开
// @Summary 获取月度序列
// @Description 按购买自然月的订单数、营收、客单价序列；breakdown=true时附带月度×支付方式的营收展开
// @Tags 看板
// @Produce json
// @Param start_date query string false "起始购买日期 YYYY-MM-DD"
// @Param end_date query string false "结束购买日期 YYYY-MM-DD（含当日）"
// @Param states query string false "客户州列表，逗号分隔"
// @Param payment_types query string false "支付方式列表，逗号分隔"
// @Param min_ticket query number false "订单最低支付总额"
// @Param remove_outliers query bool false "是否剔除payment_value离群值"
// @Param outlier_method query string false "离群值方法 iqr/percentile"
// @Param percentile query number false "percentile方法的p值，默认0.99"
// @Param breakdown query bool false "是否附带支付方式展开，默认true"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /dashboard/monthly [get]
func (c *DashboardController) GetMonthly(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r)
	if err != nil {
		render.JSON(w, r, BadRequestResponse("过滤参数解析失败", err))
		return
	}

	withBreakdown := true
	if raw := r.URL.Query().Get("breakdown"); raw != "" {
		v, err := cast.ToBoolE(raw)
		if err != nil {
			render.JSON(w, r, BadRequestResponse("breakdown无效: "+raw, nil))
			return
		}
		withBreakdown = v
	}

	series, err := c.service.Monthly(criteria)
	if err != nil {
		render.JSON(w, r, renderServiceError("获取月度序列失败", err))
		return
	}

	resp := MonthlyResponse{Series: series}
	if withBreakdown {
		breakdown, err := c.service.MonthlyBreakdown(criteria)
		if err != nil {
			render.JSON(w, r, renderServiceError("获取支付方式展开失败", err))
			return
		}
		resp.PaymentBreakdown = breakdown
	}

	render.JSON(w, r, SuccessResponse("获取月度序列成功", resp))
}

// GetCategories 获取品类排行
// @Summary 获取品类排行
// @Description 按营收或订单数排序的Top-N商品品类
// @Tags 看板
// @Produce json
// @Param start_date query string false "起始购买日期 YYYY-MM-DD"
// @Param end_date query string false "结束购买日期 YYYY-MM-DD（含当日）"
// @Param states query string false "客户州列表，逗号分隔"
// @Param payment_types query string false "支付方式列表，逗号分隔"
// @Param min_ticket query number false "订单最低支付总额"
// @Param remove_outliers query bool false "是否剔除payment_value离群值"
// @Param outlier_method query string false "离群值方法 iqr/percentile"
// @Param percentile query number false "percentile方法的p值，默认0.99"
// @Param top_n query int false "排行条数，默认10"
// @Param metric query string false "排序指标 revenue/orders，默认revenue"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /dashboard/categories [get]
func (c *DashboardController) GetCategories(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r)
	if err != nil {
		render.JSON(w, r, BadRequestResponse("过滤参数解析失败", err))
		return
	}

	topN := 10
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
		render.JSON(w, r, renderServiceError("获取品类排行失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("获取品类排行成功", summaries))
}

// GetSatisfaction 获取交付时效×评分分析
// @Summary 获取交付时效×评分分析
// @Description 按评分分组的订单数、平均延迟天数与迟到占比
// @Tags 看板
// @Produce json
// @Param start_date query string false "起始购买日期 YYYY-MM-DD"
// @Param end_date query string false "结束购买日期 YYYY-MM-DD（含当日）"
// @Param states query string false "客户州列表，逗号分隔"
// @Param payment_types query string false "支付方式列表，逗号分隔"
// @Param min_ticket query number false "订单最低支付总额"
// @Param remove_outliers query bool false "是否剔除payment_value离群值"
// @Param outlier_method query string false "离群值方法 iqr/percentile"
// @Param percentile query number false "percentile方法的p值，默认0.99"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /dashboard/satisfaction [get]
func (c *DashboardController) GetSatisfaction(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r)
	if err != nil {
		render.JSON(w, r, BadRequestResponse("过滤参数解析失败", err))
		return
	}

	summaries, err := c.service.Satisfaction(criteria)
	if err != nil {
		render.JSON(w, r, renderServiceError("获取时效评分分析失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("获取时效评分分析成功", summaries))
}

// GetRFM 获取RFM分群汇总
// @Summary 获取RFM分群汇总
// @Description 分群计数与按Monetary排序的Top-N客户，数据来自外部预计算表，不受过滤条件影响
// @Tags 看板
// @Produce json
// @Param top_n query int false "Top客户条数，默认15"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /dashboard/rfm [get]
func (c *DashboardController) GetRFM(w http.ResponseWriter, r *http.Request) {
	topN := 15
	if raw := r.URL.Query().Get("top_n"); raw != "" {
		v, err := cast.ToIntE(raw)
		if err != nil || v <= 0 {
			render.JSON(w, r, BadRequestResponse("top_n无效: "+raw, nil))
			return
		}
		topN = v
	}

	summary, err := c.service.RFM(topN)
	if err != nil {
		render.JSON(w, r, renderServiceError("获取RFM分群失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("获取RFM分群成功", summary))
}
