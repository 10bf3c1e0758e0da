/*
 * @module api/controllers/dashboard_controller_test
 * @description 看板控制器集成测试：参数解析、响应信封与功能禁用降级
 * @architecture 测试层
 * @documentReference dev_docs/test_plan.md
 * @stateFlow 构造CSV夹具 -> 构建数据集 -> httptest调用控制器 -> 断言信封
 * @rules 控制器测试不经过路由层，直接调用处理函数
 * @dependencies testify, testutil, httptest
 * @refs api/controllers/dashboard_controller.go
 */

package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"marketing-dashboard-service/service/analysis"
	"marketing-dashboard-service/service/dataset"
	"marketing-dashboard-service/service/loader"
	"marketing-dashboard-service/service/models"
	"marketing-dashboard-service/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestService 用CSV夹具构建完整分析服务
// withOptional为false时条目/商品/评价/RFM指向不存在的文件，对应功能禁用
func newTestService(t *testing.T, withOptional bool) *analysis.Service {
	fixture := testutil.NewCSVFixture(t)
	missing := t.TempDir()

	paths := dataset.SourcePaths{
		Orders: fixture.WriteOrders([][]string{
			{"o1", "c1", "delivered", "2017-05-01 10:00:00", "", "", "2017-05-08 12:00:00", "2017-05-10 00:00:00"},
			{"o2", "c2", "delivered", "2017-05-15 09:00:00", "", "", "2017-05-25 12:00:00", "2017-05-20 00:00:00"},
			{"o3", "c3", "delivered", "2017-06-03 18:00:00", "", "", "", ""},
		}),
		Payments: fixture.WritePayments([][]string{
			{"o1", "1", "credit_card", "1", "100"},
			{"o2", "1", "boleto", "1", "50"},
			{"o3", "1", "credit_card", "1", "200"},
		}),
		Customers: fixture.WriteCustomers([][]string{
			{"c1", "cu1", "01000", "sao paulo", "SP"},
			{"c2", "cu2", "01001", "campinas", "SP"},
			{"c3", "cu3", "20000", "rio de janeiro", "RJ"},
		}),
		Items:    filepath.Join(missing, "items.csv"),
		Products: filepath.Join(missing, "products.csv"),
		Reviews:  filepath.Join(missing, "reviews.csv"),
		RFM:      filepath.Join(missing, "rfm.csv"),
	}
	if withOptional {
		paths.Items = fixture.WriteItems([][]string{
			{"o1", "1", "p1", "s1", "2017-05-02 00:00:00", "90", "10"},
			{"o2", "1", "p2", "s1", "2017-05-16 00:00:00", "40", "10"},
		})
		paths.Products = fixture.WriteProducts([][]string{
			{"p1", "beleza_saude"},
			{"p2", "brinquedos"},
		})
		paths.Reviews = fixture.WriteReviews([][]string{
			{"r1", "o1", "5", "2017-05-09 00:00:00"},
			{"r2", "o2", "1", "2017-05-26 00:00:00"},
		})
		paths.RFM = fixture.WriteRFM(
			[]string{"customer_unique_id", "Monetary", "Segment"},
			[][]string{
				{"cu1", "100", "Champions"},
				{"cu2", "50", "Hibernating"},
			},
		)
	}

	store := dataset.NewStore(loader.NewStore(), paths)
	require.NoError(t, store.Refresh())
	return analysis.NewService(store)
}

func doGet(handler http.HandlerFunc, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestGetOverview(t *testing.T) {
	controller := NewDashboardController(newTestService(t, true))

	w := doGet(controller.GetOverview, "/dashboard/overview")
	assert.Equal(t, http.StatusOK, w.Code)

	env := testutil.DecodeEnvelope(t, w)
	assert.Equal(t, 0, env.Status)

	var kpi models.OverviewKPI
	require.NoError(t, json.Unmarshal(env.Data, &kpi))
	assert.Equal(t, 3, kpi.Orders)
	assert.Equal(t, 350.0, kpi.Revenue)
	assert.Equal(t, "R$ 350,00", kpi.RevenueText)
	require.NotNil(t, kpi.OnTimePct)
	// o1按时、o2迟到，o3无法评估
	assert.Equal(t, 50.0, *kpi.OnTimePct)
}

func TestGetOverviewWithFilters(t *testing.T) {
	controller := NewDashboardController(newTestService(t, true))

	w := doGet(controller.GetOverview, "/dashboard/overview?states=SP&start_date=2017-05-01&end_date=2017-05-31")
	env := testutil.DecodeEnvelope(t, w)
	require.Equal(t, 0, env.Status)

	var kpi models.OverviewKPI
	require.NoError(t, json.Unmarshal(env.Data, &kpi))
	assert.Equal(t, 2, kpi.Orders)
	assert.Equal(t, 150.0, kpi.Revenue)
	assert.Equal(t, 75.0, kpi.AvgTicket)
}

func TestGetOverviewInvalidParams(t *testing.T) {
	controller := NewDashboardController(newTestService(t, true))

	cases := []string{
		"/dashboard/overview?start_date=garbage",
		"/dashboard/overview?start_date=2017-06-01&end_date=2017-05-01",
		"/dashboard/overview?min_ticket=abc",
		"/dashboard/overview?outlier_method=magic",
		"/dashboard/overview?percentile=1.5",
		"/dashboard/overview?remove_outliers=maybe",
	}
	for _, target := range cases {
		env := testutil.DecodeEnvelope(t, doGet(controller.GetOverview, target))
		assert.Equal(t, 400, env.Status, "target: %s", target)
	}
}

func TestGetStates(t *testing.T) {
	controller := NewDashboardController(newTestService(t, true))

	env := testutil.DecodeEnvelope(t, doGet(controller.GetStates, "/dashboard/states"))
	require.Equal(t, 0, env.Status)

	var summaries []models.StateSummary
	require.NoError(t, json.Unmarshal(env.Data, &summaries))
	require.Len(t, summaries, 2)
	// RJ客单价200 > SP客单价75
	assert.Equal(t, "RJ", summaries[0].State)
	assert.Equal(t, "SP", summaries[1].State)
	assert.Equal(t, 2, summaries[1].Orders)
	assert.True(t, summaries[0].HasCoords)
}

func TestGetMonthly(t *testing.T) {
	controller := NewDashboardController(newTestService(t, true))

	env := testutil.DecodeEnvelope(t, doGet(controller.GetMonthly, "/dashboard/monthly"))
	require.Equal(t, 0, env.Status)

	var resp MonthlyResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	require.Len(t, resp.Series, 2)
	assert.Equal(t, "2017-05", resp.Series[0].Month)
	assert.Equal(t, 2, resp.Series[0].Orders)
	assert.Equal(t, "2017-06", resp.Series[1].Month)
	require.NotEmpty(t, resp.PaymentBreakdown)
}

func TestGetMonthlyWithoutBreakdown(t *testing.T) {
	controller := NewDashboardController(newTestService(t, true))

	env := testutil.DecodeEnvelope(t, doGet(controller.GetMonthly, "/dashboard/monthly?breakdown=false"))
	require.Equal(t, 0, env.Status)

	var resp MonthlyResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	require.Len(t, resp.Series, 2)
	assert.Empty(t, resp.PaymentBreakdown)
}

func TestGetCategories(t *testing.T) {
	controller := NewDashboardController(newTestService(t, true))

	env := testutil.DecodeEnvelope(t, doGet(controller.GetCategories, "/dashboard/categories?top_n=1"))
	require.Equal(t, 0, env.Status)

	var summaries []models.CategorySummary
	require.NoError(t, json.Unmarshal(env.Data, &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, "beleza_saude", summaries[0].Category)
	assert.Equal(t, 100.0, summaries[0].Revenue)
}

func TestGetCategoriesFeatureDisabled(t *testing.T) {
	controller := NewDashboardController(newTestService(t, false))

	env := testutil.DecodeEnvelope(t, doGet(controller.GetCategories, "/dashboard/categories"))
	assert.Equal(t, 404, env.Status)
}

func TestGetSatisfaction(t *testing.T) {
	controller := NewDashboardController(newTestService(t, true))

	env := testutil.DecodeEnvelope(t, doGet(controller.GetSatisfaction, "/dashboard/satisfaction"))
	require.Equal(t, 0, env.Status)

	var summaries []models.ReviewDelaySummary
	require.NoError(t, json.Unmarshal(env.Data, &summaries))
	require.Len(t, summaries, 2)
	// 评分1的订单迟到5天
	assert.Equal(t, 1.0, summaries[0].Score)
	assert.Equal(t, 5.0, summaries[0].MeanDelay)
	assert.Equal(t, 100.0, summaries[0].LatePct)
	// 评分5的订单提前送达
	assert.Equal(t, 5.0, summaries[1].Score)
	assert.Equal(t, 0.0, summaries[1].LatePct)
}

func TestGetSatisfactionFeatureDisabled(t *testing.T) {
	controller := NewDashboardController(newTestService(t, false))

	env := testutil.DecodeEnvelope(t, doGet(controller.GetSatisfaction, "/dashboard/satisfaction"))
	assert.Equal(t, 404, env.Status)
}

func TestGetRFM(t *testing.T) {
	controller := NewDashboardController(newTestService(t, true))

	env := testutil.DecodeEnvelope(t, doGet(controller.GetRFM, "/dashboard/rfm?top_n=1"))
	require.Equal(t, 0, env.Status)

	var summary models.RFMSummary
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	require.Len(t, summary.SegmentCounts, 2)
	require.Len(t, summary.TopByMonetary, 1)
	assert.Equal(t, "cu1", summary.TopByMonetary[0]["customer_unique_id"])
}

func TestGetRFMFeatureDisabled(t *testing.T) {
	controller := NewDashboardController(newTestService(t, false))

	env := testutil.DecodeEnvelope(t, doGet(controller.GetRFM, "/dashboard/rfm"))
	assert.Equal(t, 404, env.Status)
}

func TestGetFilterMeta(t *testing.T) {
	controller := NewMetaController(newTestService(t, true))

	env := testutil.DecodeEnvelope(t, doGet(controller.GetFilterMeta, "/meta/filters"))
	require.Equal(t, 0, env.Status)

	var meta models.FilterMeta
	require.NoError(t, json.Unmarshal(env.Data, &meta))
	require.NotNil(t, meta.MinPurchaseDate)
	assert.Equal(t, "2017-05-01", *meta.MinPurchaseDate)
	require.NotNil(t, meta.MaxPurchaseDate)
	assert.Equal(t, "2017-06-03", *meta.MaxPurchaseDate)
	assert.Equal(t, []string{"RJ", "SP"}, meta.States)
	assert.Equal(t, []string{"boleto", "credit_card"}, meta.PaymentTypes)
}
