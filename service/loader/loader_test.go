/*
 * @module service/loader/loader_test
 * @description CSV加载器单元测试：类型规范化、缺失文件降级、记忆化缓存与评价去重
 * @architecture 测试层
 * @documentReference dev_docs/test_plan.md
 * @stateFlow 构造CSV夹具 -> 加载 -> 断言规范化结果
 * @rules 不依赖真实数据集，所有夹具写入临时目录
 * @dependencies testify, testutil
 * @refs service/loader
 */

package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"marketing-dashboard-service/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrdersCoercion(t *testing.T) {
	fixture := testutil.NewCSVFixture(t)
	path := fixture.WriteOrders([][]string{
		{"o1", "c1", "delivered", "2017-05-01 10:00:00", "", "", "2017-05-08 12:00:00", "2017-05-10 00:00:00"},
		{"o2", "c2", "shipped", "garbage", "", "", "", ""},
		{"o3", "c3", "created", "", "", "", "", ""},
	})

	store := NewStore()
	rows, err := store.Orders(path)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	require.NotNil(t, rows[0].PurchaseTimestamp)
	assert.Equal(t, time.May, rows[0].PurchaseTimestamp.Month())
	require.NotNil(t, rows[0].DeliveredCustomerDate)
	require.NotNil(t, rows[0].EstimatedDeliveryDate)
	assert.Nil(t, rows[0].ApprovedAt)

	// 非法与空时间戳规范化为nil，行保留
	assert.Nil(t, rows[1].PurchaseTimestamp)
	assert.Nil(t, rows[2].PurchaseTimestamp)
}

func TestPaymentsCoercion(t *testing.T) {
	fixture := testutil.NewCSVFixture(t)
	path := fixture.WritePayments([][]string{
		{"o1", "1", "credit_card", "3", "129.90"},
		{"o1", "2", "voucher", "1", "garbage"},
	})

	store := NewStore()
	rows, err := store.Payments(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 129.90, rows[0].PaymentValue)
	// 金额解析失败按0计
	assert.Equal(t, 0.0, rows[1].PaymentValue)
	assert.Equal(t, "voucher", rows[1].PaymentType)
}

func TestMissingFileReturnsSourceUnavailable(t *testing.T) {
	store := NewStore()
	_, err := store.Orders(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSourceUnavailable))
}

func TestMemoizationReturnsCachedValue(t *testing.T) {
	fixture := testutil.NewCSVFixture(t)
	path := fixture.WriteOrders([][]string{
		{"o1", "c1", "delivered", "2017-05-01 10:00:00", "", "", "", ""},
	})

	store := NewStore()
	first, err := store.Orders(path)
	require.NoError(t, err)
	second, err := store.Orders(path)
	require.NoError(t, err)

	// 指纹未变化时返回同一份缓存快照
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Same(t, &first[0], &second[0])
}

func TestMemoizationReloadsOnFileChange(t *testing.T) {
	fixture := testutil.NewCSVFixture(t)
	path := fixture.WriteOrders([][]string{
		{"o1", "c1", "delivered", "2017-05-01 10:00:00", "", "", "", ""},
	})

	store := NewStore()
	first, err := store.Orders(path)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// 追加一行并前移修改时间，确保指纹变化
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("o2,c2,delivered,2017-06-01 10:00:00,,,,\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())
	require.NoError(t, os.Chtimes(path, time.Now(), time.Now().Add(time.Second)))

	second, err := store.Orders(path)
	require.NoError(t, err)
	assert.Len(t, second, 2)
}

func TestInvalidateClearsCache(t *testing.T) {
	fixture := testutil.NewCSVFixture(t)
	path := fixture.WriteOrders([][]string{
		{"o1", "c1", "delivered", "2017-05-01 10:00:00", "", "", "", ""},
	})

	store := NewStore()
	first, err := store.Orders(path)
	require.NoError(t, err)

	store.Invalidate()

	second, err := store.Orders(path)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.NotSame(t, &first[0], &second[0])
}

func TestReviewDedupKeepsLatest(t *testing.T) {
	fixture := testutil.NewCSVFixture(t)
	path := fixture.WriteReviews([][]string{
		{"r1", "o1", "3", "2017-05-01 00:00:00"},
		{"r2", "o1", "5", "2017-05-03 00:00:00"},
		{"r3", "o2", "4", ""},
		{"r4", "o2", "1", "2017-05-02 00:00:00"},
		{"r5", "o3", "2", "2017-05-04 00:00:00"},
		{"r6", "o3", "4", ""},
	})

	store := NewStore()
	rows, err := store.Reviews(path)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	byOrder := make(map[string]float64)
	for _, r := range rows {
		require.NotNil(t, r.Score)
		byOrder[r.OrderID] = *r.Score
	}
	// 创建日期最新的评价胜出
	assert.Equal(t, 5.0, byOrder["o1"])
	// 有日期的评价替换无日期的
	assert.Equal(t, 1.0, byOrder["o2"])
	// 无日期的评价不替换有日期的
	assert.Equal(t, 2.0, byOrder["o3"])
}

func TestReviewScoreCoercion(t *testing.T) {
	fixture := testutil.NewCSVFixture(t)
	path := fixture.WriteReviews([][]string{
		{"r1", "o1", "abc", "2017-05-01 00:00:00"},
	})

	store := NewStore()
	rows, err := store.Reviews(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].Score)
}

func TestRFMPreservesHeaderOrder(t *testing.T) {
	fixture := testutil.NewCSVFixture(t)
	headers := []string{"customer_unique_id", "Recency", "Frequency", "Monetary", "Segment"}
	path := fixture.WriteRFM(headers, [][]string{
		{"cu1", "10", "3", "450.5", "Champions"},
		{"cu2", "200", "1", "30", "Hibernating"},
	})

	store := NewStore()
	table, err := store.RFM(path)
	require.NoError(t, err)
	assert.Equal(t, headers, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Champions", table.Rows[0]["Segment"])
	assert.True(t, table.HasColumn("Monetary"))
	assert.False(t, table.HasColumn("Tenure"))
}

func TestRFMDuplicateHeaderDoesNotFail(t *testing.T) {
	fixture := testutil.NewCSVFixture(t)
	path := fixture.WriteRFM(
		[]string{"customer_unique_id", "Monetary", "Monetary"},
		[][]string{
			{"cu1", "100", "250"},
		},
	)

	store := NewStore()
	table, err := store.RFM(path)
	require.NoError(t, err)

	// 重复列名按原始顺序透传，同名列取最后一列的值
	assert.Equal(t, []string{"customer_unique_id", "Monetary", "Monetary"}, table.Headers)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "250", table.Rows[0]["Monetary"])
	assert.Equal(t, "cu1", table.Rows[0]["customer_unique_id"])
}
