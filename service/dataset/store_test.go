/*
 * @module service/dataset/store_test
 * @description 数据集存储单元测试：核心源缺失失败、辅助源缺失降级、过滤元数据
 * @architecture 测试层
 * @documentReference dev_docs/test_plan.md
 * @stateFlow 构造CSV夹具 -> Refresh -> 断言快照
 * @rules 订单/支付/客户缺失导致Refresh失败；其余数据源缺失仅标记禁用
 * @dependencies testify, testutil
 * @refs service/dataset/store.go
 */

package dataset

import (
	"errors"
	"path/filepath"
	"testing"

	"marketing-dashboard-service/service/loader"
	"marketing-dashboard-service/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// corePaths 只包含核心三表的源路径，其余指向不存在的文件
func corePaths(t *testing.T) SourcePaths {
	fixture := testutil.NewCSVFixture(t)
	missing := t.TempDir()
	return SourcePaths{
		Orders: fixture.WriteOrders([][]string{
			{"o1", "c1", "delivered", "2017-05-01 10:00:00", "", "", "", ""},
			{"o2", "c2", "delivered", "2017-07-15 09:00:00", "", "", "", ""},
		}),
		Payments: fixture.WritePayments([][]string{
			{"o1", "1", "credit_card", "1", "100"},
			{"o2", "1", "boleto", "1", "200"},
		}),
		Customers: fixture.WriteCustomers([][]string{
			{"c1", "cu1", "01000", "sao paulo", "SP"},
			{"c2", "cu2", "20000", "rio de janeiro", "RJ"},
		}),
		Items:    filepath.Join(missing, "items.csv"),
		Products: filepath.Join(missing, "products.csv"),
		Reviews:  filepath.Join(missing, "reviews.csv"),
		RFM:      filepath.Join(missing, "rfm.csv"),
	}
}

func TestRefreshFailsWithoutCoreSources(t *testing.T) {
	paths := corePaths(t)
	paths.Orders = filepath.Join(t.TempDir(), "missing.csv")

	store := NewStore(loader.NewStore(), paths)
	err := store.Refresh()
	require.Error(t, err)
	assert.True(t, errors.Is(err, loader.ErrSourceUnavailable))
	assert.Nil(t, store.Snapshot())
}

func TestRefreshDegradesOptionalSources(t *testing.T) {
	store := NewStore(loader.NewStore(), corePaths(t))
	require.NoError(t, store.Refresh())

	snap := store.Snapshot()
	require.NotNil(t, snap)
	assert.Len(t, snap.Orders, 2)

	// 辅助数据源缺失：功能禁用标记，不阻断核心视图
	assert.True(t, errors.Is(snap.ItemsErr, loader.ErrSourceUnavailable))
	assert.True(t, errors.Is(snap.ReviewsErr, loader.ErrSourceUnavailable))
	assert.True(t, errors.Is(snap.RFMErr, loader.ErrSourceUnavailable))
	assert.Empty(t, snap.Items)
	assert.Empty(t, snap.Reviews)
	assert.Nil(t, snap.RFM)
	assert.False(t, snap.LoadedAt.IsZero())
}

func TestFilterMeta(t *testing.T) {
	store := NewStore(loader.NewStore(), corePaths(t))
	require.NoError(t, store.Refresh())

	meta := store.Snapshot().FilterMeta()
	require.NotNil(t, meta.MinPurchaseDate)
	require.NotNil(t, meta.MaxPurchaseDate)
	assert.Equal(t, "2017-05-01", *meta.MinPurchaseDate)
	assert.Equal(t, "2017-07-15", *meta.MaxPurchaseDate)
	assert.Equal(t, []string{"RJ", "SP"}, meta.States)
	assert.Equal(t, []string{"boleto", "credit_card"}, meta.PaymentTypes)
}
