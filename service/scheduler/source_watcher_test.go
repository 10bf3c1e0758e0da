/*
 * @module service/scheduler/source_watcher_test
 * @description 数据源监测器单元测试：指纹比对与快照重建
 * @architecture 测试层
 * @documentReference dev_docs/test_plan.md
 * @stateFlow 构建数据集 -> 单次Check -> 断言快照替换行为
 * @rules 源文件未变化时不重建快照
 * @dependencies testify, testutil
 * @refs service/scheduler/source_watcher.go
 */

package scheduler

import (
	"os"
	"testing"
	"time"

	"marketing-dashboard-service/service/dataset"
	"marketing-dashboard-service/service/loader"
	"marketing-dashboard-service/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWatchedStore(t *testing.T) (*loader.Store, *dataset.Store, string) {
	fixture := testutil.NewCSVFixture(t)
	ordersPath := fixture.WriteOrders([][]string{
		{"o1", "c1", "delivered", "2017-05-01 10:00:00", "", "", "", ""},
	})
	fixture.WritePayments([][]string{
		{"o1", "1", "credit_card", "1", "100"},
	})
	fixture.WriteCustomers([][]string{
		{"c1", "cu1", "01000", "sao paulo", "SP"},
	})

	loaders := loader.NewStore()
	store := dataset.NewStore(loaders, dataset.DefaultSourcePaths(fixture.Dir(), "rfm.csv"))
	require.NoError(t, store.Refresh())
	return loaders, store, ordersPath
}

func TestCheckWithoutChangeKeepsSnapshot(t *testing.T) {
	loaders, store, _ := newWatchedStore(t)
	watcher := NewSourceWatcher(loaders, store)

	before := store.Snapshot()
	watcher.Check()
	assert.Same(t, before, store.Snapshot())
}

func TestCheckRebuildsOnSourceChange(t *testing.T) {
	loaders, store, ordersPath := newWatchedStore(t)
	watcher := NewSourceWatcher(loaders, store)

	before := store.Snapshot()
	require.Len(t, before.Orders, 1)

	f, err := os.OpenFile(ordersPath, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("o2,c1,delivered,2017-06-01 10:00:00,,,,\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())
	require.NoError(t, os.Chtimes(ordersPath, time.Now(), time.Now().Add(time.Second)))

	watcher.Check()

	after := store.Snapshot()
	assert.NotSame(t, before, after)
	assert.Len(t, after.Orders, 2)
}

func TestStartRejectsInvalidCron(t *testing.T) {
	loaders, store, _ := newWatchedStore(t)
	watcher := NewSourceWatcher(loaders, store)
	assert.Error(t, watcher.Start("not-a-cron"))
}
