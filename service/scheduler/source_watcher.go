/*
 * @module service/scheduler/source_watcher
 * @description 源文件变化监测：按cron周期比对数据源指纹，变化时失效加载缓存并重建数据集快照
 * @architecture 基于Go协程和定时器的调度器模式
 * @documentReference dev_docs/model.md
 * @stateFlow 定时触发 -> 指纹比对 -> 失效缓存 -> 重建快照
 * @rules 缓存失效仅由源文件变化触发；重建失败保留旧快照继续服务
 * @dependencies github.com/robfig/cron/v3, service/loader, service/dataset
 * @refs service/init.go
 */

package scheduler

import (
	"log/slog"

	"marketing-dashboard-service/service/dataset"
	"marketing-dashboard-service/service/loader"
	"marketing-dashboard-service/service/monitoring"

	"github.com/robfig/cron/v3"
)

// SourceWatcher 数据源变化监测器
type SourceWatcher struct {
	loaders      *loader.Store
	store        *dataset.Store
	cron         *cron.Cron
	fingerprints map[string]string
}

// NewSourceWatcher 创建监测器实例
func NewSourceWatcher(loaders *loader.Store, store *dataset.Store) *SourceWatcher {
	w := &SourceWatcher{
		loaders:      loaders,
		store:        store,
		cron:         cron.New(),
		fingerprints: make(map[string]string),
	}
	w.snapshotFingerprints()
	return w
}

// Start 按cron表达式启动周期检查
func (w *SourceWatcher) Start(spec string) error {
	if _, err := w.cron.AddFunc(spec, w.Check); err != nil {
		return err
	}
	w.cron.Start()
	slog.Info("数据源监测已启动", "spec", spec)
	return nil
}

// Stop 停止周期检查
func (w *SourceWatcher) Stop() {
	w.cron.Stop()
}

// Check 单次检查：任一源文件指纹变化则失效缓存并重建快照
func (w *SourceWatcher) Check() {
	if !w.changed() {
		return
	}

	slog.Info("检测到数据源变化，重建数据集")
	w.loaders.Invalidate()
	monitoring.CacheInvalidations.Inc()
	if err := w.store.Refresh(); err != nil {
		// 保留旧快照继续服务
		slog.Error("数据集重建失败", "error", err)
		return
	}
	w.snapshotFingerprints()
}

// changed 比对全部源文件指纹
func (w *SourceWatcher) changed() bool {
	for _, path := range w.store.Paths().All() {
		fp, err := loader.Fingerprint(path)
		if err != nil {
			fp = "" // 文件消失同样视为变化
		}
		if w.fingerprints[path] != fp {
			return true
		}
	}
	return false
}

// snapshotFingerprints 记录当前指纹基线
func (w *SourceWatcher) snapshotFingerprints() {
	for _, path := range w.store.Paths().All() {
		fp, err := loader.Fingerprint(path)
		if err != nil {
			fp = ""
		}
		w.fingerprints[path] = fp
	}
}
