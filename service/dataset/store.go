/*
 * @module service/dataset/store
 * @description 数据集快照存储：持有当前不可变数据集快照，按需整体重建
 * @architecture 分层架构 - 数据集构建层
 * @documentReference dev_docs/model.md
 * @stateFlow 加载器读表 -> 合并器构建视图 -> 原子替换快照指针 -> 读取方无锁共享
 * @rules
 *   - 订单/支付/客户三表是核心依赖，任一不可用则刷新失败
 *   - 条目/商品/评价/RFM缺失按"功能禁用"降级，错误随快照保留供展示层判断
 *   - 快照内容不可变，替换仅发生在Refresh内
 * @dependencies service/loader, service/monitoring
 * @refs api/controllers, service/scheduler
 */

package dataset

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"marketing-dashboard-service/service/loader"
	"marketing-dashboard-service/service/models"
	"marketing-dashboard-service/service/monitoring"
)

// SourcePaths 各数据源文件路径
type SourcePaths struct {
	Orders    string
	Payments  string
	Customers string
	Items     string
	Products  string
	Reviews   string
	RFM       string
}

// DefaultSourcePaths Olist数据集的默认文件布局
func DefaultSourcePaths(dataDir, rfmPath string) SourcePaths {
	return SourcePaths{
		Orders:    filepath.Join(dataDir, "olist_orders_dataset.csv"),
		Payments:  filepath.Join(dataDir, "olist_order_payments_dataset.csv"),
		Customers: filepath.Join(dataDir, "olist_customers_dataset.csv"),
		Items:     filepath.Join(dataDir, "olist_order_items_dataset.csv"),
		Products:  filepath.Join(dataDir, "olist_products_dataset.csv"),
		Reviews:   filepath.Join(dataDir, "olist_order_reviews_dataset.csv"),
		RFM:       rfmPath,
	}
}

// All 全部源路径，供变化监测
func (p SourcePaths) All() []string {
	return []string{p.Orders, p.Payments, p.Customers, p.Items, p.Products, p.Reviews, p.RFM}
}

// Snapshot 一次构建产生的不可变数据集
// ItemsErr/ReviewsErr/RFMErr 非nil表示对应功能禁用
type Snapshot struct {
	Orders     OrderView
	Items      ItemView
	ItemsErr   error
	Reviews    []models.ReviewRecord
	ReviewsErr error
	RFM        *models.RFMTable
	RFMErr     error
	LoadedAt   time.Time
}

// Store 数据集存储
type Store struct {
	mu      sync.RWMutex
	paths   SourcePaths
	loaders *loader.Store
	current *Snapshot
}

// NewStore 创建数据集存储实例
func NewStore(loaders *loader.Store, paths SourcePaths) *Store {
	return &Store{paths: paths, loaders: loaders}
}

// Paths 返回源路径配置
func (s *Store) Paths() SourcePaths {
	return s.paths
}

// Refresh 从加载器整体重建快照
func (s *Store) Refresh() error {
	orders, err := s.loaders.Orders(s.paths.Orders)
	if err != nil {
		return fmt.Errorf("加载订单表失败: %w", err)
	}
	payments, err := s.loaders.Payments(s.paths.Payments)
	if err != nil {
		return fmt.Errorf("加载支付表失败: %w", err)
	}
	customers, err := s.loaders.Customers(s.paths.Customers)
	if err != nil {
		return fmt.Errorf("加载客户表失败: %w", err)
	}

	snapshot := &Snapshot{
		Orders:   BuildOrderView(orders, payments, customers),
		LoadedAt: time.Now(),
	}

	// 条目视图要求条目与商品同时可用，任一缺失则整体不可用
	items, itemsErr := s.loaders.Items(s.paths.Items)
	products, productsErr := s.loaders.Products(s.paths.Products)
	switch {
	case itemsErr != nil:
		snapshot.ItemsErr = itemsErr
	case productsErr != nil:
		snapshot.ItemsErr = productsErr
	default:
		snapshot.Items = BuildItemView(items, products)
	}

	snapshot.Reviews, snapshot.ReviewsErr = s.loaders.Reviews(s.paths.Reviews)
	snapshot.RFM, snapshot.RFMErr = s.loaders.RFM(s.paths.RFM)

	s.mu.Lock()
	s.current = snapshot
	s.mu.Unlock()

	monitoring.DatasetLoads.Inc()
	slog.Info("数据集快照重建完成",
		"orders", len(snapshot.Orders),
		"items", len(snapshot.Items),
		"reviews", len(snapshot.Reviews),
		"items_disabled", snapshot.ItemsErr != nil,
		"reviews_disabled", snapshot.ReviewsErr != nil,
		"rfm_disabled", snapshot.RFMErr != nil,
	)
	return nil
}

// Snapshot 当前快照，首次Refresh之前为nil
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// FilterMeta 过滤控件元数据：购买时间跨度、可选州与支付方式
func (snap *Snapshot) FilterMeta() models.FilterMeta {
	meta := models.FilterMeta{States: []string{}, PaymentTypes: []string{}}

	var minTS, maxTS *time.Time
	states := make(map[string]bool)
	ptypes := make(map[string]bool)
	for i := range snap.Orders {
		o := &snap.Orders[i]
		if ts := o.PurchaseTimestamp; ts != nil {
			if minTS == nil || ts.Before(*minTS) {
				minTS = ts
			}
			if maxTS == nil || ts.After(*maxTS) {
				maxTS = ts
			}
		}
		if o.CustomerState != "" {
			states[o.CustomerState] = true
		}
		for _, pt := range o.PaymentTypes {
			ptypes[pt] = true
		}
	}

	if minTS != nil {
		v := minTS.Format("2006-01-02")
		meta.MinPurchaseDate = &v
	}
	if maxTS != nil {
		v := maxTS.Format("2006-01-02")
		meta.MaxPurchaseDate = &v
	}
	for st := range states {
		meta.States = append(meta.States, st)
	}
	for pt := range ptypes {
		meta.PaymentTypes = append(meta.PaymentTypes, pt)
	}
	sort.Strings(meta.States)
	sort.Strings(meta.PaymentTypes)
	return meta
}
