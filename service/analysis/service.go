/*
 * @module service/analysis/service
 * @description 分析服务：面向控制器的聚合查询入口，负责取快照、执行过滤管线并分发聚合器
 * @architecture 分层架构 - 业务服务层
 * @documentReference dev_docs/model.md
 * @stateFlow 取当前快照 -> 两阶段过滤 -> 聚合器 -> 汇总结果
 * @rules
 *   - 每次查询基于完整快照全量重算，无增量更新
 *   - 辅助数据源缺失返回ErrFeatureDisabled，由控制器降级为"功能禁用"响应
 * @dependencies service/dataset, service/monitoring
 * @refs api/controllers
 */

package analysis

import (
	"errors"
	"fmt"

	"marketing-dashboard-service/service/dataset"
	"marketing-dashboard-service/service/models"
	"marketing-dashboard-service/service/monitoring"
)

// ErrNotReady 数据集尚未完成首次加载
var ErrNotReady = errors.New("数据集尚未加载")

// ErrFeatureDisabled 依赖的数据源不可用，对应功能禁用
var ErrFeatureDisabled = errors.New("依赖数据源不可用，功能禁用")

// Service 分析服务
type Service struct {
	store *dataset.Store
}

// NewService 创建分析服务实例
func NewService(store *dataset.Store) *Service {
	return &Service{store: store}
}

// snapshot 获取当前快照
func (s *Service) snapshot() (*dataset.Snapshot, error) {
	snap := s.store.Snapshot()
	if snap == nil {
		return nil, ErrNotReady
	}
	return snap, nil
}

// filtered 执行两阶段过滤管线
func (s *Service) filtered(criteria models.FilterCriteria) (dataset.OrderView, *dataset.Snapshot, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, nil, err
	}
	monitoring.FilterRuns.Inc()
	return FilterOrders(snap.Orders, criteria), snap, nil
}

// Meta 过滤控件元数据
func (s *Service) Meta() (models.FilterMeta, error) {
	snap, err := s.snapshot()
	if err != nil {
		return models.FilterMeta{}, err
	}
	return snap.FilterMeta(), nil
}

// FilteredOrders 过滤后订单视图（供导出）
func (s *Service) FilteredOrders(criteria models.FilterCriteria) (dataset.OrderView, error) {
	view, _, err := s.filtered(criteria)
	return view, err
}

// ItemView 条目视图（供导出），数据源缺失时功能禁用
func (s *Service) ItemView() (dataset.ItemView, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	if snap.ItemsErr != nil {
		return nil, fmt.Errorf("条目视图不可用: %w", ErrFeatureDisabled)
	}
	return snap.Items, nil
}

// Overview 头部KPI
func (s *Service) Overview(criteria models.FilterCriteria) (models.OverviewKPI, error) {
	view, _, err := s.filtered(criteria)
	if err != nil {
		return models.OverviewKPI{}, err
	}
	return OverviewKPIs(view), nil
}

// States 州级汇总
func (s *Service) States(criteria models.FilterCriteria) ([]models.StateSummary, error) {
	view, _, err := s.filtered(criteria)
	if err != nil {
		return nil, err
	}
	return SummarizeByState(view), nil
}

// Monthly 月度序列
func (s *Service) Monthly(criteria models.FilterCriteria) ([]models.MonthlySummary, error) {
	view, _, err := s.filtered(criteria)
	if err != nil {
		return nil, err
	}
	return SummarizeByMonth(view), nil
}

// MonthlyBreakdown 月度×支付方式展开
func (s *Service) MonthlyBreakdown(criteria models.FilterCriteria) ([]models.MonthlyPaymentRevenue, error) {
	view, _, err := s.filtered(criteria)
	if err != nil {
		return nil, err
	}
	return BreakdownMonthlyPayments(view), nil
}

// Categories 品类排行，条目/商品数据源缺失时功能禁用
func (s *Service) Categories(criteria models.FilterCriteria, topN int, metric string) ([]models.CategorySummary, error) {
	view, snap, err := s.filtered(criteria)
	if err != nil {
		return nil, err
	}
	if snap.ItemsErr != nil {
		return nil, fmt.Errorf("品类排行不可用: %w", ErrFeatureDisabled)
	}
	return RankCategories(view, snap.Items, topN, metric), nil
}

// Satisfaction 交付时效×评分，评价数据源缺失时功能禁用
func (s *Service) Satisfaction(criteria models.FilterCriteria) ([]models.ReviewDelaySummary, error) {
	view, snap, err := s.filtered(criteria)
	if err != nil {
		return nil, err
	}
	if snap.ReviewsErr != nil {
		return nil, fmt.Errorf("时效×评分分析不可用: %w", ErrFeatureDisabled)
	}
	return CorrelateDelayReviews(view, snap.Reviews), nil
}

// RFM RFM透传汇总，外部RFM表缺失时功能禁用
func (s *Service) RFM(topN int) (models.RFMSummary, error) {
	snap, err := s.snapshot()
	if err != nil {
		return models.RFMSummary{}, err
	}
	if snap.RFMErr != nil {
		return models.RFMSummary{}, fmt.Errorf("RFM分群不可用: %w", ErrFeatureDisabled)
	}
	return SummarizeRFM(snap.RFM, topN), nil
}

// RFMTable RFM原始表（供导出）
func (s *Service) RFMTable() (*models.RFMTable, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	if snap.RFMErr != nil {
		return nil, fmt.Errorf("RFM分群不可用: %w", ErrFeatureDisabled)
	}
	return snap.RFM, nil
}
