/*
 * @module service/loader/store
 * @description 加载结果记忆化存储：按源文件身份（路径+大小+修改时间）缓存规范化表，
 *              同一会话内源文件未变化时不再产生磁盘IO
 * @architecture 分层架构 - 数据接入层缓存
 * @documentReference dev_docs/model.md
 * @stateFlow 请求表 -> 指纹比对 -> 命中返回缓存快照 / 未命中重新加载并缓存
 * @rules 缓存值是不可变快照，读取无需加锁；失效仅由源文件变化或显式Invalidate触发
 * @dependencies os, sync
 * @refs service/dataset, service/scheduler
 */

package loader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"marketing-dashboard-service/service/models"
)

// Store 进程内加载缓存
type Store struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	fingerprint string
	value       any
}

// NewStore 创建加载缓存实例
func NewStore() *Store {
	return &Store{entries: make(map[string]cacheEntry)}
}

// Fingerprint 源文件身份指纹，文件不可访问时返回ErrSourceUnavailable
func Fingerprint(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("访问数据源文件 %s 失败: %w", path, ErrSourceUnavailable)
	}
	return fmt.Sprintf("%d:%d", info.Size(), info.ModTime().UnixNano()), nil
}

// Invalidate 清空全部缓存条目
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]cacheEntry)
}

// load 记忆化加载：指纹一致直接返回缓存值，否则读盘重建
func (s *Store) load(path string, build func(*table) any) (any, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	fp, err := Fingerprint(abs)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	entry, ok := s.entries[abs]
	s.mu.RUnlock()
	if ok && entry.fingerprint == fp {
		return entry.value, nil
	}

	t, err := readTable(abs)
	if err != nil {
		return nil, err
	}
	value := build(t)

	s.mu.Lock()
	s.entries[abs] = cacheEntry{fingerprint: fp, value: value}
	s.mu.Unlock()

	slog.Debug("数据源加载完成", "path", abs, "rows", len(t.rows))
	return value, nil
}

// Orders 加载订单表
func (s *Store) Orders(path string) ([]models.OrderRow, error) {
	v, err := s.load(path, func(t *table) any { return parseOrders(t) })
	if err != nil {
		return nil, err
	}
	return v.([]models.OrderRow), nil
}

// Payments 加载支付表
func (s *Store) Payments(path string) ([]models.PaymentRow, error) {
	v, err := s.load(path, func(t *table) any { return parsePayments(t) })
	if err != nil {
		return nil, err
	}
	return v.([]models.PaymentRow), nil
}

// Customers 加载客户表
func (s *Store) Customers(path string) ([]models.CustomerRow, error) {
	v, err := s.load(path, func(t *table) any { return parseCustomers(t) })
	if err != nil {
		return nil, err
	}
	return v.([]models.CustomerRow), nil
}

// Items 加载订单条目表
func (s *Store) Items(path string) ([]models.ItemRow, error) {
	v, err := s.load(path, func(t *table) any { return parseItems(t) })
	if err != nil {
		return nil, err
	}
	return v.([]models.ItemRow), nil
}

// Products 加载商品表
func (s *Store) Products(path string) ([]models.ProductRow, error) {
	v, err := s.load(path, func(t *table) any { return parseProducts(t) })
	if err != nil {
		return nil, err
	}
	return v.([]models.ProductRow), nil
}

// Reviews 加载评价表（已按订单去重）
func (s *Store) Reviews(path string) ([]models.ReviewRecord, error) {
	v, err := s.load(path, func(t *table) any { return parseReviews(t) })
	if err != nil {
		return nil, err
	}
	return v.([]models.ReviewRecord), nil
}

// RFM 加载外部RFM分群表
func (s *Store) RFM(path string) (*models.RFMTable, error) {
	v, err := s.load(path, func(t *table) any { return parseRFM(t) })
	if err != nil {
		return nil, err
	}
	return v.(*models.RFMTable), nil
}
