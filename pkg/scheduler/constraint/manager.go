// Package constraint 定义约束接口、权重表和惩罚池
package constraint

import (
	"sort"
	"sync"

	"github.com/dienstplan/dienstplan/pkg/logger"
)

// Manager 约束管理器
type Manager struct {
	builders []Builder
	mu       sync.RWMutex
}

// NewManager 创建约束管理器
func NewManager() *Manager {
	return &Manager{
		builders: make([]Builder, 0),
	}
}

// Register 注册约束构建器
func (m *Manager) Register(b Builder) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// 同类型约束替换
	for i, existing := range m.builders {
		if existing.Type() == b.Type() {
			m.builders[i] = b
			return
		}
	}

	m.builders = append(m.builders, b)

	// 硬约束在前，权重高的在前
	sort.SliceStable(m.builders, func(i, j int) bool {
		bi, bj := m.builders[i], m.builders[j]
		if bi.Category() != bj.Category() {
			return bi.Category() == CategoryHard
		}
		return bi.Weight() > bj.Weight()
	})
}

// Unregister 注销约束构建器
func (m *Manager) Unregister(t Type) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, b := range m.builders {
		if b.Type() == t {
			m.builders = append(m.builders[:i], m.builders[i+1:]...)
			return
		}
	}
}

// GetAll 获取所有约束构建器
func (m *Manager) GetAll() []Builder {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Builder, len(m.builders))
	copy(result, m.builders)
	return result
}

// GetByCategory 按类别获取约束构建器
func (m *Manager) GetByCategory(cat Category) []Builder {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []Builder
	for _, b := range m.builders {
		if b.Category() == cat {
			result = append(result, b)
		}
	}
	return result
}

// Count 返回约束构建器数量
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.builders)
}

// ApplyAll 将所有约束编码进模型，硬约束优先
func (m *Manager) ApplyAll(ctx *Context) error {
	builders := m.GetAll()

	for _, b := range builders {
		if err := b.Apply(ctx); err != nil {
			return err
		}
		logger.Debug().
			Str("constraint", string(b.Type())).
			Str("category", string(b.Category())).
			Msg("约束已编码")
	}
	return nil
}

// Summary 返回约束摘要
func (m *Manager) Summary() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hard := 0
	soft := 0
	for _, b := range m.builders {
		if b.Category() == CategoryHard {
			hard++
		} else {
			soft++
		}
	}

	return map[string]interface{}{
		"total": len(m.builders),
		"hard":  hard,
		"soft":  soft,
	}
}
