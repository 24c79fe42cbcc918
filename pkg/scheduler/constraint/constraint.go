// Package constraint 定义约束接口、权重表和惩罚池
package constraint

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	"github.com/google/uuid"

	apperrors "github.com/dienstplan/dienstplan/pkg/errors"
	"github.com/dienstplan/dienstplan/pkg/model"
	"github.com/dienstplan/dienstplan/pkg/scheduler/fabric"
)

// Type 约束类型标识
type Type string

const (
	// 硬约束类型
	TypeOneShiftPerDay  Type = "one_shift_per_day"
	TypeStaffingBounds  Type = "staffing_bounds"
	TypeTeamEligibility Type = "team_eligibility"
	TypeAbsenceBlocking Type = "absence_blocking"

	// 软约束类型
	TypeRestTime        Type = "rest_time"
	TypeConsecutiveDays Type = "consecutive_days"
	TypeFairness        Type = "workload_fairness"
	TypeMinWeeklyHours  Type = "min_weekly_hours"
)

// Category 约束类别
type Category string

const (
	CategoryHard Category = "hard" // 硬约束（必须满足）
	CategorySoft Category = "soft" // 软约束（尽量满足）
)

// 软约束默认权重
// 权重层级必须保持显式常量表，避免后续调参悄悄颠倒优先级：
// 休息时间 > 同班次连续天数 > 周最低工时 > 工作量公平
// 单次休息时间违规必须压过任何可达的公平性改进组合
const (
	DefaultWeightRestTime        = 1000
	DefaultWeightConsecutiveDays = 400
	DefaultWeightMinHours        = 50
	DefaultWeightFairness        = 1
)

// Weights 软约束权重表
type Weights struct {
	RestTime        int `json:"rest_time"`
	ConsecutiveDays int `json:"consecutive_days"`
	MinHours        int `json:"min_hours"`
	Fairness        int `json:"fairness"`
}

// DefaultWeights 返回默认权重表
func DefaultWeights() Weights {
	return Weights{
		RestTime:        DefaultWeightRestTime,
		ConsecutiveDays: DefaultWeightConsecutiveDays,
		MinHours:        DefaultWeightMinHours,
		Fairness:        DefaultWeightFairness,
	}
}

// Validate 校验权重层级
// 层级颠倒意味着安全相关软约束可能被美观性目标压制
func (w Weights) Validate() error {
	if w.Fairness <= 0 {
		return apperrors.InvalidModel("权重必须为正数")
	}
	if w.RestTime <= w.ConsecutiveDays {
		return apperrors.InvalidModel("休息时间权重必须高于连续天数权重")
	}
	if w.ConsecutiveDays <= w.MinHours {
		return apperrors.InvalidModel("连续天数权重必须高于周最低工时权重")
	}
	if w.MinHours <= w.Fairness {
		return apperrors.InvalidModel("周最低工时权重必须高于公平性权重")
	}
	return nil
}

// Options 每次求解传入的不可变约束配置
// 不使用进程级全局状态，以便不同调参的并发求解安全共存
type Options struct {
	Weights Weights `json:"weights"`
	// 最小法定休息时间（小时）
	MinRestHours int `json:"min_rest_hours"`
	// 周最低工时软约束开关（历史上硬约束版本曾导致不可行，默认停用）
	EnableMinHours bool `json:"enable_min_hours"`
	// 工作量公平软约束开关
	EnableFairness bool `json:"enable_fairness"`
}

// DefaultOptions 返回默认约束配置
func DefaultOptions() Options {
	return Options{
		Weights:        DefaultWeights(),
		MinRestHours:   11,
		EnableMinHours: false,
		EnableFairness: true,
	}
}

// PenaltyTerm 惩罚项
// 由具体软约束违规实例的指示（或偏差）变量与调优权重构成
type PenaltyTerm struct {
	Type        Type
	Weight      int64
	Expr        cpmodel.LinearArgument
	EmployeeID  uuid.UUID
	Date        string
	Description string
}

// Pool 惩罚池
// 目标装配器消费的全部加权惩罚项
type Pool struct {
	terms []PenaltyTerm
}

// NewPool 创建惩罚池
func NewPool() *Pool {
	return &Pool{terms: make([]PenaltyTerm, 0)}
}

// Add 添加惩罚项
func (p *Pool) Add(term PenaltyTerm) {
	p.terms = append(p.terms, term)
}

// Terms 返回全部惩罚项
func (p *Pool) Terms() []PenaltyTerm {
	return p.terms
}

// Count 返回惩罚项数量
func (p *Pool) Count() int {
	return len(p.terms)
}

// Objective 装配最小化目标 Σ (weight_i × indicator_i)
// 各池之间不做归一化，正确性依赖权重表保持安全项数值占优
func (p *Pool) Objective() *cpmodel.LinearExpr {
	obj := cpmodel.NewLinearExpr()
	for _, t := range p.terms {
		obj.AddTerm(t.Expr, t.Weight)
	}
	return obj
}

// Context 约束构建上下文
type Context struct {
	Model    *cpmodel.Builder
	Snapshot *model.Snapshot
	Fabric   *fabric.Fabric
	Pool     *Pool
	Options  Options
}

// Builder 约束构建器接口
type Builder interface {
	// Name 返回约束名称
	Name() string

	// Type 返回约束类型
	Type() Type

	// Category 返回约束类别
	Category() Category

	// Weight 返回约束权重（硬约束恒为最高）
	Weight() int

	// Apply 将约束编码进 CP-SAT 模型
	Apply(ctx *Context) error
}
