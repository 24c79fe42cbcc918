// Package solver 提供基于 CP-SAT 的排班求解器
package solver

import (
	"time"

	"github.com/dienstplan/dienstplan/pkg/model"
	"github.com/dienstplan/dienstplan/pkg/scheduler/constraint"
)

// Status 求解状态
// 状态机：BUILT → SOLVING → {OPTIMAL, FEASIBLE, INFEASIBLE, TIMEOUT, ERROR}
type Status string

const (
	StatusBuilt      Status = "BUILT"
	StatusSolving    Status = "SOLVING"
	StatusOptimal    Status = "OPTIMAL"
	StatusFeasible   Status = "FEASIBLE"
	StatusInfeasible Status = "INFEASIBLE"
	StatusTimeout    Status = "TIMEOUT"
	StatusError      Status = "ERROR"
)

// HasRoster 检查状态是否携带可用的排班结果
func (s Status) HasRoster() bool {
	return s == StatusOptimal || s == StatusFeasible || s == StatusTimeout
}

// ReasonKind 不可行原因类别
type ReasonKind string

const (
	// 某日某班次的合格人数不足最低配置
	ReasonStaffingShortfall ReasonKind = "staffing_shortfall"
	// 可排班员工总数不足
	ReasonEmployeeShortfall ReasonKind = "employee_shortfall"
	// 求解器判定不可行但未能定位具体约束族
	ReasonUnknown ReasonKind = "unknown"
)

// InfeasibilityReason 可诊断的不可行原因
type InfeasibilityReason struct {
	Kind      ReasonKind `json:"kind"`
	Date      string     `json:"date,omitempty"`
	ShiftCode string     `json:"shift_code,omitempty"`
	Required  int        `json:"required,omitempty"`
	Eligible  int        `json:"eligible,omitempty"`
	Message   string     `json:"message"`
}

// Result 求解结果
// 单一带标签的结果结构，绝不使用位置元组，
// 结构形状变化不会悄悄破坏调用方
type Result struct {
	Status Status `json:"status"`

	// 分配列表与日历视图来自同一次变量读取，不会互相矛盾
	Assignments []*model.Assignment `json:"assignments"`
	View        model.ScheduleView  `json:"view"`

	// 不可行时的可诊断原因集
	Reasons []InfeasibilityReason `json:"reasons,omitempty"`

	// 目标值与按约束族的惩罚合计
	Objective     float64                   `json:"objective"`
	PenaltyTotals map[constraint.Type]int64 `json:"penalty_totals"`

	// 超时返回的可行解标记为非最优，调用方不应未经复核视为最终结果
	NonOptimal bool `json:"non_optimal"`

	WallTime time.Duration `json:"wall_time"`
	Message  string        `json:"message,omitempty"`
}

// TotalPenalty 返回全部软约束惩罚合计
// 软违规永远不会升级为硬失败，只通过非零惩罚合计可见
func (r *Result) TotalPenalty() int64 {
	var total int64
	for _, v := range r.PenaltyTotals {
		total += v
	}
	return total
}

// newEmptyResult 创建空结果
func newEmptyResult(status Status, message string) *Result {
	return &Result{
		Status:        status,
		Assignments:   make([]*model.Assignment, 0),
		View:          make(model.ScheduleView),
		PenaltyTotals: make(map[constraint.Type]int64),
		Message:       message,
	}
}
