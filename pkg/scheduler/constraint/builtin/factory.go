// Package builtin 提供内置约束实现
package builtin

import (
	"github.com/dienstplan/dienstplan/pkg/scheduler/constraint"
)

// RegisterDefaults 按配置注册全部内置约束
// 硬约束始终注册；软约束族根据开关注册，权重来自配置的权重表
func RegisterDefaults(m *constraint.Manager, opts constraint.Options) {
	// 硬约束
	m.Register(NewOneShiftPerDayConstraint())
	m.Register(NewStaffingBoundsConstraint())

	// 软约束
	m.Register(NewRestTimeConstraint(opts.Weights.RestTime, opts.MinRestHours))
	m.Register(NewConsecutiveDaysConstraint(opts.Weights.ConsecutiveDays))

	if opts.EnableFairness {
		m.Register(NewWorkloadFairnessConstraint(opts.Weights.Fairness))
	}
	if opts.EnableMinHours {
		m.Register(NewMinWeeklyHoursConstraint(opts.Weights.MinHours))
	}
}
