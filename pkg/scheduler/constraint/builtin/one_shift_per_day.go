// Package builtin 提供内置约束实现
package builtin

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/dienstplan/dienstplan/pkg/scheduler/constraint"
)

// OneShiftPerDayConstraint 每人每天至多一个班次
type OneShiftPerDayConstraint struct {
	*BaseConstraint
}

// NewOneShiftPerDayConstraint 创建每日单班硬约束
func NewOneShiftPerDayConstraint() *OneShiftPerDayConstraint {
	return &OneShiftPerDayConstraint{
		BaseConstraint: NewBaseConstraint(
			"每日单班",
			constraint.TypeOneShiftPerDay,
			constraint.CategoryHard,
			hardWeight,
		),
	}
}

// Apply 编码约束：员工当日候选变量之和 ≤ 1
func (c *OneShiftPerDayConstraint) Apply(ctx *constraint.Context) error {
	for _, emp := range ctx.Snapshot.AssignableEmployees() {
		for _, day := range ctx.Snapshot.Days {
			candidates := ctx.Fabric.CandidatesForEmployeeDay(emp.ID, day.Date)
			if len(candidates) < 2 {
				continue
			}

			vars := make([]cpmodel.BoolVar, 0, len(candidates))
			for _, cand := range candidates {
				vars = append(vars, cand.Var)
			}
			ctx.Model.AddAtMostOne(vars...)
		}
	}
	return nil
}
