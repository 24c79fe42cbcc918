// Package builtin 提供内置约束实现
package builtin

import (
	"fmt"

	"github.com/dienstplan/dienstplan/pkg/model"
	"github.com/dienstplan/dienstplan/pkg/scheduler/constraint"
)

// RestTimeConstraint 班次间最小休息时间（软约束，最高权重层级）
// 禁止的班次转换（如晚班接次日早班、夜班接次日早班）意味着休息
// 时间低于法定最小值。休息时间安全必须压过包括公平性在内的
// 所有其他软目标，是模型中最接近硬约束的软规则
type RestTimeConstraint struct {
	*BaseConstraint
	minRestHours int
}

// NewRestTimeConstraint 创建休息时间软约束
func NewRestTimeConstraint(weight, minRestHours int) *RestTimeConstraint {
	return &RestTimeConstraint{
		BaseConstraint: NewBaseConstraint(
			"班次间最小休息",
			constraint.TypeRestTime,
			constraint.CategorySoft,
			weight,
		),
		minRestHours: minRestHours,
	}
}

// forbiddenTransitions 根据班次起止时刻计算禁止的相邻日转换对
// 前班结束到次日后班开始之间不足最小休息时间的组合被禁止
func (c *RestTimeConstraint) forbiddenTransitions(shiftTypes []*model.ShiftType) [][2]*model.ShiftType {
	var pairs [][2]*model.ShiftType
	for _, prev := range shiftTypes {
		for _, next := range shiftTypes {
			restMinutes := next.StartMinute() + 24*60 - prev.EndMinute()
			if restMinutes < c.minRestHours*60 {
				pairs = append(pairs, [2]*model.ShiftType{prev, next})
			}
		}
	}
	return pairs
}

// Apply 编码约束
// 对每个员工和相邻日期对：前班指示与后班指示同时为真时，
// 违规指示变量被强制为真，并以最高层级权重进入惩罚池
func (c *RestTimeConstraint) Apply(ctx *constraint.Context) error {
	pairs := c.forbiddenTransitions(ctx.Snapshot.ShiftTypes)
	if len(pairs) == 0 {
		return nil
	}

	dates := ctx.Fabric.Dates()
	for _, emp := range ctx.Snapshot.AssignableEmployees() {
		for i := 0; i+1 < len(dates); i++ {
			for _, pair := range pairs {
				prevWorks := ctx.Fabric.Works(emp.ID, dates[i], pair[0].Code)
				nextWorks := ctx.Fabric.Works(emp.ID, dates[i+1], pair[1].Code)

				violation := ctx.Model.NewBoolVar()
				// (prev ∧ next) ⇒ violation
				ctx.Model.AddBoolOr(prevWorks.Not(), nextWorks.Not(), violation)

				ctx.Pool.Add(constraint.PenaltyTerm{
					Type:       c.Type(),
					Weight:     int64(c.Weight()),
					Expr:       violation,
					EmployeeID: emp.ID,
					Date:       dates[i+1],
					Description: fmt.Sprintf(
						"员工 %s 在 %s %s 班后接 %s %s 班，休息不足 %d 小时",
						emp.Name, dates[i], pair[0].Code, dates[i+1], pair[1].Code, c.minRestHours,
					),
				})
			}
		}
	}
	return nil
}
