// Package builtin 提供内置约束实现
package builtin

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/dienstplan/dienstplan/pkg/scheduler/constraint"
)

// WorkloadFairnessConstraint 工作量公平性（软约束，最低权重层级）
// 惩罚每个员工总工时相对同组平均值的偏差，抑制系统性多排/少排
type WorkloadFairnessConstraint struct {
	*BaseConstraint
}

// NewWorkloadFairnessConstraint 创建工作量公平软约束
func NewWorkloadFairnessConstraint(weight int) *WorkloadFairnessConstraint {
	return &WorkloadFairnessConstraint{
		BaseConstraint: NewBaseConstraint(
			"工作量公平性",
			constraint.TypeFairness,
			constraint.CategorySoft,
			weight,
		),
	}
}

// Apply 编码约束
// 为避免整数除法，偏差按 N 倍工时度量：
// dev_e ≥ N·hours_e − Σhours 且 dev_e ≥ Σhours − N·hours_e
// dev_e 是一等整数决策变量，以公平权重进入惩罚池
func (c *WorkloadFairnessConstraint) Apply(ctx *constraint.Context) error {
	employees := ctx.Snapshot.AssignableEmployees()
	n := len(employees)
	if n < 2 {
		return nil
	}

	// 单人可达工时上界，用于偏差变量的定义域
	maxPerEmployee := 0
	perEmployeeHours := make(map[string]int)
	for _, cand := range ctx.Fabric.Candidates() {
		perEmployeeHours[cand.EmployeeID.String()] += cand.Hours
	}
	for _, hours := range perEmployeeHours {
		if hours > maxPerEmployee {
			maxPerEmployee = hours
		}
	}

	for _, emp := range employees {
		dev := ctx.Model.NewIntVar(0, int64(n*maxPerEmployee))

		// N·hours_e − Σhours ≤ dev
		over := cpmodel.NewLinearExpr()
		over.Add(dev)
		for _, cand := range ctx.Fabric.Candidates() {
			if cand.EmployeeID == emp.ID {
				over.AddTerm(cand.Var, -int64(n*cand.Hours))
			}
			over.AddTerm(cand.Var, int64(cand.Hours))
		}
		ctx.Model.AddGreaterOrEqual(over, cpmodel.NewConstant(0))

		// Σhours − N·hours_e ≤ dev
		under := cpmodel.NewLinearExpr()
		under.Add(dev)
		for _, cand := range ctx.Fabric.Candidates() {
			if cand.EmployeeID == emp.ID {
				under.AddTerm(cand.Var, int64(n*cand.Hours))
			}
			under.AddTerm(cand.Var, -int64(cand.Hours))
		}
		ctx.Model.AddGreaterOrEqual(under, cpmodel.NewConstant(0))

		ctx.Pool.Add(constraint.PenaltyTerm{
			Type:        c.Type(),
			Weight:      int64(c.Weight()),
			Expr:        dev,
			EmployeeID:  emp.ID,
			Description: fmt.Sprintf("员工 %s 工时偏离平均值", emp.Name),
		})
	}
	return nil
}
