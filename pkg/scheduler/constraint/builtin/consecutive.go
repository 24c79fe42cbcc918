// Package builtin 提供内置约束实现
package builtin

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/dienstplan/dienstplan/pkg/scheduler/constraint"
)

// ConsecutiveDaysConstraint 同班次最大连续天数（软约束，次高权重层级）
// 对每个员工、每个班次类型，在每个长度为 maxConsecutive+1 的滑动
// 窗口内，若窗口被该班次完全占满则违规指示变量被强制为真
type ConsecutiveDaysConstraint struct {
	*BaseConstraint
}

// NewConsecutiveDaysConstraint 创建连续天数软约束
func NewConsecutiveDaysConstraint(weight int) *ConsecutiveDaysConstraint {
	return &ConsecutiveDaysConstraint{
		BaseConstraint: NewBaseConstraint(
			"同班次最大连续天数",
			constraint.TypeConsecutiveDays,
			constraint.CategorySoft,
			weight,
		),
	}
}

// Apply 编码约束
// 窗口占满 ⇔ 窗口内全部指示为真，等价子句：
// 任一天不上该班次，或违规指示为真
func (c *ConsecutiveDaysConstraint) Apply(ctx *constraint.Context) error {
	dates := ctx.Fabric.Dates()

	for _, st := range ctx.Snapshot.ShiftTypes {
		if st.MaxConsecutiveDays <= 0 {
			continue
		}
		window := st.MaxConsecutiveDays + 1
		if window > len(dates) {
			continue
		}

		for _, emp := range ctx.Snapshot.AssignableEmployees() {
			for start := 0; start+window <= len(dates); start++ {
				violation := ctx.Model.NewBoolVar()

				clause := make([]cpmodel.BoolVar, 0, window+1)
				for offset := 0; offset < window; offset++ {
					works := ctx.Fabric.Works(emp.ID, dates[start+offset], st.Code)
					clause = append(clause, works.Not())
				}
				clause = append(clause, violation)
				ctx.Model.AddBoolOr(clause...)

				ctx.Pool.Add(constraint.PenaltyTerm{
					Type:       c.Type(),
					Weight:     int64(c.Weight()),
					Expr:       violation,
					EmployeeID: emp.ID,
					Date:       dates[start],
					Description: fmt.Sprintf(
						"员工 %s 自 %s 起连续 %d 天 %s 班，超过限制 %d 天",
						emp.Name, dates[start], window, st.Code, st.MaxConsecutiveDays,
					),
				})
			}
		}
	}
	return nil
}
