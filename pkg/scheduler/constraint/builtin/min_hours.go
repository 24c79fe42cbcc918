// Package builtin 提供内置约束实现
package builtin

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/dienstplan/dienstplan/pkg/model"
	"github.com/dienstplan/dienstplan/pkg/scheduler/constraint"
)

// MinWeeklyHoursConstraint 周最低工时（可选软约束，默认停用）
// 历史上的硬约束版本会导致实例不可行：团队规模刻意高于最低配置
// 以吸收缺勤，强制每人每周达到工时下限会相对配置下限过约束模型。
// 因此只做惩罚，不做禁止
type MinWeeklyHoursConstraint struct {
	*BaseConstraint
}

// NewMinWeeklyHoursConstraint 创建周最低工时软约束
func NewMinWeeklyHoursConstraint(weight int) *MinWeeklyHoursConstraint {
	return &MinWeeklyHoursConstraint{
		BaseConstraint: NewBaseConstraint(
			"周最低工时",
			constraint.TypeMinWeeklyHours,
			constraint.CategorySoft,
			weight,
		),
	}
}

// weeklyTarget 返回员工的周工时目标
// 取所属团队覆盖班次类型中最小的名义周工时
func weeklyTarget(ctx *constraint.Context, emp *model.Employee) int {
	team := ctx.Snapshot.TeamOf(emp.ID)
	if team == nil {
		return 0
	}

	target := 0
	for _, code := range team.ShiftCodes {
		st := ctx.Snapshot.GetShiftType(code)
		if st == nil || st.WeeklyHours <= 0 {
			continue
		}
		if target == 0 || st.WeeklyHours < target {
			target = st.WeeklyHours
		}
	}
	return target
}

// Apply 编码约束
// 将规划范围切分为从首日起的 7 天块，每块每人一个缺口变量：
// short_ew ≥ target − Σhours_ew，以中等权重进入惩罚池
func (c *MinWeeklyHoursConstraint) Apply(ctx *constraint.Context) error {
	dates := ctx.Fabric.Dates()

	for _, emp := range ctx.Snapshot.AssignableEmployees() {
		target := weeklyTarget(ctx, emp)
		if target <= 0 {
			continue
		}

		for start := 0; start < len(dates); start += 7 {
			end := start + 7
			if end > len(dates) {
				// 不完整的尾周不计缺口
				break
			}

			short := ctx.Model.NewIntVar(0, int64(target))

			// short + Σhours ≥ target
			expr := cpmodel.NewLinearExpr()
			expr.Add(short)
			for offset := start; offset < end; offset++ {
				for _, cand := range ctx.Fabric.CandidatesForEmployeeDay(emp.ID, dates[offset]) {
					expr.AddTerm(cand.Var, int64(cand.Hours))
				}
			}
			ctx.Model.AddGreaterOrEqual(expr, cpmodel.NewConstant(int64(target)))

			ctx.Pool.Add(constraint.PenaltyTerm{
				Type:       c.Type(),
				Weight:     int64(c.Weight()),
				Expr:       short,
				EmployeeID: emp.ID,
				Date:       dates[start],
				Description: fmt.Sprintf(
					"员工 %s 自 %s 起一周工时不足 %d 小时",
					emp.Name, dates[start], target,
				),
			})
		}
	}
	return nil
}
