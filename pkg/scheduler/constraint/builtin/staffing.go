// Package builtin 提供内置约束实现
package builtin

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	apperrors "github.com/dienstplan/dienstplan/pkg/errors"
	"github.com/dienstplan/dienstplan/pkg/scheduler/constraint"
)

// StaffingBoundsConstraint 人员配置上下限
// 每个（日期，班次）的分配数之和必须落在该日期类别的 [min, max] 区间内
type StaffingBoundsConstraint struct {
	*BaseConstraint
}

// NewStaffingBoundsConstraint 创建人员配置硬约束
func NewStaffingBoundsConstraint() *StaffingBoundsConstraint {
	return &StaffingBoundsConstraint{
		BaseConstraint: NewBaseConstraint(
			"人员配置上下限",
			constraint.TypeStaffingBounds,
			constraint.CategoryHard,
			hardWeight,
		),
	}
}

// Apply 编码约束
// 合格人数不足最低配置属于不可行，由求解前诊断上报，这里不做放宽
func (c *StaffingBoundsConstraint) Apply(ctx *constraint.Context) error {
	for _, day := range ctx.Snapshot.Days {
		for _, shiftCode := range day.ShiftCodes {
			st := ctx.Snapshot.GetShiftType(shiftCode)
			if st == nil {
				return apperrors.InvalidModel(fmt.Sprintf("日历引用了未定义的班次类型 %s", shiftCode))
			}

			staffing := st.StaffingFor(day.Class)
			candidates := ctx.Fabric.CandidatesForDayShift(day.Date, shiftCode)

			sum := cpmodel.NewLinearExpr()
			for _, cand := range candidates {
				sum.Add(cand.Var)
			}
			ctx.Model.AddLinearConstraint(sum, cpmodel.NewDomain(int64(staffing.Min), int64(staffing.Max)))
		}
	}
	return nil
}
