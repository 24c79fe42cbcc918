// Package validator 提供排班结果验证功能
package validator

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dienstplan/dienstplan/pkg/model"
)

// ViolationType 违规类型
type ViolationType string

const (
	ViolationDoubleBooking ViolationType = "double_booking" // 一人一天多班
	ViolationAbsence       ViolationType = "absence"        // 缺勤日被排班
	ViolationUnderstaffed  ViolationType = "understaffed"   // 低于最低配置
	ViolationOverstaffed   ViolationType = "overstaffed"    // 高于最高配置
	ViolationIneligible    ViolationType = "ineligible"     // 团队不覆盖该班次
)

// Violation 违规信息
type Violation struct {
	Type       ViolationType `json:"type"`
	EmployeeID uuid.UUID     `json:"employee_id,omitempty"`
	Date       string        `json:"date"`
	ShiftCode  string        `json:"shift_code,omitempty"`
	Message    string        `json:"message"`
}

// RosterValidator 排班结果验证器
// 对已产出的排班做事后审计：人员配置区间、无重复排班、缺勤互斥
type RosterValidator struct {
	snapshot *model.Snapshot
}

// NewRosterValidator 创建排班结果验证器
func NewRosterValidator(snap *model.Snapshot) *RosterValidator {
	return &RosterValidator{snapshot: snap}
}

// ValidateAll 检测排班结果中的全部违规
func (v *RosterValidator) ValidateAll(assignments []*model.Assignment) []Violation {
	var violations []Violation
	violations = append(violations, v.detectDoubleBookings(assignments)...)
	violations = append(violations, v.detectAbsenceViolations(assignments)...)
	violations = append(violations, v.detectStaffingViolations(assignments)...)
	violations = append(violations, v.detectEligibilityViolations(assignments)...)
	return violations
}

// IsValid 检查排班结果是否无违规
func (v *RosterValidator) IsValid(assignments []*model.Assignment) bool {
	return len(v.ValidateAll(assignments)) == 0
}

// detectDoubleBookings 检测一人一天被排多个班次
func (v *RosterValidator) detectDoubleBookings(assignments []*model.Assignment) []Violation {
	var violations []Violation

	seen := make(map[string]bool)
	for _, a := range assignments {
		key := a.EmployeeID.String() + "/" + a.Date
		if seen[key] {
			violations = append(violations, Violation{
				Type:       ViolationDoubleBooking,
				EmployeeID: a.EmployeeID,
				Date:       a.Date,
				ShiftCode:  a.ShiftCode,
				Message:    fmt.Sprintf("员工 %s 在 %s 被排多个班次", a.EmployeeID, a.Date),
			})
		}
		seen[key] = true
	}
	return violations
}

// detectAbsenceViolations 检测缺勤日被排班
func (v *RosterValidator) detectAbsenceViolations(assignments []*model.Assignment) []Violation {
	var violations []Violation

	for _, a := range assignments {
		if !v.snapshot.IsBlocked(a.EmployeeID, a.Date) {
			continue
		}
		violations = append(violations, Violation{
			Type:       ViolationAbsence,
			EmployeeID: a.EmployeeID,
			Date:       a.Date,
			ShiftCode:  a.ShiftCode,
			Message:    fmt.Sprintf("员工 %s 在缺勤日 %s 被排班", a.EmployeeID, a.Date),
		})
	}
	return violations
}

// detectStaffingViolations 检测人员配置越界
func (v *RosterValidator) detectStaffingViolations(assignments []*model.Assignment) []Violation {
	var violations []Violation

	counts := make(map[string]int)
	for _, a := range assignments {
		counts[a.Date+"/"+a.ShiftCode]++
	}

	for _, day := range v.snapshot.Days {
		for _, shiftCode := range day.ShiftCodes {
			st := v.snapshot.GetShiftType(shiftCode)
			if st == nil {
				continue
			}
			staffing := st.StaffingFor(day.Class)
			count := counts[day.Date+"/"+shiftCode]

			if count < staffing.Min {
				violations = append(violations, Violation{
					Type:      ViolationUnderstaffed,
					Date:      day.Date,
					ShiftCode: shiftCode,
					Message:   fmt.Sprintf("%s %s 班仅排 %d 人，低于最低 %d 人", day.Date, shiftCode, count, staffing.Min),
				})
			}
			if count > staffing.Max {
				violations = append(violations, Violation{
					Type:      ViolationOverstaffed,
					Date:      day.Date,
					ShiftCode: shiftCode,
					Message:   fmt.Sprintf("%s %s 班排了 %d 人，高于最高 %d 人", day.Date, shiftCode, count, staffing.Max),
				})
			}
		}
	}
	return violations
}

// detectEligibilityViolations 检测团队不覆盖的班次分配
func (v *RosterValidator) detectEligibilityViolations(assignments []*model.Assignment) []Violation {
	var violations []Violation

	for _, a := range assignments {
		team := v.snapshot.TeamOf(a.EmployeeID)
		if team != nil && team.Covers(a.ShiftCode) {
			continue
		}
		violations = append(violations, Violation{
			Type:       ViolationIneligible,
			EmployeeID: a.EmployeeID,
			Date:       a.Date,
			ShiftCode:  a.ShiftCode,
			Message:    fmt.Sprintf("员工 %s 的团队不覆盖 %s 班", a.EmployeeID, a.ShiftCode),
		})
	}
	return violations
}
