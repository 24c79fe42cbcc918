package validator

import (
	"testing"

	"github.com/google/uuid"

	"github.com/dienstplan/dienstplan/pkg/model"
)

// buildAuditSnapshot 两名员工、一个团队、单班次、两天规划（周一/周二）
func buildAuditSnapshot() (*model.Snapshot, *model.Employee, *model.Employee) {
	e1 := &model.Employee{BaseModel: model.NewBaseModel(), Name: "张三", Code: "E001", Status: model.StatusActive}
	e2 := &model.Employee{BaseModel: model.NewBaseModel(), Name: "李四", Code: "E002", Status: model.StatusActive}

	team := &model.Team{
		BaseModel:  model.NewBaseModel(),
		Name:       "A组",
		MemberIDs:  []uuid.UUID{e1.ID, e2.ID},
		ShiftCodes: []string{"early"},
	}
	e1.TeamID = &team.ID
	e2.TeamID = &team.ID

	early := &model.ShiftType{
		BaseModel:       model.NewBaseModel(),
		Code:            "early",
		StartTime:       "06:00",
		EndTime:         "14:00",
		Duration:        8,
		WeekdayStaffing: model.Staffing{Min: 1, Max: 1},
		WeekendStaffing: model.Staffing{Min: 1, Max: 1},
	}

	horizon := model.DateRange{StartDate: "2026-01-05", EndDate: "2026-01-06"}
	snap := model.NewSnapshot(horizon, []*model.Employee{e1, e2}, []*model.Team{team}, []*model.ShiftType{early}, nil)
	return snap, e1, e2
}

func countByType(violations []Violation, typ ViolationType) int {
	n := 0
	for _, v := range violations {
		if v.Type == typ {
			n++
		}
	}
	return n
}

func TestRosterValidator_ValidRoster(t *testing.T) {
	snap, e1, e2 := buildAuditSnapshot()
	rv := NewRosterValidator(snap)

	assignments := []*model.Assignment{
		{EmployeeID: e1.ID, Date: "2026-01-05", ShiftCode: "early", Hours: 8},
		{EmployeeID: e2.ID, Date: "2026-01-06", ShiftCode: "early", Hours: 8},
	}

	if violations := rv.ValidateAll(assignments); len(violations) != 0 {
		t.Errorf("合法排班不应有违规: %v", violations)
	}
	if !rv.IsValid(assignments) {
		t.Error("IsValid 应该返回 true")
	}
}

func TestRosterValidator_DoubleBooking(t *testing.T) {
	snap, e1, e2 := buildAuditSnapshot()
	rv := NewRosterValidator(snap)

	assignments := []*model.Assignment{
		{EmployeeID: e1.ID, Date: "2026-01-05", ShiftCode: "early", Hours: 8},
		{EmployeeID: e1.ID, Date: "2026-01-05", ShiftCode: "early", Hours: 8},
		{EmployeeID: e2.ID, Date: "2026-01-06", ShiftCode: "early", Hours: 8},
	}

	violations := rv.ValidateAll(assignments)
	if got := countByType(violations, ViolationDoubleBooking); got != 1 {
		t.Errorf("重复排班违规数 = %d, expected 1", got)
	}
}

func TestRosterValidator_AbsenceViolation(t *testing.T) {
	base, e1, e2 := buildAuditSnapshot()
	absences := []*model.Absence{{
		BaseModel:  model.NewBaseModel(),
		EmployeeID: e1.ID,
		Type:       model.AbsenceVacation,
		Range:      model.DateRange{StartDate: "2026-01-05", EndDate: "2026-01-05"},
	}}
	snap := model.NewSnapshot(base.Horizon, base.Employees, base.Teams, base.ShiftTypes, absences)
	rv := NewRosterValidator(snap)

	assignments := []*model.Assignment{
		{EmployeeID: e1.ID, Date: "2026-01-05", ShiftCode: "early", Hours: 8},
		{EmployeeID: e2.ID, Date: "2026-01-06", ShiftCode: "early", Hours: 8},
	}

	violations := rv.ValidateAll(assignments)
	if got := countByType(violations, ViolationAbsence); got != 1 {
		t.Errorf("缺勤违规数 = %d, expected 1", got)
	}
}

func TestRosterValidator_StaffingViolations(t *testing.T) {
	snap, e1, e2 := buildAuditSnapshot()
	rv := NewRosterValidator(snap)

	tests := []struct {
		name        string
		assignments []*model.Assignment
		typ         ViolationType
	}{
		{
			"人数不足",
			[]*model.Assignment{
				{EmployeeID: e1.ID, Date: "2026-01-05", ShiftCode: "early", Hours: 8},
				// 1月6日无人
			},
			ViolationUnderstaffed,
		},
		{
			"人数超配",
			[]*model.Assignment{
				{EmployeeID: e1.ID, Date: "2026-01-05", ShiftCode: "early", Hours: 8},
				{EmployeeID: e2.ID, Date: "2026-01-05", ShiftCode: "early", Hours: 8},
				{EmployeeID: e1.ID, Date: "2026-01-06", ShiftCode: "early", Hours: 8},
			},
			ViolationOverstaffed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := rv.ValidateAll(tt.assignments)
			if got := countByType(violations, tt.typ); got != 1 {
				t.Errorf("%s 违规数 = %d, expected 1", tt.typ, got)
			}
		})
	}
}

func TestRosterValidator_IneligibleAssignment(t *testing.T) {
	snap, e1, e2 := buildAuditSnapshot()
	rv := NewRosterValidator(snap)

	// night 班次不被任何团队覆盖
	assignments := []*model.Assignment{
		{EmployeeID: e1.ID, Date: "2026-01-05", ShiftCode: "night", Hours: 8},
		{EmployeeID: e2.ID, Date: "2026-01-05", ShiftCode: "early", Hours: 8},
		{EmployeeID: e1.ID, Date: "2026-01-06", ShiftCode: "early", Hours: 8},
	}

	violations := rv.ValidateAll(assignments)
	if got := countByType(violations, ViolationIneligible); got != 1 {
		t.Errorf("资格违规数 = %d, expected 1", got)
	}
}
