package stats

import (
	"testing"

	"github.com/google/uuid"

	"github.com/dienstplan/dienstplan/pkg/model"
)

func makeAssignments(empID uuid.UUID, dates []string, hours int) []*model.Assignment {
	result := make([]*model.Assignment, 0, len(dates))
	for _, d := range dates {
		result = append(result, &model.Assignment{
			EmployeeID: empID,
			Date:       d,
			ShiftCode:  "early",
			Hours:      hours,
		})
	}
	return result
}

func TestReconciler_TrainingCreditsFullDays(t *testing.T) {
	window := model.DateRange{StartDate: "2026-01-01", EndDate: "2026-01-28"}
	emp := &model.Employee{BaseModel: model.NewBaseModel(), Name: "张三", Status: model.StatusActive}

	// 1月5日(周一)至1月11日(周日)整周培训
	absences := []*model.Absence{{
		BaseModel:  model.NewBaseModel(),
		EmployeeID: emp.ID,
		Type:       model.AbsenceTraining,
		Range:      model.DateRange{StartDate: "2026-01-05", EndDate: "2026-01-11"},
	}}

	// 培训周之外每天一个8小时班：1月1-4日 + 1月12-28日 = 21天
	var dates []string
	dates = append(dates, model.DateRange{StartDate: "2026-01-01", EndDate: "2026-01-04"}.Days()...)
	dates = append(dates, model.DateRange{StartDate: "2026-01-12", EndDate: "2026-01-28"}.Days()...)
	assignments := makeAssignments(emp.ID, dates, 8)

	summaries := NewReconciler().Reconcile(window, []*model.Employee{emp}, assignments, absences)
	if len(summaries) != 1 {
		t.Fatalf("汇总数量 = %d, expected 1", len(summaries))
	}

	s := summaries[0]
	if s.ShiftCount != 21 {
		t.Errorf("班次数 = %d, expected 21", s.ShiftCount)
	}
	if s.ShiftHours != 168 {
		t.Errorf("班次工时 = %v, expected 168", s.ShiftHours)
	}
	// 7个培训日 × 8小时
	if s.CreditedAbsenceHours != 56 {
		t.Errorf("培训计入工时 = %v, expected 56", s.CreditedAbsenceHours)
	}
	if s.TotalHours != 224 {
		t.Errorf("总工时 = %v, expected 224", s.TotalHours)
	}
}

func TestReconciler_AbsenceDayAssignmentNotDoubleCounted(t *testing.T) {
	window := model.DateRange{StartDate: "2026-01-01", EndDate: "2026-01-28"}
	emp := &model.Employee{BaseModel: model.NewBaseModel(), Name: "张三", Status: model.StatusActive}

	absences := []*model.Absence{{
		BaseModel:  model.NewBaseModel(),
		EmployeeID: emp.ID,
		Type:       model.AbsenceTraining,
		Range:      model.DateRange{StartDate: "2026-01-05", EndDate: "2026-01-11"},
	}}

	// 培训范围内残留的分配不计工时，培训日只按计入工时核算
	assignments := makeAssignments(emp.ID, []string{"2026-01-02", "2026-01-06"}, 8)

	s := NewReconciler().Reconcile(window, []*model.Employee{emp}, assignments, absences)[0]
	if s.ShiftCount != 1 || s.ShiftHours != 8 {
		t.Errorf("缺勤日分配不应计入: count=%d hours=%v", s.ShiftCount, s.ShiftHours)
	}
	if s.TotalHours != 8+56 {
		t.Errorf("总工时 = %v, expected 64", s.TotalHours)
	}
}

func TestReconciler_NonCreditAbsenceTypes(t *testing.T) {
	window := model.DateRange{StartDate: "2026-01-01", EndDate: "2026-01-28"}
	emp := &model.Employee{BaseModel: model.NewBaseModel(), Name: "李四", Status: model.StatusActive}

	tests := []struct {
		name string
		typ  model.AbsenceType
	}{
		{"病假计0小时", model.AbsenceSick},
		{"休假计0小时", model.AbsenceVacation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			absences := []*model.Absence{{
				BaseModel:  model.NewBaseModel(),
				EmployeeID: emp.ID,
				Type:       tt.typ,
				Range:      model.DateRange{StartDate: "2026-01-05", EndDate: "2026-01-09"},
			}}
			s := NewReconciler().Reconcile(window, []*model.Employee{emp}, nil, absences)[0]
			if s.CreditedAbsenceHours != 0 {
				t.Errorf("计入工时 = %v, expected 0", s.CreditedAbsenceHours)
			}
			if s.TotalHours != 0 {
				t.Errorf("总工时 = %v, expected 0", s.TotalHours)
			}
		})
	}
}

func TestReconciler_ClipsAbsenceToWindow(t *testing.T) {
	// 培训1月26日至2月6日，报表窗口到1月31日截止：仅6天计入
	window := model.DateRange{StartDate: "2026-01-01", EndDate: "2026-01-31"}
	emp := &model.Employee{BaseModel: model.NewBaseModel(), Name: "王五", Status: model.StatusActive}

	absences := []*model.Absence{{
		BaseModel:  model.NewBaseModel(),
		EmployeeID: emp.ID,
		Type:       model.AbsenceTraining,
		Range:      model.DateRange{StartDate: "2026-01-26", EndDate: "2026-02-06"},
	}}

	s := NewReconciler().Reconcile(window, []*model.Employee{emp}, nil, absences)[0]
	if s.CreditedAbsenceHours != 48 {
		t.Errorf("裁剪后计入工时 = %v, expected 48", s.CreditedAbsenceHours)
	}
}

func TestReconciler_IgnoresOutOfWindowAssignments(t *testing.T) {
	window := model.DateRange{StartDate: "2026-01-05", EndDate: "2026-01-11"}
	emp := &model.Employee{BaseModel: model.NewBaseModel(), Name: "赵六", Status: model.StatusActive}

	assignments := makeAssignments(emp.ID, []string{"2026-01-04", "2026-01-06", "2026-01-12"}, 8)

	s := NewReconciler().Reconcile(window, []*model.Employee{emp}, assignments, nil)[0]
	if s.ShiftCount != 1 || s.TotalHours != 8 {
		t.Errorf("窗口外分配不应计入: count=%d total=%v", s.ShiftCount, s.TotalHours)
	}
}
