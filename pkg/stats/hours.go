// Package stats 提供排班统计与工时核算功能
package stats

import (
	"github.com/google/uuid"

	"github.com/dienstplan/dienstplan/pkg/model"
)

// HoursSummary 单个员工在报表窗口内的工时汇总
type HoursSummary struct {
	EmployeeID   uuid.UUID `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	ShiftCount   int       `json:"shift_count"`
	ShiftHours   float64   `json:"shift_hours"`
	// 培训缺勤按每天 8 小时计入的工时
	CreditedAbsenceHours float64 `json:"credited_absence_hours"`
	TotalHours           float64 `json:"total_hours"`
}

// Reconciler 工时核算器
// 从排班结果和缺勤记录推导每人应计工时
type Reconciler struct{}

// NewReconciler 创建工时核算器
func NewReconciler() *Reconciler {
	return &Reconciler{}
}

// Reconcile 核算报表窗口内每个员工的应计工时
// 应计工时 = 窗口内分配的名义工时之和
//   + 培训类缺勤与窗口重叠天数 × 8（部分重叠裁剪到窗口边界）
// 非培训类缺勤计 0 小时；缺勤范围内的分配不计工时，
// 避免与已撤销分配重复计算
func (r *Reconciler) Reconcile(window model.DateRange, employees []*model.Employee, assignments []*model.Assignment, absences []*model.Absence) []*HoursSummary {
	absencesByEmp := make(map[uuid.UUID][]*model.Absence)
	for _, a := range absences {
		absencesByEmp[a.EmployeeID] = append(absencesByEmp[a.EmployeeID], a)
	}

	summaries := make([]*HoursSummary, 0, len(employees))
	byEmp := make(map[uuid.UUID]*HoursSummary, len(employees))
	for _, e := range employees {
		s := &HoursSummary{
			EmployeeID:   e.ID,
			EmployeeName: e.Name,
		}
		summaries = append(summaries, s)
		byEmp[e.ID] = s
	}

	for _, a := range assignments {
		s := byEmp[a.EmployeeID]
		if s == nil || !window.Contains(a.Date) {
			continue
		}
		if blockedOn(absencesByEmp[a.EmployeeID], a.Date) {
			continue
		}
		s.ShiftCount++
		s.ShiftHours += float64(a.Hours)
	}

	for _, abs := range absences {
		s := byEmp[abs.EmployeeID]
		if s == nil || !abs.Type.IsCreditEquivalent() {
			continue
		}
		days := abs.OverlapDays(window)
		s.CreditedAbsenceHours += float64(days) * model.CreditedHoursPerTrainingDay
	}

	for _, s := range summaries {
		s.TotalHours = s.ShiftHours + s.CreditedAbsenceHours
	}
	return summaries
}

// blockedOn 检查日期是否落在任一缺勤范围内
func blockedOn(absences []*model.Absence, date string) bool {
	for _, a := range absences {
		if a.Range.Contains(date) {
			return true
		}
	}
	return false
}
