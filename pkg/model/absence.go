// Package model 定义排班引擎的核心数据模型
package model

import (
	"github.com/google/uuid"
)

// Absence 缺勤记录
// 缺勤在其日期范围内完全阻止班次分配
type Absence struct {
	BaseModel
	EmployeeID uuid.UUID   `json:"employee_id"`
	Type       AbsenceType `json:"type"`
	Range      DateRange   `json:"range"` // 闭区间
}

// Blocks 检查缺勤是否阻止某员工某日期的排班
func (a *Absence) Blocks(empID uuid.UUID, date string) bool {
	return a.EmployeeID == empID && a.Range.Contains(date)
}

// OverlapDays 返回缺勤与报表窗口的重叠天数
// 部分重叠时裁剪到窗口边界
func (a *Absence) OverlapDays(window DateRange) int {
	start := a.Range.StartDate
	if window.StartDate > start {
		start = window.StartDate
	}
	end := a.Range.EndDate
	if window.EndDate < end {
		end = window.EndDate
	}
	if end < start {
		return 0
	}
	return len(DateRange{StartDate: start, EndDate: end}.Days())
}
