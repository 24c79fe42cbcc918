// Package model 定义排班引擎的核心数据模型
package model

import (
	"time"

	"github.com/google/uuid"
)

// Staffing 单日人员配置上下限
type Staffing struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// ShiftType 班次类型定义
type ShiftType struct {
	BaseModel
	Name      string `json:"name"`
	Code      string `json:"code"`       // early/late/night
	StartTime string `json:"start_time"` // HH:MM
	EndTime   string `json:"end_time"`   // HH:MM
	Duration  int    `json:"duration"`   // 名义时长（小时）

	// 按日期类别的人员配置
	WeekdayStaffing Staffing `json:"weekday_staffing"`
	WeekendStaffing Staffing `json:"weekend_staffing"`

	// 名义周工时，周最低工时软约束的目标值
	WeeklyHours        int `json:"weekly_hours"`
	MaxConsecutiveDays int `json:"max_consecutive_days"` // 同班次最大连续天数
}

// StaffingFor 返回指定日期类别的人员配置
func (s *ShiftType) StaffingFor(class DayClass) Staffing {
	if class == DayClassWeekend {
		return s.WeekendStaffing
	}
	return s.WeekdayStaffing
}

// StartMinute 返回班次开始时刻（当天分钟数）
func (s *ShiftType) StartMinute() int {
	t, err := time.Parse(TimeLayout, s.StartTime)
	if err != nil {
		return 0
	}
	return t.Hour()*60 + t.Minute()
}

// EndMinute 返回班次结束时刻（当天分钟数，跨天班次大于 1440）
func (s *ShiftType) EndMinute() int {
	t, err := time.Parse(TimeLayout, s.EndTime)
	if err != nil {
		return 0
	}
	end := t.Hour()*60 + t.Minute()
	if end <= s.StartMinute() {
		end += 24 * 60 // 跨天
	}
	return end
}

// Assignment 班次分配（求解输出）
// 求解确认后不可变，只能被后续重解覆盖
type Assignment struct {
	EmployeeID uuid.UUID `json:"employee_id"`
	Date       string    `json:"date"` // YYYY-MM-DD
	ShiftCode  string    `json:"shift_code"`
	Hours      int       `json:"hours"` // 名义工时
}

// ScheduleView 日历索引的排班视图
// 日期 -> 班次代码 -> 员工有序列表，与分配列表来自同一次变量读取
type ScheduleView map[string]map[string][]uuid.UUID

// EmployeesOn 返回某日期某班次的员工列表
func (v ScheduleView) EmployeesOn(date, shiftCode string) []uuid.UUID {
	byShift, ok := v[date]
	if !ok {
		return nil
	}
	return byShift[shiftCode]
}

// Count 返回某日期某班次的已排人数
func (v ScheduleView) Count(date, shiftCode string) int {
	return len(v.EmployeesOn(date, shiftCode))
}
