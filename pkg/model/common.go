// Package model 定义排班引擎的核心数据模型
package model

import (
	"time"

	"github.com/google/uuid"
)

// DayClass 日期类别（工作日/周末）
type DayClass string

const (
	DayClassWeekday DayClass = "weekday" // 工作日
	DayClassWeekend DayClass = "weekend" // 周末
)

// EmployeeStatus 员工系统状态
type EmployeeStatus string

const (
	StatusActive   EmployeeStatus = "active"   // 在职
	StatusInactive EmployeeStatus = "inactive" // 停用
)

// Designation 员工特殊身份
type Designation string

const (
	DesignationNone    Designation = ""        // 普通员工
	DesignationAdmin   Designation = "admin"   // 管理员
	DesignationFloater Designation = "floater" // 机动/替补人员
)

// AbsenceType 缺勤类型
type AbsenceType string

const (
	AbsenceSick     AbsenceType = "sick"     // 病假
	AbsenceVacation AbsenceType = "vacation" // 休假
	AbsenceTraining AbsenceType = "training" // 培训（Lehrgang）
)

// CreditedHoursPerTrainingDay 培训缺勤每天计入的工时
// 培训（Lehrgang）阻止实际排班，但在工时核算中等同于一个完整班天
const CreditedHoursPerTrainingDay = 8.0

// IsCreditEquivalent 检查缺勤类型是否计入工时
// 仅培训类型在工时核算中等同于整班天，这是报表规则而非排班约束
func (t AbsenceType) IsCreditEquivalent() bool {
	return t == AbsenceTraining
}

// BaseModel 基础模型（包含通用字段）
type BaseModel struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBaseModel 创建新的基础模型
func NewBaseModel() BaseModel {
	now := time.Now()
	return BaseModel{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DateRange 日期范围（闭区间）
type DateRange struct {
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
}

// Contains 检查日期是否在范围内
func (r DateRange) Contains(date string) bool {
	return date >= r.StartDate && date <= r.EndDate
}

// Days 返回范围内的所有日期
func (r DateRange) Days() []string {
	start, err1 := time.Parse(DateLayout, r.StartDate)
	end, err2 := time.Parse(DateLayout, r.EndDate)
	if err1 != nil || err2 != nil || end.Before(start) {
		return nil
	}

	var days []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(DateLayout))
	}
	return days
}

// IsValid 检查范围是否合法
func (r DateRange) IsValid() bool {
	start, err1 := time.Parse(DateLayout, r.StartDate)
	end, err2 := time.Parse(DateLayout, r.EndDate)
	return err1 == nil && err2 == nil && !end.Before(start)
}

// DateLayout 日期格式
const DateLayout = "2006-01-02"

// TimeLayout 时刻格式
const TimeLayout = "15:04"

// ClassifyDate 根据星期分类日期
func ClassifyDate(date string) DayClass {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return DayClassWeekday
	}
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return DayClassWeekend
	}
	return DayClassWeekday
}
