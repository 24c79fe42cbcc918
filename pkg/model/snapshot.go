// Package model 定义排班引擎的核心数据模型
package model

import (
	"fmt"

	"github.com/google/uuid"

	apperrors "github.com/dienstplan/dienstplan/pkg/errors"
)

// Snapshot 排班问题实例（冻结快照）
// 一次求解期间调用方必须保证快照不被修改，求解是快照的纯函数
type Snapshot struct {
	Horizon    DateRange      `json:"horizon"`
	Days       []CalendarDay  `json:"days"`
	Employees  []*Employee    `json:"employees"`
	Teams      []*Team        `json:"teams"`
	ShiftTypes []*ShiftType   `json:"shift_types"`
	Absences   []*Absence     `json:"absences"`

	// 索引缓存
	employeeMap  map[uuid.UUID]*Employee
	teamMap      map[uuid.UUID]*Team
	shiftMap     map[string]*ShiftType
	absencesByEmp map[uuid.UUID][]*Absence
}

// NewSnapshot 创建问题实例并构建索引
// 日历为空时根据规划范围自动展开
func NewSnapshot(horizon DateRange, employees []*Employee, teams []*Team, shiftTypes []*ShiftType, absences []*Absence) *Snapshot {
	s := &Snapshot{
		Horizon:    horizon,
		Days:       ExpandHorizon(horizon, shiftTypes),
		Employees:  employees,
		Teams:      teams,
		ShiftTypes: shiftTypes,
		Absences:   absences,
	}
	s.buildIndexes()
	return s
}

// buildIndexes 构建索引
func (s *Snapshot) buildIndexes() {
	s.employeeMap = make(map[uuid.UUID]*Employee, len(s.Employees))
	for _, e := range s.Employees {
		s.employeeMap[e.ID] = e
	}
	s.teamMap = make(map[uuid.UUID]*Team, len(s.Teams))
	for _, t := range s.Teams {
		s.teamMap[t.ID] = t
	}
	s.shiftMap = make(map[string]*ShiftType, len(s.ShiftTypes))
	for _, st := range s.ShiftTypes {
		s.shiftMap[st.Code] = st
	}
	s.absencesByEmp = make(map[uuid.UUID][]*Absence)
	for _, a := range s.Absences {
		s.absencesByEmp[a.EmployeeID] = append(s.absencesByEmp[a.EmployeeID], a)
	}
}

// GetEmployee 获取员工
func (s *Snapshot) GetEmployee(id uuid.UUID) *Employee {
	return s.employeeMap[id]
}

// GetTeam 获取团队
func (s *Snapshot) GetTeam(id uuid.UUID) *Team {
	return s.teamMap[id]
}

// GetShiftType 按代码获取班次类型
func (s *Snapshot) GetShiftType(code string) *ShiftType {
	return s.shiftMap[code]
}

// TeamOf 返回员工所属团队
func (s *Snapshot) TeamOf(empID uuid.UUID) *Team {
	e := s.employeeMap[empID]
	if e == nil || e.TeamID == nil {
		return nil
	}
	return s.teamMap[*e.TeamID]
}

// IsBlocked 检查员工某日期是否被缺勤阻止
func (s *Snapshot) IsBlocked(empID uuid.UUID, date string) bool {
	for _, a := range s.absencesByEmp[empID] {
		if a.Range.Contains(date) {
			return true
		}
	}
	return false
}

// AssignableEmployees 返回可参与排班的员工（在职且有团队归属）
func (s *Snapshot) AssignableEmployees() []*Employee {
	var result []*Employee
	for _, e := range s.Employees {
		if e.IsAssignable() {
			result = append(result, e)
		}
	}
	return result
}

// EligibleEmployees 返回某日期某班次类型的合格员工
// 合格 = 可排班、团队覆盖该班次、当日无缺勤
func (s *Snapshot) EligibleEmployees(date, shiftCode string) []*Employee {
	var result []*Employee
	for _, e := range s.Employees {
		if !e.IsAssignable() {
			continue
		}
		team := s.teamMap[*e.TeamID]
		if team == nil || !team.Covers(shiftCode) {
			continue
		}
		if s.IsBlocked(e.ID, date) {
			continue
		}
		result = append(result, e)
	}
	return result
}

// IsEmpty 检查实例是否为空（无员工或无班次类型）
func (s *Snapshot) IsEmpty() bool {
	return len(s.AssignableEmployees()) == 0 || len(s.ShiftTypes) == 0 || len(s.Days) == 0
}

// Validate 校验问题实例
// 畸形输入一律上报，绝不静默修正
func (s *Snapshot) Validate() error {
	ve := &apperrors.ValidationErrors{}

	if !s.Horizon.IsValid() {
		ve.Add("horizon", fmt.Sprintf("规划范围非法: %s - %s", s.Horizon.StartDate, s.Horizon.EndDate))
	}

	for _, st := range s.ShiftTypes {
		if st.Duration <= 0 {
			ve.Add("shift_type."+st.Code, fmt.Sprintf("班次时长必须大于0, 实际为 %d", st.Duration))
		}
		for _, staffing := range []struct {
			class DayClass
			v     Staffing
		}{
			{DayClassWeekday, st.WeekdayStaffing},
			{DayClassWeekend, st.WeekendStaffing},
		} {
			if staffing.v.Min < 0 || staffing.v.Max < 0 {
				ve.Add("shift_type."+st.Code, fmt.Sprintf("%s 人员配置不能为负", staffing.class))
			}
			if staffing.v.Min > staffing.v.Max {
				ve.Add("shift_type."+st.Code, fmt.Sprintf("%s 最小人数 %d 超过最大人数 %d", staffing.class, staffing.v.Min, staffing.v.Max))
			}
		}
	}

	// 团队成员划分检查：一个员工至多属于一个团队
	memberOf := make(map[uuid.UUID]uuid.UUID)
	for _, t := range s.Teams {
		for _, memberID := range t.MemberIDs {
			if prev, exists := memberOf[memberID]; exists && prev != t.ID {
				ve.Add("team."+t.Name, fmt.Sprintf("员工 %s 同时属于多个团队", memberID))
			}
			memberOf[memberID] = t.ID
		}
		for _, code := range t.ShiftCodes {
			if s.shiftMap[code] == nil {
				ve.Add("team."+t.Name, fmt.Sprintf("引用了未定义的班次类型 %s", code))
			}
		}
	}

	for _, e := range s.Employees {
		if e.TeamID == nil {
			continue
		}
		team := s.teamMap[*e.TeamID]
		if team == nil {
			ve.Add("employee."+e.Code, fmt.Sprintf("引用了未定义的团队 %s", *e.TeamID))
			continue
		}
		if !team.HasMember(e.ID) {
			ve.Add("employee."+e.Code, fmt.Sprintf("声明属于团队 %s 但成员列表中不存在", team.Name))
		}
	}

	for _, a := range s.Absences {
		if !a.Range.IsValid() {
			ve.Add("absence", fmt.Sprintf("员工 %s 的缺勤范围非法: %s - %s", a.EmployeeID, a.Range.StartDate, a.Range.EndDate))
		}
		if s.employeeMap[a.EmployeeID] == nil {
			ve.Add("absence", fmt.Sprintf("引用了未定义的员工 %s", a.EmployeeID))
		}
	}

	if ve.HasErrors() {
		return ve.ToAppError()
	}
	return nil
}
