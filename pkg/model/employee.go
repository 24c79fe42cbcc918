// Package model 定义排班引擎的核心数据模型
package model

import (
	"github.com/google/uuid"
)

// Employee 员工
// 由外部人事系统维护，引擎只读
type Employee struct {
	BaseModel
	Name        string         `json:"name"`
	Code        string         `json:"code"`
	Status      EmployeeStatus `json:"status"`
	TeamID      *uuid.UUID     `json:"team_id,omitempty"`
	Designation Designation    `json:"designation,omitempty"`
}

// IsActive 检查员工是否在职
func (e *Employee) IsActive() bool {
	return e.Status == StatusActive
}

// IsAssignable 检查员工是否可参与排班
// 无团队归属的员工永远不会获得班次分配
func (e *Employee) IsAssignable() bool {
	return e.IsActive() && e.TeamID != nil
}

// Team 团队
// 团队成员划分可排班员工，且覆盖一组班次类型
type Team struct {
	BaseModel
	Name       string      `json:"name"`
	MemberIDs  []uuid.UUID `json:"member_ids"`
	ShiftCodes []string    `json:"shift_codes"` // 团队可承担的班次类型代码
}

// HasMember 检查员工是否属于该团队
func (t *Team) HasMember(empID uuid.UUID) bool {
	for _, id := range t.MemberIDs {
		if id == empID {
			return true
		}
	}
	return false
}

// Covers 检查团队是否覆盖某班次类型
func (t *Team) Covers(shiftCode string) bool {
	for _, c := range t.ShiftCodes {
		if c == shiftCode {
			return true
		}
	}
	return false
}
