// Package constraints 约束目录
// 以机器可读的形式描述求解器内置的全部约束及其参数
package constraints

import (
	"github.com/dienstplan/dienstplan/pkg/scheduler/constraint"
)

// ConstraintParam 约束参数定义
type ConstraintParam struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // int, bool, duration
	Description string `json:"description"`
	Default     string `json:"default,omitempty"`
	Env         string `json:"env,omitempty"`
}

// ConstraintDefinition 约束定义
type ConstraintDefinition struct {
	Name        constraint.Type     `json:"name"`
	DisplayName string              `json:"display_name"`
	Category    constraint.Category `json:"category"`
	Weight      int64               `json:"weight,omitempty"`
	Enabled     bool                `json:"enabled_by_default"`
	Description string              `json:"description"`
	Params      []ConstraintParam   `json:"params,omitempty"`
}

// Library 约束库响应
type Library struct {
	Constraints []ConstraintDefinition `json:"constraints"`
}

// GetLibrary 获取完整的约束目录
// 权重取默认配置，实际生效值以求解配置为准
func GetLibrary() Library {
	return Library{Constraints: []ConstraintDefinition{
		{
			Name:        constraint.TypeOneShiftPerDay,
			DisplayName: "每日单班次",
			Category:    constraint.CategoryHard,
			Enabled:     true,
			Description: "每名员工每天最多承担一个班次，禁止同日双班。",
		},
		{
			Name:        constraint.TypeStaffingBounds,
			DisplayName: "班次人数上下限",
			Category:    constraint.CategoryHard,
			Enabled:     true,
			Description: "每天每个班次的实际人数必须落在该班次按工作日/周末配置的最小与最大人数之间。",
		},
		{
			Name:        constraint.TypeTeamEligibility,
			DisplayName: "团队资格",
			Category:    constraint.CategoryHard,
			Enabled:     true,
			Description: "员工只能被排入其所属团队覆盖的班次类型，无团队员工不参与排班。",
		},
		{
			Name:        constraint.TypeAbsenceBlocking,
			DisplayName: "缺勤屏蔽",
			Category:    constraint.CategoryHard,
			Enabled:     true,
			Description: "缺勤（病假/休假/培训）覆盖的日期不产生任何排班候选。",
		},
		{
			Name:        constraint.TypeRestTime,
			DisplayName: "班次间休息时间",
			Category:    constraint.CategorySoft,
			Weight:      constraint.DefaultWeightRestTime,
			Enabled:     true,
			Description: "相邻两天的班次组合若休息间隔不足则记罚分，权重最高。",
			Params: []ConstraintParam{
				{Name: "min_rest_hours", Type: "int", Description: "最小休息小时数", Default: "11", Env: "SOLVER_MIN_REST_HOURS"},
			},
		},
		{
			Name:        constraint.TypeConsecutiveDays,
			DisplayName: "最大连续工作天数",
			Category:    constraint.CategorySoft,
			Weight:      constraint.DefaultWeightConsecutiveDays,
			Enabled:     true,
			Description: "同一班次类型连续出勤超过其上限的每个滑动窗口记一次罚分。",
		},
		{
			Name:        constraint.TypeMinWeeklyHours,
			DisplayName: "每周最小工时",
			Category:    constraint.CategorySoft,
			Weight:      constraint.DefaultWeightMinHours,
			Enabled:     false,
			Description: "每个完整周的排班工时低于目标值时按缺口记罚分，默认关闭。",
			Params: []ConstraintParam{
				{Name: "enable", Type: "bool", Description: "是否启用", Default: "false", Env: "SOLVER_ENABLE_MIN_HOURS"},
			},
		},
		{
			Name:        constraint.TypeFairness,
			DisplayName: "工时公平分配",
			Category:    constraint.CategorySoft,
			Weight:      constraint.DefaultWeightFairness,
			Enabled:     true,
			Description: "最小化各员工工时与平均工时的偏差，权重最低，仅在高优先级约束之余生效。",
			Params: []ConstraintParam{
				{Name: "enable", Type: "bool", Description: "是否启用", Default: "true", Env: "SOLVER_ENABLE_FAIRNESS"},
			},
		},
	}}
}
