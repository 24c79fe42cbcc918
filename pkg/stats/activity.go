// Package stats 提供排班统计与工时核算功能
package stats

import (
	"github.com/dienstplan/dienstplan/pkg/model"
)

// ActivityReport 员工活动状态报表
// 每个快照把员工划入恰好三个互斥分组，绝不合并为单一"在职"计数
type ActivityReport struct {
	// 在职且有团队归属，可参与排班
	PlanningActive int `json:"planning_active"`
	// 在职但无团队归属
	ActiveWithoutTeam int `json:"active_without_team"`
	// 系统停用
	SystemInactive int `json:"system_inactive"`

	// 派生计数
	SystemActive int `json:"system_active"` // PlanningActive + ActiveWithoutTeam
	Total        int `json:"total"`
}

// ClassifyActivity 对员工快照做三分组活动分类
func ClassifyActivity(employees []*model.Employee) *ActivityReport {
	report := &ActivityReport{}
	for _, e := range employees {
		report.Total++
		switch {
		case !e.IsActive():
			report.SystemInactive++
		case e.TeamID == nil:
			report.ActiveWithoutTeam++
		default:
			report.PlanningActive++
		}
	}
	report.SystemActive = report.PlanningActive + report.ActiveWithoutTeam
	return report
}
