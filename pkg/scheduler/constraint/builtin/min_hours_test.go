package builtin

import (
	"testing"

	"github.com/google/uuid"

	"github.com/dienstplan/dienstplan/pkg/model"
	"github.com/dienstplan/dienstplan/pkg/scheduler/constraint"
)

func TestWeeklyTarget(t *testing.T) {
	team := &model.Team{
		BaseModel:  model.NewBaseModel(),
		Name:       "A组",
		ShiftCodes: []string{"early", "late", "night"},
	}
	emp := &model.Employee{
		BaseModel: model.NewBaseModel(),
		Name:      "张三",
		Status:    model.StatusActive,
		TeamID:    &team.ID,
	}
	team.MemberIDs = []uuid.UUID{emp.ID}

	shifts := []*model.ShiftType{
		{BaseModel: model.NewBaseModel(), Code: "early", StartTime: "06:00", EndTime: "14:00", Duration: 8, WeeklyHours: 40},
		{BaseModel: model.NewBaseModel(), Code: "late", StartTime: "14:00", EndTime: "22:00", Duration: 8, WeeklyHours: 32},
		{BaseModel: model.NewBaseModel(), Code: "night", StartTime: "22:00", EndTime: "06:00", Duration: 8}, // 未配置名义周工时
	}

	horizon := model.DateRange{StartDate: "2026-01-05", EndDate: "2026-01-11"}
	snap := model.NewSnapshot(horizon, []*model.Employee{emp}, []*model.Team{team}, shifts, nil)
	ctx := &constraint.Context{Snapshot: snap}

	// 名义周工时取覆盖班次中最小的正值，未配置的班次不参与
	if got := weeklyTarget(ctx, emp); got != 32 {
		t.Errorf("周工时目标 = %d, expected 32", got)
	}
}

func TestWeeklyTarget_Unconfigured(t *testing.T) {
	team := &model.Team{
		BaseModel:  model.NewBaseModel(),
		Name:       "A组",
		ShiftCodes: []string{"early"},
	}
	emp := &model.Employee{
		BaseModel: model.NewBaseModel(),
		Name:      "李四",
		Status:    model.StatusActive,
		TeamID:    &team.ID,
	}
	team.MemberIDs = []uuid.UUID{emp.ID}

	shifts := []*model.ShiftType{
		{BaseModel: model.NewBaseModel(), Code: "early", StartTime: "06:00", EndTime: "14:00", Duration: 8},
	}
	horizon := model.DateRange{StartDate: "2026-01-05", EndDate: "2026-01-11"}
	snap := model.NewSnapshot(horizon, []*model.Employee{emp}, []*model.Team{team}, shifts, nil)
	ctx := &constraint.Context{Snapshot: snap}

	// 无名义周工时配置时目标为0，约束对该员工不生效
	if got := weeklyTarget(ctx, emp); got != 0 {
		t.Errorf("周工时目标 = %d, expected 0", got)
	}

	// 无团队员工同样不产生目标
	loner := &model.Employee{BaseModel: model.NewBaseModel(), Name: "王五", Status: model.StatusActive}
	if got := weeklyTarget(ctx, loner); got != 0 {
		t.Errorf("无团队员工目标 = %d, expected 0", got)
	}
}
