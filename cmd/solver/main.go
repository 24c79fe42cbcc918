// Dienstplan 排班求解器
// 命令行入口：读取 JSON 排班实例，执行一次求解，输出排班结果

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dienstplan/dienstplan/internal/config"
	"github.com/dienstplan/dienstplan/internal/constraints"
	"github.com/dienstplan/dienstplan/pkg/errors"
	"github.com/dienstplan/dienstplan/pkg/logger"
	"github.com/dienstplan/dienstplan/pkg/model"
	"github.com/dienstplan/dienstplan/pkg/scheduler/solver"
	"github.com/dienstplan/dienstplan/pkg/stats"
	"github.com/dienstplan/dienstplan/pkg/validator"
)

// 构建信息（通过 ldflags 注入）
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// instanceFile 排班实例文件结构
type instanceFile struct {
	Horizon    model.DateRange    `json:"horizon"`
	Employees  []*model.Employee  `json:"employees"`
	Teams      []*model.Team      `json:"teams"`
	ShiftTypes []*model.ShiftType `json:"shift_types"`
	Absences   []*model.Absence   `json:"absences,omitempty"`
}

// output 求解输出结构
type output struct {
	Status      solver.Status                `json:"status"`
	Message     string                       `json:"message,omitempty"`
	Objective   float64                      `json:"objective"`
	NonOptimal  bool                         `json:"non_optimal,omitempty"`
	WallTime    string                       `json:"wall_time"`
	Assignments []*model.Assignment          `json:"assignments"`
	Reasons     []solver.InfeasibilityReason `json:"reasons,omitempty"`
	Violations  []validator.Violation        `json:"violations,omitempty"`
	Hours       []*stats.HoursSummary        `json:"hours"`
	Activity    *stats.ActivityReport        `json:"activity"`
	Fairness    *stats.FairnessMetrics       `json:"fairness,omitempty"`
}

func main() {
	instancePath := flag.String("instance", "", "排班实例 JSON 文件路径")
	budget := flag.Duration("budget", 0, "求解时间预算（覆盖环境变量配置）")
	showLibrary := flag.Bool("library", false, "输出约束目录后退出")
	showVersion := flag.Bool("version", false, "打印版本信息")
	flag.Parse()

	if *showVersion {
		fmt.Printf("Dienstplan 排班求解器 v%s\n", Version)
		fmt.Printf("Build: %s (%s)\n", BuildTime, GitCommit)
		return
	}

	if *showLibrary {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(constraints.GetLibrary()); err != nil {
			fmt.Fprintf(os.Stderr, "约束目录输出失败: %v\n", err)
			os.Exit(2)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(2)
	}

	logger.Init(logger.Config{
		Level:  cfg.App.LogLevel,
		Format: "console",
		Output: "stderr",
	})

	if *budget > 0 {
		cfg.Solver.TimeBudget = *budget
	}

	if *instancePath == "" {
		fmt.Fprintln(os.Stderr, "用法: solver -instance <排班实例文件>")
		os.Exit(2)
	}

	snap, err := loadInstance(*instancePath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", *instancePath).Msg("排班实例加载失败")
	}

	// 信号处理：SIGINT/SIGTERM 触发协作式停止，求解器返回当前最优解
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	s := solver.New(cfg.Solver)
	result, err := s.Solve(ctx, snap)
	if err != nil {
		logger.Fatal().Err(err).Str("code", string(errors.GetCode(err))).Msg("求解失败")
	}

	out := buildOutput(snap, result)

	logger.Info().
		Str("status", string(result.Status)).
		Float64("objective", result.Objective).
		Int("assignments", len(result.Assignments)).
		Dur("elapsed", time.Since(start)).
		Msg("求解完成")

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Fatal().Err(err).Msg("结果输出失败")
	}

	if !result.Status.HasRoster() {
		os.Exit(1)
	}
}

// loadInstance 从文件加载排班实例并构建快照
func loadInstance(path string) (*model.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidInput, "无法读取实例文件")
	}

	var inst instanceFile
	if err := json.Unmarshal(data, &inst); err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidInput, "实例文件格式无效")
	}

	snap := model.NewSnapshot(inst.Horizon, inst.Employees, inst.Teams, inst.ShiftTypes, inst.Absences)
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return snap, nil
}

// buildOutput 汇总求解结果与统计报告
func buildOutput(snap *model.Snapshot, result *solver.Result) output {
	out := output{
		Status:      result.Status,
		Message:     result.Message,
		Objective:   result.Objective,
		NonOptimal:  result.NonOptimal,
		WallTime:    result.WallTime.String(),
		Assignments: result.Assignments,
		Reasons:     result.Reasons,
		Activity:    stats.ClassifyActivity(snap.Employees),
	}

	rec := stats.NewReconciler()
	out.Hours = rec.Reconcile(snap.Horizon, snap.Employees, result.Assignments, snap.Absences)

	if result.Status.HasRoster() {
		rv := validator.NewRosterValidator(snap)
		out.Violations = rv.ValidateAll(result.Assignments)
		out.Fairness = stats.AnalyzeFairness(snap.Employees, result.Assignments)
	}
	return out
}
