// Package solver 提供基于 CP-SAT 的排班求解器
package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/satparameters"
	"github.com/google/uuid"
	"google.golang.org/protobuf/proto"

	apperrors "github.com/dienstplan/dienstplan/pkg/errors"
	"github.com/dienstplan/dienstplan/pkg/logger"
	"github.com/dienstplan/dienstplan/pkg/model"
	"github.com/dienstplan/dienstplan/pkg/scheduler/constraint"
	"github.com/dienstplan/dienstplan/pkg/scheduler/constraint/builtin"
	"github.com/dienstplan/dienstplan/pkg/scheduler/fabric"
)

// Config 求解器配置
type Config struct {
	// 墙钟时间预算，到期返回当前最优可行解
	TimeBudget time.Duration `json:"time_budget"`
	// 固定随机种子以获得可复现的求解质量
	RandomSeed int `json:"random_seed"`

	Constraints constraint.Options `json:"constraints"`
}

// DefaultConfig 返回默认求解器配置
func DefaultConfig() Config {
	return Config{
		TimeBudget:  30 * time.Second,
		RandomSeed:  1,
		Constraints: constraint.DefaultOptions(),
	}
}

// CPSATSolver CP-SAT 求解器
// 每次求解是（实例快照，权重表，时间预算）的纯函数，
// 求解之间不持有共享可变状态
type CPSATSolver struct {
	cfg    Config
	logger *logger.SolverLogger
}

// New 创建求解器
func New(cfg Config) *CPSATSolver {
	return &CPSATSolver{
		cfg:    cfg,
		logger: logger.NewSolverLogger(),
	}
}

// Name 返回求解器名称
func (s *CPSATSolver) Name() string {
	return "CP-SAT"
}

// Solve 执行一次完整求解
// 取消是协作式的：被要求提前停止时仍返回完整抽取的（可能非最优）结果
func (s *CPSATSolver) Solve(ctx context.Context, snap *model.Snapshot) (*Result, error) {
	start := time.Now()

	if err := s.cfg.Constraints.Weights.Validate(); err != nil {
		return nil, err
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}

	// 空实例直接短路，不调用求解器
	if snap.IsEmpty() {
		result := newEmptyResult(StatusOptimal, "空实例，无需求解")
		result.WallTime = time.Since(start)
		return result, nil
	}

	// 求解前诊断：最低配置超出合格人数的实例必然不可行，
	// 直接上报原因而不是编造分配
	reasons := s.analyzeFeasibility(snap)
	if len(reasons) > 0 {
		s.logger.Infeasible(len(reasons))
		result := newEmptyResult(StatusInfeasible, "最低人员配置无法满足")
		result.Reasons = reasons
		result.WallTime = time.Since(start)
		return result, nil
	}

	// BUILT：构建变量编织层与约束模型
	builder := cpmodel.NewCpModelBuilder()
	fab := fabric.New(builder, snap)

	s.logger.StartSolve(len(snap.AssignableEmployees()), len(snap.Days), fab.Count(), s.cfg.TimeBudget)

	pool := constraint.NewPool()
	buildCtx := &constraint.Context{
		Model:    builder,
		Snapshot: snap,
		Fabric:   fab,
		Pool:     pool,
		Options:  s.cfg.Constraints,
	}

	manager := constraint.NewManager()
	builtin.RegisterDefaults(manager, s.cfg.Constraints)
	if err := manager.ApplyAll(buildCtx); err != nil {
		return nil, err
	}

	builder.Minimize(pool.Objective())
	s.logger.ModelBuilt(fab.Count(), pool.Count())

	m, err := builder.Model()
	if err != nil {
		return nil, apperrors.SolverInternal(err)
	}

	// SOLVING：在时间预算内运行优化器
	params := &sppb.SatParameters{
		MaxTimeInSeconds: proto.Float64(s.cfg.TimeBudget.Seconds()),
		RandomSeed:       proto.Int32(int32(s.cfg.RandomSeed)),
	}
	response, err := cpmodel.SolveCpModelInterruptibleWithParameters(ctx, m, params)
	if err != nil {
		return nil, apperrors.SolverInternal(err)
	}

	wall := time.Since(start)
	result := s.classify(response, wall)

	if result.Status.HasRoster() && hasSolution(response) {
		s.extract(response, fab, pool, result)
	}

	s.logger.SolveComplete(string(result.Status), result.Objective, wall)
	return result, nil
}

// hasSolution 检查响应是否携带变量赋值
func hasSolution(response *cmpb.CpSolverResponse) bool {
	status := response.GetStatus()
	return status == cmpb.CpSolverStatus_OPTIMAL || status == cmpb.CpSolverStatus_FEASIBLE
}

// analyzeFeasibility 求解前可行性分析
// 返回每个（日期，班次）合格人数不足最低配置的原因
func (s *CPSATSolver) analyzeFeasibility(snap *model.Snapshot) []InfeasibilityReason {
	var reasons []InfeasibilityReason

	for _, day := range snap.Days {
		for _, shiftCode := range day.ShiftCodes {
			st := snap.GetShiftType(shiftCode)
			if st == nil {
				continue
			}
			required := st.StaffingFor(day.Class).Min
			if required <= 0 {
				continue
			}

			eligible := len(snap.EligibleEmployees(day.Date, shiftCode))
			if eligible >= required {
				continue
			}

			kind := ReasonStaffingShortfall
			if len(snap.AssignableEmployees()) < required {
				kind = ReasonEmployeeShortfall
			}
			reasons = append(reasons, InfeasibilityReason{
				Kind:      kind,
				Date:      day.Date,
				ShiftCode: shiftCode,
				Required:  required,
				Eligible:  eligible,
				Message: fmt.Sprintf(
					"%s %s 班最低需要 %d 人，合格可用仅 %d 人",
					day.Date, shiftCode, required, eligible,
				),
			})
		}
	}
	return reasons
}

// classify 将求解器响应映射到状态机终态
func (s *CPSATSolver) classify(response *cmpb.CpSolverResponse, wall time.Duration) *Result {
	result := newEmptyResult(StatusError, "")
	result.WallTime = wall

	switch response.GetStatus() {
	case cmpb.CpSolverStatus_OPTIMAL:
		result.Status = StatusOptimal
		result.Objective = response.GetObjectiveValue()

	case cmpb.CpSolverStatus_FEASIBLE:
		// 预算耗尽返回当前最优可行解，显式标记为非最优
		result.Objective = response.GetObjectiveValue()
		result.NonOptimal = true
		if wall >= s.cfg.TimeBudget {
			result.Status = StatusTimeout
			result.Message = "时间预算耗尽，返回当前最优可行解"
		} else {
			result.Status = StatusFeasible
			result.Message = "求解提前停止，返回当前最优可行解"
		}

	case cmpb.CpSolverStatus_INFEASIBLE:
		result.Status = StatusInfeasible
		result.Message = "约束模型无可行解"
		result.Reasons = []InfeasibilityReason{{
			Kind:    ReasonUnknown,
			Message: "硬约束冲突，未能定位具体约束族",
		}}

	case cmpb.CpSolverStatus_MODEL_INVALID:
		result.Status = StatusError
		result.Message = "约束模型非法"

	default:
		// UNKNOWN：预算内未找到任何可行解
		result.Status = StatusTimeout
		result.NonOptimal = true
		result.Message = "时间预算内未找到可行解"
	}

	return result
}

// extract 从变量赋值物化排班结果
// 分配列表与日历视图来自同一次变量读取，保证二者一致
func (s *CPSATSolver) extract(response *cmpb.CpSolverResponse, fab *fabric.Fabric, pool *constraint.Pool, result *Result) {
	for _, cand := range fab.Candidates() {
		if !cpmodel.SolutionBooleanValue(response, cand.Var) {
			continue
		}

		result.Assignments = append(result.Assignments, &model.Assignment{
			EmployeeID: cand.EmployeeID,
			Date:       cand.Date,
			ShiftCode:  cand.ShiftCode,
			Hours:      cand.Hours,
		})

		byShift, ok := result.View[cand.Date]
		if !ok {
			byShift = make(map[string][]uuid.UUID)
			result.View[cand.Date] = byShift
		}
		byShift[cand.ShiftCode] = append(byShift[cand.ShiftCode], cand.EmployeeID)
	}

	// 按约束族累计惩罚合计
	for _, term := range pool.Terms() {
		value := cpmodel.SolutionIntegerValue(response, term.Expr)
		if value == 0 {
			continue
		}
		result.PenaltyTotals[term.Type] += term.Weight * value
	}
}
