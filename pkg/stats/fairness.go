// Package stats 提供排班统计与工时核算功能
package stats

import (
	"math"

	"github.com/google/uuid"

	"github.com/dienstplan/dienstplan/pkg/model"
)

// FairnessMetrics 排班结果的事后公平性指标
type FairnessMetrics struct {
	AvgHoursPerEmployee float64 `json:"avg_hours_per_employee"`
	MaxHours            float64 `json:"max_hours"`
	MinHours            float64 `json:"min_hours"`
	HoursRange          float64 `json:"hours_range"`
	WorkloadStdDev      float64 `json:"workload_std_dev"`

	EmployeeStats []EmployeeStat `json:"employee_stats"`
}

// EmployeeStat 员工统计
type EmployeeStat struct {
	EmployeeID   uuid.UUID `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	TotalHours   float64   `json:"total_hours"`
	ShiftCount   int       `json:"shift_count"`
	// 与平均值的偏差（小时）
	Deviation float64 `json:"deviation"`
}

// AnalyzeFairness 分析排班结果的工作量公平性
func AnalyzeFairness(employees []*model.Employee, assignments []*model.Assignment) *FairnessMetrics {
	metrics := &FairnessMetrics{}
	if len(employees) == 0 {
		return metrics
	}

	hoursByEmp := make(map[uuid.UUID]float64, len(employees))
	countByEmp := make(map[uuid.UUID]int, len(employees))
	for _, a := range assignments {
		hoursByEmp[a.EmployeeID] += float64(a.Hours)
		countByEmp[a.EmployeeID]++
	}

	var total float64
	minHours := math.MaxFloat64
	for _, e := range employees {
		h := hoursByEmp[e.ID]
		total += h
		if h > metrics.MaxHours {
			metrics.MaxHours = h
		}
		if h < minHours {
			minHours = h
		}
	}
	metrics.MinHours = minHours
	metrics.HoursRange = metrics.MaxHours - metrics.MinHours
	metrics.AvgHoursPerEmployee = total / float64(len(employees))

	var sumSquares float64
	for _, e := range employees {
		h := hoursByEmp[e.ID]
		deviation := h - metrics.AvgHoursPerEmployee
		sumSquares += deviation * deviation

		metrics.EmployeeStats = append(metrics.EmployeeStats, EmployeeStat{
			EmployeeID:   e.ID,
			EmployeeName: e.Name,
			TotalHours:   h,
			ShiftCount:   countByEmp[e.ID],
			Deviation:    deviation,
		})
	}
	metrics.WorkloadStdDev = math.Sqrt(sumSquares / float64(len(employees)))

	return metrics
}
