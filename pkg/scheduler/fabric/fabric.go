// Package fabric 提供决策变量编织层
// 为每个候选分配创建布尔决策变量，并为上层约束提供辅助指示变量
package fabric

import (
	"sort"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	"github.com/google/uuid"

	"github.com/dienstplan/dienstplan/pkg/model"
)

// Candidate 候选分配
// 仅当员工团队覆盖该班次且当日无缺勤时才存在对应的决策变量
type Candidate struct {
	EmployeeID uuid.UUID
	Date       string
	ShiftCode  string
	Hours      int
	Var        cpmodel.BoolVar
}

// key 三元组索引键
type key struct {
	emp   uuid.UUID
	date  string
	shift string
}

// Fabric 决策变量编织层
type Fabric struct {
	builder  *cpmodel.Builder
	snapshot *model.Snapshot

	candidates []*Candidate
	byKey      map[key]*Candidate
	byEmpDay   map[key][]*Candidate // shift 为空串
	byDayShift map[key][]*Candidate // emp 为零值
	works      map[key]cpmodel.BoolVar
}

// New 创建编织层并生成全部候选决策变量
func New(builder *cpmodel.Builder, snap *model.Snapshot) *Fabric {
	f := &Fabric{
		builder:    builder,
		snapshot:   snap,
		byKey:      make(map[key]*Candidate),
		byEmpDay:   make(map[key][]*Candidate),
		byDayShift: make(map[key][]*Candidate),
		works:      make(map[key]cpmodel.BoolVar),
	}
	f.generate()
	return f
}

// generate 生成候选变量
// 团队资格与缺勤阻断在候选生成阶段完成，不合格组合不产生变量
func (f *Fabric) generate() {
	for _, day := range f.snapshot.Days {
		for _, shiftCode := range day.ShiftCodes {
			st := f.snapshot.GetShiftType(shiftCode)
			if st == nil {
				continue
			}
			for _, emp := range f.snapshot.EligibleEmployees(day.Date, shiftCode) {
				c := &Candidate{
					EmployeeID: emp.ID,
					Date:       day.Date,
					ShiftCode:  shiftCode,
					Hours:      st.Duration,
					Var:        f.builder.NewBoolVar(),
				}
				f.candidates = append(f.candidates, c)
				f.byKey[key{emp.ID, day.Date, shiftCode}] = c
				f.byEmpDay[key{emp: emp.ID, date: day.Date}] = append(f.byEmpDay[key{emp: emp.ID, date: day.Date}], c)
				f.byDayShift[key{date: day.Date, shift: shiftCode}] = append(f.byDayShift[key{date: day.Date, shift: shiftCode}], c)
			}
		}
	}
}

// Candidates 返回全部候选分配
func (f *Fabric) Candidates() []*Candidate {
	return f.candidates
}

// Count 返回候选变量数量
func (f *Fabric) Count() int {
	return len(f.candidates)
}

// Candidate 返回指定三元组的候选分配，不存在时返回 nil
func (f *Fabric) Candidate(empID uuid.UUID, date, shiftCode string) *Candidate {
	return f.byKey[key{empID, date, shiftCode}]
}

// CandidatesForEmployeeDay 返回员工某天的全部候选分配
func (f *Fabric) CandidatesForEmployeeDay(empID uuid.UUID, date string) []*Candidate {
	return f.byEmpDay[key{emp: empID, date: date}]
}

// CandidatesForDayShift 返回某天某班次的全部候选分配
func (f *Fabric) CandidatesForDayShift(date, shiftCode string) []*Candidate {
	return f.byDayShift[key{date: date, shift: shiftCode}]
}

// Works 返回"员工在某日承担某班次"的辅助指示变量
// 参与下游求和/阈值约束的元素必须一律是真正的决策变量：
// 指示变量通过双向蕴含与底层候选变量析取逻辑等价；
// 没有底层候选时仍然创建变量并用等式约束固定为假，
// 绝不在同一集合中混入裸常量
func (f *Fabric) Works(empID uuid.UUID, date, shiftCode string) cpmodel.BoolVar {
	k := key{empID, date, shiftCode}
	if v, ok := f.works[k]; ok {
		return v
	}

	aux := f.builder.NewBoolVar()
	f.works[k] = aux

	var underlying []cpmodel.BoolVar
	if c := f.byKey[k]; c != nil {
		underlying = append(underlying, c.Var)
	}

	if len(underlying) == 0 {
		// 固定为假的一等决策变量
		f.builder.AddEquality(aux, f.builder.FalseVar())
	} else {
		// aux ⇒ 至少一个底层变量为真
		f.builder.AddBoolOr(underlying...).OnlyEnforceIf(aux)
		// 任一底层变量为真 ⇒ aux
		for _, v := range underlying {
			f.builder.AddImplication(v, aux)
		}
	}
	return aux
}

// Dates 返回时间升序的日历日期
func (f *Fabric) Dates() []string {
	dates := make([]string, 0, len(f.snapshot.Days))
	for _, d := range f.snapshot.Days {
		dates = append(dates, d.Date)
	}
	sort.Strings(dates)
	return dates
}
