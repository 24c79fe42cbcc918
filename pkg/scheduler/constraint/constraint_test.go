package constraint

import (
	"testing"

	apperrors "github.com/dienstplan/dienstplan/pkg/errors"
)

func TestDefaultWeights_Hierarchy(t *testing.T) {
	w := DefaultWeights()

	if err := w.Validate(); err != nil {
		t.Fatalf("默认权重表校验失败: %v", err)
	}
	if w.RestTime <= w.ConsecutiveDays || w.ConsecutiveDays <= w.MinHours || w.MinHours <= w.Fairness {
		t.Error("默认权重层级被颠倒")
	}
}

func TestWeights_Validate(t *testing.T) {
	tests := []struct {
		name    string
		w       Weights
		wantErr bool
	}{
		{"默认权重合法", DefaultWeights(), false},
		{"调高但保持层级", Weights{RestTime: 2000, ConsecutiveDays: 800, MinHours: 100, Fairness: 2}, false},
		{"休息时间不高于连续天数", Weights{RestTime: 400, ConsecutiveDays: 400, MinHours: 50, Fairness: 1}, true},
		{"连续天数不高于周工时", Weights{RestTime: 1000, ConsecutiveDays: 50, MinHours: 50, Fairness: 1}, true},
		{"周工时不高于公平性", Weights{RestTime: 1000, ConsecutiveDays: 400, MinHours: 1, Fairness: 1}, true},
		{"公平性权重为零", Weights{RestTime: 1000, ConsecutiveDays: 400, MinHours: 50, Fairness: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.w.Validate()
			if tt.wantErr && err == nil {
				t.Error("层级颠倒的权重表应该校验失败")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("合法权重表校验失败: %v", err)
			}
			if tt.wantErr && !apperrors.Is(err, apperrors.CodeInvalidModel) {
				t.Errorf("错误码 = %v, expected %v", apperrors.GetCode(err), apperrors.CodeInvalidModel)
			}
		})
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.MinRestHours != 11 {
		t.Errorf("默认最小休息时间 = %d, expected 11", opts.MinRestHours)
	}
	if opts.EnableMinHours {
		t.Error("周最低工时约束默认应停用")
	}
	if !opts.EnableFairness {
		t.Error("公平性约束默认应启用")
	}
}

// stubBuilder 测试用约束构建器
type stubBuilder struct {
	typ      Type
	category Category
	weight   int
	applied  *int
}

func (s *stubBuilder) Name() string       { return string(s.typ) }
func (s *stubBuilder) Type() Type         { return s.typ }
func (s *stubBuilder) Category() Category { return s.category }
func (s *stubBuilder) Weight() int        { return s.weight }
func (s *stubBuilder) Apply(ctx *Context) error {
	if s.applied != nil {
		*s.applied++
	}
	return nil
}

func TestManager_Register_Ordering(t *testing.T) {
	m := NewManager()
	m.Register(&stubBuilder{typ: TypeFairness, category: CategorySoft, weight: 1})
	m.Register(&stubBuilder{typ: TypeRestTime, category: CategorySoft, weight: 1000})
	m.Register(&stubBuilder{typ: TypeStaffingBounds, category: CategoryHard, weight: 100})

	all := m.GetAll()
	if len(all) != 3 {
		t.Fatalf("约束数量 = %d, expected 3", len(all))
	}
	if all[0].Type() != TypeStaffingBounds {
		t.Error("硬约束应该排在最前")
	}
	if all[1].Type() != TypeRestTime || all[2].Type() != TypeFairness {
		t.Error("软约束应该按权重降序排列")
	}
}

func TestManager_Register_Replace(t *testing.T) {
	m := NewManager()
	m.Register(&stubBuilder{typ: TypeRestTime, category: CategorySoft, weight: 1000})
	m.Register(&stubBuilder{typ: TypeRestTime, category: CategorySoft, weight: 2000})

	if m.Count() != 1 {
		t.Fatalf("同类型约束应该被替换, count = %d", m.Count())
	}
	if m.GetAll()[0].Weight() != 2000 {
		t.Error("替换后应保留新权重")
	}
}

func TestManager_Unregister(t *testing.T) {
	m := NewManager()
	m.Register(&stubBuilder{typ: TypeRestTime, category: CategorySoft, weight: 1000})
	m.Register(&stubBuilder{typ: TypeFairness, category: CategorySoft, weight: 1})

	m.Unregister(TypeRestTime)
	if m.Count() != 1 {
		t.Fatalf("注销后数量 = %d, expected 1", m.Count())
	}
	if m.GetAll()[0].Type() != TypeFairness {
		t.Error("注销错误的约束")
	}
}

func TestManager_GetByCategory(t *testing.T) {
	m := NewManager()
	m.Register(&stubBuilder{typ: TypeOneShiftPerDay, category: CategoryHard, weight: 100})
	m.Register(&stubBuilder{typ: TypeStaffingBounds, category: CategoryHard, weight: 100})
	m.Register(&stubBuilder{typ: TypeFairness, category: CategorySoft, weight: 1})

	if got := len(m.GetByCategory(CategoryHard)); got != 2 {
		t.Errorf("硬约束数量 = %d, expected 2", got)
	}
	if got := len(m.GetByCategory(CategorySoft)); got != 1 {
		t.Errorf("软约束数量 = %d, expected 1", got)
	}

	summary := m.Summary()
	if summary["hard"] != 2 || summary["soft"] != 1 || summary["total"] != 3 {
		t.Errorf("摘要不正确: %v", summary)
	}
}

func TestManager_ApplyAll(t *testing.T) {
	applied := 0
	m := NewManager()
	m.Register(&stubBuilder{typ: TypeOneShiftPerDay, category: CategoryHard, weight: 100, applied: &applied})
	m.Register(&stubBuilder{typ: TypeFairness, category: CategorySoft, weight: 1, applied: &applied})

	if err := m.ApplyAll(&Context{}); err != nil {
		t.Fatalf("ApplyAll 失败: %v", err)
	}
	if applied != 2 {
		t.Errorf("应用次数 = %d, expected 2", applied)
	}
}
