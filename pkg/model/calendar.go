// Package model 定义排班引擎的核心数据模型
package model

// CalendarDay 排班日历中的一天
type CalendarDay struct {
	Date       string   `json:"date"` // YYYY-MM-DD
	Class      DayClass `json:"class"`
	ShiftCodes []string `json:"shift_codes"` // 当天生效的班次类型
}

// HasShift 检查某班次类型当天是否生效
func (d *CalendarDay) HasShift(shiftCode string) bool {
	for _, c := range d.ShiftCodes {
		if c == shiftCode {
			return true
		}
	}
	return false
}

// ExpandHorizon 将规划日期范围展开为日历
// 默认所有班次类型每天都生效
func ExpandHorizon(horizon DateRange, shiftTypes []*ShiftType) []CalendarDay {
	codes := make([]string, 0, len(shiftTypes))
	for _, s := range shiftTypes {
		codes = append(codes, s.Code)
	}

	dates := horizon.Days()
	days := make([]CalendarDay, 0, len(dates))
	for _, date := range dates {
		days = append(days, CalendarDay{
			Date:       date,
			Class:      ClassifyDate(date),
			ShiftCodes: codes,
		})
	}
	return days
}
