package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/STO-AppointmentService/pkg/types"
)

// DaySchedule интервал работы бокса для одного дня недели.
// День считается закрытым, если IsOpen=false, отсутствует одна из границ
// или обе границы равны "00:00" (устаревший маркер закрытого дня).
type DaySchedule struct {
	IsOpen    bool              `json:"isOpen"`
	OpenTime  *types.TimeString `json:"openTime,omitempty"`
	CloseTime *types.TimeString `json:"closeTime,omitempty"`
}

const closedSentinel = types.TimeString("00:00")

// Interval возвращает интервал работы за день, ok=false если день закрыт
func (d DaySchedule) Interval() (open, close types.TimeString, ok bool) {
	if !d.IsOpen || d.OpenTime == nil || d.CloseTime == nil {
		return "", "", false
	}
	if *d.OpenTime == closedSentinel && *d.CloseTime == closedSentinel {
		return "", "", false
	}
	if !(*d.OpenTime).IsBefore(*d.CloseTime) {
		return "", "", false
	}
	return *d.OpenTime, *d.CloseTime, true
}

// WeekSchedule недельный календарь рабочих часов бокса
type WeekSchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// ForWeekday возвращает расписание для указанного дня недели
func (w WeekSchedule) ForWeekday(weekday time.Weekday) DaySchedule {
	switch weekday {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return DaySchedule{}
	}
}

// IntervalFor возвращает интервал работы для дня недели, ok=false если закрыт
func (w WeekSchedule) IntervalFor(weekday time.Weekday) (open, close types.TimeString, ok bool) {
	return w.ForWeekday(weekday).Interval()
}

// Value реализует driver.Valuer, расписание хранится как JSONB
func (w WeekSchedule) Value() (driver.Value, error) {
	return json.Marshal(w)
}

// Scan реализует sql.Scanner для JSONB колонки working_hours
func (w *WeekSchedule) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*w = WeekSchedule{}
		return nil
	case []byte:
		return json.Unmarshal(v, w)
	case string:
		return json.Unmarshal([]byte(v), w)
	default:
		return fmt.Errorf("cannot scan %T into WeekSchedule", src)
	}
}
