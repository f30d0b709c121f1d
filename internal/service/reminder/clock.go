package reminder

import (
	"time"

	"github.com/robfig/cron"
)

// Clock источник времени и таймеров, подменяется в тестах
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func RealClock() Clock { return realClock{} }

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Schedule возвращает следующий момент срабатывания после t
type Schedule interface {
	Next(t time.Time) time.Time
}

// ParseSchedule разбирает cron-выражение из пяти полей, например "0 9 * * *"
func ParseSchedule(expr string) (Schedule, error) {
	return cron.ParseStandard(expr)
}

// DayBounds возвращает [начало дня, начало следующего дня) в локации t
func DayBounds(t time.Time) (time.Time, time.Time) {
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
