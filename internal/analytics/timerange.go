package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/iIonel/EventReport/internal/models"
)

// TimeRange - окно давности, по которому фильтруются события
type TimeRange string

const (
	Range7Days  TimeRange = "7d"
	Range30Days TimeRange = "30d"
	Range90Days TimeRange = "90d"
	RangeAll    TimeRange = "all"
)

const day = 24 * time.Hour

func ParseTimeRange(s string) (TimeRange, error) {
	switch r := TimeRange(strings.ToLower(strings.TrimSpace(s))); r {
	case Range7Days, Range30Days, Range90Days, RangeAll:
		return r, nil
	case "":
		return RangeAll, nil
	}
	return "", fmt.Errorf("unknown time range %q (want 7d, 30d, 90d or all)", s)
}

// Days возвращает длину окна в днях, 0 для RangeAll
func (r TimeRange) Days() int {
	switch r {
	case Range7Days:
		return 7
	case Range30Days:
		return 30
	case Range90Days:
		return 90
	}
	return 0
}

// FilterByRange оставляет события с reported_at >= now - N дней.
// Для RangeAll входной срез возвращается без изменений.
func FilterByRange(events []models.Event, r TimeRange, now time.Time) []models.Event {
	days := r.Days()
	if days == 0 {
		return events
	}
	cutoff := now.Add(-time.Duration(days) * day)
	out := make([]models.Event, 0, len(events))
	for _, e := range events {
		if !e.ReportedAt.Before(cutoff) {
			out = append(out, e)
		}
	}
	return out
}
