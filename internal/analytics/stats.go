package analytics

import (
	"math"
	"time"

	"github.com/iIonel/EventReport/internal/models"
)

const trendWindow = 7 * day

// Stats - сводные показатели по отфильтрованному набору
type Stats struct {
	Total         int     `json:"total"`
	AvgPerDay     float64 `json:"avg_per_day"`
	TrendPercent  float64 `json:"trend_percent"`
	UrgentPercent float64 `json:"urgent_percent"`
}

// CalculateStats считает итоговые показатели.
// TrendPercent равен 0, если в предыдущем недельном окне не было событий:
// рост "с нуля" намеренно не отличается от отсутствия изменений.
func CalculateStats(events []models.Event, now time.Time) Stats {
	total := len(events)
	if total == 0 {
		return Stats{}
	}

	earliest, latest := events[0].ReportedAt, events[0].ReportedAt
	var urgent, lastWeek, prevWeek int
	lastStart := now.Add(-trendWindow)
	prevStart := now.Add(-2 * trendWindow)

	for _, e := range events {
		if e.ReportedAt.Before(earliest) {
			earliest = e.ReportedAt
		}
		if e.ReportedAt.After(latest) {
			latest = e.ReportedAt
		}
		if e.AlertCode.IsUrgent() {
			urgent++
		}
		switch {
		case e.ReportedAt.After(now):
			// будущие метки времени не попадают ни в одно недельное окно
		case !e.ReportedAt.Before(lastStart):
			lastWeek++
		case !e.ReportedAt.Before(prevStart):
			prevWeek++
		}
	}

	spanDays := math.Max(1, math.Ceil(latest.Sub(earliest).Hours()/24))

	var trend float64
	if prevWeek > 0 {
		trend = round1(float64(lastWeek-prevWeek) / float64(prevWeek) * 100)
	}

	return Stats{
		Total:         total,
		AvgPerDay:     round1(float64(total) / spanDays),
		TrendPercent:  trend,
		UrgentPercent: percent(urgent, total),
	}
}
