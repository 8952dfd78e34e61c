package analytics

import (
	"time"

	"github.com/iIonel/EventReport/internal/models"
)

// AnalyticsData пересчитывается целиком при каждой загрузке и не хранится
type AnalyticsData struct {
	Range       TimeRange        `json:"range"`
	GeneratedAt time.Time        `json:"generated_at"`
	Skipped     int              `json:"skipped"`
	Stats       Stats            `json:"stats"`
	ByMonth     []MonthCount     `json:"by_month"`
	ByAlertCode []AlertCodeCount `json:"by_alert_code"`
	ByDayOfWeek []WeekdayCount   `json:"by_day_of_week"`
	ByHour      []HourCount      `json:"by_hour"`
	TopTags     []TagCount       `json:"top_tags"`
	ByDate      []DateCount      `json:"by_date"`
}

// Compute фильтрует события по окну r и строит все агрегаты.
// События без reported_at или с неизвестным уровнем срочности не попадают
// ни в один агрегат и учитываются в Skipped.
func Compute(events []models.Event, r TimeRange, now time.Time, loc *time.Location) *AnalyticsData {
	valid, skipped := sanitize(events)
	filtered := FilterByRange(valid, r, now)

	return &AnalyticsData{
		Range:       r,
		GeneratedAt: now,
		Skipped:     skipped,
		Stats:       CalculateStats(filtered, now),
		ByMonth:     ByMonth(filtered, loc),
		ByAlertCode: ByAlertCode(filtered),
		ByDayOfWeek: ByDayOfWeek(filtered, loc),
		ByHour:      ByHour(filtered, loc),
		TopTags:     TopTags(filtered),
		ByDate:      ByDateTrend(filtered, loc),
	}
}

func usable(e models.Event) bool {
	return !e.ReportedAt.IsZero() && e.AlertCode.Valid()
}

func sanitize(events []models.Event) ([]models.Event, int) {
	skipped := 0
	for _, e := range events {
		if !usable(e) {
			skipped++
		}
	}
	if skipped == 0 {
		return events, 0
	}
	out := make([]models.Event, 0, len(events)-skipped)
	for _, e := range events {
		if usable(e) {
			out = append(out, e)
		}
	}
	return out, skipped
}
