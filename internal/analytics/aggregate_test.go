package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/iIonel/EventReport/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEvent(at time.Time, code models.AlertCode, tags ...string) models.Event {
	return models.Event{
		ReportedAt: at,
		AlertCode:  code,
		Tags:       tags,
		Location:   models.NewPoint(26.1, 44.4, ""),
	}
}

func scenarioEvents() []models.Event {
	return []models.Event{
		newEvent(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC), models.AlertRed, "fire"),
		newEvent(time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC), models.AlertGreen, "fire", "smoke"),
	}
}

func TestAggregators_EmptyInputHasAllBuckets(t *testing.T) {
	months := ByMonth(nil, time.UTC)
	require.Len(t, months, 12)
	assert.Equal(t, "Jan", months[0].Month)
	assert.Equal(t, "Dec", months[11].Month)

	codes := ByAlertCode(nil)
	require.Len(t, codes, 4)
	for i, code := range models.AlertCodes() {
		assert.Equal(t, code, codes[i].Code)
		assert.Zero(t, codes[i].Value)
		assert.Zero(t, codes[i].Percent)
	}

	days := ByDayOfWeek(nil, time.UTC)
	require.Len(t, days, 7)
	assert.Equal(t, "Sun", days[0].Day)
	assert.Equal(t, "Sat", days[6].Day)

	hours := ByHour(nil, time.UTC)
	require.Len(t, hours, 24)
	for h, bucket := range hours {
		assert.Equal(t, fmt.Sprintf("%02d:00", h), bucket.Hour)
		assert.Zero(t, bucket.Count)
	}

	assert.Empty(t, TopTags(nil))
	assert.Empty(t, ByDateTrend(nil, time.UTC))
}

func TestAggregators_Scenario(t *testing.T) {
	events := scenarioEvents()

	months := ByMonth(events, time.UTC)
	assert.Equal(t, MonthCount{Month: "Mar", Count: 2}, months[2])

	codes := ByAlertCode(events)
	assert.Equal(t, AlertCodeCount{Code: models.AlertGreen, Value: 1, Percent: 50}, codes[0])
	assert.Equal(t, AlertCodeCount{Code: models.AlertRed, Value: 1, Percent: 50}, codes[3])

	assert.Equal(t, []TagCount{{Tag: "fire", Count: 2}, {Tag: "smoke", Count: 1}}, TopTags(events))

	hours := ByHour(events, time.UTC)
	assert.Equal(t, 1, hours[10].Count)
	assert.Equal(t, 1, hours[14].Count)

	days := ByDayOfWeek(events, time.UTC)
	assert.Equal(t, 2, days[time.Friday].Count)

	assert.Equal(t, []DateCount{{Date: "2024-03-15", Count: 2}}, ByDateTrend(events, time.UTC))
}

func TestAggregators_BucketSumsEqualTotal(t *testing.T) {
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	codes := models.AlertCodes()
	var events []models.Event
	for i := 0; i < 517; i++ {
		at := base.Add(time.Duration(i*37) * time.Hour)
		events = append(events, newEvent(at, codes[i%len(codes)]))
	}

	sumMonths, sumCodes, sumDays, sumHours := 0, 0, 0, 0
	var percentTotal float64
	for _, b := range ByMonth(events, time.UTC) {
		sumMonths += b.Count
	}
	for _, b := range ByAlertCode(events) {
		sumCodes += b.Value
		percentTotal += b.Percent
	}
	for _, b := range ByDayOfWeek(events, time.UTC) {
		sumDays += b.Count
	}
	for _, b := range ByHour(events, time.UTC) {
		sumHours += b.Count
	}

	assert.Equal(t, len(events), sumMonths)
	assert.Equal(t, len(events), sumCodes)
	assert.Equal(t, len(events), sumDays)
	assert.Equal(t, len(events), sumHours)
	assert.InDelta(t, 100, percentTotal, 0.5)
}

func TestByHour_UsesLocation(t *testing.T) {
	loc := time.FixedZone("EET", 2*60*60)
	events := []models.Event{newEvent(time.Date(2024, 3, 15, 23, 30, 0, 0, time.UTC), models.AlertGreen)}

	hours := ByHour(events, loc)
	assert.Equal(t, 1, hours[1].Count)

	trend := ByDateTrend(events, loc)
	require.Len(t, trend, 1)
	assert.Equal(t, "2024-03-16", trend[0].Date)
}

func TestTopTags_LimitAndOrder(t *testing.T) {
	var events []models.Event
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 15; i++ {
		tag := fmt.Sprintf("tag-%02d", i)
		for j := 0; j <= i%5; j++ {
			events = append(events, newEvent(at, models.AlertYellow, tag))
		}
	}

	top := TopTags(events)
	require.Len(t, top, 10)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Count, top[i].Count)
	}
	assert.Equal(t, "tag-04", top[0].Tag)
	assert.Equal(t, 5, top[0].Count)
}

func TestByDateTrend_KeepsLast30NonEmptyDates(t *testing.T) {
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	var events []models.Event
	// каждые два дня, 40 дат
	for i := 0; i < 40; i++ {
		events = append(events, newEvent(base.AddDate(0, 0, i*2), models.AlertGreen))
	}
	// порядок входа не важен
	events[0], events[39] = events[39], events[0]

	trend := ByDateTrend(events, time.UTC)
	require.Len(t, trend, 30)
	assert.Equal(t, base.AddDate(0, 0, 20).Format(dateLayout), trend[0].Date)
	assert.Equal(t, base.AddDate(0, 0, 78).Format(dateLayout), trend[29].Date)
	for i := 1; i < len(trend); i++ {
		assert.Less(t, trend[i-1].Date, trend[i].Date)
	}
}

func TestByAlertCode_IgnoresUnknownCodes(t *testing.T) {
	events := []models.Event{
		newEvent(time.Now(), models.AlertGreen),
		newEvent(time.Now(), models.AlertCode("PURPLE")),
	}

	codes := ByAlertCode(events)

	assert.Equal(t, 1, codes[0].Value)
	assert.Equal(t, 100.0, codes[0].Percent)
}
