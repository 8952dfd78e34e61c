package fema

import (
	"time"

	"github.com/iIonel/EventReport/internal/analytics"
	"github.com/iIonel/EventReport/internal/models"
)

// Summary - итог импорта для лога
type Summary struct {
	ByAlertCode []analytics.AlertCodeCount
	Today       int
	Tomorrow    int
}

// Summarize считает уровни срочности и события с сегодняшней и завтрашней датой (UTC)
func Summarize(events []models.Event, now time.Time) Summary {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)
	dayAfter := tomorrow.AddDate(0, 0, 1)

	s := Summary{ByAlertCode: analytics.ByAlertCode(events)}
	for _, e := range events {
		at := e.ReportedAt.UTC()
		switch {
		case !at.Before(today) && at.Before(tomorrow):
			s.Today++
		case !at.Before(tomorrow) && at.Before(dayAfter):
			s.Tomorrow++
		}
	}
	return s
}
