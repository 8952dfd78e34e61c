package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/iIonel/EventReport/internal/models"
)

const (
	topTagsLimit   = 10
	trendDaysLimit = 30
	dateLayout     = "2006-01-02"
)

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

var weekdayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type AlertCodeCount struct {
	Code    models.AlertCode `json:"name"`
	Value   int              `json:"value"`
	Percent float64          `json:"percentage"`
}

type WeekdayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type HourCount struct {
	Hour  string `json:"hour"`
	Count int    `json:"count"`
}

type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

func localize(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		return t.Local()
	}
	return t.In(loc)
}

// ByMonth раскладывает события по двенадцати календарным месяцам, Jan..Dec
func ByMonth(events []models.Event, loc *time.Location) []MonthCount {
	out := make([]MonthCount, len(monthNames))
	for i, name := range monthNames {
		out[i].Month = name
	}
	for _, e := range events {
		out[localize(e.ReportedAt, loc).Month()-1].Count++
	}
	return out
}

// ByAlertCode считает события по уровням срочности и долю каждого уровня в процентах.
// Неизвестные коды не входят ни в корзины, ни в знаменатель.
func ByAlertCode(events []models.Event) []AlertCodeCount {
	codes := models.AlertCodes()
	out := make([]AlertCodeCount, len(codes))
	for i, code := range codes {
		out[i].Code = code
	}
	total := 0
	for _, e := range events {
		if rank := e.AlertCode.Rank(); rank >= 0 {
			out[rank].Value++
			total++
		}
	}
	for i := range out {
		out[i].Percent = percent(out[i].Value, total)
	}
	return out
}

// ByDayOfWeek - семь корзин, начиная с воскресенья
func ByDayOfWeek(events []models.Event, loc *time.Location) []WeekdayCount {
	out := make([]WeekdayCount, len(weekdayNames))
	for i, name := range weekdayNames {
		out[i].Day = name
	}
	for _, e := range events {
		out[localize(e.ReportedAt, loc).Weekday()].Count++
	}
	return out
}

// ByHour - 24 часовые корзины в локальном времени, подписанные "HH:00"
func ByHour(events []models.Event, loc *time.Location) []HourCount {
	out := make([]HourCount, 24)
	for h := range out {
		out[h].Hour = fmt.Sprintf("%02d:00", h)
	}
	for _, e := range events {
		out[localize(e.ReportedAt, loc).Hour()].Count++
	}
	return out
}

// TopTags возвращает до десяти самых частых тегов. При равенстве
// сохраняется порядок первого появления тега.
func TopTags(events []models.Event) []TagCount {
	index := make(map[string]int)
	out := make([]TagCount, 0)
	for _, e := range events {
		for _, tag := range e.Tags {
			i, ok := index[tag]
			if !ok {
				i = len(out)
				index[tag] = i
				out = append(out, TagCount{Tag: tag})
			}
			out[i].Count++
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if len(out) > topTagsLimit {
		out = out[:topTagsLimit]
	}
	return out
}

// ByDateTrend группирует события по календарной дате и оставляет 30 последних
// непустых дат в порядке возрастания
func ByDateTrend(events []models.Event, loc *time.Location) []DateCount {
	counts := make(map[string]int)
	for _, e := range events {
		counts[localize(e.ReportedAt, loc).Format(dateLayout)]++
	}
	out := make([]DateCount, 0, len(counts))
	for date, count := range counts {
		out = append(out, DateCount{Date: date, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	if len(out) > trendDaysLimit {
		out = out[len(out)-trendDaysLimit:]
	}
	return out
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(part) / float64(total) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
