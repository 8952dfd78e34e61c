package fema

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iIonel/EventReport/internal/models"
)

// ReporterID - автор всех импортированных событий
const ReporterID = "system-fema-import"

// Disaster - декларация катастрофы из FEMA OpenFEMA API
type Disaster struct {
	ID                string `json:"id"`
	DisasterNumber    int    `json:"disasterNumber"`
	DeclarationDate   string `json:"declarationDate"`
	DeclarationType   string `json:"declarationType"`
	DisasterName      string `json:"disasterName"`
	StateCode         string `json:"stateCode"`
	StateName         string `json:"stateName"`
	IncidentType      string `json:"incidentType"`
	IHProgramDeclared bool   `json:"ihProgramDeclared"`
	PAProgramDeclared bool   `json:"paProgramDeclared"`
	HMProgramDeclared bool   `json:"hmProgramDeclared"`
}

// веса уровней в порядке models.AlertCodes(): GREEN чаще всего, RED реже всего
var alertWeights = []float64{0.3, 0.35, 0.25, 0.1}

// Transformer превращает декларации FEMA в события. Случайность берется из rng,
// поэтому с фиксированным seed результат воспроизводим.
type Transformer struct {
	rng *rand.Rand
	now func() time.Time
}

func NewTransformer(rng *rand.Rand, now func() time.Time) *Transformer {
	if now == nil {
		now = time.Now
	}
	return &Transformer{rng: rng, now: now}
}

// Event строит событие из декларации
func (t *Transformer) Event(d Disaster) models.Event {
	now := t.now().UTC()
	reportedAt := now
	if parsed, err := time.Parse(time.RFC3339, d.DeclarationDate); err == nil {
		reportedAt = parsed.UTC()
	}

	return models.Event{
		ID:          uuid.New(),
		ReportedAt:  reportedAt,
		Location:    t.Location(d.StateCode),
		AlertCode:   t.AlertCode(),
		Description: Description(d),
		Tags:        Tags(d.IncidentType),
		ReporterID:  ReporterID,
		CreatedAt:   now,
	}
}

// Events преобразует все декларации по порядку
func (t *Transformer) Events(disasters []Disaster) []models.Event {
	events := make([]models.Event, 0, len(disasters))
	for _, d := range disasters {
		events = append(events, t.Event(d))
	}
	return events
}

// Location - центр штата со случайным смещением до 0.5 градуса.
// Для неизвестного кода берется центр США со смещением до 5 градусов.
func (t *Transformer) Location(stateCode string) models.Location {
	st, ok := states[strings.ToUpper(strings.TrimSpace(stateCode))]
	if !ok {
		return models.NewPoint(
			usCenterLon+t.jitter(usCenterJitter),
			usCenterLat+t.jitter(usCenterJitter),
			unknownAddress,
		)
	}
	return models.NewPoint(
		st.lon+t.jitter(stateJitter),
		st.lat+t.jitter(stateJitter),
		st.name+", USA",
	)
}

// AlertCode выбирает уровень срочности по весам
func (t *Transformer) AlertCode() models.AlertCode {
	codes := models.AlertCodes()
	x := t.rng.Float64()
	for i, w := range alertWeights {
		if x < w {
			return codes[i]
		}
		x -= w
	}
	return codes[len(codes)-1]
}

// SpreadDates переносит today случайных событий на сегодня и tomorrow других на завтра,
// каждое со случайным временем суток. Возвращает фактические количества.
func (t *Transformer) SpreadDates(events []models.Event, today, tomorrow int) (int, int) {
	todayCount := clamp(today, len(events))
	tomorrowCount := clamp(tomorrow, len(events)-todayCount)

	now := t.now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	perm := t.rng.Perm(len(events))
	for i, idx := range perm[:todayCount+tomorrowCount] {
		day := midnight
		if i >= todayCount {
			day = midnight.AddDate(0, 0, 1)
		}
		events[idx].ReportedAt = day.Add(t.timeOfDay())
	}
	return todayCount, tomorrowCount
}

func (t *Transformer) jitter(spread float64) float64 {
	return (t.rng.Float64()*2 - 1) * spread
}

func (t *Transformer) timeOfDay() time.Duration {
	return time.Duration(t.rng.IntN(24))*time.Hour +
		time.Duration(t.rng.IntN(60))*time.Minute +
		time.Duration(t.rng.IntN(60))*time.Second
}

func clamp(n, limit int) int {
	if n < 0 {
		return 0
	}
	return min(n, limit)
}

// Tags - тег-слаг типа инцидента и теги из таблицы, без повторов
func Tags(incidentType string) []string {
	incidentType = strings.TrimSpace(incidentType)
	if incidentType == "" {
		incidentType = "Other"
	}
	base, ok := incidentTags[incidentType]
	if !ok {
		base = defaultIncidentTags
	}
	slug := strings.NewReplacer(" ", "-", "/", "-").Replace(strings.ToLower(incidentType))
	return models.NormalizeTags(append([]string{slug}, base...))
}

// Description - "<тип декларации>: <название> - <штат>. Programs: ..."
func Description(d Disaster) string {
	declType := orDefault(d.DeclarationType, "Unknown")
	name := orDefault(d.DisasterName, "Unknown Disaster")

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s", declType, name)
	if stateName := strings.TrimSpace(d.StateName); stateName != "" {
		fmt.Fprintf(&sb, " - %s", stateName)
	}

	var programs []string
	if d.IHProgramDeclared {
		programs = append(programs, "Individual Assistance")
	}
	if d.PAProgramDeclared {
		programs = append(programs, "Public Assistance")
	}
	if d.HMProgramDeclared {
		programs = append(programs, "Hazard Mitigation")
	}
	if len(programs) > 0 {
		fmt.Fprintf(&sb, ". Programs: %s", strings.Join(programs, ", "))
	}
	return sb.String()
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}
