package v1

import (
	"strings"

	"github.com/iIonel/EventReport/internal/models"
)

func dtoToLocation(dto LocationRequest) models.Location {
	coords := make([]float64, len(dto.Coordinates))
	copy(coords, dto.Coordinates)
	return models.Location{
		Type:        dto.Type,
		Coordinates: coords,
		Address:     dto.Address,
	}
}

// DTOToEventCreate преобразует DTO создания в доменную модель
func DTOToEventCreate(dto CreateEventRequest) models.EventCreate {
	return models.EventCreate{
		Location:    dtoToLocation(dto.Location),
		AlertCode:   models.AlertCode(dto.AlertCode),
		Description: dto.Description,
		Tags:        dto.Tags,
	}
}

// DTOToEventUpdate преобразует DTO обновления, сохраняя nil для неизменяемых полей
func DTOToEventUpdate(dto UpdateEventRequest) models.EventUpdate {
	update := models.EventUpdate{
		Description: dto.Description,
		Tags:        dto.Tags,
	}
	if dto.Location != nil {
		loc := dtoToLocation(*dto.Location)
		update.Location = &loc
	}
	if dto.AlertCode != nil {
		code := models.AlertCode(*dto.AlertCode)
		update.AlertCode = &code
	}
	return update
}

func QueryToEventFilter(q ListEventsQuery) models.EventFilter {
	filter := models.EventFilter{
		AlertCode: models.AlertCode(q.AlertCode),
		Skip:      q.Skip,
		Limit:     q.Limit,
	}
	if q.Tags != "" {
		filter.Tags = strings.Split(q.Tags, ",")
	}
	return filter
}

func QueryToNearby(q NearbyQuery) models.NearbyQuery {
	return models.NearbyQuery{
		Longitude:   *q.Longitude,
		Latitude:    *q.Latitude,
		MaxDistance: q.MaxDistance,
		Limit:       q.Limit,
	}
}

// ModelToEventResponse преобразует доменную модель в DTO для ответа
func ModelToEventResponse(model *models.Event) *EventResponse {
	tags := model.Tags
	if tags == nil {
		tags = []string{}
	}
	return &EventResponse{
		ID:         model.ID,
		ReportedAt: model.ReportedAt,
		Location: LocationResponse{
			Type:        "Point",
			Coordinates: []float64{model.Location.Longitude(), model.Location.Latitude()},
			Address:     model.Location.Address,
		},
		AlertCode:   string(model.AlertCode),
		Description: model.Description,
		ImageID:     model.ImageID,
		Tags:        tags,
		ReporterID:  model.ReporterID,
		CreatedAt:   model.CreatedAt,
	}
}

// ModelsToEventResponses преобразует слайс моделей в слайс DTO
func ModelsToEventResponses(events []models.Event) []*EventResponse {
	responses := make([]*EventResponse, len(events))
	for i := range events {
		responses[i] = ModelToEventResponse(&events[i])
	}
	return responses
}

func DTOToAdminCreate(dto CreateAdminRequest) models.AdminCreate {
	return models.AdminCreate{
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Email:     dto.Email,
		Phone:     dto.Phone,
	}
}

func ModelToAdminResponse(model *models.Admin) *AdminResponse {
	return &AdminResponse{
		ID:        model.ID,
		FirstName: model.FirstName,
		LastName:  model.LastName,
		Email:     model.Email,
		Phone:     model.Phone,
		CreatedAt: model.CreatedAt,
	}
}

func ModelsToAdminResponses(admins []models.Admin) []*AdminResponse {
	responses := make([]*AdminResponse, len(admins))
	for i := range admins {
		responses[i] = ModelToAdminResponse(&admins[i])
	}
	return responses
}
