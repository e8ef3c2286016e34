package v1

import (
	"github.com/google/uuid"
	"github.com/shenikar/crowd_safety_system/internal/models"
)

// DTOToDensityEvent преобразует DTO в нормализованное событие плотности
func DTOToDensityEvent(dto DensityEventRequest) models.DensityEvent {
	var density float64
	if dto.Density != nil {
		density = *dto.Density
	}
	return models.DensityEvent{
		ZoneID:    dto.ZoneID,
		Density:   density,
		Timestamp: dto.Timestamp,
	}
}

// DTOToIncidentEvent преобразует DTO в нормализованное событие об инциденте.
// Валидность uuid уже проверена валидатором.
func DTOToIncidentEvent(dto IncidentEventRequest) models.IncidentEvent {
	var id uuid.UUID
	if dto.IncidentID != "" {
		id, _ = uuid.Parse(dto.IncidentID)
	}
	return models.IncidentEvent{
		ID:          id,
		Type:        models.IncidentType(dto.Type),
		ZoneID:      dto.ZoneID,
		Severity:    models.Severity(dto.Severity),
		Description: dto.Description,
		ReportedAt:  dto.ReportedAt,
	}
}

// DTOToUnitStatusEvent преобразует DTO в нормализованное событие о юните
func DTOToUnitStatusEvent(dto UnitStatusEventRequest) models.UnitStatusEvent {
	return models.UnitStatusEvent{
		UnitID:    dto.UnitID,
		Status:    models.UnitStatus(dto.Status),
		ZoneID:    dto.ZoneID,
		Latitude:  dto.Latitude,
		Longitude: dto.Longitude,
	}
}

// ModelToZoneResponse преобразует доменную модель зоны в DTO для ответа
func ModelToZoneResponse(model models.Zone) ZoneResponse {
	return ZoneResponse{
		ID:            model.ID,
		Name:          model.Name,
		Latitude:      model.Latitude,
		Longitude:     model.Longitude,
		Capacity:      model.Capacity,
		Density:       model.Density,
		History:       model.History,
		Risk:          string(model.Risk),
		OpenIncidents: model.OpenIncidents,
		UpdatedAt:     model.UpdatedAt,
	}
}

// ModelToIncidentResponse преобразует доменную модель инцидента в DTO
func ModelToIncidentResponse(model models.Incident) IncidentResponse {
	assignments := make([]AssignmentResponse, len(model.Assignments))
	for i, a := range model.Assignments {
		assignments[i] = AssignmentResponse{
			UnitID:     a.UnitID,
			AssignedAt: a.AssignedAt,
			ETASeconds: a.ETASeconds,
			Stale:      a.Stale,
		}
	}
	return IncidentResponse{
		ID:          model.ID.String(),
		Type:        string(model.Type),
		ZoneID:      model.ZoneID,
		Severity:    string(model.Severity),
		Status:      string(model.Status),
		Description: model.Description,
		ReportedAt:  model.ReportedAt,
		ResolvedAt:  model.ResolvedAt,
		Assignments: assignments,
	}
}

// ModelToUnitResponse преобразует доменную модель юнита в DTO
func ModelToUnitResponse(model models.Unit) UnitResponse {
	var incidentID string
	if model.IncidentID != nil {
		incidentID = model.IncidentID.String()
	}
	return UnitResponse{
		ID:         model.ID,
		Capability: string(model.Capability),
		Status:     string(model.Status),
		ZoneID:     model.ZoneID,
		Latitude:   model.Latitude,
		Longitude:  model.Longitude,
		Personnel:  model.Personnel,
		IncidentID: incidentID,
		OffDuty:    model.OffDuty,
		UpdatedAt:  model.UpdatedAt,
	}
}

// ModelsToZoneResponses преобразует слайс зон в слайс DTO
func ModelsToZoneResponses(zones []models.Zone) []ZoneResponse {
	responses := make([]ZoneResponse, len(zones))
	for i, z := range zones {
		responses[i] = ModelToZoneResponse(z)
	}
	return responses
}

// ModelsToIncidentResponses преобразует слайс инцидентов в слайс DTO
func ModelsToIncidentResponses(incidents []models.Incident) []IncidentResponse {
	responses := make([]IncidentResponse, len(incidents))
	for i, inc := range incidents {
		responses[i] = ModelToIncidentResponse(inc)
	}
	return responses
}

// ModelsToUnitResponses преобразует слайс юнитов в слайс DTO
func ModelsToUnitResponses(units []models.Unit) []UnitResponse {
	responses := make([]UnitResponse, len(units))
	for i, u := range units {
		responses[i] = ModelToUnitResponse(u)
	}
	return responses
}

// SnapshotToResponse преобразует срез состояния движка в DTO
func SnapshotToResponse(snap models.Snapshot) SnapshotResponse {
	return SnapshotResponse{
		TakenAt:   snap.TakenAt,
		Zones:     ModelsToZoneResponses(snap.Zones),
		Incidents: ModelsToIncidentResponses(snap.Incidents),
		Units:     ModelsToUnitResponses(snap.Units),
	}
}
