package service

import (
	"context"

	"github.com/shenikar/crowd_safety_system/internal/dispatch"
	"github.com/shenikar/crowd_safety_system/internal/models"
	"github.com/shenikar/crowd_safety_system/internal/registry"
)

// IncidentFilter - фильтр списка активных инцидентов.
type IncidentFilter struct {
	ZoneID   string
	Severity models.Severity
}

// UnitFilter - фильтр ростера юнитов.
type UnitFilter struct {
	Capability models.Capability
	Status     models.UnitStatus
}

// QueryService - фасад чтения для внешних потребителей (дашборд,
// алертинг, AI-слой). Отдает только неизменяемые срезы состояния,
// никогда не состояние в середине мутации.
type QueryService interface {
	Zones(ctx context.Context) []models.Zone
	OpenIncidents(ctx context.Context, filter IncidentFilter) []models.Incident
	Units(ctx context.Context, filter UnitFilter) []models.Unit
	Snapshot(ctx context.Context) models.Snapshot
}

type queryService struct {
	zones     *registry.ZoneRegistry
	incidents *registry.IncidentRegistry
	units     *registry.UnitRegistry
	engine    *dispatch.Engine
}

// NewQueryService создает фасад чтения.
func NewQueryService(zones *registry.ZoneRegistry, incidents *registry.IncidentRegistry, units *registry.UnitRegistry, engine *dispatch.Engine) QueryService {
	return &queryService{
		zones:     zones,
		incidents: incidents,
		units:     units,
		engine:    engine,
	}
}

// Zones возвращает все зоны с текущим уровнем риска.
func (s *queryService) Zones(_ context.Context) []models.Zone {
	return s.zones.All()
}

// OpenIncidents возвращает активные инциденты в каноническом порядке
// приоритета с учетом фильтра.
func (s *queryService) OpenIncidents(_ context.Context, filter IncidentFilter) []models.Incident {
	out := make([]models.Incident, 0)
	for inc := range s.incidents.ListOpen(filter.ZoneID) {
		if filter.Severity != "" && inc.Severity != filter.Severity {
			continue
		}
		out = append(out, inc)
	}
	return out
}

// Units возвращает ростер юнитов с учетом фильтра.
func (s *queryService) Units(_ context.Context, filter UnitFilter) []models.Unit {
	all := s.units.All()
	out := make([]models.Unit, 0, len(all))
	for _, u := range all {
		if filter.Capability != "" && u.Capability != filter.Capability {
			continue
		}
		if filter.Status != "" && u.Status != filter.Status {
			continue
		}
		out = append(out, u)
	}
	return out
}

// Snapshot возвращает согласованный срез всех трех реестров, взятый
// под точкой сериализации диспетчера.
func (s *queryService) Snapshot(_ context.Context) models.Snapshot {
	return s.engine.Snapshot()
}
