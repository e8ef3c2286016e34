package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/crowd_safety_system/internal/dispatch"
	"github.com/shenikar/crowd_safety_system/internal/metrics"
	"github.com/shenikar/crowd_safety_system/internal/models"
	"github.com/shenikar/crowd_safety_system/internal/registry"
	"github.com/shenikar/crowd_safety_system/internal/webhook"
	"github.com/sirupsen/logrus"
)

// TelemetryService определяет контракт приема телеметрии движком.
// Некорректные события отклоняются структурной ошибкой, движок никогда
// не ретраит их самостоятельно: политика повторов принадлежит
// поставщику телеметрии.
type TelemetryService interface {
	IngestDensity(ctx context.Context, ev models.DensityEvent) (models.Zone, error)
	IngestIncident(ctx context.Context, ev models.IncidentEvent) (models.Incident, error)
	IngestUnitStatus(ctx context.Context, ev models.UnitStatusEvent) (models.Unit, error)
	TransitionIncident(ctx context.Context, id uuid.UUID, status models.IncidentStatus) (models.Incident, error)
}

type telemetryService struct {
	zones     *registry.ZoneRegistry
	incidents *registry.IncidentRegistry
	units     *registry.UnitRegistry
	engine    *dispatch.Engine
	publisher webhook.Publisher
	logger    *logrus.Logger
}

// NewTelemetryService создает сервис приема телеметрии.
func NewTelemetryService(zones *registry.ZoneRegistry, incidents *registry.IncidentRegistry, units *registry.UnitRegistry, engine *dispatch.Engine, publisher webhook.Publisher, logger *logrus.Logger) TelemetryService {
	return &telemetryService{
		zones:     zones,
		incidents: incidents,
		units:     units,
		engine:    engine,
		publisher: publisher,
		logger:    logger,
	}
}

// IngestDensity принимает замер плотности зоны и пересчитывает риск.
func (s *telemetryService) IngestDensity(ctx context.Context, ev models.DensityEvent) (models.Zone, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "telemetry",
		"method":  "IngestDensity",
		"zone_id": ev.ZoneID,
	})

	ts := ev.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	zone, riskChanged, err := s.zones.UpdateDensity(ev.ZoneID, ev.Density, ts)
	if err != nil {
		metrics.IngestRejected.WithLabelValues("density").Inc()
		log.WithError(err).Warn("Density sample rejected")
		return models.Zone{}, fmt.Errorf("service: could not update density: %w", err)
	}
	metrics.IngestEvents.WithLabelValues("density").Inc()
	metrics.ZoneRisk.WithLabelValues(zone.ID).Set(float64(zone.Risk.Rank()))

	if riskChanged {
		log.WithField("risk", zone.Risk).Info("Zone risk level changed")
		s.publish(ctx, models.Delta{
			Kind:      models.DeltaZoneRiskChanged,
			ZoneID:    zone.ID,
			Risk:      zone.Risk,
			Timestamp: ts,
		})
	}
	return zone, nil
}

// IngestIncident принимает событие об инциденте. Событие с известным id
// уточняет серьезность открытого инцидента, новое - регистрирует
// инцидент и будит диспетчера.
func (s *telemetryService) IngestIncident(ctx context.Context, ev models.IncidentEvent) (models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "telemetry",
		"method":  "IngestIncident",
		"zone_id": ev.ZoneID,
		"type":    ev.Type,
	})

	// Зона должна существовать до регистрации инцидента
	if _, err := s.zones.Get(ev.ZoneID); err != nil {
		metrics.IngestRejected.WithLabelValues("incident").Inc()
		log.WithError(err).Warn("Incident references unknown zone")
		return models.Incident{}, fmt.Errorf("service: could not ingest incident: %w", err)
	}

	if ev.ID != uuid.Nil {
		if existing, err := s.incidents.Get(ev.ID); err == nil {
			return s.updateSeverity(ctx, existing, ev.Severity, log)
		}
	}

	id := ev.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	reportedAt := ev.ReportedAt
	if reportedAt.IsZero() {
		reportedAt = time.Now().UTC()
	}

	inc, err := s.incidents.Open(models.Incident{
		ID:          id,
		Type:        ev.Type,
		ZoneID:      ev.ZoneID,
		Severity:    ev.Severity,
		Description: ev.Description,
		ReportedAt:  reportedAt,
	})
	if err != nil {
		metrics.IngestRejected.WithLabelValues("incident").Inc()
		log.WithError(err).Warn("Incident rejected")
		return models.Incident{}, fmt.Errorf("service: could not open incident: %w", err)
	}
	metrics.IngestEvents.WithLabelValues("incident").Inc()
	metrics.OpenIncidents.Inc()
	log.WithField("incident_id", inc.ID).Info("Incident opened")

	s.publish(ctx, models.Delta{
		Kind:       models.DeltaIncidentStatusChanged,
		IncidentID: inc.ID.String(),
		ZoneID:     inc.ZoneID,
		Severity:   inc.Severity,
		Status:     string(inc.Status),
		Timestamp:  reportedAt,
	})
	s.refreshZoneLoad(ctx, inc.ZoneID)
	s.engine.Kick()
	return inc, nil
}

// IngestUnitStatus принимает событие о статусе/позиции юнита.
func (s *telemetryService) IngestUnitStatus(ctx context.Context, ev models.UnitStatusEvent) (models.Unit, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "telemetry",
		"method":  "IngestUnitStatus",
		"unit_id": ev.UnitID,
		"status":  ev.Status,
	})

	if ev.ZoneID != "" || ev.Latitude != nil {
		lat, lon, err := s.resolvePosition(ev)
		if err != nil {
			metrics.IngestRejected.WithLabelValues("unit").Inc()
			return models.Unit{}, fmt.Errorf("service: could not resolve unit position: %w", err)
		}
		if _, err := s.units.SetPosition(ev.UnitID, ev.ZoneID, lat, lon); err != nil {
			metrics.IngestRejected.WithLabelValues("unit").Inc()
			log.WithError(err).Warn("Unit position rejected")
			return models.Unit{}, fmt.Errorf("service: could not set unit position: %w", err)
		}
	}

	unit, err := s.units.SetStatus(ev.UnitID, ev.Status)
	if err != nil {
		metrics.IngestRejected.WithLabelValues("unit").Inc()
		log.WithError(err).Warn("Unit status rejected")
		return models.Unit{}, fmt.Errorf("service: could not set unit status: %w", err)
	}
	metrics.IngestEvents.WithLabelValues("unit").Inc()

	s.publish(ctx, models.Delta{
		Kind:      models.DeltaUnitStatusChanged,
		UnitID:    unit.ID,
		ZoneID:    unit.ZoneID,
		Status:    string(unit.Status),
		Timestamp: unit.UpdatedAt,
	})

	// Освободившийся юнит - повод пересмотреть неудовлетворенный спрос
	if unit.Status == models.UnitAvailable {
		s.engine.Kick()
	}
	return unit, nil
}

// TransitionIncident проводит операторский переход статуса инцидента
// через точку сериализации диспетчера и обновляет нагрузку зоны.
func (s *telemetryService) TransitionIncident(ctx context.Context, id uuid.UUID, status models.IncidentStatus) (models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "telemetry",
		"method":      "TransitionIncident",
		"incident_id": id,
		"status":      status,
	})

	inc, err := s.engine.TransitionIncident(ctx, id, status)
	if err != nil {
		log.WithError(err).Warn("Incident transition rejected")
		return models.Incident{}, fmt.Errorf("service: could not transition incident: %w", err)
	}
	log.Info("Incident transitioned")

	if status.Terminal() {
		metrics.OpenIncidents.Dec()
	}
	s.refreshZoneLoad(ctx, inc.ZoneID)
	return inc, nil
}

// updateSeverity уточняет серьезность открытого инцидента и будит
// диспетчера: изменение приоритета может поменять порядок очереди.
func (s *telemetryService) updateSeverity(ctx context.Context, existing models.Incident, severity models.Severity, log *logrus.Entry) (models.Incident, error) {
	if existing.Severity == severity {
		return existing, nil
	}
	inc, err := s.incidents.UpdateSeverity(existing.ID, severity)
	if err != nil {
		return models.Incident{}, fmt.Errorf("service: could not update severity: %w", err)
	}
	log.WithFields(logrus.Fields{
		"incident_id": inc.ID,
		"severity":    severity,
	}).Info("Incident severity updated")

	s.refreshZoneLoad(ctx, inc.ZoneID)
	s.engine.Kick()
	return inc, nil
}

// refreshZoneLoad пересчитывает нагрузку зоны по открытым инцидентам
// и публикует дельту при смене уровня риска.
func (s *telemetryService) refreshZoneLoad(ctx context.Context, zoneID string) {
	open, hasCritical := s.incidents.CountByZone(zoneID)
	zone, riskChanged, err := s.zones.SetIncidentLoad(zoneID, open, hasCritical)
	if err != nil {
		s.logger.WithError(err).WithField("zone_id", zoneID).Error("Failed to refresh zone load")
		return
	}
	metrics.ZoneRisk.WithLabelValues(zone.ID).Set(float64(zone.Risk.Rank()))
	if riskChanged {
		s.publish(ctx, models.Delta{
			Kind:      models.DeltaZoneRiskChanged,
			ZoneID:    zone.ID,
			Risk:      zone.Risk,
			Timestamp: time.Now().UTC(),
		})
	}
}

// resolvePosition переводит позицию события в координаты: либо центроид
// зоны, либо свободные координаты.
func (s *telemetryService) resolvePosition(ev models.UnitStatusEvent) (float64, float64, error) {
	if ev.Latitude != nil && ev.Longitude != nil {
		return *ev.Latitude, *ev.Longitude, nil
	}
	zone, err := s.zones.Get(ev.ZoneID)
	if err != nil {
		return 0, 0, err
	}
	return zone.Latitude, zone.Longitude, nil
}

func (s *telemetryService) publish(ctx context.Context, delta models.Delta) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, delta); err != nil {
		s.logger.WithError(err).Warn("Failed to publish delta")
	}
}
