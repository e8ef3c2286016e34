package models

import (
	"time"

	"github.com/google/uuid"
)

// DensityEvent - нормализованное событие телеметрии плотности.
type DensityEvent struct {
	ZoneID    string
	Density   float64
	Timestamp time.Time
}

// IncidentEvent - нормализованное событие о новом инциденте.
// Нулевой ID означает, что движок сгенерирует идентификатор сам.
type IncidentEvent struct {
	ID          uuid.UUID
	Type        IncidentType
	ZoneID      string
	Severity    Severity
	Description string
	ReportedAt  time.Time
}

// UnitStatusEvent - нормализованное событие о смене статуса/позиции юнита.
// Позиция задается либо зоной, либо свободными координатами.
type UnitStatusEvent struct {
	UnitID    string
	Status    UnitStatus
	ZoneID    string
	Latitude  *float64
	Longitude *float64
}

// DeltaKind - тип изменения состояния движка для подписчиков.
type DeltaKind string

const (
	DeltaZoneRiskChanged       DeltaKind = "zone_risk_changed"
	DeltaIncidentStatusChanged DeltaKind = "incident_status_changed"
	DeltaUnitStatusChanged     DeltaKind = "unit_status_changed"
	DeltaAssignmentStale       DeltaKind = "assignment_stale"
)

// Delta - событие изменения состояния, доставляемое потребителям
// (алертинг, презентационный слой) через очередь.
type Delta struct {
	Kind       DeltaKind `json:"kind"`
	ZoneID     string    `json:"zone_id,omitempty"`
	IncidentID string    `json:"incident_id,omitempty"`
	UnitID     string    `json:"unit_id,omitempty"`
	Risk       RiskLevel `json:"risk,omitempty"`
	Status     string    `json:"status,omitempty"`
	Severity   Severity  `json:"severity,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Snapshot - согласованный срез состояния движка на момент времени.
// Все вложенные структуры являются копиями, мутации движка на снапшот
// не влияют.
type Snapshot struct {
	TakenAt   time.Time  `json:"taken_at"`
	Zones     []Zone     `json:"zones"`
	Incidents []Incident `json:"incidents"`
	Units     []Unit     `json:"units"`
}
