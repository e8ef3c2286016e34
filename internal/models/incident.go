package models

import (
	"time"

	"github.com/google/uuid"
)

// Severity - серьезность инцидента.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var severityOrder = map[Severity]int{
	SeverityLow:      0,
	SeverityMedium:   1,
	SeverityHigh:     2,
	SeverityCritical: 3,
}

// Rank возвращает числовой ранг серьезности (low=0 .. critical=3).
func (s Severity) Rank() int {
	return severityOrder[s]
}

// IncidentType - закрытый набор типов инцидентов.
type IncidentType string

const (
	IncidentMedicalEmergency IncidentType = "medical_emergency"
	IncidentCrowdSurge       IncidentType = "crowd_surge"
	IncidentLostChild        IncidentType = "lost_child"
	IncidentFireAlert        IncidentType = "fire_alert"
	IncidentSecurityThreat   IncidentType = "security_threat"
	IncidentOther            IncidentType = "other"
)

// RequiredCapability возвращает тип юнита, необходимый для реагирования.
// Таблица закрытая: добавление нового типа инцидента требует правки здесь,
// а не сравнения строк по месту вызова.
func (t IncidentType) RequiredCapability() Capability {
	switch t {
	case IncidentMedicalEmergency:
		return CapabilityMedical
	case IncidentFireAlert:
		return CapabilityFire
	default:
		return CapabilitySecurity
	}
}

// IncidentStatus - статус жизненного цикла инцидента.
type IncidentStatus string

const (
	IncidentOpen       IncidentStatus = "open"
	IncidentAssigned   IncidentStatus = "assigned"
	IncidentResponding IncidentStatus = "responding"
	IncidentResolved   IncidentStatus = "resolved"
	IncidentCancelled  IncidentStatus = "cancelled"
)

// Terminal сообщает, является ли статус конечным.
func (s IncidentStatus) Terminal() bool {
	return s == IncidentResolved || s == IncidentCancelled
}

// CanTransition проверяет допустимость перехода по машине состояний:
// open → assigned → responding → resolved, cancelled достижим из
// open/assigned/responding. Из конечных состояний переходов нет.
func (s IncidentStatus) CanTransition(next IncidentStatus) bool {
	if s.Terminal() {
		return false
	}
	switch next {
	case IncidentAssigned:
		return s == IncidentOpen
	case IncidentResponding:
		return s == IncidentAssigned
	case IncidentResolved:
		return s == IncidentResponding
	case IncidentCancelled:
		return true
	default:
		return false
	}
}

// Assignment связывает инцидент с юнитом. Список назначений принадлежит
// инциденту; юнит хранит только обратную ссылку по id.
type Assignment struct {
	UnitID     string    `json:"unit_id"`
	AssignedAt time.Time `json:"assigned_at"`
	ETASeconds float64   `json:"eta_seconds"`
	Stale      bool      `json:"stale"`
}

// Incident - зарегистрированное событие безопасности.
type Incident struct {
	ID          uuid.UUID      `json:"id"`
	Type        IncidentType   `json:"type"`
	ZoneID      string         `json:"zone_id"`
	Severity    Severity       `json:"severity"`
	Status      IncidentStatus `json:"status"`
	Description string         `json:"description,omitempty"`
	ReportedAt  time.Time      `json:"reported_at"`
	ResolvedAt  *time.Time     `json:"resolved_at,omitempty"`
	Assignments []Assignment   `json:"assignments"`
}

// Clone возвращает глубокую копию инцидента для снапшотов.
func (i *Incident) Clone() Incident {
	out := *i
	if i.ResolvedAt != nil {
		ts := *i.ResolvedAt
		out.ResolvedAt = &ts
	}
	out.Assignments = make([]Assignment, len(i.Assignments))
	copy(out.Assignments, i.Assignments)
	return out
}
