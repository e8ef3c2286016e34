package models

import (
	"time"

	"github.com/google/uuid"
)

// Capability - закрытый тип возможностей юнита реагирования.
type Capability string

const (
	CapabilitySecurity Capability = "security"
	CapabilityMedical  Capability = "medical"
	CapabilityFire     Capability = "fire"
	CapabilityOther    Capability = "other"
)

// SpeedMPS возвращает расчетную скорость перемещения юнита в м/с.
// Используется для оценки ETA до точки инцидента.
func (c Capability) SpeedMPS() float64 {
	switch c {
	case CapabilityMedical:
		return 4.0
	case CapabilityFire:
		return 5.0
	case CapabilitySecurity:
		return 3.0
	default:
		return 2.5
	}
}

// UnitStatus - статус юнита. Цикл:
// available → dispatched → on_scene → returning → available.
type UnitStatus string

const (
	UnitAvailable  UnitStatus = "available"
	UnitDispatched UnitStatus = "dispatched"
	UnitOnScene    UnitStatus = "on_scene"
	UnitReturning  UnitStatus = "returning"
)

// CanTransition проверяет допустимость шага по циклу статусов.
// Переход dispatched → returning разрешен для отзыва юнита при
// отмене инцидента до прибытия.
func (s UnitStatus) CanTransition(next UnitStatus) bool {
	switch s {
	case UnitAvailable:
		return next == UnitDispatched
	case UnitDispatched:
		return next == UnitOnScene || next == UnitReturning
	case UnitOnScene:
		return next == UnitReturning
	case UnitReturning:
		return next == UnitAvailable
	default:
		return false
	}
}

// Unit - ресурс реагирования (наряд охраны, медицинская бригада и т.д.).
// Инвариант: статус available ⇔ IncidentID == nil. Юнит никогда не имеет
// более одного активного назначения.
type Unit struct {
	ID         string     `json:"id"`
	Capability Capability `json:"capability"`
	Status     UnitStatus `json:"status"`
	ZoneID     string     `json:"zone_id,omitempty"`
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	Personnel  int        `json:"personnel"`
	IncidentID *uuid.UUID `json:"incident_id,omitempty"`
	OffDuty    bool       `json:"off_duty"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Clone возвращает копию юнита для снапшотов.
func (u *Unit) Clone() Unit {
	out := *u
	if u.IncidentID != nil {
		id := *u.IncidentID
		out.IncidentID = &id
	}
	return out
}
