package v1

import (
	"time"
)

// DensityEventRequest DTO события плотности зоны
// @Description DTO события плотности зоны
type DensityEventRequest struct {
	ZoneID    string    `json:"zone_id" validate:"required"`
	Density   *float64  `json:"density" validate:"required"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// IncidentEventRequest DTO события об инциденте
// @Description DTO события об инциденте
type IncidentEventRequest struct {
	IncidentID  string    `json:"incident_id,omitempty" validate:"omitempty,uuid"`
	Type        string    `json:"type" validate:"required,oneof=medical_emergency crowd_surge lost_child fire_alert security_threat other"`
	ZoneID      string    `json:"zone_id" validate:"required"`
	Severity    string    `json:"severity" validate:"required,oneof=low medium high critical"`
	Description string    `json:"description,omitempty" validate:"max=1024"`
	ReportedAt  time.Time `json:"reported_at,omitempty"`
}

// UnitStatusEventRequest DTO события о статусе юнита
// @Description DTO события о статусе юнита
type UnitStatusEventRequest struct {
	UnitID    string   `json:"unit_id" validate:"required"`
	Status    string   `json:"status" validate:"required,oneof=available dispatched on_scene returning"`
	ZoneID    string   `json:"zone_id,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
}

// TransitionRequest DTO операторского перехода статуса инцидента
// @Description DTO операторского перехода статуса инцидента
type TransitionRequest struct {
	Status string `json:"status" validate:"required,oneof=assigned responding resolved cancelled"`
}

// ZoneResponse DTO зоны с текущим уровнем риска
// @Description DTO зоны с текущим уровнем риска
type ZoneResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	Capacity      int       `json:"capacity"`
	Density       float64   `json:"density"`
	History       []float64 `json:"density_history"`
	Risk          string    `json:"risk"`
	OpenIncidents int       `json:"open_incidents"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AssignmentResponse DTO назначения юнита на инцидент
// @Description DTO назначения юнита на инцидент
type AssignmentResponse struct {
	UnitID     string    `json:"unit_id"`
	AssignedAt time.Time `json:"assigned_at"`
	ETASeconds float64   `json:"eta_seconds"`
	Stale      bool      `json:"stale"`
}

// IncidentResponse DTO инцидента с состоянием назначений
// @Description DTO инцидента с состоянием назначений
type IncidentResponse struct {
	ID          string               `json:"id"`
	Type        string               `json:"type"`
	ZoneID      string               `json:"zone_id"`
	Severity    string               `json:"severity"`
	Status      string               `json:"status"`
	Description string               `json:"description,omitempty"`
	ReportedAt  time.Time            `json:"reported_at"`
	ResolvedAt  *time.Time           `json:"resolved_at,omitempty"`
	Assignments []AssignmentResponse `json:"assignments"`
}

// UnitResponse DTO юнита реагирования
// @Description DTO юнита реагирования
type UnitResponse struct {
	ID         string    `json:"id"`
	Capability string    `json:"capability"`
	Status     string    `json:"status"`
	ZoneID     string    `json:"zone_id,omitempty"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Personnel  int       `json:"personnel"`
	IncidentID string    `json:"incident_id,omitempty"`
	OffDuty    bool      `json:"off_duty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SnapshotResponse DTO согласованного среза состояния движка
// @Description DTO согласованного среза состояния движка
type SnapshotResponse struct {
	TakenAt   time.Time          `json:"taken_at"`
	Zones     []ZoneResponse     `json:"zones"`
	Incidents []IncidentResponse `json:"incidents"`
	Units     []UnitResponse     `json:"units"`
}
