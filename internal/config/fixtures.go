package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shenikar/crowd_safety_system/internal/models"
)

// zoneFixture - описание зоны в файле конфигурации площадки.
type zoneFixture struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Capacity  int     `json:"capacity"`
}

// rosterFixture - описание юнита в файле ростера.
type rosterFixture struct {
	ID         string  `json:"id"`
	Capability string  `json:"capability"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Personnel  int     `json:"personnel"`
}

// LoadZones загружает карту зон площадки из JSON файла.
func LoadZones(path string) ([]models.Zone, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read zones file %s: %w", path, err)
	}

	var fixtures []zoneFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("failed to parse zones file %s: %w", path, err)
	}

	zones := make([]models.Zone, 0, len(fixtures))
	for _, f := range fixtures {
		zones = append(zones, models.Zone{
			ID:        f.ID,
			Name:      f.Name,
			Latitude:  f.Latitude,
			Longitude: f.Longitude,
			Capacity:  f.Capacity,
			Risk:      models.RiskLow,
		})
	}
	return zones, nil
}

// LoadRoster загружает ростер юнитов реагирования из JSON файла.
// Юниты из ростера всегда стартуют в статусе available.
func LoadRoster(path string) ([]models.Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file %s: %w", path, err)
	}

	var fixtures []rosterFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("failed to parse roster file %s: %w", path, err)
	}

	units := make([]models.Unit, 0, len(fixtures))
	for _, f := range fixtures {
		units = append(units, models.Unit{
			ID:         f.ID,
			Capability: models.Capability(f.Capability),
			Status:     models.UnitAvailable,
			Latitude:   f.Latitude,
			Longitude:  f.Longitude,
			Personnel:  f.Personnel,
		})
	}
	return units, nil
}
