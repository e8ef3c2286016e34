package registry

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shenikar/crowd_safety_system/internal/models"
	"github.com/shenikar/crowd_safety_system/internal/risk"
)

// ZoneRegistry хранит состояние зон площадки в памяти процесса.
// Зоны регистрируются один раз при загрузке конфигурации и никогда
// не удаляются в течение сеанса. Все мутации сериализуются мьютексом,
// наружу отдаются только копии.
type ZoneRegistry struct {
	mu             sync.RWMutex
	zones          map[string]*models.Zone
	critical       map[string]bool
	window         int
	trendThreshold float64
}

// NewZoneRegistry создает реестр зон с окном истории плотности window
// и порогом тренда trendThreshold для понижения уровня риска.
func NewZoneRegistry(window int, trendThreshold float64) *ZoneRegistry {
	if window < 2 {
		window = 2
	}
	return &ZoneRegistry{
		zones:          make(map[string]*models.Zone),
		critical:       make(map[string]bool),
		window:         window,
		trendThreshold: trendThreshold,
	}
}

// Register регистрирует зону. Повторная регистрация того же id - ошибка.
func (r *ZoneRegistry) Register(zone models.Zone) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.zones[zone.ID]; ok {
		return fmt.Errorf("zone %s: %w", zone.ID, models.ErrDuplicateID)
	}
	zone.Risk = risk.Baseline(zone.Density)
	if zone.Density > 0 {
		zone.History = []float64{zone.Density}
	}
	r.zones[zone.ID] = &zone
	return nil
}

// UpdateDensity записывает новый замер плотности и пересчитывает риск.
// Возвращает копию зоны и признак смены уровня риска.
func (r *ZoneRegistry) UpdateDensity(zoneID string, density float64, ts time.Time) (models.Zone, bool, error) {
	if density < 0 || density > 100 {
		return models.Zone{}, false, fmt.Errorf("density %.2f: %w", density, models.ErrOutOfRange)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	z, ok := r.zones[zoneID]
	if !ok {
		return models.Zone{}, false, fmt.Errorf("zone %s: %w", zoneID, models.ErrUnknownZone)
	}

	z.Density = density
	z.History = append(z.History, density)
	if len(z.History) > r.window {
		z.History = z.History[len(z.History)-r.window:]
	}
	z.UpdatedAt = ts

	changed := r.recompute(z)
	return cloneZone(z), changed, nil
}

// SetIncidentLoad обновляет счетчики открытых инцидентов зоны и
// пересчитывает риск. Возвращает копию зоны и признак смены уровня.
func (r *ZoneRegistry) SetIncidentLoad(zoneID string, open int, hasCritical bool) (models.Zone, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	z, ok := r.zones[zoneID]
	if !ok {
		return models.Zone{}, false, fmt.Errorf("zone %s: %w", zoneID, models.ErrUnknownZone)
	}

	z.OpenIncidents = open
	r.critical[zoneID] = hasCritical
	changed := r.recompute(z)
	return cloneZone(z), changed, nil
}

// Get возвращает копию зоны по id.
func (r *ZoneRegistry) Get(zoneID string) (models.Zone, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	z, ok := r.zones[zoneID]
	if !ok {
		return models.Zone{}, fmt.Errorf("zone %s: %w", zoneID, models.ErrUnknownZone)
	}
	return cloneZone(z), nil
}

// All возвращает копии всех зон, отсортированные по id.
func (r *ZoneRegistry) All() []models.Zone {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Zone, 0, len(r.zones))
	for _, z := range r.zones {
		out = append(out, cloneZone(z))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *ZoneRegistry) recompute(z *models.Zone) bool {
	next := risk.Compute(risk.Inputs{
		Density:        z.Density,
		History:        z.History,
		OpenIncidents:  z.OpenIncidents,
		HasCritical:    r.critical[z.ID],
		TrendThreshold: r.trendThreshold,
	})
	if next == z.Risk {
		return false
	}
	z.Risk = next
	return true
}

func cloneZone(z *models.Zone) models.Zone {
	out := *z
	out.History = make([]float64, len(z.History))
	copy(out.History, z.History)
	return out
}
