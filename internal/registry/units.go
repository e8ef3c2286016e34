package registry

import (
	"fmt"
	"iter"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/crowd_safety_system/internal/models"
)

// UnitRegistry хранит состав юнитов реагирования в памяти процесса.
// Юниты регистрируются при загрузке ростера и не удаляются: вывод из
// смены помечается флагом OffDuty. Инвариант единственного активного
// назначения обеспечивается методами Assign/Release/SetStatus.
type UnitRegistry struct {
	mu    sync.RWMutex
	units map[string]*models.Unit
}

// NewUnitRegistry создает пустой реестр юнитов.
func NewUnitRegistry() *UnitRegistry {
	return &UnitRegistry{units: make(map[string]*models.Unit)}
}

// Register регистрирует юнит. Повторный id - ошибка.
func (r *UnitRegistry) Register(unit models.Unit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.units[unit.ID]; ok {
		return fmt.Errorf("unit %s: %w", unit.ID, models.ErrDuplicateID)
	}
	if unit.Status == "" {
		unit.Status = models.UnitAvailable
	}
	if unit.Status == models.UnitAvailable && unit.IncidentID != nil {
		return fmt.Errorf("unit %s: available with assignment: %w", unit.ID, models.ErrInvalidState)
	}
	r.units[unit.ID] = &unit
	return nil
}

// Get возвращает копию юнита по id.
func (r *UnitRegistry) Get(unitID string) (models.Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.units[unitID]
	if !ok {
		return models.Unit{}, fmt.Errorf("unit %s: %w", unitID, models.ErrUnknownUnit)
	}
	return u.Clone(), nil
}

// SetStatus переводит юнит в новый статус по событию телеметрии.
// Запрещает available при активном назначении и dispatched без него;
// недопустимые шаги цикла отклоняются. Переход returning → available
// снимает обратную ссылку на инцидент.
func (r *UnitRegistry) SetStatus(unitID string, next models.UnitStatus) (models.Unit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.units[unitID]
	if !ok {
		return models.Unit{}, fmt.Errorf("unit %s: %w", unitID, models.ErrUnknownUnit)
	}
	if u.Status == next {
		return u.Clone(), nil
	}
	if next == models.UnitAvailable && u.IncidentID != nil && u.Status != models.UnitReturning {
		return models.Unit{}, fmt.Errorf("unit %s: available while assigned: %w", unitID, models.ErrInvalidState)
	}
	if next == models.UnitDispatched && u.IncidentID == nil {
		return models.Unit{}, fmt.Errorf("unit %s: dispatched without assignment: %w", unitID, models.ErrInvalidState)
	}
	if !u.Status.CanTransition(next) {
		return models.Unit{}, fmt.Errorf("unit %s: %s -> %s: %w", unitID, u.Status, next, models.ErrInvalidTransition)
	}

	u.Status = next
	if next == models.UnitAvailable {
		u.IncidentID = nil
	}
	u.UpdatedAt = time.Now().UTC()
	return u.Clone(), nil
}

// SetPosition обновляет позицию юнита (зона или свободные координаты).
func (r *UnitRegistry) SetPosition(unitID, zoneID string, lat, lon float64) (models.Unit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.units[unitID]
	if !ok {
		return models.Unit{}, fmt.Errorf("unit %s: %w", unitID, models.ErrUnknownUnit)
	}
	u.ZoneID = zoneID
	u.Latitude = lat
	u.Longitude = lon
	u.UpdatedAt = time.Now().UTC()
	return u.Clone(), nil
}

// Assign атомарно назначает доступный юнит на инцидент: available →
// dispatched с установкой обратной ссылки. Вызывается только диспетчером.
func (r *UnitRegistry) Assign(unitID string, incidentID uuid.UUID) (models.Unit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.units[unitID]
	if !ok {
		return models.Unit{}, fmt.Errorf("unit %s: %w", unitID, models.ErrUnknownUnit)
	}
	if u.Status != models.UnitAvailable || u.IncidentID != nil || u.OffDuty {
		return models.Unit{}, fmt.Errorf("unit %s: not available for assignment: %w", unitID, models.ErrInvalidState)
	}

	id := incidentID
	u.Status = models.UnitDispatched
	u.IncidentID = &id
	u.UpdatedAt = time.Now().UTC()
	return u.Clone(), nil
}

// Release отзывает юнит с инцидента: dispatched/on_scene → returning.
// Обратная ссылка сохраняется до возврата в available. Вызывается
// только диспетчером при завершении или отмене инцидента.
func (r *UnitRegistry) Release(unitID string) (models.Unit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.units[unitID]
	if !ok {
		return models.Unit{}, fmt.Errorf("unit %s: %w", unitID, models.ErrUnknownUnit)
	}
	if u.IncidentID == nil {
		return models.Unit{}, fmt.Errorf("unit %s: no active assignment: %w", unitID, models.ErrInvalidState)
	}
	if u.Status == models.UnitReturning {
		return u.Clone(), nil
	}

	u.Status = models.UnitReturning
	u.UpdatedAt = time.Now().UTC()
	return u.Clone(), nil
}

// MarkOffDuty выводит юнит из смены навсегда. Допустимо только для
// юнита без активного назначения.
func (r *UnitRegistry) MarkOffDuty(unitID string) (models.Unit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.units[unitID]
	if !ok {
		return models.Unit{}, fmt.Errorf("unit %s: %w", unitID, models.ErrUnknownUnit)
	}
	if u.IncidentID != nil {
		return models.Unit{}, fmt.Errorf("unit %s: off-duty while assigned: %w", unitID, models.ErrInvalidState)
	}
	u.OffDuty = true
	u.UpdatedAt = time.Now().UTC()
	return u.Clone(), nil
}

// ListAvailable возвращает ленивую перезапускаемую последовательность
// доступных юнитов, опционально отфильтрованных по типу, в порядке
// возрастания ETA до точки (lat, lon). Каждый перезапуск видит
// актуальное состояние реестра.
func (r *UnitRegistry) ListAvailable(capability models.Capability, lat, lon float64) iter.Seq[models.Unit] {
	return func(yield func(models.Unit) bool) {
		r.mu.RLock()
		candidates := make([]models.Unit, 0, len(r.units))
		for _, u := range r.units {
			if u.OffDuty || u.Status != models.UnitAvailable {
				continue
			}
			if capability != "" && u.Capability != capability {
				continue
			}
			candidates = append(candidates, u.Clone())
		}
		r.mu.RUnlock()

		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].ETASeconds(lat, lon) < candidates[j].ETASeconds(lat, lon)
		})
		for _, u := range candidates {
			if !yield(u) {
				return
			}
		}
	}
}

// All возвращает копии всех юнитов, отсортированные по id.
func (r *UnitRegistry) All() []models.Unit {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Unit, 0, len(r.units))
	for _, u := range r.units {
		out = append(out, u.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
