package registry

import (
	"context"
	"fmt"
	"iter"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
	"github.com/shenikar/crowd_safety_system/internal/models"
)

// IncidentRegistry хранит активные инциденты в памяти процесса.
// Инциденты в конечном статусе переносятся в terminal-кеш с TTL,
// по истечении окна удержания передаются в архивный обработчик.
type IncidentRegistry struct {
	mu       sync.RWMutex
	active   map[uuid.UUID]*models.Incident
	terminal *ttlcache.Cache[uuid.UUID, models.Incident]
}

// NewIncidentRegistry создает реестр с окном удержания retention для
// завершенных инцидентов. onArchive вызывается при вытеснении инцидента
// из окна удержания; nil означает отсутствие архивации.
func NewIncidentRegistry(retention time.Duration, onArchive func(models.Incident)) *IncidentRegistry {
	cache := ttlcache.New(
		ttlcache.WithTTL[uuid.UUID, models.Incident](retention),
		ttlcache.WithDisableTouchOnHit[uuid.UUID, models.Incident](),
	)
	if onArchive != nil {
		cache.OnEviction(func(_ context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[uuid.UUID, models.Incident]) {
			if reason == ttlcache.EvictionReasonExpired {
				onArchive(item.Value())
			}
		})
	}
	go cache.Start()

	return &IncidentRegistry{
		active:   make(map[uuid.UUID]*models.Incident),
		terminal: cache,
	}
}

// Stop останавливает фоновую очистку окна удержания.
func (r *IncidentRegistry) Stop() {
	r.terminal.Stop()
}

// Open регистрирует новый инцидент. Статус принудительно open,
// повторный id - ошибка (включая завершенные, но еще не заархивированные).
func (r *IncidentRegistry) Open(inc models.Incident) (models.Incident, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.active[inc.ID]; ok {
		return models.Incident{}, fmt.Errorf("incident %s: %w", inc.ID, models.ErrDuplicateID)
	}
	if r.terminal.Has(inc.ID) {
		return models.Incident{}, fmt.Errorf("incident %s: %w", inc.ID, models.ErrDuplicateID)
	}

	inc.Status = models.IncidentOpen
	inc.ResolvedAt = nil
	inc.Assignments = nil
	r.active[inc.ID] = &inc
	return inc.Clone(), nil
}

// Get возвращает копию активного инцидента.
func (r *IncidentRegistry) Get(id uuid.UUID) (models.Incident, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inc, ok := r.active[id]
	if !ok {
		return models.Incident{}, fmt.Errorf("incident %s: %w", id, models.ErrUnknownIncident)
	}
	return inc.Clone(), nil
}

// Transition переводит инцидент в новый статус с проверкой машины
// состояний. Конечный статус фиксирует ResolvedAt и переносит инцидент
// в окно удержания: его список назначений после этого не изменяется.
func (r *IncidentRegistry) Transition(id uuid.UUID, next models.IncidentStatus) (models.Incident, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inc, ok := r.active[id]
	if !ok {
		return models.Incident{}, fmt.Errorf("incident %s: %w", id, models.ErrUnknownIncident)
	}
	if !inc.Status.CanTransition(next) {
		return models.Incident{}, fmt.Errorf("incident %s: %s -> %s: %w", id, inc.Status, next, models.ErrInvalidTransition)
	}

	inc.Status = next
	if next.Terminal() {
		now := time.Now().UTC()
		inc.ResolvedAt = &now
		delete(r.active, id)
		r.terminal.Set(id, inc.Clone(), ttlcache.DefaultTTL)
	}
	return inc.Clone(), nil
}

// UpdateSeverity меняет серьезность открытого инцидента (уточнение
// оператором или повторное событие телеметрии с тем же id).
func (r *IncidentRegistry) UpdateSeverity(id uuid.UUID, severity models.Severity) (models.Incident, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inc, ok := r.active[id]
	if !ok {
		return models.Incident{}, fmt.Errorf("incident %s: %w", id, models.ErrUnknownIncident)
	}
	inc.Severity = severity
	return inc.Clone(), nil
}

// AppendAssignment добавляет назначение юнита. Допустимо только пока
// инцидент активен (open/assigned/responding).
func (r *IncidentRegistry) AppendAssignment(id uuid.UUID, a models.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	inc, ok := r.active[id]
	if !ok {
		return fmt.Errorf("incident %s: %w", id, models.ErrUnknownIncident)
	}
	for _, existing := range inc.Assignments {
		if existing.UnitID == a.UnitID {
			return fmt.Errorf("incident %s: unit %s already assigned: %w", id, a.UnitID, models.ErrInvalidState)
		}
	}
	inc.Assignments = append(inc.Assignments, a)
	return nil
}

// MarkStale помечает назначение юнита просроченным. Возвращает true,
// если флаг был установлен этим вызовом.
func (r *IncidentRegistry) MarkStale(id uuid.UUID, unitID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inc, ok := r.active[id]
	if !ok {
		return false, fmt.Errorf("incident %s: %w", id, models.ErrUnknownIncident)
	}
	for i := range inc.Assignments {
		if inc.Assignments[i].UnitID == unitID {
			if inc.Assignments[i].Stale {
				return false, nil
			}
			inc.Assignments[i].Stale = true
			return true, nil
		}
	}
	return false, fmt.Errorf("incident %s: unit %s not assigned: %w", id, unitID, models.ErrInvalidState)
}

// ListOpen возвращает ленивую перезапускаемую последовательность активных
// инцидентов, опционально отфильтрованных по зоне, в каноническом порядке
// приоритета: серьезность по убыванию, время регистрации по возрастанию.
// Каждый перезапуск последовательности видит актуальное состояние реестра.
func (r *IncidentRegistry) ListOpen(zoneID string) iter.Seq[models.Incident] {
	return func(yield func(models.Incident) bool) {
		for _, inc := range r.snapshotOrdered(zoneID) {
			if !yield(inc) {
				return
			}
		}
	}
}

// CountByZone возвращает число активных инцидентов зоны и признак
// наличия критического.
func (r *IncidentRegistry) CountByZone(zoneID string) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int
	var critical bool
	for _, inc := range r.active {
		if inc.ZoneID != zoneID {
			continue
		}
		count++
		if inc.Severity == models.SeverityCritical {
			critical = true
		}
	}
	return count, critical
}

// Active возвращает копии всех активных инцидентов в каноническом порядке.
func (r *IncidentRegistry) Active() []models.Incident {
	return r.snapshotOrdered("")
}

func (r *IncidentRegistry) snapshotOrdered(zoneID string) []models.Incident {
	r.mu.RLock()
	out := make([]models.Incident, 0, len(r.active))
	for _, inc := range r.active {
		if zoneID != "" && inc.ZoneID != zoneID {
			continue
		}
		out = append(out, inc.Clone())
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Severity.Rank() != out[j].Severity.Rank() {
			return out[i].Severity.Rank() > out[j].Severity.Rank()
		}
		return out[i].ReportedAt.Before(out[j].ReportedAt)
	})
	return out
}
