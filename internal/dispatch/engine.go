package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/crowd_safety_system/internal/metrics"
	"github.com/shenikar/crowd_safety_system/internal/models"
	"github.com/shenikar/crowd_safety_system/internal/registry"
	"github.com/shenikar/crowd_safety_system/internal/webhook"
	"github.com/sirupsen/logrus"
)

// Options - параметры работы диспетчера.
type Options struct {
	// MatchInterval - период фонового прохода сопоставления.
	MatchInterval time.Duration
	// StaleETAFactor - множитель ETA, после которого назначение без
	// прибытия на место помечается просроченным.
	StaleETAFactor float64
	// SurgeUnitCount - сколько юнитов охраны запрашивает инцидент
	// типа crowd_surge. Остальные типы запрашивают один юнит.
	SurgeUnitCount int
}

// Engine - диспетчер назначений. Единственный компонент, которому
// разрешено связывать инцидент и юнит: все межсущностные мутации
// проходят через одну точку сериализации (seq), поэтому читатели
// снапшотов никогда не видят юнит dispatched без назначения на
// инциденте и наоборот.
//
// Алгоритм жадный: очередь приоритета обходится от головы к хвосту,
// для каждого инцидента берется ближайший доступный юнит нужного типа.
// Уже отправленный юнит никогда не переназначается, даже если более
// поздний критический инцидент выиграл бы от этого: переброска наряда
// в пути операционно небезопасна, стабильность важнее оптимальности.
type Engine struct {
	zones     *registry.ZoneRegistry
	incidents *registry.IncidentRegistry
	units     *registry.UnitRegistry
	publisher webhook.Publisher
	logger    *logrus.Logger
	opts      Options

	// seq - единая точка сериализации назначений и снапшотов
	seq sync.Mutex

	kick    chan struct{}
	cancel  context.CancelFunc
	running bool
	wg      sync.WaitGroup
	mu      sync.Mutex
}

// NewEngine создает диспетчер. publisher может быть nil, тогда дельты
// не публикуются.
func NewEngine(zones *registry.ZoneRegistry, incidents *registry.IncidentRegistry, units *registry.UnitRegistry, publisher webhook.Publisher, logger *logrus.Logger, opts Options) *Engine {
	if opts.MatchInterval <= 0 {
		opts.MatchInterval = time.Second
	}
	if opts.StaleETAFactor <= 0 {
		opts.StaleETAFactor = 1.5
	}
	if opts.SurgeUnitCount <= 0 {
		opts.SurgeUnitCount = 1
	}
	return &Engine{
		zones:     zones,
		incidents: incidents,
		units:     units,
		publisher: publisher,
		logger:    logger,
		opts:      opts,
		kick:      make(chan struct{}, 1),
	}
}

// Start запускает фоновый цикл диспетчера.
func (e *Engine) Start() {
	e.StartWithContext(context.Background())
}

// StartWithContext запускает фоновый цикл с внешним контекстом.
func (e *Engine) StartWithContext(ctx context.Context) {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.running = true
	e.wg.Add(1)
	e.mu.Unlock()
	go e.loop(runCtx)
}

// Stop останавливает фоновый цикл и дожидается его завершения.
func (e *Engine) Stop() {
	_ = e.StopWithContext(context.Background())
}

// StopWithContext останавливает цикл, учитывая дедлайн контекста.
func (e *Engine) StopWithContext(ctx context.Context) error {
	e.mu.Lock()
	if e.cancel == nil || !e.running {
		e.mu.Unlock()
		return nil
	}
	cancel := e.cancel
	e.cancel = nil
	e.mu.Unlock()
	cancel()
	waitDone := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(waitDone)
	}()
	select {
	case <-waitDone:
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Kick просит диспетчер выполнить проход сопоставления как можно
// быстрее. Вызывается при каждом изменении реестров, влияющем на
// спрос или предложение.
func (e *Engine) Kick() {
	select {
	case e.kick <- struct{}{}:
	default:
	}
}

func (e *Engine) loop(ctx context.Context) {
	defer e.wg.Done()
	ticker := time.NewTicker(e.opts.MatchInterval)
	defer ticker.Stop()
	for {
		select {
		case <-e.kick:
			e.MatchNow(ctx)
		case <-ticker.C:
			e.MatchNow(ctx)
			e.SweepStale(ctx, time.Now().UTC())
		case <-ctx.Done():
			return
		}
	}
}

// MatchNow выполняет один проход сопоставления: обходит очередь
// открытых инцидентов в каноническом порядке и назначает ближайшие
// доступные юниты подходящего типа. Инцидент без подходящего юнита
// остается открытым и наблюдаемым как unmatched - это валидный исход,
// а не ошибка, и он не блокирует инциденты других типов дальше по
// очереди.
func (e *Engine) MatchNow(ctx context.Context) {
	e.seq.Lock()
	defer e.seq.Unlock()

	now := time.Now().UTC()
	unmatched := 0

	for inc := range e.incidents.ListOpen("") {
		need := e.requiredUnits(inc) - len(inc.Assignments)
		if need <= 0 {
			continue
		}
		if inc.Status != models.IncidentOpen && inc.Status != models.IncidentAssigned {
			continue
		}

		zone, err := e.zones.Get(inc.ZoneID)
		if err != nil {
			e.logger.WithError(err).WithField("incident_id", inc.ID).Warn("Incident references unknown zone, skipping")
			continue
		}

		satisfied := true
		for n := 0; n < need; n++ {
			unit, ok := e.pickNearest(inc.Type.RequiredCapability(), zone.Latitude, zone.Longitude)
			if !ok {
				satisfied = false
				break
			}
			if err := e.assign(ctx, &inc, unit, zone, now); err != nil {
				e.logger.WithError(err).WithFields(logrus.Fields{
					"incident_id": inc.ID,
					"unit_id":     unit.ID,
				}).Error("Failed to assign unit")
				satisfied = false
				break
			}
		}
		if !satisfied {
			unmatched++
		}
	}

	metrics.UnmatchedDemand.Set(float64(unmatched))
}

// pickNearest возвращает ближайший доступный юнит заданного типа.
func (e *Engine) pickNearest(capability models.Capability, lat, lon float64) (models.Unit, bool) {
	for u := range e.units.ListAvailable(capability, lat, lon) {
		return u, true
	}
	return models.Unit{}, false
}

// assign атомарно связывает юнит и инцидент: юнит dispatched,
// назначение добавлено инциденту, открытый инцидент переведен в
// assigned. Порядок захвата фиксированный: инцидент раньше юнита.
func (e *Engine) assign(ctx context.Context, inc *models.Incident, unit models.Unit, zone models.Zone, now time.Time) error {
	eta := unit.ETASeconds(zone.Latitude, zone.Longitude)

	if err := e.incidents.AppendAssignment(inc.ID, models.Assignment{
		UnitID:     unit.ID,
		AssignedAt: now,
		ETASeconds: eta,
	}); err != nil {
		return fmt.Errorf("append assignment: %w", err)
	}

	if _, err := e.units.Assign(unit.ID, inc.ID); err != nil {
		return fmt.Errorf("assign unit: %w", err)
	}

	if inc.Status == models.IncidentOpen {
		updated, err := e.incidents.Transition(inc.ID, models.IncidentAssigned)
		if err != nil {
			return fmt.Errorf("transition incident: %w", err)
		}
		*inc = updated
		e.publish(ctx, models.Delta{
			Kind:       models.DeltaIncidentStatusChanged,
			IncidentID: inc.ID.String(),
			ZoneID:     inc.ZoneID,
			Severity:   inc.Severity,
			Status:     string(inc.Status),
			Timestamp:  now,
		})
	}

	e.publish(ctx, models.Delta{
		Kind:      models.DeltaUnitStatusChanged,
		UnitID:    unit.ID,
		ZoneID:    inc.ZoneID,
		Status:    string(models.UnitDispatched),
		Timestamp: now,
	})
	metrics.Matches.Inc()
	e.logger.WithFields(logrus.Fields{
		"incident_id": inc.ID,
		"unit_id":     unit.ID,
		"eta_seconds": eta,
	}).Info("Unit dispatched")
	return nil
}

// requiredUnits возвращает требуемое число юнитов для инцидента.
func (e *Engine) requiredUnits(inc models.Incident) int {
	if inc.Type == models.IncidentCrowdSurge {
		return e.opts.SurgeUnitCount
	}
	return 1
}

// TransitionIncident переводит инцидент в новый статус через точку
// сериализации диспетчера. Конечный статус обязан освободить все
// назначенные юниты в сторону available (через returning) в том же
// согласованном срезе - это обязательный побочный эффект отмены, а
// не best-effort.
func (e *Engine) TransitionIncident(ctx context.Context, id uuid.UUID, status models.IncidentStatus) (models.Incident, error) {
	e.seq.Lock()
	defer e.seq.Unlock()

	inc, err := e.incidents.Transition(id, status)
	if err != nil {
		return models.Incident{}, err
	}
	now := time.Now().UTC()

	if status.Terminal() {
		for _, a := range inc.Assignments {
			unit, err := e.units.Release(a.UnitID)
			if err != nil {
				// Юнит уже успел вернуться в available
				e.logger.WithError(err).WithField("unit_id", a.UnitID).Debug("Unit release skipped")
				continue
			}
			e.publish(ctx, models.Delta{
				Kind:      models.DeltaUnitStatusChanged,
				UnitID:    unit.ID,
				ZoneID:    inc.ZoneID,
				Status:    string(unit.Status),
				Timestamp: now,
			})
		}
	}

	e.publish(ctx, models.Delta{
		Kind:       models.DeltaIncidentStatusChanged,
		IncidentID: inc.ID.String(),
		ZoneID:     inc.ZoneID,
		Severity:   inc.Severity,
		Status:     string(inc.Status),
		Timestamp:  now,
	})
	return inc, nil
}

// SweepStale помечает просроченные назначения: юнит все еще dispatched,
// а дедлайн ETA * StaleETAFactor прошел. Назначение только помечается
// для внимания оператора, юнит не переназначается.
func (e *Engine) SweepStale(ctx context.Context, now time.Time) {
	e.seq.Lock()
	defer e.seq.Unlock()

	for inc := range e.incidents.ListOpen("") {
		for _, a := range inc.Assignments {
			if a.Stale {
				continue
			}
			unit, err := e.units.Get(a.UnitID)
			if err != nil || unit.Status != models.UnitDispatched {
				continue
			}
			deadline := a.AssignedAt.Add(time.Duration(a.ETASeconds*e.opts.StaleETAFactor) * time.Second)
			if now.Before(deadline) {
				continue
			}
			changed, err := e.incidents.MarkStale(inc.ID, a.UnitID)
			if err != nil || !changed {
				continue
			}
			metrics.StaleAssignments.Inc()
			e.publish(ctx, models.Delta{
				Kind:       models.DeltaAssignmentStale,
				IncidentID: inc.ID.String(),
				UnitID:     a.UnitID,
				ZoneID:     inc.ZoneID,
				Timestamp:  now,
			})
			e.logger.WithFields(logrus.Fields{
				"incident_id": inc.ID,
				"unit_id":     a.UnitID,
			}).Warn("Assignment flagged stale")
		}
	}
}

// Snapshot возвращает согласованный срез состояния движка. Берется под
// точкой сериализации, поэтому срез никогда не содержит юнит dispatched
// без соответствующего назначения на инциденте.
func (e *Engine) Snapshot() models.Snapshot {
	e.seq.Lock()
	defer e.seq.Unlock()

	return models.Snapshot{
		TakenAt:   time.Now().UTC(),
		Zones:     e.zones.All(),
		Incidents: e.incidents.Active(),
		Units:     e.units.All(),
	}
}

func (e *Engine) publish(ctx context.Context, delta models.Delta) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.Publish(ctx, delta); err != nil {
		e.logger.WithError(err).Warn("Failed to publish delta")
	}
}
