package dispatch

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/crowd_safety_system/internal/models"
	"github.com/shenikar/crowd_safety_system/internal/registry"
	webhook_mocks "github.com/shenikar/crowd_safety_system/internal/webhook/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type engineFixture struct {
	engine    *Engine
	zones     *registry.ZoneRegistry
	incidents *registry.IncidentRegistry
	units     *registry.UnitRegistry
}

// newTestEngine собирает движок на реальных реестрах без фонового цикла:
// проходы сопоставления вызываются синхронно из тестов.
func newTestEngine(t *testing.T, opts Options) *engineFixture {
	zones := registry.NewZoneRegistry(5, 10)
	require.NoError(t, zones.Register(models.Zone{
		ID: "main-stage", Name: "Main Stage",
		Latitude: 55.7512, Longitude: 37.6184, Capacity: 15000,
	}))
	require.NoError(t, zones.Register(models.Zone{
		ID: "food-court", Name: "Food Court",
		Latitude: 55.7524, Longitude: 37.6230, Capacity: 9000,
	}))

	incidents := registry.NewIncidentRegistry(time.Minute, nil)
	t.Cleanup(incidents.Stop)
	units := registry.NewUnitRegistry()

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	engine := NewEngine(zones, incidents, units, nil, logger, opts)
	return &engineFixture{engine: engine, zones: zones, incidents: incidents, units: units}
}

func (f *engineFixture) addUnit(t *testing.T, id string, capability models.Capability, lat, lon float64) {
	t.Helper()
	require.NoError(t, f.units.Register(models.Unit{
		ID: id, Capability: capability, Latitude: lat, Longitude: lon, Personnel: 2,
	}))
}

func (f *engineFixture) openIncident(t *testing.T, incType models.IncidentType, zoneID string, severity models.Severity, reportedAt time.Time) models.Incident {
	t.Helper()
	inc, err := f.incidents.Open(models.Incident{
		ID: uuid.New(), Type: incType, ZoneID: zoneID,
		Severity: severity, ReportedAt: reportedAt,
	})
	require.NoError(t, err)
	return inc
}

func TestEngine_MatchNow_PriorityWins(t *testing.T) {
	// Подготовка: один юнит охраны и два инцидента, критический
	// зарегистрирован позже
	f := newTestEngine(t, Options{})
	f.addUnit(t, "SEC-01", models.CapabilitySecurity, 55.7513, 37.6180)

	base := time.Date(2026, 6, 12, 18, 0, 0, 0, time.UTC)
	medium := f.openIncident(t, models.IncidentOther, "main-stage", models.SeverityMedium, base)
	critical := f.openIncident(t, models.IncidentSecurityThreat, "main-stage", models.SeverityCritical, base.Add(time.Minute))

	// Действие
	f.engine.MatchNow(context.Background())

	// Проверки: юнит достался критическому, средний остался open
	got, err := f.incidents.Get(critical.ID)
	require.NoError(t, err)
	assert.Equal(t, models.IncidentAssigned, got.Status)
	require.Len(t, got.Assignments, 1)
	assert.Equal(t, "SEC-01", got.Assignments[0].UnitID)

	got, err = f.incidents.Get(medium.ID)
	require.NoError(t, err)
	assert.Equal(t, models.IncidentOpen, got.Status)
	assert.Empty(t, got.Assignments)

	unit, err := f.units.Get("SEC-01")
	require.NoError(t, err)
	assert.Equal(t, models.UnitDispatched, unit.Status)
	require.NotNil(t, unit.IncidentID)
	assert.Equal(t, critical.ID, *unit.IncidentID)
}

func TestEngine_MatchNow_CapabilityMatch(t *testing.T) {
	// Подготовка: медицинский инцидент не берет юнит охраны
	f := newTestEngine(t, Options{})
	f.addUnit(t, "SEC-01", models.CapabilitySecurity, 55.7513, 37.6180)
	f.addUnit(t, "EMT-01", models.CapabilityMedical, 55.7600, 37.6300)

	medical := f.openIncident(t, models.IncidentMedicalEmergency, "main-stage", models.SeverityHigh, time.Now().UTC())

	// Действие
	f.engine.MatchNow(context.Background())

	// Проверки: назначен медик, даже если охрана ближе
	got, err := f.incidents.Get(medical.ID)
	require.NoError(t, err)
	require.Len(t, got.Assignments, 1)
	assert.Equal(t, "EMT-01", got.Assignments[0].UnitID)

	unit, err := f.units.Get("SEC-01")
	require.NoError(t, err)
	assert.Equal(t, models.UnitAvailable, unit.Status)
}

func TestEngine_MatchNow_NearestUnitWins(t *testing.T) {
	// Подготовка: два юнита охраны на разном удалении от зоны
	f := newTestEngine(t, Options{})
	f.addUnit(t, "SEC-FAR", models.CapabilitySecurity, 55.7700, 37.6500)
	f.addUnit(t, "SEC-NEAR", models.CapabilitySecurity, 55.7513, 37.6185)

	inc := f.openIncident(t, models.IncidentOther, "main-stage", models.SeverityLow, time.Now().UTC())

	// Действие
	f.engine.MatchNow(context.Background())

	// Проверки
	got, err := f.incidents.Get(inc.ID)
	require.NoError(t, err)
	require.Len(t, got.Assignments, 1)
	assert.Equal(t, "SEC-NEAR", got.Assignments[0].UnitID)
	assert.Greater(t, got.Assignments[0].ETASeconds, 0.0)
}

func TestEngine_MatchNow_UnmatchedStaysOpen(t *testing.T) {
	// Подготовка: подходящих юнитов нет вовсе
	f := newTestEngine(t, Options{})
	f.addUnit(t, "SEC-01", models.CapabilitySecurity, 55.7513, 37.6180)

	fire := f.openIncident(t, models.IncidentFireAlert, "main-stage", models.SeverityHigh, time.Now().UTC())

	// Действие: несколько проходов подряд
	f.engine.MatchNow(context.Background())
	f.engine.MatchNow(context.Background())

	// Проверки: инцидент остается открытым, это валидный исход
	got, err := f.incidents.Get(fire.ID)
	require.NoError(t, err)
	assert.Equal(t, models.IncidentOpen, got.Status)
	assert.Empty(t, got.Assignments)
}

func TestEngine_MatchNow_UnmatchedDoesNotBlockQueue(t *testing.T) {
	// Подготовка: пожарный инцидент выше по приоритету, но без юнита;
	// охранный ниже по очереди должен быть обслужен
	f := newTestEngine(t, Options{})
	f.addUnit(t, "SEC-01", models.CapabilitySecurity, 55.7513, 37.6180)

	fire := f.openIncident(t, models.IncidentFireAlert, "main-stage", models.SeverityCritical, time.Now().UTC())
	threat := f.openIncident(t, models.IncidentSecurityThreat, "main-stage", models.SeverityHigh, time.Now().UTC())

	// Действие
	f.engine.MatchNow(context.Background())

	// Проверки
	got, err := f.incidents.Get(fire.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Assignments)

	got, err = f.incidents.Get(threat.ID)
	require.NoError(t, err)
	require.Len(t, got.Assignments, 1)
	assert.Equal(t, "SEC-01", got.Assignments[0].UnitID)
}

func TestEngine_MatchNow_NoReassignment(t *testing.T) {
	// Подготовка: единственный юнит уже отправлен на средний инцидент
	f := newTestEngine(t, Options{})
	f.addUnit(t, "SEC-01", models.CapabilitySecurity, 55.7513, 37.6180)

	medium := f.openIncident(t, models.IncidentOther, "main-stage", models.SeverityMedium, time.Now().UTC())
	f.engine.MatchNow(context.Background())

	// Действие: позже появляется критический инцидент
	critical := f.openIncident(t, models.IncidentSecurityThreat, "main-stage", models.SeverityCritical, time.Now().UTC())
	f.engine.MatchNow(context.Background())

	// Проверки: юнит в пути не перебрасывается
	got, err := f.incidents.Get(medium.ID)
	require.NoError(t, err)
	require.Len(t, got.Assignments, 1)
	assert.Equal(t, "SEC-01", got.Assignments[0].UnitID)

	got, err = f.incidents.Get(critical.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Assignments)
}

func TestEngine_MatchNow_CrowdSurgeMultiUnit(t *testing.T) {
	// Подготовка: crowd_surge запрашивает несколько юнитов охраны
	f := newTestEngine(t, Options{SurgeUnitCount: 3})
	f.addUnit(t, "SEC-01", models.CapabilitySecurity, 55.7513, 37.6180)
	f.addUnit(t, "SEC-05", models.CapabilitySecurity, 55.7500, 37.6150)

	surge := f.openIncident(t, models.IncidentCrowdSurge, "main-stage", models.SeverityHigh, time.Now().UTC())

	// Действие: доступны только два из трех
	f.engine.MatchNow(context.Background())

	got, err := f.incidents.Get(surge.ID)
	require.NoError(t, err)
	assert.Len(t, got.Assignments, 2)
	assert.Equal(t, models.IncidentAssigned, got.Status)

	// Третий юнит добирается следующим проходом
	f.addUnit(t, "SEC-12", models.CapabilitySecurity, 55.7531, 37.6172)
	f.engine.MatchNow(context.Background())

	// Проверки
	got, err = f.incidents.Get(surge.ID)
	require.NoError(t, err)
	assert.Len(t, got.Assignments, 3)
}

func TestEngine_TransitionIncident_CancelReleasesUnits(t *testing.T) {
	// Подготовка: два юнита отправлены на crowd_surge
	f := newTestEngine(t, Options{SurgeUnitCount: 2})
	f.addUnit(t, "SEC-01", models.CapabilitySecurity, 55.7513, 37.6180)
	f.addUnit(t, "SEC-05", models.CapabilitySecurity, 55.7500, 37.6150)

	surge := f.openIncident(t, models.IncidentCrowdSurge, "main-stage", models.SeverityHigh, time.Now().UTC())
	f.engine.MatchNow(context.Background())

	// Действие
	inc, err := f.engine.TransitionIncident(context.Background(), surge.ID, models.IncidentCancelled)

	// Проверки: оба юнита отозваны в том же согласованном срезе
	require.NoError(t, err)
	assert.Equal(t, models.IncidentCancelled, inc.Status)
	require.NotNil(t, inc.ResolvedAt)

	snap := f.engine.Snapshot()
	for _, u := range snap.Units {
		assert.Equal(t, models.UnitReturning, u.Status, "unit %s", u.ID)
	}
}

func TestEngine_TransitionIncident_Illegal(t *testing.T) {
	// Подготовка
	f := newTestEngine(t, Options{})
	inc := f.openIncident(t, models.IncidentOther, "main-stage", models.SeverityLow, time.Now().UTC())

	// Действие
	_, err := f.engine.TransitionIncident(context.Background(), inc.ID, models.IncidentResolved)

	// Проверки
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	_, err = f.engine.TransitionIncident(context.Background(), uuid.New(), models.IncidentCancelled)
	assert.ErrorIs(t, err, models.ErrUnknownIncident)
}

func TestEngine_SweepStale(t *testing.T) {
	// Подготовка: юнит отправлен, дедлайн ETA давно прошел
	f := newTestEngine(t, Options{StaleETAFactor: 1.5})
	f.addUnit(t, "SEC-01", models.CapabilitySecurity, 55.7513, 37.6180)

	inc := f.openIncident(t, models.IncidentOther, "main-stage", models.SeverityMedium, time.Now().UTC())
	f.engine.MatchNow(context.Background())

	// Действие
	f.engine.SweepStale(context.Background(), time.Now().UTC().Add(time.Hour))

	// Проверки: назначение помечено, юнит не переназначен
	got, err := f.incidents.Get(inc.ID)
	require.NoError(t, err)
	require.Len(t, got.Assignments, 1)
	assert.True(t, got.Assignments[0].Stale)

	unit, err := f.units.Get("SEC-01")
	require.NoError(t, err)
	assert.Equal(t, models.UnitDispatched, unit.Status)

	// Повторный проход флаг не дублирует и не падает
	f.engine.SweepStale(context.Background(), time.Now().UTC().Add(2*time.Hour))
}

func TestEngine_SweepStale_BeforeDeadline(t *testing.T) {
	// Подготовка
	f := newTestEngine(t, Options{StaleETAFactor: 1.5})
	f.addUnit(t, "SEC-01", models.CapabilitySecurity, 55.7513, 37.6180)

	inc := f.openIncident(t, models.IncidentOther, "main-stage", models.SeverityMedium, time.Now().UTC())
	f.engine.MatchNow(context.Background())

	// Действие: дедлайн еще не наступил
	f.engine.SweepStale(context.Background(), time.Now().UTC())

	// Проверки
	got, err := f.incidents.Get(inc.ID)
	require.NoError(t, err)
	require.Len(t, got.Assignments, 1)
	assert.False(t, got.Assignments[0].Stale)
}

func TestEngine_Snapshot_Consistent(t *testing.T) {
	// Подготовка
	f := newTestEngine(t, Options{})
	f.addUnit(t, "SEC-01", models.CapabilitySecurity, 55.7513, 37.6180)
	f.openIncident(t, models.IncidentOther, "main-stage", models.SeverityMedium, time.Now().UTC())
	f.engine.MatchNow(context.Background())

	// Действие
	snap := f.engine.Snapshot()

	// Проверки: каждый dispatched юнит имеет назначение на инциденте среза
	require.Len(t, snap.Zones, 2)
	require.Len(t, snap.Incidents, 1)
	require.Len(t, snap.Units, 1)
	assert.False(t, snap.TakenAt.IsZero())

	for _, u := range snap.Units {
		if u.Status != models.UnitDispatched {
			continue
		}
		require.NotNil(t, u.IncidentID)
		found := false
		for _, inc := range snap.Incidents {
			if inc.ID != *u.IncidentID {
				continue
			}
			for _, a := range inc.Assignments {
				if a.UnitID == u.ID {
					found = true
				}
			}
		}
		assert.True(t, found, "dispatched unit %s has no assignment in snapshot", u.ID)
	}
}

func TestEngine_PublishesDeltas(t *testing.T) {
	// Подготовка: движок с мокированным издателем
	ctrl := gomock.NewController(t)
	publisherMock := webhook_mocks.NewMockPublisher(ctrl)

	f := newTestEngine(t, Options{})
	f.engine.publisher = publisherMock
	f.addUnit(t, "SEC-01", models.CapabilitySecurity, 55.7513, 37.6180)
	f.openIncident(t, models.IncidentOther, "main-stage", models.SeverityMedium, time.Now().UTC())

	// Ожидания: смена статуса инцидента и отправка юнита
	publisherMock.EXPECT().
		Publish(gomock.Any(), deltaOfKind(models.DeltaIncidentStatusChanged)).
		Return(nil).
		Times(1)
	publisherMock.EXPECT().
		Publish(gomock.Any(), deltaOfKind(models.DeltaUnitStatusChanged)).
		Return(nil).
		Times(1)

	// Действие
	f.engine.MatchNow(context.Background())
}

// deltaOfKind сопоставляет дельту по типу изменения.
func deltaOfKind(kind models.DeltaKind) gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		d, ok := x.(models.Delta)
		return ok && d.Kind == kind
	})
}

func TestEngine_StartStop(t *testing.T) {
	// Подготовка
	f := newTestEngine(t, Options{MatchInterval: 10 * time.Millisecond})
	f.addUnit(t, "SEC-01", models.CapabilitySecurity, 55.7513, 37.6180)
	inc := f.openIncident(t, models.IncidentOther, "main-stage", models.SeverityMedium, time.Now().UTC())

	// Действие: фоновый цикл подхватывает инцидент после Kick
	f.engine.Start()
	f.engine.Kick()

	require.Eventually(t, func() bool {
		got, err := f.incidents.Get(inc.ID)
		return err == nil && got.Status == models.IncidentAssigned
	}, 2*time.Second, 10*time.Millisecond)

	// Проверки: остановка идемпотентна
	f.engine.Stop()
	f.engine.Stop()
}
