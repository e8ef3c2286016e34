package registry

import (
	"testing"
	"time"

	"github.com/shenikar/crowd_safety_system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestZoneRegistry(t *testing.T) *ZoneRegistry {
	r := NewZoneRegistry(5, 10)
	require.NoError(t, r.Register(models.Zone{
		ID:       "main-stage",
		Name:     "Main Stage",
		Latitude: 55.7512, Longitude: 37.6184,
		Capacity: 15000,
	}))
	require.NoError(t, r.Register(models.Zone{
		ID:       "food-court",
		Name:     "Food Court",
		Latitude: 55.7524, Longitude: 37.6230,
		Capacity: 9000,
	}))
	return r
}

func TestZoneRegistry_Register_Duplicate(t *testing.T) {
	// Подготовка
	r := newTestZoneRegistry(t)

	// Действие
	err := r.Register(models.Zone{ID: "main-stage"})

	// Проверки
	assert.ErrorIs(t, err, models.ErrDuplicateID)
}

func TestZoneRegistry_UpdateDensity_UnknownZone(t *testing.T) {
	// Подготовка
	r := newTestZoneRegistry(t)

	// Действие
	_, _, err := r.UpdateDensity("ghost", 50, time.Now())

	// Проверки
	assert.ErrorIs(t, err, models.ErrUnknownZone)
}

func TestZoneRegistry_UpdateDensity_OutOfRange(t *testing.T) {
	// Подготовка
	r := newTestZoneRegistry(t)

	// Действие и проверки: значение вне [0,100] отклоняется без мутации
	_, _, err := r.UpdateDensity("main-stage", -1, time.Now())
	assert.ErrorIs(t, err, models.ErrOutOfRange)

	_, _, err = r.UpdateDensity("main-stage", 100.01, time.Now())
	assert.ErrorIs(t, err, models.ErrOutOfRange)

	zone, err := r.Get("main-stage")
	require.NoError(t, err)
	assert.Zero(t, zone.Density)
	assert.Empty(t, zone.History)
}

func TestZoneRegistry_UpdateDensity_RiskChange(t *testing.T) {
	// Подготовка
	r := newTestZoneRegistry(t)
	ts := time.Now().UTC()

	// Действие: плотность пересекает границу medium
	zone, changed, err := r.UpdateDensity("main-stage", 55, ts)

	// Проверки
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, models.RiskMedium, zone.Risk)
	assert.Equal(t, ts, zone.UpdatedAt)

	// Повторный замер в той же полосе смену уровня не дает
	zone, changed, err = r.UpdateDensity("main-stage", 60, ts)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, models.RiskMedium, zone.Risk)
}

func TestZoneRegistry_UpdateDensity_WindowTrim(t *testing.T) {
	// Подготовка
	r := newTestZoneRegistry(t)
	ts := time.Now().UTC()

	// Действие: замеров больше, чем окно (5)
	for _, d := range []float64{10, 20, 30, 40, 50, 60, 70} {
		_, _, err := r.UpdateDensity("main-stage", d, ts)
		require.NoError(t, err)
	}

	// Проверки: в окне остаются последние 5 замеров
	zone, err := r.Get("main-stage")
	require.NoError(t, err)
	assert.Equal(t, []float64{30, 40, 50, 60, 70}, zone.History)
}

func TestZoneRegistry_SetIncidentLoad_PromotesRisk(t *testing.T) {
	// Подготовка
	r := newTestZoneRegistry(t)
	_, _, err := r.UpdateDensity("main-stage", 60, time.Now().UTC())
	require.NoError(t, err)

	// Действие: два открытых инцидента повышают medium до high
	zone, changed, err := r.SetIncidentLoad("main-stage", 2, false)

	// Проверки
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, models.RiskHigh, zone.Risk)
	assert.Equal(t, 2, zone.OpenIncidents)

	// Снятие нагрузки возвращает базовый уровень
	zone, changed, err = r.SetIncidentLoad("main-stage", 0, false)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, models.RiskMedium, zone.Risk)
}

func TestZoneRegistry_SetIncidentLoad_CriticalFloor(t *testing.T) {
	// Подготовка
	r := newTestZoneRegistry(t)
	_, _, err := r.UpdateDensity("food-court", 20, time.Now().UTC())
	require.NoError(t, err)

	// Действие: один критический инцидент в тихой зоне
	zone, changed, err := r.SetIncidentLoad("food-court", 1, true)

	// Проверки: уровень поднят минимум до high
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, models.RiskHigh, zone.Risk)
}

func TestZoneRegistry_All_SortedCopies(t *testing.T) {
	// Подготовка
	r := newTestZoneRegistry(t)

	// Действие
	zones := r.All()

	// Проверки: отсортировано по id, мутация копии реестр не трогает
	require.Len(t, zones, 2)
	assert.Equal(t, "food-court", zones[0].ID)
	assert.Equal(t, "main-stage", zones[1].ID)

	zones[0].Density = 99
	got, err := r.Get("food-court")
	require.NoError(t, err)
	assert.Zero(t, got.Density)
}
