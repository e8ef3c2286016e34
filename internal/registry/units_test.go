package registry

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shenikar/crowd_safety_system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUnitRegistry(t *testing.T) *UnitRegistry {
	r := NewUnitRegistry()
	units := []models.Unit{
		{ID: "SEC-01", Capability: models.CapabilitySecurity, Latitude: 55.7513, Longitude: 37.6180, Personnel: 2},
		{ID: "SEC-05", Capability: models.CapabilitySecurity, Latitude: 55.7600, Longitude: 37.6300, Personnel: 4},
		{ID: "EMT-01", Capability: models.CapabilityMedical, Latitude: 55.7522, Longitude: 37.6228, Personnel: 3},
	}
	for _, u := range units {
		require.NoError(t, r.Register(u))
	}
	return r
}

func TestUnitRegistry_Register_Defaults(t *testing.T) {
	// Подготовка
	r := newTestUnitRegistry(t)

	// Проверки: юнит без статуса регистрируется как available
	u, err := r.Get("SEC-01")
	require.NoError(t, err)
	assert.Equal(t, models.UnitAvailable, u.Status)
	assert.Nil(t, u.IncidentID)

	// Повторный id - ошибка
	err = r.Register(models.Unit{ID: "SEC-01"})
	assert.ErrorIs(t, err, models.ErrDuplicateID)
}

func TestUnitRegistry_Register_AvailableWithAssignment(t *testing.T) {
	// Подготовка
	r := NewUnitRegistry()
	incidentID := uuid.New()

	// Действие: available с назначением нарушает инвариант
	err := r.Register(models.Unit{
		ID:         "SEC-01",
		Capability: models.CapabilitySecurity,
		Status:     models.UnitAvailable,
		IncidentID: &incidentID,
	})

	// Проверки
	assert.ErrorIs(t, err, models.ErrInvalidState)
}

func TestUnitRegistry_Assign_Release_Cycle(t *testing.T) {
	// Подготовка
	r := newTestUnitRegistry(t)
	incidentID := uuid.New()

	// Действие: назначение диспетчером
	u, err := r.Assign("SEC-01", incidentID)
	require.NoError(t, err)
	assert.Equal(t, models.UnitDispatched, u.Status)
	require.NotNil(t, u.IncidentID)
	assert.Equal(t, incidentID, *u.IncidentID)

	// Занятый юнит назначить нельзя
	_, err = r.Assign("SEC-01", uuid.New())
	assert.ErrorIs(t, err, models.ErrInvalidState)

	// Прибытие и отзыв
	_, err = r.SetStatus("SEC-01", models.UnitOnScene)
	require.NoError(t, err)
	u, err = r.Release("SEC-01")
	require.NoError(t, err)
	assert.Equal(t, models.UnitReturning, u.Status)
	// Обратная ссылка сохраняется до возврата в available
	assert.NotNil(t, u.IncidentID)

	// Возврат в строй снимает ссылку на инцидент
	u, err = r.SetStatus("SEC-01", models.UnitAvailable)
	require.NoError(t, err)
	assert.Equal(t, models.UnitAvailable, u.Status)
	assert.Nil(t, u.IncidentID)
}

func TestUnitRegistry_SetStatus_Guards(t *testing.T) {
	// Подготовка
	r := newTestUnitRegistry(t)

	// dispatched без назначения запрещен
	_, err := r.SetStatus("SEC-01", models.UnitDispatched)
	assert.ErrorIs(t, err, models.ErrInvalidState)

	// Пропуск шага цикла запрещен
	_, err = r.SetStatus("SEC-01", models.UnitOnScene)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	// available при активном назначении минуя returning запрещен
	_, err = r.Assign("SEC-01", uuid.New())
	require.NoError(t, err)
	_, err = r.SetStatus("SEC-01", models.UnitAvailable)
	assert.ErrorIs(t, err, models.ErrInvalidState)

	// Повтор текущего статуса - no-op без ошибки
	u, err := r.SetStatus("SEC-01", models.UnitDispatched)
	require.NoError(t, err)
	assert.Equal(t, models.UnitDispatched, u.Status)
}

func TestUnitRegistry_SetStatus_DispatchedToReturning(t *testing.T) {
	// Подготовка: юнит отозван до прибытия (отмена инцидента)
	r := newTestUnitRegistry(t)
	_, err := r.Assign("SEC-01", uuid.New())
	require.NoError(t, err)

	// Действие
	u, err := r.SetStatus("SEC-01", models.UnitReturning)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.UnitReturning, u.Status)
}

func TestUnitRegistry_MarkOffDuty(t *testing.T) {
	// Подготовка
	r := newTestUnitRegistry(t)

	// Действие
	u, err := r.MarkOffDuty("SEC-05")
	require.NoError(t, err)
	assert.True(t, u.OffDuty)

	// Выведенный из смены юнит не назначается
	_, err = r.Assign("SEC-05", uuid.New())
	assert.ErrorIs(t, err, models.ErrInvalidState)

	// Юнит с назначением вывести из смены нельзя
	_, err = r.Assign("SEC-01", uuid.New())
	require.NoError(t, err)
	_, err = r.MarkOffDuty("SEC-01")
	assert.ErrorIs(t, err, models.ErrInvalidState)
}

func TestUnitRegistry_ListAvailable_ETAOrderAndFilter(t *testing.T) {
	// Подготовка: точка инцидента рядом с SEC-01
	r := newTestUnitRegistry(t)
	lat, lon := 55.7512, 37.6184

	// Действие
	var ids []string
	for u := range r.ListAvailable(models.CapabilitySecurity, lat, lon) {
		ids = append(ids, u.ID)
	}

	// Проверки: только security, ближайший первым
	assert.Equal(t, []string{"SEC-01", "SEC-05"}, ids)

	// Занятый юнит из последовательности исчезает при перезапуске
	seq := r.ListAvailable(models.CapabilitySecurity, lat, lon)
	_, err := r.Assign("SEC-01", uuid.New())
	require.NoError(t, err)

	ids = ids[:0]
	for u := range seq {
		ids = append(ids, u.ID)
	}
	assert.Equal(t, []string{"SEC-05"}, ids)
}

func TestUnitRegistry_ListAvailable_NoCapabilityFilter(t *testing.T) {
	// Подготовка
	r := newTestUnitRegistry(t)

	// Действие: пустой тип означает все доступные юниты
	count := 0
	for range r.ListAvailable("", 55.7512, 37.6184) {
		count++
	}

	// Проверки
	assert.Equal(t, 3, count)
}

func TestUnitRegistry_All_SortedCopies(t *testing.T) {
	// Подготовка
	r := newTestUnitRegistry(t)

	// Действие
	units := r.All()

	// Проверки: отсортировано по id, мутация копии реестр не трогает
	require.Len(t, units, 3)
	assert.Equal(t, "EMT-01", units[0].ID)
	assert.Equal(t, "SEC-01", units[1].ID)
	assert.Equal(t, "SEC-05", units[2].ID)

	units[1].Status = models.UnitOnScene
	got, err := r.Get("SEC-01")
	require.NoError(t, err)
	assert.Equal(t, models.UnitAvailable, got.Status)
}
