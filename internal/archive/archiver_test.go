package archive

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/crowd_safety_system/internal/archive/mocks"
	"github.com/shenikar/crowd_safety_system/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestArchiver(t *testing.T, queueSize int) (*Archiver, *mocks.MockStore) {
	ctrl := gomock.NewController(t)
	storeMock := mocks.NewMockStore(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	return NewArchiver(storeMock, logger, queueSize), storeMock
}

func TestArchiver_WritesEnqueued(t *testing.T) {
	// Подготовка
	archiver, storeMock := newTestArchiver(t, 16)
	inc := models.Incident{ID: uuid.New(), Status: models.IncidentResolved}

	written := make(chan uuid.UUID, 1)

	// Ожидания
	storeMock.EXPECT().
		InsertIncident(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, got models.Incident) error {
			written <- got.ID
			return nil
		}).
		Times(1)

	ctx, cancel := context.WithCancel(context.Background())
	archiver.Start(ctx)

	// Действие
	archiver.Enqueue(inc)

	// Проверки
	select {
	case id := <-written:
		assert.Equal(t, inc.ID, id)
	case <-time.After(2 * time.Second):
		t.Fatal("incident was not written")
	}

	cancel()
	archiver.Wait()
}

func TestArchiver_DrainsQueueOnStop(t *testing.T) {
	// Подготовка: инциденты встают в очередь до запуска горутины
	archiver, storeMock := newTestArchiver(t, 16)

	var mu sync.Mutex
	var written []uuid.UUID

	// Ожидания
	storeMock.EXPECT().
		InsertIncident(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, got models.Incident) error {
			mu.Lock()
			written = append(written, got.ID)
			mu.Unlock()
			return nil
		}).
		Times(3)

	first := models.Incident{ID: uuid.New()}
	second := models.Incident{ID: uuid.New()}
	third := models.Incident{ID: uuid.New()}
	archiver.Enqueue(first)
	archiver.Enqueue(second)
	archiver.Enqueue(third)

	// Действие: немедленная остановка после запуска
	ctx, cancel := context.WithCancel(context.Background())
	archiver.Start(ctx)
	cancel()
	archiver.Wait()

	// Проверки: очередь дописана перед выходом
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, written, 3)
}

func TestArchiver_DropsWhenQueueFull(t *testing.T) {
	// Подготовка: очередь емкостью 1 и незапущенный архиватор
	archiver, storeMock := newTestArchiver(t, 1)
	storeMock.EXPECT().InsertIncident(gomock.Any(), gomock.Any()).Times(0)

	// Действие: второй инцидент не помещается и отбрасывается
	archiver.Enqueue(models.Incident{ID: uuid.New()})
	archiver.Enqueue(models.Incident{ID: uuid.New()})

	// Проверки: Enqueue не заблокировался, тест дошел до конца
	assert.Len(t, archiver.queue, 1)
}
