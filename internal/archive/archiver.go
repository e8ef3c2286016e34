package archive

import (
	"context"
	"time"

	"github.com/shenikar/crowd_safety_system/internal/models"
	"github.com/sirupsen/logrus"
)

const writeTimeout = 5 * time.Second

// Archiver принимает завершенные инциденты из реестра и пишет их в
// хранилище в фоне. Очередь ограничена: при переполнении инцидент
// отбрасывается с ошибкой в логе, движок никогда не блокируется на
// архивации.
type Archiver struct {
	store  Store
	logger *logrus.Logger
	queue  chan models.Incident
	done   chan struct{}
}

// NewArchiver создает архиватор с очередью емкостью queueSize.
func NewArchiver(store Store, logger *logrus.Logger, queueSize int) *Archiver {
	if queueSize <= 0 {
		queueSize = 256
	}
	return &Archiver{
		store:  store,
		logger: logger,
		queue:  make(chan models.Incident, queueSize),
		done:   make(chan struct{}),
	}
}

// Start запускает фоновую горутину записи.
func (a *Archiver) Start(ctx context.Context) {
	a.logger.Info("Starting incident archiver...")
	go func() {
		defer close(a.done)
		for {
			select {
			case <-ctx.Done():
				a.drain()
				a.logger.Info("Stopping incident archiver.")
				return
			case inc := <-a.queue:
				a.write(inc)
			}
		}
	}()
}

// Wait блокируется до завершения фоновой горутины.
func (a *Archiver) Wait() {
	<-a.done
}

// Enqueue ставит инцидент в очередь архивации. Неблокирующий вызов:
// используется как callback вытеснения из окна удержания реестра.
func (a *Archiver) Enqueue(inc models.Incident) {
	select {
	case a.queue <- inc:
	default:
		a.logger.WithField("incident_id", inc.ID).Error("Archive queue full, incident dropped")
	}
}

// drain дописывает то, что осталось в очереди на момент остановки.
func (a *Archiver) drain() {
	for {
		select {
		case inc := <-a.queue:
			a.write(inc)
		default:
			return
		}
	}
}

func (a *Archiver) write(inc models.Incident) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := a.store.InsertIncident(ctx, inc); err != nil {
		a.logger.WithError(err).WithField("incident_id", inc.ID).Error("Failed to archive incident")
		return
	}
	a.logger.WithField("incident_id", inc.ID).Debug("Incident archived")
}
