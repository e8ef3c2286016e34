package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/crowd_safety_system/internal/config"
	"github.com/shenikar/crowd_safety_system/internal/models"
	"github.com/sirupsen/logrus"
)

// DeliveryWorker снимает дельты из очереди Redis и доставляет их
// настроенному потребителю. Повторы доставки живут здесь, вне движка:
// сам движок никогда не ретраит.
type DeliveryWorker struct {
	redisClient *redis.Client
	logger      *logrus.Logger
	cfg         *config.Config
	httpClient  *http.Client
}

// NewDeliveryWorker создает новый DeliveryWorker.
func NewDeliveryWorker(redisClient *redis.Client, logger *logrus.Logger, cfg *config.Config) *DeliveryWorker {
	return &DeliveryWorker{
		redisClient: redisClient,
		logger:      logger,
		cfg:         cfg,
		httpClient: &http.Client{
			Timeout: cfg.WebhookTimeout,
		},
	}
}

// Start запускает горутину обработки очереди дельт.
func (w *DeliveryWorker) Start(ctx context.Context) {
	w.logger.Info("Starting delta delivery worker...")
	go func() {
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping delta delivery worker.")
				return
			default:
				// BRPop - блокирующее извлечение из правой части очереди,
				// 0 означает бесконечное ожидание
				result, err := w.redisClient.BRPop(ctx, 0, deltaQueueKey).Result()
				if err != nil {
					if errors.Is(err, context.Canceled) {
						continue
					}
					w.logger.WithError(err).Error("Failed to pop delta from Redis")
					time.Sleep(w.cfg.WebhookTimeout)
					continue
				}

				// result[0] - ключ, result[1] - значение
				payload := result[1]
				var delta models.Delta
				if err := json.Unmarshal([]byte(payload), &delta); err != nil {
					w.logger.WithError(err).Error("Failed to unmarshal delta from Redis")
					continue
				}

				w.deliver(ctx, delta, payload)
			}
		}
	}()
}

func (w *DeliveryWorker) deliver(ctx context.Context, delta models.Delta, rawPayload string) {
	log := w.logger.WithField("delta_kind", delta.Kind).WithField("zone_id", delta.ZoneID)
	log.Debug("Delivering delta...")

	if w.cfg.WebhookURL == "" {
		log.Warn("Webhook URL is not configured. Skipping delta delivery.")
		return
	}

	maxRetries := w.cfg.WebhookMaxRetries
	baseDelay := w.cfg.WebhookBaseDelay

	for i := 0; i < maxRetries; i++ {
		req, err := http.NewRequestWithContext(ctx, "POST", w.cfg.WebhookURL, bytes.NewBufferString(rawPayload))
		if err != nil {
			log.WithError(err).Errorf("Failed to create webhook request. Retries left: %d", maxRetries-1-i)
			continue
		}

		req.Header.Set("Content-Type", "application/json")

		// HMAC подпись, если WEBHOOK_SECRET задан
		if w.cfg.WebhookSecret != "" {
			signature := generateHMACSHA256(rawPayload, w.cfg.WebhookSecret)
			req.Header.Set("X-Webhook-Signature", signature)
		}

		resp, err := w.httpClient.Do(req)
		if err != nil {
			log.WithError(err).Warnf("Failed to deliver delta. Retrying in %v. Retries left: %d", baseDelay, maxRetries-1-i)
			time.Sleep(baseDelay)
			baseDelay *= 2 // Экспоненциальная задержка
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			log.Info("Delta delivered successfully.")
			return
		}
		log.Warnf("Delta delivery failed with status code %d. Retrying in %v. Retries left: %d", resp.StatusCode, baseDelay, maxRetries-1-i)
		time.Sleep(baseDelay)
		baseDelay *= 2
	}

	log.Errorf("Failed to deliver delta after %d retries.", maxRetries)
}

// generateHMACSHA256 генерирует HMAC-SHA256 подпись для данных
func generateHMACSHA256(data, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
