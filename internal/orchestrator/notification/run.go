package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vendorhub/internal/metrics"
	"vendorhub/internal/notify"
	"vendorhub/internal/pgmq"
	"vendorhub/internal/reminder"

	"github.com/rs/zerolog"
)

// Queue is the part of the pgmq client the worker uses.
type Queue interface {
	ReadWithPoll(ctx context.Context, queue string, visibilitySec, maxMessages, pollSec int) ([]*pgmq.Message, error)
	Send(ctx context.Context, queue string, payload []byte) error
	Delete(ctx context.Context, queue string, msgIDs []int64) error
}

// Settings configures polling and retries.
type Settings struct {
	Queue           string
	DeadLetterQueue string
	PollTimeoutSec  int
	PollMaxMsg      int
	VisibilitySec   int
	MaxRetries      int
	BackoffInitial  time.Duration
	BackoffMax      time.Duration
}

type deadLetter struct {
	Payload  json.RawMessage `json:"payload"`
	Error    string          `json:"error"`
	Attempts int             `json:"attempts"`
	FailedAt time.Time       `json:"failed_at"`
}

// Worker drains the reminder queue and emails each job.
type Worker struct {
	queue    Queue
	sender   notify.Sender
	settings Settings
	logger   zerolog.Logger
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewWorker creates a Worker.
func NewWorker(queue Queue, sender notify.Sender, settings Settings, logger zerolog.Logger) *Worker {
	if settings.MaxRetries <= 0 {
		settings.MaxRetries = 1
	}
	return &Worker{
		queue:    queue,
		sender:   sender,
		settings: settings,
		logger:   logger,
		sleep:    sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Run starts the notification worker.
func Run(ctx context.Context, logger zerolog.Logger, queue Queue, sender notify.Sender, settings Settings) error {
	return NewWorker(queue, sender, settings, logger).Run(ctx)
}

// Run polls until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	s := w.settings
	w.logger.Info().Str("queue", s.Queue).Str("dlq", s.DeadLetterQueue).Msg("Starting notification worker")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("Shutting down notification worker")
			return nil
		default:
		}

		msgs, err := w.queue.ReadWithPoll(ctx, s.Queue, s.VisibilitySec, s.PollMaxMsg, s.PollTimeoutSec)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			w.logger.Error().Err(err).Msg("Error reading reminder queue")
			_ = w.sleep(ctx, time.Second)
			continue
		}
		for _, msg := range msgs {
			w.Process(ctx, msg)
		}
	}
}

// Process delivers one message, retrying with exponential backoff, and
// dead-letters it once retries are exhausted.
func (w *Worker) Process(ctx context.Context, msg *pgmq.Message) {
	s := w.settings
	log := w.logger.With().Int64("msg_id", msg.ID).Int("read_ct", msg.ReadCt).Logger()

	if msg.ReadCt > s.MaxRetries {
		w.deadLetter(ctx, log, msg, errors.New("redelivered too many times"), 0)
		return
	}

	var job reminder.Job
	if err := json.Unmarshal(msg.Data, &job); err != nil {
		w.deadLetter(ctx, log, msg, fmt.Errorf("decode job: %w", err), 0)
		return
	}
	email, err := notify.ReminderMessage(job)
	if err != nil {
		w.deadLetter(ctx, log, msg, err, 0)
		return
	}

	backoff := s.BackoffInitial
	var sendErr error
	for attempt := 1; attempt <= s.MaxRetries; attempt++ {
		start := time.Now()
		sendErr = w.sender.Send(ctx, email)
		if sendErr == nil {
			log.Info().
				Str("subscription_id", job.SubscriptionID).
				Str("duration", time.Since(start).String()).
				Msg("Reminder sent")
			break
		}
		log.Error().Err(sendErr).Int("attempt", attempt).Msg("Reminder delivery failed")
		if attempt == s.MaxRetries {
			break
		}
		if err := w.sleep(ctx, backoff); err != nil {
			// Shutting down: leave the message to reappear after its visibility timeout.
			return
		}
		backoff *= 2
		if s.BackoffMax > 0 && backoff > s.BackoffMax {
			backoff = s.BackoffMax
		}
	}

	if sendErr != nil {
		w.deadLetter(ctx, log, msg, sendErr, s.MaxRetries)
		return
	}
	metrics.NotificationsSent.Inc()
	if err := w.queue.Delete(ctx, s.Queue, []int64{msg.ID}); err != nil {
		log.Error().Err(err).Msg("Error deleting reminder message")
	}
}

func (w *Worker) deadLetter(ctx context.Context, log zerolog.Logger, msg *pgmq.Message, cause error, attempts int) {
	s := w.settings
	metrics.NotificationsFailed.Inc()

	payload := json.RawMessage(msg.Data)
	if !json.Valid(payload) {
		payload, _ = json.Marshal(string(msg.Data))
	}
	body, err := json.Marshal(deadLetter{Payload: payload, Error: cause.Error(), Attempts: attempts, FailedAt: time.Now().UTC()})
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal dead letter")
	} else if err := w.queue.Send(ctx, s.DeadLetterQueue, body); err != nil {
		// Keep the message so it can be retried once the dead-letter queue is reachable.
		log.Error().Err(err).Str("dlq", s.DeadLetterQueue).Msg("Failed to send message to dead-letter queue")
		return
	}
	if err := w.queue.Delete(ctx, s.Queue, []int64{msg.ID}); err != nil {
		log.Error().Err(err).Msg("Error deleting reminder message after failure")
	}
	log.Warn().Err(cause).Int("attempts", attempts).Msg("Moved reminder to dead-letter queue")
}
