package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"calendary/config"
	ledgerRepo "calendary/database/repository/ledger"
	"calendary/models"
	"calendary/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeReminderSend = "reminder:send"

// ReminderPayload is the task body for a scheduled booking reminder.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// AsynqReminderScheduler enqueues reminder tasks to fire at
// start - leadMinutes. It implements booking.ReminderScheduler.
type AsynqReminderScheduler struct {
	client *asynq.Client
}

// NewAsynqReminderScheduler creates a scheduler backed by the reminder queue.
func NewAsynqReminderScheduler() *AsynqReminderScheduler {
	return &AsynqReminderScheduler{client: asynq.NewClient(redisOpts())}
}

// ScheduleReminder enqueues a reminder for the booking. A lead time that has
// already passed fires the reminder immediately.
func (s *AsynqReminderScheduler) ScheduleReminder(booking *models.Booking, leadMinutes int) error {
	payload, err := json.Marshal(ReminderPayload{BookingID: booking.ID})
	if err != nil {
		return fmt.Errorf("failed to marshal reminder payload: %w", err)
	}

	fireAt := booking.Start.Add(-time.Duration(leadMinutes) * time.Minute)
	if fireAt.Before(time.Now()) {
		fireAt = time.Now()
	}

	task := asynq.NewTask(TypeReminderSend, payload)
	if _, err := s.client.Enqueue(task, asynq.ProcessAt(fireAt), asynq.TaskID(booking.ID)); err != nil {
		return fmt.Errorf("failed to enqueue reminder for booking %s: %w", booking.ID, err)
	}
	return nil
}

// InitReminderWorker runs the async worker in background. The handler
// re-reads the ledger so reminders for bookings cancelled in the meantime
// are dropped silently.
func InitReminderWorker(ledger ledgerRepo.LedgerRepository) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReminderSend, handleReminderTask(ledger))

	go func() {
		logger := utils.GetLogger()
		logger.Info("starting reminder worker")
		if err := srv.Run(mux); err != nil {
			logger.Error("reminder worker stopped", zap.Error(err))
		}
	}()
}

func handleReminderTask(ledger ledgerRepo.LedgerRepository) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		logger := utils.GetLogger()

		var payload ReminderPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("malformed reminder payload: %w", err)
		}

		booking, err := ledger.GetByID(payload.BookingID)
		if err != nil {
			if err == ledgerRepo.ErrNotFound {
				return nil
			}
			return err
		}
		if booking.Status != models.StatusConfirmed || booking.End().Before(time.Now()) {
			return nil
		}

		remaining := time.Until(booking.Start).Round(time.Minute)
		logger.Info("booking reminder due",
			zap.String("bookingID", booking.ID),
			zap.String("hostID", booking.HostID),
			zap.String("guestEmail", booking.GuestEmail),
			zap.String("meetingLink", booking.MeetingLink),
			zap.Duration("timeRemaining", remaining),
		)
		return nil
	}
}
