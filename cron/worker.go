package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"slotwise/config"
	"slotwise/models"
	"slotwise/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeReminderSend = "reminder:send"

// reminderLead is how long before the event start the reminder fires.
const reminderLead = 30 * time.Minute

// ReminderPayload is the task body for a due-appointment reminder.
type ReminderPayload struct {
	EventID   string `json:"eventId"`
	Title     string `json:"title"`
	StartTime string `json:"startTime"`
}

// ReminderScheduler enqueues reminder tasks for booked appointments. A nil
// scheduler (redis not configured) is valid and drops reminders silently.
type ReminderScheduler struct {
	client *asynq.Client
}

// NewReminderScheduler builds a scheduler on the reminder queue, or nil when
// redis is not configured.
func NewReminderScheduler() *ReminderScheduler {
	if config.AppConfig.RedisAddr == "" {
		return nil
	}
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	return &ReminderScheduler{client: client}
}

// ScheduleForEvent enqueues a reminder shortly before the event starts.
// Past or unparsable start times are skipped.
func (s *ReminderScheduler) ScheduleForEvent(event *models.CalendarEvent) {
	if s == nil || event == nil {
		return
	}
	logger := utils.GetLogger()

	start, err := time.ParseInLocation("2006-01-02T15:04:05", event.StartTime, time.Local)
	if err != nil {
		if start, err = time.Parse(time.RFC3339, event.StartTime); err != nil {
			logger.Debug("reminder skipped, unparsable start time",
				zap.String("eventID", event.ID), zap.String("startTime", event.StartTime))
			return
		}
	}

	fireAt := start.Add(-reminderLead)
	if !fireAt.After(time.Now()) {
		return
	}

	payload, err := json.Marshal(ReminderPayload{
		EventID:   event.ID,
		Title:     event.Title,
		StartTime: event.StartTime,
	})
	if err != nil {
		logger.Warn("reminder payload marshal failed", zap.Error(err))
		return
	}

	task := asynq.NewTask(TypeReminderSend, payload)
	if _, err := s.client.Enqueue(task, asynq.ProcessAt(fireAt)); err != nil {
		logger.Warn("failed to enqueue reminder",
			zap.String("eventID", event.ID), zap.Error(err))
		return
	}
	logger.Info("reminder scheduled",
		zap.String("eventID", event.ID), zap.Time("fireAt", fireAt))
}

// InitReminderWorker runs the async reminder worker in the background. It is
// a no-op when redis is not configured.
func InitReminderWorker() {
	if config.AppConfig.RedisAddr == "" {
		return
	}
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisReminderQueueDB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReminderSend, handleReminderTask)

	go func() {
		const maxAttempts = 5
		logger.Info("starting reminder worker")

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("reminder worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Warn("reminder worker giving up; reminders disabled")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
}

func handleReminderTask(ctx context.Context, task *asynq.Task) error {
	var p ReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return fmt.Errorf("invalid reminder payload: %w", err)
	}

	utils.GetLogger().Info("appointment reminder due",
		zap.String("eventID", p.EventID),
		zap.String("title", p.Title),
		zap.String("startTime", p.StartTime))
	return nil
}
