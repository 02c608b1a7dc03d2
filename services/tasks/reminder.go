package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/EternalGerms/trampoaqui-sub001/config"
	"github.com/EternalGerms/trampoaqui-sub001/models"

	"github.com/hibiken/asynq"
)

const TypeReminderSend = "reminder:send"

// NewReminderTask builds an asynq task that fires at the given time.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeReminderSend, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// ReminderScheduler enqueues upcoming-service reminders for a request that
// just became fully confirmed.
type ReminderScheduler interface {
	ScheduleUpcoming(req *models.ServiceRequest) error
}

// AsynqReminderScheduler implements ReminderScheduler on an asynq client.
type AsynqReminderScheduler struct {
	Client *asynq.Client
}

// NewAsynqReminderScheduler builds a scheduler over the configured Redis
// reminder queue.
func NewAsynqReminderScheduler() *AsynqReminderScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	return &AsynqReminderScheduler{Client: client}
}

// ScheduleUpcoming enqueues one reminder per party ahead of the scheduled
// date. Daily requests remind ahead of the first session; requests with no
// date at all schedule nothing.
func (s *AsynqReminderScheduler) ScheduleUpcoming(req *models.ServiceRequest) error {
	var serviceDate *time.Time
	if len(req.DailySessions) > 0 {
		serviceDate = &req.DailySessions[0].ScheduledDate
	} else {
		serviceDate = req.ScheduledDate
	}
	if serviceDate == nil {
		return nil
	}

	lead := time.Duration(config.AppConfig.ReminderLeadHours) * time.Hour
	fireAt := serviceDate.Add(-lead)
	if fireAt.Before(time.Now()) {
		return nil
	}

	for _, recipientID := range []string{req.ClientID, req.ProviderID} {
		payload := models.ReminderPayload{
			RequestID:   req.ID,
			RecipientID: recipientID,
			Title:       "Upcoming service",
			Body:        fmt.Sprintf("%s is scheduled for %s.", req.Title, serviceDate.Format("2006-01-02")),
		}
		task, opts, err := NewReminderTask(payload, fireAt)
		if err != nil {
			return err
		}
		if _, err := s.Client.Enqueue(task, opts...); err != nil {
			return fmt.Errorf("failed to enqueue reminder for %s: %w", recipientID, err)
		}
	}
	return nil
}
