package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"telecare/config"
	"telecare/models"

	"github.com/hibiken/asynq"
)

const TypeReminderSend = "reminder:send"

// NewReminderTask builds the asynq task for an appointment reminder.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeReminderSend, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}
	return task, opts, nil
}

// ReminderQueue enqueues reminder tasks; it satisfies the scheduling engine's
// ReminderScheduler dependency.
type ReminderQueue struct {
	client *asynq.Client
}

// NewReminderQueue creates an asynq client over the reminder queue Redis DB.
func NewReminderQueue() *ReminderQueue {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	return &ReminderQueue{client: client}
}

// ScheduleReminder enqueues a reminder push to fire at the given time.
func (q *ReminderQueue) ScheduleReminder(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error {
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("building reminder task: %w", err)
	}
	if _, err := q.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("enqueueing reminder task: %w", err)
	}
	return nil
}

// Close releases the underlying asynq client.
func (q *ReminderQueue) Close() error {
	return q.client.Close()
}
