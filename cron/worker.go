package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"telecare/config"
	appointmentRepo "telecare/database/repository/appointment"
	"telecare/models"
	"telecare/services/notification"
	"telecare/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// sweepInterval controls how often elapsed confirmed appointments are
// moved to completed.
const sweepInterval = 5 * time.Minute

// sweepGrace is how long past its start time an appointment must be
// before the sweep touches it.
const sweepGrace = time.Hour

// InitReminderWorker runs the async reminder worker in background.
func InitReminderWorker(notifSvc notification.NotificationService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeReminderSend, handleReminderTask(notifSvc))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] 🔴 Invalid payload: %v", err)
			return err
		}

		log.Printf("[ReminderHandler] ⏰ Triggering reminder for %s %s: %s", p.Target, p.UserID, p.Title)

		data := map[string]string{
			"appointmentId": p.AppointmentID,
			"fireDate":      p.FireDate,
			"title":         p.Title,
			"body":          p.Body,
		}

		if err := notifSvc.SendPush(ctx, p.UserID, p.Title, p.Body, data); err != nil {
			log.Printf("[ReminderHandler] ❌ Failed to send notification: %v", err)
			return err
		}
		return nil
	}
}

// InitCompletionSweep periodically completes confirmed appointments whose
// start time has long passed, so the ledger does not accumulate stale
// active records that keep blocking slots.
func InitCompletionSweep(repo appointmentRepo.AppointmentRepository) {
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()

		for range ticker.C {
			sweepElapsed(repo)
		}
	}()
}

func sweepElapsed(repo appointmentRepo.AppointmentRepository) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-sweepGrace)
	appts, err := repo.ListElapsedConfirmed(ctx, cutoff)
	if err != nil {
		log.Printf("[CompletionSweep] ⚠️ Failed to list elapsed appointments: %v", err)
		return
	}

	for _, appt := range appts {
		err := repo.UpdateStatus(ctx, appt.ID, models.StatusConfirmed, models.StatusCompleted, time.Now().UTC())
		if err != nil && err != appointmentRepo.ErrStaleStatus {
			log.Printf("[CompletionSweep] ⚠️ Failed to complete appointment %s: %v", appt.ID, err)
		}
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[ReminderWorker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
