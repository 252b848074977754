package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"mediflow/config"
	appointmentRepo "mediflow/database/repository/appointment"
	"mediflow/models"
	"mediflow/services/notification"
	"mediflow/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitReminderWorker runs the async reminder worker in background.
func InitReminderWorker(notifier *notification.AppointmentNotifier, repo appointmentRepo.AppointmentRepository) {
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
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(notifier, repo))

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
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(notifier *notification.AppointmentNotifier, repo appointmentRepo.AppointmentRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] 🔴 Invalid payload: %v", err)
			return err
		}

		// The appointment may have been cancelled or moved since the
		// reminder was enqueued.
		appt, err := repo.GetByBookingID(ctx, p.BookingID)
		if err != nil {
			log.Printf("[ReminderHandler] ⚠️ Booking %s no longer exists, dropping reminder", p.BookingID)
			return nil
		}
		if appt.Status != models.StatusConfirmed || !appt.StartTime.Equal(p.StartTime) {
			log.Printf("[ReminderHandler] ⚠️ Booking %s changed since enqueue, dropping reminder", p.BookingID)
			return nil
		}
		if appt.ReminderSent {
			return nil
		}

		log.Printf("[ReminderHandler] ⏰ Sending reminder for %s to %s", p.BookingID, p.PatientEmail)
		if err := notifier.SendReminder(ctx, p); err != nil {
			log.Printf("[ReminderHandler] ❌ Failed to send reminder: %v", err)
			return err
		}

		if err := repo.MarkReminderSent(ctx, p.BookingID); err != nil {
			log.Printf("[ReminderHandler] ⚠️ Failed to mark reminder sent for %s: %v", p.BookingID, err)
		}
		return nil
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
