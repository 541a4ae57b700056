package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"smartpark/config"
	bookingRepo "smartpark/database/repository/booking"
	"smartpark/models"
	"smartpark/services/notification"
	"smartpark/services/tasks"
	"smartpark/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitReminderWorker runs the async reminder worker in background.
func InitReminderWorker(notifSvc notification.NotificationService, bookings bookingRepo.BookingRepository) {
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
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(notifSvc, bookings))

	go monitorRedisConnection()

	go func() {
		logger := utils.GetLogger()
		logger.Info("starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("reminder worker failed to start",
					zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))

				if attempts == maxAttempts {
					logger.Fatal("reminder worker exhausted retry attempts")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// handleReminderTask sends the upcoming-booking reminder. Bookings cancelled
// between scheduling and fire time are skipped silently.
func handleReminderTask(notifSvc notification.NotificationService, bookings bookingRepo.BookingRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid reminder payload", zap.Error(err))
			return err
		}

		booking, err := bookings.FindByID(ctx, p.BookingID)
		if err != nil {
			return fmt.Errorf("failed to load booking %s for reminder: %w", p.BookingID, err)
		}
		if booking == nil || booking.Status != models.BookingStatusConfirmed {
			logger.Info("skipping reminder, booking no longer confirmed",
				zap.String("bookingID", p.BookingID))
			return nil
		}

		message := fmt.Sprintf("Your parking at %s starts at %s.", p.SpotName, p.StartTime)
		if err := notifSvc.Notify(ctx, p.UserID, "Upcoming booking", message, "info"); err != nil {
			logger.Error("failed to deliver booking reminder",
				zap.String("bookingID", p.BookingID), zap.Error(err))
			return err
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
			utils.GetLogger().Warn("reminder queue redis connection lost", zap.Error(err))
		}
		time.Sleep(10 * time.Second)
	}
}
