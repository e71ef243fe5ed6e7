package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"pescalia/config"
	guideRepo "pescalia/database/repository/guide"
	"pescalia/models"
	"pescalia/services/notification"

	"github.com/hibiken/asynq"
)

const TypeTripReminder = "trip:reminder"

const tripDateLayout = "2006-01-02 15:04"

// TripReminderPayload is the task body for a scheduled trip reminder.
type TripReminderPayload struct {
	BookingID string `json:"bookingId"`
	GuideID   string `json:"guideId"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	People    int    `json:"people"`
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// AsynqReminderScheduler enqueues trip reminders for confirmed bookings,
// scheduled 24 hours before departure (or immediately for short-notice
// bookings).
type AsynqReminderScheduler struct {
	client *asynq.Client
}

// NewReminderScheduler creates the scheduler on the reminder queue.
func NewReminderScheduler() *AsynqReminderScheduler {
	return &AsynqReminderScheduler{client: asynq.NewClient(redisOpts())}
}

func (s *AsynqReminderScheduler) ScheduleTripReminder(booking *models.Booking) error {
	payload, err := json.Marshal(TripReminderPayload{
		BookingID: booking.ID,
		GuideID:   booking.GuideID,
		Date:      booking.Date,
		Time:      booking.Time,
		People:    booking.People,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal reminder payload: %w", err)
	}

	departure, err := time.ParseInLocation(tripDateLayout, booking.Date+" "+booking.Time, time.Local)
	if err != nil {
		return fmt.Errorf("failed to parse trip departure: %w", err)
	}
	fireAt := departure.Add(-24 * time.Hour)
	if fireAt.Before(time.Now()) {
		fireAt = time.Now()
	}

	task := asynq.NewTask(TypeTripReminder, payload)
	if _, err := s.client.Enqueue(task, asynq.ProcessAt(fireAt)); err != nil {
		return fmt.Errorf("failed to enqueue trip reminder: %w", err)
	}
	return nil
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(guides guideRepo.GuideRepository, notifSvc notification.NotificationService) {
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
	mux.HandleFunc(TypeTripReminder, handleTripReminder(guides, notifSvc))

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleTripReminder(guides guideRepo.GuideRepository, notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p TripReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderWorker] invalid payload: %v", err)
			return err
		}

		guide, err := guides.GetByID(p.GuideID)
		if err != nil {
			log.Printf("[ReminderWorker] failed to load guide %s: %v", p.GuideID, err)
			return err
		}

		body := fmt.Sprintf("Trip tomorrow: %s at %s, %d people", p.Date, p.Time, p.People)
		return notifSvc.NotifyGuide(ctx, guide, "Upcoming trip", body, map[string]string{
			"bookingId": p.BookingID,
		})
	}
}
