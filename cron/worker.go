package cron

import (
	"context"
	"log"
	"time"

	"bookline/config"
	"bookline/session"
	"bookline/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeSessionSweep = "session:sweep"

// InitSessionSweeper runs the async worker and scheduler that periodically
// evict idle sessions from the in-memory store. Durable session rows are never
// touched by the sweep.
func InitSessionSweeper(store *session.Store) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisWorkerDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSessionSweep, handleSessionSweep(store))

	go func() {
		log.Println("[SessionSweeper] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[SessionSweeper] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[SessionSweeper] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{})
	if _, err := scheduler.Register("@every 5m", asynq.NewTask(TypeSessionSweep, nil)); err != nil {
		log.Fatalf("[SessionSweeper] Failed to register sweep schedule: %v", err)
	}

	go func() {
		if err := scheduler.Run(); err != nil {
			log.Fatalf("[SessionSweeper] Scheduler failed: %v", err)
		}
	}()
}

func handleSessionSweep(store *session.Store) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		evicted := store.SweepExpired(time.Now())
		utils.GetLogger().Debug("Session sweep completed", zap.Int("evicted", evicted))
		return nil
	}
}
