package innings

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartRetryScheduler retries queued writes every interval, so deliveries
// scored during a storage outage reach the database once it is back.
func StartRetryScheduler(rec *Recorder, interval time.Duration) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			defer cancel()
			if err := rec.Flush(ctx); err != nil {
				log.Printf("[scheduler] retry flush: %v", err)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, err
	}

	sched.Start()
	log.Printf("[scheduler] retrying queued writes every %s", interval)
	return sched, nil
}
