package background

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/kenancosic/eRents-sub000/internal/caching"
	"github.com/kenancosic/eRents-sub000/internal/services"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler manages the recurring occupancy jobs. The contract sweep
// runs in singleton mode: it is idempotent for the store mutation, but
// there is no point stacking overlapping runs.
type JobScheduler struct {
	scheduler gocron.Scheduler
	monitor   services.ContractMonitor
	cacheSvc  caching.CacheService
	jobs      map[string]gocron.Job
	mu        sync.RWMutex
}

func NewJobScheduler(monitor services.ContractMonitor, cacheSvc caching.CacheService) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler: scheduler,
		monitor:   monitor,
		cacheSvc:  cacheSvc,
		jobs:      make(map[string]gocron.Job),
	}
	js.registerJobs()
	return js, nil
}

func (js *JobScheduler) Start() {
	log.Printf("starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Printf("stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	// Contract expiration sweep - daily at 02:00.
	sweepJob, err := js.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(2, 0, 0))),
		gocron.NewTask(js.runContractSweep),
		gocron.WithName("contract-expiration-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("failed to create contract sweep job: %v", err)
	} else {
		js.jobs["contract-sweep"] = sweepJob
	}

	// Expiration summary refresh - hourly, keeps the dashboard warm.
	summaryJob, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.refreshExpirationSummary),
		gocron.WithName("expiration-summary-refresh"),
	)
	if err != nil {
		log.Printf("failed to create summary refresh job: %v", err)
	} else {
		js.jobs["summary-refresh"] = summaryJob
	}

	log.Printf("registered %d background jobs", len(js.jobs))
}

func (js *JobScheduler) runContractSweep() error {
	ctx := context.Background()
	if err := js.monitor.RunContractExpirationCheck(ctx); err != nil {
		// Propagate so the failure is visible to gocron monitoring; the
		// next scheduled run retries the whole pass.
		log.Printf("contract sweep failed: %v", err)
		return err
	}
	return nil
}

func (js *JobScheduler) refreshExpirationSummary() error {
	ctx := context.Background()
	if js.cacheSvc != nil {
		if err := js.cacheSvc.DeleteExpirationSummary(ctx); err != nil {
			log.Printf("summary refresh: cache invalidation failed: %v", err)
		}
	}
	if _, err := js.monitor.GetExpirationSummary(ctx); err != nil {
		log.Printf("summary refresh failed: %v", err)
		return err
	}
	return nil
}

// RunSweepNow triggers the contract sweep outside its schedule, used by the
// admin endpoint.
func (js *JobScheduler) RunSweepNow(ctx context.Context) error {
	return js.monitor.RunContractExpirationCheck(ctx)
}

// JobStatus reports the registered jobs for the health endpoint.
func (js *JobScheduler) JobStatus() map[string]interface{} {
	js.mu.RLock()
	defer js.mu.RUnlock()

	names := make([]string, 0, len(js.jobs))
	for name := range js.jobs {
		names = append(names, name)
	}
	return map[string]interface{}{
		"total_jobs": len(js.jobs),
		"jobs":       names,
	}
}
