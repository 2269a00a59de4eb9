package jobs

import (
	"lendly/internal/config"
	"lendly/internal/events"
	"lendly/internal/logger"
	"lendly/internal/repository/postgres"
	"lendly/internal/service"
)

// JobRunner coordinates the scheduled maintenance jobs.
type JobRunner struct {
	store     *postgres.Store
	emailSvc  service.EmailService
	publisher events.Publisher
	config    *config.Config
}

func NewJobRunner(store *postgres.Store, emailSvc service.EmailService, publisher events.Publisher, cfg *config.Config) *JobRunner {
	return &JobRunner{
		store:     store,
		emailSvc:  emailSvc,
		publisher: publisher,
		config:    cfg,
	}
}

// Config exposes the loaded configuration to the scheduler.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery so a bad run
// never takes the scheduler down.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs every nightly job once, for manual execution.
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.MarkOverdueRentals()
	jr.ExpireLapsedRequests()
}
