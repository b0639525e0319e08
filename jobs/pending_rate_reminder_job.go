// File: /jobs/pending_rate_reminder_job.go
package jobs

import (
	"fmt"
	"gorm.io/gorm"
	"notedefrais-api/repositories"
	"notedefrais-api/services"
	"time"
)

// PendingRateReminderJob periodically reminds managers about rates awaiting a decision
type PendingRateReminderJob struct {
	db           *gorm.DB
	rateRepo     *repositories.RateRepository
	emailService *services.EmailService
	ticker       *time.Ticker
	done         chan bool
}

// NewPendingRateReminderJob creates a new pending rate reminder job
func NewPendingRateReminderJob(db *gorm.DB, emailService *services.EmailService, interval time.Duration) *PendingRateReminderJob {
	return &PendingRateReminderJob{
		db:           db,
		rateRepo:     repositories.NewRateRepository(db),
		emailService: emailService,
		ticker:       time.NewTicker(interval),
		done:         make(chan bool),
	}
}

// Start begins the reminder job
func (j *PendingRateReminderJob) Start() {
	fmt.Println("Pending rate reminder job started")

	go func() {
		// Run immediately on start
		j.remind()

		// Then run on schedule
		for {
			select {
			case <-j.ticker.C:
				j.remind()
			case <-j.done:
				fmt.Println("Pending rate reminder job stopped")
				return
			}
		}
	}()
}

// Stop stops the reminder job
func (j *PendingRateReminderJob) Stop() {
	j.ticker.Stop()
	j.done <- true
}

// remind counts pending rates and notifies the manager mailbox
func (j *PendingRateReminderJob) remind() {
	mission, user, role, err := j.rateRepo.ListPendingRates()
	if err != nil {
		fmt.Printf("Error checking pending rates: %v\n", err)
		return
	}

	pending := len(mission) + len(user) + len(role)
	if pending == 0 {
		return
	}

	fmt.Printf("Found %d pending rate(s), sending reminder\n", pending)
	if err := j.emailService.SendPendingRatesReminder(pending); err != nil {
		fmt.Printf("Error sending pending rate reminder: %v\n", err)
	}
}
