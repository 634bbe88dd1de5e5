package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"assetverse/internal/service"
)

// Scheduler runs periodic maintenance jobs.
type Scheduler struct {
	cron           *cron.Cron
	paymentService service.PaymentService
}

// New creates a scheduler.
func New(paymentService service.PaymentService) *Scheduler {
	return &Scheduler{
		cron:           cron.New(),
		paymentService: paymentService,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() {
	// Sweep abandoned checkout sessions every 5 minutes.
	if _, err := s.cron.AddFunc("*/5 * * * *", s.expireCheckoutSessions); err != nil {
		log.Printf("schedule checkout sweep: %v", err)
	}
	s.cron.Start()
}

// Stop stops the cron loop.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) expireCheckoutSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	expired, err := s.paymentService.ExpireStaleSessions(ctx)
	if err != nil {
		log.Printf("expire checkout sessions: %v", err)
		return
	}
	if expired > 0 {
		log.Printf("expired %d stale checkout sessions", expired)
	}
}
