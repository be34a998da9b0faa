package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultPurgeSpec runs the session purge every fifteen minutes
const DefaultPurgeSpec = "*/15 * * * *"

// Purger drops expired session blobs
type Purger interface {
	Purge(ctx context.Context, now time.Time) (int64, error)
}

// CronService runs scheduled housekeeping
type CronService struct {
	cron   *cron.Cron
	purger Purger
	spec   string
}

// NewCronService creates a new cron service
func NewCronService(purger Purger, spec string) *CronService {
	if spec == "" {
		spec = DefaultPurgeSpec
	}
	return &CronService{
		cron:   cron.New(),
		purger: purger,
		spec:   spec,
	}
}

// Start schedules the jobs and starts the scheduler
func (s *CronService) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.PurgeSessions); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("🚀 CronService started (session purge: %s)", s.spec)
	return nil
}

// Stop waits for running jobs to finish
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	log.Println("🛑 CronService stopped")
}

// PurgeSessions removes expired sessions once
func (s *CronService) PurgeSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.purger.Purge(ctx, time.Now())
	if err != nil {
		log.Printf("❌ Session purge error: %v", err)
		return
	}
	if n > 0 {
		log.Printf("✅ Purged %d expired sessions", n)
	}
}
