package sync

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/OlegRadinuk/lifestyle-crimea/internal/repository"
)

// Scheduler drives the periodic full sync pass. The manual admin trigger
// and this schedule share the same per-source code path.
type Scheduler struct {
	cron    *cron.Cron
	service *Service
	spec    string
}

func NewScheduler(service *Service, spec string) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		service: service,
		spec:    spec,
	}
}

func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		results, err := s.service.SyncAll(ctx, repository.SourceFilter{})
		if err != nil {
			log.Printf("scheduled sync failed to list sources: %v", err)
			return
		}

		var ok, failed int
		for _, r := range results {
			if r.Error == "" {
				ok++
			} else {
				failed++
			}
		}
		log.Printf("scheduled sync finished: %d ok, %d failed", ok, failed)
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("sync scheduler started: %s", s.spec)
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}
