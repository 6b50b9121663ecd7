package forecast

import (
	"context"
	"log"
	"time"
)

// RunRollupWorker periodically copies completed order totals into the
// forecast rows so charts compare predictions against real sales.
// It blocks; run it in a goroutine.
func (s *Service) RunRollupWorker(interval time.Duration) {
	log.Println("📈 Forecast rollup worker started")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		n, err := s.repo.RollupActuals(context.Background())
		if err != nil {
			log.Printf("⚠️  Forecast rollup error: %v", err)
			continue
		}
		if n > 0 {
			log.Printf("Forecast rollup updated %d rows", n)
		}
	}
}
