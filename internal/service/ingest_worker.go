package service

import (
	"context"
	"log"
	"sync"
	"time"

	"auditdesk/internal/port"
)

// IngestConfig holds settings for the balance ingest worker.
type IngestConfig struct {
	PollInterval time.Duration
	MaxRetries   int
	Concurrency  int
}

// IngestWorker polls for queued balance imports and dispatches them for
// parsing.
type IngestWorker struct {
	imports port.BalanceImportRepository
	svc     BalanceService
	cfg     IngestConfig
	wg      sync.WaitGroup
}

// NewIngestWorker creates a new IngestWorker.
func NewIngestWorker(imports port.BalanceImportRepository, svc BalanceService, cfg IngestConfig) *IngestWorker {
	return &IngestWorker{
		imports: imports,
		svc:     svc,
		cfg:     cfg,
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight imports have finished.
func (w *IngestWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	log.Printf("ingestWorker: started (poll=%s, concurrency=%d, maxRetries=%d)",
		w.cfg.PollInterval, w.cfg.Concurrency, w.cfg.MaxRetries)

	for {
		select {
		case <-ctx.Done():
			log.Printf("ingestWorker: shutting down, waiting for in-flight imports...")
			w.wg.Wait()
			log.Printf("ingestWorker: shutdown complete")
			return
		case <-ticker.C:
			available := w.cfg.Concurrency - len(sem)
			if available <= 0 {
				continue
			}

			imports, err := w.imports.ClaimQueued(ctx, available)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				log.Printf("ingestWorker: ClaimQueued error: %v", err)
				continue
			}

			for i := range imports {
				imp := imports[i] // copy for goroutine

				sem <- struct{}{} // acquire
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }() // release

					// Use a fresh context independent of the poll context
					// so in-flight imports complete even during shutdown.
					importCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
					defer cancel()

					log.Printf("ingestWorker: dispatching import %s (attempt %d)", imp.ID, imp.Attempts)
					w.svc.ProcessImport(importCtx, &imp, w.cfg.MaxRetries)
				}()
			}
		}
	}
}
