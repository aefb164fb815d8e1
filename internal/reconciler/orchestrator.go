package reconciler

import (
	"context"
	"sync"
	"time"

	"delivery-order-service/internal/extract"
	"delivery-order-service/internal/models"
	"delivery-order-service/pkg/logger"
)

// Config holds orchestration settings
type Config struct {
	// MaxConcurrentFiles bounds the number of files extracted in
	// parallel. Values below 1 are treated as 1.
	MaxConcurrentFiles int `json:"max_concurrent_files"`
	// ProgressInterval controls how often batch progress is logged
	ProgressInterval time.Duration `json:"progress_interval"`
}

// DefaultConfig returns orchestration defaults
func DefaultConfig() *Config {
	return &Config{
		MaxConcurrentFiles: 4,
		ProgressInterval:   5 * time.Second,
	}
}

// Orchestrator drives the full pipeline over a set of discovered
// files: parallel per-file extraction followed by a sequential
// reconciliation reduce.
type Orchestrator struct {
	extractor *extract.Extractor
	engine    *Engine
	config    *Config
	logger    logger.Logger
}

// NewOrchestrator creates an orchestrator with the given configuration
func NewOrchestrator(config *Config, log logger.Logger) *Orchestrator {
	if config == nil {
		config = DefaultConfig()
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Orchestrator{
		extractor: extract.NewExtractor(log),
		engine:    NewEngine(log),
		config:    config,
		logger:    log.WithComponent("orchestrator"),
	}
}

// Process extracts every file and reconciles the results. Extraction
// runs on a bounded worker pool; results are collected by input index
// so the subsequent reduce sees files in their discovery order.
func (o *Orchestrator) Process(ctx context.Context, files []models.SourceFile) *models.ProcessResult {
	results := make([]models.FileResult, len(files))

	workers := o.config.MaxConcurrentFiles
	if workers < 1 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}

	tracker := logger.NewProgressTracker(logger.ProgressConfig{
		Operation:   "extract_files",
		Total:       int64(len(files)),
		LogInterval: o.config.ProgressInterval,
		Logger:      o.logger,
	})

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				file := files[idx]
				records, err := o.extractor.ExtractFile(file.Path, file.CustomerType)
				results[idx] = models.FileResult{
					FilePath: file.Path,
					Records:  records,
					Err:      err,
				}
				tracker.Increment()
			}
		}()
	}

	for idx := range files {
		select {
		case <-ctx.Done():
			// workers drain remaining jobs from the closed channel
		case jobs <- idx:
			continue
		}
		break
	}
	close(jobs)
	wg.Wait()
	tracker.Complete()

	// files never dispatched due to cancellation surface as parse
	// errors rather than silently vanishing
	for idx := range results {
		if results[idx].FilePath == "" {
			results[idx] = models.FileResult{
				FilePath: files[idx].Path,
				Err:      ctx.Err(),
			}
		}
	}

	return o.engine.Reconcile(results)
}
