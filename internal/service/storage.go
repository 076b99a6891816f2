package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"linkpulse/internal/config"
	"linkpulse/internal/metrics"
	"linkpulse/internal/model"

	"github.com/rs/zerolog/log"
)

const storageHandlerName = "click_storage"

// StorageStats is a snapshot of the click buffer
type StorageStats struct {
	ClicksStored    int64 `json:"clicks_stored"`
	BatchesFlushed  int64 `json:"batches_flushed"`
	FailedFlushes   int64 `json:"failed_flushes"`
	BufferSize      int   `json:"buffer_size"`
	BatchingEnabled bool  `json:"batching_enabled"`
}

// ClickStorage enriches click events and writes them to the raw store in batches
type ClickStorage struct {
	repo    ClickRepositoryInterface
	geo     GeoLocator
	cfg     config.StorageConfig
	metrics *metrics.Metrics

	mu     sync.Mutex
	buffer []*model.ClickRecord

	lifecycle sync.Mutex
	cancel    context.CancelFunc
	done      chan struct{}

	clicksStored   atomic.Int64
	batchesFlushed atomic.Int64
	failedFlushes  atomic.Int64
}

// NewClickStorage creates a new Click Storage. geo may be nil to skip enrichment.
func NewClickStorage(repo ClickRepositoryInterface, geo GeoLocator, cfg config.StorageConfig, m *metrics.Metrics) *ClickStorage {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = 5 * time.Second
	}
	if m == nil {
		m = metrics.NewNop()
	}

	return &ClickStorage{
		repo:    repo,
		geo:     geo,
		cfg:     cfg,
		metrics: m,
		buffer:  make([]*model.ClickRecord, 0, cfg.BatchSize),
	}
}

// Name implements mq.ClickHandler
func (s *ClickStorage) Name() string {
	return storageHandlerName
}

// HandleClick implements mq.ClickHandler
func (s *ClickStorage) HandleClick(ctx context.Context, event *model.ClickEvent) error {
	return s.StoreClick(ctx, event)
}

// StoreClick enriches the event and buffers it. The call that fills the
// buffer flushes it inline. With batching disabled the row is inserted at once.
func (s *ClickStorage) StoreClick(ctx context.Context, event *model.ClickEvent) error {
	var loc model.Location
	if s.geo != nil {
		loc = s.geo.Lookup(ctx, event.IP())
	}
	record := model.NewClickRecord(event, loc)

	if !s.cfg.Batching {
		return s.insert(ctx, []*model.ClickRecord{record})
	}

	s.mu.Lock()
	s.buffer = append(s.buffer, record)
	size := len(s.buffer)
	s.mu.Unlock()
	s.metrics.PendingClicks.Set(float64(size))

	if size >= s.cfg.BatchSize {
		// a failed flush keeps the rows buffered, the event is not lost
		_, _ = s.Flush(ctx)
	}
	return nil
}

// Flush writes everything buffered in one bulk insert and returns the rows written.
// On failure the rows go back into the buffer for the next trigger.
func (s *ClickStorage) Flush(ctx context.Context) (int, error) {
	s.mu.Lock()
	if len(s.buffer) == 0 {
		s.mu.Unlock()
		return 0, nil
	}
	batch := s.buffer
	s.buffer = make([]*model.ClickRecord, 0, s.cfg.BatchSize)
	s.mu.Unlock()

	if err := s.insert(ctx, batch); err != nil {
		s.mu.Lock()
		s.buffer = append(s.buffer, batch...)
		size := len(s.buffer)
		s.mu.Unlock()
		s.metrics.PendingClicks.Set(float64(size))
		return 0, err
	}

	s.metrics.PendingClicks.Set(float64(s.Pending()))
	return len(batch), nil
}

func (s *ClickStorage) insert(ctx context.Context, batch []*model.ClickRecord) error {
	start := time.Now()
	err := s.repo.BulkInsertClicks(ctx, batch)
	elapsed := time.Since(start)

	if err != nil {
		s.failedFlushes.Add(1)
		s.metrics.BatchInsertFailures.Inc()
		log.Error().Err(err).Int("batch_size", len(batch)).Msg("Failed to store clicks")
		return err
	}

	s.clicksStored.Add(int64(len(batch)))
	s.batchesFlushed.Add(1)
	s.metrics.BatchSize.Observe(float64(len(batch)))
	s.metrics.BatchInsertDuration.Observe(elapsed.Seconds())

	log.Debug().Int("batch_size", len(batch)).Dur("duration", elapsed).Msg("Clicks stored")
	return nil
}

// Start launches the periodic flush. Starting twice is a no-op.
func (s *ClickStorage) Start(ctx context.Context) {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	if s.cancel != nil {
		log.Warn().Msg("Click storage already started")
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.flushLoop(ctx, s.done)

	log.Info().
		Bool("batching", s.cfg.Batching).
		Int("batch_size", s.cfg.BatchSize).
		Dur("flush_interval", s.cfg.FlushInterval).
		Msg("Click storage started")
}

func (s *ClickStorage) flushLoop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.cfg.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Flush(ctx); err != nil && ctx.Err() == nil {
				log.Warn().Err(err).Int("pending", s.Pending()).Msg("Periodic flush failed, clicks re-buffered")
			}
		}
	}
}

// Stop halts the periodic flush, waits for it, then flushes what is left
func (s *ClickStorage) Stop(ctx context.Context) error {
	s.lifecycle.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.lifecycle.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}

	n, err := s.Flush(ctx)
	if err != nil {
		log.Error().Err(err).Int("pending", s.Pending()).Msg("Final flush failed")
		return err
	}

	log.Info().Int("flushed", n).Msg("Click storage stopped")
	return nil
}

// Pending returns the number of buffered clicks
func (s *ClickStorage) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buffer)
}

// Stats returns a snapshot of the buffer counters
func (s *ClickStorage) Stats() StorageStats {
	return StorageStats{
		ClicksStored:    s.clicksStored.Load(),
		BatchesFlushed:  s.batchesFlushed.Load(),
		FailedFlushes:   s.failedFlushes.Load(),
		BufferSize:      s.Pending(),
		BatchingEnabled: s.cfg.Batching,
	}
}
