package carbondash

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/carbondash/carbondash/internal/adapters/file"
	"github.com/carbondash/carbondash/internal/dataset"
	"github.com/carbondash/carbondash/internal/logging"
	"github.com/carbondash/carbondash/internal/observability"
	"github.com/carbondash/carbondash/pkg/domain"
	"github.com/carbondash/carbondash/pkg/ports"
)

// Version is the released version of carbondash.
var Version = "0.1.0"

// Service is the high-level entry point for the carbondash library.
// It owns the dataset index and answers every query the adapters expose.
type Service struct {
	// Name is derived from the dataset directory.
	Name string

	loader  *file.Loader
	cache   ports.QueryCache
	metrics *observability.Metrics
	logger  *slog.Logger
	metric  *domain.Metric // optional override of the manifest metric

	mu    sync.RWMutex
	index *dataset.Index
	gen   uint64 // bumped on every load; part of every cache key

	watchMu  sync.RWMutex
	watchers map[chan string]struct{}
}

// Option defines a functional option for configuring the Service.
type Option func(*Service)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithCache enables caching of computed query results.
func WithCache(cache ports.QueryCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

// WithMetrics registers observability collectors with the service.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithMetric overrides the metric slice, taking precedence over the
// dataset manifest.
func WithMetric(metric domain.Metric) Option {
	return func(s *Service) {
		s.metric = &metric
	}
}

// New initializes a Service over the given dataset directory and performs
// the initial load.
func New(dir string, opts ...Option) (*Service, error) {
	if dir == "" {
		return nil, fmt.Errorf("dataset directory is required")
	}

	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	s := &Service{
		Name:     filepath.Base(absPath),
		loader:   file.NewLoader(absPath),
		logger:   logging.NewNop(),
		watchers: make(map[chan string]struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// load reads the dataset from disk and swaps the index atomically.
func (s *Service) load() error {
	obs, manifest, err := s.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	metric := manifest.ResolvedMetric()
	if s.metric != nil {
		metric = *s.metric
	}

	title := manifest.Title
	if title == "" {
		title = s.Name
	}

	ix := dataset.Build(obs, metric, title)

	s.mu.Lock()
	s.index = ix
	s.gen++
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.DatasetRows.Set(float64(ix.Summary().Rows))
	}

	s.logger.Info("dataset loaded",
		"dir", s.loader.Dir(),
		"rows", ix.Summary().Rows,
		"areas", ix.Summary().Areas,
	)
	return nil
}

// current returns the live index.
func (s *Service) current() *dataset.Index {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// snapshot returns the live index together with its generation, so cached
// results computed from it are keyed to this dataset version.
func (s *Service) snapshot() (*dataset.Index, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index, s.gen
}

// Areas returns the sorted distinct areas of the dataset.
func (s *Service) Areas() []string {
	return s.current().Areas()
}

// Metric returns the metric slice currently served.
func (s *Service) Metric() domain.Metric {
	return s.current().Metric()
}

// Summary describes the loaded dataset.
func (s *Service) Summary() domain.Summary {
	return s.current().Summary()
}

// Series returns the chronological traces for the selected areas,
// consulting the cache first when one is configured.
func (s *Service) Series(ctx context.Context, areas []string) ([]domain.Series, error) {
	ix, gen := s.snapshot()
	key := cacheKey("series", gen, areas)

	var cached []domain.Series
	if s.loadCached(ctx, key, &cached) {
		return cached, nil
	}

	out, err := ix.Series(areas)
	if err != nil {
		return nil, err
	}
	s.storeCached(ctx, key, out)
	return out, nil
}

// Heatmap returns the area-by-year mean grid for the selected areas,
// consulting the cache first when one is configured.
func (s *Service) Heatmap(ctx context.Context, areas []string) (*domain.Heatmap, error) {
	ix, gen := s.snapshot()
	key := cacheKey("heatmap", gen, areas)

	var cached domain.Heatmap
	if s.loadCached(ctx, key, &cached) {
		return &cached, nil
	}

	out, err := ix.Heatmap(areas)
	if err != nil {
		return nil, err
	}
	s.storeCached(ctx, key, out)
	return out, nil
}

// Reload re-reads the dataset from disk, invalidates the cache and
// notifies watchers.
func (s *Service) Reload(ctx context.Context) error {
	if err := s.load(); err != nil {
		return err
	}

	if s.cache != nil {
		// Keys carry the dataset generation, so entries written for the old
		// index can never serve reads against the new one; the flush just
		// reclaims them early. A racing save keyed to the old generation is
		// equally harmless and ages out via TTL.
		if err := s.cache.Flush(ctx); err != nil {
			s.logger.Warn("cache flush failed", "error", err)
		}
	}

	if s.metrics != nil {
		s.metrics.DatasetReloads.Inc()
	}

	s.broadcast("dataset:reloaded")
	return nil
}

// Watch returns a channel of lifecycle events (currently reload
// notifications). The channel closes when ctx is done.
func (s *Service) Watch(ctx context.Context) (<-chan string, error) {
	ch := make(chan string, 10)

	s.watchMu.Lock()
	s.watchers[ch] = struct{}{}
	s.watchMu.Unlock()

	go func() {
		<-ctx.Done()
		s.watchMu.Lock()
		defer s.watchMu.Unlock()
		if _, ok := s.watchers[ch]; ok {
			delete(s.watchers, ch)
			close(ch)
		}
	}()

	return ch, nil
}

// Close releases the cache connection, if any.
func (s *Service) Close() error {
	if s.cache != nil {
		return s.cache.Close()
	}
	return nil
}

func (s *Service) broadcast(event string) {
	s.watchMu.RLock()
	defer s.watchMu.RUnlock()

	for ch := range s.watchers {
		select {
		case ch <- event:
		default:
			// Drop event if the watcher is not keeping up.
			s.logger.Warn("watcher buffer full, dropping event", "event", event)
		}
	}
}

// loadCached fills dest from the cache. Any cache failure is treated as a
// miss: the caller recomputes from the index.
func (s *Service) loadCached(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}

	payload, err := s.cache.Load(ctx, key)
	if err != nil {
		if err != domain.ErrCacheMiss {
			s.logger.Warn("cache load failed", "key", key, "error", err)
		}
		if s.metrics != nil {
			s.metrics.CacheMisses.Inc()
		}
		return false
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		s.logger.Warn("cache payload corrupt", "key", key, "error", err)
		if s.metrics != nil {
			s.metrics.CacheMisses.Inc()
		}
		return false
	}

	if s.metrics != nil {
		s.metrics.CacheHits.Inc()
	}
	return true
}

func (s *Service) storeCached(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := s.cache.Save(ctx, key, payload); err != nil {
		s.logger.Warn("cache save failed", "key", key, "error", err)
	}
}

// cacheKey canonicalizes an area selection so equivalent selections share
// one cache entry. The dataset generation keys entries to one dataset
// version, and each area is length-prefixed so names containing the
// separator cannot collide with a multi-area selection.
func cacheKey(kind string, gen uint64, areas []string) string {
	sorted := make([]string, len(areas))
	copy(sorted, areas)
	sort.Strings(sorted)

	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d", kind, gen)
	for _, a := range sorted {
		fmt.Fprintf(&b, ":%d:%s", len(a), a)
	}
	return b.String()
}
