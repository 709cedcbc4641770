package systems

import (
	"context"
	"sync"

	"github.com/haryoiro/orderdesk/internal/config"
	"github.com/haryoiro/orderdesk/internal/database"
	"github.com/haryoiro/orderdesk/internal/logger"
	"github.com/haryoiro/orderdesk/internal/perf"
	"github.com/haryoiro/orderdesk/internal/structures"
	"golang.org/x/sync/errgroup"
)

// Systems contains all the core systems of the application
type Systems struct {
	Config     *structures.Config
	ConfigPath string
	Store      database.OrderSource
	Timers     *perf.Registry
	Reporter   *perf.Reporter
	Loader     *OrderLoader

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped bool
	wg      sync.WaitGroup
	updates chan *structures.Config
}

// logSink forwards render warnings to the global logger.
type logSink struct{}

func (logSink) Warn(format string, args ...interface{}) {
	logger.Warn(format, args...)
}

// New creates a new Systems instance
func New(cfg *structures.Config, store database.OrderSource, configPath string) *Systems {
	reporter := perf.NewReporter(cfg.Performance.RenderThreshold(), logSink{})
	reporter.SetEnabled(cfg.Performance.Enabled)

	return &Systems{
		Config:     cfg,
		ConfigPath: configPath,
		Store:      store,
		Timers:     perf.NewRegistry(),
		Reporter:   reporter,
		Loader:     NewOrderLoader(store, cfg.Store.PageSize),
		updates:    make(chan *structures.Config, 1),
	}
}

// Start counts the cache and loads the first page concurrently, then starts
// watching the config file if there is one.
func (s *Systems) Start(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.Loader.Count(gctx)
		return err
	})
	g.Go(func() error {
		_, err := s.Loader.LoadMore(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Order cache ready: %d orders, first page %d", s.Loader.Total(), len(s.Loader.Orders()))

	if s.ConfigPath == "" {
		return nil
	}

	watchCtx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := config.Watch(watchCtx, s.ConfigPath, s.ApplyConfig); err != nil {
			logger.Warn("Config hot reload disabled: %v", err)
		}
	}()
	return nil
}

// ApplyConfig makes a reloaded config live. Render threshold changes take
// effect on the next report; the UI picks the rest up from Updates.
func (s *Systems) ApplyConfig(cfg *structures.Config) {
	s.Reporter.SetThreshold(cfg.Performance.RenderThreshold())
	s.Reporter.SetEnabled(cfg.Performance.Enabled)
	logger.Info("Config reloaded, render threshold %v", cfg.Performance.RenderThreshold())

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}

	select {
	case <-s.updates:
	default:
	}
	select {
	case s.updates <- cfg:
	default:
		// Another reload won the race; it is at least as new.
	}
}

// Updates delivers reloaded configs. Only the newest pending one is kept.
// The channel is closed by Stop.
func (s *Systems) Updates() <-chan *structures.Config {
	return s.updates
}

// Stop stops all systems
func (s *Systems) Stop() error {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()

	s.mu.Lock()
	if !s.stopped {
		s.stopped = true
		close(s.updates)
	}
	s.mu.Unlock()

	s.Timers.Reset()
	return s.Store.Close()
}
