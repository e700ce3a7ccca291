// Package service holds the bot's application layer: dataset lifecycle,
// typed queries shared by every transport, and the chat command
// dispatcher.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/gobu/internal/adapters/mq/queue"
	"github.com/okian/gobu/internal/adapters/mq/worker"
	"github.com/okian/gobu/internal/adapters/repository"
	"github.com/okian/gobu/internal/domain/catalog"
	"github.com/okian/gobu/internal/domain/lookup"
	"github.com/okian/gobu/internal/domain/model"
	"github.com/okian/gobu/pkg/logger"
	"github.com/okian/gobu/pkg/metrics"
)

// DefaultPrefix routes chat messages to the bot.
const DefaultPrefix = ">?"

// Responder delivers a reply for an invocation, e.g. to a chat channel.
type Responder interface {
	Respond(ctx context.Context, inv model.Invocation, reply Reply) error
}

// Service owns the catalog and the invocation pipeline.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     repository.Store
	res       *lookup.Resolver
	queue     *queue.InMemoryQueue
	pool      *worker.Pool
	responder Responder

	// Command table
	categories []category
	commands   []*command

	// Configuration
	prefix        string
	listDelimiter string
	workerCount   int
	queueSize     int

	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets where the dataset is loaded from.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum number of pending invocations.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithPrefix sets the command prefix shown in help and mention replies.
func WithPrefix(prefix string) Option {
	return func(s *Service) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithListDelimiter sets what separates names in list arguments such as
// hatch pairs. Lines always separate names too.
func WithListDelimiter(d string) Option {
	return func(s *Service) {
		if d != "" {
			s.listDelimiter = d
		}
	}
}

// WithResponder sets where replies of queued invocations go.
func WithResponder(r Responder) Option {
	return func(s *Service) {
		s.responder = r
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service. Nothing is loaded until Start.
func New(opts ...Option) *Service {
	s := &Service{
		prefix:        DefaultPrefix,
		listDelimiter: ",",
		workerCount:   runtime.NumCPU() * 2,
		queueSize:     1024,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.categories = commandTable()
	for _, cat := range s.categories {
		s.commands = append(s.commands, cat.commands...)
	}
	return s
}

// SetResponder replaces the responder. Transports that need the service
// to exist before they do call this after New.
func (s *Service) SetResponder(r Responder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responder = r
}

// Prefix returns the configured command prefix.
func (s *Service) Prefix() string { return s.prefix }

func (s *Service) log() logger.Logger {
	if s.logger != nil {
		return s.logger
	}
	return logger.Get().Named("service")
}

// Start loads the dataset, builds the catalog and starts the workers.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	if s.store == nil {
		return ErrNoStore
	}

	s.logger.Info(ctx, "starting service...")

	ds, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	cat := catalog.New(ds)
	s.res = lookup.New(cat)
	recordCatalog(cat.Stats())

	s.queue = queue.NewInMemoryQueue(
		queue.WithCapacity(s.queueSize),
		queue.WithBufferSize(s.queueSize),
	)
	s.pool = worker.NewPool(s.workerCount, s.queue, s)
	s.pool.Start(ctx)

	s.started = true
	stats := cat.Stats()
	s.logger.Info(ctx, "service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("pets", stats.Pets),
		logger.Int("talents", stats.Talents),
		logger.Int("hybrids", stats.Hybrids),
	)
	return nil
}

func recordCatalog(st catalog.Stats) {
	metrics.UpdateCatalogRecords("pet", st.Pets)
	metrics.UpdateCatalogRecords("talent", st.Talents)
	metrics.UpdateCatalogAliases("pet", st.PetAliases)
	metrics.UpdateCatalogAliases("talent", st.TalentAliases)
}

// Stop drains the queue and waits for the workers. The catalog stays
// readable so in-flight HTTP queries still complete.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	// Workers take the read lock while draining, so release before waiting.
	s.started = false
	pool := s.pool
	s.mu.Unlock()

	s.log().Info(ctx, "stopping service...")
	err := pool.Shutdown(ctx)
	s.log().Info(ctx, "service stopped", logger.Int("processed", int(pool.Processed())))
	return err
}

// Enqueue submits an invocation for asynchronous execution. It reports
// false when the service is stopped or the queue is full.
func (s *Service) Enqueue(ctx context.Context, inv model.Invocation) bool { //nolint:gocritic // hugeParam: copied into the queue anyway
	s.mu.RLock()
	q, started := s.queue, s.started
	s.mu.RUnlock()
	if !started {
		return false
	}
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	if inv.ReceivedAt.IsZero() {
		inv.ReceivedAt = time.Now()
	}
	ok := q.Enqueue(ctx, inv)
	if !ok {
		s.log().Warn(ctx, "invocation dropped", logger.String("id", inv.ID), logger.String("guild", inv.GuildID))
	}
	return ok
}

// Handle executes a queued invocation and hands the reply to the
// responder. It implements worker.Handler.
func (s *Service) Handle(ctx context.Context, inv model.Invocation) error { //nolint:gocritic // hugeParam: matches worker.Handler
	reply := s.Execute(ctx, inv.Content)
	s.log().Debug(ctx, "invocation executed",
		logger.String("id", inv.ID),
		logger.String("command", reply.Command),
		logger.String("outcome", reply.Outcome),
		logger.Duration("waited", time.Since(inv.ReceivedAt)),
	)
	if reply.Silent() {
		return nil
	}

	s.mu.RLock()
	r := s.responder
	s.mu.RUnlock()
	if r == nil {
		return nil
	}
	if err := r.Respond(ctx, inv, reply); err != nil {
		metrics.RecordReplySendError()
		return fmt.Errorf("respond: %w", err)
	}
	return nil
}

func (s *Service) resolver() *lookup.Resolver {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.res
}

func (s *Service) ready() (*lookup.Resolver, error) {
	if r := s.resolver(); r != nil {
		return r, nil
	}
	return nil, ErrNotStarted
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
	}
	if s.res != nil {
		stats["catalog"] = s.res.Catalog().Stats()
	}
	if s.started {
		queueLen := s.queue.Len(context.Background())
		stats["queueLength"] = queueLen
		stats["processed"] = s.pool.Processed()
		metrics.UpdateQueueSize(queueLen)
	}
	return stats
}
