// Package api serves the read-only catalog queries over HTTP.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/okian/gobu/internal/domain/breeding"
	"github.com/okian/gobu/internal/domain/failure"
	"github.com/okian/gobu/internal/domain/flags"
	"github.com/okian/gobu/internal/domain/lookup"
	"github.com/okian/gobu/internal/domain/model"
	"github.com/okian/gobu/internal/domain/priority"
)

// Dependencies required by HTTP handlers. *service.Service satisfies it.
type Dependencies interface {
	Pet(ctx context.Context, name string) (*model.Pet, error)
	Talent(ctx context.Context, name string) (*model.Talent, error)
	SearchPets(ctx context.Context, query string, bag flags.Bag) ([]*model.Pet, error)
	SearchTalents(ctx context.Context, bag flags.Bag) (priority.Result, priority.Key, error)
	Hatch(ctx context.Context, list string) (breeding.Result, error)
	Hybrids(ctx context.Context, name string) (*model.Pet, []breeding.Pair, error)
	Suggest(ctx context.Context, entity failure.Entity, prefix string, limit int) ([]lookup.Suggestion, error)
	IsHybrid(p *model.Pet) bool
}

// Server wires HTTP routes for the catalog API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	petsHandler    *PetsHandler
	talentsHandler *TalentsHandler
	suggestHandler *SuggestHandler
	cache          *responseCache
}

// Option configures a Server.
type Option func(*serverOptions)

type serverOptions struct {
	cacheItems int
}

// WithCacheItems bounds the response cache. Zero disables it.
func WithCacheItems(n int) Option {
	return func(o *serverOptions) {
		if n >= 0 {
			o.cacheItems = n
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) (*Server, error) {
	o := serverOptions{cacheItems: defaultCacheItems}
	for _, opt := range opts {
		opt(&o)
	}
	cache, err := newResponseCache(o.cacheItems)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCache, err)
	}
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		petsHandler:    NewPetsHandler(deps),
		talentsHandler: NewTalentsHandler(deps),
		suggestHandler: NewSuggestHandler(deps),
		cache:          cache,
	}, nil
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("GET /pets", MetricsMiddleware(s.cache.wrap(s.petsHandler.HandleSearch), "pets"))
	mux.HandleFunc("GET /pets/{name}", MetricsMiddleware(s.cache.wrap(s.petsHandler.HandleGet), "pet"))
	mux.HandleFunc("GET /hatch", MetricsMiddleware(s.cache.wrap(s.petsHandler.HandleHatch), "hatch"))
	mux.HandleFunc("GET /hybrids/{name}", MetricsMiddleware(s.cache.wrap(s.petsHandler.HandleHybrids), "hybrids"))
	mux.HandleFunc("GET /talents", MetricsMiddleware(s.cache.wrap(s.talentsHandler.HandleSearch), "talents"))
	mux.HandleFunc("GET /talents/{name}", MetricsMiddleware(s.cache.wrap(s.talentsHandler.HandleGet), "talent"))
	mux.HandleFunc("GET /suggest", MetricsMiddleware(s.cache.wrap(s.suggestHandler.HandleSuggest), "suggest"))
}

// Close releases the response cache.
func (s *Server) Close() {
	s.cache.close()
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure maps query errors to statuses: lookup misses are 404, other
// input failures 400, and anything else means the catalog is not loaded.
func writeFailure(w http.ResponseWriter, err error) {
	f, ok := failure.As(err)
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "unavailable", fmt.Errorf("%w: %w", ErrUnavailable, err))
		return
	}
	switch f.Kind {
	case failure.KindNotFound, failure.KindNoneFound:
		writeError(w, http.StatusNotFound, f.Kind.String(), f)
	default:
		writeError(w, http.StatusBadRequest, f.Kind.String(), f)
	}
}
