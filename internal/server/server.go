// Package server provides the HTTP REST API for the fund console.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/meridian/fund-console/internal/address"
	"github.com/meridian/fund-console/internal/config"
	"github.com/meridian/fund-console/internal/db"
	"github.com/meridian/fund-console/internal/draft"
	"github.com/meridian/fund-console/internal/enrich"
	"github.com/meridian/fund-console/internal/forms"
	"github.com/meridian/fund-console/internal/notify"
	"github.com/meridian/fund-console/internal/quickpaste"
	"github.com/meridian/fund-console/internal/server/ratelimit"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	log         *zap.Logger
	toasts      *notify.Hub
	engine      *quickpaste.Engine
	addr        *address.Normalizer
	drafts      draft.Store
	sessions    *forms.Registry
	enricher    *enrich.Service
	validate    *validator.Validate
	jwt         *JWTVerifier
	rateLimiter *ratelimit.Limiter
}

// Options holds the wired dependencies the server routes requests to. Drafts
// and Sessions are required; Database, Enricher, and Geocoder degrade to 503s
// on their routes when absent.
type Options struct {
	Config   *config.Config
	Log      *zap.Logger
	DB       *db.DB
	Toasts   *notify.Hub
	Engine   *quickpaste.Engine
	Addr     *address.Normalizer
	Drafts   draft.Store
	Sessions *forms.Registry
	Enricher *enrich.Service
}

// New creates a new server instance
func New(opts Options) (*Server, error) {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Drafts == nil || opts.Sessions == nil {
		return nil, fmt.Errorf("server requires a draft store and a session registry")
	}

	s := &Server{
		db:       opts.DB,
		log:      opts.Log,
		toasts:   opts.Toasts,
		engine:   opts.Engine,
		addr:     opts.Addr,
		drafts:   opts.Drafts,
		sessions: opts.Sessions,
		enricher: opts.Enricher,
		validate: validator.New(),
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	if opts.Config.JWTSecret != "" {
		s.jwt = NewJWTVerifier(opts.Config.JWTSecret)
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /events", s.handleEvents)

	// Quick paste and address normalization
	mux.HandleFunc("POST /parse/memo", s.handleParseMemo)
	mux.HandleFunc("POST /parse/diligence", s.handleParseDiligence)
	mux.HandleFunc("POST /address/normalize", s.handleNormalizeAddress)

	// Company endpoints
	mux.HandleFunc("GET /companies", s.handleListCompanies)
	mux.HandleFunc("POST /companies", s.handleCreateCompany)
	mux.HandleFunc("GET /companies/by-name", s.handleGetCompanyByName)
	mux.HandleFunc("GET /companies/{id}", s.handleGetCompany)
	mux.HandleFunc("PUT /companies/{id}", s.handleUpdateCompany)
	mux.HandleFunc("DELETE /companies/{id}", s.handleDeleteCompany)
	mux.HandleFunc("POST /companies/{id}/enrich", s.handleEnrichCompany)
	mux.HandleFunc("POST /companies/{id}/rationale", s.handleGenerateRationale)

	// Founder endpoints
	mux.HandleFunc("GET /companies/{id}/founders", s.handleListFounders)
	mux.HandleFunc("POST /companies/{id}/founders", s.handleCreateFounder)
	mux.HandleFunc("PUT /founders/{id}", s.handleUpdateFounder)
	mux.HandleFunc("DELETE /founders/{id}", s.handleDeleteFounder)

	// Investment endpoints
	mux.HandleFunc("GET /companies/{id}/investments", s.handleListInvestments)
	mux.HandleFunc("POST /companies/{id}/investments", s.handleCreateInvestment)
	mux.HandleFunc("GET /investments/{id}", s.handleGetInvestment)
	mux.HandleFunc("PUT /investments/{id}", s.handleUpdateInvestment)
	mux.HandleFunc("DELETE /investments/{id}", s.handleDeleteInvestment)

	// Draft persistence endpoints
	mux.HandleFunc("GET /drafts/{form_id}", s.handleGetDraft)
	mux.HandleFunc("PUT /drafts/{form_id}", s.handlePutDraft)
	mux.HandleFunc("DELETE /drafts/{form_id}", s.handleDeleteDraft)

	// Live form session endpoints
	mux.HandleFunc("POST /forms/{form_id}/open", s.handleOpenForm)
	mux.HandleFunc("POST /forms/{form_id}/changes", s.handleFormChanges)
	mux.HandleFunc("POST /forms/{form_id}/paste", s.handleFormPaste)
	mux.HandleFunc("POST /forms/{form_id}/flush", s.handleFormFlush)
	mux.HandleFunc("POST /forms/{form_id}/clear", s.handleClearForm)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", opts.Config.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.withAuth(mux)))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Long timeout for SSE and enrichment
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.db != nil {
		s.db.Close()
	}
	if err := s.drafts.Close(); err != nil {
		s.log.Warn("draft store close failed", zap.Error(err))
	}
	s.log.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

// withAuth verifies bearer tokens from the managed auth provider. Health,
// metrics, and the event stream stay open; everything else needs a token
// when a JWT secret is configured.
func (s *Server) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.jwt == nil || !requiresAuth(r) {
			next.ServeHTTP(w, r)
			return
		}
		claims, err := s.jwt.VerifyRequest(r)
		if err != nil {
			s.errorResponse(w, http.StatusUnauthorized, "Invalid or missing token")
			return
		}
		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

func requiresAuth(r *http.Request) bool {
	switch r.URL.Path {
	case "/health", "/metrics", "/events":
		return false
	}
	return true
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// extractClientID extracts the client identifier from the request.
// RemoteAddr only; X-Forwarded-For is trusted nowhere yet.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}
	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	s.log.Warn("rate limit exceeded",
		zap.Int("limit", info.Limit),
		zap.Int("remaining", info.Remaining),
	)
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
