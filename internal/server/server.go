package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/skillmatch/internal/config"
	"github.com/jonathan/skillmatch/internal/logger"
	"github.com/jonathan/skillmatch/internal/ranking"
	"github.com/jonathan/skillmatch/internal/server/middleware"
	"github.com/jonathan/skillmatch/internal/server/ratelimit"
	"github.com/jonathan/skillmatch/internal/types"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       Store
	logger      *zap.Logger
	corsOrigin  string
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
	ranker      *ranking.Ranker
	matchCache  *ranking.Cache
	validator   *validator.Validate
	now         func() time.Time
}

// New creates a new server instance backed by store. The caller owns store and closes it
// after Start returns.
func New(cfg *config.Config, store Store, log *zap.Logger) (*Server, error) {
	s := &Server{
		store:      store,
		logger:     logger.OrNop(log),
		corsOrigin: cfg.CORSOrigin,
		validator:  validator.New(),
		now:        time.Now,
	}

	limiter, err := ratelimit.NewLimiter(ratelimit.Config{
		Enabled:       cfg.RateLimit.Enabled,
		DefaultLimit:  cfg.RateLimit.Max,
		DefaultWindow: cfg.RateLimit.Window(),
		Allow:         cfg.RateLimit.AllowList(),
		Block:         cfg.RateLimit.BlockList(),
		Rules:         ratelimit.DefaultRules(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build rate limiter: %w", err)
	}
	s.rateLimiter = limiter

	s.userService = NewUserService(store, cfg.Password)
	s.jwtService = NewJWTService(cfg.JWT)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService, s.logger)

	opts := []ranking.Option{
		ranking.WithConcurrency(cfg.Ranking.Concurrency),
		ranking.WithLogger(s.logger),
		ranking.WithClock(func() time.Time { return s.now() }),
	}
	if cfg.Ranking.CacheSize > 0 {
		s.matchCache = ranking.NewCache(cfg.Ranking.CacheSize)
		opts = append(opts, ranking.WithCache(s.matchCache))
	}
	s.ranker = ranking.NewRanker(opts...)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the router wrapped in the server-wide middleware.
func (s *Server) routes() http.Handler {
	auth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	authed := func(h http.HandlerFunc) http.Handler { return auth(h) }
	hiring := func(h http.HandlerFunc) http.Handler {
		return auth(middleware.RequireRole(types.HiringRoles...)(h))
	}
	seekers := func(h http.HandlerFunc) http.Handler {
		return auth(middleware.RequireRole(types.RoleSeeker)(h))
	}

	mux := http.NewServeMux()

	// Public endpoints
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.HandleFunc("POST /match", s.handleMatch)

	// Skill catalog
	mux.Handle("POST /skills", authed(s.handleCreateSkill))
	mux.Handle("GET /skills", authed(s.handleListSkills))

	// Jobs
	mux.Handle("POST /jobs", hiring(s.handleCreateJob))
	mux.Handle("GET /jobs", authed(s.handleListJobs))
	mux.Handle("GET /jobs/{id}", authed(s.handleGetJob))
	mux.Handle("PUT /jobs/{id}/status", authed(s.handleUpdateJobStatus))
	mux.Handle("GET /jobs/{id}/match/{candidate_id}", authed(s.handleJobMatch))
	mux.Handle("POST /jobs/{id}/rank", authed(s.handleRank))

	// Applications
	mux.Handle("POST /jobs/{id}/applications", seekers(s.handleApply))
	mux.Handle("GET /jobs/{id}/applications", authed(s.handleListApplications))
	mux.Handle("GET /jobs/{id}/applications/stats", authed(s.handleApplicationStats))

	// Caller's own profile
	mux.Handle("GET /me", authed(s.handleGetProfile))
	mux.Handle("POST /me/skills", authed(s.handleAddSkills))
	mux.Handle("POST /me/experience", authed(s.handleAddExperience))
	mux.Handle("POST /me/education", authed(s.handleAddEducation))
	mux.Handle("PUT /me/password", authed(s.authHandler.UpdatePassword))

	// Candidate search
	mux.Handle("GET /candidates/search", hiring(s.handleSearchCandidates))

	return middleware.RequestID(s.withLogging(s.withRateLimit(s.withCORS(withBodyLimit(mux)))))
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves requests until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			s.rateLimiter.Stop()
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	s.rateLimiter.Stop()

	s.logger.Info("server stopped")
	return nil
}

// maxBodyBytes caps request bodies. Inline match requests carry whole profiles, so it is
// generous but finite.
const maxBodyBytes = 1 << 20

// withBodyLimit caps the request body at maxBodyBytes. Reads past the cap fail with
// *http.MaxBytesError.
func withBodyLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		}
		next.ServeHTTP(w, r)
	})
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		decision := s.rateLimiter.Allow(clientID, r.Method, r.URL.Path)
		s.setRateLimitHeaders(w, decision)
		if !decision.Allowed {
			s.rateLimitResponse(w, r, decision)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.logger.Info("request",
			zap.String(logger.FieldRequestID, middleware.GetRequestID(r)),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn("health check failed", zap.Error(err))
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes v as a JSON response body
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// handleError maps err to a status code. Internal errors are logged and hidden from the caller.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, r, s.logger, err)
}

// writeError maps err to its status and writes {"error": message}. Internal errors are logged
// and replaced by a generic message.
func writeError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed",
			zap.String(logger.FieldRequestID, middleware.GetRequestID(r)),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		writeJSON(w, status, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// decodeAndValidate decodes the JSON body into dst and runs struct validation on it.
func (s *Server) decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &ErrBodyTooLarge{Limit: tooLarge.Limit}
		}
		return &ErrValidation{Field: "body", Message: "invalid JSON"}
	}
	if err := s.validator.Struct(dst); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			return &ErrValidation{Field: ve[0].Field(), Message: ve[0].Tag()}
		}
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}

// pathID parses the named path parameter as a UUID.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: name, Message: "must be a UUID"}
	}
	return id, nil
}

// extractClientID extracts the client identifier from the request.
// For now this is the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders reports the metered budget. Unmetered requests get no headers.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, d ratelimit.Decision) {
	if d.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 for a rejected request. Blocked clients get no retry hint.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, d ratelimit.Decision) {
	response := map[string]any{
		"error":   "rate_limit_exceeded",
		"message": "Rate limit exceeded. Please try again later.",
	}
	if d.Limit > 0 {
		response["limit"] = d.Limit
		response["reset_at"] = d.ResetAt.UTC().Format(time.RFC3339)
	}

	if d.RetryAfter > 0 {
		retry := int(math.Ceil(d.RetryAfter.Seconds()))
		response["retry_after"] = retry
		w.Header().Set("Retry-After", strconv.Itoa(retry))
	}

	s.logger.Warn("rate limit exceeded",
		zap.String("client", s.extractClientID(r)),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("limit", d.Limit))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
