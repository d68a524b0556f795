// Package health serves liveness and readiness checks for a pawswap node.
//
// Endpoints:
//   - /health reports that the process is up
//   - /health/ready reports the committed store and the pool
//   - /health/detailed adds the registered invariants
package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	pooltypes "github.com/paw-chain/pawswap/x/pool/types"
)

// Status represents the health status of a component
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
	StatusUnknown   Status = "unknown"
)

// ComponentHealth represents the health status of a single component
type ComponentHealth struct {
	Status    Status                 `json:"status"`
	Message   string                 `json:"message,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Metrics   map[string]interface{} `json:"metrics,omitempty"`
}

// HealthCheck represents the overall health check response
type HealthCheck struct {
	Status     Status                     `json:"status"`
	Timestamp  time.Time                  `json:"timestamp"`
	Version    int64                      `json:"version"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
}

// Source is the node state the checker inspects.
type Source interface {
	LastCommitID() storetypes.CommitID
	Pool() (pooltypes.Pool, error)
	CheckInvariants() []string
}

// Checker performs health checks against a Source
type Checker struct {
	logger log.Logger
	source Source

	mu            sync.RWMutex
	lastCheck     time.Time
	cachedHealth  *HealthCheck
	cacheDuration time.Duration
}

// Config holds configuration for the health checker
type Config struct {
	// CacheDuration is how long to cache readiness results
	CacheDuration time.Duration

	// CORSOrigins enables CORS on the health routes when non-empty
	CORSOrigins []string
}

// DefaultConfig returns the default health check configuration
func DefaultConfig() Config {
	return Config{
		CacheDuration: 5 * time.Second,
	}
}

// NewChecker creates a new health checker
func NewChecker(logger log.Logger, cfg Config, source Source) (*Checker, error) {
	if source == nil {
		return nil, fmt.Errorf("health source is required")
	}
	if cfg.CacheDuration < 0 {
		return nil, fmt.Errorf("cache duration must not be negative")
	}

	return &Checker{
		logger:        logger.With("module", "health"),
		source:        source,
		cacheDuration: cfg.CacheDuration,
	}, nil
}

// Check runs the readiness checks, plus the invariants when detailed is set.
func (c *Checker) Check(ctx context.Context, detailed bool) (*HealthCheck, error) {
	if !detailed && c.shouldUseCached() {
		c.mu.RLock()
		defer c.mu.RUnlock()
		return c.cachedHealth, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	commitID := c.source.LastCommitID()
	health := &HealthCheck{
		Timestamp:  time.Now(),
		Version:    commitID.Version,
		Components: make(map[string]ComponentHealth),
	}

	health.Components["store"] = c.checkStore(commitID)
	health.Components["pool"] = c.checkPool()
	if detailed {
		health.Components["invariants"] = c.checkInvariants()
	}

	health.Status = c.calculateOverallStatus(health.Components)

	if !detailed {
		c.mu.Lock()
		c.lastCheck = time.Now()
		c.cachedHealth = health
		c.mu.Unlock()
	}

	return health, nil
}

// checkStore reports the latest committed version
func (c *Checker) checkStore(commitID storetypes.CommitID) ComponentHealth {
	metrics := map[string]interface{}{
		"version": commitID.Version,
		"hash":    fmt.Sprintf("%X", commitID.Hash),
	}

	if commitID.Version == 0 {
		return ComponentHealth{
			Status:    StatusDegraded,
			Message:   "No state committed yet",
			Timestamp: time.Now(),
			Metrics:   metrics,
		}
	}

	return ComponentHealth{
		Status:    StatusHealthy,
		Message:   "Store is committed",
		Timestamp: time.Now(),
		Metrics:   metrics,
	}
}

// checkPool reports whether the pool exists and can quote swaps
func (c *Checker) checkPool() ComponentHealth {
	pool, err := c.source.Pool()
	if errors.Is(err, pooltypes.ErrPoolNotInitialized) {
		return ComponentHealth{
			Status:    StatusDegraded,
			Message:   "Pool is not initialized",
			Timestamp: time.Now(),
		}
	}
	if err != nil {
		return ComponentHealth{
			Status:    StatusUnhealthy,
			Message:   fmt.Sprintf("Failed to read pool: %v", err),
			Timestamp: time.Now(),
		}
	}

	metrics := map[string]interface{}{
		"asset_a":   pool.AssetA,
		"asset_b":   pool.AssetB,
		"reserve_a": pool.ReserveA.String(),
		"reserve_b": pool.ReserveB.String(),
	}

	if !pool.ReserveA.IsPositive() || !pool.ReserveB.IsPositive() {
		return ComponentHealth{
			Status:    StatusDegraded,
			Message:   "Pool has no liquidity on at least one side",
			Timestamp: time.Now(),
			Metrics:   metrics,
		}
	}

	return ComponentHealth{
		Status:    StatusHealthy,
		Message:   "Pool is accepting swaps",
		Timestamp: time.Now(),
		Metrics:   metrics,
	}
}

// checkInvariants runs every registered invariant
func (c *Checker) checkInvariants() ComponentHealth {
	broken := c.source.CheckInvariants()
	if len(broken) > 0 {
		c.logger.Error("invariants broken", "count", len(broken))
		return ComponentHealth{
			Status:    StatusUnhealthy,
			Message:   fmt.Sprintf("%d invariant(s) broken", len(broken)),
			Timestamp: time.Now(),
			Metrics:   map[string]interface{}{"broken": broken},
		}
	}

	return ComponentHealth{
		Status:    StatusHealthy,
		Message:   "All invariants hold",
		Timestamp: time.Now(),
	}
}

// calculateOverallStatus determines the overall health status based on component statuses
func (c *Checker) calculateOverallStatus(components map[string]ComponentHealth) Status {
	hasUnhealthy := false
	hasDegraded := false

	for _, component := range components {
		switch component.Status {
		case StatusUnhealthy:
			hasUnhealthy = true
		case StatusDegraded:
			hasDegraded = true
		}
	}

	if hasUnhealthy {
		return StatusUnhealthy
	}
	if hasDegraded {
		return StatusDegraded
	}
	return StatusHealthy
}

// shouldUseCached determines if cached health check results should be used
func (c *Checker) shouldUseCached() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.cachedHealth == nil {
		return false
	}

	return time.Since(c.lastCheck) < c.cacheDuration
}

// RegisterRoutes registers health check endpoints on router
func (c *Checker) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", c.handleHealth).Methods("GET")
	router.HandleFunc("/health/ready", c.handleHealthReady).Methods("GET")
	router.HandleFunc("/health/detailed", c.handleHealthDetailed).Methods("GET")
}

// Handler returns the health routes wrapped with panic recovery and, when
// origins are configured, CORS.
func (c *Checker) Handler(cfg Config) http.Handler {
	router := mux.NewRouter()
	c.RegisterRoutes(router)

	var h http.Handler = router
	if len(cfg.CORSOrigins) > 0 {
		h = handlers.CORS(
			handlers.AllowedOrigins(cfg.CORSOrigins),
			handlers.AllowedMethods([]string{"GET", "OPTIONS"}),
		)(h)
	}
	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(false))(h)
}

// handleHealth handles the basic liveness check endpoint
func (c *Checker) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// handleHealthReady handles the readiness check endpoint
func (c *Checker) handleHealthReady(w http.ResponseWriter, r *http.Request) {
	c.respond(w, r, false)
}

// handleHealthDetailed handles the detailed health check endpoint
func (c *Checker) handleHealthDetailed(w http.ResponseWriter, r *http.Request) {
	c.respond(w, r, true)
}

func (c *Checker) respond(w http.ResponseWriter, r *http.Request, detailed bool) {
	health, err := c.Check(r.Context(), detailed)
	if err != nil {
		c.logger.Error("Health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	// degraded is still ready: reads keep working on an empty pool
	statusCode := http.StatusOK
	if health.Status == StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}
	writeJSON(w, statusCode, health)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
