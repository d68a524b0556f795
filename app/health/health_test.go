package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	pooltypes "github.com/paw-chain/pawswap/x/pool/types"
)

type fakeSource struct {
	version int64
	pool    pooltypes.Pool
	poolErr error
	broken  []string
	calls   int
}

func (f *fakeSource) LastCommitID() storetypes.CommitID {
	f.calls++
	return storetypes.CommitID{Version: f.version, Hash: []byte{0xAB}}
}

func (f *fakeSource) Pool() (pooltypes.Pool, error) { return f.pool, f.poolErr }

func (f *fakeSource) CheckInvariants() []string { return f.broken }

func fundedPool(a, b int64) pooltypes.Pool {
	pool := pooltypes.NewPool(sdk.AccAddress([]byte("controller__________")), "tokena", "tokenb")
	pool.ReserveA = math.NewInt(a)
	pool.ReserveB = math.NewInt(b)
	return pool
}

func newTestChecker(t *testing.T, source *fakeSource) *Checker {
	t.Helper()
	cfg := DefaultConfig()
	cfg.CacheDuration = 0
	checker, err := NewChecker(log.NewNopLogger(), cfg, source)
	require.NoError(t, err)
	return checker
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, 5*time.Second, cfg.CacheDuration)
	require.Empty(t, cfg.CORSOrigins)
}

func TestNewChecker(t *testing.T) {
	t.Parallel()

	_, err := NewChecker(log.NewNopLogger(), DefaultConfig(), nil)
	require.ErrorContains(t, err, "health source is required")

	_, err = NewChecker(log.NewNopLogger(), Config{CacheDuration: -time.Second}, &fakeSource{})
	require.ErrorContains(t, err, "must not be negative")

	checker, err := NewChecker(log.NewNopLogger(), DefaultConfig(), &fakeSource{})
	require.NoError(t, err)
	require.Equal(t, 5*time.Second, checker.cacheDuration)
}

func TestCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		source   *fakeSource
		detailed bool
		expected Status
		pool     Status
	}{
		{
			name:     "funded pool",
			source:   &fakeSource{version: 3, pool: fundedPool(100, 200)},
			expected: StatusHealthy,
			pool:     StatusHealthy,
		},
		{
			name:     "nothing committed",
			source:   &fakeSource{version: 0, poolErr: pooltypes.ErrPoolNotInitialized},
			expected: StatusDegraded,
			pool:     StatusDegraded,
		},
		{
			name:     "one-sided pool",
			source:   &fakeSource{version: 5, pool: fundedPool(100, 0)},
			expected: StatusDegraded,
			pool:     StatusDegraded,
		},
		{
			name:     "pool read error",
			source:   &fakeSource{version: 5, poolErr: errors.New("corrupt reserve")},
			expected: StatusUnhealthy,
			pool:     StatusUnhealthy,
		},
		{
			name:     "broken invariant only shows when detailed",
			source:   &fakeSource{version: 5, pool: fundedPool(1, 1), broken: []string{"pool: reserves-backed"}},
			expected: StatusHealthy,
			pool:     StatusHealthy,
		},
		{
			name:     "broken invariant detailed",
			source:   &fakeSource{version: 5, pool: fundedPool(1, 1), broken: []string{"pool: reserves-backed"}},
			detailed: true,
			expected: StatusUnhealthy,
			pool:     StatusHealthy,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			checker := newTestChecker(t, tt.source)
			health, err := checker.Check(context.Background(), tt.detailed)
			require.NoError(t, err)
			require.Equal(t, tt.expected, health.Status)
			require.Equal(t, tt.pool, health.Components["pool"].Status)
			require.Equal(t, tt.source.version, health.Version)

			_, hasInvariants := health.Components["invariants"]
			require.Equal(t, tt.detailed, hasInvariants)
		})
	}
}

func TestCheckCanceledContext(t *testing.T) {
	checker := newTestChecker(t, &fakeSource{version: 1, pool: fundedPool(1, 1)})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := checker.Check(ctx, false)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCalculateOverallStatus(t *testing.T) {
	t.Parallel()

	checker := newTestChecker(t, &fakeSource{})

	tests := []struct {
		name       string
		components map[string]ComponentHealth
		expected   Status
	}{
		{
			name: "all healthy",
			components: map[string]ComponentHealth{
				"store": {Status: StatusHealthy},
				"pool":  {Status: StatusHealthy},
			},
			expected: StatusHealthy,
		},
		{
			name: "one degraded",
			components: map[string]ComponentHealth{
				"store": {Status: StatusHealthy},
				"pool":  {Status: StatusDegraded},
			},
			expected: StatusDegraded,
		},
		{
			name: "unhealthy takes precedence over degraded",
			components: map[string]ComponentHealth{
				"store":      {Status: StatusDegraded},
				"invariants": {Status: StatusUnhealthy},
			},
			expected: StatusUnhealthy,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, checker.calculateOverallStatus(tt.components))
		})
	}
}

func TestReadinessIsCached(t *testing.T) {
	source := &fakeSource{version: 1, pool: fundedPool(1, 1)}
	checker, err := NewChecker(log.NewNopLogger(), Config{CacheDuration: time.Minute}, source)
	require.NoError(t, err)

	require.False(t, checker.shouldUseCached())

	first, err := checker.Check(context.Background(), false)
	require.NoError(t, err)
	require.True(t, checker.shouldUseCached())

	source.version = 9
	second, err := checker.Check(context.Background(), false)
	require.NoError(t, err)
	require.Same(t, first, second)
	require.Equal(t, 1, source.calls)

	// detailed checks always run
	detailed, err := checker.Check(context.Background(), true)
	require.NoError(t, err)
	require.Equal(t, int64(9), detailed.Version)
}

func TestHandleHealth(t *testing.T) {
	t.Parallel()

	checker := newTestChecker(t, &fakeSource{})

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	checker.handleHealth(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Equal(t, "ok", response["status"])
	require.NotEmpty(t, response["timestamp"])
}

func TestReadyStatusCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source *fakeSource
		path   string
		code   int
	}{
		{"ready healthy", &fakeSource{version: 1, pool: fundedPool(10, 10)}, "/health/ready", http.StatusOK},
		{"ready degraded", &fakeSource{version: 1, poolErr: pooltypes.ErrPoolNotInitialized}, "/health/ready", http.StatusOK},
		{"ready unhealthy", &fakeSource{version: 1, poolErr: errors.New("boom")}, "/health/ready", http.StatusServiceUnavailable},
		{"detailed broken invariant", &fakeSource{version: 1, pool: fundedPool(10, 10), broken: []string{"x"}}, "/health/detailed", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			checker := newTestChecker(t, tt.source)
			handler := checker.Handler(DefaultConfig())

			req := httptest.NewRequest("GET", tt.path, nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			require.Equal(t, tt.code, w.Code)

			var health HealthCheck
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
			require.NotEmpty(t, health.Status)
		})
	}
}

func TestRegisterRoutes(t *testing.T) {
	t.Parallel()

	checker := newTestChecker(t, &fakeSource{version: 1, pool: fundedPool(1, 1)})

	router := mux.NewRouter()
	checker.RegisterRoutes(router)

	for _, route := range []string{"/health", "/health/ready", "/health/detailed"} {
		req := httptest.NewRequest("GET", route, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.NotEqual(t, http.StatusNotFound, w.Code, "Route %s should be registered", route)
	}

	req := httptest.NewRequest("POST", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHandlerCORS(t *testing.T) {
	t.Parallel()

	checker := newTestChecker(t, &fakeSource{})
	handler := checker.Handler(Config{CORSOrigins: []string{"http://localhost:3000"}})

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
