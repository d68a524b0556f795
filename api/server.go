// Package api serves the pool and token ledger over HTTP.
package api

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"cosmossdk.io/log"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	poolkeeper "github.com/paw-chain/pawswap/x/pool/keeper"
	pooltypes "github.com/paw-chain/pawswap/x/pool/types"
	tokenkeeper "github.com/paw-chain/pawswap/x/token/keeper"
)

// Node runs reads and writes against the application state. Writes are
// committed only when fn succeeds.
type Node interface {
	Exec(fn func(ctx sdk.Context) error) (sdk.Events, error)
	Query(fn func(ctx sdk.Context) error) error
}

// Server represents the main API server
type Server struct {
	router  *gin.Engine
	handler http.Handler
	config  *Config
	logger  log.Logger

	node        Node
	poolKeeper  poolkeeper.Keeper
	tokenKeeper tokenkeeper.Keeper
	msgServer   pooltypes.MsgServer
	queryServer pooltypes.QueryServer

	authService *AuthService
}

// Config holds server configuration
type Config struct {
	Address         string
	JWTSecret       []byte
	AdminSecret     string
	CORSOrigins     []string
	RateLimitRPS    int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	return &Config{
		Address:         "127.0.0.1:1318",
		CORSOrigins:     []string{"http://localhost:3000"},
		RateLimitRPS:    100,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// NewServer creates a new API server instance
func NewServer(node Node, poolKeeper poolkeeper.Keeper, tokenKeeper tokenkeeper.Keeper, config *Config, logger log.Logger) (*Server, error) {
	if node == nil {
		return nil, fmt.Errorf("node is required")
	}
	if config == nil {
		config = DefaultConfig()
	}

	// tokens signed with a random secret do not survive a restart
	if len(config.JWTSecret) == 0 {
		secret := make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("failed to generate JWT secret: %w", err)
		}
		config.JWTSecret = secret
		logger.Info("JWT secret generated randomly; set api.jwt-secret to keep tokens valid across restarts")
	}

	s := &Server{
		config:      config,
		logger:      logger.With("module", "api"),
		node:        node,
		poolKeeper:  poolKeeper,
		tokenKeeper: tokenKeeper,
		msgServer:   poolkeeper.NewMsgServerImpl(poolKeeper),
		queryServer: poolkeeper.NewQueryServerImpl(poolKeeper),
		authService: NewAuthService(config.JWTSecret, config.AdminSecret),
	}

	s.setupRouter()
	return s, nil
}

// setupRouter configures the Gin router with all routes and middleware
func (s *Server) setupRouter() {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	s.router = gin.New()

	// Recovery must be first to catch panics
	s.router.Use(gin.Recovery())
	s.router.Use(SecurityHeadersMiddleware())
	s.router.Use(RequestSizeLimitMiddleware(MaxRequestSize))
	s.router.Use(RequestIDMiddleware())
	s.router.Use(LoggerMiddleware(s.logger))
	s.router.Use(RateLimitMiddleware(s.config.RateLimitRPS))

	s.router.GET("/health", s.healthCheck)

	s.registerRoutes()

	s.handler = cors.New(cors.Options{
		AllowedOrigins:   s.config.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", headerRequestID},
		ExposedHeaders:   []string{headerRequestID},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(s.router)
}

// Handler returns the root HTTP handler including CORS.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// healthCheck returns server liveness
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:           s.config.Address,
		Handler:        s.handler,
		ReadTimeout:    s.config.ReadTimeout,
		WriteTimeout:   s.config.WriteTimeout,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting API server", "address", s.config.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
