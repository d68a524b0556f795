package app

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/rs/zerolog"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. PAWSWAP_LOG_LEVEL.
const EnvPrefix = "PAWSWAP"

// DefaultNodeHome is the default home directory for config and data.
var DefaultNodeHome string

func init() {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		userHomeDir = "."
	}
	DefaultNodeHome = filepath.Join(userHomeDir, ".pawswap")
}

// Config is the node configuration read from app.toml and the environment.
type Config struct {
	DB         DBConfig
	Log        LogConfig
	API        APIConfig
	Telemetry  TelemetryConfig
	Invariants InvariantsConfig
}

// DBConfig selects the database backend.
type DBConfig struct {
	Backend string
	Dir     string
}

// LogConfig sets the log level.
type LogConfig struct {
	Level string
}

// APIConfig configures the HTTP API.
type APIConfig struct {
	Address      string
	JWTSecret    string
	AdminSecret  string
	RateLimitRPS int
	CORSOrigins  []string
}

// TelemetryConfig configures the metrics and health listeners.
type TelemetryConfig struct {
	MetricsAddress string
	HealthAddress  string
}

// InvariantsConfig controls invariant assertion on every write.
type InvariantsConfig struct {
	CheckEveryExec bool
}

// DefaultConfig returns the configuration written by `init`.
func DefaultConfig() Config {
	return Config{
		DB: DBConfig{
			Backend: string(dbm.GoLevelDBBackend),
			Dir:     "data",
		},
		Log: LogConfig{Level: "info"},
		API: APIConfig{
			Address:      "127.0.0.1:1318",
			RateLimitRPS: 100,
			CORSOrigins:  []string{"http://localhost:3000"},
		},
		Telemetry: TelemetryConfig{
			MetricsAddress: "127.0.0.1:36660",
			HealthAddress:  "127.0.0.1:36661",
		},
		Invariants: InvariantsConfig{CheckEveryExec: true},
	}
}

// ConfigPath returns the location of app.toml under home.
func ConfigPath(home string) string {
	return filepath.Join(home, "config", "app.toml")
}

// GenesisPath returns the location of genesis.json under home.
func GenesisPath(home string) string {
	return filepath.Join(home, "config", "genesis.json")
}

func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("db.backend", def.DB.Backend)
	v.SetDefault("db.dir", def.DB.Dir)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("api.address", def.API.Address)
	v.SetDefault("api.jwt-secret", def.API.JWTSecret)
	v.SetDefault("api.admin-secret", def.API.AdminSecret)
	v.SetDefault("api.rate-limit-rps", def.API.RateLimitRPS)
	v.SetDefault("api.cors-origins", def.API.CORSOrigins)
	v.SetDefault("telemetry.metrics-address", def.Telemetry.MetricsAddress)
	v.SetDefault("telemetry.health-address", def.Telemetry.HealthAddress)
	v.SetDefault("invariants.check-every-exec", def.Invariants.CheckEveryExec)
}

// LoadConfig reads app.toml under home when it exists, applies PAWSWAP_*
// environment overrides and flags already bound to v, and validates the
// result.
func LoadConfig(v *viper.Viper, home string) (Config, error) {
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	path := ConfigPath(home)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigType("toml")
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	rps, err := cast.ToIntE(v.Get("api.rate-limit-rps"))
	if err != nil {
		return Config{}, fmt.Errorf("api.rate-limit-rps: %w", err)
	}
	checkEvery, err := cast.ToBoolE(v.Get("invariants.check-every-exec"))
	if err != nil {
		return Config{}, fmt.Errorf("invariants.check-every-exec: %w", err)
	}

	cfg := Config{
		DB: DBConfig{
			Backend: cast.ToString(v.Get("db.backend")),
			Dir:     cast.ToString(v.Get("db.dir")),
		},
		Log: LogConfig{Level: cast.ToString(v.Get("log.level"))},
		API: APIConfig{
			Address:      cast.ToString(v.Get("api.address")),
			JWTSecret:    cast.ToString(v.Get("api.jwt-secret")),
			AdminSecret:  cast.ToString(v.Get("api.admin-secret")),
			RateLimitRPS: rps,
			CORSOrigins:  toStringList(v.Get("api.cors-origins")),
		},
		Telemetry: TelemetryConfig{
			MetricsAddress: cast.ToString(v.Get("telemetry.metrics-address")),
			HealthAddress:  cast.ToString(v.Get("telemetry.health-address")),
		},
		Invariants: InvariantsConfig{CheckEveryExec: checkEvery},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// toStringList accepts a TOML array or a comma separated string from the
// environment.
func toStringList(raw interface{}) []string {
	if s, ok := raw.(string); ok {
		raw = strings.Split(s, ",")
	}
	var out []string
	for _, item := range cast.ToStringSlice(raw) {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// WriteConfig writes cfg to app.toml under home, creating the directory.
func WriteConfig(home string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	path := ConfigPath(home)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	v := viper.New()
	v.Set("db.backend", cfg.DB.Backend)
	v.Set("db.dir", cfg.DB.Dir)
	v.Set("log.level", cfg.Log.Level)
	v.Set("api.address", cfg.API.Address)
	v.Set("api.jwt-secret", cfg.API.JWTSecret)
	v.Set("api.admin-secret", cfg.API.AdminSecret)
	v.Set("api.rate-limit-rps", cfg.API.RateLimitRPS)
	v.Set("api.cors-origins", cfg.API.CORSOrigins)
	v.Set("telemetry.metrics-address", cfg.Telemetry.MetricsAddress)
	v.Set("telemetry.health-address", cfg.Telemetry.HealthAddress)
	v.Set("invariants.check-every-exec", cfg.Invariants.CheckEveryExec)

	return v.WriteConfigAs(path)
}

// Validate rejects values the node cannot start with.
func (c Config) Validate() error {
	switch dbm.BackendType(c.DB.Backend) {
	case dbm.GoLevelDBBackend, dbm.MemDBBackend:
	default:
		return fmt.Errorf("db.backend: unsupported backend %q", c.DB.Backend)
	}
	if c.DB.Backend != string(dbm.MemDBBackend) && c.DB.Dir == "" {
		return fmt.Errorf("db.dir must be set for backend %s", c.DB.Backend)
	}
	if _, err := c.LogLevel(); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	for key, addr := range map[string]string{
		"api.address":               c.API.Address,
		"telemetry.metrics-address": c.Telemetry.MetricsAddress,
		"telemetry.health-address":  c.Telemetry.HealthAddress,
	} {
		if addr == "" {
			continue
		}
		if _, _, err := net.SplitHostPort(addr); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	if c.API.RateLimitRPS < 0 {
		return fmt.Errorf("api.rate-limit-rps must not be negative")
	}
	return nil
}

// LogLevel parses the configured level.
func (c Config) LogLevel() (zerolog.Level, error) {
	return zerolog.ParseLevel(c.Log.Level)
}

// NewLogger builds the node logger at the configured level.
func (c Config) NewLogger(w io.Writer) (log.Logger, error) {
	level, err := c.LogLevel()
	if err != nil {
		return nil, err
	}
	return log.NewLogger(w, log.LevelOption(level), log.ColorOption(false)), nil
}

// OpenDB opens the configured database. A relative db.dir is resolved
// against home.
func (c Config) OpenDB(home string) (dbm.DB, error) {
	dir := c.DB.Dir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(home, dir)
	}
	return dbm.NewDB(Name, dbm.BackendType(c.DB.Backend), dir)
}
