package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Host string
		Port int
	}
	Database struct {
		Path string
	}
	Static struct {
		PublicDir string
		ViewsDir  string
	}
	Log struct {
		Level  string
		Format string
	}
	Backup struct {
		Bucket    string
		KeyPrefix string
		Region    string
		Endpoint  string
	}
	AWS struct {
		Profile string
	}
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// Load reads configuration from environment variables and optional config files.
// Variables already present in the environment take precedence over .env.
func Load() (Config, error) {
	_ = godotenv.Load() // optional file

	v := viper.New()
	v.SetEnvPrefix("TRACKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// unprefixed names kept for existing deployments
	if err := v.BindEnv("server.port", "TRACKER_SERVER_PORT", "PORT"); err != nil {
		return Config{}, fmt.Errorf("bind server.port: %w", err)
	}
	if err := v.BindEnv("database.path", "TRACKER_DATABASE_PATH", "DB_FILE"); err != nil {
		return Config{}, fmt.Errorf("bind database.path: %w", err)
	}

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 3000)
	v.SetDefault("database.path", "tracker.db")
	v.SetDefault("static.publicdir", "public")
	v.SetDefault("static.viewsdir", "views")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("backup.bucket", "")
	v.SetDefault("backup.keyprefix", "tracker-backups")
	v.SetDefault("backup.region", "us-east-1")
	v.SetDefault("backup.endpoint", "")
	v.SetDefault("aws.profile", "")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return Config{}, fmt.Errorf("invalid server port %d", cfg.Server.Port)
	}
	if strings.TrimSpace(cfg.Database.Path) == "" {
		return Config{}, fmt.Errorf("database path is required")
	}

	return cfg, nil
}
