package config

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type (
	// Config represents an application configuration.
	Config struct {
		// Subconfigs.
		Storage    Storage    `yaml:"storage"`
		HTTPServer HTTPServer `yaml:"http_server"`
		Logger     Logger     `yaml:"logger"`
	}
	// Config for the two append-only log files.
	Storage struct {
		// Path of the accounts log.
		AccountsFile string `yaml:"accounts_file" env:"ACCOUNTS_FILE" env-default:"comptes.txt"`
		// Path of the transactions log.
		TransactionsFile string `yaml:"transactions_file" env:"TRANSACTIONS_FILE" env-default:"transactions.txt"`
	}
	// Config for HTTP server.
	HTTPServer struct {
		// The server startup address.
		Address string `yaml:"run_address" env:"RUN_ADDRESS" env-default:"127.0.0.1:8080"`
		// Read header timeout in seconds.
		Timeout time.Duration `yaml:"timeout" env-default:"5s"`
		// Idle timeout in seconds.
		IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
		// Shutdown timeout in seconds.
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"30s"`
	}
	// Config for application's logger.
	Logger struct {
		// Path to store log files. Empty means console only.
		Path string `yaml:"path" env:"LOG_PATH"`
		// Application logging level.
		Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
		// Log files details.
		MaxSizeMB  int `yaml:"max_size_mb" env-default:"10"`
		MaxBackups int `yaml:"max_backups" env-default:"3"`
		MaxAgeDays int `yaml:"max_age_days" env-default:"28"`
	}
)

// MustLoad returns an application configuration populated from the given
// configuration file, environment variables and flags. A missing config
// file is not fatal; defaults and environment still apply.
func MustLoad() *Config {
	configPath := flag.String("config", "./config/local.yml", "path to the config file")
	address := flag.String("a", "", "server startup address")
	flag.Parse()

	var cfg Config

	if _, err := os.Stat(*configPath); err == nil {
		f, err := os.Open(*configPath)
		if err != nil {
			log.Fatalf("failed to open config file: %s", *configPath)
		}
		if err = cleanenv.ParseYAML(f, &cfg); err != nil {
			log.Fatalf("failed to parse config file: %s", *configPath)
		}
		_ = f.Close()
	}

	// Read environment variables and apply defaults.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("failed to read environment variables: %v", err)
	}

	if *address != "" {
		cfg.HTTPServer.Address = *address
	}

	return &cfg
}
