package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func validConfig() Config {
	return Config{
		Port:          8080,
		DBPath:        "./data/test.db",
		JWTSecret:     testSecret,
		TokenDuration: 24 * time.Hour,
		LogLevel:      "info",
		LogFormat:     "text",
		KafkaTopic:    "activity",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(c *Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:        "invalid port - out of range low",
			modify:      func(c *Config) { c.Port = 0 },
			wantErr:     true,
			errorString: "invalid port 0: must be between 1 and 65535",
		},
		{
			name:        "invalid port - out of range high",
			modify:      func(c *Config) { c.Port = 70000 },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "missing database path",
			modify:      func(c *Config) { c.DBPath = "" },
			wantErr:     true,
			errorString: "database path cannot be empty",
		},
		{
			name:        "missing secret",
			modify:      func(c *Config) { c.JWTSecret = "" },
			wantErr:     true,
			errorString: "JWT_SECRET is required",
		},
		{
			name:        "short secret",
			modify:      func(c *Config) { c.JWTSecret = "short" },
			wantErr:     true,
			errorString: "JWT_SECRET must be at least 32 characters",
		},
		{
			name:        "token duration too short",
			modify:      func(c *Config) { c.TokenDuration = time.Second },
			wantErr:     true,
			errorString: "invalid token duration 1s",
		},
		{
			name:        "invalid log level",
			modify:      func(c *Config) { c.LogLevel = "verbose" },
			wantErr:     true,
			errorString: "invalid log level 'verbose'",
		},
		{
			name:        "invalid log format",
			modify:      func(c *Config) { c.LogFormat = "xml" },
			wantErr:     true,
			errorString: "invalid log format 'xml'",
		},
		{
			name: "brokers without topic",
			modify: func(c *Config) {
				c.KafkaBrokers = "localhost:9092"
				c.KafkaTopic = ""
			},
			wantErr:     true,
			errorString: "Kafka topic cannot be empty",
		},
		{
			name: "multiple errors are combined",
			modify: func(c *Config) {
				c.Port = 0
				c.DBPath = ""
			},
			wantErr:     true,
			errorString: "invalid port 0: must be between 1 and 65535\n- database path cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.modify(&c)

			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errorString) {
				t.Errorf("Validate() error = %v, expected to contain %q", err, tt.errorString)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Chdir(t.TempDir())

		c, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if c.Port != 8080 {
			t.Errorf("Expected default port 8080, got %d", c.Port)
		}
		if c.TokenDuration != 24*time.Hour {
			t.Errorf("Expected default token duration 24h, got %v", c.TokenDuration)
		}
		if !c.MetricsEnabled {
			t.Error("Expected metrics enabled by default")
		}
		if len(c.Brokers()) != 0 {
			t.Errorf("Expected no brokers, got %v", c.Brokers())
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("PORT", "9090")
		t.Setenv("TOKEN_DURATION", "2h")
		t.Setenv("KAFKA_BROKERS", "a:9092, b:9092")
		t.Setenv("METRICS_ENABLED", "false")

		c, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if c.Port != 9090 {
			t.Errorf("Expected port 9090, got %d", c.Port)
		}
		if c.TokenDuration != 2*time.Hour {
			t.Errorf("Expected 2h, got %v", c.TokenDuration)
		}
		if brokers := c.Brokers(); len(brokers) != 2 || brokers[1] != "b:9092" {
			t.Errorf("Unexpected brokers %v", brokers)
		}
		if c.MetricsEnabled {
			t.Error("Expected metrics disabled")
		}
	})

	t.Run("config file", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		path := filepath.Join(dir, "splitledger.yaml")
		content := "db_path: /tmp/ledger.db\nlog_format: json\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write config file: %v", err)
		}
		t.Setenv("CONFIG_FILE", path)
		t.Setenv("LOG_FORMAT", "text")

		c, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if c.DBPath != "/tmp/ledger.db" {
			t.Errorf("Expected db path from file, got %q", c.DBPath)
		}
		if c.LogFormat != "text" {
			t.Errorf("Expected environment to win over file, got %q", c.LogFormat)
		}
	})
}
