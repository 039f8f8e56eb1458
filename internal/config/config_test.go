package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     string
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults without file or env",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, SourceDemo, cfg.Report.Source)
				assert.Equal(t, 3, cfg.Report.TopN)
				assert.Equal(t, 4, cfg.Report.ParseWorkers)
			},
		},
		{
			name: "file overrides defaults",
			file: `
server:
  port: 9090
  read_timeout: 5s
report:
  source: uploaded
  top_n: 5
paths:
  reports_dir: /srv/reports
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout, "unset file keys keep defaults")
				assert.Equal(t, SourceUploaded, cfg.Report.Source)
				assert.Equal(t, 5, cfg.Report.TopN)
				assert.Equal(t, "/srv/reports", cfg.Paths.ReportsDir)
			},
		},
		{
			name: "env overrides file",
			file: "server:\n  port: 9090\nreport:\n  source: uploaded\n",
			env: map[string]string{
				"REVCOMPARE_SERVER_PORT":              "7070",
				"REVCOMPARE_REPORT_SOURCE":            "Demo",
				"REVCOMPARE_SECURITY_ALLOWED_ORIGINS": "http://a.example,http://b.example",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 7070, cfg.Server.Port)
				assert.Equal(t, SourceDemo, cfg.Report.Source, "source is normalized")
				assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Security.AllowedOrigins)
			},
		},
		{
			name:    "invalid source",
			env:     map[string]string{"REVCOMPARE_REPORT_SOURCE": "database"},
			wantErr: "invalid report source",
		},
		{
			name:    "invalid port",
			env:     map[string]string{"REVCOMPARE_SERVER_PORT": "70000"},
			wantErr: "invalid server port",
		},
		{
			name:    "unparseable env value",
			env:     map[string]string{"REVCOMPARE_REPORT_TOP_N": "three"},
			wantErr: "failed to load config from env",
		},
		{
			name:    "malformed yaml",
			file:    "server: [",
			wantErr: "failed to load config from file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			path := ""
			if tt.file != "" {
				path = writeConfigFile(t, tt.file)
			}

			cfg, err := LoadFile(path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoad_ExplicitConfigEnv(t *testing.T) {
	path := writeConfigFile(t, "report:\n  max_files: 7\n")
	t.Setenv("REVCOMPARE_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Report.MaxFiles)
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		check   func(*testing.T, *Config)
	}{
		{name: "default is valid", mutate: func(*Config) {}},
		{name: "zero read timeout", mutate: func(c *Config) { c.Server.ReadTimeout = 0 }, wantErr: true},
		{name: "zero write timeout", mutate: func(c *Config) { c.Server.WriteTimeout = 0 }, wantErr: true},
		{name: "cors without origins", mutate: func(c *Config) { c.Security.AllowedOrigins = nil }, wantErr: true},
		{
			name:   "no origins needed without cors",
			mutate: func(c *Config) { c.Security.EnableCORS = false; c.Security.AllowedOrigins = nil },
		},
		{name: "zero top n", mutate: func(c *Config) { c.Report.TopN = 0 }, wantErr: true},
		{name: "zero upload limit", mutate: func(c *Config) { c.Report.MaxUploadBytes = 0 }, wantErr: true},
		{name: "zero max files", mutate: func(c *Config) { c.Report.MaxFiles = 0 }, wantErr: true},
		{
			name:   "workers defaulted",
			mutate: func(c *Config) { c.Report.ParseWorkers = 0 },
			check:  func(t *testing.T, c *Config) { assert.Equal(t, 4, c.Report.ParseWorkers) },
		},
		{
			name:   "unknown log output falls back to stdout",
			mutate: func(c *Config) { c.Logging.Output = "syslog"; c.Logging.FilePath = "" },
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, "stdout", c.Logging.Output)
				assert.Equal(t, "logs/app.log", c.Logging.FilePath)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}
