package config_test

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/navikt/airtable-tasklists/pkg/config/v2"

	"github.com/google/go-cmp/cmp"

	"gopkg.in/yaml.v3"
)

var update = flag.Bool("update", false, "update golden files")

func newFakeConfig() config.Config {
	return config.Config{
		Server: config.Server{
			Address: "127.0.0.1",
			Port:    "8080",
		},
		Airtable: config.Airtable{
			APIURL:          "http://localhost:8080/v0",
			BaseID:          "appTEST123",
			Token:           "fake_token",
			CreateOnStartup: false,
			TimeoutSeconds:  10,
		},
		LogSink: config.LogSink{
			Capacity:    50,
			RecentLimit: 10,
		},
		Slack: config.Slack{
			WebhookURL: "http://localhost:8080/webhook",
		},
		LogLevel: "info",
		Debug:    false,
	}
}

func newDefaultConfig() config.Config {
	return config.Config{
		Server: config.Server{
			Address: "0.0.0.0",
			Port:    "3000",
		},
		Airtable: config.Airtable{
			APIURL:          "https://api.airtable.com/v0",
			BaseID:          "appEZQLiRm9cfnVkP",
			CreateOnStartup: true,
		},
		LogSink: config.LogSink{
			Capacity:    100,
			RecentLimit: 20,
		},
		LogLevel: "info",
	}
}

func updateGoldenFiles(t *testing.T, filePath string, cfg config.Config) []byte {
	t.Helper()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		t.Errorf("marshal config: %v", err)
	}

	err = os.WriteFile(filePath, data, 0o600)
	if err != nil {
		t.Errorf("write golden file: %v", err)
	}

	return data
}

func TestValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		config    config.Config
		expectErr bool
	}{
		{
			name:      "Valid config",
			config:    newFakeConfig(),
			expectErr: false,
		},
		{
			name:      "Valid default config",
			config:    newDefaultConfig(),
			expectErr: false,
		},
		{
			name: "Missing token is allowed",
			config: func() config.Config {
				cfg := newFakeConfig()
				cfg.Airtable.Token = ""

				return cfg
			}(),
			expectErr: false,
		},
		{
			name: "Missing base id",
			config: func() config.Config {
				cfg := newFakeConfig()
				cfg.Airtable.BaseID = ""

				return cfg
			}(),
			expectErr: true,
		},
		{
			name: "Invalid port",
			config: func() config.Config {
				cfg := newFakeConfig()
				cfg.Server.Port = "not-a-port"

				return cfg
			}(),
			expectErr: true,
		},
		{
			name: "Invalid webhook url",
			config: func() config.Config {
				cfg := newFakeConfig()
				cfg.Slack.WebhookURL = "not a url"

				return cfg
			}(),
			expectErr: true,
		},
		{
			name: "Invalid log level",
			config: func() config.Config {
				cfg := newFakeConfig()
				cfg.LogLevel = "loud"

				return cfg
			}(),
			expectErr: true,
		},
		{
			name: "Negative timeout",
			config: func() config.Config {
				cfg := newFakeConfig()
				cfg.Airtable.TimeoutSeconds = -1

				return cfg
			}(),
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if err != nil && !tc.expectErr {
				t.Errorf("unexpected error: %v", err)
			}

			if err == nil && tc.expectErr {
				t.Errorf("expected error, got none")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	if *update {
		t.Log("Updating golden files")
		updateGoldenFiles(t, "testdata/config.yaml", newFakeConfig())
		t.Log("Done updating golden files")

		return
	}

	testCases := []struct {
		name      string
		config    string
		path      string
		envPrefix string
		loader    config.Loader
		binder    config.Binder
		envs      map[string]string
		expect    config.Config
		expectErr bool
	}{
		{
			name:      "Standard config",
			config:    "config",
			path:      "testdata",
			loader:    config.NewFileSystemLoader(),
			expect:    newFakeConfig(),
			expectErr: false,
		},
		{
			name:   "Standard config with env overrides",
			config: "config",
			path:   "testdata",
			loader: config.NewFileSystemLoader(),
			expect: func() config.Config {
				cfg := newFakeConfig()
				cfg.Server.Address = "10.0.0.1"

				return cfg
			}(),
			envs: map[string]string{
				"SERVER_ADDRESS": "10.0.0.1",
			},
		},
		{
			name:      "Standard config with env prefix overrides",
			config:    "config",
			path:      "testdata",
			envPrefix: "tasklists",
			loader:    config.NewFileSystemLoader(),
			expect: func() config.Config {
				cfg := newFakeConfig()
				cfg.Server.Address = "10.0.0.1"

				return cfg
			}(),
			envs: map[string]string{
				"TASKLISTS_SERVER_ADDRESS": "10.0.0.1",
			},
		},
		{
			name:      "Standard config with default binder",
			config:    "config",
			path:      "testdata",
			envPrefix: "tasklists",
			loader:    config.NewFileSystemLoader(),
			binder:    config.NewDefaultEnvBinder(),
			expect: func() config.Config {
				cfg := newFakeConfig()
				cfg.Airtable.Token = "pat_from_env"
				cfg.Airtable.BaseID = "appFROMENV"
				cfg.Server.Port = "4000"

				return cfg
			}(),
			envs: map[string]string{
				"AIRTABLE_PAT":     "pat_from_env",
				"AIRTABLE_BASE_ID": "appFROMENV",
				"PORT":             "4000",
			},
		},
		{
			name:   "Missing config falls back to defaults",
			config: "does-not-exist",
			path:   "testdata",
			loader: &config.FileSystemLoader{AllowMissing: true},
			binder: config.NewDefaultEnvBinder(),
			expect: func() config.Config {
				cfg := newDefaultConfig()
				cfg.Airtable.Token = "pat_from_env"

				return cfg
			}(),
			envs: map[string]string{
				"AIRTABLE_PAT": "pat_from_env",
			},
		},
		{
			name:      "Missing config is an error",
			config:    "does-not-exist",
			path:      "testdata",
			loader:    config.NewFileSystemLoader(),
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.envs {
				t.Setenv(k, v)
			}

			cfg, err := tc.loader.Load(tc.config, tc.path, tc.envPrefix, tc.binder)
			if err != nil && !tc.expectErr {
				t.Errorf("unexpected error: %v", err)
			}

			if err == nil && tc.expectErr {
				t.Errorf("expected error, got none")
			}

			if !tc.expectErr {
				if diff := cmp.Diff(tc.expect, cfg); diff != "" {
					t.Errorf("mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func getWorkingDir(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	if err != nil {
		t.Errorf("get working dir: %v", err)
	}

	return wd
}

func TestProcessConfigPath(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		path      string
		expect    config.FileParts
		expectErr bool
	}{
		{
			name: "Valid config path",
			path: "testdata/config.yaml",
			expect: config.FileParts{
				FileName: "config",
				Path:     filepath.Join(getWorkingDir(t), "testdata"),
			},
		},
		{
			name:      "Invalid extension",
			path:      "testdata/config.json",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := config.ProcessConfigPath(tc.path)
			if err != nil && !tc.expectErr {
				t.Errorf("unexpected error: %v", err)
			}

			if err == nil && tc.expectErr {
				t.Errorf("expected error, got none")
			}

			if !tc.expectErr {
				if diff := cmp.Diff(tc.expect, got); diff != "" {
					t.Errorf("mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}
