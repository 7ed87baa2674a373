package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afrotie/ethio/internal/formatter"
	"github.com/afrotie/ethio/internal/logger"
)

// testConfig writes a config whose data dir lives under t.TempDir
func testConfig(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "ethio.yaml")
	content := fmt.Sprintf(`version: "1.0"
storage:
  data_dir: %s
ui:
  theme_hint: light
  color_mode: never
%s`, filepath.Join(dir, "data"), extra)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand("1.2.3", "abc123", "2026-01-01")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		want    string
	}{
		{"release", "1.2.3", "abc123", "ethio 1.2.3 (abc123)"},
		{"dev build", "dev", "none", "ethio development (local-build)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewRootCommand(tt.version, tt.commit, "unknown")
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetArgs([]string{"version"})
			require.NoError(t, cmd.Execute())
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestListingsJSONByCategory(t *testing.T) {
	cfg := testConfig(t, "")
	out, err := execute(t, "--config", cfg, "--no-emoji", "listings", "--category", "cars", "-o", "json")
	require.NoError(t, err)

	var doc formatter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Listings, 1)
	assert.Equal(t, "1", doc.Listings[0].ID)
	assert.False(t, doc.Listings[0].Saved)
}

func TestListingsRejectsUnknownCategory(t *testing.T) {
	cfg := testConfig(t, "")
	_, err := execute(t, "--config", cfg, "listings", "--category", "boats")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid category")
}

func TestListingsSearchQuery(t *testing.T) {
	cfg := testConfig(t, "")
	out, err := execute(t, "--config", cfg, "listings", "macbook", "-o", "json")
	require.NoError(t, err)

	var doc formatter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Listings, 1)
	assert.Equal(t, "3", doc.Listings[0].ID)
}

func TestSavedTogglePersists(t *testing.T) {
	cfg := testConfig(t, "")

	out, err := execute(t, "--config", cfg, "--no-emoji", "saved", "toggle", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved Modern Apartment for Rent")

	out, err = execute(t, "--config", cfg, "saved", "list", "-o", "json")
	require.NoError(t, err)
	var doc formatter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Listings, 1)
	assert.Equal(t, "2", doc.Listings[0].ID)
	assert.True(t, doc.Listings[0].Saved)

	out, err = execute(t, "--config", cfg, "--no-emoji", "saved", "toggle", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed")

	_, err = execute(t, "--config", cfg, "saved", "toggle", "nope")
	assert.Error(t, err)
}

func TestThemeSetAndToggle(t *testing.T) {
	cfg := testConfig(t, "")

	out, err := execute(t, "--config", cfg, "--no-emoji", "theme")
	require.NoError(t, err)
	assert.Contains(t, out, "light", "hint is used until a theme is stored")

	out, err = execute(t, "--config", cfg, "--no-emoji", "theme", "set", "dark")
	require.NoError(t, err)
	assert.Contains(t, out, "dark")

	out, err = execute(t, "--config", cfg, "--no-emoji", "theme", "get")
	require.NoError(t, err)
	assert.Contains(t, out, "dark")

	out, err = execute(t, "--config", cfg, "--no-emoji", "theme", "toggle")
	require.NoError(t, err)
	assert.Contains(t, out, "light")

	_, err = execute(t, "--config", cfg, "theme", "set", "blue")
	assert.Error(t, err)
}

func TestChatsShowsUnread(t *testing.T) {
	cfg := testConfig(t, "")
	out, err := execute(t, "--config", cfg, "--no-emoji", "chats", "-o", "json")
	require.NoError(t, err)

	var doc formatter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.NotEmpty(t, doc.Chats)
	assert.Contains(t, doc.Title, "unread")
}

func TestBrowseRejectsUnknownFormat(t *testing.T) {
	cfg := testConfig(t, "")
	_, err := execute(t, "--config", cfg, "browse", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestDescribePromptOnly(t *testing.T) {
	out, err := execute(t, "describe", "--title", "iPhone 13", "--category", "items", "--features", "128GB", "--prompt")
	require.NoError(t, err)
	assert.Contains(t, out, `"iPhone 13"`)
	assert.Contains(t, out, "128GB")
	assert.Contains(t, out, "Ethiopians")
}

func TestDescribeWithoutCredential(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	t.Setenv("ETHIO_AI_API_KEY", "")
	cfg := testConfig(t, "")

	_, err := execute(t, "--config", cfg, "describe", "--title", "Sofa")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestDescribeRequiresTitle(t *testing.T) {
	_, err := execute(t, "--config", testConfig(t, ""), "describe", "--category", "items")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"title"`)
}

func TestDescribeCheck(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	t.Setenv("ETHIO_AI_API_KEY", "")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"models":[{"name":"llama3.2:latest"}]}`))
	}))
	defer server.Close()

	tests := []struct {
		name    string
		ai      string
		want    string
		wantErr string
	}{
		{"gemini without key", "", "", "not configured"},
		{"ollama model installed", "ai:\n  provider: ollama\n  model: llama3.2\n  endpoint: " + server.URL + "\n", "AI assistant is ready (ollama)", ""},
		{"ollama model missing", "ai:\n  provider: ollama\n  model: mistral\n  endpoint: " + server.URL + "\n", "", "not configured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, "--no-emoji", "--config", testConfig(t, tt.ai), "describe", "--check")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "ethio.yaml")

	out, err := execute(t, "--no-emoji", "config", "init", "--minimal", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)
	assert.FileExists(t, path)

	_, err = execute(t, "config", "init", "--path", path)
	require.Error(t, err, "existing file needs --force")

	out, err = execute(t, "--no-emoji", "--config", path, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
}

func TestConfigShowMasksKey(t *testing.T) {
	cfg := testConfig(t, "ai:\n  api_key: secret-key-1234\n")

	out, err := execute(t, "--config", cfg, "config", "show")
	require.NoError(t, err)
	assert.NotContains(t, out, "secret-key-1234")
	assert.Contains(t, out, "1234")

	out, err = execute(t, "--config", cfg, "config", "show", "--show-secrets", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "secret-key-1234")
}

func TestConfigRejectsNonYAMLPath(t *testing.T) {
	_, err := execute(t, "--config", "settings.toml", "config", "show")
	require.Error(t, err)
}

func TestLogsFiltersByLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ethio.log")
	f, err := logger.OpenFile(path)
	require.NoError(t, err)
	log := logger.NewWithWriter("ui", &verboseFunc{func() bool { return true }}, f, logger.FormatLogfmt)
	log.Info("startup complete")
	log.Warn("offline at startup")
	log.Error("saving listing failed")
	require.NoError(t, f.Close())

	out, err := execute(t, "logs", "--file", path, "--level", "warn")
	require.NoError(t, err)
	assert.NotContains(t, out, "startup complete")
	assert.Contains(t, out, "offline at startup")
	assert.Contains(t, out, "saving listing failed")

	out, err = execute(t, "logs", "--file", path)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "\n"))
}

func TestLogsMissingFile(t *testing.T) {
	_, err := execute(t, "logs", "--file", filepath.Join(t.TempDir(), "none.log"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no log file")
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logLevel
	}{
		{"debug", levelDebug},
		{"INFO", levelInfo},
		{"warning", levelWarn},
		{"Error", levelError},
		{"fatal", levelFatal},
		{"", levelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLogLevel(tt.in), tt.in)
	}
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "", maskSecret(""))
	assert.Equal(t, "***", maskSecret("abc"))
	assert.Equal(t, "****5678", maskSecret("12345678"))
}
