package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"talentflow/internal/logging"
	"talentflow/internal/logging/adapters"
	"talentflow/internal/tenant"
)

func newBufferedLogger(t *testing.T, format string) (*logging.MultiLogger, *bytes.Buffer) {
	t.Helper()
	buf := new(bytes.Buffer)
	logger := logging.NewMultiLogger()
	if err := logger.AddAdapter(adapters.NewStdoutAdapter("buffer", adapters.StdoutConfig{Format: format, Writer: buf})); err != nil {
		t.Fatal(err)
	}
	return logger, buf
}

func TestMultiLogger(t *testing.T) {
	t.Run("it drops entries below the configured level", func(t *testing.T) {
		logger, buf := newBufferedLogger(t, "json")
		logger.SetLevel(logging.WarnLevel)

		logger.Info("ignored")
		logger.Warn("kept")

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 1 {
			t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
		}
		if !strings.Contains(lines[0], `"message":"kept"`) {
			t.Errorf("unexpected line: %s", lines[0])
		}
	})

	t.Run("it adds the tenant scope, fields and error to JSON entries", func(t *testing.T) {
		logger, buf := newBufferedLogger(t, "json")
		ctx := tenant.WithScope(context.Background(), tenant.Scope{OrganizationID: "org-9", UserID: "u-1"})

		logger.WithContext(ctx).
			WithField("application_id", "app-1").
			WithError(errors.New("boom")).
			Error("stage change failed", map[string]interface{}{"stage": "HIRED"})

		var got map[string]interface{}
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid json %q: %v", buf.String(), err)
		}
		for key, want := range map[string]string{
			"level":          "error",
			"message":        "stage change failed",
			"org_id":         "org-9",
			"user_id":        "u-1",
			"application_id": "app-1",
			"error":          "boom",
			"stage":          "HIRED",
		} {
			if got[key] != want {
				t.Errorf("%s = %v, want %s", key, got[key], want)
			}
		}
	})

	t.Run("derived loggers see adapters added to the root", func(t *testing.T) {
		logger := logging.NewMultiLogger()
		derived := logger.WithField("component", "test")

		buf := new(bytes.Buffer)
		if err := logger.AddAdapter(adapters.NewStdoutAdapter("late", adapters.StdoutConfig{Format: "text", Writer: buf})); err != nil {
			t.Fatal(err)
		}
		derived.Info("hello")

		if !strings.Contains(buf.String(), "[INFO] hello component=test") {
			t.Errorf("unexpected output: %q", buf.String())
		}
	})

	t.Run("it refuses duplicate adapter names", func(t *testing.T) {
		logger, _ := newBufferedLogger(t, "json")
		err := logger.AddAdapter(adapters.NewStdoutAdapter("buffer", adapters.StdoutConfig{}))
		if err == nil {
			t.Error("expected an error")
		}
	})
}

func TestFileAdapter(t *testing.T) {
	t.Run("it rotates once the file reaches its maximum size", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "logs", "app.log")

		factory := logging.NewAdapterFactory()
		adapter, err := factory.CreateAdapter(logging.AdapterConfig{
			Name: "file", Type: "file",
			Options: map[string]interface{}{"file_path": path, "max_size": 64, "max_backups": 1},
		})
		if err != nil {
			t.Fatal(err)
		}
		defer adapter.Close()

		logger := logging.NewMultiLogger()
		if err := logger.AddAdapter(adapter); err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 5; i++ {
			logger.Info("a message long enough to fill the file quickly")
		}

		entries, err := os.ReadDir(filepath.Dir(path))
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 2 {
			t.Errorf("got %d files, want current file plus one backup", len(entries))
		}
		if err := adapter.Health(); err != nil {
			t.Errorf("adapter unhealthy: %v", err)
		}
	})

	t.Run("it requires a file path", func(t *testing.T) {
		_, err := logging.NewAdapterFactory().CreateAdapter(logging.AdapterConfig{Name: "file", Type: "file"})
		if err == nil {
			t.Error("expected an error")
		}
	})
}
