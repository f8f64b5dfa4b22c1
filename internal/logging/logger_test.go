package logging

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_Defaults(t *testing.T) {
	log, err := New(DefaultConfig())
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_InvalidSettings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "loud"
	_, err := New(cfg)
	assert.Error(t, err)

	cfg = DefaultConfig()
	cfg.Format = "xml"
	_, err = New(cfg)
	assert.Error(t, err)
}

func TestNew_FileOutput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Format = "json"
	cfg.File = filepath.Join(t.TempDir(), "logs", "app.log")

	log, err := New(cfg)
	require.NoError(t, err)
	log.Info("hello", zap.String("k", "v"))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(cfg.File)
	require.NoError(t, err)

	var line map[string]any
	require.NoError(t, json.Unmarshal(data, &line))
	assert.Equal(t, "hello", line["message"])
	assert.Equal(t, "v", line["k"])
	assert.Equal(t, "info", line["level"])
}

type syncErrWriter struct{ err error }

func (w syncErrWriter) Write(p []byte) (int, error) { return len(p), nil }
func (w syncErrWriter) Sync() error { return w.err }

func TestConsoleSyncer(t *testing.T) {
	unsyncable := []error{
		&os.PathError{Op: "sync", Path: "/dev/stderr", Err: syscall.EINVAL},
		&os.PathError{Op: "sync", Path: "/dev/stderr", Err: syscall.ENOTTY},
	}
	for _, err := range unsyncable {
		assert.NoError(t, consoleSyncer{syncErrWriter{err}}.Sync())
	}

	diskErr := &os.PathError{Op: "sync", Path: "/dev/stderr", Err: syscall.EIO}
	assert.ErrorIs(t, consoleSyncer{syncErrWriter{diskErr}}.Sync(), syscall.EIO)
	assert.NoError(t, consoleSyncer{syncErrWriter{}}.Sync())
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(zap.New(core)))
	r.Get("/ok", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("ok")) })
	r.Get("/missing", func(w http.ResponseWriter, r *http.Request) { http.NotFound(w, r) })
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) })

	for _, path := range []string{"/ok", "/missing", "/boom"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	require.Equal(t, 3, logs.Len())
	entries := logs.All()
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)

	fields := entries[1].ContextMap()
	assert.Equal(t, "/missing", fields["path"])
	assert.EqualValues(t, http.StatusNotFound, fields["status"])
	assert.NotEmpty(t, fields["request_id"])
}
