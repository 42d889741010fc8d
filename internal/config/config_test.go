package config

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dshills/textsync/internal/diff"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "debounce_ms = 250\nlog_level = \"debug\"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DebounceMS != 250 {
		t.Errorf("DebounceMS = %d, want 250", cfg.DebounceMS)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if def := Default(); cfg.MaxExactInput != def.MaxExactInput ||
		cfg.MaxExactTotal != def.MaxExactTotal ||
		cfg.FillerLines != def.FillerLines {
		t.Errorf("unset fields not defaulted: %+v", cfg)
	}
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		toml string
		want error
	}{
		{"zero debounce", "debounce_ms = 0", ErrInvalidDebounce},
		{"negative debounce", "debounce_ms = -5", ErrInvalidDebounce},
		{"zero input limit", "max_exact_input = 0", ErrInvalidLimits},
		{"total below input", "max_exact_input = 100\nmax_exact_total = 50", ErrInvalidLimits},
		{"negative filler", "filler_lines = -1", ErrInvalidFiller},
		{"unknown log level", "log_level = \"trace\"", ErrInvalidLogLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.toml)
			_, err := Load(path)
			if !errors.Is(err, tt.want) {
				t.Errorf("Load() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := writeConfig(t, "debounce_ms = [not toml")
	if _, err := Load(path); err == nil {
		t.Error("Load() accepted malformed TOML")
	}
}

func TestConversions(t *testing.T) {
	cfg := Config{DebounceMS: 750, MaxExactInput: 10, MaxExactTotal: 20}

	if got := cfg.Debounce(); got != 750*time.Millisecond {
		t.Errorf("Debounce() = %v, want 750ms", got)
	}
	if got, want := cfg.Limits(), (diff.Limits{MaxInput: 10, MaxTotal: 20}); got != want {
		t.Errorf("Limits() = %+v, want %+v", got, want)
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := writeConfig(t, "debounce_ms = 500\n")

	var mu sync.Mutex
	var loaded []Config
	w, err := Watch(path, func(cfg Config) {
		mu.Lock()
		defer mu.Unlock()
		loaded = append(loaded, cfg)
	})
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("debounce_ms = 200\n"), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		n := len(loaded)
		var last Config
		if n > 0 {
			last = loaded[n-1]
		}
		mu.Unlock()
		if n > 0 && last.DebounceMS == 200 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("timed out waiting for config reload")
}

func TestWatcherSkipsInvalidReload(t *testing.T) {
	path := writeConfig(t, "debounce_ms = 500\n")

	var calls int32
	var mu sync.Mutex
	w, err := Watch(path, func(Config) {
		mu.Lock()
		calls++
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("debounce_ms = -1\n"), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	// Give the watcher time to observe the write. The invalid file must not
	// reach the callback.
	time.Sleep(200 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if calls != 0 {
		t.Errorf("callback invoked %d times for invalid config", calls)
	}
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "textsync.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
