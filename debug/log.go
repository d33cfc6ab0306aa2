package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

var (
	logger  = zap.NewNop().Sugar()
	mu      sync.Mutex
	enabled bool
	logPath string
)

// Enable starts debug logging to ~/.config/go-klavier/debug.log
func Enable() error {
	homeDir, _ := os.UserHomeDir()
	return EnableAt(filepath.Join(homeDir, ".config", "go-klavier", "debug.log"))
}

// EnableAt starts debug logging to the given file, truncating it
func EnableAt(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if enabled {
		return nil
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	// zap appends, start from a clean file each session
	if err := os.WriteFile(path, nil, 0644); err != nil {
		return err
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.CallerKey = ""

	l, err := cfg.Build()
	if err != nil {
		return err
	}

	logger = l.Sugar()
	enabled = true
	logPath = path

	logger.Debugw("=== Debug logging started ===", "category", "debug")
	return nil
}

// Disable stops debug logging
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		return
	}
	_ = logger.Sync()
	logger = zap.NewNop().Sugar()
	enabled = false
	logPath = ""
}

// Enabled reports whether debug logging is active
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Path returns the active log file, or "" when disabled
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// Log writes a message to the debug log
func Log(category, format string, args ...any) {
	mu.Lock()
	l := logger
	mu.Unlock()

	l.Debugw(fmt.Sprintf(format, args...), "category", category)
}

// LogEvery logs only every N calls (use for high-frequency events)
var counters = make(map[string]int)

func LogEvery(n int, category, format string, args ...any) {
	mu.Lock()
	key := category + format
	counters[key]++
	count := counters[key]
	mu.Unlock()

	if count%n == 0 {
		Log(category, format+" (every %d, count=%d)", append(args, n, count)...)
	}
}
