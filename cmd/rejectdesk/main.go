package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rejectlist/rejectdesk/internal/config"
	"github.com/rejectlist/rejectdesk/internal/domain/session"
	"github.com/rejectlist/rejectdesk/internal/gateway"
	"github.com/rejectlist/rejectdesk/internal/statestore"
	"github.com/rejectlist/rejectdesk/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so logs go to a file. Without one they
	// are dropped rather than scribbled over the UI.
	logWriter := io.Writer(io.Discard)
	if cfg.Log.Path != "" {
		fileWriter, file, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer file.Close()
			logWriter = fileWriter
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureStateDir(cfg.State.Path); err != nil {
		fmt.Fprintf(os.Stderr, "state path error: %v\n", err)
		os.Exit(1)
	}
	store, err := statestore.New(cfg.State.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "state store error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	gw, err := gateway.New(cfg.API.BaseURL, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gateway error: %v\n", err)
		os.Exit(1)
	}

	bcast := session.NewBroadcaster()
	guard := session.NewGuard(store, gw, bcast, logger)
	gw.SetTokenSource(guard)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := guard.Restore(ctx); err != nil {
		logger.Warn("session restore failed", "error", err)
	}
	go guard.Run(ctx)

	app := tui.New(tui.Deps{
		Guard:       guard,
		Gateway:     gw,
		Broadcaster: bcast,
		Logger:      logger,
		PageSize:    cfg.UI.PageSize,
	})

	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithReportFocus())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "ui error: %v\n", err)
		os.Exit(1)
	}
}

func ensureStateDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

const (
	maxLogSizeBytes  = 6 * 1024 * 1024
	keepLogSizeBytes = 5 * 1024 * 1024
)

// logFileWriter appends to one log file and trims it back down when it
// outgrows the cap, keeping the newest entries.
type logFileWriter struct {
	path string
	file *os.File
	mu   sync.Mutex
}

func newLogFileWriter(path string) (*logFileWriter, *os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	writer := &logFileWriter{path: path, file: file}
	if err := writer.truncateIfNeeded(); err != nil {
		return nil, nil, err
	}
	return writer, file, nil
}

func (w *logFileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.file.Write(p)
	if err != nil {
		return n, err
	}
	if err := w.truncateIfNeeded(); err != nil {
		return n, err
	}
	return n, nil
}

func (w *logFileWriter) truncateIfNeeded() error {
	info, err := w.file.Stat()
	if err != nil {
		return err
	}
	size := info.Size()
	if size <= maxLogSizeBytes {
		return nil
	}

	buf := make([]byte, keepLogSizeBytes)
	if _, err := w.file.Seek(size-keepLogSizeBytes, io.SeekStart); err != nil {
		return err
	}
	n, err := w.file.Read(buf)
	if err != nil && err != io.EOF {
		return err
	}
	buf = buf[:n]

	if err := w.file.Truncate(0); err != nil {
		return err
	}
	if _, err := w.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if _, err := w.file.Write(buf); err != nil {
		return err
	}
	_, err = w.file.Seek(0, io.SeekEnd)
	return err
}
