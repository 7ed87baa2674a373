package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/yildizm/go-logparser"
)

var (
	logsLevel  string
	logsFollow bool
	logsFile   string
)

// logLevel ranks the level names written to the log file
type logLevel int

const (
	levelDebug logLevel = iota
	levelInfo
	levelWarn
	levelError
	levelFatal
)

func parseLogLevel(s string) logLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG", "TRACE":
		return levelDebug
	case "WARN", "WARNING":
		return levelWarn
	case "ERROR", "ERR":
		return levelError
	case "FATAL", "PANIC", "CRITICAL":
		return levelFatal
	default:
		return levelInfo
	}
}

func (l logLevel) String() string {
	switch l {
	case levelDebug:
		return "DEBUG"
	case levelWarn:
		return "WARN"
	case levelError:
		return "ERROR"
	case levelFatal:
		return "FATAL"
	default:
		return "INFO"
	}
}

type entryParser interface {
	ParseString(s string) ([]logparser.LogEntry, error)
}

func newLogsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the client's log file",
		Long: `Print entries from the log file the interactive client writes.

The file is logfmt. Entries below --level are skipped. With --follow the
command keeps running and prints new entries as they are written; press
Ctrl+C to stop.

Examples:
  ethio logs
  ethio logs --level warn
  ethio logs -f`,
		Args: cobra.NoArgs,
		RunE: runLogs,
	}

	cmd.Flags().StringVarP(&logsLevel, "level", "l", "info", "minimum level (debug, info, warn, error)")
	cmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "keep printing new entries")
	cmd.Flags().StringVar(&logsFile, "file", "", "log file to read (defaults to log.file)")

	return cmd
}

func runLogs(cmd *cobra.Command, args []string) error {
	path := logsFile
	if path == "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path = cfg.LogPath()
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("no log file at %s; run ethio once to create it", path)
	}

	// #nosec G304 - path comes from configuration or the --file flag
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer cleanupFile(file)

	minLevel := parseLogLevel(logsLevel)
	p := logparser.NewWithFormat(logparser.FormatLogfmt)
	out := cmd.OutOrStdout()

	if err := printNewEntries(out, file, p, minLevel); err != nil {
		return err
	}
	if !logsFollow {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer cleanupWatcher(watcher)
	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("failed to watch file: %w", err)
	}

	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Following %s\n", path)
		fmt.Fprintf(os.Stderr, "Press Ctrl+C to stop...\n\n")
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return followLoop(ctx, watcher, func() error {
		return printNewEntries(out, file, p, minLevel)
	})
}

// printNewEntries reads whatever r holds past its current offset and prints
// the entries at or above minLevel
func printNewEntries(out io.Writer, r io.Reader, p entryParser, minLevel logLevel) error {
	scanner := bufio.NewScanner(r)

	var lines []string
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}
	if len(lines) == 0 {
		return nil
	}

	entries, err := p.ParseString(strings.Join(lines, "\n"))
	if err != nil {
		if isVerbose() {
			fmt.Fprintf(os.Stderr, "Failed to parse lines: %v\n", err)
		}
		return nil
	}

	for _, entry := range entries {
		level := parseLogLevel(entry.Level)
		if level < minLevel {
			continue
		}
		fmt.Fprintf(out, "[%s] %-5s %s\n", entry.Timestamp.Format("15:04:05"), level, entry.Message)
	}
	return nil
}

// followLoop calls onWrite for every write event until ctx ends
func followLoop(ctx context.Context, watcher *fsnotify.Watcher, onWrite func() error) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Has(fsnotify.Write) {
				continue
			}
			if err := onWrite(); err != nil && isVerbose() {
				fmt.Fprintf(os.Stderr, "Error handling event: %v\n", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			if isVerbose() {
				fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
			}
		}
	}
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher) {
	if err := watcher.Close(); err != nil && isVerbose() {
		fmt.Fprintf(os.Stderr, "Warning: failed to close watcher: %v\n", err)
	}
}

// cleanupFile safely closes file with error logging
func cleanupFile(file *os.File) {
	if err := file.Close(); err != nil && isVerbose() {
		fmt.Fprintf(os.Stderr, "Warning: failed to close file: %v\n", err)
	}
}
