package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/On-Jun9/ShutterSort/pkg/types"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

type Logger struct {
	zl      zerolog.Logger
	console io.Writer
	file    *os.File
}

// New creates a logger writing human-readable lines to stdout and, when
// logFilePath is set, to that file as JSON lines (logJSON) or plain text.
// Verbose lowers the level to debug.
func New(logFilePath string, logJSON, verbose bool) (*Logger, error) {
	var file *os.File
	if logFilePath != "" {
		if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err != nil {
			return nil, err
		}

		f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		file = f
	}

	return newLogger(os.Stdout, file, logJSON, verbose), nil
}

// NewWriter creates a logger that only writes to w. Used by tests and callers
// that want to capture output.
func NewWriter(w io.Writer, verbose bool) *Logger {
	return newLogger(w, nil, false, verbose)
}

func newLogger(console io.Writer, file *os.File, logJSON, verbose bool) *Logger {
	writers := []io.Writer{
		zerolog.ConsoleWriter{Out: console, TimeFormat: "15:04:05", NoColor: console != os.Stdout},
	}
	if file != nil {
		if logJSON {
			writers = append(writers, file)
		} else {
			writers = append(writers, zerolog.ConsoleWriter{Out: file, TimeFormat: "2006-01-02 15:04:05", NoColor: true})
		}
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	zl := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &Logger{zl: zl, console: console, file: file}
}

func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func (l *Logger) Debug() *zerolog.Event {
	return l.zl.Debug()
}

func (l *Logger) Info() *zerolog.Event {
	return l.zl.Info()
}

func (l *Logger) Warn() *zerolog.Event {
	return l.zl.Warn()
}

func (l *Logger) Error() *zerolog.Event {
	return l.zl.Error()
}

// LogPlacement writes one line describing the engine's decision for a file.
func (l *Logger) LogPlacement(p types.Placement) {
	switch p.Outcome {
	case types.OutcomeSkipped:
		l.zl.Warn().
			Str("source", p.Source.Path).
			Str("reason", p.Reason).
			Msg("skipped")
	case types.OutcomeCounted:
		l.zl.Debug().
			Str("source", p.Source.Path).
			Str("extension", p.Source.Extension).
			Msg("counted")
	default:
		ev := l.zl.Info().
			Str("source", p.Source.Path).
			Str("dest", p.DestPath).
			Bool("renamed", p.Renamed)
		if p.Date != nil {
			ev = ev.Str("date", p.Date.Time.Format("2006-01-02")).Str("date_source", p.Date.Source)
		}
		ev.Msg(string(p.Outcome))
	}
}

func (l *Logger) Summary(summary types.RunSummary) {
	heading := color.New(color.FgCyan, color.Bold)
	if l.console != os.Stdout {
		heading.DisableColor()
	}

	title := "\n=== ShutterSort Summary ==="
	if summary.DryRun {
		title = "\n=== ShutterSort Summary (dry run) ==="
	}
	heading.Fprintln(l.console, title)

	s := summary.Stats
	fmt.Fprintf(l.console, "Total files:      %d\n", s.Total)
	fmt.Fprintf(l.console, "Skipped:          %d\n", s.Skipped)
	fmt.Fprintf(l.console, "Already present:  %d\n", s.AlreadyPresent)
	fmt.Fprintf(l.console, "Copied:           %d\n", s.Copied)
	fmt.Fprintf(l.console, "Moved:            %d\n", s.Moved)
	fmt.Fprintf(l.console, "Renamed:          %d\n", s.Renamed)
	fmt.Fprintf(l.console, "Duration:         %s\n", summary.Duration.Round(time.Millisecond))

	if len(summary.Extensions) > 0 {
		heading.Fprintln(l.console, "--- Extensions ---")
		for _, ext := range summary.Extensions.Keys() {
			fmt.Fprintf(l.console, "%-16s  %d\n", ext, summary.Extensions[ext])
		}
	}
	heading.Fprintln(l.console, "===========================")
}
