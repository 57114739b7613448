// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log is a thin layer over go-ethereum's slog based logger.
package log

import (
	"io"
	"log/slog"
	"os"

	ethlog "github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-isatty"
)

// Levels, from the most verbose.
const (
	LevelTrace = ethlog.LevelTrace
	LevelDebug = ethlog.LevelDebug
	LevelInfo  = ethlog.LevelInfo
	LevelWarn  = ethlog.LevelWarn
	LevelError = ethlog.LevelError
	LevelCrit  = ethlog.LevelCrit
)

// LegacyLevelInfo is the default verbosity of the 0-9 scale used by flags.
const LegacyLevelInfo = 3

// Logger writes leveled records with key/value context.
type Logger interface {
	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
}

// WithContext returns a logger that prepends ctx to every record.
// The logger writes through the root logger at the time of the call, so it may
// be created at package init and still honour a later SetDefault.
func WithContext(ctx ...any) Logger {
	return &contextLogger{ctx}
}

type contextLogger struct {
	ctx []any
}

func (l *contextLogger) log(level slog.Level, msg string, ctx []any) {
	ethlog.Root().Log(level, msg, append(append(make([]any, 0, len(l.ctx)+len(ctx)), l.ctx...), ctx...)...)
}

func (l *contextLogger) Trace(msg string, ctx ...any) { l.log(LevelTrace, msg, ctx) }
func (l *contextLogger) Debug(msg string, ctx ...any) { l.log(LevelDebug, msg, ctx) }
func (l *contextLogger) Info(msg string, ctx ...any)  { l.log(LevelInfo, msg, ctx) }
func (l *contextLogger) Warn(msg string, ctx ...any)  { l.log(LevelWarn, msg, ctx) }
func (l *contextLogger) Error(msg string, ctx ...any) { l.log(LevelError, msg, ctx) }

// Info logs at info level through the root logger.
func Info(msg string, ctx ...any) { ethlog.Root().Info(msg, ctx...) }

// Warn logs at warn level through the root logger.
func Warn(msg string, ctx ...any) { ethlog.Root().Warn(msg, ctx...) }

// SetDefault replaces the root logger with one writing to h.
func SetDefault(h slog.Handler) {
	ethlog.SetDefault(ethlog.NewLogger(h))
}

// Init sets the root logger to write to w at the given 0-9 verbosity, and
// returns the level var to adjust it later.
// Terminal output is colored when w is a terminal.
func Init(w io.Writer, verbosity int, json bool) *slog.LevelVar {
	var level slog.LevelVar
	level.Set(ethlog.FromLegacyLevel(verbosity))

	if json {
		SetDefault(JSONHandlerWithLevel(w, &level))
		return &level
	}
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	SetDefault(NewTerminalHandlerWithLevel(w, &level, useColor))
	return &level
}
