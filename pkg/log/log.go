// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	granuleIndent = 4  // spaces to indent granule entries
	nameWidth     = 45 // Base width for the source name
	statusWidth   = 9  // Width for status text
)

// 📊 GranuleStatus is the outcome of one granule in a check or fetch.
type GranuleStatus string

const (
	StatusNew     GranuleStatus = "new"     // found at the source, missing locally
	StatusCopied  GranuleStatus = "copied"  // fetched into the destination
	StatusPresent GranuleStatus = "present" // already in the destination
	StatusFailed  GranuleStatus = "failed"  // fetch failed
)

// 🛰️ GranuleOperation represents one granule for logging
type GranuleOperation struct {
	Source      string
	Destination string
	Status      GranuleStatus
	Err         error
}

// 📦 AcquisitionOperation represents one pass over an acquisition definition
type AcquisitionOperation struct {
	Name    string    // Acquisition name
	Pattern string    // Source pattern
	At      time.Time // Time the directories were expanded for
}

// 🎯 Logger renders granule events on a console and mirrors them to the
// zerolog logger of the context.
type Logger struct {
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer) *Logger {
	return &Logger{console: console}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context, or a logger discarding its
// console output when none is set.
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		return New(io.Discard)
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatGranule formats a granule operation for display
func formatGranule(op GranuleOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch op.Status {
	case StatusCopied:
		symbol = '✓'
		symbolColor = color.FgGreen
	case StatusNew:
		symbol = '+'
		symbolColor = color.FgBlue
	case StatusFailed:
		symbol = '✗'
		symbolColor = color.FgRed
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	line := fmt.Sprintf("%s%s %s %s",
		fmt.Sprintf("%*s", granuleIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, filepath.Base(op.Source)),
		color.New(symbolColor).Sprint(fmt.Sprintf("%-*s", statusWidth, op.Status)))

	if op.Destination != "" {
		line += " " + color.New(color.Faint).Sprint("→ "+op.Destination)
	}
	if op.Err != nil {
		line += " " + color.New(color.FgRed).Sprint(op.Err.Error())
	}
	return line
}

// 📦 Acquisition is one pass over an acquisition. Its lines are written to
// the console as one block by End, so passes running side by side do not
// interleave, and its counts cover its own granules only.
type Acquisition struct {
	logger *Logger
	op     AcquisitionOperation

	mu     sync.Mutex
	lines  bytes.Buffer
	counts map[GranuleStatus]int
	total  int
}

// 📝 StartAcquisition starts a new acquisition pass
func (l *Logger) StartAcquisition(ctx context.Context, op AcquisitionOperation) *Acquisition {
	a := &Acquisition{logger: l, op: op, counts: map[GranuleStatus]int{}}

	fmt.Fprintf(&a.lines, "[checking %s]\n",
		color.New(color.FgCyan).Sprint(op.Name))

	fmt.Fprintf(&a.lines, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Pattern),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(op.At.UTC().Format(time.RFC3339)))

	zerolog.Ctx(ctx).Debug().
		Str("acquisition", op.Name).
		Str("pattern", op.Pattern).
		Time("at", op.At).
		Msg("starting acquisition")
	return a
}

// 📝 LogGranule logs a granule operation
func (a *Acquisition) LogGranule(ctx context.Context, op GranuleOperation) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.counts[op.Status]++
	a.total++
	fmt.Fprintln(&a.lines, formatGranule(op))

	event := zerolog.Ctx(ctx).Debug()
	if op.Err != nil {
		event = zerolog.Ctx(ctx).Error().Err(op.Err)
	}
	event.
		Str("acquisition", a.op.Name).
		Str("source", op.Source).
		Str("destination", op.Destination).
		Str("status", string(op.Status)).
		Msg("granule")
}

// 📝 End writes the pass to the console and returns the number of granules
// logged per status. Calling End again writes nothing.
func (a *Acquisition) End(ctx context.Context) map[GranuleStatus]int {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.lines.Len() > 0 {
		a.logger.mu.Lock()
		_, _ = a.lines.WriteTo(a.logger.console)
		a.logger.mu.Unlock()

		zerolog.Ctx(ctx).Debug().
			Str("acquisition", a.op.Name).
			Int("granules", a.total).
			Int("copied", a.counts[StatusCopied]).
			Int("present", a.counts[StatusPresent]).
			Int("failed", a.counts[StatusFailed]).
			Msg("acquisition complete")
	}

	counts := make(map[GranuleStatus]int, len(a.counts))
	for status, n := range a.counts {
		counts[status] = n
	}
	return counts
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("granulerc")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
