package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

// consoleHandler renders compact single-line records for humans:
//
//	15:04:05 INFO  identifier scheduled identifier=9780000010009 priority=1
type consoleHandler struct {
	mu     sync.Mutex
	writer io.Writer
	level  *slog.LevelVar
	attrs  []slog.Attr
	groups []string
	color  bool
}

func newConsoleHandler(w io.Writer, lvl *slog.LevelVar) slog.Handler {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &consoleHandler{writer: w, level: lvl, color: color}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	var buf bytes.Buffer
	buf.Grow(128)

	if !record.Time.IsZero() {
		buf.WriteString(record.Time.Format("15:04:05"))
		buf.WriteByte(' ')
	}
	h.writeLevel(&buf, record.Level)
	buf.WriteByte(' ')
	buf.WriteString(record.Message)

	prefix := strings.Join(h.groups, ".")
	for _, attr := range h.attrs {
		writeAttr(&buf, prefix, attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		writeAttr(&buf, prefix, attr)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.writer.Write(buf.Bytes())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := &consoleHandler{
		writer: h.writer,
		level:  h.level,
		color:  h.color,
		attrs:  append(append([]slog.Attr(nil), h.attrs...), attrs...),
		groups: h.groups,
	}
	return clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := &consoleHandler{
		writer: h.writer,
		level:  h.level,
		color:  h.color,
		attrs:  h.attrs,
		groups: append(append([]string(nil), h.groups...), name),
	}
	return clone
}

const (
	ansiReset  = "\x1b[0m"
	ansiYellow = "\x1b[33m"
	ansiRed    = "\x1b[31m"
	ansiFaint  = "\x1b[2m"
)

func (h *consoleHandler) writeLevel(buf *bytes.Buffer, level slog.Level) {
	label := fmt.Sprintf("%-5s", level.String())
	if !h.color {
		buf.WriteString(label)
		return
	}
	switch {
	case level >= slog.LevelError:
		buf.WriteString(ansiRed + label + ansiReset)
	case level >= slog.LevelWarn:
		buf.WriteString(ansiYellow + label + ansiReset)
	case level < slog.LevelInfo:
		buf.WriteString(ansiFaint + label + ansiReset)
	default:
		buf.WriteString(label)
	}
}

func writeAttr(buf *bytes.Buffer, prefix string, attr slog.Attr) {
	value := attr.Value.Resolve()
	if value.Kind() == slog.KindGroup {
		next := attr.Key
		if prefix != "" {
			next = prefix + "." + next
		}
		for _, nested := range value.Group() {
			writeAttr(buf, next, nested)
		}
		return
	}
	key := attr.Key
	if prefix != "" {
		key = prefix + "." + key
	}
	buf.WriteByte(' ')
	buf.WriteString(key)
	buf.WriteByte('=')
	text := value.String()
	if strings.ContainsAny(text, " \t") {
		fmt.Fprintf(buf, "%q", text)
	} else {
		buf.WriteString(text)
	}
}
