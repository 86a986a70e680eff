package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"golang.org/x/exp/slog"
)

const timeFormat = "15:04:05.000"

// PrettyHandler печатает записи в одну строку: время, цветной уровень,
// сообщение и атрибуты в JSON.
type PrettyHandler struct {
	opts   slog.HandlerOptions
	out    io.Writer
	mu     *sync.Mutex
	attrs  []groupedAttr
	groups []string
}

// groupedAttr - атрибут вместе с группами, открытыми на момент WithAttrs
type groupedAttr struct {
	groups []string
	attr   slog.Attr
}

func NewPrettyHandler(out io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	h := &PrettyHandler{out: out, mu: &sync.Mutex{}}
	if opts != nil {
		h.opts = *opts
	}
	return h
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make(map[string]any, r.NumAttrs()+len(h.attrs))
	for _, ga := range h.attrs {
		put(fields, ga.groups, ga.attr)
	}
	r.Attrs(func(a slog.Attr) bool {
		put(fields, h.groups, a)
		return true
	})

	var extra string
	if len(fields) > 0 {
		b, err := json.Marshal(fields)
		if err != nil {
			return err
		}
		extra = color.WhiteString(string(b))
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintln(h.out,
		r.Time.Format(timeFormat),
		colorLevel(r.Level),
		color.CyanString(r.Message),
		extra,
	)
	return err
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append([]groupedAttr(nil), h.attrs...)
	for _, a := range attrs {
		clone.attrs = append(clone.attrs, groupedAttr{groups: h.groups, attr: a})
	}
	return &clone
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string(nil), h.groups...), name)
	return &clone
}

func colorLevel(level slog.Level) string {
	s := level.String() + ":"
	switch {
	case level >= slog.LevelError:
		return color.RedString(s)
	case level >= slog.LevelWarn:
		return color.YellowString(s)
	case level >= slog.LevelInfo:
		return color.BlueString(s)
	default:
		return color.MagentaString(s)
	}
}

func put(fields map[string]any, groups []string, a slog.Attr) {
	for _, g := range groups {
		next, ok := fields[g].(map[string]any)
		if !ok {
			next = make(map[string]any)
			fields[g] = next
		}
		fields = next
	}
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		sub := make(map[string]any)
		for _, ga := range v.Group() {
			put(sub, nil, ga)
		}
		fields[a.Key] = sub
		return
	}
	if err, ok := v.Any().(error); ok {
		fields[a.Key] = err.Error()
		return
	}
	fields[a.Key] = v.Any()
}
