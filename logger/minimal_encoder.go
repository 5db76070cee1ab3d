package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"

	colorDim    = "\x1b[38;5;245m"
	colorName   = "\x1b[38;5;108m"
	colorNumber = "\x1b[38;5;175m"
	colorWarn   = "\x1b[38;5;214m"
	colorError  = "\x1b[38;5;167m"
)

// nolint:gochecknoglobals
var pool = buffer.NewPool()

// minimalEncoder is the console encoder used below -vv.
// Format: "13:04:35  WARN  t.cpp  degraded field  type=::M::Reading field=tiny"
//
// Every field is printed as key=value; context fields added with With come
// after the entry's own fields, sorted by key.
type minimalEncoder struct {
	*zapcore.MapObjectEncoder
	color bool
}

func newMinimalEncoder(color bool) *minimalEncoder {
	return &minimalEncoder{
		MapObjectEncoder: zapcore.NewMapObjectEncoder(),
		color:            color,
	}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	clone := newMinimalEncoder(enc.color)
	for k, v := range enc.Fields {
		clone.Fields[k] = v
	}
	return clone
}

func (enc *minimalEncoder) paint(color, s string) string {
	if !enc.color || s == "" {
		return s
	}
	return color + s + colorReset
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := pool.Get()

	final.AppendString(enc.paint(colorDim, ent.Time.Format("15:04:05")))

	switch {
	case ent.Level == zapcore.WarnLevel:
		final.AppendString("  ")
		final.AppendString(enc.paint(colorBold+colorWarn, "WARN"))
	case ent.Level >= zapcore.ErrorLevel:
		final.AppendString("  ")
		final.AppendString(enc.paint(colorBold+colorError, ent.Level.CapitalString()))
	case ent.Level == zapcore.DebugLevel:
		final.AppendString("  ")
		final.AppendString(enc.paint(colorDim, "DEBUG"))
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(enc.paint(colorName, abbreviateName(ent.LoggerName)))
	}

	final.AppendString("  ")
	final.AppendString(ent.Message)

	if pairs := enc.pairs(fields); len(pairs) > 0 {
		final.AppendString("  ")
		final.AppendString(strings.Join(pairs, " "))
	}

	final.AppendString("\n")
	return final, nil
}

// pairs renders the entry's fields in order, then the context fields.
func (enc *minimalEncoder) pairs(fields []zapcore.Field) []string {
	var out []string
	for _, field := range fields {
		m := zapcore.NewMapObjectEncoder()
		field.AddTo(m)
		value, ok := m.Fields[field.Key]
		if !ok {
			continue
		}
		out = append(out, enc.pair(field.Key, value))
	}

	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, enc.pair(k, enc.Fields[k]))
	}
	return out
}

func (enc *minimalEncoder) pair(key string, value interface{}) string {
	text := fmt.Sprintf("%v", value)
	switch value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		if key == FieldDurationMS {
			text += "ms"
		}
		text = enc.paint(colorNumber, text)
	}
	return key + "=" + text
}

// abbreviateName shortens component names: typegen.cpp -> t.cpp
func abbreviateName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) > 1 && parts[0] != "" {
		return string(parts[0][0]) + "." + strings.Join(parts[1:], ".")
	}
	return name
}
