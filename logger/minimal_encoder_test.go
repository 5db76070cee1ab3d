package logger

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func encode(t *testing.T, enc zapcore.Encoder, level zapcore.Level, fields ...zapcore.Field) string {
	t.Helper()
	buf, err := enc.EncodeEntry(zapcore.Entry{
		Level:      level,
		Time:       time.Date(2026, 1, 2, 13, 4, 35, 0, time.UTC),
		LoggerName: "typegen.cpp",
		Message:    "degraded field",
	}, fields)
	require.NoError(t, err)
	return buf.String()
}

// The encoder must never drop a field, whatever its type.
func TestMinimalEncoderNeverDiscardsFields(t *testing.T) {
	fields := []struct {
		field    zapcore.Field
		mustFind string
	}{
		{zap.String(FieldType, "::M::Reading"), "type=::M::Reading"},
		{zap.String(FieldField, "tiny"), "field=tiny"},
		{zap.String(FieldReason, "no i8 conversion"), "reason=no i8 conversion"},
		{zap.Bool("topic", true), "topic=true"},
		{zap.Float64("ratio", 0.8), "ratio=0.8"},
		{zap.Strings("files", []string{"a.itl", "b.itl"}), "files=[a.itl b.itl]"},
		{zap.Int("count", 999), "count=999"},
		{zap.Int64(FieldDurationMS, 12), "duration_ms=12ms"},
		{zap.String("field.with.dots", "x"), "field.with.dots=x"},
		{zap.Error(errors.New("boom")), "error=boom"},
		{zap.Error(nil), ""},
	}

	var all []zapcore.Field
	for _, f := range fields {
		all = append(all, f.field)
	}
	out := encode(t, newMinimalEncoder(false), zapcore.InfoLevel, all...)

	for _, f := range fields {
		if f.mustFind != "" {
			assert.Contains(t, out, f.mustFind)
		}
	}
	assert.NotContains(t, out, "errorVerbose")
}

func TestMinimalEncoderLayout(t *testing.T) {
	out := encode(t, newMinimalEncoder(false), zapcore.InfoLevel, zap.String(FieldBackend, "cpp"))
	assert.Equal(t, "13:04:35  t.cpp  degraded field  backend=cpp\n", out)

	out = encode(t, newMinimalEncoder(false), zapcore.WarnLevel)
	assert.True(t, strings.HasPrefix(out, "13:04:35  WARN  t.cpp"), out)

	out = encode(t, newMinimalEncoder(true), zapcore.ErrorLevel)
	assert.Contains(t, out, colorError)
	assert.Contains(t, out, "ERROR")
}

func TestMinimalEncoderContextFields(t *testing.T) {
	enc := newMinimalEncoder(false)
	enc.AddString(FieldRunID, "r1")
	enc.AddString(FieldComponent, "driver")

	clone := enc.Clone()
	out := encode(t, clone, zapcore.InfoLevel, zap.String(FieldFile, "basic.itl"))
	assert.Contains(t, out, "file=basic.itl component=driver run_id=r1")

	// Adding to the clone leaves the original alone.
	clone.AddString("extra", "1")
	assert.NotContains(t, encode(t, enc, zapcore.InfoLevel), "extra=1")
}

func TestAbbreviateName(t *testing.T) {
	assert.Equal(t, "t.cpp", abbreviateName("typegen.cpp"))
	assert.Equal(t, "driver", abbreviateName("driver"))
}
