package logger

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	logger, err := New(true, true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = New(false, false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = NewStderr(false, true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestWithFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	WithFields(zap.New(core), zap.String(FieldReportID, "abc")).Info("saved")

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "abc", entries[0].ContextMap()[FieldReportID])

	assert.NotPanics(t, func() { WithFields(nil).Info("fallback") })
}

func TestRequestFields(t *testing.T) {
	fields := RequestFields("  cv.pdf ", "", true)
	require.Len(t, fields, 2)
	assert.Equal(t, FieldFile, fields[0].Key)
	assert.Equal(t, "cv.pdf", fields[0].String)
	assert.Equal(t, "has_jd", fields[1].Key)

	assert.Empty(t, RequestFields("", " ", false))

	long := RequestFields("cv.pdf", strings.Repeat("backend ", 20), false)
	require.Len(t, long, 2)
	assert.Equal(t, "target_role", long[1].Key)
	assert.Equal(t, maxRoleLength+len("..."), utf8.RuneCountInString(long[1].String))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "héll...", Truncate("  héllo  ", 4))
	assert.Equal(t, "hi", Truncate("hi", 10))
	assert.Equal(t, "", Truncate("hi", 0))
}
