// FILE: lixenwraith/translog/level_test.go
package translog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldPublish(t *testing.T) {
	tests := []struct {
		current Level
		level   Level
		want    bool
	}{
		{LevelInfo, LevelFatal, true},
		{LevelInfo, LevelError, true},
		{LevelInfo, LevelInfo, true},
		{LevelInfo, LevelDebug, false},
		{LevelFatal, LevelError, false},
		{LevelDebug, LevelDebug, true},
		{LevelSilent, LevelFatal, false},
		{LevelSilent, LevelDebug, false},
	}

	for _, tt := range tests {
		t.Run(tt.current.String()+"/"+tt.level.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldPublish(tt.current, tt.level))
		})
	}
}

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"fatal", "ERROR", " Warn ", "info", "debug", "silent"} {
		_, err := ParseLevel(name)
		assert.NoError(t, err, name)
		assert.True(t, IsValidLevel(name), name)
	}

	level, err := ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, LevelWarn, level)

	_, err = ParseLevel("verbose")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownLevel))
	assert.False(t, IsValidLevel("verbose"))
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "FATAL", LevelFatal.String())
	assert.Equal(t, "SILENT", LevelSilent.String())
	assert.Equal(t, "LEVEL(9)", Level(9).String())
	assert.Equal(t, []Level{LevelFatal, LevelError, LevelWarn, LevelInfo, LevelDebug}, Levels())
}
