package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    string
		want    zapcore.Level
		wantErr string
	}{
		{name: "empty defaults to info", give: "", want: zapcore.InfoLevel},
		{name: "debug", give: "debug", want: zapcore.DebugLevel},
		{name: "warn", give: "warn", want: zapcore.WarnLevel},
		{name: "invalid", give: "loud", wantErr: `invalid log level "loud"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseLevel(tt.give)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNamedAndWith(t *testing.T) {
	t.Parallel()

	lggr, logs := TestObserved(t, zapcore.DebugLevel)
	child := lggr.Named("decoder").With("function", "transfer")
	child.Warnw("fallback", "param", "to")

	assert.Equal(t, "decoder", child.Name())
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "fallback", entry.Message)
	assert.Equal(t, "transfer", entry.ContextMap()["function"])
	assert.Equal(t, "to", entry.ContextMap()["param"])
}

func TestNop(t *testing.T) {
	t.Parallel()

	lggr := Nop()
	assert.NotPanics(t, func() {
		lggr.Infow("ignored", "k", "v")
		_ = lggr.Sync()
	})
}

func TestNewWithLevel(t *testing.T) {
	t.Parallel()

	lggr, err := NewWithLevel("error")
	require.NoError(t, err)
	require.NotNil(t, lggr)

	_, err = NewWithLevel("nope")
	require.Error(t, err)
}
