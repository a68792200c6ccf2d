package decimals

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcontractkit/deal-console/codec/decimals"
	"github.com/smartcontractkit/deal-console/engine/console/config"
	"github.com/smartcontractkit/deal-console/pkg/logger"
)

func TestNewCommand_Structure(t *testing.T) {
	t.Parallel()

	cmd, err := NewCommand(Config{Logger: logger.Nop(), Settings: &config.Config{DefaultDecimals: 18}})
	require.NoError(t, err)

	assert.Equal(t, "decimals", cmd.Use)
	assert.NotEmpty(t, cmd.Long)

	subs := cmd.Commands()
	uses := make([]string, len(subs))
	for i, sc := range subs {
		uses[i] = sc.Name()
	}
	assert.ElementsMatch(t, []string{"format", "parse"}, uses)

	_, err = NewCommand(Config{Logger: logger.Nop()})
	require.ErrorContains(t, err, "missing required fields: Settings")
}

func TestDecimalsCommands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    []string
		want    string
		wantErr error
	}{
		{name: "format", give: []string{"format", "1500000", "-d", "6"}, want: "1.5\n"},
		{name: "format default decimals", give: []string{"format", "1500000000000000000"}, want: "1.5\n"},
		{name: "format shortened", give: []string{"format", "1234567891"}, want: "0.00000000123456...\n"},
		{name: "format exact", give: []string{"format", "1234567891", "--exact"}, want: "0.000000001234567891\n"},
		{name: "format zero decimals", give: []string{"format", "42", "-d", "0"}, want: "42\n"},
		{name: "format invalid", give: []string{"format", "1.5"}, wantErr: decimals.ErrInvalidAmount},
		{name: "parse", give: []string{"parse", "1.5", "-d", "6"}, want: "1500000\n"},
		{name: "parse default decimals", give: []string{"parse", "2"}, want: "2000000000000000000\n"},
		{name: "parse too precise", give: []string{"parse", "0.0000001", "-d", "6"}, wantErr: decimals.ErrPrecisionLoss},
		{name: "parse negative", give: []string{"parse", "--", "-1"}, wantErr: decimals.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd, err := NewCommand(Config{Logger: logger.Nop(), Settings: &config.Config{DefaultDecimals: 18}})
			require.NoError(t, err)
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true

			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetArgs(tt.give)

			err = cmd.Execute()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.String())
		})
	}
}
