package scaffold

import (
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertOptionValue(t *testing.T, opt huh.Option[string], want string) {
	t.Helper()
	assert.Equal(t, want, opt.Value)
}

func TestTopologyOptions(t *testing.T) {
	opts := topologyOptions()

	// flat + two island layouts + custom
	require.Len(t, opts, 4)
	assertOptionValue(t, opts[0], "flat")
	assertOptionValue(t, opts[1], "islands-4")
	assertOptionValue(t, opts[len(opts)-1], customSentinel)
}

func TestUpdatesOptions(t *testing.T) {
	opts := updatesOptions()

	require.Len(t, opts, 4)
	assertOptionValue(t, opts[0], "100")
	assertOptionValue(t, opts[len(opts)-1], customSentinel)
	for _, o := range opts[:len(opts)-1] {
		_, err := parseUpdates(o.Value)
		assert.NoError(t, err, "option %q", o.Value)
	}
}

func TestOutputDirOptions(t *testing.T) {
	opts := outputDirOptions()

	require.Len(t, opts, 3)
	assertOptionValue(t, opts[0], "runs")
	assertOptionValue(t, opts[len(opts)-1], customSentinel)
}

func TestOptionKeyShowsDescription(t *testing.T) {
	opt := option("flat", "One population")
	assert.Equal(t, "flat\n    One population", opt.Key)
}

func TestParseTopology(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"flat", 0, false},
		{"", 0, false},
		{"islands-4", 4, false},
		{"8", 8, false},
		{" 3 ", 3, false},
		{"1", 0, false},
		{"islands-x", 0, true},
		{"-2", 0, true},
		{"ring", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseTopology(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseUpdates(t *testing.T) {
	n, err := parseUpdates("250")
	require.NoError(t, err)
	assert.Equal(t, 250, n)

	_, err = parseUpdates("0")
	require.Error(t, err)

	_, err = parseUpdates("lots")
	require.Error(t, err)
}
