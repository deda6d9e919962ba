package formatters

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/itsderek23/subtle/internal/transcript"
)

func TestDuration(t *testing.T) {
	require.Equal(t, "-", Duration(0))
	require.Equal(t, "-", Duration(-5))
	require.Equal(t, "45s", Duration(45.7))
	require.Equal(t, "3m05s", Duration(185))
	require.Equal(t, "2h14m", Duration(2*3600+14*60+30))
}

func TestTokens(t *testing.T) {
	require.Equal(t, "0", Tokens(0))
	require.Equal(t, "950", Tokens(950))
	require.Equal(t, "12.3k", Tokens(12345))
	require.Equal(t, "4.2M", Tokens(4200000))
}

func TestLOC(t *testing.T) {
	require.Equal(t, "+12/-3", LOC(transcript.LOC{Added: 12, Removed: 3}))
	require.Equal(t, "+0/-0", LOC(transcript.LOC{}))
}
