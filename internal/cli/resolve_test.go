package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	d, err := parseDay("2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), d)

	today, err := parseDay("")
	require.NoError(t, err)
	assert.Equal(t, time.Now().UTC().Format(dayLayout), today.Format(dayLayout))

	_, err = parseDay("10/03/2025")
	assert.Error(t, err)
}

func TestParseRange(t *testing.T) {
	from, to, err := parseRange("2025-03-01", "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", from.Format(dayLayout))
	assert.Equal(t, "2025-03-10", to.Format(dayLayout))

	// Empty --from defaults to a seven day window ending at --to.
	from, to, err = parseRange("", "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-04", from.Format(dayLayout))
	assert.Equal(t, "2025-03-10", to.Format(dayLayout))

	_, _, err = parseRange("bad", "2025-03-10")
	assert.Error(t, err)
}

func TestNewRootCmd_RegistersCommands(t *testing.T) {
	root := NewRootCmd(&App{})

	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"init", "track", "status", "report", "admin", "export"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}
