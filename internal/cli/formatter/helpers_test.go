package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHMS(t *testing.T) {
	assert.Equal(t, "00:00:00", HMS(0))
	assert.Equal(t, "00:15:30", HMS(930))
	assert.Equal(t, "01:14:59", HMS(4499))
	assert.Equal(t, "27:46:40", HMS(100000))
}

func TestHMSOrRunning(t *testing.T) {
	sec := 930
	assert.Contains(t, HMSOrRunning(&sec), "00:15:30")
	assert.Contains(t, HMSOrRunning(nil), "en curso")
}

func TestOrDash(t *testing.T) {
	s := "Reclamo"
	assert.Equal(t, "Reclamo", OrDash(&s))
	assert.Contains(t, OrDash(nil), "--")
	empty := ""
	assert.Contains(t, OrDash(&empty), "--")
}

func TestHumanTimestamp(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "Just now", HumanTimestamp(now.Add(-10*time.Second)))
	assert.Equal(t, "5m ago", HumanTimestamp(now.Add(-5*time.Minute)))
	assert.Equal(t, "3h ago", HumanTimestamp(now.Add(-3*time.Hour)))
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(
		[]string{"ACTIVIDAD", "TIEMPO"},
		[][]string{
			{"Seguimiento", "00:15:30"},
			{"Bandeja de Correo", "00:05:00"},
		},
	)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, out, "Seguimiento")
	assert.Contains(t, out, "00:05:00")
}

func TestRenderTable_Empty(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil))
}
