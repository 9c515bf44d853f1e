package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFitContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		current     string
		replacement string
		want        string
	}{
		{"adds both breaks", "\n  <p>a</p>\n", "<p>b</p>", "\n<p>b</p>\n"},
		{"keeps existing breaks", "\n.a {}\n", "\n.b {}\n", "\n.b {}\n"},
		{"adds only missing trailing", "\nx\n", "\ny", "\ny\n"},
		{"crlf", "\r\nx\r\n", "y", "\r\ny\r\n"},
		{"inline block stays inline", "x", "y", "y"},
		{"empty replacement", "\nx\n", "", "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fitContent(tt.current, tt.replacement))
		})
	}
}

func TestRelativeTo(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	assert.Equal(t, "src/App.vue", relativeTo(dir, filepath.Join(dir, "src", "App.vue")))
	assert.Equal(t, "/elsewhere/App.vue", relativeTo(dir, "/elsewhere/App.vue"))
}
