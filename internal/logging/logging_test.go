package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		wantDebug bool
	}{
		{"quiet", false, false},
		{"verbose", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(&buf, tt.verbose)
			log.Debug().Msg("sheet created")
			log.Warn().Msg("header cell skipped")

			out := buf.String()
			if got := strings.Contains(out, "sheet created"); got != tt.wantDebug {
				t.Errorf("debug line present = %v; want %v\n%s", got, tt.wantDebug, out)
			}
			if !strings.Contains(out, "header cell skipped") {
				t.Errorf("warn line missing:\n%s", out)
			}
		})
	}
}

func TestNewWithoutTerminalHasNoColor(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true)
	log.Info().Str("path", "a.xlsx").Msg("document saved")

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("unexpected color codes in %q", buf.String())
	}
}
