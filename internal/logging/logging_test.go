package logging

import "testing"

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		wantErr bool
	}{
		{name: "console info", level: "info", format: "console"},
		{name: "json debug", level: "debug", format: "json"},
		{name: "empty format defaults to console", level: "warn", format: ""},
		{name: "bad level", level: "loud", format: "console", wantErr: true},
		{name: "bad format", level: "info", format: "xml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.level, tt.format)
			if tt.wantErr {
				if err == nil {
					t.Errorf("New(%q, %q) = nil error, want error", tt.level, tt.format)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%q, %q) error: %v", tt.level, tt.format, err)
			}
			if logger == nil {
				t.Fatal("New returned nil logger")
			}
		})
	}
}
