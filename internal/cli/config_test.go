package cli

import (
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid minimal",
			cfg:  Config{Patterns: []string{"x"}},
		},
		{
			name:    "no pattern",
			cfg:     Config{},
			wantErr: "no pattern",
		},
		{
			name:    "fixed and pcre conflict",
			cfg:     Config{Patterns: []string{"x"}, Fixed: true, PCRE: true},
			wantErr: "cannot use",
		},
		{
			name:    "negative before context",
			cfg:     Config{Patterns: []string{"x"}, ContextBefore: -1},
			wantErr: "invalid context",
		},
		{
			name:    "negative after context",
			cfg:     Config{Patterns: []string{"x"}, ContextAfter: -2},
			wantErr: "invalid context",
		},
		{
			name:    "count and files conflict",
			cfg:     Config{Patterns: []string{"x"}, CountOnly: true, FilesOnly: true},
			wantErr: "cannot use",
		},
		{
			name:    "watch without paths",
			cfg:     Config{Patterns: []string{"x"}, WatchMode: true},
			wantErr: "--watch requires",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ColorMode
		wantErr bool
	}{
		{"auto", ColorAuto, false},
		{"", ColorAuto, false},
		{"always", ColorAlways, false},
		{"never", ColorNever, false},
		{"rainbow", ColorAuto, true},
	}

	for _, tt := range tests {
		got, err := ParseColorMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColorMode(%q) error = %v", tt.in, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseColorMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConfig_ResolveCase(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"explicit ignore case", Config{IgnoreCase: true, Patterns: []string{"Foo"}}, true},
		{"smart case all lower", Config{SmartCase: true, Patterns: []string{"foo", "bar"}}, true},
		{"smart case with upper", Config{SmartCase: true, Patterns: []string{"foo", "Bar"}}, false},
		{"neither", Config{Patterns: []string{"foo"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.resolveCase(); got != tt.want {
				t.Errorf("resolveCase() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	if got := exitCode(true, false); got != 0 {
		t.Errorf("match, no error: %d, want 0", got)
	}
	if got := exitCode(true, true); got != 0 {
		t.Errorf("match with error still reports match: %d, want 0", got)
	}
	if got := exitCode(false, false); got != 1 {
		t.Errorf("no match: %d, want 1", got)
	}
	if got := exitCode(false, true); got != 2 {
		t.Errorf("no match with error: %d, want 2", got)
	}
}
