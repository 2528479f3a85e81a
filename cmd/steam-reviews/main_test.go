package main

import "testing"

func TestRootCmdFlagDefaults(t *testing.T) {
	cmd := newRootCmd()

	tests := []struct {
		flag string
		want string
	}{
		{"batch-size", "5000"},
		{"max-files", "0"},
		{"date-basis", "created"},
		{"out", "."},
		{"redis", ""},
		{"validate", "false"},
		{"utc", "false"},
		{"log-level", "info"},
		{"pretty", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			f := cmd.Flags().Lookup(tt.flag)
			if f == nil {
				t.Fatalf("Flag %q not registered", tt.flag)
			}
			if f.DefValue != tt.want {
				t.Errorf("Flag %q default = %q, want %q", tt.flag, f.DefValue, tt.want)
			}
		})
	}
}

func TestRootCmdRequiresApp(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err == nil {
		t.Error("Expected an error when --app is missing")
	}
}
