package version

import "testing"

func TestInfoString(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{
			name: "release build",
			info: Info{Version: "v1.2.0", BuildDate: "2026-01-05T10:00:00Z", GitCommit: "3f2c1ab"},
			want: "v1.2.0 (built 2026-01-05T10:00:00Z, commit 3f2c1ab)",
		},
		{
			name: "local build",
			info: Get(),
			want: "dev (built unknown, commit unknown)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
