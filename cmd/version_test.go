package cmd

import "testing"

func TestResolveVersion(t *testing.T) {
	tests := []struct {
		linked, module, want string
	}{
		{"1.2.0", "", "v1.2.0"},
		{"v1.2", "", "v1.2.0"},
		{"(devel)", "v0.3.1", "v0.3.1"},
		{"(devel)", "(devel)", "(devel)"},
		{"", "v0.4.0-rc.1", "v0.4.0-rc.1 (pre-release)"},
	}
	for _, tt := range tests {
		if got := resolveVersion(tt.linked, tt.module); got != tt.want {
			t.Errorf("resolveVersion(%q, %q) = %q, want %q", tt.linked, tt.module, got, tt.want)
		}
	}
}
