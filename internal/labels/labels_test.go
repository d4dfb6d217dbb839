package labels

import "testing"

func TestResolve(t *testing.T) {
	custom := func(key string) string {
		if key == "status.open" {
			return "Obert"
		}
		return ""
	}

	tests := []struct {
		name     string
		resolver Resolver
		key      string
		want     string
	}{
		{"custom resolver wins", custom, "status.open", "Obert"},
		{"empty custom falls back to defaults", custom, "status.closed", "Cerrado"},
		{"nil resolver uses defaults", nil, "agent.unassigned", "Sin asignar"},
		{"unknown key stays visible", nil, "status.unknown", "status.unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.resolver, tt.key); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}
