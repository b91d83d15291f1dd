package split

import "testing"

func TestGroupExtractor_Default(t *testing.T) {
	t.Parallel()

	g, err := NewGroupExtractor("")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		group string
		ok    bool
	}{
		{"brandA_0037.txt", "brandA", true},
		{"brand_x_12.txt", "brand_x", true},
		{"v_1_2.txt", "v_1", true},
		{"nounderscore.txt", "", false},
		{"brandA_.txt", "", false},
		{"_12.txt", "", false},
	}
	for _, tt := range tests {
		got, ok := g.Group(tt.name)
		if got != tt.group || ok != tt.ok {
			t.Errorf("Group(%q) = %q, %v; want %q, %v", tt.name, got, ok, tt.group, tt.ok)
		}
	}
}

func TestGroupExtractor_Prefix(t *testing.T) {
	t.Parallel()

	g, err := NewGroupExtractor(PrefixGroupPattern)
	if err != nil {
		t.Fatal(err)
	}
	got, ok := g.Group("brand_x_12.txt")
	if !ok || got != "brand" {
		t.Errorf("Group = %q, %v; want brand", got, ok)
	}
}

func TestNewGroupExtractor_Errors(t *testing.T) {
	t.Parallel()

	if _, err := NewGroupExtractor("("); err == nil {
		t.Error("expected error for invalid regexp")
	}
	if _, err := NewGroupExtractor(`^\w+_\d+`); err == nil {
		t.Error("expected error for pattern without capture group")
	}
}
