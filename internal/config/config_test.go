package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jeduden/tidylabel/internal/rule"
	"gopkg.in/yaml.v3"

	// Import all rule packages so their init() functions register rules.
	_ "github.com/jeduden/tidylabel/internal/rules/duplicatebbox"
	_ "github.com/jeduden/tidylabel/internal/rules/emptydetection"
	_ "github.com/jeduden/tidylabel/internal/rules/invalidclass"
	_ "github.com/jeduden/tidylabel/internal/rules/malformedrecord"
	_ "github.com/jeduden/tidylabel/internal/rules/orphanimage"
	_ "github.com/jeduden/tidylabel/internal/rules/orphanlabel"
)

func writeConfig(t *testing.T, yml string) string {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, FileName)
	if err := os.WriteFile(cfgPath, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	return cfgPath
}

// --- YAML parsing tests ---

func TestParseValidYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
images: data/images
labels: data/labels
image-extensions: [.png, .jpg]
classes: [0, 1, 2]
ignore:
  - classes.txt
split:
  out: data/split
  val-percent: 15
  test-percent: 5.5
  group-pattern: '^(.+?)_'
rules:
  duplicate-bbox:
    normalize-whitespace: true
  orphan-image: false
  invalid-class: true
overrides:
  - datasets: ["**/test/labels"]
    rules:
      empty-detection: false
`))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	t.Run("dataset", func(t *testing.T) {
		if cfg.Images != "data/images" || cfg.Labels != "data/labels" {
			t.Errorf("unexpected dirs: %q %q", cfg.Images, cfg.Labels)
		}
		if len(cfg.ImageExts()) != 2 || cfg.ImageExts()[0] != ".png" {
			t.Errorf("unexpected image extensions: %v", cfg.ImageExts())
		}
		set := cfg.ClassSet()
		if len(set) != 3 || !set[2] {
			t.Errorf("unexpected class set: %v", set)
		}
		if len(cfg.Ignore) != 1 || cfg.Ignore[0] != "classes.txt" {
			t.Errorf("unexpected ignore: %v", cfg.Ignore)
		}
	})

	t.Run("split", func(t *testing.T) {
		if cfg.Split.Out != "data/split" {
			t.Errorf("out = %q", cfg.Split.Out)
		}
		if cfg.Split.ValPercentOrDefault() != 15 {
			t.Errorf("val-percent = %v", cfg.Split.ValPercentOrDefault())
		}
		if cfg.Split.TestPercentOrDefault() != 5.5 {
			t.Errorf("test-percent = %v", cfg.Split.TestPercentOrDefault())
		}
		if cfg.Split.GroupPatternOrDefault() != `^(.+?)_` {
			t.Errorf("group-pattern = %q", cfg.Split.GroupPatternOrDefault())
		}
	})

	t.Run("rules", func(t *testing.T) {
		if len(cfg.Rules) != 3 {
			t.Fatalf("expected 3 rules, got %d", len(cfg.Rules))
		}
		if cfg.Rules["duplicate-bbox"].Settings["normalize-whitespace"] != true {
			t.Error("duplicate-bbox normalize-whitespace should be true")
		}
		if cfg.Rules["orphan-image"].Enabled {
			t.Error("orphan-image should be disabled")
		}
		if !cfg.ExplicitRules["invalid-class"] {
			t.Error("invalid-class should be explicit")
		}
	})

	t.Run("overrides", func(t *testing.T) {
		eff := Effective(cfg, "data/split/test/labels")
		if eff["empty-detection"].Enabled {
			t.Error("empty-detection should be disabled for test partition")
		}
		eff = Effective(cfg, "data/split/train/labels")
		if _, ok := eff["empty-detection"]; ok {
			t.Error("override should not apply to train partition")
		}
	})
}

func TestSplitDefaults(t *testing.T) {
	var s Split
	if s.ValPercentOrDefault() != DefaultValPercent {
		t.Errorf("val default = %v", s.ValPercentOrDefault())
	}
	if s.TestPercentOrDefault() != DefaultTestPercent {
		t.Errorf("test default = %v", s.TestPercentOrDefault())
	}
	if s.GroupPatternOrDefault() != DefaultGroupPattern {
		t.Errorf("pattern default = %q", s.GroupPatternOrDefault())
	}
	zero := 0.0
	s.TestPercent = &zero
	if s.TestPercentOrDefault() != 0 {
		t.Error("explicit zero should be kept")
	}
}

func TestEmptyConfigHasDefaults(t *testing.T) {
	cfg := &Config{}
	if len(cfg.ImageExts()) != 3 {
		t.Errorf("expected default extensions, got %v", cfg.ImageExts())
	}
	if cfg.ClassSet() != nil {
		t.Error("expected nil class set")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		yml     string
		wantErr bool
	}{
		{"empty", "", false},
		{"rules only", "rules:\n  orphan-image: false\n", false},
		{"unknown key", "colour: blue\n", true},
		{"percent too large", "split:\n  val-percent: 150\n", true},
		{"negative class", "classes: [-1]\n", true},
		{"class not int", "classes: [a]\n", true},
		{"bad extension", "image-extensions: [jpg]\n", true},
		{"rule not bool or map", "rules:\n  orphan-image: 3\n", true},
		{"unknown split key", "split:\n  ratio: 3\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate([]byte(tt.yml))
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadRejectsSchemaViolation(t *testing.T) {
	_, err := Load(writeConfig(t, "split:\n  test-percent: 101\n"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "invalid config") {
		t.Errorf("error = %q", err)
	}
}

func TestRuleCfgForms(t *testing.T) {
	tests := []struct {
		name         string
		yml          string
		wantEnabled  bool
		wantSettings bool
	}{
		{"false", "r: false\n", false, false},
		{"true", "r: true\n", true, false},
		{"mapping", "r:\n  normalize-whitespace: true\n", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m map[string]RuleCfg
			if err := yaml.Unmarshal([]byte(tt.yml), &m); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			rc := m["r"]
			if rc.Enabled != tt.wantEnabled {
				t.Errorf("Enabled = %v, want %v", rc.Enabled, tt.wantEnabled)
			}
			if (rc.Settings != nil) != tt.wantSettings {
				t.Errorf("Settings = %v", rc.Settings)
			}
		})
	}
}

func TestRuleCfgInvalid(t *testing.T) {
	var m map[string]RuleCfg
	if err := yaml.Unmarshal([]byte("r: [1, 2]\n"), &m); err == nil {
		t.Error("expected error for sequence rule config")
	}
}

func TestInvalidYAMLReturnsError(t *testing.T) {
	if _, err := Load(writeConfig(t, "rules: [\n")); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoadNonexistentFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatal("expected error for nonexistent file")
	}
}

// --- Discover tests ---

func TestDiscoverFindsInParentDir(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, FileName), []byte("rules: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(root, "data", "labels")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := Discover(sub)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	want, _ := filepath.Abs(filepath.Join(root, FileName))
	if got != want {
		t.Errorf("Discover = %q, want %q", got, want)
	}
}

func TestDiscoverStopsAtGitBoundary(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, FileName), []byte("rules: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	repo := filepath.Join(root, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := Discover(repo)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if got != "" {
		t.Errorf("expected no config beyond .git boundary, got %q", got)
	}
}

// --- Defaults / Merge tests ---

func TestDefaultsAllRulesEnabled(t *testing.T) {
	cfg := Defaults()
	all := rule.All()
	if len(cfg.Rules) != len(all) {
		t.Fatalf("expected %d rules, got %d", len(all), len(cfg.Rules))
	}
	for name, rc := range cfg.Rules {
		if !rc.Enabled {
			t.Errorf("rule %q should be enabled by default", name)
		}
	}
}

func TestMergeNilLoaded(t *testing.T) {
	merged := Merge(Defaults(), nil)
	if !merged.Rules["duplicate-bbox"].Enabled {
		t.Error("duplicate-bbox should be enabled")
	}
}

func TestMergeOverridesRulesAndKeepsDataset(t *testing.T) {
	loaded := &Config{
		Labels:        "labels",
		Classes:       []int{0},
		Rules:         map[string]RuleCfg{"orphan-image": {Enabled: false}},
		ExplicitRules: map[string]bool{"orphan-image": true},
	}
	merged := Merge(Defaults(), loaded)

	if merged.Rules["orphan-image"].Enabled {
		t.Error("orphan-image should be disabled")
	}
	if !merged.Rules["orphan-label"].Enabled {
		t.Error("orphan-label should keep its default")
	}
	if merged.Labels != "labels" || len(merged.Classes) != 1 {
		t.Errorf("dataset settings lost: %+v", merged)
	}
	if !merged.ExplicitRules["orphan-image"] {
		t.Error("explicit rules lost")
	}
}

func TestApplyCategories(t *testing.T) {
	rules := map[string]RuleCfg{
		"orphan-image":     {Enabled: true},
		"orphan-label":     {Enabled: true},
		"malformed-record": {Enabled: true},
	}
	categories := map[string]bool{"pairing": false}
	ruleCategory := func(name string) string {
		if strings.HasPrefix(name, "orphan-") {
			return "pairing"
		}
		return "records"
	}
	explicit := map[string]bool{"orphan-label": true}

	result := ApplyCategories(rules, categories, ruleCategory, explicit)

	if result["orphan-image"].Enabled {
		t.Error("orphan-image should be disabled by its category")
	}
	if !result["orphan-label"].Enabled {
		t.Error("explicit orphan-label should stay enabled")
	}
	if !result["malformed-record"].Enabled {
		t.Error("malformed-record should stay enabled")
	}
}

func TestEffectiveExplicitRules(t *testing.T) {
	cfg := &Config{
		ExplicitRules: map[string]bool{"orphan-image": true},
		Overrides: []Override{
			{Datasets: []string{"*/valid/*"}, Rules: map[string]RuleCfg{"invalid-class": {Enabled: false}}},
		},
	}
	got := EffectiveExplicitRules(cfg, "split/valid/labels")
	if !got["orphan-image"] || !got["invalid-class"] {
		t.Errorf("unexpected explicit set: %v", got)
	}
}

// --- MarshalYAML / DumpDefaults tests ---

func TestMarshalYAML_Forms(t *testing.T) {
	tests := []struct {
		rc   RuleCfg
		want string
	}{
		{RuleCfg{Enabled: false}, "false\n"},
		{RuleCfg{Enabled: true}, "true\n"},
		{RuleCfg{Enabled: true, Settings: map[string]any{"normalize-whitespace": true}}, "normalize-whitespace: true\n"},
	}
	for _, tt := range tests {
		data, err := yaml.Marshal(tt.rc)
		if err != nil {
			t.Fatalf("marshal error: %v", err)
		}
		if string(data) != tt.want {
			t.Errorf("got %q, want %q", data, tt.want)
		}
	}
}

func TestDumpDefaults_ValidatesAndRoundTrips(t *testing.T) {
	cfg := DumpDefaults()

	all := rule.All()
	if len(cfg.Rules) != len(all) {
		t.Fatalf("expected %d rules, got %d", len(all), len(cfg.Rules))
	}
	if cfg.Rules["duplicate-bbox"].Settings["normalize-whitespace"] != false {
		t.Error("duplicate-bbox default settings missing")
	}
	if cfg.Rules["orphan-image"].Settings != nil {
		t.Error("orphan-image is not configurable and should have no settings")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := Validate(data); err != nil {
		t.Fatalf("dumped defaults fail validation: %v\n%s", err, data)
	}

	loaded, err := Load(writeConfig(t, string(data)))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Split.ValPercentOrDefault() != DefaultValPercent {
		t.Errorf("val-percent = %v", loaded.Split.ValPercentOrDefault())
	}
	if len(loaded.Rules) != len(all) {
		t.Errorf("expected %d rules after round-trip, got %d", len(all), len(loaded.Rules))
	}
}
