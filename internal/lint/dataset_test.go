package lint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDataset(t *testing.T) {
	root := t.TempDir()
	labels := filepath.Join(root, "labels")
	images := filepath.Join(root, "images")
	writeFile(t, labels, "b.txt", "1 0.5 0.5 0.1 0.1\n")
	writeFile(t, labels, "a.txt", "0 0.5 0.5 0.1 0.1\n")
	writeFile(t, labels, "notes.md", "ignored")
	writeFile(t, images, "a.JPG", "")
	writeFile(t, images, "c.png", "")
	writeFile(t, images, "thumbs.db", "")

	ds, err := LoadDataset(Source{LabelsDir: labels, ImagesDir: images})
	if err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}

	var names []string
	for _, f := range ds.Labels {
		names = append(names, f.Name)
	}
	if diff := cmp.Diff([]string{"a.txt", "b.txt"}, names); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a.JPG", "c.png"}, ds.Images); diff != "" {
		t.Errorf("images mismatch (-want +got):\n%s", diff)
	}
	if !ds.LabelStems()["a"] || !ds.ImageStems()["c"] {
		t.Error("stem sets incomplete")
	}
	if ds.Label(filepath.Join(labels, "b.txt")) == nil {
		t.Error("Label lookup failed")
	}
}

func TestLoadDataset_Ignore(t *testing.T) {
	root := t.TempDir()
	labels := filepath.Join(root, "labels")
	images := filepath.Join(root, "images")
	writeFile(t, labels, "a.txt", "")
	writeFile(t, labels, "classes.txt", "logo\n")
	writeFile(t, images, "a.jpg", "")

	ds, err := LoadDataset(Source{
		LabelsDir: labels,
		ImagesDir: images,
		Ignore:    []string{"classes.txt"},
	})
	if err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}
	if len(ds.Labels) != 1 || ds.Labels[0].Name != "a.txt" {
		t.Errorf("expected only a.txt, got %d labels", len(ds.Labels))
	}
}

func TestLoadDataset_MissingDir(t *testing.T) {
	root := t.TempDir()
	_, err := LoadDataset(Source{
		LabelsDir: filepath.Join(root, "labels"),
		ImagesDir: root,
	})
	if err == nil {
		t.Fatal("expected error for missing labels dir")
	}
}
