package split

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeLabels(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("img:"+name), 0o644))
	}
}

func mustExtractor(t *testing.T) *GroupExtractor {
	t.Helper()
	g, err := NewGroupExtractor(DefaultGroupPattern)
	require.NoError(t, err)
	return g
}

// countsOf builds Counts directly, groups in the given order.
func countsOf(order []string, byGroup map[string]ClassCounts) *Counts {
	c := &Counts{
		Order:   order,
		ByGroup: byGroup,
		Totals:  make(ClassCounts),
		Files:   make(map[string][]string),
	}
	for _, g := range order {
		c.Totals.Add(byGroup[g])
		c.Files[g] = []string{g + "_1.txt"}
	}
	return c
}
