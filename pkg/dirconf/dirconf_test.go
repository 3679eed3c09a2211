package dirconf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func testItems() []Item {
	return []Item{
		{Name: "setup", Path: "10_setup.yaml", Type: TypeFile, Backup: true},
		{Name: "log", Path: "log", Type: TypeDir},
		{Name: "cal", Path: "cal", Type: TypeDir},
	}
}

func TestPopulateCreatesItems(t *testing.T) {
	root := filepath.Join(t.TempDir(), "work")
	d := New(root, testItems())
	require.NoError(t, d.Populate(PopulateOptions{Create: true}))

	p, ok := d.ItemPath("setup")
	require.True(t, ok)
	info, err := os.Stat(p)
	require.NoError(t, err)
	require.False(t, info.IsDir())

	p, ok = d.ItemPath("log")
	require.True(t, ok)
	info, err = os.Stat(p)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestPopulateMissingItemWithoutCreate(t *testing.T) {
	root := t.TempDir()
	d := New(root, testItems())
	err := d.Populate(PopulateOptions{})
	require.ErrorIs(t, err, ErrMissingItem)
}

func TestPopulateNonEmptyNeedsForce(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "stray"), []byte("x"), 0o644))

	d := New(root, testItems())
	err := d.Populate(PopulateOptions{Create: true})
	require.ErrorIs(t, err, ErrNotEmpty)

	require.NoError(t, d.Populate(PopulateOptions{Create: true, Force: true}))
}

func TestPopulateRootMustBeDirectory(t *testing.T) {
	root := filepath.Join(t.TempDir(), "afile")
	require.NoError(t, os.WriteFile(root, []byte("x"), 0o644))

	d := New(root, testItems())
	err := d.Populate(PopulateOptions{Create: true})
	require.ErrorIs(t, err, ErrNotADirectory)
}

func TestPopulateBacksUpExistingFiles(t *testing.T) {
	root := filepath.Join(t.TempDir(), "work")
	d := New(root, testItems())
	require.NoError(t, d.Populate(PopulateOptions{Create: true}))

	setup, _ := d.ItemPath("setup")
	require.NoError(t, os.WriteFile(setup, []byte("keep me\n"), 0o644))

	require.NoError(t, d.Populate(PopulateOptions{Create: true, Force: true}))

	backups, err := filepath.Glob(setup + ".*")
	require.NoError(t, err)
	require.Len(t, backups, 1)
	content, err := os.ReadFile(backups[0])
	require.NoError(t, err)
	require.Equal(t, "keep me\n", string(content))

	// The declared file is recreated empty.
	content, err = os.ReadFile(setup)
	require.NoError(t, err)
	require.Empty(t, content)
}

func TestPopulateOverwriteSkipsBackup(t *testing.T) {
	root := filepath.Join(t.TempDir(), "work")
	d := New(root, testItems())
	require.NoError(t, d.Populate(PopulateOptions{Create: true}))

	setup, _ := d.ItemPath("setup")
	require.NoError(t, os.WriteFile(setup, []byte("keep me\n"), 0o644))

	require.NoError(t, d.Populate(PopulateOptions{Create: true, Force: true, Overwrite: true}))

	backups, err := filepath.Glob(setup + ".*")
	require.NoError(t, err)
	require.Empty(t, backups)
}

func TestPopulateDryRunTouchesNothing(t *testing.T) {
	root := filepath.Join(t.TempDir(), "work")
	d := New(root, testItems())
	require.NoError(t, d.Populate(PopulateOptions{Create: true, DryRun: true}))
	_, err := os.Stat(root)
	require.True(t, os.IsNotExist(err))
}

func TestConfigFilesSortedByNumericPrefix(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"2_b.yaml", "10_c.yml", "1_a.yaml", "README.md", "notes.yaml"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), nil, 0o644))
	}
	d := New(root, nil)
	files, err := d.ConfigFiles()
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	require.Equal(t, []string{"1_a.yaml", "2_b.yaml", "10_c.yml"}, names)
}

func TestLoadConfigMergesInOrder(t *testing.T) {
	root := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0o644))
	}
	write("1_base.yaml", "name: base\nnested:\n  a: 1\n  b: 2\n")
	write("2_site.yaml", "name: site\nnested:\n  b: 20\n  c: 30\n")
	write("3_empty.yaml", "")

	d := New(root, nil)
	cfg, err := d.LoadConfig()
	require.NoError(t, err)
	require.Equal(t, map[string]any{
		"name": "site",
		"nested": map[string]any{
			"a": 1,
			"b": 20,
			"c": 30,
		},
	}, cfg)
}

func TestLoadConfigRejectsNonMapping(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "1_bad.yaml"), []byte("- 1\n- 2\n"), 0o644))
	d := New(root, nil)
	_, err := d.LoadConfig()
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadConfigRequiresFiles(t *testing.T) {
	d := New(t.TempDir(), nil)
	_, err := d.LoadConfig()
	require.ErrorIs(t, err, ErrNoConfigFiles)
}

func TestWriteConfig(t *testing.T) {
	root := t.TempDir()
	d := New(root, nil)
	path := filepath.Join(root, "1_out.yaml")
	cfg := map[string]any{"a": map[string]any{"b": 1}}

	require.NoError(t, d.WriteConfig(cfg, path, false))
	require.ErrorIs(t, d.WriteConfig(cfg, path, false), ErrExists)
	require.NoError(t, d.WriteConfig(cfg, path, true))

	loaded, err := LoadConfigFiles([]string{path})
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}
