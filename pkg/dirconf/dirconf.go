// Package dirconf manages a directory populated with a declared set of
// files and subdirectories, following the convention that numbered
// YAML files (00_defaults.yaml, 10_site.yaml, ...) are configuration
// layers merged in order. It can populate the directory, back up
// files it is about to replace, load and merge the configuration, and
// watch the directory for changes.
package dirconf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"tollan/pkg/maputil"
)

var (
	// ErrNotADirectory is returned when the root path exists but is
	// not a directory.
	ErrNotADirectory = errors.New("path is not a directory")
	// ErrNotEmpty is returned by Populate when the root is a
	// non-empty directory and Force is not set.
	ErrNotEmpty = errors.New("directory is not empty")
	// ErrMissingItem is returned by Populate when a declared item is
	// absent and Create is not set.
	ErrMissingItem = errors.New("missing content item")
	// ErrExists is returned by WriteConfig when the target file
	// exists and overwrite is not set.
	ErrExists = errors.New("file already exists")
	// ErrNoConfigFiles is returned when a load is attempted with no
	// configuration files present.
	ErrNoConfigFiles = errors.New("no config files")
	// ErrInvalidConfig is returned when a configuration file does not
	// hold a top-level mapping.
	ErrInvalidConfig = errors.New("invalid config file")
)

// ItemType tells Populate whether an item is a file or a directory.
type ItemType int

const (
	TypeFile ItemType = iota
	TypeDir
)

// Item declares one entry of the managed directory.
type Item struct {
	// Name identifies the item for ItemPath lookups.
	Name string
	// Path is the item location relative to the root.
	Path string
	Type ItemType
	// Backup makes Populate move an existing file aside instead of
	// leaving it in place.
	Backup bool
}

const backupTimeFormat = "20060102T150405"

var defaultConfigFilePattern = regexp.MustCompile(`^\d+_.+\.ya?ml$`)

// Dir is a managed configuration directory.
type Dir struct {
	root    string
	items   []Item
	pattern *regexp.Regexp
	logger  *zap.Logger
}

// Option configures a Dir.
type Option func(*Dir)

// WithLogger sets the logger; the default is a nop logger.
func WithLogger(l *zap.Logger) Option {
	return func(d *Dir) {
		d.logger = l
	}
}

// WithFilePattern overrides the pattern that recognizes configuration
// files in the root.
func WithFilePattern(re *regexp.Regexp) Option {
	return func(d *Dir) {
		d.pattern = re
	}
}

// New declares a managed directory rooted at root. Nothing is touched
// on disk until Populate or a load is called.
func New(root string, items []Item, opts ...Option) *Dir {
	d := &Dir{
		root:    root,
		items:   items,
		pattern: defaultConfigFilePattern,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Root returns the managed directory path.
func (d *Dir) Root() string {
	return d.root
}

// ItemPath returns the absolute path of the named item.
func (d *Dir) ItemPath(name string) (string, bool) {
	for _, it := range d.items {
		if it.Name == name {
			return filepath.Join(d.root, it.Path), true
		}
	}
	return "", false
}

// PopulateOptions controls Populate.
type PopulateOptions struct {
	// Create makes missing items; without it a missing item is an
	// error.
	Create bool
	// Force allows populating a non-empty directory.
	Force bool
	// Overwrite leaves existing backup-enabled files in place instead
	// of moving them aside.
	Overwrite bool
	// DryRun logs the planned changes without touching the
	// filesystem.
	DryRun bool
}

// Populate validates the root and creates the declared items.
func (d *Dir) Populate(opts PopulateOptions) error {
	info, err := os.Stat(d.root)
	switch {
	case err == nil && !info.IsDir():
		return fmt.Errorf("%s: %w", d.root, ErrNotADirectory)
	case err == nil:
		entries, err := os.ReadDir(d.root)
		if err != nil {
			return fmt.Errorf("read %s: %w", d.root, err)
		}
		if len(entries) > 0 && !opts.Force {
			return fmt.Errorf("%s: %w", d.root, ErrNotEmpty)
		}
	case os.IsNotExist(err):
		if !opts.DryRun {
			if err := os.MkdirAll(d.root, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", d.root, err)
			}
		}
	default:
		return fmt.Errorf("stat %s: %w", d.root, err)
	}

	for _, it := range d.items {
		path := filepath.Join(d.root, it.Path)
		_, err := os.Stat(path)
		exists := err == nil
		if !exists && !opts.Create {
			return fmt.Errorf("%s %q at %s: %w (set Create to create missing items)",
				itemTypeName(it.Type), it.Name, path, ErrMissingItem)
		}
		if !opts.Create {
			continue
		}
		if exists {
			switch {
			case opts.Overwrite:
				d.logger.Debug("leaving existing item in place",
					zap.String("item", it.Name), zap.String("path", path))
			case it.Backup:
				if _, err := d.createBackup(path, opts.DryRun); err != nil {
					return err
				}
				if err := d.createItem(it, path, opts.DryRun); err != nil {
					return err
				}
			}
			continue
		}
		if err := d.createItem(it, path, opts.DryRun); err != nil {
			return err
		}
	}
	return nil
}

func itemTypeName(t ItemType) string {
	if t == TypeDir {
		return "dir"
	}
	return "file"
}

func (d *Dir) createItem(it Item, path string, dryRun bool) error {
	d.logger.Debug("create item",
		zap.String("item", it.Name),
		zap.String("path", path),
		zap.Bool("dry_run", dryRun))
	if dryRun {
		return nil
	}
	if it.Type == TypeDir {
		return os.MkdirAll(path, 0o755)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	// touch: create if missing, keep content if racing creation won.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	return f.Close()
}

// createBackup moves path aside, naming the backup after the file's
// mtime plus a short random suffix so repeated backups within one
// second cannot collide.
func (d *Dir) createBackup(path string, dryRun bool) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	stamp := info.ModTime().Format(backupTimeFormat)
	suffix := uuid.NewString()[:8]
	backup := fmt.Sprintf("%s.%s.%s", path, stamp, suffix)
	d.logger.Info("backup",
		zap.String("from", path),
		zap.String("to", backup),
		zap.Bool("dry_run", dryRun))
	if dryRun {
		return backup, nil
	}
	if err := os.Rename(path, backup); err != nil {
		return "", fmt.Errorf("backup %s: %w", path, err)
	}
	return backup, nil
}

// ConfigFiles returns the configuration files present in the root,
// sorted by their numeric prefix.
func (d *Dir) ConfigFiles() ([]string, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", d.root, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !d.pattern.MatchString(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(d.root, e.Name()))
	}
	sort.Slice(files, func(i, j int) bool {
		return configSortKey(files[i]) < configSortKey(files[j])
	})
	return files, nil
}

func configSortKey(path string) int {
	name := filepath.Base(path)
	prefix, _, _ := strings.Cut(name, "_")
	n, err := strconv.Atoi(prefix)
	if err != nil {
		return 0
	}
	return n
}

// LoadConfig loads and merges the directory's configuration files in
// sorted order. Later files take precedence.
func (d *Dir) LoadConfig() (map[string]any, error) {
	files, err := d.ConfigFiles()
	if err != nil {
		return nil, err
	}
	d.logger.Debug("load config", zap.Strings("files", files))
	return LoadConfigFiles(files)
}

// LoadConfigFiles loads each YAML file and merges them in the given
// order. An empty file counts as an empty mapping; a non-mapping top
// level is an error.
func LoadConfigFiles(paths []string) (map[string]any, error) {
	if len(paths) == 0 {
		return nil, ErrNoConfigFiles
	}
	cfg := make(map[string]any)
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		layer := make(map[string]any)
		if len(data) > 0 {
			var raw any
			if err := yaml.Unmarshal(data, &raw); err != nil {
				return nil, fmt.Errorf("parse %s: %w", p, err)
			}
			switch v := raw.(type) {
			case nil:
			case map[string]any:
				layer = v
			default:
				return nil, fmt.Errorf("%s: no top-level mapping: %w", p, ErrInvalidConfig)
			}
		}
		maputil.RUpdate(cfg, layer)
	}
	return cfg, nil
}

// WriteConfig writes cfg to path as YAML. An existing file is only
// replaced when overwrite is set.
func (d *Dir) WriteConfig(cfg map[string]any, path string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("%s: %w (set overwrite to replace)", path, ErrExists)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	d.logger.Debug("write config", zap.String("path", path))
	return os.WriteFile(path, data, 0o644)
}
