package manifest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/specialistvlad/opreg/internal/config"
	"github.com/specialistvlad/opreg/internal/ctxlog"
)

// Loader reads manifests from the filesystem. It implements config.Loader.
type Loader struct{}

// NewLoader creates a new manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every manifest under paths. Directories are walked in lexical
// order; the resulting declarations keep path order, then file order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Manifest loader started.", "path_count", len(paths))

	files, err := l.findAllManifestFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered manifest files.", "count", len(files))

	model := &config.Model{}
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read manifest %s: %w", file, err)
		}
		m, err := Parse(ctx, file, src)
		if err != nil {
			return nil, err
		}
		model.Merge(m)
	}

	logger.Debug("Manifest loading complete.", "files", len(files), "natives", len(model.Natives))
	return model, nil
}

// findAllManifestFiles walks all given paths and returns a flat list of all
// manifest files found, each listed once.
func (l *Loader) findAllManifestFiles(ctx context.Context, paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})

	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				ctxlog.FromContext(ctx).Warn("Manifest path does not exist, skipping.", "path", path)
				continue
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			if !IsManifest(path) {
				return nil, fmt.Errorf("unsupported manifest file %s", path)
			}
			add(path)
			continue
		}

		err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() && IsManifest(p) {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return allFiles, nil
}
