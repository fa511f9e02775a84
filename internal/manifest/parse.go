package manifest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/opreg/internal/config"
)

// Extensions lists the manifest file extensions Parse understands.
var Extensions = []string{".hcl", ".yaml", ".yml"}

// IsManifest reports whether path has a manifest extension.
func IsManifest(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Parse decodes one manifest. The format is chosen by filename extension.
func Parse(ctx context.Context, filename string, src []byte) (*config.Model, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".hcl":
		return parseHCL(ctx, filename, src)
	case ".yaml", ".yml":
		return parseYAML(ctx, filename, src)
	default:
		return nil, fmt.Errorf("unsupported manifest format %q: expected one of %s", filename, strings.Join(Extensions, ", "))
	}
}
