package testutil

import "github.com/specialistvlad/opreg/internal/registrar"

// ManifestFile is an in-memory manifest handed to a SimpleModule.
type ManifestFile struct {
	Name string
	Src  string
}

// SimpleModule is a test helper for easily creating a provider module from
// handlers, manifests and in-code declarations.
type SimpleModule struct {
	ModuleName   string
	Handlers     map[string]any
	Manifests    []ManifestFile
	Declarations []registrar.Declaration
}

// Name implements the registrar.Module interface.
func (m *SimpleModule) Name() string {
	if m.ModuleName == "" {
		return "test"
	}
	return m.ModuleName
}

// Register implements the registrar.Module interface.
func (m *SimpleModule) Register(r *registrar.Registrar) {
	for ident, impl := range m.Handlers {
		r.Handle(ident, impl)
	}
	for _, f := range m.Manifests {
		r.Manifest(f.Name, []byte(f.Src))
	}
	for _, d := range m.Declarations {
		r.Declare(d)
	}
}
