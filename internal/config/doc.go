// Package config defines the format-agnostic model of native implementation
// declarations, along with the Loader interface that reads it from
// manifests.
//
// The `config.Model` is what the registrar consumes. Concrete loaders for
// HCL and YAML manifests live in the manifest package.
package config
