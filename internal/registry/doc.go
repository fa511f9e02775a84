// Package registry resolves built-in operations for the compiler.
//
// A Registry maps an operation name and a static parameter signature onto
// the native implementation a call site should bind to. Names live in two
// independent namespaces: ordinary calls and guard expressions. Each name
// owns an OverloadSet of candidates keyed by signature. Resolution prefers
// an exact signature match and otherwise falls back to the candidate
// registered at the signature's generic form, logging that a specialization
// was missed.
//
// Registries are built in two phases. A Builder collects registrations during
// startup and Build freezes them into a Registry, which is read-only and safe
// for concurrent queries from then on.
package registry
