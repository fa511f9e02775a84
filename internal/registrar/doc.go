// Package registrar populates an operation registry from provider modules.
//
// Providers are the Go packages that hold native implementations. Each
// implements Module and, when asked to Register, hands the Registrar its
// handlers (identifier to callable), its declaration manifests, and any
// declarations it prefers to spell out in Go. Populate then checks that
// every declaration is bound to a handler and feeds the registry builder, in
// declaration order. Nothing is discovered by reflection; the list of
// modules is explicit.
package registrar
