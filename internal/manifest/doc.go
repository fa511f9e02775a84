// Package manifest reads native implementation declarations from HCL and
// YAML manifests into the format-agnostic config.Model.
//
// A manifest declares, for each Go handler identifier, the operation name it
// implements, its category, and its parameter and result types. The type
// syntax is the same in both formats: bare keywords (`int`, `double`,
// `number`, `string`, `bool`, `any`) and the constructors `list`, `map`,
// `set` and `object`.
package manifest
