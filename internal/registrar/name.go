package registrar

import "github.com/iancoleman/strcase"

// DefaultName derives an operation name from a handler identifier by
// converting it to snake case: "IsNumber" becomes "is_number", "ToJSON"
// becomes "to_json". Identifiers that are already snake case are kept.
func DefaultName(ident string) string {
	return strcase.ToSnake(ident)
}
