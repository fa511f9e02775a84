package registry

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/opreg/internal/signature"
)

var (
	// ErrUnknownOperation matches errors for names absent from a namespace.
	ErrUnknownOperation = errors.New("unknown operation")
	// ErrUnresolvedOverload matches errors for names that exist but have no
	// candidate for the requested signature or its generic form.
	ErrUnresolvedOverload = errors.New("unresolved overload")
	// ErrDuplicate matches re-registrations rejected by DuplicateReject policy.
	ErrDuplicate = errors.New("duplicate registration")
	// ErrFrozen is returned by Builder.Register after Build.
	ErrFrozen = errors.New("registry builder already built")
)

// UnknownOperationError reports a name missing from the selected namespace.
type UnknownOperationError struct {
	Name     string
	Arity    int
	Category Category
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("no %s operation named '%s'/%d", e.Category, e.Name, e.Arity)
}

func (e *UnknownOperationError) Is(target error) bool {
	return target == ErrUnknownOperation
}

// UnresolvedOverloadError reports that neither the requested signature nor
// its generic form has a candidate.
type UnresolvedOverloadError struct {
	Name      string
	Category  Category
	Signature *signature.Signature
}

func (e *UnresolvedOverloadError) Error() string {
	return fmt.Sprintf("no %s overload of '%s'/%d accepts %s", e.Category, e.Name, e.Signature.Arity(), e.Signature)
}

func (e *UnresolvedOverloadError) Is(target error) bool {
	return target == ErrUnresolvedOverload
}

// DuplicateError reports a second registration at an existing signature.
type DuplicateError struct {
	Category Category
	Existing *Descriptor
	Incoming *Descriptor
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s operation '%s'%s registered twice: by %s and by %s",
		e.Category, e.Incoming.Name, e.Incoming.Params, e.Existing.Qualified(), e.Incoming.Qualified())
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}
