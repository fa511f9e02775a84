// Package signature implements the parameter type signature that identifies
// one overload of an operation.
//
// A Signature is an immutable, ordered tuple of type tokens. Two signatures
// are equal when they have the same arity and pairwise equal tokens. Every
// signature has a generic form of the same arity in which each slot is the
// dynamic-value token; all signatures of one arity share that form, which is
// what lets a registry fall back to a type-erased implementation.
package signature

import (
	"hash/fnv"
	"strings"
	"sync"

	"github.com/specialistvlad/opreg/internal/optype"
	"github.com/zclconf/go-cty/cty"
)

// Signature is safe for concurrent use. The zero value is not usable; build
// one with Of or OfValues.
type Signature struct {
	slots []cty.Type
	hash  uint64

	genericOnce sync.Once
	generic     *Signature
}

// Of builds a signature from the given tokens. The slice is copied.
func Of(slots ...cty.Type) *Signature {
	s := &Signature{slots: append([]cty.Type(nil), slots...)}
	s.hash = hashSlots(s.slots)
	return s
}

// OfValues builds the signature of the static types of vals.
func OfValues(vals ...cty.Value) *Signature {
	slots := make([]cty.Type, len(vals))
	for i, v := range vals {
		slots[i] = v.Type()
	}
	return Of(slots...)
}

// Arity is the number of parameter slots.
func (s *Signature) Arity() int {
	return len(s.slots)
}

// Slot returns the token at position i.
func (s *Signature) Slot(i int) cty.Type {
	return s.slots[i]
}

// Slots returns a copy of the tokens.
func (s *Signature) Slots() []cty.Type {
	return append([]cty.Type(nil), s.slots...)
}

// Hash is consistent with Equals: equal signatures hash equally.
func (s *Signature) Hash() uint64 {
	return s.hash
}

// Equals reports structural, order-sensitive equality.
func (s *Signature) Equals(other *Signature) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil || len(s.slots) != len(other.slots) || s.hash != other.hash {
		return false
	}
	for i := range s.slots {
		if !s.slots[i].Equals(other.slots[i]) {
			return false
		}
	}
	return true
}

// Generic returns the signature of the same arity whose slots are all the
// dynamic-value token. It is computed on first use and cached.
func (s *Signature) Generic() *Signature {
	s.genericOnce.Do(func() {
		if s.IsGeneric() {
			s.generic = s
			return
		}
		slots := make([]cty.Type, len(s.slots))
		for i := range slots {
			slots[i] = optype.Dynamic
		}
		s.generic = Of(slots...)
	})
	return s.generic
}

// IsGeneric reports whether every slot is the dynamic-value token. The empty
// signature is its own generic form.
func (s *Signature) IsGeneric() bool {
	for _, t := range s.slots {
		if !optype.IsDynamic(t) {
			return false
		}
	}
	return true
}

// String renders the signature as "(int, double)".
func (s *Signature) String() string {
	if s == nil {
		return "()"
	}
	var b strings.Builder
	b.WriteByte('(')
	for i, t := range s.slots {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(optype.Name(t))
	}
	b.WriteByte(')')
	return b.String()
}

// hashSlots combines per-slot hashes in order. Equal tokens always share a
// friendly name; unequal tokens may collide, so callers must still compare
// with Equals.
func hashSlots(slots []cty.Type) uint64 {
	h := uint64(len(slots))
	for _, t := range slots {
		f := fnv.New64a()
		if t == cty.NilType {
			f.Write([]byte("nil"))
		} else {
			f.Write([]byte(t.FriendlyName()))
		}
		h = h*31 + f.Sum64()
	}
	return h
}
