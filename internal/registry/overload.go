package registry

import (
	"sort"

	"github.com/specialistvlad/opreg/internal/signature"
	"github.com/zclconf/go-cty/cty"
)

// OverloadSet holds every registered implementation of one operation name
// within one namespace. Candidates are bucketed by signature hash and told
// apart with Signature.Equals.
type OverloadSet struct {
	name     string
	category Category
	buckets  map[uint64][]*Descriptor
	count    int
	diag     *diagnostics
}

func newOverloadSet(name string, category Category, diag *diagnostics) *OverloadSet {
	return &OverloadSet{
		name:     name,
		category: category,
		buckets:  make(map[uint64][]*Descriptor),
		diag:     diag,
	}
}

// Name is the operation name shared by all candidates.
func (s *OverloadSet) Name() string {
	return s.name
}

// Len is the number of distinct signatures registered.
func (s *OverloadSet) Len() int {
	return s.count
}

// Lookup returns the candidate registered at exactly sig.
func (s *OverloadSet) Lookup(sig *signature.Signature) (*Descriptor, bool) {
	for _, d := range s.buckets[sig.Hash()] {
		if d.Params.Equals(sig) {
			return d, true
		}
	}
	return nil, false
}

// put stores d at its signature and returns the candidate it replaced.
func (s *OverloadSet) put(d *Descriptor) *Descriptor {
	h := d.Params.Hash()
	bucket := s.buckets[h]
	for i, existing := range bucket {
		if existing.Params.Equals(d.Params) {
			bucket[i] = d
			return existing
		}
	}
	s.buckets[h] = append(bucket, d)
	s.count++
	return nil
}

// match runs the exact-then-generic lookup. fellBack is set when only the
// generic candidate matched.
func (s *OverloadSet) match(sig *signature.Signature) (d *Descriptor, fellBack bool, err error) {
	if d, ok := s.Lookup(sig); ok {
		return d, false, nil
	}
	generic := sig.Generic()
	if generic != sig {
		if d, ok := s.Lookup(generic); ok {
			return d, true, nil
		}
	}
	return nil, false, &UnresolvedOverloadError{Name: s.name, Category: s.category, Signature: sig}
}

// Resolve returns the candidate a call with signature sig binds to: the
// exact match if registered, else the generic-form candidate. Falling back
// emits a missed-specialization diagnostic.
func (s *OverloadSet) Resolve(sig *signature.Signature) (*Descriptor, error) {
	d, fellBack, err := s.match(sig)
	if err != nil {
		return nil, err
	}
	if fellBack {
		s.diag.fallback(Fallback{Category: s.category, Requested: sig, Using: d})
	}
	return d, nil
}

// ResultType returns the result type of the candidate sig resolves to,
// without reporting a generic fallback.
func (s *OverloadSet) ResultType(sig *signature.Signature) (cty.Type, error) {
	d, _, err := s.match(sig)
	if err != nil {
		return cty.NilType, err
	}
	return d.Result, nil
}

// Candidates returns all candidates ordered by their signature rendering.
func (s *OverloadSet) Candidates() []*Descriptor {
	out := make([]*Descriptor, 0, s.count)
	for _, bucket := range s.buckets {
		out = append(out, bucket...)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Params.Arity() != out[j].Params.Arity() {
			return out[i].Params.Arity() < out[j].Params.Arity()
		}
		return out[i].Params.String() < out[j].Params.String()
	})
	return out
}
