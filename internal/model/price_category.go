package model

import (
	"errors"
	"fmt"
)

// Kind selects the pricing behaviour of a price category.  The set of
// kinds is closed: Regular, Children and NewRelease.  The zero value is
// not a valid kind.
type Kind int

const (
	KindRegular Kind = iota + 1
	KindChildren
	KindNewRelease
)

// ErrUnknownKind is returned by ParseKind for discriminator strings that
// do not name one of the three kinds.
var ErrUnknownKind = errors.New("unknown price category")

// String returns the discriminator stored in PRICECATEGORIES.PRICECATEGORY_TYPE.
func (k Kind) String() string {
	switch k {
	case KindRegular:
		return "Regular"
	case KindChildren:
		return "Children"
	case KindNewRelease:
		return "NewRelease"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k is one of the three known kinds.
func (k Kind) Valid() bool {
	return k == KindRegular || k == KindChildren || k == KindNewRelease
}

// ParseKind maps a stored discriminator to its kind.  Matching is exact;
// every other string yields ErrUnknownKind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "Regular":
		return KindRegular, nil
	case "Children":
		return KindChildren, nil
	case "NewRelease":
		return KindNewRelease, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// PriceCategory mirrors a row of the PRICECATEGORIES table.
//
// Fields:
//  id   – PRICECATEGORY_ID, zero while the category is transient.
//  kind – PRICECATEGORY_TYPE, parsed into a Kind.
type PriceCategory struct {
	id   int64 // pricecategories.pricecategory_id
	kind Kind  // pricecategories.pricecategory_type
}

// NewPriceCategory returns a transient category of the given kind.
func NewPriceCategory(kind Kind) (*PriceCategory, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return &PriceCategory{kind: kind}, nil
}

func (p *PriceCategory) ID() int64 { return p.id }

func (p *PriceCategory) Kind() Kind { return p.kind }

// IsTransient reports whether the category has not been persisted yet.
func (p *PriceCategory) IsTransient() bool { return p.id == 0 }

// WithID returns a copy of p carrying the given identity.
func (p *PriceCategory) WithID(id int64) *PriceCategory {
	c := *p
	c.id = id
	return &c
}

func (p *PriceCategory) String() string { return p.kind.String() }

// Charge returns the rental fee for the given number of days.
func (p *PriceCategory) Charge(days int) float64 {
	switch p.kind {
	case KindRegular:
		charge := 2.0
		if days > 2 {
			charge += float64(days-2) * 1.5
		}
		return charge
	case KindChildren:
		charge := 1.5
		if days > 3 {
			charge += float64(days-3) * 1.5
		}
		return charge
	case KindNewRelease:
		return float64(days) * 3
	}
	return 0
}

// FrequentRenterPoints returns the bonus points earned by a rental of
// the given length.  Only new releases kept longer than a day earn extra.
func (p *PriceCategory) FrequentRenterPoints(days int) int {
	if p.kind == KindNewRelease && days > 1 {
		return 2
	}
	return 1
}
