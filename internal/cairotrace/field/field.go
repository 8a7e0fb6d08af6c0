// Package field implements the prime field the Cairo trace builder works
// over: big.Int-backed modular arithmetic, adapted from the teacher's
// generic, modulus-agnostic internal/core field and pinned to the Cairo
// prime (the teacher's own vybium-crypto/field.Element is Goldilocks-sized
// and too small to represent Cairo's ~2^252 field — see DESIGN.md).
package field

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// CairoPrime is the modulus Cairo's AIR is defined over: 2^251 + 17*2^192 + 1.
var CairoPrime = func() *big.Int {
	p := new(big.Int).Lsh(big.NewInt(1), 251)
	p.Add(p, new(big.Int).Lsh(big.NewInt(17), 192))
	p.Add(p, big.NewInt(1))
	return p
}()

// Field represents a finite field with modular arithmetic operations.
type Field struct {
	modulus *big.Int
}

// Element represents an element of a Field.
type Element struct {
	field *Field
	value *big.Int
}

// New creates a finite field with the given modulus.
func New(modulus *big.Int) (*Field, error) {
	if modulus.Cmp(big.NewInt(2)) <= 0 {
		return nil, fmt.Errorf("field: modulus must be greater than 2")
	}
	return &Field{modulus: new(big.Int).Set(modulus)}, nil
}

// Cairo returns the field Cairo's AIR is defined over.
func Cairo() *Field {
	f, err := New(CairoPrime)
	if err != nil {
		panic("field: invalid Cairo prime")
	}
	return f
}

// Modulus returns the field modulus.
func (f *Field) Modulus() *big.Int {
	return new(big.Int).Set(f.modulus)
}

// Equals reports whether two fields share a modulus.
func (f *Field) Equals(other *Field) bool {
	return f.modulus.Cmp(other.modulus) == 0
}

// NewElement reduces value into the field.
func (f *Field) NewElement(value *big.Int) *Element {
	normalized := new(big.Int).Mod(value, f.modulus)
	return &Element{field: f, value: normalized}
}

// FromInt64 lifts a signed 64-bit integer into the field, wrapping negative
// values around the modulus.
func (f *Field) FromInt64(value int64) *Element {
	return f.NewElement(big.NewInt(value))
}

// FromUint64 lifts an unsigned 64-bit integer into the field.
func (f *Field) FromUint64(value uint64) *Element {
	return f.NewElement(new(big.Int).SetUint64(value))
}

// RandomElement generates a random field element.
func (f *Field) RandomElement() (*Element, error) {
	value, err := rand.Int(rand.Reader, f.modulus)
	if err != nil {
		return nil, fmt.Errorf("field: failed to generate random element: %w", err)
	}
	return f.NewElement(value), nil
}

// Zero returns the additive identity.
func (f *Field) Zero() *Element {
	return f.NewElement(big.NewInt(0))
}

// One returns the multiplicative identity.
func (f *Field) One() *Element {
	return f.NewElement(big.NewInt(1))
}

// Representative returns the canonical big-integer representative used
// for ordering (spec.md §3).
func (e *Element) Representative() *big.Int {
	return new(big.Int).Set(e.value)
}

// Field returns the field this element belongs to.
func (e *Element) Field() *Field {
	return e.field
}

// Add performs field addition.
func (e *Element) Add(other *Element) *Element {
	if !e.field.Equals(other.field) {
		panic("field: cannot add elements from different fields")
	}
	return e.field.NewElement(new(big.Int).Add(e.value, other.value))
}

// Sub performs field subtraction.
func (e *Element) Sub(other *Element) *Element {
	if !e.field.Equals(other.field) {
		panic("field: cannot subtract elements from different fields")
	}
	return e.field.NewElement(new(big.Int).Sub(e.value, other.value))
}

// Neg returns the additive inverse.
func (e *Element) Neg() *Element {
	return e.field.NewElement(new(big.Int).Neg(e.value))
}

// Mul performs field multiplication.
func (e *Element) Mul(other *Element) *Element {
	if !e.field.Equals(other.field) {
		panic("field: cannot multiply elements from different fields")
	}
	return e.field.NewElement(new(big.Int).Mul(e.value, other.value))
}

// Square computes the square of the element.
func (e *Element) Square() *Element {
	return e.Mul(e)
}

// Exp performs field exponentiation.
func (e *Element) Exp(exponent *big.Int) *Element {
	result := new(big.Int).Exp(e.value, exponent, e.field.modulus)
	return e.field.NewElement(result)
}

// Inv computes the multiplicative inverse. Fails only for zero, which by
// construction (spec.md §4.1's Jnz branch special-cases dst = 0) never
// reaches this call along the builder's production path.
func (e *Element) Inv() (*Element, error) {
	if e.value.Sign() == 0 {
		return nil, fmt.Errorf("field: cannot invert zero element")
	}

	gcd := new(big.Int)
	x := new(big.Int)
	y := new(big.Int)
	gcd.GCD(x, y, e.value, e.field.modulus)
	if gcd.Cmp(big.NewInt(1)) != 0 {
		return nil, fmt.Errorf("field: inverse does not exist")
	}
	if x.Sign() < 0 {
		x.Add(x, e.field.modulus)
	}
	return e.field.NewElement(x), nil
}

// Div performs field division (multiplication by inverse).
func (e *Element) Div(other *Element) (*Element, error) {
	inv, err := other.Inv()
	if err != nil {
		return nil, fmt.Errorf("field: division failed: %w", err)
	}
	return e.Mul(inv), nil
}

// LastLimb returns the least-significant 64 bits of the representative, or
// an error if the representative does not fit in 64 bits. Used when
// op1_src = Op0: a well-formed trace has already-computed op0 fit in an
// address (spec.md §4.1, §9 Open Questions).
func (e *Element) LastLimb() (uint64, error) {
	upper := new(big.Int).Rsh(e.value, 64)
	if upper.Sign() != 0 {
		return 0, fmt.Errorf("field: representative %s exceeds 64 bits, cannot project to an address", e.value)
	}
	return e.value.Uint64(), nil
}

// LessThan reports whether this element's representative is less than
// other's.
func (e *Element) LessThan(other *Element) bool {
	return e.value.Cmp(other.value) < 0
}

// Equal reports value equality within the same field.
func (e *Element) Equal(other *Element) bool {
	if !e.field.Equals(other.field) {
		return false
	}
	return e.value.Cmp(other.value) == 0
}

// IsZero reports whether the element is the additive identity.
func (e *Element) IsZero() bool {
	return e.value.Sign() == 0
}

// IsOne reports whether the element is the multiplicative identity.
func (e *Element) IsOne() bool {
	return e.value.Cmp(big.NewInt(1)) == 0
}

// String returns the decimal representative.
func (e *Element) String() string {
	return e.value.String()
}

// Bytes returns the big-endian byte representation of the representative.
func (e *Element) Bytes() []byte {
	return e.value.Bytes()
}
