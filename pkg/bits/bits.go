// Package bits provides small bit manipulation helpers that work on
// both the 8-bit registers and the 16-bit register pairs.
package bits

import "golang.org/x/exp/constraints"

// Val returns the value of the bit at the given index.
func Val[T constraints.Unsigned](b T, i uint8) T {
	return (b >> i) & 1
}

// Reset resets the bit at the given index.
func Reset[T constraints.Unsigned](b T, i uint8) T {
	return b &^ (1 << i)
}

// Set sets the bit at the given index.
func Set[T constraints.Unsigned](b T, i uint8) T {
	return b | (1 << i)
}

// Test tests the bit at the given index.
func Test[T constraints.Unsigned](b T, i uint8) bool {
	return (b>>i)&1 != 0
}

// Assign sets or resets the bit at the given index depending on v.
func Assign[T constraints.Unsigned](b T, i uint8, v bool) T {
	if v {
		return Set(b, i)
	}
	return Reset(b, i)
}

// CarryFrom reports whether adding a and b (and an optional carry in)
// produces a carry out of the given bit.
func CarryFrom[T constraints.Unsigned](a, b, carry T, bit uint8) bool {
	mask := uint64(1)<<(bit+1) - 1
	return uint64(a)&mask+uint64(b)&mask+uint64(carry) > mask
}

// BorrowFrom reports whether subtracting b (and an optional borrow)
// from a needs a borrow from above the given bit.
func BorrowFrom[T constraints.Unsigned](a, b, borrow T, bit uint8) bool {
	mask := uint64(1)<<(bit+1) - 1
	return uint64(a)&mask < uint64(b)&mask+uint64(borrow)
}
