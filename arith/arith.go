// Package arith provides the basic integer arithmetic operations. It has no
// dependencies and no state, and is meant to be linked into any binary that
// needs to add or subtract: the demo driver, the service layer, and tests all
// import it the same way.
package arith

// Add returns the sum of a and b. Overflow wraps around, per native int64
// semantics.
func Add(a, b int64) int64 { return a + b }

// Subtract returns the difference a - b. Overflow wraps around, per native
// int64 semantics.
func Subtract(a, b int64) int64 { return a - b }
