// Command arithdemo exercises the arith library with fixed operands and
// prints the results. It is the smallest possible consumer of the library:
// no flags, no network, just the two operations linked into a binary.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/arithkit/arithsvc/arith"
)

func main() {
	demo(os.Stdout)
}

func demo(w io.Writer) {
	fmt.Fprintln(w, "Testing arithmetic operations:")
	for _, operands := range []struct{ a, b int64 }{
		{4, 2},
		{10, 5},
	} {
		fmt.Fprintf(w, "add(%d, %d) = %d\n", operands.a, operands.b, arith.Add(operands.a, operands.b))
		fmt.Fprintf(w, "subtract(%d, %d) = %d\n", operands.a, operands.b, arith.Subtract(operands.a, operands.b))
	}
}
