// Command demo is a small, runnable illustration of batching: two source
// writes inside one Batch produce exactly one recompute of a dependent
// derived cell and one run of the effect that observes it.
package main

import (
	"fmt"

	"github.com/nodegraph/reactor"
)

func main() {
	owner := reactor.NewOwner()

	owner.Run(func() error {
		a := reactor.NewSource(1)
		b := reactor.NewSource(2)

		sum := reactor.NewDerived(func() int {
			result := a.Read() + b.Read()
			fmt.Println("  [derived] computing sum:", result)
			return result
		})

		reactor.NewEffect(func() {
			fmt.Println("  [effect] sum is:", sum.Read())
		})

		fmt.Println("\nwriting a and b inside a batch...")
		reactor.Batch(func() {
			a.Write(10)
			b.Write(20)
		})

		fmt.Println("\nsum recomputed once, settling at 30")
		return nil
	})

	owner.Dispose()
}
