package sparse_test

import (
	"fmt"

	"github.com/minicore2/apollo/sparse"
)

// ExampleNewCSC assembles the upper triangle of a small symmetric
// matrix and reconstructs the mirrored entry.
func ExampleNewCSC() {
	// Upper triangle of [[2, 1], [1, 3]].
	c, err := sparse.NewCSC(2, 2,
		[]float64{2, 1, 3},
		[]int{0, 0, 1},
		[]int{0, 1, 3})
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	sym, _ := c.ToSym()
	fmt.Println("nnz:", c.Nnz())
	fmt.Println("mirrored:", sym.At(1, 0))
	// Output:
	// nnz: 3
	// mirrored: 1
}

// ExampleIdentity shows the one-non-zero-per-column layout used for
// per-variable box constraints.
func ExampleIdentity() {
	id := sparse.Identity(3)
	fmt.Println("data: ", id.Data)
	fmt.Println("indptr:", id.Indptr)
	// Output:
	// data:  [1 1 1]
	// indptr: [0 1 2 3]
}
