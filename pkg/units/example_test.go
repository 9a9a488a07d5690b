package units_test

import (
	"fmt"

	"github.com/matzehuels/shelfmount/pkg/units"
)

func ExampleNearestBinaryFraction() {
	fmt.Println(units.NearestBinaryFraction(2.13, 32))
	fmt.Println(units.NearestBinaryFraction(-0.74, 8))
	// Output:
	// 2-1/8"
	// -3/4"
}

func ExampleParseLength() {
	v, err := units.ParseLength("28-31/32")
	if err != nil {
		panic(err)
	}
	fmt.Println(v)
	// Output: 28.96875
}
