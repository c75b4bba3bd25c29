package multiply_test

import (
	"context"
	"fmt"

	"github.com/agbru/nttmul/internal/digits"
	"github.com/agbru/nttmul/internal/multiply"
)

func ExampleMultiplier_Multiply() {
	m := multiply.NewMultiplier()
	product, err := m.Multiply(context.Background(), digits.MustParse("123"), digits.MustParse("456"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(product)
	// Output: 56088
}

func ExamplePlanFor() {
	plan, _ := multiply.PlanFor(5, 7)
	fmt.Println(plan.TargetLen, plan.Size, plan.LogSize)
	// Output: 12 16 4
}

func ExamplePropagateCarries() {
	// Coefficients of 999 × 999, least significant first.
	out := multiply.PropagateCarries([]uint64{81, 162, 243, 162, 81}, nil)
	fmt.Println(out)
	// Output: [1 0 0 8 9 9]
}
