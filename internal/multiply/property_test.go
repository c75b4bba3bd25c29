package multiply

import (
	"context"
	"math/big"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/agbru/nttmul/internal/digits"
)

func bigProduct(a, b string) string {
	x, ok := new(big.Int).SetString(a, 10)
	if !ok {
		x = new(big.Int)
	}
	y, ok := new(big.Int).SetString(b, 10)
	if !ok {
		y = new(big.Int)
	}
	return x.Mul(x, y).String()
}

func TestMultiply_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.MaxSize = 400
	properties := gopter.NewProperties(parameters)

	numeric := gen.NumString()
	fast := NewEngine(&Multiplier{})
	school := NewEngine(Schoolbook{})
	ctx := context.Background()

	multiply := func(e Engine, a, b string) string {
		got, err := e.Multiply(ctx, digits.MustParse(a), digits.MustParse(b), Options{}, nil)
		if err != nil {
			return "error: " + err.Error()
		}
		return got.String()
	}

	properties.Property("NTT matches math/big", prop.ForAll(
		func(a, b string) bool {
			return multiply(fast, a, b) == bigProduct(a, b)
		},
		numeric, numeric,
	))

	properties.Property("schoolbook matches NTT", prop.ForAll(
		func(a, b string) bool {
			return multiply(school, a, b) == multiply(fast, a, b)
		},
		numeric, numeric,
	))

	properties.Property("multiplication is commutative", prop.ForAll(
		func(a, b string) bool {
			return multiply(fast, a, b) == multiply(fast, b, a)
		},
		numeric, numeric,
	))

	properties.Property("multiplying by a power of ten shifts", prop.ForAll(
		func(a string, k int) bool {
			got := multiply(fast, a, "1"+strings.Repeat("0", k))
			want := bigProduct(a, "1")
			if want != "0" {
				want += strings.Repeat("0", k)
			}
			return got == want
		},
		numeric, gen.IntRange(0, 40),
	))

	properties.TestingRun(t)
}

// FuzzMultiply cross-checks the NTT engine against math/big.
func FuzzMultiply(f *testing.F) {
	f.Add("123", "456")
	f.Add("999", "999")
	f.Add("0", "12345")
	f.Add("000100", "99")
	f.Add("9999999999", "9999999999")

	e := NewEngine(&Multiplier{})
	f.Fuzz(func(t *testing.T, a, b string) {
		x, err := digits.Parse(a)
		if err != nil {
			return
		}
		y, err := digits.Parse(b)
		if err != nil {
			return
		}
		if x.Len() > 5000 || y.Len() > 5000 {
			return
		}
		got, err := e.Multiply(context.Background(), x, y, Options{}, nil)
		if err != nil {
			t.Fatalf("Multiply(%q, %q): %v", a, b, err)
		}
		if want := bigProduct(a, b); got.String() != want {
			t.Fatalf("Multiply(%q, %q) = %s, want %s", a, b, got, want)
		}
	})
}

func BenchmarkMultiply(b *testing.B) {
	for _, n := range []int{100, 10_000, 100_000} {
		x := digits.MustParse(strings.Repeat("7", n))
		for _, e := range []Engine{NewEngine(&Multiplier{}), NewEngine(BigInt{})} {
			b.Run(e.Name()+"/"+strconv.Itoa(n), func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					_, _ = e.Multiply(context.Background(), x, x, Options{}, nil)
				}
			})
		}
	}
}
