package field

import (
	"errors"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestModulusIsNTTFriendly(t *testing.T) {
	t.Parallel()
	if !big.NewInt(Modulus).ProbablyPrime(20) {
		t.Fatalf("modulus %d is not prime", Modulus)
	}
	if (Modulus-1)%(1<<TwoAdicity) != 0 {
		t.Fatalf("2^%d does not divide P-1", TwoAdicity)
	}
	if (Modulus-1)%(1<<(TwoAdicity+1)) == 0 {
		t.Fatalf("two-adicity of P-1 is larger than %d", TwoAdicity)
	}
}

func TestArithmetic(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		got  Element
		want Element
	}{
		{"add no wrap", Add(2, 3), 5},
		{"add wraps to zero", Add(Modulus-1, 1), 0},
		{"add wraps", Add(Modulus-1, Modulus-1), Modulus - 2},
		{"sub no wrap", Sub(10, 3), 7},
		{"sub wraps", Sub(3, 10), Modulus - 7},
		{"sub to zero", Sub(42, 42), 0},
		{"mul small", Mul(81, 81), 6561},
		{"mul minus one squared", Mul(Modulus-1, Modulus-1), 1},
		{"mul by zero", Mul(0, Modulus-1), 0},
		{"pow zero exponent", Pow(12345, 0), 1},
		{"pow one", Pow(7, 1), 7},
		{"pow fermat", Pow(5, Modulus-1), 1},
		{"reduce modulus", Reduce(Modulus), 0},
		{"reduce large", Reduce(2*Modulus + 17), 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.got != tt.want {
				t.Errorf("got %d, want %d", tt.got, tt.want)
			}
		})
	}
}

func TestInverse(t *testing.T) {
	t.Parallel()
	for _, a := range []Element{1, 2, 10, 40894465, Modulus - 1} {
		if got := Mul(a, Inverse(a)); got != 1 {
			t.Errorf("a * Inverse(a) = %d for a = %d, want 1", got, a)
		}
	}
}

func TestInverse_ZeroPanics(t *testing.T) {
	t.Parallel()
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrDivisionByZero) {
			t.Errorf("expected ErrDivisionByZero panic, got %v", r)
		}
	}()
	Inverse(0)
}

func TestDivMod(t *testing.T) {
	t.Parallel()
	tests := []struct {
		a, b  uint64
		wantQ uint64
		wantR uint64
	}{
		{0, 10, 0, 0},
		{9, 10, 0, 9},
		{10, 10, 1, 0},
		{998001, 10, 99800, 1},
		{81 * (1 << 21), 10, 16986931, 2},
		{^uint64(0), 1, ^uint64(0), 0},
	}
	for _, tt := range tests {
		q, r := DivMod(tt.a, tt.b)
		if q != tt.wantQ || r != tt.wantR {
			t.Errorf("DivMod(%d, %d) = (%d, %d), want (%d, %d)", tt.a, tt.b, q, r, tt.wantQ, tt.wantR)
		}
	}
}

func TestDivMod_ZeroDivisorPanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if r := recover(); r != ErrDivisionByZero {
			t.Errorf("expected ErrDivisionByZero panic, got %v", r)
		}
	}()
	DivMod(42, 0)
}

// TestFieldLaws_PropertyBased checks the field operations against math/big
// and the usual ring identities.
func TestFieldLaws_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	elem := gen.UInt64Range(0, Modulus-1).Map(func(v uint64) Element { return Element(v) })
	p := big.NewInt(Modulus)

	properties.Property("Mul matches math/big", prop.ForAll(
		func(a, b Element) bool {
			want := new(big.Int).Mul(big.NewInt(int64(a)), big.NewInt(int64(b)))
			want.Mod(want, p)
			return uint64(Mul(a, b)) == want.Uint64()
		},
		elem, elem,
	))

	properties.Property("Sub undoes Add", prop.ForAll(
		func(a, b Element) bool {
			return Sub(Add(a, b), b) == a
		},
		elem, elem,
	))

	properties.Property("results stay reduced", prop.ForAll(
		func(a, b Element) bool {
			return Add(a, b) < Modulus && Sub(a, b) < Modulus && Mul(a, b) < Modulus
		},
		elem, elem,
	))

	properties.Property("Pow matches math/big", prop.ForAll(
		func(a Element, e uint64) bool {
			want := new(big.Int).Exp(big.NewInt(int64(a)), new(big.Int).SetUint64(e), p)
			return uint64(Pow(a, e)) == want.Uint64()
		},
		elem, gen.UInt64(),
	))

	properties.TestingRun(t)
}
