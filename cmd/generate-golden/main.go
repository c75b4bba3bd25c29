// Command generate-golden writes the products used by the multiply golden
// tests, computed with math/big.
//
//	go run ./cmd/generate-golden -out internal/multiply/testdata/multiply_golden.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"math/rand"
	"os"
	"strings"
)

type goldenCase struct {
	Name    string `json:"name"`
	A       string `json:"a"`
	B       string `json:"b"`
	Product string `json:"product"`
}

type goldenFile struct {
	Description string       `json:"description"`
	Cases       []goldenCase `json:"cases"`
}

// fixedCases exercise carries, zeros and transform sizes.
var fixedCases = [][3]string{
	{"three by three digits", "123", "456"},
	{"carry chain three nines", "999", "999"},
	{"ten nines squared", "9999999999", "9999999999"},
	{"product fills transform", "99999999", "99999999"},
	{"leading zeros", "000123", "456"},
	{"zero operand", "0", "987654321"},
	{"empty operand", "", "12345"},
	{"identity", "1", "31415926535897932384626433832795"},
	{"single digits", "7", "8"},
	{"power of ten", "1" + strings.Repeat("0", 40), "1" + strings.Repeat("0", 25)},
	{"all nines 64", strings.Repeat("9", 64), strings.Repeat("9", 64)},
	{"asymmetric", "555", strings.Repeat("123456789", 11)},
}

// randomSizes are the operand lengths of the generated cases.
var randomSizes = [][2]int{{17, 5}, {100, 33}, {257, 85}, {1000, 333}, {2048, 682}}

// bigProduct multiplies two digit strings. The empty string is zero.
func bigProduct(a, b string) (string, error) {
	x, y := new(big.Int), new(big.Int)
	for _, p := range []struct {
		z *big.Int
		s string
	}{{x, a}, {y, b}} {
		if p.s == "" {
			continue
		}
		if _, ok := p.z.SetString(p.s, 10); !ok {
			return "", fmt.Errorf("invalid operand %q", p.s)
		}
	}
	return new(big.Int).Mul(x, y).String(), nil
}

func randomDigits(rng *rand.Rand, n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte('0' + rng.Intn(10))
	}
	buf[0] = byte('1' + rng.Intn(9))
	return string(buf)
}

// generate builds every case; seed fixes the random operands.
func generate(seed int64) (goldenFile, error) {
	data := goldenFile{Description: "Products verified with arbitrary-precision integer arithmetic."}
	add := func(name, a, b string) error {
		product, err := bigProduct(a, b)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		data.Cases = append(data.Cases, goldenCase{Name: name, A: a, B: b, Product: product})
		return nil
	}

	for _, c := range fixedCases {
		if err := add(c[0], c[1], c[2]); err != nil {
			return goldenFile{}, err
		}
	}
	rng := rand.New(rand.NewSource(seed))
	for _, size := range randomSizes {
		name := fmt.Sprintf("random %dx%d", size[0], size[1])
		if err := add(name, randomDigits(rng, size[0]), randomDigits(rng, size[1])); err != nil {
			return goldenFile{}, err
		}
	}
	return data, nil
}

func main() {
	out := flag.String("out", "internal/multiply/testdata/multiply_golden.json", "output file")
	seed := flag.Int64("seed", 20240601, "seed of the random operands")
	flag.Parse()

	data, err := generate(*seed)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, append(encoded, '\n'), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d cases to %s\n", len(data.Cases), *out)
}
