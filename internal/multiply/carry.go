package multiply

import "github.com/agbru/nttmul/internal/field"

// PropagateCarries turns convolution coefficients, least significant first,
// into base-10 digits appended to dst[:0]. Each position receives the
// running carry, keeps value mod 10 and forwards value / 10. A carry left
// after the last coefficient is emitted as further leading digits.
//
// The result carries no leading zeros; a zero value yields a single 0 digit.
func PropagateCarries[T ~uint64](coeffs []T, dst []byte) []byte {
	dst = dst[:0]
	var carry uint64
	for _, c := range coeffs {
		q, r := field.DivMod(uint64(c)+carry, 10)
		dst = append(dst, byte(r))
		carry = q
	}
	for carry > 0 {
		q, r := field.DivMod(carry, 10)
		dst = append(dst, byte(r))
		carry = q
	}

	n := len(dst)
	for n > 1 && dst[n-1] == 0 {
		n--
	}
	if n == 0 {
		return append(dst, 0)
	}
	return dst[:n]
}
