package multiply

import (
	"errors"
	"fmt"

	apperrors "github.com/agbru/nttmul/internal/errors"
	"github.com/agbru/nttmul/internal/ntt"
)

var (
	// ErrOperandTooLarge reports an operand longer than the configured
	// capacity.
	ErrOperandTooLarge = errors.New("operand too large")
	// ErrCoefficientBound reports operands whose convolution coefficients
	// could reach the modulus and wrap.
	ErrCoefficientBound = errors.New("convolution coefficients would exceed the field modulus")
)

// Plan describes the transform that services one multiplication.
type Plan struct {
	LenA, LenB int
	// TargetLen is LenA+LenB, the longest possible product.
	TargetLen int
	// Size is the transform length, the smallest power of two >= TargetLen.
	Size int
	// LogSize is log2(Size) and indexes the root table.
	LogSize int
	Root    ntt.Root
}

// PlanFor plans a multiplication of operands with la and lb digits under
// the default operand capacity.
func PlanFor(la, lb int) (Plan, error) {
	return PlanWithCapacity(la, lb, MaxOperandDigits)
}

// PlanWithCapacity plans a multiplication, rejecting it with a
// apperrors.CapacityError when an operand exceeds capacity, when the
// product needs a transform longer than ntt.MaxSize, or when a convolution
// coefficient could reach the modulus.
func PlanWithCapacity(la, lb, capacity int) (Plan, error) {
	if la < 0 || lb < 0 {
		return Plan{}, apperrors.ValidationError{Field: "length", Message: fmt.Sprintf("negative operand length (%d, %d)", la, lb)}
	}
	for _, l := range [...]int{la, lb} {
		if l > capacity {
			return Plan{}, apperrors.CapacityError{
				Kind: apperrors.CapacityOperand, Requested: l, Limit: capacity, Cause: ErrOperandTooLarge,
			}
		}
	}

	target := la + lb
	size, logSize, err := ntt.LogSize(target)
	if err != nil {
		return Plan{}, apperrors.CapacityError{
			Kind: apperrors.CapacityTransform, Requested: target, Limit: ntt.MaxSize, Cause: err,
		}
	}

	if overlap := min(la, lb); overlap > MaxCoefficientOverlap {
		return Plan{}, apperrors.CapacityError{
			Kind: apperrors.CapacityCoefficient, Requested: overlap, Limit: MaxCoefficientOverlap, Cause: ErrCoefficientBound,
		}
	}

	root, err := ntt.Roots(logSize)
	if err != nil {
		return Plan{}, err
	}
	return Plan{
		LenA:      la,
		LenB:      lb,
		TargetLen: target,
		Size:      size,
		LogSize:   logSize,
		Root:      root,
	}, nil
}
