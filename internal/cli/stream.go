package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/agbru/nttmul/internal/digits"
)

// Prompts of the stream protocol. They go to the prompt writer so that the
// product stream stays clean.
const (
	PromptFirst  = "Enter the first integer:"
	PromptSecond = "Enter the second integer:"
	PromptResult = "Result:"
)

// StreamSession reads two operands from a stream and writes their product,
// printing the prompts to a separate writer. A nil prompt writer disables
// the prompts.
type StreamSession struct {
	in      *digits.Reader
	out     io.Writer
	prompts io.Writer
}

// NewStreamSession reads operands of up to capacity digits from in.
func NewStreamSession(in io.Reader, out, prompts io.Writer, capacity int) *StreamSession {
	if prompts == nil {
		prompts = io.Discard
	}
	return &StreamSession{
		in:      digits.NewReader(in, capacity),
		out:     out,
		prompts: prompts,
	}
}

// ReadOperands prompts for and reads A then B. A stream that ends after A
// yields a zero B; an empty stream returns io.EOF.
func (s *StreamSession) ReadOperands() (a, b digits.Sequence, err error) {
	fmt.Fprintln(s.prompts, PromptFirst)
	a, err = s.in.Next()
	if err != nil {
		return digits.Sequence{}, digits.Sequence{}, err
	}
	fmt.Fprintln(s.prompts, PromptSecond)
	b, err = s.in.Next()
	if errors.Is(err, io.EOF) {
		return a, digits.Sequence{}, nil
	}
	if err != nil {
		return digits.Sequence{}, digits.Sequence{}, err
	}
	return a, b, nil
}

// WriteProduct announces and writes the product.
func (s *StreamSession) WriteProduct(product digits.Sequence) error {
	fmt.Fprintln(s.prompts, PromptResult)
	return digits.WriteSequence(s.out, product)
}
