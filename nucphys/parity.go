package nucphys

import "fmt"

// Parity is the intrinsic parity of a nuclear level or particle state.
// The zero value is not valid; use ParityPositive or ParityNegative.
type Parity int8

const (
	ParityPositive Parity = +1
	ParityNegative Parity = -1
)

// Times returns the product of two parities.
func (p Parity) Times(q Parity) Parity { return p * q }

func (p Parity) String() string {
	switch p {
	case ParityPositive:
		return "+"
	case ParityNegative:
		return "-"
	}
	return "?"
}

// ParseParity converts "+" or "-" to a Parity value.
func ParseParity(s string) (Parity, error) {
	switch s {
	case "+":
		return ParityPositive, nil
	case "-":
		return ParityNegative, nil
	}
	return 0, fmt.Errorf("nucphys: invalid parity %q", s)
}
