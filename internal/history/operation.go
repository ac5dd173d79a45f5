package history

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrDivideByZero is returned by Apply when a Divide is requested with a
// zero operand. The chain is left untouched.
var ErrDivideByZero = errors.New("divide by zero")

// Operation is one of the four supported arithmetic operations.
type Operation int

const (
	Add Operation = iota
	Subtract
	Multiply
	Divide
)

func (op Operation) String() string {
	switch op {
	case Add:
		return "add"
	case Subtract:
		return "subtract"
	case Multiply:
		return "multiply"
	case Divide:
		return "divide"
	}
	return fmt.Sprintf("Operation(%d)", int(op))
}

// MarshalJSON renders the operation under its wire name.
func (op Operation) MarshalJSON() ([]byte, error) {
	return json.Marshal(op.String())
}

// ParseOperation maps the wire-level operation name ("add", "subtract",
// "multiply", "divide") to its Operation.
func ParseOperation(s string) (Operation, error) {
	switch s {
	case "add":
		return Add, nil
	case "subtract":
		return Subtract, nil
	case "multiply":
		return Multiply, nil
	case "divide":
		return Divide, nil
	}
	return 0, fmt.Errorf("unknown operation %q", s)
}
