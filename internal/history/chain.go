// Package history implements the accumulator's undoable operation history
// as a backward singly linked chain of steps. The chain is the accumulator's
// entire state: one "current step" pointer, or nil for an empty chain with
// logical result 0.
package history

import "sync"

// step records one applied operation and the accumulator value it produced.
// prev links to the step applied immediately before it; the chain holds the
// only references, so a step undone away is garbage as soon as the current
// pointer moves past it.
type step struct {
	operand   int32
	operation Operation
	result    int32
	prev      *step
}

// StepRecord is a read-only snapshot of one recorded step.
type StepRecord struct {
	Operation Operation `json:"operation"`
	Operand   int32     `json:"operand"`
	Result    int32     `json:"result"`
}

// Chain is a stateful arithmetic accumulator with linear undo and redo.
// All operations are serialized behind a single mutex, so one Chain may be
// shared freely between goroutines. Distinct Chain instances share nothing.
//
// Arithmetic is native int32: add, subtract and multiply wrap on overflow,
// and division truncates toward zero.
type Chain struct {
	mu      sync.Mutex
	current *step
}

// New returns an empty chain with result 0.
func New() *Chain {
	return &Chain{}
}

// Apply computes a new result from the current one (0 when the chain is
// empty) using op and num, records it as the new current step, and returns
// it. A Divide with num == 0 returns ErrDivideByZero and records nothing.
func (c *Chain) Apply(op Operation, num int32) (int32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.apply(op, num)
}

func (c *Chain) apply(op Operation, num int32) (int32, error) {
	if op == Divide && num == 0 {
		return 0, ErrDivideByZero
	}

	var prev int32
	if c.current != nil {
		prev = c.current.result
	}

	var result int32
	switch op {
	case Add:
		result = prev + num
	case Subtract:
		result = prev - num
	case Multiply:
		result = prev * num
	case Divide:
		result = prev / num
	}

	c.current = &step{
		operand:   num,
		operation: op,
		result:    result,
		prev:      c.current,
	}
	return result, nil
}

// Undo discards the current step and returns the predecessor's result, or 0
// when the predecessor is the start of history. On an empty chain it is a
// no-op returning 0.
func (c *Chain) Undo() int32 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return 0
	}

	c.current = c.current.prev
	if c.current == nil {
		return 0
	}
	return c.current.result
}

// Redo re-applies the current step's own recorded operation and operand on
// top of itself, growing the chain by one step. It is not a replay of the
// last undone step: repeated Redo calls keep compounding the current
// operation. On an empty chain it is a no-op returning 0.
func (c *Chain) Redo() int32 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return 0
	}

	// A recorded divide never carries a zero operand, so apply cannot fail.
	result, _ := c.apply(c.current.operation, c.current.operand)
	return result
}

// Result returns the current step's result, or 0 when the chain is empty.
func (c *Chain) Result() int32 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return 0
	}
	return c.current.result
}

// Depth returns the number of recorded steps.
func (c *Chain) Depth() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for s := c.current; s != nil; s = s.prev {
		n++
	}
	return n
}

// Steps returns a snapshot of the recorded steps, oldest first.
func (c *Chain) Steps() []StepRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	var records []StepRecord
	for s := c.current; s != nil; s = s.prev {
		records = append(records, StepRecord{
			Operation: s.operation,
			Operand:   s.operand,
			Result:    s.result,
		})
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records
}
