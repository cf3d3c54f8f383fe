// Package machine implements the stack-based virtual machine that executes
// a compiler.Chunk.
package machine

import "fmt"

// Value is implemented by every runtime value the machine manipulates. It
// is a closed sum of exactly three cases - Integer, Boolean, Procedure -
// since letpl has no mechanism to define new value kinds.
type Value interface {
	valueNode()
	String() string
	Type() string
}

// Integer is a letpl integer value.
type Integer int64

func (Integer) valueNode()     {}
func (v Integer) String() string { return fmt.Sprintf("%d", int64(v)) }
func (Integer) Type() string     { return "integer" }

// Boolean is a letpl boolean value.
type Boolean bool

func (Boolean) valueNode() {}
func (v Boolean) String() string {
	if v {
		return "true"
	}
	return "false"
}
func (Boolean) Type() string { return "boolean" }

// Procedure is a letpl closure: a bytecode entry point paired with the
// captured values it needs from its defining environment.
type Procedure struct {
	Address  int
	Captures []Value
}

func (*Procedure) valueNode()     {}
func (p *Procedure) String() string { return fmt.Sprintf("procedure@%d", p.Address) }
func (*Procedure) Type() string     { return "procedure" }

// AsInteger asserts that v is an Integer, returning a runtime error
// otherwise.
func AsInteger(v Value) (Integer, error) {
	i, ok := v.(Integer)
	if !ok {
		return 0, fmt.Errorf("value is not an integer")
	}
	return i, nil
}

// AsBoolean asserts that v is a Boolean, returning a runtime error
// otherwise.
func AsBoolean(v Value) (Boolean, error) {
	b, ok := v.(Boolean)
	if !ok {
		return false, fmt.Errorf("value is not a boolean")
	}
	return b, nil
}

// AsProcedure asserts that v is a Procedure, returning a runtime error
// otherwise.
func AsProcedure(v Value) (*Procedure, error) {
	p, ok := v.(*Procedure)
	if !ok {
		return nil, fmt.Errorf("value is not a procedure")
	}
	return p, nil
}
