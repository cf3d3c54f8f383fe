// Package resolver performs name resolution and closure conversion: it
// rewrites a named-form lang/ast.Expr, already verified well-typed by
// lang/typecheck, into a nameless-form lang/nameless.Expr in which every
// variable reference has been classified as Local, Capture, or Global, and
// every procedure literal carries the exact recipe for building its
// closure's capture vector.
//
// The algorithm simulates, at compile time, the shape of the stack the
// virtual machine will have at run time: each lexical scope (the body of a
// Proc, or the top-level program) owns a frame tracking the abstract height
// of the stack and the bindings visible at that height. Resolving a name
// walks outward from the innermost frame, promoting any binding found in an
// enclosing frame into the intervening frames' capture vectors, with
// de-duplication so a name captured once by a frame is never captured
// twice.
package resolver

import (
	"fmt"

	"github.com/mna/letpl/lang/ast"
	"github.com/mna/letpl/lang/nameless"
	"github.com/mna/letpl/lang/token"
	"golang.org/x/exp/slices"
)

type binding struct {
	name   string
	offset int
}

// frame tracks the compile-time stack state of a single procedure body (or
// the top-level program).
type frame struct {
	bindings []binding

	// stackTop is the abstract size of the stack from this frame's base, i.e.
	// the offset the next pushed value would receive.
	stackTop int

	// captureNames and captures are parallel slices recording, in order, the
	// capture vector this frame's procedure will build at closure-creation
	// time. captureNames exists purely for the resolver's own de-duplication
	// lookups; it has no counterpart in the nameless AST.
	captureNames []string
	captures     []nameless.CaptureSpec
}

func (f *frame) push(name string) int {
	off := f.stackTop
	f.bindings = append(f.bindings, binding{name: name, offset: off})
	f.stackTop++
	return off
}

func (f *frame) truncate(bindingsLen, stackTop int) {
	f.bindings = f.bindings[:bindingsLen]
	f.stackTop = stackTop
}

// lookupLocal returns the offset of the most recently pushed binding named
// name, so that a shadowing inner binding takes precedence over an outer
// one with the same name.
func (f *frame) lookupLocal(name string) (int, bool) {
	for j := len(f.bindings) - 1; j >= 0; j-- {
		if f.bindings[j].name == name {
			return f.bindings[j].offset, true
		}
	}
	return 0, false
}

func (f *frame) lookupCapture(name string) (int, bool) {
	i := slices.IndexFunc(f.captureNames, func(n string) bool { return n == name })
	if i < 0 {
		return 0, false
	}
	return i, true
}

func (f *frame) addCapture(name string, spec nameless.CaptureSpec) int {
	idx := len(f.captures)
	f.captureNames = append(f.captureNames, name)
	f.captures = append(f.captures, spec)
	return idx
}

// refKind classifies how a frame refers to a name, for internal
// bookkeeping only.
type refKind int

const (
	refLocal refKind = iota
	refCapture
	refGlobal
)

type ref struct {
	kind   refKind
	offset int
}

// resolver holds the state of a single top-level resolution.
type resolver struct {
	frames  []*frame
	globals map[string]int
}

// Resolve performs name resolution and closure conversion on a well-typed
// expression, returning its nameless-form equivalent.
func Resolve(e ast.Expr) (nameless.Expr, error) {
	r := &resolver{
		frames:  []*frame{{}},
		globals: map[string]int{},
	}
	return r.resolve(e)
}

func (r *resolver) cur() *frame { return r.frames[len(r.frames)-1] }

// atTopLevel reports whether the resolver is currently resolving code
// outside any procedure body: the only place a Let or LetRec's binding
// becomes a global rather than a local stack slot.
func (r *resolver) atTopLevel() bool { return len(r.frames) == 1 }

// bindGlobal binds name to the absolute value-stack slot the top-level Let's
// value occupies at run time (the top-level frame's current abstract stack
// height, since that frame's base is the bottom of the stack) and returns
// that offset. Unlike a frame's local bindings, a global binding is never
// truncated: its slot is permanent, so a name bound twice at top level
// (shadowing) simply gets a second, higher offset, and earlier references
// already resolved against the first offset are unaffected since they lie
// outside the later binding's body.
func (r *resolver) bindGlobal(name string) int {
	off := r.frames[0].stackTop
	r.frames[0].stackTop++
	r.globals[name] = off
	return off
}

func (r *resolver) resolve(e ast.Expr) (nameless.Expr, error) {
	switch e := e.(type) {
	case *ast.LiteralInt:
		return &nameless.LiteralInt{TokPos: e.TokPos, Value: e.Value}, nil

	case *ast.LiteralBool:
		return &nameless.LiteralBool{TokPos: e.TokPos, Value: e.Value}, nil

	case *ast.Name:
		return r.resolveName(e.Ident, e.TokPos)

	case *ast.Subtract:
		l, err := r.resolve(e.Left)
		if err != nil {
			return nil, err
		}
		// the left operand's value stays on the stack while the right one is
		// evaluated.
		r.cur().stackTop++
		rr, err := r.resolve(e.Right)
		r.cur().stackTop--
		if err != nil {
			return nil, err
		}
		return &nameless.Subtract{MinusPos: e.MinusPos, Left: l, Right: rr}, nil

	case *ast.Negate:
		op, err := r.resolve(e.Operand)
		if err != nil {
			return nil, err
		}
		return &nameless.Negate{MinusPos: e.MinusPos, Operand: op}, nil

	case *ast.IsZero:
		op, err := r.resolve(e.Operand)
		if err != nil {
			return nil, err
		}
		return &nameless.IsZero{KwPos: e.KwPos, Operand: op}, nil

	case *ast.If:
		test, err := r.resolve(e.Test)
		if err != nil {
			return nil, err
		}
		// The alternative is resolved before the consequent, to mirror the
		// original resolver's branch-evaluation order. The test's value is
		// consumed by the conditional jump and only one branch runs, so both
		// branches start from the same compile-time stack height: it is saved
		// before the alternative and restored before the consequent.
		saved := r.cur().stackTop
		alt, err := r.resolve(e.Alternative)
		if err != nil {
			return nil, err
		}
		r.cur().stackTop = saved
		cons, err := r.resolve(e.Consequent)
		if err != nil {
			return nil, err
		}
		return &nameless.If{KwPos: e.KwPos, Test: test, Consequent: cons, Alternative: alt}, nil

	case *ast.Let:
		exprN, err := r.resolve(e.Expr)
		if err != nil {
			return nil, err
		}
		if r.atTopLevel() {
			r.bindGlobal(e.Name)
			bodyN, err := r.resolve(e.Body)
			if err != nil {
				return nil, err
			}
			return &nameless.Let{KwPos: e.KwPos, Expr: exprN, Body: bodyN, Global: true}, nil
		}
		f := r.cur()
		savedLen, savedTop := len(f.bindings), f.stackTop
		f.push(e.Name)
		bodyN, err := r.resolve(e.Body)
		f.truncate(savedLen, savedTop)
		if err != nil {
			return nil, err
		}
		return &nameless.Let{KwPos: e.KwPos, Expr: exprN, Body: bodyN}, nil

	case *ast.LetRec:
		return r.resolveLetRec(e)

	case *ast.Proc:
		return r.resolveProc(e.KwPos, e.Param.Name, e.Body)

	case *ast.Call:
		p, err := r.resolve(e.Proc)
		if err != nil {
			return nil, err
		}
		// the procedure's value stays on the stack while the argument is
		// evaluated.
		r.cur().stackTop++
		arg, err := r.resolve(e.Arg)
		r.cur().stackTop--
		if err != nil {
			return nil, err
		}
		return &nameless.Call{LparenPos: e.LparenPos, Proc: p, Arg: arg}, nil

	case *ast.Assert:
		test, err := r.resolve(e.Test)
		if err != nil {
			return nil, err
		}
		body, err := r.resolve(e.Body)
		if err != nil {
			return nil, err
		}
		return &nameless.Assert{KwPos: e.KwPos, Line: e.Line, Test: test, Body: body}, nil

	default:
		return nil, fmt.Errorf("resolver: unhandled expression %T", e)
	}
}

// resolveProc resolves a procedure body in a brand new frame. Slot 0 is
// reserved for the procedure's own value (the virtual machine's calling
// convention always leaves the called Procedure itself one slot below its
// argument, so that a letrec-bound procedure can recurse through Local(0)
// with no dedicated self-reference opcode); slot 1 is paramName. A plain,
// non-recursive procedure simply never resolves a name to slot 0.
func (r *resolver) resolveProc(kwPos token.Pos, paramName string, body ast.Expr) (nameless.Expr, error) {
	nf := &frame{}
	r.frames = append(r.frames, nf)
	nf.push("") // slot 0: unnamed, reserved for the procedure's own value
	nf.push(paramName)
	bodyN, err := r.resolve(body)
	r.frames = r.frames[:len(r.frames)-1]
	if err != nil {
		return nil, err
	}
	return &nameless.Proc{KwPos: kwPos, Captures: nf.captures, Body: bodyN}, nil
}

// resolveLetRec lowers letrec into Let(Proc, body), exactly as the VM
// executes it: the recursive procedure's own frame pre-binds its own name to
// Local(0), so a self-call inside the body resolves like any other local
// reference, with no dedicated opcode and no reference cycle in the host
// language.
func (r *resolver) resolveLetRec(e *ast.LetRec) (nameless.Expr, error) {
	nf := &frame{}
	r.frames = append(r.frames, nf)
	nf.push(e.Name)       // slot 0: self-reference
	nf.push(e.Param.Name) // slot 1: the procedure's argument
	bodyN, err := r.resolve(e.ProcBody)
	captures := nf.captures
	r.frames = r.frames[:len(r.frames)-1]
	if err != nil {
		return nil, err
	}
	procN := &nameless.Proc{KwPos: e.KwPos, Captures: captures, Body: bodyN}

	// The recursive procedure's own name, bound by the implicit outer let,
	// follows the same top-level-vs-local rule as any other let: it is a
	// global when letrec appears outside any proc, a local slot otherwise.
	if r.atTopLevel() {
		r.bindGlobal(e.Name)
		letBodyN, err := r.resolve(e.Body)
		if err != nil {
			return nil, err
		}
		return &nameless.Let{KwPos: e.KwPos, Expr: procN, Body: letBodyN, Global: true}, nil
	}

	f := r.cur()
	savedLen, savedTop := len(f.bindings), f.stackTop
	f.push(e.Name)
	letBodyN, err := r.resolve(e.Body)
	f.truncate(savedLen, savedTop)
	if err != nil {
		return nil, err
	}
	return &nameless.Let{KwPos: e.KwPos, Expr: procN, Body: letBodyN}, nil
}

func (r *resolver) resolveName(name string, pos token.Pos) (nameless.Expr, error) {
	cur := len(r.frames) - 1
	if rf, ok := r.refInFrame(cur, name); ok {
		switch rf.kind {
		case refLocal:
			return &nameless.Local{TokPos: pos, Offset: rf.offset}, nil
		case refCapture:
			return &nameless.Capture{TokPos: pos, Offset: rf.offset}, nil
		case refGlobal:
			return &nameless.Global{TokPos: pos, Offset: rf.offset}, nil
		}
	}
	return nil, fmt.Errorf("undefined name %q", name)
}

// refInFrame returns how frame idx refers to name: directly as one of its
// own locals, as an entry (possibly freshly added) of its own capture
// vector built by recursively capturing from enclosing frames, or as a
// global. It returns ok=false if name is bound nowhere.
func (r *resolver) refInFrame(idx int, name string) (ref, bool) {
	if off, ok := r.frames[idx].lookupLocal(name); ok {
		return ref{kind: refLocal, offset: off}, true
	}
	if off, ok := r.frames[idx].lookupCapture(name); ok {
		return ref{kind: refCapture, offset: off}, true
	}
	if idx == 0 {
		if off, ok := r.globals[name]; ok {
			return ref{kind: refGlobal, offset: off}, true
		}
		return ref{}, false
	}

	outer, ok := r.refInFrame(idx-1, name)
	if !ok {
		return ref{}, false
	}
	if outer.kind == refGlobal {
		// globals need no capturing: they are visible from every frame.
		return outer, true
	}

	var spec nameless.CaptureSpec
	if outer.kind == refCapture {
		spec = nameless.CaptureSpec{FromCapture: true, Index: outer.offset}
	} else {
		spec = nameless.CaptureSpec{FromCapture: false, Index: outer.offset}
	}
	off := r.frames[idx].addCapture(name, spec)
	return ref{kind: refCapture, offset: off}, true
}
