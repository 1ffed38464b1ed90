package nirsnapshot

import (
	"fmt"

	"github.com/orizon-lang/nir/internal/nir"
)

type nextJSON struct {
	Kind  string     `json:"kind"`
	Label int64      `json:"label,omitempty"`
	Args  []valJSON  `json:"args,omitempty"`

	// Case
	Value *valJSON  `json:"value,omitempty"`
	Next  *nextJSON `json:"next,omitempty"`
}

func (n nextJSON) toNext() (nir.Next, error) {
	switch n.Kind {
	case "", "none":
		return nir.NoneNext(), nil
	case "unwind":
		return nir.UnwindNext(nir.Local(n.Label)), nil
	case "label":
		args, err := toVals(n.Args)
		if err != nil {
			return nir.Next{}, err
		}

		return nir.LabelNext(nir.Local(n.Label), args), nil
	case "case":
		if n.Value == nil || n.Next == nil {
			return nir.Next{}, fmt.Errorf("case next requires value and next")
		}

		value, err := n.Value.toVal()
		if err != nil {
			return nir.Next{}, err
		}

		next, err := n.Next.toNext()
		if err != nil {
			return nir.Next{}, err
		}

		return nir.CaseNext(value, next), nil
	default:
		return nir.Next{}, fmt.Errorf("unknown next kind %q (Next.Succ/Next.Fail have no wire encoding)", n.Kind)
	}
}

func toNexts(ns []nextJSON) ([]nir.Next, error) {
	out := make([]nir.Next, len(ns))

	for i, n := range ns {
		v, err := n.toNext()
		if err != nil {
			return nil, err
		}

		out[i] = v
	}

	return out, nil
}

type instJSON struct {
	Kind string `json:"kind"`

	// Label
	Name   int64   `json:"name,omitempty"`
	Params []int64 `json:"params,omitempty"`

	// Let
	Op     *opJSON   `json:"op,omitempty"`
	Unwind *nextJSON `json:"unwind,omitempty"`

	// Ret, Throw
	Value *valJSON `json:"value,omitempty"`

	// Jump
	Next *nextJSON `json:"next,omitempty"`

	// If
	Cond *valJSON  `json:"cond,omitempty"`
	Then *nextJSON `json:"then,omitempty"`
	Else *nextJSON `json:"else,omitempty"`

	// Switch
	Default *nextJSON  `json:"default,omitempty"`
	Cases   []nextJSON `json:"cases,omitempty"`
}

func toLocals(ids []int64) []nir.Local {
	out := make([]nir.Local, len(ids))
	for i, v := range ids {
		out[i] = nir.Local(v)
	}

	return out
}

func (in instJSON) toInst() (nir.Inst, error) {
	switch in.Kind {
	case "", "none":
		return nir.Inst{}, nil
	case "label":
		return nir.LabelInst(nir.Local(in.Name), toLocals(in.Params)), nil
	case "let":
		if in.Op == nil {
			return nir.Inst{}, fmt.Errorf("let inst requires op")
		}

		op, err := in.Op.toOp()
		if err != nil {
			return nir.Inst{}, err
		}

		unwind := nir.NoneNext()

		if in.Unwind != nil {
			unwind, err = in.Unwind.toNext()
			if err != nil {
				return nir.Inst{}, err
			}
		}

		return nir.LetInst(nir.Local(in.Name), op, unwind), nil
	case "unreachable":
		return nir.UnreachableInst(), nil
	case "ret":
		if in.Value == nil {
			return nir.Inst{}, fmt.Errorf("ret inst requires value")
		}

		v, err := in.Value.toVal()
		if err != nil {
			return nir.Inst{}, err
		}

		return nir.RetInst(v), nil
	case "jump":
		if in.Next == nil {
			return nir.Inst{}, fmt.Errorf("jump inst requires next")
		}

		next, err := in.Next.toNext()
		if err != nil {
			return nir.Inst{}, err
		}

		return nir.JumpInst(next), nil
	case "if":
		if in.Cond == nil || in.Then == nil || in.Else == nil {
			return nir.Inst{}, fmt.Errorf("if inst requires cond, then, else")
		}

		cond, err := in.Cond.toVal()
		if err != nil {
			return nir.Inst{}, err
		}

		then, err := in.Then.toNext()
		if err != nil {
			return nir.Inst{}, err
		}

		els, err := in.Else.toNext()
		if err != nil {
			return nir.Inst{}, err
		}

		return nir.IfInst(cond, then, els), nil
	case "switch":
		if in.Value == nil || in.Default == nil {
			return nir.Inst{}, fmt.Errorf("switch inst requires value and default")
		}

		v, err := in.Value.toVal()
		if err != nil {
			return nir.Inst{}, err
		}

		def, err := in.Default.toNext()
		if err != nil {
			return nir.Inst{}, err
		}

		cases, err := toNexts(in.Cases)
		if err != nil {
			return nir.Inst{}, err
		}

		return nir.SwitchInst(v, def, cases), nil
	case "throw":
		if in.Value == nil {
			return nir.Inst{}, fmt.Errorf("throw inst requires value")
		}

		v, err := in.Value.toVal()
		if err != nil {
			return nir.Inst{}, err
		}

		unwind := nir.NoneNext()

		if in.Unwind != nil {
			unwind, err = in.Unwind.toNext()
			if err != nil {
				return nir.Inst{}, err
			}
		}

		return nir.ThrowInst(v, unwind), nil
	default:
		return nir.Inst{}, fmt.Errorf("unknown inst kind %q", in.Kind)
	}
}
