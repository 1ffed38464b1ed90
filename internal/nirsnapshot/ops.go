package nirsnapshot

import (
	"fmt"

	"github.com/orizon-lang/nir/internal/nir"
)

var binKinds = map[string]nir.Bin{
	"iadd": nir.BinIadd, "fadd": nir.BinFadd, "isub": nir.BinIsub, "fsub": nir.BinFsub,
	"imul": nir.BinImul, "fmul": nir.BinFmul, "sdiv": nir.BinSdiv, "udiv": nir.BinUdiv,
	"fdiv": nir.BinFdiv, "srem": nir.BinSrem, "urem": nir.BinUrem, "frem": nir.BinFrem,
	"shl": nir.BinShl, "lshr": nir.BinLshr, "ashr": nir.BinAshr, "and": nir.BinAnd,
	"or": nir.BinOr, "xor": nir.BinXor,
}

var compKinds = map[string]nir.Comp{
	"ieq": nir.CompIeq, "ine": nir.CompIne, "ugt": nir.CompUgt, "uge": nir.CompUge,
	"ult": nir.CompUlt, "ule": nir.CompUle, "sgt": nir.CompSgt, "sge": nir.CompSge,
	"slt": nir.CompSlt, "sle": nir.CompSle, "feq": nir.CompFeq, "fne": nir.CompFne,
	"fgt": nir.CompFgt, "fge": nir.CompFge, "flt": nir.CompFlt, "fle": nir.CompFle,
}

var convKinds = map[string]nir.Conv{
	"trunc": nir.ConvTrunc, "zext": nir.ConvZext, "sext": nir.ConvSext,
	"fptrunc": nir.ConvFptrunc, "fpext": nir.ConvFpext, "fptoui": nir.ConvFptoui,
	"fptosi": nir.ConvFptosi, "uitofp": nir.ConvUitofp, "sitofp": nir.ConvSitofp,
	"ptrtoint": nir.ConvPtrtoint, "inttoptr": nir.ConvInttoptr, "bitcast": nir.ConvBitcast,
}

type opJSON struct {
	Kind string `json:"kind"`

	Type *typeJSON `json:"type,omitempty"`

	Callee *valJSON  `json:"callee,omitempty"`
	Args   []valJSON `json:"args,omitempty"`

	Ptr      *valJSON `json:"ptr,omitempty"`
	Value    *valJSON `json:"value,omitempty"`
	Volatile bool     `json:"volatile,omitempty"`

	Base    *valJSON  `json:"base,omitempty"`
	Indices []valJSON `json:"indices,omitempty"`

	Aggregate  *valJSON `json:"aggregate,omitempty"`
	IntIndices []int32  `json:"int_indices,omitempty"`

	Count *valJSON `json:"count,omitempty"`

	BinKind  string   `json:"bin_kind,omitempty"`
	CompKind string   `json:"comp_kind,omitempty"`
	LHS      *valJSON `json:"lhs,omitempty"`
	RHS      *valJSON `json:"rhs,omitempty"`

	ConvKind string   `json:"conv_kind,omitempty"`
	ConvVal  *valJSON `json:"conv_val,omitempty"`

	Cond *valJSON `json:"cond,omitempty"`
	Then *valJSON `json:"then,omitempty"`
	Else *valJSON `json:"else,omitempty"`

	Global *globalJSON `json:"global,omitempty"`

	Obj  *valJSON `json:"obj,omitempty"`
	Recv *valJSON `json:"recv,omitempty"`
	Sig  *sigJSON `json:"sig,omitempty"`

	HasValue bool `json:"has_value,omitempty"`

	CopyVal *valJSON `json:"copy_val,omitempty"`

	Fn       *valJSON  `json:"fn,omitempty"`
	Captures []valJSON `json:"captures,omitempty"`

	Slot *valJSON `json:"slot,omitempty"`

	ArrayLen *valJSON `json:"array_len,omitempty"`
	Index    *valJSON `json:"index,omitempty"`
}

func (o opJSON) requireType() (nir.Type, error) {
	if o.Type == nil {
		return nir.Type{}, fmt.Errorf("op %q requires a type", o.Kind)
	}

	return o.Type.toType()
}

func (o opJSON) requireVal(name string, v *valJSON) (nir.Val, error) {
	if v == nil {
		return nir.Val{}, fmt.Errorf("op %q requires %s", o.Kind, name)
	}

	return v.toVal()
}

func (o opJSON) requireGlobal() (nir.Global, error) {
	if o.Global == nil {
		return nir.Global{}, fmt.Errorf("op %q requires a global", o.Kind)
	}

	return o.Global.toGlobal()
}

func (o opJSON) requireSig() (nir.Sig, error) {
	if o.Sig == nil {
		return nir.Sig{}, fmt.Errorf("op %q requires a sig", o.Kind)
	}

	return o.Sig.toSig()
}

// optionalValue reads the Option<Val> payload shared by As/Is/Box/
// Unbox/Sizeof, via HasValue + Value.
func (o opJSON) optionalValue() (bool, nir.Val, error) {
	if !o.HasValue {
		return false, nir.Val{}, nil
	}

	v, err := o.requireVal("value", o.Value)

	return true, v, err
}

func (o opJSON) toOp() (nir.Op, error) {
	switch o.Kind {
	case "call":
		t, err := o.requireType()
		if err != nil {
			return nir.Op{}, err
		}

		callee, err := o.requireVal("callee", o.Callee)
		if err != nil {
			return nir.Op{}, err
		}

		args, err := toVals(o.Args)
		if err != nil {
			return nir.Op{}, err
		}

		return nir.CallOp(t, callee, args), nil
	case "load":
		t, err := o.requireType()
		if err != nil {
			return nir.Op{}, err
		}

		ptr, err := o.requireVal("ptr", o.Ptr)
		if err != nil {
			return nir.Op{}, err
		}

		return nir.LoadOp(t, ptr, o.Volatile), nil
	case "store":
		t, err := o.requireType()
		if err != nil {
			return nir.Op{}, err
		}

		value, err := o.requireVal("value", o.Value)
		if err != nil {
			return nir.Op{}, err
		}

		ptr, err := o.requireVal("ptr", o.Ptr)
		if err != nil {
			return nir.Op{}, err
		}

		return nir.StoreOp(t, value, ptr, o.Volatile), nil
	case "elem":
		t, err := o.requireType()
		if err != nil {
			return nir.Op{}, err
		}

		base, err := o.requireVal("base", o.Base)
		if err != nil {
			return nir.Op{}, err
		}

		indices, err := toVals(o.Indices)
		if err != nil {
			return nir.Op{}, err
		}

		return nir.ElemOp(t, base, indices), nil
	case "extract":
		agg, err := o.requireVal("aggregate", o.Aggregate)
		if err != nil {
			return nir.Op{}, err
		}

		return nir.ExtractOp(agg, o.IntIndices), nil
	case "insert":
		agg, err := o.requireVal("aggregate", o.Aggregate)
		if err != nil {
			return nir.Op{}, err
		}

		value, err := o.requireVal("value", o.Value)
		if err != nil {
			return nir.Op{}, err
		}

		return nir.InsertOp(agg, value, o.IntIndices), nil
	case "stackalloc":
		t, err := o.requireType()
		if err != nil {
			return nir.Op{}, err
		}

		count, err := o.requireVal("count", o.Count)
		if err != nil {
			return nir.Op{}, err
		}

		return nir.StackallocOp(t, count), nil
	case "bin":
		k, ok := binKinds[o.BinKind]
		if !ok {
			return nir.Op{}, fmt.Errorf("unknown bin kind %q", o.BinKind)
		}

		t, err := o.requireType()
		if err != nil {
			return nir.Op{}, err
		}

		lhs, err := o.requireVal("lhs", o.LHS)
		if err != nil {
			return nir.Op{}, err
		}

		rhs, err := o.requireVal("rhs", o.RHS)
		if err != nil {
			return nir.Op{}, err
		}

		return nir.BinOp(k, t, lhs, rhs), nil
	case "comp":
		k, ok := compKinds[o.CompKind]
		if !ok {
			return nir.Op{}, fmt.Errorf("unknown comp kind %q", o.CompKind)
		}

		t, err := o.requireType()
		if err != nil {
			return nir.Op{}, err
		}

		lhs, err := o.requireVal("lhs", o.LHS)
		if err != nil {
			return nir.Op{}, err
		}

		rhs, err := o.requireVal("rhs", o.RHS)
		if err != nil {
			return nir.Op{}, err
		}

		return nir.CompOp(k, t, lhs, rhs), nil
	case "conv":
		k, ok := convKinds[o.ConvKind]
		if !ok {
			return nir.Op{}, fmt.Errorf("unknown conv kind %q", o.ConvKind)
		}

		t, err := o.requireType()
		if err != nil {
			return nir.Op{}, err
		}

		v, err := o.requireVal("conv_val", o.ConvVal)
		if err != nil {
			return nir.Op{}, err
		}

		return nir.ConvOp(k, t, v), nil
	case "select":
		cond, err := o.requireVal("cond", o.Cond)
		if err != nil {
			return nir.Op{}, err
		}

		then, err := o.requireVal("then", o.Then)
		if err != nil {
			return nir.Op{}, err
		}

		els, err := o.requireVal("else", o.Else)
		if err != nil {
			return nir.Op{}, err
		}

		return nir.SelectOp(cond, then, els), nil
	case "classalloc":
		g, err := o.requireGlobal()
		if err != nil {
			return nir.Op{}, err
		}

		return nir.ClassallocOp(g), nil
	case "field_load":
		t, err := o.requireType()
		if err != nil {
			return nir.Op{}, err
		}

		obj, err := o.requireVal("obj", o.Obj)
		if err != nil {
			return nir.Op{}, err
		}

		g, err := o.requireGlobal()
		if err != nil {
			return nir.Op{}, err
		}

		return nir.FieldLoadOp(t, obj, g), nil
	case "field_store":
		t, err := o.requireType()
		if err != nil {
			return nir.Op{}, err
		}

		obj, err := o.requireVal("obj", o.Obj)
		if err != nil {
			return nir.Op{}, err
		}

		g, err := o.requireGlobal()
		if err != nil {
			return nir.Op{}, err
		}

		value, err := o.requireVal("value", o.Value)
		if err != nil {
			return nir.Op{}, err
		}

		return nir.FieldStoreOp(t, obj, g, value), nil
	case "method":
		recv, err := o.requireVal("recv", o.Recv)
		if err != nil {
			return nir.Op{}, err
		}

		sig, err := o.requireSig()
		if err != nil {
			return nir.Op{}, err
		}

		return nir.MethodOp(recv, sig), nil
	case "dynmethod":
		recv, err := o.requireVal("recv", o.Recv)
		if err != nil {
			return nir.Op{}, err
		}

		sig, err := o.requireSig()
		if err != nil {
			return nir.Op{}, err
		}

		return nir.DynmethodOp(recv, sig), nil
	case "module":
		g, err := o.requireGlobal()
		if err != nil {
			return nir.Op{}, err
		}

		return nir.ModuleOp(g), nil
	case "as":
		t, err := o.requireType()
		if err != nil {
			return nir.Op{}, err
		}

		return nir.AsOp(t), nil
	case "is":
		t, err := o.requireType()
		if err != nil {
			return nir.Op{}, err
		}

		_, v, err := o.optionalValue()
		if err != nil {
			return nir.Op{}, err
		}

		return nir.IsOp(t, v), nil
	case "box":
		t, err := o.requireType()
		if err != nil {
			return nir.Op{}, err
		}

		_, v, err := o.optionalValue()
		if err != nil {
			return nir.Op{}, err
		}

		return nir.BoxOp(t, v), nil
	case "unbox":
		t, err := o.requireType()
		if err != nil {
			return nir.Op{}, err
		}

		_, v, err := o.optionalValue()
		if err != nil {
			return nir.Op{}, err
		}

		return nir.UnboxOp(t, v), nil
	case "sizeof":
		t, err := o.requireType()
		if err != nil {
			return nir.Op{}, err
		}

		return nir.SizeofOp(t), nil
	case "copy":
		v, err := o.requireVal("copy_val", o.CopyVal)
		if err != nil {
			return nir.Op{}, err
		}

		return nir.CopyOp(v), nil
	case "closure":
		t, err := o.requireType()
		if err != nil {
			return nir.Op{}, err
		}

		fn, err := o.requireVal("fn", o.Fn)
		if err != nil {
			return nir.Op{}, err
		}

		captures, err := toVals(o.Captures)
		if err != nil {
			return nir.Op{}, err
		}

		return nir.ClosureOp(t, fn, captures), nil
	case "var":
		t, err := o.requireType()
		if err != nil {
			return nir.Op{}, err
		}

		return nir.VarOp(t), nil
	case "var_load":
		slot, err := o.requireVal("slot", o.Slot)
		if err != nil {
			return nir.Op{}, err
		}

		return nir.VarLoadOp(slot), nil
	case "var_store":
		slot, err := o.requireVal("slot", o.Slot)
		if err != nil {
			return nir.Op{}, err
		}

		value, err := o.requireVal("value", o.Value)
		if err != nil {
			return nir.Op{}, err
		}

		return nir.VarStoreOp(slot, value), nil
	case "array_alloc":
		t, err := o.requireType()
		if err != nil {
			return nir.Op{}, err
		}

		length, err := o.requireVal("array_len", o.ArrayLen)
		if err != nil {
			return nir.Op{}, err
		}

		return nir.ArrayAllocOp(t, length), nil
	case "array_load":
		t, err := o.requireType()
		if err != nil {
			return nir.Op{}, err
		}

		base, err := o.requireVal("base", o.Base)
		if err != nil {
			return nir.Op{}, err
		}

		index, err := o.requireVal("index", o.Index)
		if err != nil {
			return nir.Op{}, err
		}

		return nir.ArrayLoadOp(t, base, index), nil
	case "array_store":
		t, err := o.requireType()
		if err != nil {
			return nir.Op{}, err
		}

		base, err := o.requireVal("base", o.Base)
		if err != nil {
			return nir.Op{}, err
		}

		index, err := o.requireVal("index", o.Index)
		if err != nil {
			return nir.Op{}, err
		}

		value, err := o.requireVal("value", o.Value)
		if err != nil {
			return nir.Op{}, err
		}

		return nir.ArrayStoreOp(t, base, index, value), nil
	case "array_length":
		base, err := o.requireVal("base", o.Base)
		if err != nil {
			return nir.Op{}, err
		}

		return nir.ArrayLengthOp(base), nil
	default:
		return nir.Op{}, fmt.Errorf("unknown op kind %q", o.Kind)
	}
}
