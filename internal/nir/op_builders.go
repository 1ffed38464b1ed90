package nir

// Constructors below build each Op variant with only the fields that
// variant's schema (spec.md §4.6) actually uses populated. They exist so
// callers (and this package's own tests) don't have to remember which
// struct fields a given OpKind reads.

func CallOp(t Type, callee Val, args []Val) Op {
	return Op{Kind: OpCall, Type: t, Callee: callee, Args: args}
}

// LoadOp builds Op.Load. volatile must be false; EncodeOp enforces this
// at encode time (spec.md §7 precondition class 1).
func LoadOp(t Type, ptr Val, volatile bool) Op {
	return Op{Kind: OpLoad, Type: t, Ptr: ptr, Volatile: volatile}
}

func StoreOp(t Type, value, ptr Val, volatile bool) Op {
	return Op{Kind: OpStore, Type: t, Value: value, Ptr: ptr, Volatile: volatile}
}

func ElemOp(t Type, base Val, indices []Val) Op {
	return Op{Kind: OpElem, Type: t, Base: base, Indices: indices}
}

func ExtractOp(aggregate Val, indices []int32) Op {
	return Op{Kind: OpExtract, Aggregate: aggregate, IntIndices: indices}
}

func InsertOp(aggregate, value Val, indices []int32) Op {
	return Op{Kind: OpInsert, Aggregate: aggregate, Value: value, IntIndices: indices}
}

func StackallocOp(t Type, count Val) Op {
	return Op{Kind: OpStackalloc, Type: t, Count: count}
}

func BinOp(kind Bin, t Type, lhs, rhs Val) Op {
	return Op{Kind: OpBin, BinKind: kind, Type: t, LHS: lhs, RHS: rhs}
}

func CompOp(kind Comp, t Type, lhs, rhs Val) Op {
	return Op{Kind: OpComp, CompKind: kind, Type: t, LHS: lhs, RHS: rhs}
}

func ConvOp(kind Conv, t Type, v Val) Op {
	return Op{Kind: OpConv, ConvKind: kind, Type: t, ConvVal: v}
}

func SelectOp(cond, then, els Val) Op {
	return Op{Kind: OpSelect, Cond: cond, Then: then, Else: els}
}

func ClassallocOp(g Global) Op { return Op{Kind: OpClassalloc, Global: g} }

func FieldLoadOp(t Type, obj Val, field Global) Op {
	return Op{Kind: OpFieldLoad, Type: t, Obj: obj, Global: field}
}

func FieldStoreOp(t Type, obj Val, field Global, value Val) Op {
	return Op{Kind: OpFieldStore, Type: t, Obj: obj, Global: field, Value: value, HasValue: true}
}

func MethodOp(recv Val, sig Sig) Op { return Op{Kind: OpMethod, Recv: recv, Sig: sig} }

func DynmethodOp(recv Val, sig Sig) Op { return Op{Kind: OpDynmethod, Recv: recv, Sig: sig} }

func ModuleOp(g Global) Op { return Op{Kind: OpModule, Global: g} }

func AsOp(t Type) Op { return Op{Kind: OpAs, Type: t} }

func IsOp(t Type, v Val) Op { return Op{Kind: OpIs, Type: t, Value: v, HasValue: true} }

func BoxOp(t Type, v Val) Op { return Op{Kind: OpBox, Type: t, Value: v, HasValue: true} }

func UnboxOp(t Type, v Val) Op { return Op{Kind: OpUnbox, Type: t, Value: v, HasValue: true} }

func SizeofOp(t Type) Op { return Op{Kind: OpSizeof, Type: t} }

func CopyOp(v Val) Op { return Op{Kind: OpCopy, CopyVal: v} }

func ClosureOp(t Type, fn Val, captures []Val) Op {
	return Op{Kind: OpClosure, Type: t, Fn: fn, Captures: captures}
}

func VarOp(t Type) Op { return Op{Kind: OpVar, Type: t} }

func VarLoadOp(slot Val) Op { return Op{Kind: OpVarLoad, Slot: slot} }

func VarStoreOp(slot, value Val) Op {
	return Op{Kind: OpVarStore, Slot: slot, Value: value, HasValue: true}
}

func ArrayAllocOp(t Type, length Val) Op {
	return Op{Kind: OpArrayAlloc, Type: t, ArrayLen: length}
}

func ArrayLoadOp(t Type, base, index Val) Op {
	return Op{Kind: OpArrayLoad, Type: t, Base: base, Index: index}
}

func ArrayStoreOp(t Type, base, index, value Val) Op {
	return Op{Kind: OpArrayStore, Type: t, Base: base, Index: index, Value: value, HasValue: true}
}

func ArrayLengthOp(base Val) Op { return Op{Kind: OpArrayLength, Base: base} }
