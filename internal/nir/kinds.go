package nir

// Bin enumerates arithmetic/bitwise binary operation kinds.
type Bin int32

const (
	BinIadd Bin = iota
	BinFadd
	BinIsub
	BinFsub
	BinImul
	BinFmul
	BinSdiv
	BinUdiv
	BinFdiv
	BinSrem
	BinUrem
	BinFrem
	BinShl
	BinLshr
	BinAshr
	BinAnd
	BinOr
	BinXor
)

// Comp enumerates comparison kinds.
type Comp int32

const (
	CompIeq Comp = iota
	CompIne
	CompUgt
	CompUge
	CompUlt
	CompUle
	CompSgt
	CompSge
	CompSlt
	CompSle
	CompFeq
	CompFne
	CompFgt
	CompFge
	CompFlt
	CompFle
)

// Conv enumerates conversion kinds.
type Conv int32

const (
	ConvTrunc Conv = iota
	ConvZext
	ConvSext
	ConvFptrunc
	ConvFpext
	ConvFptoui
	ConvFptosi
	ConvUitofp
	ConvSitofp
	ConvPtrtoint
	ConvInttoptr
	ConvBitcast
)

var binNames = map[Bin]string{
	BinIadd: "iadd", BinFadd: "fadd", BinIsub: "isub", BinFsub: "fsub",
	BinImul: "imul", BinFmul: "fmul", BinSdiv: "sdiv", BinUdiv: "udiv",
	BinFdiv: "fdiv", BinSrem: "srem", BinUrem: "urem", BinFrem: "frem",
	BinShl: "shl", BinLshr: "lshr", BinAshr: "ashr", BinAnd: "and",
	BinOr: "or", BinXor: "xor",
}

func (b Bin) String() string {
	if s, ok := binNames[b]; ok {
		return s
	}

	return "binop?"
}

var compNames = map[Comp]string{
	CompIeq: "ieq", CompIne: "ine", CompUgt: "ugt", CompUge: "uge",
	CompUlt: "ult", CompUle: "ule", CompSgt: "sgt", CompSge: "sge",
	CompSlt: "slt", CompSle: "sle", CompFeq: "feq", CompFne: "fne",
	CompFgt: "fgt", CompFge: "fge", CompFlt: "flt", CompFle: "fle",
}

func (c Comp) String() string {
	if s, ok := compNames[c]; ok {
		return s
	}

	return "comp?"
}

var convNames = map[Conv]string{
	ConvTrunc: "trunc", ConvZext: "zext", ConvSext: "sext",
	ConvFptrunc: "fptrunc", ConvFpext: "fpext", ConvFptoui: "fptoui",
	ConvFptosi: "fptosi", ConvUitofp: "uitofp", ConvSitofp: "sitofp",
	ConvPtrtoint: "ptrtoint", ConvInttoptr: "inttoptr", ConvBitcast: "bitcast",
}

func (c Conv) String() string {
	if s, ok := convNames[c]; ok {
		return s
	}

	return "conv?"
}
