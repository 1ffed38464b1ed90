package nir

// EncodeAttrs emits an Attrs set as Seq<Attr>, walking the fixed
// canonical order (attrCanonicalOrder in nir.go) rather than any
// caller-observable iteration order, so output stays reproducible (P4)
// even though the underlying model is an unordered set (spec.md §4.3,
// §9 "Attrs as a set").
func EncodeAttrs(s ByteSink, a Attrs) {
	present := make([]Attr, 0, len(attrCanonicalOrder))

	for _, m := range attrCanonicalOrder {
		if a.Has(m) {
			present = append(present, m)
		}
	}

	putSeqLen(s, len(present))

	for _, m := range present {
		EncodeAttr(s, m, a.link)
	}
}

// EncodeAttr emits a single Attr's tag and, for Attr.Link only, its
// string payload.
func EncodeAttr(s ByteSink, a Attr, link string) {
	s.PutI32BE(attrTagOf(a))

	if a == AttrLink {
		putString(s, link)
	}
}

func attrTagOf(a Attr) int32 {
	switch a {
	case AttrMayInline:
		return TagAttrMayInline
	case AttrInlineHint:
		return TagAttrInlineHint
	case AttrNoInline:
		return TagAttrNoInline
	case AttrAlwaysInline:
		return TagAttrAlwaysInline
	case AttrDyn:
		return TagAttrDyn
	case AttrStub:
		return TagAttrStub
	case AttrExtern:
		return TagAttrExtern
	case AttrLink:
		return TagAttrLink
	default:
		failPrecondition("ATTR_UNKNOWN", "unknown Attr variant", map[string]any{"attr": int32(a)})

		return 0
	}
}

// EncodeBin emits a Bin kind's tag.
func EncodeBin(s ByteSink, b Bin) {
	s.PutI32BE(binTagOf(b))
}

func binTagOf(b Bin) int32 {
	switch b {
	case BinIadd:
		return TagBinIadd
	case BinFadd:
		return TagBinFadd
	case BinIsub:
		return TagBinIsub
	case BinFsub:
		return TagBinFsub
	case BinImul:
		return TagBinImul
	case BinFmul:
		return TagBinFmul
	case BinSdiv:
		return TagBinSdiv
	case BinUdiv:
		return TagBinUdiv
	case BinFdiv:
		return TagBinFdiv
	case BinSrem:
		return TagBinSrem
	case BinUrem:
		return TagBinUrem
	case BinFrem:
		return TagBinFrem
	case BinShl:
		return TagBinShl
	case BinLshr:
		return TagBinLshr
	case BinAshr:
		return TagBinAshr
	case BinAnd:
		return TagBinAnd
	case BinOr:
		return TagBinOr
	case BinXor:
		return TagBinXor
	default:
		failPrecondition("BIN_UNKNOWN", "unknown Bin variant", map[string]any{"bin": int32(b)})

		return 0
	}
}

// EncodeComp emits a Comp kind's tag.
func EncodeComp(s ByteSink, c Comp) {
	s.PutI32BE(compTagOf(c))
}

func compTagOf(c Comp) int32 {
	switch c {
	case CompIeq:
		return TagCompIeq
	case CompIne:
		return TagCompIne
	case CompUgt:
		return TagCompUgt
	case CompUge:
		return TagCompUge
	case CompUlt:
		return TagCompUlt
	case CompUle:
		return TagCompUle
	case CompSgt:
		return TagCompSgt
	case CompSge:
		return TagCompSge
	case CompSlt:
		return TagCompSlt
	case CompSle:
		return TagCompSle
	case CompFeq:
		return TagCompFeq
	case CompFne:
		return TagCompFne
	case CompFgt:
		return TagCompFgt
	case CompFge:
		return TagCompFge
	case CompFlt:
		return TagCompFlt
	case CompFle:
		return TagCompFle
	default:
		failPrecondition("COMP_UNKNOWN", "unknown Comp variant", map[string]any{"comp": int32(c)})

		return 0
	}
}

// EncodeConv emits a Conv kind's tag.
func EncodeConv(s ByteSink, c Conv) {
	s.PutI32BE(convTagOf(c))
}

func convTagOf(c Conv) int32 {
	switch c {
	case ConvTrunc:
		return TagConvTrunc
	case ConvZext:
		return TagConvZext
	case ConvSext:
		return TagConvSext
	case ConvFptrunc:
		return TagConvFptrunc
	case ConvFpext:
		return TagConvFpext
	case ConvFptoui:
		return TagConvFptoui
	case ConvFptosi:
		return TagConvFptosi
	case ConvUitofp:
		return TagConvUitofp
	case ConvSitofp:
		return TagConvSitofp
	case ConvPtrtoint:
		return TagConvPtrtoint
	case ConvInttoptr:
		return TagConvInttoptr
	case ConvBitcast:
		return TagConvBitcast
	default:
		failPrecondition("CONV_UNKNOWN", "unknown Conv variant", map[string]any{"conv": int32(c)})

		return 0
	}
}
