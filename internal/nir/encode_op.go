package nir

// EncodeOp emits an Op: its i32 tag followed by the variant's fixed
// payload schema (spec.md §4.6 table). Op.Load/Op.Store with
// Volatile=true is a precondition violation (spec.md §7 class 1,
// invariant 2) and aborts before any further bytes of this Op are
// committed.
func EncodeOp(s ByteSink, o Op) {
	switch o.Kind {
	case OpCall:
		s.PutI32BE(TagOpCall)
		EncodeType(s, o.Type)
		EncodeVal(s, o.Callee)
		encodeValSeq(s, o.Args)
	case OpLoad:
		if o.Volatile {
			failPrecondition("OP_VOLATILE_LOAD", "Op.Load with isVolatile=true is forbidden", nil)
		}

		s.PutI32BE(TagOpLoad)
		EncodeType(s, o.Type)
		EncodeVal(s, o.Ptr)
	case OpStore:
		if o.Volatile {
			failPrecondition("OP_VOLATILE_STORE", "Op.Store with isVolatile=true is forbidden", nil)
		}

		s.PutI32BE(TagOpStore)
		EncodeType(s, o.Type)
		EncodeVal(s, o.Value)
		EncodeVal(s, o.Ptr)
	case OpElem:
		s.PutI32BE(TagOpElem)
		EncodeType(s, o.Type)
		EncodeVal(s, o.Base)
		encodeValSeq(s, o.Indices)
	case OpExtract:
		s.PutI32BE(TagOpExtract)
		EncodeVal(s, o.Aggregate)
		putI32Seq(s, o.IntIndices)
	case OpInsert:
		s.PutI32BE(TagOpInsert)
		EncodeVal(s, o.Aggregate)
		EncodeVal(s, o.Value)
		putI32Seq(s, o.IntIndices)
	case OpStackalloc:
		s.PutI32BE(TagOpStackalloc)
		EncodeType(s, o.Type)
		EncodeVal(s, o.Count)
	case OpBin:
		s.PutI32BE(TagOpBin)
		EncodeBin(s, o.BinKind)
		EncodeType(s, o.Type)
		EncodeVal(s, o.LHS)
		EncodeVal(s, o.RHS)
	case OpComp:
		s.PutI32BE(TagOpComp)
		EncodeComp(s, o.CompKind)
		EncodeType(s, o.Type)
		EncodeVal(s, o.LHS)
		EncodeVal(s, o.RHS)
	case OpConv:
		s.PutI32BE(TagOpConv)
		EncodeConv(s, o.ConvKind)
		EncodeType(s, o.Type)
		EncodeVal(s, o.ConvVal)
	case OpSelect:
		s.PutI32BE(TagOpSelect)
		EncodeVal(s, o.Cond)
		EncodeVal(s, o.Then)
		EncodeVal(s, o.Else)
	case OpClassalloc:
		s.PutI32BE(TagOpClassalloc)
		EncodeGlobal(s, o.Global)
	case OpFieldLoad:
		s.PutI32BE(TagOpFieldLoad)
		EncodeType(s, o.Type)
		EncodeVal(s, o.Obj)
		EncodeGlobal(s, o.Global)
	case OpFieldStore:
		s.PutI32BE(TagOpFieldStore)
		EncodeType(s, o.Type)
		EncodeVal(s, o.Obj)
		EncodeGlobal(s, o.Global)
		EncodeVal(s, o.Value)
	case OpMethod:
		s.PutI32BE(TagOpMethod)
		EncodeVal(s, o.Recv)
		EncodeSig(s, o.Sig)
	case OpDynmethod:
		s.PutI32BE(TagOpDynmethod)
		EncodeVal(s, o.Recv)
		EncodeSig(s, o.Sig)
	case OpModule:
		s.PutI32BE(TagOpModule)
		EncodeGlobal(s, o.Global)
	case OpAs:
		s.PutI32BE(TagOpAs)
		EncodeType(s, o.Type)
		encodeOptionalValue(s, o)
	case OpIs:
		s.PutI32BE(TagOpIs)
		EncodeType(s, o.Type)
		encodeOptionalValue(s, o)
	case OpBox:
		s.PutI32BE(TagOpBox)
		EncodeType(s, o.Type)
		encodeOptionalValue(s, o)
	case OpUnbox:
		s.PutI32BE(TagOpUnbox)
		EncodeType(s, o.Type)
		encodeOptionalValue(s, o)
	case OpSizeof:
		s.PutI32BE(TagOpSizeof)
		EncodeType(s, o.Type)
		encodeOptionalValue(s, o)
	case OpCopy:
		s.PutI32BE(TagOpCopy)
		EncodeVal(s, o.CopyVal)
	case OpClosure:
		s.PutI32BE(TagOpClosure)
		EncodeType(s, o.Type)
		EncodeVal(s, o.Fn)
		encodeValSeq(s, o.Captures)
	case OpVar:
		s.PutI32BE(TagOpVar)
		EncodeType(s, o.Type)
	case OpVarLoad:
		s.PutI32BE(TagOpVarLoad)
		EncodeVal(s, o.Slot)
	case OpVarStore:
		s.PutI32BE(TagOpVarStore)
		EncodeVal(s, o.Slot)
		EncodeVal(s, o.Value)
	case OpArrayAlloc:
		s.PutI32BE(TagOpArrayAlloc)
		EncodeType(s, o.Type)
		EncodeVal(s, o.ArrayLen)
	case OpArrayLoad:
		s.PutI32BE(TagOpArrayLoad)
		EncodeType(s, o.Type)
		EncodeVal(s, o.Base)
		EncodeVal(s, o.Index)
	case OpArrayStore:
		s.PutI32BE(TagOpArrayStore)
		EncodeType(s, o.Type)
		EncodeVal(s, o.Base)
		EncodeVal(s, o.Index)
		EncodeVal(s, o.Value)
	case OpArrayLength:
		s.PutI32BE(TagOpArrayLength)
		EncodeVal(s, o.Base)
	default:
		failPrecondition("OP_UNKNOWN", "unknown Op variant", map[string]any{"kind": int32(o.Kind)})
	}
}

// encodeOptionalValue emits the Option<Val> tail shared by
// As/Is/Box/Unbox/Sizeof.
func encodeOptionalValue(s ByteSink, o Op) {
	putOptionPresence(s, o.HasValue)

	if o.HasValue {
		EncodeVal(s, o.Value)
	}
}
