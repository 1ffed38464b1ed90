package nir

// EncodeVal emits a single Val (spec.md §4.6). Two contracts apply:
//
//   - Val.Null has no dedicated wire tag in this revision: it is
//     emitted identically to Val.Zero(Type.Ptr) (invariant 3, design
//     note §9). A decoder can never distinguish the two; this is an
//     acknowledged wart in the current wire revision, not a bug.
//   - Val.Virtual uses i64, not i32.
func EncodeVal(s ByteSink, v Val) {
	if v.Kind == ValNull {
		v = ZeroVal(PrimitiveType(TypePtr))
	}

	switch v.Kind {
	case ValNone:
		s.PutI32BE(TagValNone)
	case ValTrue:
		s.PutI32BE(TagValTrue)
	case ValFalse:
		s.PutI32BE(TagValFalse)
	case ValZero:
		s.PutI32BE(TagValZero)
		EncodeType(s, v.Type)
	case ValUndef:
		s.PutI32BE(TagValUndef)
		EncodeType(s, v.Type)
	case ValByte:
		s.PutI32BE(TagValByte)
		s.PutU8(byte(v.I8))
	case ValShort:
		s.PutI32BE(TagValShort)
		s.PutI16BE(v.I16)
	case ValInt:
		s.PutI32BE(TagValInt)
		s.PutI32BE(v.I32)
	case ValLong:
		s.PutI32BE(TagValLong)
		s.PutI64BE(v.I64)
	case ValFloat:
		s.PutI32BE(TagValFloat)
		s.PutF32BE(v.F32)
	case ValDouble:
		s.PutI32BE(TagValDouble)
		s.PutF64BE(v.F64)
	case ValStructValue:
		s.PutI32BE(TagValStructValue)
		encodeValSeq(s, v.Vals)
	case ValArrayValue:
		s.PutI32BE(TagValArrayValue)
		EncodeType(s, v.Type)
		encodeValSeq(s, v.Vals)
	case ValChars:
		s.PutI32BE(TagValChars)
		putString(s, v.Str)
	case ValLocal:
		s.PutI32BE(TagValLocal)
		EncodeLocal(s, v.Slot)
		EncodeType(s, v.Type)
	case ValGlobal:
		s.PutI32BE(TagValGlobal)
		EncodeGlobal(s, v.Name)
		EncodeType(s, v.Type)
	case ValUnit:
		s.PutI32BE(TagValUnit)
	case ValConst:
		s.PutI32BE(TagValConst)

		if v.Inner == nil {
			failPrecondition("VAL_CONST_NIL_INNER", "Val.Const requires a non-nil inner value", nil)
		}

		EncodeVal(s, *v.Inner)
	case ValString:
		s.PutI32BE(TagValString)
		putString(s, v.Str)
	case ValVirtual:
		s.PutI32BE(TagValVirtual)
		s.PutI64BE(v.I64)
	default:
		failPrecondition("VAL_UNKNOWN", "unknown Val variant", map[string]any{"kind": int32(v.Kind)})
	}
}

// encodeValSeq emits a Seq<Val>.
func encodeValSeq(s ByteSink, vs []Val) {
	putSeqLen(s, len(vs))

	for _, v := range vs {
		EncodeVal(s, v)
	}
}
