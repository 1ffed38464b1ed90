package nir

// EncodeType emits a single i32 tag followed by the variant's payload
// fields in declaration order, recursing through nested Types
// (spec.md §4.5).
func EncodeType(s ByteSink, t Type) {
	switch t.Kind {
	case TypeArrayValue:
		s.PutI32BE(typeTagOf(t.Kind))

		if t.Elem == nil {
			failPrecondition("TYPE_ARRAYVALUE_NIL_ELEM", "Type.ArrayValue requires a non-nil element type", nil)
		}

		EncodeType(s, *t.Elem)
		s.PutI32BE(t.Length)
	case TypeStructValue:
		s.PutI32BE(typeTagOf(t.Kind))
		encodeTypeSeq(s, t.Fields)
	case TypeFunction:
		s.PutI32BE(typeTagOf(t.Kind))
		encodeTypeSeq(s, t.Args)

		if t.Ret == nil {
			failPrecondition("TYPE_FUNCTION_NIL_RET", "Type.Function requires a non-nil return type", nil)
		}

		EncodeType(s, *t.Ret)
	case TypeVar:
		s.PutI32BE(typeTagOf(t.Kind))

		if t.Elem == nil {
			failPrecondition("TYPE_VAR_NIL_ELEM", "Type.Var requires a non-nil wrapped type", nil)
		}

		EncodeType(s, *t.Elem)
	case TypeArray:
		s.PutI32BE(typeTagOf(t.Kind))

		if t.Elem == nil {
			failPrecondition("TYPE_ARRAY_NIL_ELEM", "Type.Array requires a non-nil element type", nil)
		}

		EncodeType(s, *t.Elem)
		putBool(s, t.Nullable)
	case TypeRef:
		s.PutI32BE(typeTagOf(t.Kind))
		EncodeGlobal(s, t.Name)
		putBool(s, t.Exact)
		putBool(s, t.Nullable)
	default:
		if _, ok := primitiveTypeNames[t.Kind]; !ok {
			failPrecondition("TYPE_UNKNOWN", "unknown Type variant", map[string]any{"kind": int32(t.Kind)})
		}

		s.PutI32BE(typeTagOf(t.Kind))
	}
}

// encodeTypeSeq emits a Seq<Type>.
func encodeTypeSeq(s ByteSink, ts []Type) {
	putSeqLen(s, len(ts))

	for _, t := range ts {
		EncodeType(s, t)
	}
}
