package nir

// EncodeLocal emits a Local as an i64 id.
func EncodeLocal(s ByteSink, l Local) {
	s.PutI64BE(int64(l))
}

// EncodeGlobal emits a Global (spec.md §4.4). A Member whose owner is
// not a Top is a precondition violation (invariant 1); Global values
// built through MemberGlobal can never reach this state, but EncodeGlobal
// re-checks it so a hand-built Global (e.g. from a test fixture or a
// future caller that skips the constructor) is still caught at encode
// time rather than corrupting the stream.
func EncodeGlobal(s ByteSink, g Global) {
	switch g.Kind {
	case GlobalNone:
		s.PutI32BE(TagGlobalNone)
	case GlobalTop:
		s.PutI32BE(TagGlobalTop)
		putString(s, g.Top)
	case GlobalMember:
		if g.Owner == nil || g.Owner.Kind != GlobalTop {
			failPrecondition("GLOBAL_MEMBER_OWNER", "Global.Member owner must be Global.Top", map[string]any{
				"owner": g.Owner,
			})
		}

		s.PutI32BE(TagGlobalMember)
		putString(s, g.Owner.Top)
		EncodeSig(s, g.Sig)
	default:
		failPrecondition("GLOBAL_UNKNOWN", "unknown Global variant", map[string]any{"kind": int32(g.Kind)})
	}
}

// EncodeSig emits a Sig (spec.md §4.4). Duplicate recurses on the
// inner Sig.
func EncodeSig(s ByteSink, sig Sig) {
	switch sig.Kind {
	case SigField:
		s.PutI32BE(TagSigField)
		putString(s, sig.ID)
	case SigCtor:
		s.PutI32BE(TagSigCtor)
		encodeTypeSeq(s, sig.Types)
	case SigMethod:
		s.PutI32BE(TagSigMethod)
		putString(s, sig.ID)
		encodeTypeSeq(s, sig.Types)
	case SigProxy:
		s.PutI32BE(TagSigProxy)
		putString(s, sig.ID)
		encodeTypeSeq(s, sig.Types)
	case SigExtern:
		s.PutI32BE(TagSigExtern)
		putString(s, sig.ID)
	case SigGenerated:
		s.PutI32BE(TagSigGenerated)
		putString(s, sig.ID)
	case SigDuplicate:
		s.PutI32BE(TagSigDuplicate)

		if sig.Inner == nil {
			failPrecondition("SIG_DUPLICATE_NIL_INNER", "Sig.Duplicate requires a non-nil inner Sig", nil)
		}

		EncodeSig(s, *sig.Inner)
		encodeTypeSeq(s, sig.Types)
	default:
		failPrecondition("SIG_UNKNOWN", "unknown Sig variant", map[string]any{"kind": int32(sig.Kind)})
	}
}
