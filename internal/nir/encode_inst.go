package nir

// EncodeInst emits a single Inst: its i32 tag then payload (spec.md
// §4.6 tail). Let has two wire tags — TagInstLet when Unwind is absent
// (Unwind.Kind == NextNone) and TagInstLetUnwind otherwise.
func EncodeInst(s ByteSink, in Inst) {
	switch in.Kind {
	case InstNone:
		s.PutI32BE(TagInstNone)
	case InstLabel:
		s.PutI32BE(TagInstLabel)
		EncodeLocal(s, in.Name)
		encodeLocalSeq(s, in.Params)
	case InstLet:
		if in.Unwind.Kind == NextNone {
			s.PutI32BE(TagInstLet)
			EncodeLocal(s, in.Name)
			EncodeOp(s, in.Op)
		} else {
			s.PutI32BE(TagInstLetUnwind)
			EncodeLocal(s, in.Name)
			EncodeOp(s, in.Op)
			EncodeNext(s, in.Unwind)
		}
	case InstUnreachable:
		s.PutI32BE(TagInstUnreachable)
	case InstRet:
		s.PutI32BE(TagInstRet)
		EncodeVal(s, in.Value)
	case InstJump:
		s.PutI32BE(TagInstJump)
		EncodeNext(s, in.Next)
	case InstIf:
		s.PutI32BE(TagInstIf)
		EncodeVal(s, in.Cond)
		EncodeNext(s, in.Then)
		EncodeNext(s, in.Els)
	case InstSwitch:
		s.PutI32BE(TagInstSwitch)
		EncodeVal(s, in.Value)
		EncodeNext(s, in.Default)
		putSeqLen(s, len(in.Cases))

		for _, c := range in.Cases {
			EncodeNext(s, c)
		}
	case InstThrow:
		s.PutI32BE(TagInstThrow)
		EncodeVal(s, in.Value)
		EncodeNext(s, in.Unwind)
	default:
		failPrecondition("INST_UNKNOWN", "unknown Inst variant", map[string]any{"kind": int32(in.Kind)})
	}
}

// EncodeNext emits a single Next. Next.Succ and Next.Fail are part of
// the accepted IR grammar but have no wire tag in this revision
// (spec.md §9); encoding either is rejected as a precondition
// violation rather than guessing at new tags.
func EncodeNext(s ByteSink, n Next) {
	switch n.Kind {
	case NextNone:
		s.PutI32BE(TagNextNone)
	case NextUnwind:
		s.PutI32BE(TagNextUnwind)
		EncodeLocal(s, n.Label)
	case NextLabel:
		s.PutI32BE(TagNextLabel)
		EncodeLocal(s, n.Label)
		encodeValSeq(s, n.Args)
	case NextCase:
		s.PutI32BE(TagNextCase)
		EncodeVal(s, n.CaseValue)

		if n.CaseNext == nil {
			failPrecondition("NEXT_CASE_NIL_NEXT", "Next.Case requires a non-nil successor", nil)
		}

		EncodeNext(s, *n.CaseNext)
	case nextSucc, nextFail:
		failPrecondition("NEXT_UNENCODABLE", "Next.Succ/Next.Fail have no wire tag in this revision", map[string]any{
			"kind": int32(n.Kind),
		})
	default:
		failPrecondition("NEXT_UNKNOWN", "unknown Next variant", map[string]any{"kind": int32(n.Kind)})
	}
}

func encodeLocalSeq(s ByteSink, ls []Local) {
	putSeqLen(s, len(ls))

	for _, l := range ls {
		EncodeLocal(s, l)
	}
}
