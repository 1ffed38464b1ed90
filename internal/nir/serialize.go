package nir

// Serialize encodes an ordered sequence of Defn into sink following the
// two-pass layout in spec.md §4.7:
//
//  1. Write the 12-byte header (magic, compat, revision).
//  2. Write the name index: for each Defn, its Global name, then a
//     placeholder i32 offset slot (remembering the slot's position).
//  3. Write each Defn's payload in the same order, remembering the
//     cursor position as that Defn's offset.
//  4. Seek back to each slot and overwrite it with the recorded offset.
//  5. Restore the cursor to end-of-payload (P6).
//
// Serialize does not mutate its input; it only writes to sink. A
// malformed Defn (e.g. a volatile Op.Load) aborts via panic partway
// through — bytes already committed for earlier Defns remain, spec.md
// §7 does not require rollback.
func Serialize(sink ByteSink, defns []Defn) {
	writeHeader(sink)

	slots := make([]int, len(defns))

	putSeqLen(sink, len(defns))

	for i, d := range defns {
		EncodeGlobal(sink, defnName(d))
		slots[i] = sink.Position()
		sink.PutI32BE(0) // placeholder, back-patched below
	}

	offsets := make([]int, len(defns))

	for i, d := range defns {
		offsets[i] = sink.Position()
		encodeDefnPayload(sink, d)
	}

	end := sink.Position()

	for i, slot := range slots {
		sink.SeekTo(slot)
		sink.PutI32BE(int32(offsets[i]))
	}

	sink.SeekTo(end)
}

func writeHeader(sink ByteSink) {
	sink.PutI32BE(FormatMagic)
	sink.PutI32BE(FormatCompat)
	sink.PutI32BE(FormatRevision)
}

// encodeDefnPayload dispatches a Defn to its tag and fixed payload
// schema (spec.md §3).
func encodeDefnPayload(s ByteSink, d Defn) {
	switch v := d.(type) {
	case *DefnVar:
		s.PutI32BE(TagDefnVar)
		EncodeAttrs(s, v.Attrs)
		EncodeGlobal(s, v.Name)
		EncodeType(s, v.Type)
		EncodeVal(s, v.Value)
	case *DefnConst:
		s.PutI32BE(TagDefnConst)
		EncodeAttrs(s, v.Attrs)
		EncodeGlobal(s, v.Name)
		EncodeType(s, v.Type)
		EncodeVal(s, v.Value)
	case *DefnDeclare:
		s.PutI32BE(TagDefnDeclare)
		EncodeAttrs(s, v.Attrs)
		EncodeGlobal(s, v.Name)
		EncodeType(s, v.Type)
	case *DefnDefine:
		s.PutI32BE(TagDefnDefine)
		EncodeAttrs(s, v.Attrs)
		EncodeGlobal(s, v.Name)
		EncodeType(s, v.Type)
		putSeqLen(s, len(v.Insts))

		for _, in := range v.Insts {
			EncodeInst(s, in)
		}
	case *DefnTrait:
		s.PutI32BE(TagDefnTrait)
		EncodeAttrs(s, v.Attrs)
		EncodeGlobal(s, v.Name)
		encodeGlobalSeq(s, v.Ifaces)
	case *DefnClass:
		s.PutI32BE(TagDefnClass)
		EncodeAttrs(s, v.Attrs)
		EncodeGlobal(s, v.Name)
		encodeOptionalGlobal(s, v.Parent)
		encodeGlobalSeq(s, v.Ifaces)
	case *DefnModule:
		s.PutI32BE(TagDefnModule)
		EncodeAttrs(s, v.Attrs)
		EncodeGlobal(s, v.Name)
		encodeOptionalGlobal(s, v.Parent)
		encodeGlobalSeq(s, v.Ifaces)
	default:
		failPrecondition("DEFN_UNKNOWN", "unknown Defn variant", map[string]any{"type": d})
	}
}

func encodeGlobalSeq(s ByteSink, gs []Global) {
	putSeqLen(s, len(gs))

	for _, g := range gs {
		EncodeGlobal(s, g)
	}
}

func encodeOptionalGlobal(s ByteSink, g *Global) {
	putOptionPresence(s, g != nil)

	if g != nil {
		EncodeGlobal(s, *g)
	}
}
