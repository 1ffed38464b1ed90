package nir

import "encoding/binary"

// reader is a minimal, test-only cursor over an encoded byte stream. It
// understands just enough of the tag set to let this package's own
// tests assert round-trip (P1) and index-fidelity (P2) properties; it
// is not "the decoder" spec.md places out of scope (§1) — it ships no
// public API and is never imported outside _test.go files.
type reader struct {
	buf []byte
	pos int
}

func newReader(buf []byte) *reader { return &reader{buf: buf} }

func (r *reader) i32() int32 {
	v := int32(binary.BigEndian.Uint32(r.buf[r.pos:]))
	r.pos += 4

	return v
}

func (r *reader) i64() int64 {
	v := int64(binary.BigEndian.Uint64(r.buf[r.pos:]))
	r.pos += 8

	return v
}

func (r *reader) u8() byte {
	v := r.buf[r.pos]
	r.pos++

	return v
}

func (r *reader) bytes(n int) []byte {
	v := r.buf[r.pos : r.pos+n]
	r.pos += n

	return v
}

func (r *reader) str() string {
	n := int(r.i32())

	return string(r.bytes(n))
}

func (r *reader) bool() bool { return r.u8() != 0 }

// header reads and returns the three header words.
func (r *reader) header() (magic, compat, revision int32) {
	return r.i32(), r.i32(), r.i32()
}

// global reads a Global matching EncodeGlobal's schema.
func (r *reader) global() Global {
	switch r.i32() {
	case TagGlobalNone:
		return NoneGlobal()
	case TagGlobalTop:
		return TopGlobal(r.str())
	case TagGlobalMember:
		owner := r.str()

		return MemberGlobal(TopGlobal(owner), r.sig())
	default:
		panic("reader: unknown Global tag")
	}
}

func (r *reader) sig() Sig {
	switch r.i32() {
	case TagSigField:
		return Sig{Kind: SigField, ID: r.str()}
	case TagSigCtor:
		return Sig{Kind: SigCtor, Types: r.typeSeq()}
	case TagSigMethod:
		id := r.str()

		return Sig{Kind: SigMethod, ID: id, Types: r.typeSeq()}
	case TagSigProxy:
		id := r.str()

		return Sig{Kind: SigProxy, ID: id, Types: r.typeSeq()}
	case TagSigExtern:
		return Sig{Kind: SigExtern, ID: r.str()}
	case TagSigGenerated:
		return Sig{Kind: SigGenerated, ID: r.str()}
	case TagSigDuplicate:
		inner := r.sig()

		return Sig{Kind: SigDuplicate, Inner: &inner, Types: r.typeSeq()}
	default:
		panic("reader: unknown Sig tag")
	}
}

func (r *reader) typeSeq() []Type {
	n := int(r.i32())
	out := make([]Type, n)

	for i := range out {
		out[i] = r.typ()
	}

	return out
}

func (r *reader) typ() Type {
	tag := r.i32()

	switch tag {
	case TagTypeArrayValue:
		elem := r.typ()
		n := r.i32()

		return ArrayValueType(elem, n)
	case TagTypeStructValue:
		return StructValueType(r.typeSeq())
	case TagTypeFunction:
		args := r.typeSeq()
		ret := r.typ()

		return FunctionType(args, ret)
	case TagTypeVar:
		return VarType(r.typ())
	case TagTypeArray:
		elem := r.typ()

		return ArrayType(elem, r.bool())
	case TagTypeRef:
		name := r.global()

		return RefType(name, r.bool(), r.bool())
	default:
		for k, name := range primitiveTypeNames {
			if typeTagOf(k) == tag {
				_ = name

				return PrimitiveType(k)
			}
		}

		panic("reader: unknown Type tag")
	}
}

func (r *reader) val() Val {
	tag := r.i32()

	switch tag {
	case TagValNone:
		return NoneVal()
	case TagValTrue:
		return TrueVal()
	case TagValFalse:
		return FalseVal()
	case TagValZero:
		return ZeroVal(r.typ())
	case TagValUndef:
		return UndefVal(r.typ())
	case TagValByte:
		return ByteVal(int8(r.u8()))
	case TagValShort:
		hi := r.u8()
		lo := r.u8()

		return ShortVal(int16(uint16(hi)<<8 | uint16(lo)))
	case TagValInt:
		return IntVal(r.i32())
	case TagValLong:
		return LongVal(r.i64())
	case TagValFloat:
		return FloatVal(float32frombits(uint32(r.i32())))
	case TagValDouble:
		return DoubleVal(float64frombits(uint64(r.i64())))
	case TagValStructValue:
		return StructValueVal(r.valSeq())
	case TagValArrayValue:
		t := r.typ()

		return ArrayValueVal(t, r.valSeq())
	case TagValChars:
		return CharsVal(r.str())
	case TagValLocal:
		name := Local(r.i64())

		return LocalVal(name, r.typ())
	case TagValGlobal:
		name := r.global()

		return GlobalVal(name, r.typ())
	case TagValUnit:
		return UnitVal()
	case TagValConst:
		inner := r.val()

		return ConstVal(inner)
	case TagValString:
		return StringVal(r.str())
	case TagValVirtual:
		return VirtualVal(r.i64())
	default:
		panic("reader: unknown Val tag")
	}
}

func (r *reader) valSeq() []Val {
	n := int(r.i32())
	out := make([]Val, n)

	for i := range out {
		out[i] = r.val()
	}

	return out
}

func (r *reader) local() Local { return Local(r.i64()) }

func (r *reader) localSeq() []Local {
	n := int(r.i32())
	out := make([]Local, n)

	for i := range out {
		out[i] = r.local()
	}

	return out
}

func (r *reader) next() Next {
	switch r.i32() {
	case TagNextNone:
		return NoneNext()
	case TagNextUnwind:
		return UnwindNext(r.local())
	case TagNextLabel:
		label := r.local()

		return LabelNext(label, r.valSeq())
	case TagNextCase:
		value := r.val()
		inner := r.next()

		return CaseNext(value, inner)
	default:
		panic("reader: unknown Next tag")
	}
}

func (r *reader) inst() Inst {
	switch r.i32() {
	case TagInstNone:
		return Inst{Kind: InstNone}
	case TagInstLabel:
		name := r.local()

		return LabelInst(name, r.localSeq())
	case TagInstLet:
		name := r.local()
		op := r.op()

		return LetInst(name, op, NoneNext())
	case TagInstLetUnwind:
		name := r.local()
		op := r.op()

		return LetInst(name, op, r.next())
	case TagInstUnreachable:
		return UnreachableInst()
	case TagInstRet:
		return RetInst(r.val())
	case TagInstJump:
		return JumpInst(r.next())
	case TagInstIf:
		cond := r.val()
		then := r.next()

		return IfInst(cond, then, r.next())
	case TagInstSwitch:
		value := r.val()
		def := r.next()
		n := int(r.i32())
		cases := make([]Next, n)

		for i := range cases {
			cases[i] = r.next()
		}

		return SwitchInst(value, def, cases)
	case TagInstThrow:
		value := r.val()

		return ThrowInst(value, r.next())
	default:
		panic("reader: unknown Inst tag")
	}
}

func (r *reader) op() Op {
	switch r.i32() {
	case TagOpCall:
		t := r.typ()
		callee := r.val()

		return CallOp(t, callee, r.valSeq())
	case TagOpLoad:
		t := r.typ()

		return LoadOp(t, r.val(), false)
	case TagOpStore:
		t := r.typ()
		value := r.val()

		return StoreOp(t, value, r.val(), false)
	case TagOpElem:
		t := r.typ()
		base := r.val()

		return ElemOp(t, base, r.valSeq())
	case TagOpExtract:
		agg := r.val()

		return ExtractOp(agg, r.i32Seq())
	case TagOpInsert:
		agg := r.val()
		value := r.val()

		return InsertOp(agg, value, r.i32Seq())
	case TagOpStackalloc:
		t := r.typ()

		return StackallocOp(t, r.val())
	case TagOpBin:
		kind := r.binKind()
		t := r.typ()
		lhs := r.val()

		return BinOp(kind, t, lhs, r.val())
	case TagOpComp:
		kind := r.compKind()
		t := r.typ()
		lhs := r.val()

		return CompOp(kind, t, lhs, r.val())
	case TagOpConv:
		kind := r.convKind()
		t := r.typ()

		return ConvOp(kind, t, r.val())
	case TagOpSelect:
		cond := r.val()
		then := r.val()

		return SelectOp(cond, then, r.val())
	case TagOpClassalloc:
		return ClassallocOp(r.global())
	case TagOpFieldLoad:
		t := r.typ()
		obj := r.val()

		return FieldLoadOp(t, obj, r.global())
	case TagOpFieldStore:
		t := r.typ()
		obj := r.val()
		field := r.global()

		return FieldStoreOp(t, obj, field, r.val())
	case TagOpMethod:
		recv := r.val()

		return MethodOp(recv, r.sig())
	case TagOpDynmethod:
		recv := r.val()

		return DynmethodOp(recv, r.sig())
	case TagOpModule:
		return ModuleOp(r.global())
	case TagOpAs:
		t := r.typ()
		r.optionalValue()

		return AsOp(t)
	case TagOpIs:
		t := r.typ()
		_, v := r.optionalValue()

		return IsOp(t, v)
	case TagOpBox:
		t := r.typ()
		_, v := r.optionalValue()

		return BoxOp(t, v)
	case TagOpUnbox:
		t := r.typ()
		_, v := r.optionalValue()

		return UnboxOp(t, v)
	case TagOpSizeof:
		t := r.typ()
		r.optionalValue()

		return SizeofOp(t)
	case TagOpCopy:
		return CopyOp(r.val())
	case TagOpClosure:
		t := r.typ()
		fn := r.val()

		return ClosureOp(t, fn, r.valSeq())
	case TagOpVar:
		return VarOp(r.typ())
	case TagOpVarLoad:
		return VarLoadOp(r.val())
	case TagOpVarStore:
		slot := r.val()

		return VarStoreOp(slot, r.val())
	case TagOpArrayAlloc:
		t := r.typ()

		return ArrayAllocOp(t, r.val())
	case TagOpArrayLoad:
		t := r.typ()
		base := r.val()

		return ArrayLoadOp(t, base, r.val())
	case TagOpArrayStore:
		t := r.typ()
		base := r.val()
		index := r.val()

		return ArrayStoreOp(t, base, index, r.val())
	case TagOpArrayLength:
		return ArrayLengthOp(r.val())
	default:
		panic("reader: unsupported Op tag in test decoder")
	}
}

// optionalValue reads the Option<Val> tail shared by As/Is/Box/Unbox/Sizeof.
func (r *reader) optionalValue() (bool, Val) {
	present := r.bool()

	if !present {
		return false, Val{}
	}

	return true, r.val()
}

func (r *reader) i32Seq() []int32 {
	n := int(r.i32())
	out := make([]int32, n)

	for i := range out {
		out[i] = r.i32()
	}

	return out
}

func (r *reader) binKind() Bin {
	tag := r.i32()
	for k := BinIadd; k <= BinXor; k++ {
		if binTagOf(k) == tag {
			return k
		}
	}

	panic("reader: unknown Bin tag")
}

func (r *reader) compKind() Comp {
	tag := r.i32()
	for k := CompIeq; k <= CompFle; k++ {
		if compTagOf(k) == tag {
			return k
		}
	}

	panic("reader: unknown Comp tag")
}

func (r *reader) convKind() Conv {
	tag := r.i32()
	for k := ConvTrunc; k <= ConvBitcast; k++ {
		if convTagOf(k) == tag {
			return k
		}
	}

	panic("reader: unknown Conv tag")
}
