package nir

// Tag identities for every variant of every sum type in the NIR data
// model. These are a wire contract (spec.md §6): reusing or reordering
// a tag is a breaking change gated by incrementing FormatRevision.
// Centralized here, never inlined, mirroring the teacher's DWARF/ELF
// writers keeping their format constants in one place.
const (
	TagDefnVar int32 = iota
	TagDefnConst
	TagDefnDeclare
	TagDefnDefine
	TagDefnTrait
	TagDefnClass
	TagDefnModule
)

const (
	TagAttrMayInline int32 = iota
	TagAttrInlineHint
	TagAttrNoInline
	TagAttrAlwaysInline
	TagAttrDyn
	TagAttrStub
	TagAttrExtern
	TagAttrLink
)

const (
	TagBinIadd int32 = iota
	TagBinFadd
	TagBinIsub
	TagBinFsub
	TagBinImul
	TagBinFmul
	TagBinSdiv
	TagBinUdiv
	TagBinFdiv
	TagBinSrem
	TagBinUrem
	TagBinFrem
	TagBinShl
	TagBinLshr
	TagBinAshr
	TagBinAnd
	TagBinOr
	TagBinXor
)

const (
	TagCompIeq int32 = iota
	TagCompIne
	TagCompUgt
	TagCompUge
	TagCompUlt
	TagCompUle
	TagCompSgt
	TagCompSge
	TagCompSlt
	TagCompSle
	TagCompFeq
	TagCompFne
	TagCompFgt
	TagCompFge
	TagCompFlt
	TagCompFle
)

const (
	TagConvTrunc int32 = iota
	TagConvZext
	TagConvSext
	TagConvFptrunc
	TagConvFpext
	TagConvFptoui
	TagConvFptosi
	TagConvUitofp
	TagConvSitofp
	TagConvPtrtoint
	TagConvInttoptr
	TagConvBitcast
)

const (
	TagGlobalNone int32 = iota
	TagGlobalTop
	TagGlobalMember
)

const (
	TagSigField int32 = iota
	TagSigCtor
	TagSigMethod
	TagSigProxy
	TagSigExtern
	TagSigGenerated
	TagSigDuplicate
)

// Type tags. spec.md §6 states "23 variants" but §3's explicit
// enumeration lists 26 (20 primitives + 6 composites); this registry
// implements the full 26-entry enumeration (see DESIGN.md Open Question
// decisions).
const (
	TagTypeNone int32 = iota
	TagTypeVoid
	TagTypeVararg
	TagTypePtr
	TagTypeBool
	TagTypeChar
	TagTypeByte
	TagTypeUByte
	TagTypeShort
	TagTypeUShort
	TagTypeInt
	TagTypeUInt
	TagTypeLong
	TagTypeULong
	TagTypeFloat
	TagTypeDouble
	TagTypeNull
	TagTypeNothing
	TagTypeVirtual
	TagTypeUnit
	TagTypeArrayValue
	TagTypeStructValue
	TagTypeFunction
	TagTypeVar
	TagTypeArray
	TagTypeRef
)

// typeTagOf maps a TypeKind to its wire tag. TypeKind and the tag space
// happen to share the same ordering today; this indirection exists so
// the two can diverge without every call site needing to change.
func typeTagOf(k TypeKind) int32 { return int32(k) }

// Val tags. spec.md §6 states "22 variants" but §3 lists 21, of which
// Null has no dedicated tag (it aliases ValZero per invariant 3), so
// there are 20 distinct wire tags (see DESIGN.md Open Question
// decisions). ValNull itself is never tagged — EncodeVal substitutes
// ValZero(Type.Ptr) before tagging.
const (
	TagValNone int32 = iota
	TagValTrue
	TagValFalse
	TagValZero
	TagValUndef
	TagValByte
	TagValShort
	TagValInt
	TagValLong
	TagValFloat
	TagValDouble
	TagValStructValue
	TagValArrayValue
	TagValChars
	TagValLocal
	TagValGlobal
	TagValUnit
	TagValConst
	TagValString
	TagValVirtual
)

const (
	TagNextNone int32 = iota
	TagNextUnwind
	TagNextLabel
	TagNextCase
)

const (
	TagInstNone int32 = iota
	TagInstLabel
	TagInstLet
	TagInstLetUnwind
	TagInstUnreachable
	TagInstRet
	TagInstJump
	TagInstIf
	TagInstSwitch
	TagInstThrow
)

// Op tags. spec.md §6 states "30 variants" but the §4.6 table's
// expansion (Field{load,store}, Var{load,store},
// Array{alloc,load,store,length}) enumerates 31 (see DESIGN.md Open
// Question decisions).
const (
	TagOpCall int32 = iota
	TagOpLoad
	TagOpStore
	TagOpElem
	TagOpExtract
	TagOpInsert
	TagOpStackalloc
	TagOpBin
	TagOpComp
	TagOpConv
	TagOpSelect
	TagOpClassalloc
	TagOpFieldLoad
	TagOpFieldStore
	TagOpMethod
	TagOpDynmethod
	TagOpModule
	TagOpAs
	TagOpIs
	TagOpBox
	TagOpUnbox
	TagOpSizeof
	TagOpCopy
	TagOpClosure
	TagOpVar
	TagOpVarLoad
	TagOpVarStore
	TagOpArrayAlloc
	TagOpArrayLoad
	TagOpArrayStore
	TagOpArrayLength
)

// opTagOf maps an OpKind to its wire tag; OpKind and the tag space share
// ordering today for the same reason as typeTagOf.
func opTagOf(k OpKind) int32 { return int32(k) }

// FormatMagic, FormatCompat and FormatRevision are the three header
// words written by Serialize (spec.md §6). Values are opaque constants
// fixed per release.
const (
	FormatMagic    int32 = 0x4e495200 // "NIR\x00"
	FormatCompat   int32 = 1
	FormatRevision int32 = 1
)
