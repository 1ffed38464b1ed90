package nir

import "fmt"

// ValKind discriminates the Val sum type.
type ValKind int32

const (
	ValNone ValKind = iota
	ValTrue
	ValFalse
	ValNull // alias: encodes identically to ValZero(Type.Ptr); see invariant 3.
	ValZero
	ValUndef
	ValByte
	ValShort
	ValInt
	ValLong
	ValFloat
	ValDouble
	ValStructValue
	ValArrayValue
	ValChars
	ValLocal
	ValGlobal
	ValUnit
	ValConst
	ValString
	ValVirtual
)

// Val is a single NIR value. Only the fields relevant to Kind are
// meaningful.
type Val struct {
	Kind ValKind

	Type Type // ValZero, ValUndef, ValLocal, ValGlobal

	I8  int8  // ValByte
	I16 int16 // ValShort
	I32 int32 // ValInt
	I64 int64 // ValLong, ValVirtual

	F32 float32 // ValFloat
	F64 float64 // ValDouble

	Vals []Val // ValStructValue, ValArrayValue (elements)
	Str  string

	Name Global // ValGlobal
	Slot Local  // ValLocal

	Inner *Val // ValConst
}

// Convenience constructors for each Val variant.
func NoneVal() Val    { return Val{Kind: ValNone} }
func TrueVal() Val    { return Val{Kind: ValTrue} }
func FalseVal() Val   { return Val{Kind: ValFalse} }
func UnitVal() Val    { return Val{Kind: ValUnit} }
func ZeroVal(t Type) Val { return Val{Kind: ValZero, Type: t} }
func UndefVal(t Type) Val { return Val{Kind: ValUndef, Type: t} }

// NullVal constructs the Val.Null alias. It carries no distinguishing
// wire tag: EncodeVal emits it exactly as ZeroVal(Type.Ptr) (spec
// invariant 3, design note in §9). Decoding any encoded stream can never
// recover the difference between NullVal() and ZeroVal(PrimitiveType(TypePtr)).
func NullVal() Val { return Val{Kind: ValNull} }

func ByteVal(v int8) Val     { return Val{Kind: ValByte, I8: v} }
func ShortVal(v int16) Val   { return Val{Kind: ValShort, I16: v} }
func IntVal(v int32) Val     { return Val{Kind: ValInt, I32: v} }
func LongVal(v int64) Val    { return Val{Kind: ValLong, I64: v} }
func FloatVal(v float32) Val { return Val{Kind: ValFloat, F32: v} }
func DoubleVal(v float64) Val { return Val{Kind: ValDouble, F64: v} }

func StructValueVal(vs []Val) Val { return Val{Kind: ValStructValue, Vals: vs} }
func ArrayValueVal(t Type, vs []Val) Val {
	return Val{Kind: ValArrayValue, Type: t, Vals: vs}
}

func CharsVal(s string) Val  { return Val{Kind: ValChars, Str: s} }
func StringVal(s string) Val { return Val{Kind: ValString, Str: s} }

// LocalVal constructs Val.Local(name, ty): a reference to a
// function-scope SSA name (see Local in the GLOSSARY), not a Global.
func LocalVal(name Local, t Type) Val {
	return Val{Kind: ValLocal, Slot: name, Type: t}
}

func GlobalVal(name Global, t Type) Val {
	return Val{Kind: ValGlobal, Name: name, Type: t}
}

func VirtualVal(v int64) Val { return Val{Kind: ValVirtual, I64: v} }

func ConstVal(inner Val) Val { return Val{Kind: ValConst, Inner: &inner} }

func (v Val) String() string {
	switch v.Kind {
	case ValNone:
		return "<none>"
	case ValTrue:
		return "true"
	case ValFalse:
		return "false"
	case ValNull:
		return "null"
	case ValZero:
		return fmt.Sprintf("zero[%s]", v.Type.String())
	case ValUndef:
		return fmt.Sprintf("undef[%s]", v.Type.String())
	case ValByte:
		return fmt.Sprintf("%di8", v.I8)
	case ValShort:
		return fmt.Sprintf("%di16", v.I16)
	case ValInt:
		return fmt.Sprintf("%di32", v.I32)
	case ValLong:
		return fmt.Sprintf("%di64", v.I64)
	case ValFloat:
		return fmt.Sprintf("%gf32", v.F32)
	case ValDouble:
		return fmt.Sprintf("%gf64", v.F64)
	case ValStructValue:
		return fmt.Sprintf("struct(%d)", len(v.Vals))
	case ValArrayValue:
		return fmt.Sprintf("array[%s](%d)", v.Type.String(), len(v.Vals))
	case ValChars:
		return fmt.Sprintf("c%q", v.Str)
	case ValLocal:
		return fmt.Sprintf("%%%d: %s", int64(v.Slot), v.Type.String())
	case ValGlobal:
		return fmt.Sprintf("@%s: %s", v.Name.String(), v.Type.String())
	case ValUnit:
		return "()"
	case ValConst:
		if v.Inner == nil {
			return "const(<nil>)"
		}

		return "const(" + v.Inner.String() + ")"
	case ValString:
		return fmt.Sprintf("%q", v.Str)
	case ValVirtual:
		return fmt.Sprintf("virtual(%d)", v.I64)
	default:
		return "<unknown-val>"
	}
}
