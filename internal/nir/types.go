package nir

import "fmt"

// TypeKind discriminates the Type sum type. The ordering here fixes the
// wire tag for each primitive (see tags.go); never reorder it.
type TypeKind int32

const (
	TypeNone TypeKind = iota
	TypeVoid
	TypeVararg
	TypePtr
	TypeBool
	TypeChar
	TypeByte
	TypeUByte
	TypeShort
	TypeUShort
	TypeInt
	TypeUInt
	TypeLong
	TypeULong
	TypeFloat
	TypeDouble
	TypeNull
	TypeNothing
	TypeVirtual
	TypeUnit
	TypeArrayValue
	TypeStructValue
	TypeFunction
	TypeVar
	TypeArray
	TypeRef
)

// Type is a single NIR type. Only the fields relevant to Kind are
// meaningful; see each constructor for the exact shape.
type Type struct {
	Kind TypeKind

	// TypeArrayValue
	Elem   *Type
	Length int32

	// TypeStructValue
	Fields []Type

	// TypeFunction
	Args []Type
	Ret  *Type

	// TypeVar, TypeArrayValue's Elem is reused for the wrapped type too

	// TypeArray
	Nullable bool

	// TypeRef
	Name  Global
	Exact bool
}

// Primitive type constructors. Each returns a Type with no payload
// fields set beyond Kind.
func PrimitiveType(k TypeKind) Type { return Type{Kind: k} }

// ArrayValueType constructs Type.ArrayValue(ty, n).
func ArrayValueType(elem Type, n int32) Type {
	return Type{Kind: TypeArrayValue, Elem: &elem, Length: n}
}

// StructValueType constructs Type.StructValue(tys).
func StructValueType(fields []Type) Type {
	return Type{Kind: TypeStructValue, Fields: fields}
}

// FunctionType constructs Type.Function(args, ret).
func FunctionType(args []Type, ret Type) Type {
	return Type{Kind: TypeFunction, Args: args, Ret: &ret}
}

// VarType constructs Type.Var(ty) — a mutable-slot type.
func VarType(elem Type) Type {
	return Type{Kind: TypeVar, Elem: &elem}
}

// ArrayType constructs Type.Array(ty, nullable).
func ArrayType(elem Type, nullable bool) Type {
	return Type{Kind: TypeArray, Elem: &elem, Nullable: nullable}
}

// RefType constructs Type.Ref(name, exact, nullable).
func RefType(name Global, exact, nullable bool) Type {
	return Type{Kind: TypeRef, Name: name, Exact: exact, Nullable: nullable}
}

func (t Type) String() string {
	switch t.Kind {
	case TypeArrayValue:
		return fmt.Sprintf("[%d x %s]", t.Length, t.Elem.String())
	case TypeStructValue:
		return fmt.Sprintf("{%d fields}", len(t.Fields))
	case TypeFunction:
		return fmt.Sprintf("(%d args) -> %s", len(t.Args), t.Ret.String())
	case TypeVar:
		return fmt.Sprintf("var[%s]", t.Elem.String())
	case TypeArray:
		if t.Nullable {
			return fmt.Sprintf("array[%s]?", t.Elem.String())
		}

		return fmt.Sprintf("array[%s]", t.Elem.String())
	case TypeRef:
		suffix := ""
		if t.Exact {
			suffix += "!"
		}

		if t.Nullable {
			suffix += "?"
		}

		return t.Name.String() + suffix
	default:
		if name, ok := primitiveTypeNames[t.Kind]; ok {
			return name
		}

		return "<unknown-type>"
	}
}

var primitiveTypeNames = map[TypeKind]string{
	TypeNone:    "none",
	TypeVoid:    "void",
	TypeVararg:  "vararg",
	TypePtr:     "ptr",
	TypeBool:    "bool",
	TypeChar:    "char",
	TypeByte:    "byte",
	TypeUByte:   "ubyte",
	TypeShort:   "short",
	TypeUShort:  "ushort",
	TypeInt:     "int",
	TypeUInt:    "uint",
	TypeLong:    "long",
	TypeULong:   "ulong",
	TypeFloat:   "float",
	TypeDouble:  "double",
	TypeNull:    "null",
	TypeNothing: "nothing",
	TypeVirtual: "virtual",
	TypeUnit:    "unit",
}
