package nirsnapshot

import (
	"fmt"

	"github.com/orizon-lang/nir/internal/nir"
)

type typeJSON struct {
	Kind string `json:"kind"`

	// ArrayValue
	Elem   *typeJSON `json:"elem,omitempty"`
	Length int32     `json:"length,omitempty"`

	// StructValue
	Fields []typeJSON `json:"fields,omitempty"`

	// Function
	Args []typeJSON `json:"args,omitempty"`
	Ret  *typeJSON  `json:"ret,omitempty"`

	// Array, Ref
	Nullable bool `json:"nullable,omitempty"`

	// Ref
	Name  *globalJSON `json:"name,omitempty"`
	Exact bool        `json:"exact,omitempty"`
}

var primitiveTypeKinds = map[string]nir.TypeKind{
	"none": nir.TypeNone, "void": nir.TypeVoid, "vararg": nir.TypeVararg,
	"ptr": nir.TypePtr, "bool": nir.TypeBool, "char": nir.TypeChar,
	"byte": nir.TypeByte, "ubyte": nir.TypeUByte, "short": nir.TypeShort,
	"ushort": nir.TypeUShort, "int": nir.TypeInt, "uint": nir.TypeUInt,
	"long": nir.TypeLong, "ulong": nir.TypeULong, "float": nir.TypeFloat,
	"double": nir.TypeDouble, "null": nir.TypeNull, "nothing": nir.TypeNothing,
	"virtual": nir.TypeVirtual, "unit": nir.TypeUnit,
}

func (t typeJSON) toType() (nir.Type, error) {
	if k, ok := primitiveTypeKinds[t.Kind]; ok {
		return nir.PrimitiveType(k), nil
	}

	switch t.Kind {
	case "array_value":
		if t.Elem == nil {
			return nir.Type{}, fmt.Errorf("array_value type requires elem")
		}

		elem, err := t.Elem.toType()
		if err != nil {
			return nir.Type{}, err
		}

		return nir.ArrayValueType(elem, t.Length), nil
	case "struct_value":
		fields, err := toTypes(t.Fields)
		if err != nil {
			return nir.Type{}, err
		}

		return nir.StructValueType(fields), nil
	case "function":
		args, err := toTypes(t.Args)
		if err != nil {
			return nir.Type{}, err
		}

		if t.Ret == nil {
			return nir.Type{}, fmt.Errorf("function type requires ret")
		}

		ret, err := t.Ret.toType()
		if err != nil {
			return nir.Type{}, err
		}

		return nir.FunctionType(args, ret), nil
	case "var":
		if t.Elem == nil {
			return nir.Type{}, fmt.Errorf("var type requires elem")
		}

		elem, err := t.Elem.toType()
		if err != nil {
			return nir.Type{}, err
		}

		return nir.VarType(elem), nil
	case "array":
		if t.Elem == nil {
			return nir.Type{}, fmt.Errorf("array type requires elem")
		}

		elem, err := t.Elem.toType()
		if err != nil {
			return nir.Type{}, err
		}

		return nir.ArrayType(elem, t.Nullable), nil
	case "ref":
		if t.Name == nil {
			return nir.Type{}, fmt.Errorf("ref type requires name")
		}

		name, err := t.Name.toGlobal()
		if err != nil {
			return nir.Type{}, err
		}

		return nir.RefType(name, t.Exact, t.Nullable), nil
	default:
		return nir.Type{}, fmt.Errorf("unknown type kind %q", t.Kind)
	}
}

func toTypes(ts []typeJSON) ([]nir.Type, error) {
	out := make([]nir.Type, len(ts))

	for i, t := range ts {
		v, err := t.toType()
		if err != nil {
			return nil, err
		}

		out[i] = v
	}

	return out, nil
}
