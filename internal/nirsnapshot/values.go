package nirsnapshot

import (
	"fmt"

	"github.com/orizon-lang/nir/internal/nir"
)

type valJSON struct {
	Kind string `json:"kind"`

	Type *typeJSON `json:"type,omitempty"`

	I8  int8  `json:"i8,omitempty"`
	I16 int16 `json:"i16,omitempty"`
	I32 int32 `json:"i32,omitempty"`
	I64 int64 `json:"i64,omitempty"`

	F32 float32 `json:"f32,omitempty"`
	F64 float64 `json:"f64,omitempty"`

	Vals []valJSON `json:"vals,omitempty"`
	Str  string    `json:"str,omitempty"`

	Name *globalJSON `json:"name,omitempty"`
	Slot int64       `json:"slot,omitempty"`

	Inner *valJSON `json:"inner,omitempty"`
}

func (v valJSON) toVal() (nir.Val, error) {
	switch v.Kind {
	case "none":
		return nir.NoneVal(), nil
	case "true":
		return nir.TrueVal(), nil
	case "false":
		return nir.FalseVal(), nil
	case "null":
		return nir.NullVal(), nil
	case "zero":
		t, err := v.requireType()
		if err != nil {
			return nir.Val{}, err
		}

		return nir.ZeroVal(t), nil
	case "undef":
		t, err := v.requireType()
		if err != nil {
			return nir.Val{}, err
		}

		return nir.UndefVal(t), nil
	case "byte":
		return nir.ByteVal(v.I8), nil
	case "short":
		return nir.ShortVal(v.I16), nil
	case "int":
		return nir.IntVal(v.I32), nil
	case "long":
		return nir.LongVal(v.I64), nil
	case "float":
		return nir.FloatVal(v.F32), nil
	case "double":
		return nir.DoubleVal(v.F64), nil
	case "struct_value":
		vals, err := toVals(v.Vals)
		if err != nil {
			return nir.Val{}, err
		}

		return nir.StructValueVal(vals), nil
	case "array_value":
		t, err := v.requireType()
		if err != nil {
			return nir.Val{}, err
		}

		vals, err := toVals(v.Vals)
		if err != nil {
			return nir.Val{}, err
		}

		return nir.ArrayValueVal(t, vals), nil
	case "chars":
		return nir.CharsVal(v.Str), nil
	case "string":
		return nir.StringVal(v.Str), nil
	case "local":
		t, err := v.requireType()
		if err != nil {
			return nir.Val{}, err
		}

		return nir.LocalVal(nir.Local(v.Slot), t), nil
	case "global":
		t, err := v.requireType()
		if err != nil {
			return nir.Val{}, err
		}

		if v.Name == nil {
			return nir.Val{}, fmt.Errorf("global value requires name")
		}

		name, err := v.Name.toGlobal()
		if err != nil {
			return nir.Val{}, err
		}

		return nir.GlobalVal(name, t), nil
	case "unit":
		return nir.UnitVal(), nil
	case "const":
		if v.Inner == nil {
			return nir.Val{}, fmt.Errorf("const value requires inner")
		}

		inner, err := v.Inner.toVal()
		if err != nil {
			return nir.Val{}, err
		}

		return nir.ConstVal(inner), nil
	case "virtual":
		return nir.VirtualVal(v.I64), nil
	default:
		return nir.Val{}, fmt.Errorf("unknown val kind %q", v.Kind)
	}
}

func (v valJSON) requireType() (nir.Type, error) {
	if v.Type == nil {
		return nir.Type{}, fmt.Errorf("val %q requires a type", v.Kind)
	}

	return v.Type.toType()
}

func toVals(vs []valJSON) ([]nir.Val, error) {
	out := make([]nir.Val, len(vs))

	for i, v := range vs {
		r, err := v.toVal()
		if err != nil {
			return nil, err
		}

		out[i] = r
	}

	return out, nil
}
