// Package nirsnapshot reads a JSON-described forest of definitions —
// the textual input format cmd/nirc accepts for local testing and
// tooling — and builds the internal/nir in-memory IR from it. This is
// deliberately not a general IR parser (spec.md places "the textual IR
// parser" out of scope for the core): it is a thin, direct JSON
// encoding of the same closed data model internal/nir already defines,
// used only by the ambient CLI/watch/transport tooling around the
// encoder, never by internal/nir itself.
package nirsnapshot

import (
	"encoding/json"
	"fmt"

	"github.com/orizon-lang/nir/internal/nir"
)

// Snapshot is the top-level JSON document: an ordered forest of Defn.
type Snapshot struct {
	Defns []defnJSON `json:"defns"`
}

// Load parses a JSON snapshot document into the ordered Defn slice
// internal/nir.Serialize expects.
func Load(data []byte) ([]nir.Defn, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("nirsnapshot: parse: %w", err)
	}

	out := make([]nir.Defn, len(snap.Defns))

	for i, d := range snap.Defns {
		defn, err := d.toDefn()
		if err != nil {
			return nil, fmt.Errorf("nirsnapshot: defn[%d]: %w", i, err)
		}

		out[i] = defn
	}

	return out, nil
}

type defnJSON struct {
	Kind   string     `json:"kind"`
	Attrs  []attrJSON `json:"attrs,omitempty"`
	Name   globalJSON `json:"name"`
	Type   *typeJSON  `json:"type,omitempty"`
	Value  *valJSON   `json:"value,omitempty"`
	Insts  []instJSON `json:"insts,omitempty"`
	Parent *globalJSON `json:"parent,omitempty"`
	Ifaces []globalJSON `json:"ifaces,omitempty"`
}

func (d defnJSON) toDefn() (nir.Defn, error) {
	attrs, err := toAttrs(d.Attrs)
	if err != nil {
		return nil, err
	}

	name, err := d.Name.toGlobal()
	if err != nil {
		return nil, err
	}

	switch d.Kind {
	case "var":
		t, v, err := d.typeAndValue()
		if err != nil {
			return nil, err
		}

		return &nir.DefnVar{Attrs: attrs, Name: name, Type: t, Value: v}, nil
	case "const":
		t, v, err := d.typeAndValue()
		if err != nil {
			return nil, err
		}

		return &nir.DefnConst{Attrs: attrs, Name: name, Type: t, Value: v}, nil
	case "declare":
		t, err := d.requireType()
		if err != nil {
			return nil, err
		}

		return &nir.DefnDeclare{Attrs: attrs, Name: name, Type: t}, nil
	case "define":
		t, err := d.requireType()
		if err != nil {
			return nil, err
		}

		insts := make([]nir.Inst, len(d.Insts))

		for i, in := range d.Insts {
			inst, err := in.toInst()
			if err != nil {
				return nil, fmt.Errorf("inst[%d]: %w", i, err)
			}

			insts[i] = inst
		}

		return &nir.DefnDefine{Attrs: attrs, Name: name, Type: t, Insts: insts}, nil
	case "trait":
		ifaces, err := toGlobals(d.Ifaces)
		if err != nil {
			return nil, err
		}

		return &nir.DefnTrait{Attrs: attrs, Name: name, Ifaces: ifaces}, nil
	case "class":
		ifaces, err := toGlobals(d.Ifaces)
		if err != nil {
			return nil, err
		}

		parent, err := d.Parent.toOptionalGlobal()
		if err != nil {
			return nil, err
		}

		return &nir.DefnClass{Attrs: attrs, Name: name, Parent: parent, Ifaces: ifaces}, nil
	case "module":
		ifaces, err := toGlobals(d.Ifaces)
		if err != nil {
			return nil, err
		}

		parent, err := d.Parent.toOptionalGlobal()
		if err != nil {
			return nil, err
		}

		return &nir.DefnModule{Attrs: attrs, Name: name, Parent: parent, Ifaces: ifaces}, nil
	default:
		return nil, fmt.Errorf("unknown defn kind %q", d.Kind)
	}
}

func (d defnJSON) requireType() (nir.Type, error) {
	if d.Type == nil {
		return nir.Type{}, fmt.Errorf("defn %q requires a type", d.Kind)
	}

	return d.Type.toType()
}

func (d defnJSON) typeAndValue() (nir.Type, nir.Val, error) {
	t, err := d.requireType()
	if err != nil {
		return nir.Type{}, nir.Val{}, err
	}

	if d.Value == nil {
		return nir.Type{}, nir.Val{}, fmt.Errorf("defn %q requires a value", d.Kind)
	}

	v, err := d.Value.toVal()
	if err != nil {
		return nir.Type{}, nir.Val{}, err
	}

	return t, v, nil
}

func toGlobals(gs []globalJSON) ([]nir.Global, error) {
	out := make([]nir.Global, len(gs))

	for i, g := range gs {
		v, err := g.toGlobal()
		if err != nil {
			return nil, err
		}

		out[i] = v
	}

	return out, nil
}
