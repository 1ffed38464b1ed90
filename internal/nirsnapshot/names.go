package nirsnapshot

import (
	"fmt"

	"github.com/orizon-lang/nir/internal/nir"
)

type attrJSON struct {
	Kind string `json:"kind"`
	Link string `json:"link,omitempty"`
}

func toAttrs(as []attrJSON) (nir.Attrs, error) {
	var link string

	hasLink := false

	members := make([]nir.Attr, 0, len(as))

	for _, a := range as {
		m, err := a.toAttr()
		if err != nil {
			return nir.Attrs{}, err
		}

		members = append(members, m)

		if m == nir.AttrLink {
			link = a.Link
			hasLink = true
		}
	}

	attrs := nir.NewAttrs(members...)
	if hasLink {
		attrs = attrs.WithLink(link)
	}

	return attrs, nil
}

func (a attrJSON) toAttr() (nir.Attr, error) {
	switch a.Kind {
	case "mayinline":
		return nir.AttrMayInline, nil
	case "inlinehint":
		return nir.AttrInlineHint, nil
	case "noinline":
		return nir.AttrNoInline, nil
	case "alwaysinline":
		return nir.AttrAlwaysInline, nil
	case "dyn":
		return nir.AttrDyn, nil
	case "stub":
		return nir.AttrStub, nil
	case "extern":
		return nir.AttrExtern, nil
	case "link":
		return nir.AttrLink, nil
	default:
		return 0, fmt.Errorf("unknown attr kind %q", a.Kind)
	}
}

type globalJSON struct {
	Kind  string    `json:"kind"`
	Top   string    `json:"top,omitempty"`
	Owner string    `json:"owner,omitempty"`
	Sig   *sigJSON  `json:"sig,omitempty"`
}

func (g globalJSON) toGlobal() (nir.Global, error) {
	switch g.Kind {
	case "", "none":
		return nir.NoneGlobal(), nil
	case "top":
		return nir.TopGlobal(g.Top), nil
	case "member":
		if g.Sig == nil {
			return nir.Global{}, fmt.Errorf("member global requires a sig")
		}

		sig, err := g.Sig.toSig()
		if err != nil {
			return nir.Global{}, err
		}

		return nir.MemberGlobal(nir.TopGlobal(g.Owner), sig), nil
	default:
		return nir.Global{}, fmt.Errorf("unknown global kind %q", g.Kind)
	}
}

// toOptionalGlobal handles the nil-pointer case used for Defn.Class/
// Defn.Module's optional parent field.
func (g *globalJSON) toOptionalGlobal() (*nir.Global, error) {
	if g == nil {
		return nil, nil
	}

	v, err := g.toGlobal()
	if err != nil {
		return nil, err
	}

	return &v, nil
}

type sigJSON struct {
	Kind  string     `json:"kind"`
	ID    string     `json:"id,omitempty"`
	Types []typeJSON `json:"types,omitempty"`
	Inner *sigJSON   `json:"inner,omitempty"`
}

func (s sigJSON) toSig() (nir.Sig, error) {
	types, err := toTypes(s.Types)
	if err != nil {
		return nir.Sig{}, err
	}

	switch s.Kind {
	case "field":
		return nir.Sig{Kind: nir.SigField, ID: s.ID}, nil
	case "ctor":
		return nir.Sig{Kind: nir.SigCtor, Types: types}, nil
	case "method":
		return nir.Sig{Kind: nir.SigMethod, ID: s.ID, Types: types}, nil
	case "proxy":
		return nir.Sig{Kind: nir.SigProxy, ID: s.ID, Types: types}, nil
	case "extern":
		return nir.Sig{Kind: nir.SigExtern, ID: s.ID}, nil
	case "generated":
		return nir.Sig{Kind: nir.SigGenerated, ID: s.ID}, nil
	case "duplicate":
		if s.Inner == nil {
			return nir.Sig{}, fmt.Errorf("duplicate sig requires an inner sig")
		}

		inner, err := s.Inner.toSig()
		if err != nil {
			return nir.Sig{}, err
		}

		return nir.Sig{Kind: nir.SigDuplicate, Inner: &inner, Types: types}, nil
	default:
		return nir.Sig{}, fmt.Errorf("unknown sig kind %q", s.Kind)
	}
}
