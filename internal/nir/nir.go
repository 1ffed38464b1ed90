// Package nir defines the in-memory data model for the Native IR (NIR):
// an SSA-style, typed, control-flow-graph intermediate representation
// built from a small, closed family of algebraic constructs. The
// package's encoder (see Serialize) turns a forest of Defn into the
// tagged binary wire format described alongside it; nothing in this
// package constructs or validates IR — it is handed a fully materialized
// tree and encodes exactly what it is given.
package nir

import (
	"fmt"
	"strings"
)

// Defn is a top-level definition. A Defn value holds exactly one of the
// concrete Defn kinds below; Tag reports which, as its wire tag.
type Defn interface {
	defnNode()
	Tag() int32
}

// DefnVar is a top-level mutable variable definition.
type DefnVar struct {
	Attrs Attrs
	Name  Global
	Type  Type
	Value Val
}

// DefnConst is a top-level immutable constant definition.
type DefnConst struct {
	Attrs Attrs
	Name  Global
	Type  Type
	Value Val
}

// DefnDeclare declares a function or global without providing a body.
type DefnDeclare struct {
	Attrs Attrs
	Name  Global
	Type  Type
}

// DefnDefine defines a function body as a sequence of instructions.
type DefnDefine struct {
	Attrs Attrs
	Name  Global
	Type  Type
	Insts []Inst
}

// DefnTrait declares a trait (interface) and the interfaces it extends.
type DefnTrait struct {
	Attrs  Attrs
	Name   Global
	Ifaces []Global
}

// DefnClass declares a class with an optional parent and implemented
// interfaces.
type DefnClass struct {
	Attrs  Attrs
	Name   Global
	Parent *Global // nil when absent
	Ifaces []Global
}

// DefnModule declares a module (a singleton object) with an optional
// parent and implemented interfaces.
type DefnModule struct {
	Attrs  Attrs
	Name   Global
	Parent *Global // nil when absent
	Ifaces []Global
}

func (*DefnVar) defnNode()     {}
func (*DefnConst) defnNode()   {}
func (*DefnDeclare) defnNode() {}
func (*DefnDefine) defnNode()  {}
func (*DefnTrait) defnNode()   {}
func (*DefnClass) defnNode()   {}
func (*DefnModule) defnNode()  {}

func (*DefnVar) Tag() int32     { return TagDefnVar }
func (*DefnConst) Tag() int32   { return TagDefnConst }
func (*DefnDeclare) Tag() int32 { return TagDefnDeclare }
func (*DefnDefine) Tag() int32  { return TagDefnDefine }
func (*DefnTrait) Tag() int32   { return TagDefnTrait }
func (*DefnClass) Tag() int32   { return TagDefnClass }
func (*DefnModule) Tag() int32  { return TagDefnModule }

// defnName returns the Global name every Defn carries, used by the
// top-level serializer to build the name index without a type switch
// repeated at every call site.
func defnName(d Defn) Global {
	switch v := d.(type) {
	case *DefnVar:
		return v.Name
	case *DefnConst:
		return v.Name
	case *DefnDeclare:
		return v.Name
	case *DefnDefine:
		return v.Name
	case *DefnTrait:
		return v.Name
	case *DefnClass:
		return v.Name
	case *DefnModule:
		return v.Name
	default:
		panic(fmt.Sprintf("nir: unknown Defn kind %T", d))
	}
}

// Global is a fully-qualified IR symbol name.
//
// Invariant: the owner of a Member is always a Top (spec invariant 1).
type Global struct {
	Kind  GlobalKind
	Top   string // set when Kind == GlobalTop; a Member's owner id is Owner.Top
	Sig   Sig    // set when Kind == GlobalMember
	Owner *Global
}

// GlobalKind discriminates the Global sum type.
type GlobalKind int32

const (
	GlobalNone GlobalKind = iota
	GlobalTop
	GlobalMember
)

// NoneGlobal constructs the empty Global.
func NoneGlobal() Global { return Global{Kind: GlobalNone} }

// TopGlobal constructs a top-level Global.
func TopGlobal(id string) Global { return Global{Kind: GlobalTop, Top: id} }

// MemberGlobal constructs a Global that is a member of a Top owner.
// Panics (precondition violation) if owner is not itself a Top.
func MemberGlobal(owner Global, sig Sig) Global {
	if owner.Kind != GlobalTop {
		panic(newPrecondition("GLOBAL_MEMBER_OWNER", "Global.Member owner must be Global.Top", map[string]any{
			"owner_kind": owner.Kind,
		}))
	}

	o := owner

	return Global{Kind: GlobalMember, Owner: &o, Sig: sig}
}

func (g Global) String() string {
	switch g.Kind {
	case GlobalNone:
		return "<none>"
	case GlobalTop:
		return g.Top
	case GlobalMember:
		owner := "<invalid-owner>"
		if g.Owner != nil {
			owner = g.Owner.Top
		}

		return fmt.Sprintf("%s.%s", owner, g.Sig.String())
	default:
		return "<unknown-global>"
	}
}

// Sig disambiguates members sharing an owner.
type Sig struct {
	Kind  SigKind
	ID    string
	Types []Type
	Inner *Sig // set when Kind == SigDuplicate
}

// SigKind discriminates the Sig sum type.
type SigKind int32

const (
	SigField SigKind = iota
	SigCtor
	SigMethod
	SigProxy
	SigExtern
	SigGenerated
	SigDuplicate
)

func (s Sig) String() string {
	switch s.Kind {
	case SigField:
		return s.ID
	case SigCtor:
		return "<ctor>"
	case SigMethod:
		return s.ID
	case SigProxy:
		return "proxy." + s.ID
	case SigExtern:
		return "extern." + s.ID
	case SigGenerated:
		return "generated." + s.ID
	case SigDuplicate:
		inner := "<nil>"
		if s.Inner != nil {
			inner = s.Inner.String()
		}

		return fmt.Sprintf("dup(%s)", inner)
	default:
		return "<unknown-sig>"
	}
}

// Local is a function-scope SSA name: an opaque 64-bit identity.
type Local int64

// Attr is a single attribute flag in the closed Attrs set.
type Attr int32

const (
	AttrMayInline Attr = iota
	AttrInlineHint
	AttrNoInline
	AttrAlwaysInline
	AttrDyn
	AttrStub
	AttrExtern
	AttrLink
)

// Attrs is an unordered set of Attr. Link carries a string payload; the
// other members carry none. Because the underlying model is a set, the
// public API never exposes iteration order — EncodeAttrs fixes a
// canonical order (see encode_leaf.go) so output stays reproducible.
type Attrs struct {
	set  map[Attr]struct{}
	link string
}

// NewAttrs builds an Attrs set from the given members. Use WithLink to
// additionally set Attr.Link's payload.
func NewAttrs(members ...Attr) Attrs {
	a := Attrs{set: make(map[Attr]struct{}, len(members))}
	for _, m := range members {
		a.set[m] = struct{}{}
	}

	return a
}

// WithLink returns a copy of a with Attr.Link present and set to s.
func (a Attrs) WithLink(s string) Attrs {
	cp := NewAttrs()
	for m := range a.set {
		cp.set[m] = struct{}{}
	}

	cp.set[AttrLink] = struct{}{}
	cp.link = s

	return cp
}

// Has reports whether a contains the given attribute.
func (a Attrs) Has(m Attr) bool {
	_, ok := a.set[m]

	return ok
}

func (a Attrs) String() string {
	var b strings.Builder

	first := true

	for _, m := range attrCanonicalOrder {
		if !a.Has(m) {
			continue
		}

		if !first {
			b.WriteByte(' ')
		}

		first = false
		b.WriteString(attrNames[m])

		if m == AttrLink {
			fmt.Fprintf(&b, "(%q)", a.link)
		}
	}

	return b.String()
}

var attrCanonicalOrder = []Attr{
	AttrMayInline, AttrInlineHint, AttrNoInline, AttrAlwaysInline,
	AttrDyn, AttrStub, AttrExtern, AttrLink,
}

var attrNames = map[Attr]string{
	AttrMayInline:    "mayinline",
	AttrInlineHint:   "inlinehint",
	AttrNoInline:     "noinline",
	AttrAlwaysInline: "alwaysinline",
	AttrDyn:          "dyn",
	AttrStub:         "stub",
	AttrExtern:       "extern",
	AttrLink:         "link",
}
