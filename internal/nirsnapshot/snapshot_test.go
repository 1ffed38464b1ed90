package nirsnapshot

import (
	"testing"

	"github.com/orizon-lang/nir/internal/nir"
)

func TestLoad_DeclareAndDefine(t *testing.T) {
	doc := []byte(`{
		"defns": [
			{
				"kind": "declare",
				"name": {"kind": "top", "top": "malloc"},
				"type": {
					"kind": "function",
					"args": [{"kind": "long"}],
					"ret": {"kind": "ptr"}
				}
			},
			{
				"kind": "define",
				"attrs": [{"kind": "mayinline"}],
				"name": {"kind": "top", "top": "add_one"},
				"type": {
					"kind": "function",
					"args": [{"kind": "int"}],
					"ret": {"kind": "int"}
				},
				"insts": [
					{"kind": "label", "name": 0, "params": [1]},
					{
						"kind": "let",
						"name": 2,
						"op": {
							"kind": "bin",
							"bin_kind": "iadd",
							"type": {"kind": "int"},
							"lhs": {"kind": "local", "slot": 1, "type": {"kind": "int"}},
							"rhs": {"kind": "int", "i32": 1}
						}
					},
					{
						"kind": "ret",
						"value": {"kind": "local", "slot": 2, "type": {"kind": "int"}}
					}
				]
			}
		]
	}`)

	defns, err := Load(doc)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(defns) != 2 {
		t.Fatalf("len(defns) = %d, want 2", len(defns))
	}

	decl, ok := defns[0].(*nir.DefnDeclare)
	if !ok {
		t.Fatalf("defns[0] = %T, want *nir.DefnDeclare", defns[0])
	}

	if decl.Type.Kind != nir.TypeFunction {
		t.Fatalf("decl.Type.Kind = %v, want Function", decl.Type.Kind)
	}

	def, ok := defns[1].(*nir.DefnDefine)
	if !ok {
		t.Fatalf("defns[1] = %T, want *nir.DefnDefine", defns[1])
	}

	if len(def.Insts) != 3 {
		t.Fatalf("len(def.Insts) = %d, want 3", len(def.Insts))
	}

	if def.Insts[1].Kind != nir.InstLet {
		t.Fatalf("def.Insts[1].Kind = %v, want Let", def.Insts[1].Kind)
	}

	if def.Insts[1].Op.Kind != nir.OpBin {
		t.Fatalf("def.Insts[1].Op.Kind = %v, want Bin", def.Insts[1].Op.Kind)
	}

	if def.Insts[1].Op.BinKind != nir.BinIadd {
		t.Fatalf("def.Insts[1].Op.BinKind = %v, want Iadd", def.Insts[1].Op.BinKind)
	}

	if !def.Attrs.Has(nir.AttrMayInline) {
		t.Fatalf("def.Attrs missing AttrMayInline")
	}
}

func TestLoad_SwitchAndClassalloc(t *testing.T) {
	doc := []byte(`{
		"defns": [
			{
				"kind": "define",
				"name": {"kind": "top", "top": "pick"},
				"type": {"kind": "function", "args": [{"kind": "int"}], "ret": {"kind": "int"}},
				"insts": [
					{
						"kind": "switch",
						"value": {"kind": "local", "slot": 0, "type": {"kind": "int"}},
						"default": {"kind": "unwind", "label": 9},
						"cases": [
							{"kind": "case", "value": {"kind": "int", "i32": 0}, "next": {"kind": "unwind", "label": 1}},
							{"kind": "case", "value": {"kind": "int", "i32": 1}, "next": {"kind": "unwind", "label": 2}}
						]
					}
				]
			},
			{
				"kind": "define",
				"name": {"kind": "top", "top": "make_widget"},
				"type": {"kind": "function", "args": [], "ret": {"kind": "ptr"}},
				"insts": [
					{
						"kind": "let",
						"name": 0,
						"op": {
							"kind": "classalloc",
							"global": {"kind": "top", "top": "Widget"}
						}
					},
					{"kind": "ret", "value": {"kind": "local", "slot": 0, "type": {"kind": "ptr"}}}
				]
			}
		]
	}`)

	defns, err := Load(doc)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	pick := defns[0].(*nir.DefnDefine)
	sw := pick.Insts[0]

	if sw.Kind != nir.InstSwitch {
		t.Fatalf("sw.Kind = %v, want Switch", sw.Kind)
	}

	if len(sw.Cases) != 2 {
		t.Fatalf("len(sw.Cases) = %d, want 2", len(sw.Cases))
	}

	widget := defns[1].(*nir.DefnDefine)

	op := widget.Insts[0].Op
	if op.Kind != nir.OpClassalloc {
		t.Fatalf("op.Kind = %v, want Classalloc", op.Kind)
	}

	if op.Global.Kind != nir.GlobalTop || op.Global.Top != "Widget" {
		t.Fatalf("op.Global = %+v, want Top(Widget)", op.Global)
	}
}

func TestLoad_UnknownDefnKindErrors(t *testing.T) {
	_, err := Load([]byte(`{"defns": [{"kind": "bogus", "name": {"kind": "top", "top": "x"}}]}`))
	if err == nil {
		t.Fatalf("Load with unknown defn kind: want error, got nil")
	}
}

func TestLoad_NextCaseMissingFieldsErrors(t *testing.T) {
	doc := []byte(`{
		"defns": [
			{
				"kind": "define",
				"name": {"kind": "top", "top": "f"},
				"type": {"kind": "function", "args": [], "ret": {"kind": "void"}},
				"insts": [
					{
						"kind": "switch",
						"value": {"kind": "int", "i32": 0},
						"default": {"kind": "unwind", "label": 0},
						"cases": [{"kind": "case"}]
					}
				]
			}
		]
	}`)

	if _, err := Load(doc); err == nil {
		t.Fatalf("Load with malformed case next: want error, got nil")
	}
}

func TestLoad_NullValueRoundTrips(t *testing.T) {
	doc := []byte(`{
		"defns": [
			{
				"kind": "const",
				"name": {"kind": "top", "top": "NULL_PTR"},
				"type": {"kind": "ptr"},
				"value": {"kind": "null"}
			}
		]
	}`)

	defns, err := Load(doc)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	c := defns[0].(*nir.DefnConst)
	if c.Value.Kind != nir.ValNull {
		t.Fatalf("c.Value.Kind = %v, want ValNull", c.Value.Kind)
	}
}
