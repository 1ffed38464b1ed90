package nir

// OpKind discriminates the Op sum type: the operation algebra bound by
// Let instructions (spec.md §4.6).
type OpKind int32

const (
	OpCall OpKind = iota
	OpLoad
	OpStore
	OpElem
	OpExtract
	OpInsert
	OpStackalloc
	OpBin
	OpComp
	OpConv
	OpSelect
	OpClassalloc
	OpFieldLoad
	OpFieldStore
	OpMethod
	OpDynmethod
	OpModule
	OpAs
	OpIs
	OpBox
	OpUnbox
	OpSizeof
	OpCopy
	OpClosure
	OpVar
	OpVarLoad
	OpVarStore
	OpArrayAlloc
	OpArrayLoad
	OpArrayStore
	OpArrayLength
)

// Op is a single operation bound by a Let instruction. Only the fields
// relevant to Kind are meaningful; see the table in spec.md §4.6.
type Op struct {
	Kind OpKind

	Type Type

	// Call
	Callee Val
	Args   []Val

	// Load, Store: Ptr / Value, volatile must be false (enforced at
	// encode time, not construction time, matching spec.md §7).
	Ptr      Val
	Value    Val
	Volatile bool

	// Elem
	Base    Val
	Indices []Val

	// Extract, Insert
	Aggregate    Val
	IntIndices   []int32

	// Stackalloc
	Count Val

	// Bin, Comp
	BinKind  Bin
	CompKind Comp
	LHS      Val
	RHS      Val

	// Conv
	ConvKind Conv
	ConvVal  Val

	// Select
	Cond Val
	Then Val
	Else Val

	// Classalloc, Module, FieldLoad/Store
	Global Global

	// FieldLoad/Store, Method, Dynmethod
	Obj  Val
	Recv Val
	Sig  Sig

	// As, Is, Box, Unbox, Sizeof: Type + optional Value (HasValue)
	HasValue bool

	// Copy
	CopyVal Val

	// Closure
	Fn       Val
	Captures []Val

	// VarLoad, VarStore
	Slot Val

	// ArrayAlloc, ArrayLoad, ArrayStore, ArrayLength
	ArrayLen Val
	Index    Val
}
