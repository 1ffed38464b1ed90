package nir

// putString writes an i32 UTF-8 byte length followed by the UTF-8
// bytes, no trailing NUL (spec.md §4.2).
func putString(s ByteSink, v string) {
	b := []byte(v)
	s.PutI32BE(int32(len(b)))
	s.PutBytes(b)
}

// putBool writes a single byte: 1 for true, 0 for false.
func putBool(s ByteSink, v bool) {
	if v {
		s.PutU8(1)
	} else {
		s.PutU8(0)
	}
}

// putOptionPresence writes the one-byte presence flag for Option<T>;
// the caller writes T's encoding afterward when present is true.
func putOptionPresence(s ByteSink, present bool) {
	if present {
		s.PutU8(1)
	} else {
		s.PutU8(0)
	}
}

// putSeqLen writes the i32 element count that precedes every Seq<T>.
func putSeqLen(s ByteSink, n int) {
	s.PutI32BE(int32(n))
}

// putI32Seq writes a Seq<i32>.
func putI32Seq(s ByteSink, vs []int32) {
	putSeqLen(s, len(vs))

	for _, v := range vs {
		s.PutI32BE(v)
	}
}
