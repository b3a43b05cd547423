// Package lines maps byte offsets within a source file to (line, column)
// pairs, and renders the result as protobuf SourceCodeInfo span vectors.
package lines

import "sort"

// Resolver precomputes the offset of every line break in a source file so
// that offset-to-position queries run in O(log n).
type Resolver struct {
	// starts[i] is the byte offset of the first character of line i+1
	// (line 0 is implicit, starting at offset 0).
	starts []int
}

// NewResolver scans src for line breaks and builds a Resolver over it.
func NewResolver(src []byte) *Resolver {
	r := &Resolver{}
	for i, b := range src {
		if b == '\n' {
			r.starts = append(r.starts, i+1)
		}
	}
	return r
}

// Resolve returns the zero-based (line, column) for a byte offset.
func (r *Resolver) Resolve(offset int) (line, col int) {
	i := sort.SearchInts(r.starts, offset)
	switch {
	case i < len(r.starts) && r.starts[i] == offset:
		return i + 1, 0
	case i == 0:
		return 0, offset
	default:
		return i, offset - r.starts[i-1]
	}
}

// Span renders a byte range [start, end) as a protobuf SourceCodeInfo span
// vector: [line, col, end_col] when both ends share a line, otherwise
// [start_line, start_col, end_line, end_col].
func (r *Resolver) Span(start, end int) []int32 {
	startLine, startCol := r.Resolve(start)
	endLine, endCol := r.Resolve(end)
	if startLine == endLine {
		return []int32{int32(startLine), int32(startCol), int32(endCol)}
	}
	return []int32{int32(startLine), int32(startCol), int32(endLine), int32(endCol)}
}
