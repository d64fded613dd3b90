package pathutil

import (
	"strconv"
	"strings"
	"sync"
)

// PathBuilder tracks the location of a walk through a generic document.
// Segments are pushed on the way down and popped on the way back up, so a
// single builder serves a whole traversal.
type PathBuilder struct {
	segments []string
}

// Push appends a mapping key.
func (p *PathBuilder) Push(segment string) {
	p.segments = append(p.segments, segment)
}

// PushIndex appends a sequence index, rendered as "[i]" by String.
func (p *PathBuilder) PushIndex(i int) {
	p.segments = append(p.segments, "["+strconv.Itoa(i)+"]")
}

// Pop drops the last segment. Popping an empty builder is a no-op.
func (p *PathBuilder) Pop() {
	if n := len(p.segments); n > 0 {
		p.segments = p.segments[:n-1]
	}
}

// Segments returns the pushed segments. The slice is owned by the builder
// and is only valid until the next Push or Pop.
func (p *PathBuilder) Segments() []string {
	return p.segments
}

// Len returns the number of pushed segments.
func (p *PathBuilder) Len() int {
	return len(p.segments)
}

// Reset clears the builder for reuse.
func (p *PathBuilder) Reset() {
	p.segments = p.segments[:0]
}

// String renders the dotted issue path, e.g. "paths./widgets.get.parameters[0]".
func (p *PathBuilder) String() string {
	var b strings.Builder
	for i, seg := range p.segments {
		if i > 0 && !strings.HasPrefix(seg, "[") {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}

// Pointer renders the segments as a local JSON Pointer reference
// ("#/paths/~1widgets/get"). Index segments become bare numbers.
func (p *PathBuilder) Pointer() string {
	var b strings.Builder
	b.WriteByte('#')
	for _, seg := range p.segments {
		b.WriteByte('/')
		if strings.HasPrefix(seg, "[") && strings.HasSuffix(seg, "]") {
			b.WriteString(seg[1 : len(seg)-1])
			continue
		}
		b.WriteString(EscapePointerToken(seg))
	}
	return b.String()
}

// Builders deeper than this are left for the GC instead of being pooled.
const maxPooledDepth = 64

var builders = sync.Pool{
	New: func() any { return &PathBuilder{segments: make([]string, 0, 8)} },
}

// Get takes an empty builder from the pool.
func Get() *PathBuilder {
	p := builders.Get().(*PathBuilder)
	p.Reset()
	return p
}

// Put returns p to the pool.
func Put(p *PathBuilder) {
	if p == nil || cap(p.segments) > maxPooledDepth {
		return
	}
	builders.Put(p)
}
