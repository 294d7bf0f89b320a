package kpath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrMalformedPath = errors.New("malformed path")

// Path is a kinded path from the root of a tree to one of its nodes.
// The empty path denotes the root itself.
type Path []Segment

// String returns the encoded form of p.
//
//	Path{Attr("a"), Attr("b")}      → "a.b"
//	Path{Attr("a"), Index(0)}       → "a#0"
//	Path{Attr("a"), Key("k")}       → "a@k"
//	Path{Key("k"), Attr("b")}       → "k.b"   (first kind is not encoded)
//	Path{}                          → ""
func (p Path) String() string {
	if len(p) == 0 {
		return ""
	}
	var buf strings.Builder
	buf.WriteString(p[0].Text())
	for _, seg := range p[1:] {
		buf.WriteByte(seg.Kind.Sep())
		buf.WriteString(seg.Text())
	}
	return buf.String()
}

// Key returns a string identifying p including the kind of every segment.
// Unlike String, Key keeps the first segment's kind, so it is suitable as
// a map key for exact path lookups. It is not meant to be persisted.
func (p Path) Key() string {
	var buf strings.Builder
	for _, seg := range p {
		buf.WriteByte(seg.Kind.Sep())
		buf.WriteString(seg.Text())
	}
	return buf.String()
}

// Parse decodes an encoded path.
//
// The string is scanned left to right. Each delimiter closes the word
// accumulated so far under the previously active delimiter and becomes the
// active one; the active delimiter starts as '.'. Consequently the first
// segment is always an attribute.
//
//   - "" → root path (nil)
//   - "a.b#2@k" → Attr(a), Attr(b), Index(2), Key(k)
//   - "#3" → Attr(""), Index(3)
//   - "a#x" → ErrMalformedPath
func Parse(s string) (Path, error) {
	if s == "" {
		return nil, nil
	}
	res := make(Path, 0, strings.Count(s, ".")+strings.Count(s, "#")+strings.Count(s, "@")+1)
	sep := byte(AttrSep)
	start := 0
	for i := 0; i < len(s); i++ {
		if _, ok := kindOf(s[i]); !ok {
			continue
		}
		seg, err := parseWord(sep, s[start:i])
		if err != nil {
			return nil, fmt.Errorf("%w in %q", err, s)
		}
		res = append(res, seg)
		sep = s[i]
		start = i + 1
	}
	seg, err := parseWord(sep, s[start:])
	if err != nil {
		return nil, fmt.Errorf("%w in %q", err, s)
	}
	return append(res, seg), nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Path {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

func parseWord(sep byte, w string) (Segment, error) {
	kind, _ := kindOf(sep)
	switch kind {
	case AttrEntry:
		return Attr(w), nil
	case KeyEntry:
		return Key(w), nil
	}
	u, err := strconv.ParseUint(w, 10, strconv.IntSize-1)
	if err != nil {
		return Segment{}, fmt.Errorf("%w: index %q is not a non-negative integer", ErrMalformedPath, w)
	}
	return Index(int(u)), nil
}

// Check returns an error if p cannot be encoded so that Parse gives it
// back, up to the kind of the first segment.
func (p Path) Check() error {
	for i, seg := range p {
		if err := seg.check(); err != nil {
			return fmt.Errorf("segment %d: %w", i, err)
		}
	}
	if len(p) == 1 && p[0].Kind != IndexEntry && p[0].Name == "" {
		return fmt.Errorf("%w: single empty %s encodes as the root path", ErrMalformedPath, p[0].Kind)
	}
	return nil
}

func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if !p[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Compare compares two paths lexicographically by segment.
// Returns -1 if p < o, 0 if p == o, 1 if p > o.
func (p Path) Compare(o Path) int {
	n := min(len(p), len(o))
	for i := 0; i < n; i++ {
		if c := p[i].Compare(o[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(p) < len(o):
		return -1
	case len(p) > len(o):
		return 1
	}
	return 0
}

// HasPrefix reports whether prefix is an ancestor of, or equal to, p.
func (p Path) HasPrefix(prefix Path) bool {
	return len(prefix) <= len(p) && p[:len(prefix)].Equal(prefix)
}

// Parent returns all segments except the last. The parent of the root is nil.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1:len(p)-1]
}

// Last returns the final segment. It panics on the root path.
func (p Path) Last() Segment {
	return p[len(p)-1]
}

// Append returns a new path with segs added; p is not modified.
func (p Path) Append(segs ...Segment) Path {
	res := make(Path, 0, len(p)+len(segs))
	res = append(res, p...)
	return append(res, segs...)
}

func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	return append(make(Path, 0, len(p)), p...)
}

func (p Path) MarshalText() ([]byte, error) {
	if err := p.Check(); err != nil {
		return nil, err
	}
	return []byte(p.String()), nil
}

func (p *Path) UnmarshalText(d []byte) error {
	pp, err := Parse(string(d))
	if err != nil {
		return err
	}
	*p = pp
	return nil
}
