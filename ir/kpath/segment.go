package kpath

import (
	"fmt"
	"strconv"
	"strings"
)

type EntryKind int

const (
	AttrEntry EntryKind = iota
	IndexEntry
	KeyEntry
)

// Delimiters recognised by Parse.
const (
	AttrSep  = '.'
	IndexSep = '#'
	KeySep   = '@'
)

const delims = ".#@"

// Sep returns the delimiter byte introducing a segment of kind k.
func (k EntryKind) Sep() byte {
	switch k {
	case AttrEntry:
		return AttrSep
	case IndexEntry:
		return IndexSep
	case KeyEntry:
		return KeySep
	}
	panic(fmt.Sprintf("kpath: unknown entry kind %d", int(k)))
}

func (k EntryKind) String() string {
	switch k {
	case AttrEntry:
		return "attr"
	case IndexEntry:
		return "index"
	case KeyEntry:
		return "key"
	}
	return "<unknown kind>"
}

func kindOf(sep byte) (EntryKind, bool) {
	switch sep {
	case AttrSep:
		return AttrEntry, true
	case IndexSep:
		return IndexEntry, true
	case KeySep:
		return KeyEntry, true
	}
	return 0, false
}

// Segment is one step from a node to one of its children.
//
// Name holds the attribute or mapping key, Index the sequence position.
// Only the field selected by Kind is meaningful.
type Segment struct {
	Kind  EntryKind
	Name  string
	Index int
}

func Attr(name string) Segment { return Segment{Kind: AttrEntry, Name: name} }
func Index(i int) Segment      { return Segment{Kind: IndexEntry, Index: i} }
func Key(k string) Segment     { return Segment{Kind: KeyEntry, Name: k} }

// Text returns the segment's identifying text without a delimiter.
func (s Segment) Text() string {
	switch s.Kind {
	case AttrEntry, KeyEntry:
		return s.Name
	case IndexEntry:
		return strconv.Itoa(s.Index)
	}
	panic(fmt.Sprintf("kpath: unknown entry kind %d", int(s.Kind)))
}

// String returns the segment with its delimiter, e.g. ".w", "#3", "@bias".
func (s Segment) String() string {
	return string(s.Kind.Sep()) + s.Text()
}

func (s Segment) Equal(o Segment) bool {
	if s.Kind != o.Kind {
		return false
	}
	if s.Kind == IndexEntry {
		return s.Index == o.Index
	}
	return s.Name == o.Name
}

// Compare orders segments by kind (attr < index < key) then payload.
func (s Segment) Compare(o Segment) int {
	if s.Kind != o.Kind {
		if s.Kind < o.Kind {
			return -1
		}
		return 1
	}
	if s.Kind == IndexEntry {
		switch {
		case s.Index < o.Index:
			return -1
		case s.Index > o.Index:
			return 1
		}
		return 0
	}
	return strings.Compare(s.Name, o.Name)
}

// check reports whether the segment survives an encode/decode round trip.
func (s Segment) check() error {
	switch s.Kind {
	case AttrEntry, KeyEntry:
		if i := strings.IndexAny(s.Name, delims); i != -1 {
			return fmt.Errorf("%w: %s %q contains delimiter %q", ErrMalformedPath, s.Kind, s.Name, s.Name[i])
		}
	case IndexEntry:
		if s.Index < 0 {
			return fmt.Errorf("%w: negative index %d", ErrMalformedPath, s.Index)
		}
	default:
		return fmt.Errorf("%w: unknown entry kind %d", ErrMalformedPath, int(s.Kind))
	}
	return nil
}
