package libdiff

import "fmt"

type ChangeKind int

const (
	Insert ChangeKind = iota
	Delete
	Replace
	// Move is a key present on both sides at a different relative
	// position. From and To hold both values, which may differ.
	Move
)

func (k ChangeKind) String() string {
	switch k {
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Replace:
		return "replace"
	case Move:
		return "move"
	}
	return fmt.Sprintf("<change kind %d>", int(k))
}

// Symbol is a one character marker for k, as printed by diff tools.
func (k ChangeKind) Symbol() string {
	switch k {
	case Insert:
		return "+"
	case Delete:
		return "-"
	case Replace:
		return "~"
	case Move:
		return ">"
	}
	return "?"
}

type Change struct {
	Kind ChangeKind
	Key  string
	From any
	To   any
}

func (c Change) String() string {
	switch c.Kind {
	case Insert:
		return fmt.Sprintf("%s %s: %v", c.Kind.Symbol(), c.Key, c.To)
	case Delete:
		return fmt.Sprintf("%s %s: %v", c.Kind.Symbol(), c.Key, c.From)
	}
	return fmt.Sprintf("%s %s: %v -> %v", c.Kind.Symbol(), c.Key, c.From, c.To)
}
