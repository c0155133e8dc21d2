// Package doctree defines the document tree produced by the HTML converter
// and its canonical JSON serialization.
package doctree

import "encoding/json"

// NodeType discriminates the node variants in the tree.
type NodeType string

const (
	TypeRoot      NodeType = "root"
	TypeParagraph NodeType = "paragraph"
	TypeHeading   NodeType = "heading"
	TypeList      NodeType = "list"
	TypeListItem  NodeType = "listItem"
	TypeText      NodeType = "text"
)

// ListType distinguishes ordered from unordered lists.
type ListType string

const (
	ListOrdered   ListType = "ordered"
	ListUnordered ListType = "unordered"
)

// Flags holds the inline formatting attributes a text run can carry.
// The zero value means plain, unformatted text. Flags is comparable so
// callers can detect formatting changes with ==.
type Flags struct {
	Italic        bool `json:"italic,omitempty"`
	Bold          bool `json:"bold,omitempty"`
	Underline     bool `json:"underline,omitempty"`
	Strikethrough bool `json:"strikethrough,omitempty"`
	Code          bool `json:"code,omitempty"`
	Highlight     bool `json:"highlight,omitempty"`
	Small         bool `json:"small,omitempty"`
	Subscript     bool `json:"subscript,omitempty"`
	Superscript   bool `json:"superscript,omitempty"`
}

// None reports whether no formatting attribute is set.
func (f Flags) None() bool {
	return f == Flags{}
}

// Node is one node of the document tree. Which fields are meaningful
// depends on Type: text nodes carry Value and Flags, heading nodes carry
// Level, list nodes carry ListType, and all container nodes own Children.
type Node struct {
	Type     NodeType
	Level    int
	ListType ListType
	Value    string
	Flags    Flags
	Children []*Node
}

// NewRoot returns an empty root node.
func NewRoot() *Node {
	return &Node{Type: TypeRoot}
}

// NewParagraph returns a paragraph owning the given runs.
func NewParagraph(runs []*Node) *Node {
	return &Node{Type: TypeParagraph, Children: runs}
}

// NewHeading returns a heading of the given level (1..6) owning the given runs.
func NewHeading(level int, runs []*Node) *Node {
	return &Node{Type: TypeHeading, Level: level, Children: runs}
}

// NewList returns a list node owning the given items.
func NewList(listType ListType, items []*Node) *Node {
	return &Node{Type: TypeList, ListType: listType, Children: items}
}

// NewListItem returns a list item owning the given runs.
func NewListItem(runs []*Node) *Node {
	return &Node{Type: TypeListItem, Children: runs}
}

// NewText returns an unformatted text run.
func NewText(value string) *Node {
	return &Node{Type: TypeText, Value: value}
}

// NewTextFlags returns a text run with the given formatting attributes.
func NewTextFlags(value string, flags Flags) *Node {
	return &Node{Type: TypeText, Value: value, Flags: flags}
}

// Append adds children to a container node and returns it.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// childList never returns nil so container nodes serialize children as []
// rather than null.
func (n *Node) childList() []*Node {
	if n.Children == nil {
		return []*Node{}
	}
	return n.Children
}

// MarshalJSON emits the canonical serialized form: the type discriminator is
// always present, container nodes always carry a children array, formatting
// flags appear only when set, and heading level / list type appear only on
// their node kinds.
func (n *Node) MarshalJSON() ([]byte, error) {
	switch n.Type {
	case TypeText:
		return json.Marshal(struct {
			Type  NodeType `json:"type"`
			Value string   `json:"value"`
			Flags
		}{Type: n.Type, Value: n.Value, Flags: n.Flags})
	case TypeHeading:
		return json.Marshal(struct {
			Type     NodeType `json:"type"`
			Level    int      `json:"level"`
			Children []*Node  `json:"children"`
		}{Type: n.Type, Level: n.Level, Children: n.childList()})
	case TypeList:
		return json.Marshal(struct {
			Type     NodeType `json:"type"`
			ListType ListType `json:"listType"`
			Children []*Node  `json:"children"`
		}{Type: n.Type, ListType: n.ListType, Children: n.childList()})
	default:
		return json.Marshal(struct {
			Type     NodeType `json:"type"`
			Children []*Node  `json:"children"`
		}{Type: n.Type, Children: n.childList()})
	}
}
