// Package richtext defines the typed document tree used for long-form body
// fields. Nodes form a closed tagged variant: block and inline nodes carry a
// Content sequence, text leaves carry Value, link and embed nodes carry Data.
package richtext

// Node type tags. CMS rich text rarely nests more than 4-5 levels, so plain
// recursion over the tree is sufficient.
const (
	NodeDocument           = "document"
	NodeParagraph          = "paragraph"
	NodeText               = "text"
	NodeBold               = "bold"
	NodeItalic             = "italic"
	NodeHyperlink          = "hyperlink"
	NodeOrderedList        = "ordered-list"
	NodeUnorderedList      = "unordered-list"
	NodeListItem           = "list-item"
	NodeEmbeddedEntry      = "embedded-entry-inline"
	NodeEmbeddedAssetBlock = "embedded-asset-block"
)

// Node is a single node in a rich text document tree.
type Node struct {
	NodeType string  `json:"nodeType"`
	Value    string  `json:"value,omitempty"`
	Content  []*Node `json:"content,omitempty"`
	Data     Data    `json:"data,omitempty"`
}

// Data carries per-node payloads: the hyperlink target URI, or a link to an
// embedded entry or asset.
type Data struct {
	URI    string `json:"uri,omitempty"`
	Target *Link  `json:"target,omitempty"`
}

// Link references an entry or asset by id, mirroring the CMS link shape.
type Link struct {
	Sys LinkSys `json:"sys"`
}

// LinkSys holds link metadata. LinkType is "Entry" or "Asset".
type LinkSys struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	LinkType string `json:"linkType"`
}

// TargetID returns the linked entry or asset id, or "" when the node carries
// no link.
func (n *Node) TargetID() string {
	if n == nil || n.Data.Target == nil {
		return ""
	}
	return n.Data.Target.Sys.ID
}

// IsEmptyText reports whether the node is a text leaf with no content.
func (n *Node) IsEmptyText() bool {
	return n != nil && n.NodeType == NodeText && n.Value == ""
}

// PlainText flattens all descendant text leaves in document order.
func (n *Node) PlainText() string {
	if n == nil {
		return ""
	}
	if n.NodeType == NodeText {
		return n.Value
	}
	var out string
	for _, child := range n.Content {
		out += child.PlainText()
	}
	return out
}
