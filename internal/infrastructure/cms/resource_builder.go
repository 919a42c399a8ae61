// Package cms implements the CMS collaborators over the Contentful delivery
// API and the local snapshot store.
package cms

import (
	"encoding/json"
	"fmt"

	"github.com/willowmedia/contentbridge/internal/domain/entities/content"
	"github.com/willowmedia/contentbridge/internal/domain/entities/richtext"
)

// rawSys is the metadata block every delivery resource and link carries.
type rawSys struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	LinkType    string `json:"linkType"`
	Locale      string `json:"locale"`
	ContentType *struct {
		Sys struct {
			ID string `json:"id"`
		} `json:"sys"`
	} `json:"contentType"`
}

type rawResource struct {
	Sys    rawSys         `json:"sys"`
	Fields map[string]any `json:"fields"`
}

type rawResponse struct {
	Items    []rawResource `json:"items"`
	Includes struct {
		Entry []rawResource `json:"Entry"`
		Asset []rawResource `json:"Asset"`
	} `json:"includes"`
}

// ResourceBuilder turns one raw delivery response into a linked entry graph.
// Links resolve against the response's includes block; link targets absent
// from it (unpublished, or beyond the include depth) resolve to nil and their
// fields degrade like any other missing field. One builder serves one
// response and is not safe for concurrent use.
type ResourceBuilder struct {
	rawEntries map[string]*rawResource
	rawAssets  map[string]*rawResource
	entries    map[string]*content.Entry
	assets     map[string]*content.Asset
	// items preserves the response's top-level ordering.
	items []string
}

// NewResourceBuilder indexes a raw delivery response for graph construction.
func NewResourceBuilder(raw json.RawMessage) (*ResourceBuilder, error) {
	var response rawResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, fmt.Errorf("failed to decode delivery response: %w", err)
	}

	b := &ResourceBuilder{
		rawEntries: make(map[string]*rawResource),
		rawAssets:  make(map[string]*rawResource),
		entries:    make(map[string]*content.Entry),
		assets:     make(map[string]*content.Asset),
	}

	for i := range response.Items {
		item := &response.Items[i]
		if item.Sys.Type == "Asset" {
			b.rawAssets[item.Sys.ID] = item
		} else {
			b.rawEntries[item.Sys.ID] = item
		}
	}
	for i := range response.Includes.Entry {
		item := &response.Includes.Entry[i]
		b.rawEntries[item.Sys.ID] = item
	}
	for i := range response.Includes.Asset {
		item := &response.Includes.Asset[i]
		b.rawAssets[item.Sys.ID] = item
	}

	b.items = make([]string, 0, len(response.Items))
	for i := range response.Items {
		b.items = append(b.items, response.Items[i].Sys.ID)
	}

	return b, nil
}

// Entries builds every top-level item in response order.
func (b *ResourceBuilder) Entries() []*content.Entry {
	out := make([]*content.Entry, 0, len(b.items))
	for _, id := range b.items {
		if entry := b.Entry(id); entry != nil {
			out = append(out, entry)
		}
	}
	return out
}

// FirstEntry builds the response's first top-level item, or nil when the
// response is empty.
func (b *ResourceBuilder) FirstEntry() *content.Entry {
	if len(b.items) == 0 {
		return nil
	}
	return b.Entry(b.items[0])
}

// Entry builds the entry with the given id, resolving its linked sub-graph.
// Entries are memoized before their fields resolve, so reference cycles
// terminate.
func (b *ResourceBuilder) Entry(id string) *content.Entry {
	if built, ok := b.entries[id]; ok {
		return built
	}
	raw, ok := b.rawEntries[id]
	if !ok {
		return nil
	}

	entry := &content.Entry{
		ID:     raw.Sys.ID,
		Locale: raw.Sys.Locale,
		Fields: make(content.Fields, len(raw.Fields)),
	}
	if raw.Sys.ContentType != nil {
		entry.ContentType = raw.Sys.ContentType.Sys.ID
	}
	b.entries[id] = entry

	for key, value := range raw.Fields {
		entry.Fields[key] = b.resolveValue(value)
	}

	return entry
}

// Asset builds the asset with the given id.
func (b *ResourceBuilder) Asset(id string) *content.Asset {
	if built, ok := b.assets[id]; ok {
		return built
	}
	raw, ok := b.rawAssets[id]
	if !ok {
		return nil
	}

	asset := &content.Asset{ID: raw.Sys.ID}
	if title, ok := raw.Fields["title"].(string); ok {
		asset.Title = title
	}
	if file, ok := raw.Fields["file"].(map[string]any); ok {
		if u, ok := file["url"].(string); ok {
			asset.URL = u
		}
	}
	b.assets[id] = asset
	return asset
}

// resolveValue maps one decoded field value into its domain representation:
// links become built entries or assets, rich text documents become node
// trees, sequences resolve element-wise, scalars pass through.
func (b *ResourceBuilder) resolveValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		if _, ok := v["nodeType"]; ok {
			return decodeRichText(v)
		}
		if sys, ok := v["sys"].(map[string]any); ok {
			return b.resolveLink(sys)
		}
		return v
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			if resolved := b.resolveValue(item); resolved != nil {
				out = append(out, resolved)
			}
		}
		return out
	default:
		return v
	}
}

func (b *ResourceBuilder) resolveLink(sys map[string]any) any {
	id, _ := sys["id"].(string)
	linkType, _ := sys["linkType"].(string)

	switch linkType {
	case "Entry":
		if entry := b.Entry(id); entry != nil {
			return entry
		}
	case "Asset":
		if asset := b.Asset(id); asset != nil {
			return asset
		}
	}
	return nil
}

// rawRichNode mirrors the delivery rich text shape, marks included.
type rawRichNode struct {
	NodeType string `json:"nodeType"`
	Value    string `json:"value"`
	Marks    []struct {
		Type string `json:"type"`
	} `json:"marks"`
	Content []rawRichNode `json:"content"`
	Data    richtext.Data `json:"data"`
}

// decodeRichText re-decodes a rich text subtree into the domain node form.
// Text marks become wrapper nodes so the tree stays a closed variant.
func decodeRichText(value map[string]any) *richtext.Node {
	encoded, err := json.Marshal(value)
	if err != nil {
		return nil
	}
	var raw rawRichNode
	if err := json.Unmarshal(encoded, &raw); err != nil {
		return nil
	}
	return convertRichNode(&raw)
}

func convertRichNode(raw *rawRichNode) *richtext.Node {
	node := &richtext.Node{
		NodeType: raw.NodeType,
		Value:    raw.Value,
		Data:     raw.Data,
	}
	for i := range raw.Content {
		node.Content = append(node.Content, convertRichNode(&raw.Content[i]))
	}

	// Marks wrap outward so "bold italic" text nests as bold > italic > text.
	for i := len(raw.Marks) - 1; i >= 0; i-- {
		switch raw.Marks[i].Type {
		case "bold":
			node = &richtext.Node{NodeType: richtext.NodeBold, Content: []*richtext.Node{node}}
		case "italic":
			node = &richtext.Node{NodeType: richtext.NodeItalic, Content: []*richtext.Node{node}}
		}
	}

	return node
}
