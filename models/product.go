package models

import (
	"strings"

	"github.com/spf13/cast"
)

// Product is one catalogue entry as published in the document store. ID is the
// store's record key; every other field is read from the record body.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Photo       string `json:"photo"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link,omitempty"`  // external purchase link
	Video       string `json:"video,omitempty"` // embeddable URL
}

// ProductFromRecord normalizes a raw record. Absent or null fields become "",
// scalar non-string values are stringified, and anything that cannot be
// represented as a string (objects, arrays) is treated as absent.
func ProductFromRecord(id string, fields map[string]any) Product {
	return Product{
		ID:          id,
		Name:        field(fields, "name"),
		Category:    field(fields, "category"),
		Photo:       field(fields, "photo"),
		Description: field(fields, "description"),
		Link:        field(fields, "link"),
		Video:       field(fields, "video"),
	}
}

func field(fields map[string]any, key string) string {
	v, ok := fields[key]
	if !ok || v == nil {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// HasLink reports whether the buy-now action should be offered.
func (p Product) HasLink() bool { return p.Link != "" }

// HasVideo reports whether an embedded video should be rendered.
func (p Product) HasVideo() bool { return p.Video != "" }
