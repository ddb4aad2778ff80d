package model

import (
	"fmt"
	"path"
	"strings"
)

type AssetKind string

const (
	AssetKindImage   AssetKind = "image"
	AssetKindVideo   AssetKind = "video"
	AssetKindAudio   AssetKind = "audio"
	AssetKindUnknown AssetKind = "unknown"
)

// MimeTypeError marks an asset whose metadata probe failed. The asset stays
// in the catalog so one broken file never hides the rest.
const MimeTypeError = "error"

// Asset is one media file of the catalog. Created once per catalog load and
// never mutated afterwards.
type Asset struct {
	ID          string    `json:"id"`
	Kind        AssetKind `json:"kind"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	MimeType    string    `json:"mime_type"`
	SizeBytes   int64     `json:"size_bytes"`
	Dimensions  string    `json:"dimensions,omitempty"`
}

// AssetID derives the stable catalog identifier for a file of a given kind.
func AssetID(kind AssetKind, filename string) string {
	return fmt.Sprintf("%s-%s", kind, filename)
}

// Extension returns the lowercased URL extension of the asset, with any
// query string stripped and without the leading dot. Empty when the URL has
// no extension.
func (a Asset) Extension() string {
	u := a.URL
	if i := strings.IndexByte(u, '?'); i >= 0 {
		u = u[:i]
	}
	ext := path.Ext(u)
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
