package info

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// Document is an encoded /info payload. It is immutable once built and safe
// for concurrent use.
type Document struct {
	body []byte
	etag string
}

// NewDocument encodes v as JSON and derives a strong ETag from the bytes
func NewDocument(v interface{}) (*Document, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal info document: %w", err)
	}

	sum := sha256.Sum256(body)
	return &Document{
		body: body,
		etag: `"` + hex.EncodeToString(sum[:8]) + `"`,
	}, nil
}

// Bytes returns a copy of the encoded payload
func (d *Document) Bytes() []byte {
	return bytes.Clone(d.body)
}

// Len returns the payload size in bytes
func (d *Document) Len() int {
	return len(d.body)
}

// ETag returns the quoted entity tag of the payload
func (d *Document) ETag() string {
	return d.etag
}

// Matches reports whether an If-None-Match header value selects this document.
// Weak comparison is used, as RFC 9110 requires for If-None-Match.
func (d *Document) Matches(ifNoneMatch string) bool {
	if ifNoneMatch == "" {
		return false
	}

	for _, tag := range strings.Split(ifNoneMatch, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "*" {
			return true
		}
		if strings.TrimPrefix(tag, "W/") == d.etag {
			return true
		}
	}

	return false
}
