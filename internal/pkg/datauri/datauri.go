// Package datauri converts raw image bytes to and from self-describing
// "data:<mime>;base64,<data>" payloads.
package datauri

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/ds124wfegd/animegen/internal/entity"
	"github.com/gabriel-vasile/mimetype"
)

const (
	prefix       = "data:"
	base64Marker = ";base64"
)

// Encode builds a payload from raw bytes. An empty media type is detected
// from the content.
func Encode(mediaType string, data []byte) entity.Payload {
	if mediaType == "" {
		mediaType = mimetype.Detect(data).String()
	}
	// drop parameters like "; charset=binary"
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = mediaType[:i]
	}
	return entity.Payload(prefix + mediaType + base64Marker + "," + base64.StdEncoding.EncodeToString(data))
}

// Decode splits a data URI payload into its media type and raw bytes.
func Decode(p entity.Payload) (string, []byte, error) {
	s := strings.TrimSpace(string(p))
	if s == "" {
		return "", nil, entity.ErrInvalidPayload
	}
	if !IsDataURI(entity.Payload(s)) {
		return "", nil, fmt.Errorf("%w: not a data uri", entity.ErrInvalidPayload)
	}

	header, data, ok := strings.Cut(s[len(prefix):], ",")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing data separator", entity.ErrInvalidPayload)
	}
	if !strings.HasSuffix(header, base64Marker) {
		return "", nil, fmt.Errorf("%w: only base64 payloads are supported", entity.ErrInvalidPayload)
	}
	mediaType := strings.TrimSuffix(header, base64Marker)
	if mediaType == "" {
		mediaType = "text/plain"
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", entity.ErrInvalidPayload, err)
	}
	return mediaType, raw, nil
}

// IsDataURI reports whether the payload carries its bytes inline.
func IsDataURI(p entity.Payload) bool {
	return strings.HasPrefix(string(p), prefix)
}

// FromFile reads a file and encodes its contents.
func FromFile(path string) (entity.Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return Encode("", data), nil
}
