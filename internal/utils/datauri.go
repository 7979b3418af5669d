package utils

import (
	"encoding/base64"
	"errors"
	"strings"
)

// ParseDataURI decodes an inline "data:<type>;base64,<payload>" value into
// its content type and raw bytes.
func ParseDataURI(s string) (contentType string, data []byte, err error) {
	if !strings.HasPrefix(s, "data:") {
		return "", nil, errors.New("not a data uri")
	}

	rest := strings.TrimPrefix(s, "data:")
	meta, payload, found := strings.Cut(rest, ",")
	if !found {
		return "", nil, errors.New("malformed data uri")
	}

	contentType = meta
	if i := strings.Index(meta, ";"); i >= 0 {
		contentType = meta[:i]
		if !strings.Contains(meta[i:], "base64") {
			return "", nil, errors.New("unsupported data uri encoding")
		}
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, err
	}
	return contentType, data, nil
}
