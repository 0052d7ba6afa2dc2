package base64

import (
	enc "encoding/base64"
	"errors"
	"strings"
)

var ErrInvalidDataURI = errors.New("invalid base64 data URI")

func GetContentType(file string) string {
	start := len("data:")
	end := strings.Index(file, ";base64,")

	if end == -1 || end < start {
		return ""
	}

	return file[start:end]
}

// Decode splits a "data:<mime>;base64,<payload>" URI into its raw bytes and
// content type.
func Decode(file string) ([]byte, string, error) {
	contentType := GetContentType(file)
	if contentType == "" {
		return nil, "", ErrInvalidDataURI
	}

	idx := strings.Index(file, ";base64,")

	payload := file[idx+len(";base64,"):]

	raw, err := enc.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", ErrInvalidDataURI
	}

	return raw, contentType, nil
}
