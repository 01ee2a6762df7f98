package persist

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"fmt"
	"io"
)

// maxTokenBytes caps how much a decompressed token may expand to. A save is
// tens of kilobytes; anything past this is a hostile token.
const maxTokenBytes = 4 << 20

// EncodeToken packs a save blob into a URL-safe string for copy-paste
// transfer between devices.
func EncodeToken(blob []byte) (string, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", fmt.Errorf("compress save: %w", err)
	}
	if _, err := w.Write(blob); err != nil {
		return "", fmt.Errorf("compress save: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("compress save: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

func DecodeToken(token string) ([]byte, error) {
	packed, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: not base64url", ErrMalformedSave)
	}
	r := flate.NewReader(bytes.NewReader(packed))
	defer r.Close()
	blob, err := io.ReadAll(io.LimitReader(r, maxTokenBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSave, err)
	}
	if len(blob) == maxTokenBytes {
		return nil, fmt.Errorf("%w: token too large", ErrMalformedSave)
	}
	return blob, nil
}
