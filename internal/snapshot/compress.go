package snapshot

import (
	"bytes"
	"io"

	"github.com/andybalholm/brotli"
)

// Compress brotli-compresses snapshot bytes for the backup path. The
// default export format stays plain JSON; compression is opt-in.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := brotli.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// tryDecompress attempts to unwrap brotli-compressed input. Import calls
// it only after the bytes failed to parse as JSON directly.
func tryDecompress(data []byte) ([]byte, bool) {
	plain, err := io.ReadAll(brotli.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, false
	}
	return plain, true
}
