package audit

import (
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Metadata payloads are small JSON objects; a shared encoder/decoder pair at
// the default level is plenty and avoids per-call allocation of zstd state.
var (
	metaEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1))
	metaDecoder, _ = zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
)

// encodeMetadata marshals and compresses an event payload.
// Nil or empty metadata encodes to nil, stored as SQL NULL.
func encodeMetadata(meta map[string]any) ([]byte, error) {
	if len(meta) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("marshal event metadata: %w", err)
	}
	return metaEncoder.EncodeAll(raw, nil), nil
}

// decodeMetadata reverses encodeMetadata.
func decodeMetadata(compressed []byte) (map[string]any, error) {
	if len(compressed) == 0 {
		return nil, nil
	}
	raw, err := metaDecoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress event metadata: %w", err)
	}
	var meta map[string]any
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("unmarshal event metadata: %w", err)
	}
	return meta, nil
}
