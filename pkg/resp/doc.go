// Package resp implements the RESP wire protocol used by respkv.
//
// The package covers the complete value domain exchanged on the wire:
//
//   - frame.go: the closed Frame type family and structural equality
//   - encode.go: deterministic encoding (Encode, Append)
//   - decode.go: incremental decoding with truncation detection (Decode)
//   - reader.go, writer.go: stream adapters over io.Reader / io.Writer
//
// Decoding never consumes a partial frame. When the buffer holds only a
// prefix of a frame, Decode reports ErrIncomplete and the caller retries
// with the same bytes plus whatever arrives next:
//
//	f, n, err := resp.Decode(buf)
//	switch {
//	case errors.Is(err, resp.ErrIncomplete):
//		// read more
//	case err != nil:
//		// malformed input, drop the connection
//	default:
//		buf = buf[n:]
//	}
package resp
