package index

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"os"
	"sync"
)

// Fingerprint is the lowercase hex MD5 digest of a file's full byte content.
// Files with identical content always share a fingerprint; it identifies
// content, it is not a security primitive.
type Fingerprint string

// hasher computes fingerprints using pooled read buffers so that many
// workers can hash concurrently without per-file allocations
type hasher struct {
	bufferPool *sync.Pool
}

func newHasher(bufferSize int) *hasher {
	if bufferSize < 4096 {
		bufferSize = 4096
	}
	return &hasher{
		bufferPool: &sync.Pool{
			New: func() interface{} {
				buf := make([]byte, bufferSize)
				return &buf
			},
		},
	}
}

// fingerprint reads the file at path in full and returns its fingerprint
// along with the number of bytes hashed
func (h *hasher) fingerprint(ctx context.Context, path string) (Fingerprint, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := md5.New()
	bufPtr := h.bufferPool.Get().(*[]byte)
	defer h.bufferPool.Put(bufPtr)
	buf := *bufPtr

	var bytesRead int64
	for {
		select {
		case <-ctx.Done():
			return "", bytesRead, ctx.Err()
		default:
		}

		n, err := file.Read(buf)
		if n > 0 {
			hash.Write(buf[:n])
			bytesRead += int64(n)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", bytesRead, fmt.Errorf("failed to read file: %w", err)
		}
	}

	return Fingerprint(fmt.Sprintf("%x", hash.Sum(nil))), bytesRead, nil
}
