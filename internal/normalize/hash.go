package normalize

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// FileHash computes the hex-encoded SHA-256 of the file at path.
func FileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for hash: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// RowHash computes a SHA-256 over ordered cell values. Each cell is
// written as a null marker, then its length and bytes, so null, "" and any
// split of the same bytes across cells all hash differently.
func RowHash(values ...*string) [sha256.Size]byte {
	h := sha256.New()
	var buf [binary.MaxVarintLen64 + 1]byte
	for _, v := range values {
		if v == nil {
			h.Write([]byte{1})
			continue
		}
		buf[0] = 0
		n := binary.PutUvarint(buf[1:], uint64(len(*v)))
		h.Write(buf[:1+n])
		h.Write([]byte(*v))
	}
	var sum [sha256.Size]byte
	copy(sum[:], h.Sum(nil))
	return sum
}
