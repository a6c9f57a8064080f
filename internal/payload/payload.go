// Package payload generates request bodies for measurement runs.
package payload

import (
	"crypto/rand"
	"fmt"
)

// Random returns size bytes of cryptographically random data. Random bodies
// defeat any transparent compression between client and store, which would
// otherwise skew transfer timings.
func Random(size int) ([]byte, error) {
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("generating %d-byte payload: %w", size, err)
	}
	return buf, nil
}
