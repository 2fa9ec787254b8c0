// Package testutil provides small helpers shared by ostreetar's test
// suites.
package testutil

import (
	"crypto/rand"
	"fmt"
	mrand "math/rand"

	"github.com/opencontainers/go-digest"
)

// RandomContent generates a pseudo-random byte slice whose length is chosen
// uniformly between minSize and maxSize (inclusive), along with its SHA-256
// hex digest, suitable for stress-testing content-object emission paths
// without a real OSTree repository on disk.
func RandomContent(minSize, maxSize int) (content []byte, checksum string, err error) {
	if maxSize < minSize {
		return nil, "", fmt.Errorf("testutil: maxSize %d < minSize %d", maxSize, minSize)
	}
	size := minSize
	if maxSize > minSize {
		size += mrand.Intn(maxSize - minSize + 1)
	}

	buf := make([]byte, size)
	n, err := rand.Read(buf)
	if err != nil {
		return nil, "", err
	}
	if n != size {
		return nil, "", fmt.Errorf("testutil: short read generating random content: %d != %d", n, size)
	}

	return buf, digest.FromBytes(buf).Encoded(), nil
}
