package hmac

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"hash"
	"sort"
	"strings"

	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"
)

// ErrUnsupportedAlgorithm is returned when a signature names a digest algorithm that
// we don't recognize
var ErrUnsupportedAlgorithm = errors.New("unsupported digest algorithm")

// digests maps each supported digest name, in lowercase, to a constructor for the
// corresponding hash function
var digests = map[string]func() hash.Hash{
	"md5":        md5.New,
	"sha1":       sha1.New,
	"sha224":     sha256.New224,
	"sha256":     sha256.New,
	"sha384":     sha512.New384,
	"sha512":     sha512.New,
	"sha512-224": sha512.New512_224,
	"sha512-256": sha512.New512_256,
	"sha3-224":   sha3.New224,
	"sha3-256":   sha3.New256,
	"sha3-384":   sha3.New384,
	"sha3-512":   sha3.New512,
	"ripemd160":  ripemd160.New,
}

// lookupDigest resolves a digest algorithm by name. Names are matched
// case-insensitively, so "SHA1" and "sha1" identify the same algorithm.
func lookupDigest(name string) (func() hash.Hash, bool) {
	newHash, ok := digests[strings.ToLower(name)]
	return newHash, ok
}

// IsSupportedAlgorithm returns true if name identifies a digest algorithm that can be
// used to compute a Gap-Signature
func IsSupportedAlgorithm(name string) bool {
	_, ok := lookupDigest(name)
	return ok
}

// SupportedAlgorithms returns the names of all supported digest algorithms, sorted
func SupportedAlgorithms() []string {
	names := make([]string, 0, len(digests))
	for name := range digests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
