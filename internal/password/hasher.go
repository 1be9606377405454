// ABOUTME: Argon2id password hashing and verification
// ABOUTME: Verify fails closed on malformed digests to keep login errors uniform

package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
)

// Fixed work factor so a flood of login attempts degrades throughput
// predictably. Changing these parameters does not invalidate stored
// digests; Verify recomputes with the parameters encoded in each digest.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

// Hash derives a salted argon2id digest from plaintext. The digest is
// self-describing: parameters and salt are encoded alongside the key in
// the standard $argon2id$ format.
func Hash(plaintext string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	key := argon2.IDKey([]byte(plaintext), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	digest := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return digest, nil
}

// Verify reports whether plaintext matches the digest. It returns false
// rather than an error on malformed digests so callers get a single
// failure path for bad credentials.
func Verify(plaintext, digest string) bool {
	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var memory uint32
	var iterations uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return false
	}

	got := argon2.IDKey([]byte(plaintext), salt, iterations, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}

var dummy struct {
	once   sync.Once
	digest string
}

// CompareDummy burns the same work as a real verification against a
// throwaway digest. Login paths call this when the identity does not
// exist so response timing does not reveal which identities are real.
func CompareDummy(plaintext string) {
	dummy.once.Do(func() {
		dummy.digest, _ = Hash("shelfwise-timing-reference")
	})
	Verify(plaintext, dummy.digest)
}
