package directory

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Staff credentials are stored as Argon2id PHC strings. The parameters
// travel inside the hash, so they can be raised later without invalidating
// accounts created under the old settings.
const (
	argonTime    = 3         // iterations
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 1
	argonKeyLen  = 32
	argonSaltLen = 16
)

// phcFieldCount is the number of $-delimited fields in a PHC string:
// $argon2id$v=19$m=65536,t=3,p=1$<salt>$<hash>
const phcFieldCount = 6

// HashPassword hashes a plaintext password with Argon2id and a fresh
// random salt, returning the PHC-encoded result for storage on the User.
func HashPassword(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// VerifyPassword reports whether the plaintext password matches the stored
// PHC hash. The comparison is constant-time.
func VerifyPassword(password, encodedHash string) (bool, error) {
	stored, err := parsePHC(encodedHash)
	if err != nil {
		return false, err
	}

	keyLen := uint32(len(stored.hash)) //nolint:gosec // hash length always fits uint32
	candidate := argon2.IDKey([]byte(password), stored.salt, stored.time, stored.memory, stored.threads, keyLen)

	return subtle.ConstantTimeCompare(stored.hash, candidate) == 1, nil
}

// phcHash is a decoded Argon2id PHC string.
type phcHash struct {
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	hash    []byte
}

// parsePHC decodes a $argon2id$... PHC string into its parameters, salt
// and hash.
func parsePHC(encoded string) (phcHash, error) {
	var p phcHash

	parts := strings.Split(encoded, "$")
	if len(parts) != phcFieldCount {
		return p, fmt.Errorf("invalid PHC hash format")
	}
	if parts[1] != "argon2id" {
		return p, fmt.Errorf("unsupported algorithm: %s", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return p, fmt.Errorf("parsing version: %w", err)
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &p.threads); err != nil {
		return p, fmt.Errorf("parsing parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, fmt.Errorf("decoding salt: %w", err)
	}
	p.salt = salt

	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return p, fmt.Errorf("decoding hash: %w", err)
	}
	p.hash = hash

	return p, nil
}
