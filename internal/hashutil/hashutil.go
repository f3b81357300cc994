package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashStrings returns a SHA256 hash of the provided strings with newline separators.
func HashStrings(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Short returns a truncated HashStrings digest, convenient for log-friendly keys.
func Short(parts ...string) string {
	full := HashStrings(parts...)
	if len(full) > 16 {
		return full[:16]
	}
	return full
}
