package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// keyNamespace prefixes every key built here, ahead of the Redis prefix.
const keyNamespace = "clean"

// Hash returns the hex SHA-256 digest of a fragment's bytes.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// CleanKey returns the key for the cleaned form of fragment under the given
// rule list. Changing the rules, or their order, changes the key.
func CleanKey(fragment string, rules []string) string {
	return keyNamespace + ":" + digest(rules, Hash([]byte(fragment)))
}

// digest hashes the JSON encoding of the rule list and the fragment hash.
// JSON keeps rule names that contain separators from colliding.
func digest(rules []string, fragmentHash string) string {
	data, _ := json.Marshal(struct {
		Rules    []string `json:"rules"`
		Fragment string   `json:"fragment"`
	}{rules, fragmentHash})
	return Hash(data)
}
