package core

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Short returns the first 12 hex characters, enough for log lines
func (h Hash) Short() string {
	if len(h) <= 12 {
		return string(h)
	}
	return string(h[:12])
}

// Domain-specific hash types
type (
	InputFingerprint Hash
	ConfigHash       Hash
)

func (h InputFingerprint) String() string { return Hash(h).String() }
func (h ConfigHash) String() string       { return Hash(h).String() }

// hashJSON hashes the JSON encoding of v. encoding/json writes struct fields
// in declaration order and sorts map keys, so equal values hash equally.
func hashJSON(v interface{}) (Hash, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return NewHash(data), nil
}

// ComputeInputFingerprint identifies a scoring input together with the mode
// it is scored in
func ComputeInputFingerprint(mode string, input interface{}) (InputFingerprint, error) {
	h, err := hashJSON(struct {
		Mode  string      `json:"mode"`
		Input interface{} `json:"input"`
	}{mode, input})
	return InputFingerprint(h), err
}

// ComputeConfigHash identifies a threshold set. Cached verdicts are keyed on
// it so a threshold change never serves stale results.
func ComputeConfigHash(cfg interface{}) (ConfigHash, error) {
	h, err := hashJSON(cfg)
	return ConfigHash(h), err
}
