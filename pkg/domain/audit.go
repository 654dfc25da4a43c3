package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
	"time"
)

// Event is one entry in the append-only audit trail. Events chain
// through PrevHash, so rewriting history invalidates every hash that
// follows the tampered entry.
type Event struct {
	ID        string                 `json:"id"`
	Timestamp time.Time              `json:"timestamp"`
	Action    string                 `json:"action"`
	Actor     string                 `json:"actor"` // "human" or "agent"
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	PrevHash  string                 `json:"prev_hash,omitempty"` // Hash of the preceding event
	Hash      string                 `json:"hash,omitempty"`      // Deterministic hash of this event
}

// CalculateHash digests the event's identifying fields into a SHA256
// hex string. The field order is fixed; changing it would break
// verification of existing logs.
func (e *Event) CalculateHash() string {
	fields := []string{
		e.PrevHash,
		e.ID,
		e.Timestamp.Format(time.RFC3339Nano),
		e.Action,
		e.Actor,
		metadataDigest(e.Metadata),
	}
	h := sha256.New()
	for _, f := range fields {
		h.Write([]byte(f))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// metadataDigest renders metadata as JSON with keys in sorted order,
// since map iteration order would make the hash unstable. Empty
// metadata contributes nothing to the digest.
func metadataDigest(m map[string]interface{}) string {
	if len(m) == 0 {
		return ""
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		keyJSON, _ := json.Marshal(k)
		valJSON, _ := json.Marshal(m[k])
		b.Write(keyJSON)
		b.WriteByte(':')
		b.Write(valJSON)
	}
	b.WriteByte('}')
	return b.String()
}
