// Package integrity provides tamper-evident hashing of task results and
// Merkle root construction over a task history. All functions are pure and
// deterministic.
package integrity

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/ashita-ai/cohumain/internal/model"
)

// hashV1Prefix marks the length-prefixed result encoding.
const hashV1Prefix = "v1:"

// ComputeResultHash produces a versioned SHA-256 hex digest over the
// canonical fields of a task result. The ContentHash field itself is
// excluded.
func ComputeResultHash(r model.TaskResult) string {
	h := sha256.New()
	writeField(h, r.ID.String())
	writeField(h, r.Task)
	writeField(h, strconv.FormatBool(r.Success))
	writeField(h, string(r.SafetyAssessment.Status))
	writeField(h, string(r.AutomationLevel))
	writeField(h, formatFloat(r.CalibratedConfidence))
	writeField(h, strconv.FormatBool(r.RequiresHumanReview))
	writeField(h, deref(r.InterventionReason))
	writeField(h, r.Timestamp.UTC().Format(time.RFC3339Nano))

	writeField(h, strconv.Itoa(len(r.Level1Explanations)))
	for _, tr := range r.Level1Explanations {
		writeField(h, tr.ID.String())
		writeField(h, tr.Agent)
		writeField(h, formatFloat(tr.Confidence))
		writeField(h, strings.Join(tr.PrincipleCheck.Violations, "\x00"))
	}
	writeField(h, strconv.Itoa(len(r.Level2Explanations)))
	for _, d := range r.Level2Explanations {
		writeField(h, string(d.DecisionType))
		writeField(h, d.FromAgent)
		writeField(h, deref(d.ToAgent))
		writeField(h, d.Rationale)
	}
	return hashV1Prefix + hex.EncodeToString(h.Sum(nil))
}

// VerifyResultHash checks whether r.ContentHash matches the recomputed hash.
func VerifyResultHash(r model.TaskResult) bool {
	if !strings.HasPrefix(r.ContentHash, hashV1Prefix) {
		return false
	}
	return r.ContentHash == ComputeResultHash(r)
}

// writeField encodes s as a 4-byte big-endian length prefix followed by its
// bytes, so freeform text cannot collide across field boundaries.
func writeField(h hash.Hash, s string) {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(s))) //nolint:gosec // task text is caller-bounded
	h.Write(lenBuf[:])
	h.Write([]byte(s))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 10, 64)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// hashPair produces SHA-256(0x01 || a || b) as a hex string.
// The 0x01 prefix is a domain separator for internal Merkle tree nodes (per RFC 6962),
// ensuring internal node hashes can never collide with leaf content hashes.
func hashPair(a, b string) string {
	h := sha256.New()
	h.Write([]byte{0x01})
	h.Write([]byte(a))
	h.Write([]byte(b))
	return hex.EncodeToString(h.Sum(nil))
}

// BuildMerkleRoot constructs a Merkle tree from leaf hashes and returns the root.
// Leaves must be sorted lexicographically by the caller for determinism.
// If leaves is empty, returns an empty string.
// If leaves has one element, the root is that element.
// Odd-length levels hash the last node with itself.
func BuildMerkleRoot(leaves []string) string {
	if len(leaves) == 0 {
		return ""
	}
	level := slices.Clone(leaves)
	for len(level) > 1 {
		next := make([]string, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 < len(level) {
				next = append(next, hashPair(level[i], level[i+1]))
			} else {
				next = append(next, hashPair(level[i], level[i]))
			}
		}
		level = next
	}
	return level[0]
}

// AuditRoot returns the Merkle root over the content hashes of results,
// sorted so the root does not depend on history order.
func AuditRoot(results []model.TaskResult) string {
	leaves := make([]string, 0, len(results))
	for _, r := range results {
		if r.ContentHash != "" {
			leaves = append(leaves, r.ContentHash)
		}
	}
	slices.Sort(leaves)
	return BuildMerkleRoot(leaves)
}
