package trajectory

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint hashes the canonical form of set, in order. Inputs that
// differ only in whitespace or comments share a fingerprint.
func Fingerprint(set []Trajectory) string {
	d := xxhash.New()
	for _, t := range set {
		d.WriteString(t.String())
		d.WriteString("\n")
	}
	return fmt.Sprintf("%016x", d.Sum64())
}
