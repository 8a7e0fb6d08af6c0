// Package fingerprint computes a short content hash of a built trace, for
// log correlation and cache-key use by callers — there is no Fiat-Shamir
// transcript in a pure trace builder to otherwise drive a hash-function
// choice.
package fingerprint

import (
	"golang.org/x/crypto/sha3"

	"github.com/vybium/cairo-trace/internal/cairotrace/trace"
)

// Fingerprint hashes every cell of t, row-major, column-major within a row,
// into a single sha3-256 digest.
func Fingerprint(t trace.Table) [32]byte {
	buf := make([]byte, 0, t.Rows()*trace.NumColumns*32)
	for _, row := range t {
		for _, cell := range row {
			buf = append(buf, cell.Bytes()...)
		}
	}
	return sha3.Sum256(buf)
}
