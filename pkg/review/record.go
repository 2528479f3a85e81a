// Package review defines the canonical review record and the pure
// transformation from the raw API shape into it.
package review

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Source is the constant source marker carried by every record.
const Source = "steam"

// DigestLen is the hex-encoded length of a derived identifier.
const DigestLen = 56

// Record is one normalized review, immutable once constructed. ID and
// Author are one-way digests of the source identifiers, so raw numeric ids
// are neither persisted nor recoverable from the output. Date is a calendar
// date (YYYY-MM-DD) with no time-of-day.
type Record struct {
	ID          string `json:"id"`
	Author      string `json:"author"`
	Date        string `json:"date"`
	Hours       int64  `json:"hours"`
	Content     string `json:"content"`
	Comments    int    `json:"comments"`
	Source      string `json:"source"`
	Helpful     int    `json:"helpful"`
	Funny       int    `json:"funny"`
	Recommended bool   `json:"recommended"`
}

// Digest derives the canonical identifier for a source id: a 28-byte
// BLAKE2b digest, hex-encoded to 56 characters. Equal source ids always map
// to equal digests, which is all the pipeline's duplicate accounting and
// batch ordering need.
func Digest(s string) string {
	h, err := blake2b.New(28, nil)
	if err != nil {
		// only reachable with an invalid key, and we pass none
		panic(err)
	}
	h.Write([]byte(s))
	return hex.EncodeToString(h.Sum(nil))
}
