package dataset

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
)

type checksumPayload struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// Checksum returns a short, stable identifier of the table contents,
// including row order since that decides how lines are drawn.
//
// It computes MD5 over a canonical JSON representation and returns the first 6 hex
// characters (equivalent to `md5sum | cut -c1-6`).
func (t *Table) Checksum() (string, error) {
	if t == nil {
		return "", nil
	}

	b, err := json.Marshal(checksumPayload{Header: t.header, Rows: t.rows})
	if err != nil {
		return "", err
	}

	sum := md5.Sum(b)
	hexStr := hex.EncodeToString(sum[:])
	if len(hexStr) > 6 {
		hexStr = hexStr[:6]
	}
	return hexStr, nil
}
