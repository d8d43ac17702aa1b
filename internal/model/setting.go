package model

import "encoding/json"

// Setting is an application-level key/value pair carried through backups.
type Setting struct {
	ID    string          `json:"id"`
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}
