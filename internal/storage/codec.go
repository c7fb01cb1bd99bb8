package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Veraticus/asset-ledger/internal/model"
)

// Encode serializes records as a JSON array. A nil list encodes as [].
func Encode(records []model.Record) ([]byte, error) {
	if records == nil {
		records = []model.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode records: %w", err)
	}
	return data, nil
}

// Decode parses a persisted payload. It never fails: a malformed payload
// yields an empty list and ok=false.
func Decode(data []byte) (records []model.Record, ok bool) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []model.Record{}, false
	}

	if err := json.Unmarshal(data, &records); err != nil {
		return []model.Record{}, false
	}
	if records == nil {
		records = []model.Record{}
	}
	return records, true
}
