package ingest

import (
	"encoding/json"
	"os"

	"github.com/brandmap/brandmap/pkg/errors"
)

// LoadItems reads a batch input file: a JSON array of items with label and
// asset_source_url fields. Notes pass through for audit.
func LoadItems(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, errors.NewValidationError("items", nil, "malformed batch file: "+err.Error())
	}
	return items, nil
}
