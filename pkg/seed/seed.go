// Package seed loads member seed data into a registry. Seed files are the
// curated lists maintained alongside the scraper: a YAML member roster and an
// optional CSV mapping of downloaded asset files to company names.
package seed

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/brandmap/brandmap/pkg/errors"
	"github.com/brandmap/brandmap/pkg/types"
)

// File is the YAML seed file layout.
type File struct {
	Members []Member `yaml:"members"`
}

// Member is one seed roster entry.
type Member struct {
	Name      string `yaml:"name"`
	TradeName string `yaml:"trade_name,omitempty"`
	Website   string `yaml:"website,omitempty"`
}

// LoadEntities reads a YAML member roster and returns the entities to seed,
// all marked active. IDs are left empty for the registry to mint.
func LoadEntities(path string) ([]types.Entity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return ParseEntities(data)
}

// ParseEntities parses a YAML member roster.
func ParseEntities(data []byte) ([]types.Entity, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.NewValidationError("members", nil, "malformed seed file: "+err.Error())
	}

	entities := make([]types.Entity, 0, len(f.Members))
	for _, m := range f.Members {
		name := strings.TrimSpace(m.Name)
		if name == "" {
			continue
		}
		entities = append(entities, types.Entity{
			CanonicalName: name,
			TradeName:     strings.TrimSpace(m.TradeName),
			Website:       strings.TrimSpace(m.Website),
			Active:        true,
		})
	}
	return entities, nil
}

// Mapping is one row of the asset-to-company CSV mapping: a previously
// downloaded file assigned to a company name by hand.
type Mapping struct {
	Filename    string
	CompanyName string
}

// LoadMapping reads a CSV mapping file with a filename,company_name header.
// Rows without an assigned company name are dropped.
func LoadMapping(path string) ([]Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()
	return ParseMapping(f)
}

// ParseMapping parses CSV mapping rows from r.
func ParseMapping(r io.Reader) ([]Mapping, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewValidationError("mapping", nil, "malformed mapping file: "+err.Error())
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	fileCol, nameCol := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "filename", "file":
			fileCol = i
		case "company_name", "company":
			nameCol = i
		}
	}
	if fileCol < 0 || nameCol < 0 {
		return nil, errors.NewValidationError("mapping", header, "missing filename or company_name column")
	}

	var mappings []Mapping
	for _, row := range records[1:] {
		if len(row) <= fileCol || len(row) <= nameCol {
			continue
		}
		name := strings.TrimSpace(row[nameCol])
		if name == "" {
			continue
		}
		mappings = append(mappings, Mapping{
			Filename:    strings.TrimSpace(row[fileCol]),
			CompanyName: name,
		})
	}
	return mappings, nil
}
