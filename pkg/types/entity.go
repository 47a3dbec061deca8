// Package types defines the core data records shared across the brandmap
// system: registry entities, in-flight assets, media records, match results,
// and batch reports.
package types

// EntityID is the stable opaque identifier of a registry entity.
type EntityID string

// String returns the string representation of an entity ID.
func (id EntityID) String() string {
	return string(id)
}

// Entity is a canonical organization record owned by the external registry.
// The pipeline only reads entities for matching; it never creates or deletes
// them.
type Entity struct {
	ID            EntityID `json:"id" yaml:"id"`
	CanonicalName string   `json:"company_name" yaml:"name"`
	TradeName     string   `json:"trade_name,omitempty" yaml:"trade_name,omitempty"`
	Website       string   `json:"website,omitempty" yaml:"website,omitempty"`
	Active        bool     `json:"is_active" yaml:"active"`
}
