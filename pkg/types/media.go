package types

// MediaKind identifies the type of asset a media record points at.
type MediaKind string

// String returns the string representation of a media kind.
func (k MediaKind) String() string {
	return string(k)
}

// Known media kinds.
const (
	MediaKindLogo MediaKind = "logo"
)

// MediaRecord is the registry's pointer to the current asset of a kind for an
// entity. The reconciler maintains the invariant that at most one record with
// IsPrimary set exists per (EntityID, Kind).
type MediaRecord struct {
	ID           string    `json:"id,omitempty"`
	EntityID     EntityID  `json:"bpo_id"`
	Kind         MediaKind `json:"media_type"`
	FileURL      string    `json:"file_url"`
	IsPrimary    bool      `json:"is_primary"`
	DisplayOrder int       `json:"display_order"`
}
