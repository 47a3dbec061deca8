package types

// Branding is the structured brand metadata document returned by the scraping
// API's branding format. The pipeline treats it as opaque; only the guidelines
// renderer interprets it.
type Branding struct {
	ColorScheme string       `json:"colorScheme,omitempty"`
	Colors      BrandColors  `json:"colors"`
	Typography  Typography   `json:"typography"`
	Personality *Personality `json:"personality,omitempty"`
}

// BrandColors is the scraped color palette, all values hex strings like
// "#ff6600". Absent colors are empty strings.
type BrandColors struct {
	Primary       string `json:"primary,omitempty"`
	Secondary     string `json:"secondary,omitempty"`
	Accent        string `json:"accent,omitempty"`
	Background    string `json:"background,omitempty"`
	TextPrimary   string `json:"textPrimary,omitempty"`
	TextSecondary string `json:"textSecondary,omitempty"`
	Link          string `json:"link,omitempty"`
	Success       string `json:"success,omitempty"`
	Warning       string `json:"warning,omitempty"`
	Error         string `json:"error,omitempty"`
}

// Typography is the scraped font metadata.
type Typography struct {
	FontFamilies []string `json:"fontFamilies,omitempty"`
	HeadingFont  string   `json:"headingFont,omitempty"`
	BodyFont     string   `json:"bodyFont,omitempty"`
	BaseFontSize string   `json:"baseFontSize,omitempty"`
}

// Personality is the scraped brand-personality assessment.
type Personality struct {
	Tone           string `json:"tone,omitempty"`
	Energy         string `json:"energy,omitempty"`
	TargetAudience string `json:"targetAudience,omitempty"`
}
