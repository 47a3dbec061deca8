// Package guidelines renders scraped brand metadata into a human-readable
// brand guidelines markdown document. It is a pure formatter: the pipeline
// never depends on it, and it never touches the registry or object store.
package guidelines

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/brandmap/brandmap/pkg/types"
)

// Render writes a brand guidelines document for the branding metadata scraped
// from sourceURL.
func Render(w io.Writer, branding *types.Branding, sourceURL string) error {
	domain := domainOf(sourceURL)

	doc := md.NewMarkdown(w)
	doc.H1(titleCase(domain) + " Brand Guidelines")
	if sourceURL != "" {
		doc.PlainText(md.Italic("Extracted from: " + md.Link(sourceURL, sourceURL)))
	}
	doc.LF()

	writeOverview(doc, branding)
	writeColors(doc, branding.Colors)
	writeTypography(doc, branding.Typography)

	return doc.Build()
}

// writeOverview adds the color scheme and brand personality summary.
func writeOverview(doc *md.Markdown, branding *types.Branding) {
	if branding.ColorScheme == "" && branding.Personality == nil {
		return
	}

	doc.H2("Overview")
	if branding.ColorScheme != "" {
		doc.PlainText(md.Bold("Color Scheme") + ": " + titleCase(branding.ColorScheme))
		doc.LF()
	}
	if p := branding.Personality; p != nil {
		if p.Tone != "" {
			doc.PlainText(md.Bold("Brand Tone") + ": " + p.Tone)
		}
		if p.Energy != "" {
			doc.PlainText(md.Bold("Energy Level") + ": " + p.Energy)
		}
		if p.TargetAudience != "" {
			doc.PlainText(md.Bold("Target Audience") + ": " + p.TargetAudience)
		}
		doc.LF()
	}
}

// writeColors adds the color palette sections.
func writeColors(doc *md.Markdown, colors types.BrandColors) {
	main := colorItems(
		colorItem{"Primary", colors.Primary},
		colorItem{"Secondary", colors.Secondary},
		colorItem{"Accent", colors.Accent},
	)
	text := colorItems(
		colorItem{"Background", colors.Background},
		colorItem{"Primary Text", colors.TextPrimary},
		colorItem{"Secondary Text", colors.TextSecondary},
	)
	state := colorItems(
		colorItem{"Link", colors.Link},
		colorItem{"Success", colors.Success},
		colorItem{"Warning", colors.Warning},
		colorItem{"Error", colors.Error},
	)

	if len(main) == 0 && len(text) == 0 && len(state) == 0 {
		return
	}

	doc.H2("Color Palette")
	if len(main) > 0 {
		doc.H3("Main Colors")
		doc.BulletList(main...)
		doc.LF()
	}
	if len(text) > 0 {
		doc.H3("Background & Text")
		doc.BulletList(text...)
		doc.LF()
	}
	if len(state) > 0 {
		doc.H3("Functional Colors")
		doc.BulletList(state...)
		doc.LF()
	}
}

// writeTypography adds the typography section.
func writeTypography(doc *md.Markdown, typo types.Typography) {
	if len(typo.FontFamilies) == 0 && typo.HeadingFont == "" && typo.BodyFont == "" && typo.BaseFontSize == "" {
		return
	}

	doc.H2("Typography")
	var items []string
	if typo.HeadingFont != "" {
		items = append(items, md.Bold("Headings")+": "+md.Code(typo.HeadingFont))
	}
	if typo.BodyFont != "" {
		items = append(items, md.Bold("Body")+": "+md.Code(typo.BodyFont))
	}
	if len(typo.FontFamilies) > 0 {
		items = append(items, md.Bold("Font Families")+": "+strings.Join(typo.FontFamilies, ", "))
	}
	if typo.BaseFontSize != "" {
		items = append(items, md.Bold("Base Font Size")+": "+typo.BaseFontSize)
	}
	doc.BulletList(items...)
	doc.LF()
}

type colorItem struct {
	name string
	hex  string
}

// colorItems formats the non-empty colors as bullet list entries with their
// hex and RGB values.
func colorItems(items ...colorItem) []string {
	var out []string
	for _, item := range items {
		if item.hex == "" {
			continue
		}
		entry := md.Bold(item.name) + ": " + md.Code(item.hex)
		if r, g, b, ok := hexToRGB(item.hex); ok {
			entry += fmt.Sprintf(" RGB(%d, %d, %d)", r, g, b)
		}
		out = append(out, entry)
	}
	return out
}

// hexToRGB parses a #rrggbb color.
func hexToRGB(hex string) (r, g, b int, ok bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, 0, 0, false
	}
	return r, g, b, true
}

// domainOf extracts the bare domain from a URL for the document title.
func domainOf(sourceURL string) string {
	if sourceURL == "" {
		return "Website"
	}
	u, err := url.Parse(sourceURL)
	if err != nil || u.Host == "" {
		return sourceURL
	}
	return strings.TrimPrefix(u.Host, "www.")
}

// titleCase uppercases the first rune of each dot- or space-separated word,
// enough for a document title built from a domain name.
func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
