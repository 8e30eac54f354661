package scrape

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	// French numbers: +33 or leading 0, then 9 digits in pairs with optional
	// space/dot/dash separators.
	phoneRegex = regexp.MustCompile(`(?:\+33|0)\s*[1-9](?:[\s.\-]*\d{2}){4}`)

	atEntityRegex = regexp.MustCompile(`(?i)\s*(?:\[at\]|\(at\))\s*|&#64;`)
	phoneSepRegex = regexp.MustCompile(`[\s.\-]`)
	titleSepRegex = regexp.MustCompile(`\s*[-|–—]\s*`)
)

var emailExcludedSuffixes = []string{".png", ".jpg", ".jpeg", ".svg", ".gif", ".webp"}

var emailExcludedDomains = []string{"example.com", "sentry", "yourdomain", "domain.com"}

// extractEmails pulls addresses out of raw HTML, undoing the common [at] /
// (at) / &#64; obfuscations first and dropping asset names and placeholder
// domains that match the pattern.
func extractEmails(html string) []string {
	decoded := atEntityRegex.ReplaceAllString(html, "@")
	matches := emailRegex.FindAllString(decoded, -1)

	var out []string
	for _, m := range matches {
		lower := strings.ToLower(m)
		if hasAnySuffix(lower, emailExcludedSuffixes) || containsAny(lower, emailExcludedDomains) {
			continue
		}
		out = append(out, m)
	}
	return dedupeStrings(out)
}

// extractPhones matches French phone numbers in visible text and normalizes
// them by stripping separators.
func extractPhones(text string) []string {
	matches := phoneRegex.FindAllString(text, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, phoneSepRegex.ReplaceAllString(m, ""))
	}
	return dedupeStrings(out)
}

// extractCompanyName prefers the Open Graph site name, falling back to the
// <title> text before the first separator.
func extractCompanyName(doc *goquery.Document) string {
	if name, ok := doc.Find(`meta[property="og:site_name"]`).Attr("content"); ok {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			return trimmed
		}
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return ""
	}
	parts := titleSepRegex.Split(title, 2)
	return strings.TrimSpace(parts[0])
}

const (
	maxDescriptionLen = 500
	maxAboutLen       = 2000
	minAboutLen       = 100
)

// extractDescription prefers meta descriptions, falling back to the first
// paragraph longer than 50 characters.
func extractDescription(doc *goquery.Document) string {
	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		if trimmed := strings.TrimSpace(desc); trimmed != "" {
			return trimmed
		}
	}
	if desc, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
		if trimmed := strings.TrimSpace(desc); trimmed != "" {
			return trimmed
		}
	}

	var first string
	doc.Find("main p, article p, .content p, #content p, p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		if len([]rune(text)) > 50 {
			first = text
			return false
		}
		return true
	})
	return truncateRunes(first, maxDescriptionLen)
}

var aboutContainerSelectors = []string{
	"main", "article", `[role="main"]`,
	".content", "#content", ".page-content",
	".about", ".about-us", ".qui-sommes-nous",
}

// extractAboutText joins the paragraphs of the first matching content
// container whose text exceeds the minimum length, falling back to every
// paragraph over 30 characters.
func extractAboutText(doc *goquery.Document) string {
	for _, sel := range aboutContainerSelectors {
		container := doc.Find(sel)
		if container.Length() == 0 {
			continue
		}
		var paragraphs []string
		container.Find("p").Each(func(_ int, p *goquery.Selection) {
			if text := strings.TrimSpace(p.Text()); text != "" {
				paragraphs = append(paragraphs, text)
			}
		})
		joined := strings.Join(paragraphs, "\n\n")
		if len([]rune(joined)) > minAboutLen {
			return truncateRunes(joined, maxAboutLen)
		}
	}

	var paragraphs []string
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := strings.TrimSpace(p.Text())
		if len([]rune(text)) > 30 {
			paragraphs = append(paragraphs, text)
		}
	})
	return truncateRunes(strings.Join(paragraphs, "\n\n"), maxAboutLen)
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

func containsAny(s string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
