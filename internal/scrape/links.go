package scrape

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Keyword patterns recognizing about/contact pages in href values and link
// text, mostly French site conventions.
var aboutLinkPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(about|a-propos|a_propos|apropos|qui-sommes-nous|qui_sommes_nous|notre-histoire|notre-equipe|notre-mission|presentation|l-association|lassociation|notre-association)\b`),
	regexp.MustCompile(`(?i)\b(contact|nous-contacter|contactez-nous)\b`),
}

// findAboutLinks scans every anchor for about/contact candidates, resolving
// relative hrefs against the base URL and deduplicating.
func findAboutLinks(doc *goquery.Document, baseURL string) []string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}

		text := strings.ToLower(strings.TrimSpace(sel.Text()))
		hrefLower := strings.ToLower(href)
		if !matchesAboutPattern(hrefLower) && !matchesAboutPattern(text) {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		links = append(links, resolved.String())
	})
	return dedupeStrings(links)
}

func matchesAboutPattern(s string) bool {
	for _, pattern := range aboutLinkPatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}
