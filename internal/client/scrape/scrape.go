// Package scrape extracts best-effort job details from a posting page.
//
// The result is untrusted input: it is meant to prefill a create request
// that the server validates like any other.
package scrape

import (
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/dmitrijs2005/jobtracker/internal/client/models"
)

const (
	DateLayout    = "2006-01-02"
	maxNotesRunes = 200
)

// now is a test seam.
var now = time.Now

// Selectors are tried in order; the first element with non-empty text wins.
var (
	titleSelectors = []cascadia.Selector{
		cascadia.MustCompile(`h1[data-testid="job-title"]`),
		cascadia.MustCompile(`h1.jobsearch-JobInfoHeader-title`),
		cascadia.MustCompile(`h1[data-automation-id="jobPostingHeader"]`),
		cascadia.MustCompile(`h1.job-title`),
		cascadia.MustCompile(`h1`),
		cascadia.MustCompile(`.job-title`),
		cascadia.MustCompile(`[data-testid="job-title"]`),
		cascadia.MustCompile(`.job-header h1`),
		cascadia.MustCompile(`.job-details h1`),
	}

	companySelectors = []cascadia.Selector{
		cascadia.MustCompile(`[data-testid="job-company"]`),
		cascadia.MustCompile(`.jobsearch-CompanyInfoContainer .jobsearch-CompanyInfoWithoutHeaderImage`),
		cascadia.MustCompile(`[data-automation-id="jobPostingHeader"] .employerName`),
		cascadia.MustCompile(`.company-name`),
		cascadia.MustCompile(`.employer-name`),
		cascadia.MustCompile(`.job-company`),
		cascadia.MustCompile(`[data-testid="company-name"]`),
		cascadia.MustCompile(`.job-header .company`),
		cascadia.MustCompile(`.job-details .company`),
	}

	descriptionSelectors = []cascadia.Selector{
		cascadia.MustCompile(`.job-description`),
		cascadia.MustCompile(`.job-details`),
		cascadia.MustCompile(`[data-testid="job-description"]`),
		cascadia.MustCompile(`.jobsearch-jobDescriptionText`),
		cascadia.MustCompile(`.job-description-content`),
	}

	jobElements = cascadia.MustCompile(`.job-description, .job-details, [data-testid="job-title"], .jobsearch-JobInfoHeader-title`)

	jobKeywords = []string{"job", "career", "position", "opening", "opportunity", "employment"}

	companyInURL = regexp.MustCompile(`company/([^/]+)`)
	titleSplit   = regexp.MustCompile(`(.+?)\s*-\s*(.+?)(?:\s*-\s*|$)`)
)

// Posting is what could be read from a page. Any field may be empty
// except Link and DateApplied.
type Posting struct {
	Title       string
	Company     string
	Link        string
	DateApplied string
	Notes       string
}

// JobInput converts p into a create request body.
func (p Posting) JobInput() models.JobInput {
	in := models.JobInput{
		Title:   p.Title,
		Company: p.Company,
		Link:    p.Link,
		Notes:   p.Notes,
	}
	if p.DateApplied != "" {
		d := p.DateApplied
		in.DateApplied = &d
	}
	return in
}

// Extract reads a Posting from the parsed page at pageURL.
func Extract(doc *html.Node, pageURL string) Posting {
	p := Posting{
		Link:        pageURL,
		DateApplied: now().Format(DateLayout),
	}

	p.Title = firstText(doc, titleSelectors)
	p.Company = firstText(doc, companySelectors)

	if p.Company == "" {
		if m := companyInURL.FindStringSubmatch(pageURL); m != nil {
			p.Company = titleCase(strings.ReplaceAll(m[1], "-", " "))
		}
	}

	if p.Company == "" {
		if m := titleSplit.FindStringSubmatch(pageTitle(doc)); m != nil {
			p.Company = strings.TrimSpace(m[1])
			if p.Title == "" {
				p.Title = strings.TrimSpace(m[2])
			}
		}
	}

	if desc := firstText(doc, descriptionSelectors); desc != "" {
		p.Notes = truncate(desc, maxNotesRunes)
	}

	return p
}

// IsJobPosting is a keyword heuristic over the URL and page title, plus
// the presence of well-known posting elements.
func IsJobPosting(doc *html.Node, pageURL string) bool {
	u := strings.ToLower(pageURL)
	t := strings.ToLower(pageTitle(doc))
	for _, k := range jobKeywords {
		if strings.Contains(u, k) || strings.Contains(t, k) {
			return true
		}
	}
	return cascadia.Query(doc, jobElements) != nil
}

func firstText(doc *html.Node, sels []cascadia.Selector) string {
	for _, sel := range sels {
		if n := cascadia.Query(doc, sel); n != nil {
			if s := textContent(n); s != "" {
				return s
			}
		}
	}
	return ""
}

var titleTag = cascadia.MustCompile("title")

func pageTitle(doc *html.Node) string {
	if n := cascadia.Query(doc, titleTag); n != nil {
		return textContent(n)
	}
	return ""
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

// titleCase upper-cases the first letter of every word.
func titleCase(s string) string {
	out := []rune(s)
	inWord := false
	for i, r := range out {
		isWord := unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
		if isWord && !inWord {
			out[i] = unicode.ToUpper(r)
		}
		inWord = isWord
	}
	return string(out)
}
