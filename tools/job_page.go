package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/resumeready/backend/config"
	"github.com/resumeready/backend/models"
	"github.com/resumeready/backend/utils"
)

const (
	maxPageBytes    = 5 * 1024 * 1024
	maxPageChars    = 20000
	minSectionChars = 200
)

// ErrNoPageText is returned when a fetched page has no readable text
var ErrNoPageText = errors.New("page has no readable text")

var (
	noiseTags = "script, style, noscript, iframe, svg, form, button, nav, header, footer, aside"

	// Containers tried in order before falling back to the whole body
	jobSelectors = []string{
		"[class*='job-description']", "[class*='jobDescription']", "[id*='job-description']",
		"[data-testid*='job']", "[data-qa*='job']",
		"article", "main", "[role='main']",
	}

	inlineSpace = regexp.MustCompile(`[ \t\f\v\x{00a0}]+`)
	blankRuns   = regexp.MustCompile(`\n{3,}`)
)

// FetchJobPageTool downloads a job posting and reduces it to readable text
type FetchJobPageTool struct {
	client *http.Client
}

// NewFetchJobPageTool creates a job page fetcher that only reaches public addresses
func NewFetchJobPageTool(cfg *config.Config) *FetchJobPageTool {
	return &FetchJobPageTool{
		client: utils.NewPublicHTTPClient(time.Duration(cfg.HTTPTimeoutSeconds) * time.Second),
	}
}

func (t *FetchJobPageTool) Name() string {
	return "fetch_job_page"
}

func (t *FetchJobPageTool) Description() string {
	return `Fetch a job posting URL and return the readable text of the posting.
Input should be an http or https URL.`
}

func (t *FetchJobPageTool) InputSchema() Schema {
	return objectSchema(map[string]string{"url": "The job posting URL"}, "url")
}

// FetchInput represents the input for the fetch tool
type FetchInput struct {
	URL string `json:"url"`
}

func (t *FetchJobPageTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in FetchInput
	if err := decodeInput(input, &in); err != nil {
		return Failure("invalid input: %v", err)
	}

	page, err := t.Fetch(ctx, in.URL)
	if err != nil {
		return Failure("fetch failed: %v", err)
	}
	return Success(page)
}

// Fetch downloads pageURL and extracts the posting text
func (t *FetchJobPageTool) Fetch(ctx context.Context, pageURL string) (*models.JobPage, error) {
	u, err := url.Parse(pageURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid job URL: %q", pageURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page returned status %d", resp.StatusCode)
	}

	title, text, err := ExtractPageText(io.LimitReader(resp.Body, maxPageBytes), u)
	if err != nil {
		return nil, err
	}

	return &models.JobPage{URL: u.String(), Title: title, Text: text}, nil
}

// ExtractPageText returns the page title and the posting text. The readability
// article is preferred; when it is too short the most specific job container
// found with goquery is used instead. pageURL may be nil.
func ExtractPageText(r io.Reader, pageURL *url.URL) (string, string, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return "", "", fmt.Errorf("failed to read page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse page: %w", err)
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())

	text := readableText(body, pageURL)
	if len(text) < minSectionChars {
		text = selectorText(doc)
	}
	if text == "" {
		return title, "", ErrNoPageText
	}

	return title, truncateRunes(text, maxPageChars), nil
}

// readableText runs readability over the page, returning "" when it finds no article
func readableText(body []byte, pageURL *url.URL) string {
	if pageURL == nil {
		pageURL = &url.URL{Scheme: "https", Host: "localhost"}
	}
	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return ""
	}
	return normalizeText(article.TextContent)
}

// selectorText strips noise and returns the first job container with enough
// text, or the whole body
func selectorText(doc *goquery.Document) string {
	doc.Find(noiseTags).Remove()

	for _, selector := range jobSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if candidate := normalizeText(blockText(sel)); len(candidate) >= minSectionChars {
			return candidate
		}
	}
	return normalizeText(blockText(doc.Find("body")))
}

// blockText returns the selection text with a line break after block level elements
func blockText(sel *goquery.Selection) string {
	sel.Find("p, div, li, br, h1, h2, h3, h4, h5, h6, tr, section").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})
	return sel.Text()
}

func normalizeText(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, strings.TrimSpace(inlineSpace.ReplaceAllString(line, " ")))
	}
	joined := blankRuns.ReplaceAllString(strings.Join(out, "\n"), "\n\n")
	return strings.TrimSpace(joined)
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}
