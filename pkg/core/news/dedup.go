package news

import (
	"regexp"
	"strings"

	"growth_analyzer/pkg/core/llm"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/atom"
)

// MaxArticles caps the news panel.
const MaxArticles = 5

// Article is one news link shown in the panel.
type Article struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// Dedup keeps the first MaxArticles citations that have both a title and a URI, unique by
// exact URI, in input order. It never returns nil.
func Dedup(sources []llm.Source) []Article {
	articles := make([]Article, 0, MaxArticles)
	seen := make(map[string]bool, len(sources))

	for _, src := range sources {
		if len(articles) == MaxArticles {
			break
		}
		title := CleanTitle(src.Title)
		if title == "" || strings.TrimSpace(src.URI) == "" {
			continue
		}
		if seen[src.URI] {
			continue
		}
		seen[src.URI] = true
		articles = append(articles, Article{Title: title, URI: src.URI})
	}
	return articles
}

var (
	tagPattern    = regexp.MustCompile(`</?([a-zA-Z][a-zA-Z0-9]*)\b[^<>]*>`)
	entityPattern = regexp.MustCompile(`&(#[0-9]+|#[xX][0-9a-fA-F]+|[a-zA-Z][a-zA-Z0-9]*);`)
)

// CleanTitle strips markup and decodes entities that search results sometimes carry in titles.
// Titles without real HTML tags or entities are only trimmed, so "<NVDA>" or "AT&T" survive.
func CleanTitle(title string) string {
	title = strings.TrimSpace(title)
	if !hasMarkup(title) {
		return title
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(title))
	if err != nil {
		return title
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

func hasMarkup(s string) bool {
	if entityPattern.MatchString(s) {
		return true
	}
	for _, m := range tagPattern.FindAllStringSubmatch(s, -1) {
		if atom.Lookup([]byte(strings.ToLower(m[1]))) != 0 {
			return true
		}
	}
	return false
}
