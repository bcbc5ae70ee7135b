package collectors

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	logx "github.com/wayfarer-core-poc/server/pkg/logger"
)

// WikipediaCollector finds encyclopedia pages for the destination and returns their summaries.
type WikipediaCollector struct {
	client  *http.Client
	baseURL string
}

// NewWikipediaCollector targets https://{lang}.wikipedia.org unless baseURL overrides it.
func NewWikipediaCollector(client *http.Client, lang, baseURL string) *WikipediaCollector {
	if lang == "" {
		lang = "en"
	}
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.wikipedia.org", lang)
	}
	return &WikipediaCollector{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

func (w *WikipediaCollector) Name() string { return "wikipedia" }

type wikiSearchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type wikiSummary struct {
	Title   string `json:"title"`
	Extract string `json:"extract"`
}

func (w *WikipediaCollector) Collect(ctx context.Context, destination, interests string, limit int) ([]string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", strings.TrimSpace(destination+" "+interests))
	params.Set("srlimit", strconv.Itoa(limit))
	params.Set("format", "json")

	var search wikiSearchResponse
	if err := getJSON(ctx, w.client, w.baseURL+"/w/api.php", params, nil, &search); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(search.Query.Search))
	for _, hit := range search.Query.Search {
		summary, err := w.summary(ctx, hit.Title)
		if err != nil {
			// one missing page should not cost the others
			logx.Warn().Err(err).Str("title", hit.Title).Msg("wikipedia summary unavailable")
			continue
		}
		if summary.Extract == "" {
			continue
		}
		out = append(out, fmt.Sprintf("%s: %s", summary.Title, summary.Extract))
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (w *WikipediaCollector) summary(ctx context.Context, title string) (*wikiSummary, error) {
	endpoint := w.baseURL + "/api/rest_v1/page/summary/" + url.PathEscape(strings.ReplaceAll(title, " ", "_"))
	var s wikiSummary
	if err := getJSON(ctx, w.client, endpoint, nil, nil, &s); err != nil {
		return nil, err
	}
	if s.Title == "" {
		s.Title = title
	}
	return &s, nil
}

var _ Collector = (*WikipediaCollector)(nil)
