package collectors

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const redditSnippetChars = 1500

// RedditCollector searches public discussion threads about a destination.
type RedditCollector struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

func NewRedditCollector(client *http.Client, baseURL, userAgent string) *RedditCollector {
	if baseURL == "" {
		baseURL = "https://www.reddit.com"
	}
	return &RedditCollector{
		client:    client,
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
	}
}

func (r *RedditCollector) Name() string { return "reddit" }

type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title     string `json:"title"`
				Selftext  string `json:"selftext"`
				Subreddit string `json:"subreddit"`
				Permalink string `json:"permalink"`
				Score     int    `json:"score"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func (r *RedditCollector) Collect(ctx context.Context, destination, interests string, limit int) ([]string, error) {
	params := url.Values{}
	params.Set("q", strings.TrimSpace(destination+" "+interests))
	params.Set("limit", strconv.Itoa(limit))
	params.Set("sort", "relevance")
	params.Set("type", "link")

	var listing redditListing
	headers := map[string]string{"User-Agent": r.userAgent}
	if err := getJSON(ctx, r.client, r.baseURL+"/search.json", params, headers, &listing); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		post := child.Data
		if strings.TrimSpace(post.Title) == "" {
			continue
		}
		var b strings.Builder
		fmt.Fprintf(&b, "r/%s: %s", post.Subreddit, post.Title)
		if body := truncate(post.Selftext, redditSnippetChars); body != "" {
			b.WriteString("\n")
			b.WriteString(body)
		}
		out = append(out, b.String())
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

var _ Collector = (*RedditCollector)(nil)
