package collectors

import "github.com/wayfarer-core-poc/server/internal/planner/model"

func testCollectorConfig() model.CollectorConfig {
	return model.CollectorConfig{
		RedditUserAgent: "test-agent",
		RedditBaseURL:   "http://reddit.invalid",
		WikipediaLang:   "en",
	}
}
