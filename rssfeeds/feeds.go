package rssfeeds

// FeedConfig represents the configuration for a single RSS feed
type FeedConfig struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Categories lists the valid news topic buckets in serving order.
var Categories = []string{"breaking", "technology", "business", "science", "health"}

// CategoryFeeds maps each category to its configured RSS sources.
var CategoryFeeds = map[string][]FeedConfig{
	"breaking": {
		{Name: "BBC News", URL: "https://feeds.bbci.co.uk/news/rss.xml"},
		{Name: "Reuters Top News", URL: "https://feeds.reuters.com/reuters/topNews"},
	},
	"technology": {
		{Name: "BBC Technology", URL: "https://feeds.bbci.co.uk/news/technology/rss.xml"},
		{Name: "Technology Review", URL: "https://www.technologyreview.com/feed/"},
		{Name: "Hacker News", URL: "https://hnrss.org/newest"},
	},
	"business": {
		{Name: "BBC Business", URL: "https://feeds.bbci.co.uk/news/business/rss.xml"},
		{Name: "CNBC Business", URL: "https://www.cnbc.com/id/10001147/device/rss/rss.html"},
	},
	"science": {
		{Name: "BBC Science", URL: "https://feeds.bbci.co.uk/news/science_and_environment/rss.xml"},
		{Name: "ScienceDaily", URL: "https://www.sciencedaily.com/rss/all.xml"},
	},
	"health": {
		{Name: "BBC Health", URL: "https://feeds.bbci.co.uk/news/health/rss.xml"},
		{Name: "Medical News Today", URL: "https://www.medicalnewstoday.com/rss/featurednews.xml"},
	},
}

// ValidCategory reports whether the given category is configured.
func ValidCategory(category string) bool {
	_, ok := CategoryFeeds[category]
	return ok
}
