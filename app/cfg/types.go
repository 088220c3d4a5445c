package cfg

import "time"

type Cfg struct {
	// Server configuration
	Port    string
	BaseUrl string

	// Aggregation configuration
	ChannelsFile    string
	FeedURLTemplate string
	MaxItems        int
	FetchTimeout    time.Duration
	CacheTTL        time.Duration

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
