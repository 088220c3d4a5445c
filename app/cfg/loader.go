package cfg

import (
	"cmp"
	"fmt"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Server configuration
	Port    string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl string `long:"base-url" env:"BASE_URL" description:"Public base URL for the service (e.g., https://videos.example.com)"`

	// Aggregation configuration
	ChannelsFile    string `long:"channels-file" env:"CHANNELS_FILE" description:"YAML file listing channels (built-in tech channels when empty)"`
	FeedURLTemplate string `long:"feed-url-template" env:"FEED_URL_TEMPLATE" default:"https://www.youtube.com/feeds/videos.xml?channel_id=%s" description:"Channel feed URL, %s is replaced by the channel id"`
	MaxItems        int    `long:"max-items" env:"MAX_ITEMS" default:"5" description:"Maximum entries taken from each channel feed"`
	FetchTimeout    int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"10" description:"Per-channel fetch timeout in seconds"`
	CacheTTL        int    `long:"cache-ttl" env:"CACHE_TTL" default:"600" description:"Aggregated result cache TTL in seconds"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Tube Comb/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	return LoadArgs(nil)
}

// LoadArgs parses the given arguments instead of os.Args when args is non-nil.
func LoadArgs(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	var err error
	if args == nil {
		_, err = parser.Parse()
	} else {
		_, err = parser.ParseArgs(args)
	}
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := validate(&raw); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg := &Cfg{
		Port:            raw.Port,
		BaseUrl:         strings.TrimRight(raw.BaseUrl, "/"),
		ChannelsFile:    raw.ChannelsFile,
		FeedURLTemplate: raw.FeedURLTemplate,
		MaxItems:        raw.MaxItems,
		FetchTimeout:    time.Duration(raw.FetchTimeout) * time.Second,
		CacheTTL:        time.Duration(raw.CacheTTL) * time.Second,
		UserAgent:       raw.UserAgent,
		Timezone:        raw.Timezone,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	return cfg, nil
}

func validate(raw *rawCfg) error {
	positiveFields := map[string]int{
		"max items":     raw.MaxItems,
		"fetch timeout": raw.FetchTimeout,
		"cache ttl":     raw.CacheTTL,
	}

	for fieldName, fieldValue := range positiveFields {
		if fieldValue <= 0 {
			return fmt.Errorf("%s must be positive", fieldName)
		}
	}

	if strings.Count(raw.FeedURLTemplate, "%s") != 1 {
		return fmt.Errorf("feed URL template must contain exactly one %%s placeholder")
	}

	return nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
