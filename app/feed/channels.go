package feed

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

type channelsFile struct {
	Channels []Channel `yaml:"channels"`
}

type ChannelLoader struct {
	path string
}

func NewChannelLoader(path string) *ChannelLoader {
	return &ChannelLoader{path: path}
}

// Run returns the configured channels, or the built-in tech channels when no
// file is configured.
func (cl *ChannelLoader) Run() ([]Channel, error) {
	if cl.path == "" {
		slog.Debug("No channels file configured, using built-in channels", "count", len(TechChannels))
		return slices.Clone(TechChannels), nil
	}

	channels, err := cl.parseChannels()
	if err != nil {
		return nil, err
	}

	if err := cl.validateChannels(channels); err != nil {
		return nil, fmt.Errorf("invalid channels file %s: %w", cl.path, err)
	}

	slog.Debug("Channels loaded", "file", cl.path, "count", len(channels))
	return channels, nil
}

func (cl *ChannelLoader) parseChannels() ([]Channel, error) {
	data, err := os.ReadFile(cl.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var file channelsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return file.Channels, nil
}

func (cl *ChannelLoader) validateChannels(channels []Channel) error {
	if len(channels) == 0 {
		return fmt.Errorf("at least one channel is required")
	}

	seen := make(map[string]bool, len(channels))
	for i, channel := range channels {
		if channel.Name == "" {
			return fmt.Errorf("channel name is required at index %d", i)
		}
		if channel.ID == "" {
			return fmt.Errorf("channel id is required at index %d", i)
		}
		if seen[channel.ID] {
			return fmt.Errorf("duplicate channel id at index %d: %s", i, channel.ID)
		}
		seen[channel.ID] = true
	}

	return nil
}
