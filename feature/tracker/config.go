package tracker

import (
	"fmt"
	"time"

	"rank-tracker/core/match"
	"rank-tracker/core/tabular"
)

// Config holds the tracking settings.
type Config struct {
	// IncludeUnranked also tracks casual matches.
	IncludeUnranked bool `mapstructure:"include_unranked" default:"false"`
	// Schema is the snapshot layout, legacy or extended.
	Schema string `mapstructure:"schema" default:"extended"`
	// Timezone is an IANA zone name for log times and snapshot rows. Empty
	// means the local zone.
	Timezone string `mapstructure:"timezone" default:""`
}

// Policy returns the category policy selected by the configuration.
func (c Config) Policy() match.Policy {
	return match.Policy{IncludeUnranked: c.IncludeUnranked}
}

// Location resolves Timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// SnapshotSchema resolves Schema.
func (c Config) SnapshotSchema() (tabular.Schema, error) {
	return tabular.ParseSchema(c.Schema)
}
