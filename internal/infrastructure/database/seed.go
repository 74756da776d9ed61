package database

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

type SeedKey struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type SeedListing struct {
	ID             string `yaml:"id"`
	Name           string `yaml:"motorName"`
	Description    string `yaml:"description"`
	MonthlyPrice   string `yaml:"monthlyPrice"`
	FullyPaidPrice string `yaml:"fullyPaidPrice"`
	FrontView      string `yaml:"frontView"`
	SideView       string `yaml:"sideView"`
	BackView       string `yaml:"backView"`
}

// SeedData is the demo store: one API key and the listings it owns.
type SeedData struct {
	APIKey      SeedKey       `yaml:"apiKey"`
	Motorcycles []SeedListing `yaml:"motorcycles"`
}

func ParseSeed(data []byte) (*SeedData, error) {
	var s SeedData
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	if s.APIKey.ID == "" {
		return nil, fmt.Errorf("seed data has no api key")
	}
	return &s, nil
}

func DefaultSeed() (*SeedData, error) {
	return ParseSeed(defaultSeed)
}
