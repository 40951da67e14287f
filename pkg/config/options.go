package config

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed options.yaml
var optionsYAML []byte

// Options holds the closed option lists shown to users as keyboards.
// The lists are embedded at compile time; membership checks are exact match.
type Options struct {
	Provinces         []string `yaml:"provinces"`
	ContractOptions   []string `yaml:"contract_options"`
	UnknownDateTokens []string `yaml:"unknown_date_tokens"`
	SkipToken         string   `yaml:"skip_token"`
}

// LoadOptions parses the embedded option lists and validates they are usable.
func LoadOptions() (*Options, error) {
	var opts Options
	if err := yaml.Unmarshal(optionsYAML, &opts); err != nil {
		return nil, fmt.Errorf("failed to parse embedded options: %w", err)
	}
	if len(opts.Provinces) == 0 {
		return nil, fmt.Errorf("embedded options list no provinces")
	}
	if len(opts.ContractOptions) != 2 {
		return nil, fmt.Errorf("contract options must be a yes/no pair, got %d entries", len(opts.ContractOptions))
	}
	if len(opts.UnknownDateTokens) == 0 {
		return nil, fmt.Errorf("embedded options list no unknown-date tokens")
	}
	if opts.SkipToken == "" {
		return nil, fmt.Errorf("embedded options missing skip token")
	}
	return &opts, nil
}

// IsProvince reports whether text exactly matches a configured province.
func (o *Options) IsProvince(text string) bool {
	return contains(o.Provinces, text)
}

// IsContractOption reports whether text is the yes or the no answer.
func (o *Options) IsContractOption(text string) bool {
	return contains(o.ContractOptions, text)
}

// ContractYes is the affirmative contract answer.
func (o *Options) ContractYes() string {
	return o.ContractOptions[0]
}

// IsUnknownDate reports whether text is a recognized "ongoing/unknown" token.
func (o *Options) IsUnknownDate(text string) bool {
	return contains(o.UnknownDateTokens, text)
}

func contains(list []string, text string) bool {
	for _, item := range list {
		if item == text {
			return true
		}
	}
	return false
}
