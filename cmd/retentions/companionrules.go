package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/raoulx24/retentions/internal/apperr"
)

// companionRulesFile is the shape of a --companion-rules-file document:
// a flat list of "TYPE:MATCH:COMPANIONS" strings, the same grammar
// --delete-companions accepts on the command line (§4.6), for
// operators with more rules than are comfortable as repeated flags.
type companionRulesFile struct {
	Rules []string `yaml:"rules"`
}

func loadCompanionRulesFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.Configf("--companion-rules-file", "reading %s: %v", path, err)
	}
	var doc companionRulesFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, apperr.Configf("--companion-rules-file", "parsing %s: %v", path, err)
	}
	return doc.Rules, nil
}
