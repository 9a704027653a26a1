package normalize

import (
	"strconv"
	"strings"

	"github.com/tickerwire/tickerwire/pkg/domain"
)

// importance vocabularies known out of the box
const (
	VocabFCS          = "fcs"          // numeric severity code, 0..3
	VocabForexFactory = "forexfactory" // count of impact icons in the calendar row
	VocabText         = "text"         // textual high/medium/low
)

// Rule maps one source vocabulary onto the unified importance levels.
// Numeric values at or above High map to high, at or above Medium to medium, anything else to low.
// Words are matched case-insensitively before numeric parsing.
type Rule struct {
	High   float64                      `yaml:"high" json:"high"`
	Medium float64                      `yaml:"medium" json:"medium"`
	Words  map[string]domain.Importance `yaml:"words" json:"words,omitempty"`
}

// Rules is a table of vocabulary name to mapping rule
type Rules map[string]Rule

// DefaultRules returns the built-in importance table
func DefaultRules() Rules {
	return Rules{
		VocabFCS:          {High: 3, Medium: 1},
		VocabForexFactory: {High: 3, Medium: 2},
		VocabText: {High: 3, Medium: 2, Words: map[string]domain.Importance{
			"high":     domain.ImportanceHigh,
			"h":        domain.ImportanceHigh,
			"medium":   domain.ImportanceMedium,
			"med":      domain.ImportanceMedium,
			"m":        domain.ImportanceMedium,
			"moderate": domain.ImportanceMedium,
			"low":      domain.ImportanceLow,
			"l":        domain.ImportanceLow,
			"none":     domain.ImportanceLow,
		}},
	}
}

// Merge returns a copy of the rules with overrides applied on top
func (r Rules) Merge(overrides Rules) Rules {
	res := make(Rules, len(r)+len(overrides))
	for k, v := range r {
		res[k] = v
	}
	for k, v := range overrides {
		res[k] = v
	}
	return res
}

// Importance maps a raw importance marker in the given vocabulary to the unified level.
// Unknown vocabularies fall back to the text rule.
func (r Rules) Importance(vocab, raw string) domain.Importance {
	rule, ok := r[vocab]
	if !ok {
		rule = r[VocabText]
	}

	val := strings.ToLower(strings.TrimSpace(raw))
	if imp, ok := rule.Words[val]; ok {
		return imp
	}

	num, err := strconv.ParseFloat(val, 64)
	if err != nil || (rule.High == 0 && rule.Medium == 0) {
		return domain.ImportanceLow
	}
	switch {
	case num >= rule.High:
		return domain.ImportanceHigh
	case num >= rule.Medium:
		return domain.ImportanceMedium
	default:
		return domain.ImportanceLow
	}
}

// Importance maps a raw marker with the default rules
func Importance(vocab, raw string) domain.Importance {
	return defaultRules.Importance(vocab, raw)
}

var defaultRules = DefaultRules()
