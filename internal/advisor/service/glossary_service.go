package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang-stock-advisor/internal/advisor/dto"
)

// ErrTermNotFound means the requested glossary term is not defined.
var ErrTermNotFound = errors.New("term not found")

// GlossaryService explains financial terms from a fixed glossary.
type GlossaryService interface {
	Explain(term string) (*dto.TermResponse, error)
	Terms() []string
}

type glossaryService struct {
	definitions map[string]string
}

// NewGlossaryService creates a new GlossaryService.
func NewGlossaryService() GlossaryService {
	return &glossaryService{
		definitions: map[string]string{
			"pe":         "Price-to-earnings ratio: share price divided by earnings per share. Lower values suggest a cheaper valuation; typical guidance is under 20-25, relative to the sector.",
			"eps":        "Earnings per share: the company's net profit divided by the number of outstanding shares.",
			"dividend":   "Dividend yield: the annual dividend paid out as a percentage of the current share price.",
			"market_cap": "Market capitalization: the total market value of all outstanding shares.",
		},
	}
}

// Explain looks up a term, case-insensitively.
func (s *glossaryService) Explain(term string) (*dto.TermResponse, error) {
	key := strings.ToLower(strings.TrimSpace(term))
	meaning, ok := s.definitions[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTermNotFound, term)
	}
	return &dto.TermResponse{Term: key, Meaning: meaning}, nil
}

// Terms returns the defined glossary keys in sorted order.
func (s *glossaryService) Terms() []string {
	terms := make([]string, 0, len(s.definitions))
	for term := range s.definitions {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}
