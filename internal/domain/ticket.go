// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"strings"
	"unicode"
)

// Ticket is a single Trac ticket as returned by a tab-delimited query.
type Ticket struct {
	ID      string
	Summary string
	Type    string
	URL     string
}

// ChangeKind says which side of the weekly window a ticket query covers:
// tickets that were opened (new/reopened) or tickets that were closed.
type ChangeKind string

const (
	Opened ChangeKind = "Opened"
	Closed ChangeKind = "Closed"
)

// Category is one of the fixed ticket classification buckets. Ticket types
// are free text in Trac; anything that does not normalize to a named
// category lands in Other. Total is incremented for every ticket.
type Category string

const (
	Enhancements Category = "Enhancements"
	Defects      Category = "Defects"
	Regressions  Category = "Regressions"
	Tasks        Category = "Tasks"
	Undecideds   Category = "Undecideds"
	Other        Category = "Other"
	Total        Category = "Total"
)

// Categories lists every bucket in report display order.
var Categories = []Category{
	Enhancements,
	Defects,
	Regressions,
	Tasks,
	Undecideds,
	Other,
	Total,
}

// Categorize maps a raw Trac ticket type to its summary bucket. The type is
// normalized by capitalizing it and appending "s", so "defect" and "DEFECT"
// both become Defects. Unrecognized types fall back to Other.
func Categorize(ticketType string) Category {
	switch c := Category(capitalize(ticketType) + "s"); c {
	case Enhancements, Defects, Regressions, Tasks, Undecideds, Other:
		return c
	default:
		return Other
	}
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Counts holds the opened/closed tallies for one category.
type Counts struct {
	Opened int
	Closed int
}

// TicketSummary maps every category to its weekly counts. All categories are
// present from construction so the rendered table always shows every row.
type TicketSummary map[Category]*Counts

// NewTicketSummary returns a summary with every category zeroed.
func NewTicketSummary() TicketSummary {
	s := make(TicketSummary, len(Categories))
	for _, c := range Categories {
		s[c] = &Counts{}
	}
	return s
}

// Add records one ticket under its category and under Total. Total therefore
// always equals the sum of the other categories for each kind.
func (s TicketSummary) Add(kind ChangeKind, t Ticket) {
	s.bump(Categorize(t.Type), kind)
	s.bump(Total, kind)
}

func (s TicketSummary) bump(c Category, kind ChangeKind) {
	switch kind {
	case Opened:
		s[c].Opened++
	case Closed:
		s[c].Closed++
	}
}
