// Package issues provides the diagnostics sink shared by the resolver,
// the type mapper and the generator.
//
// Instead of printing warnings to a process-wide stream, every component
// receives a Sink and reports structured Issue records to it. A job owns
// exactly one Collector, so concurrent jobs never share diagnostics.
package issues

import (
	"fmt"
	"strings"
	"sync"

	"github.com/erraggy/oasmodels/internal/severity"
)

// Issue represents a single recoverable problem found while processing a job.
type Issue struct {
	// Path is the dotted document path (e.g., "components.schemas.Pet.allOf.1")
	Path string
	// Schema is the schema being processed when the issue was found
	Schema string
	// Property is the property involved, if any
	Property string
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	location := i.Path
	if location == "" {
		location = i.Schema
		if i.Property != "" {
			location += "." + i.Property
		}
	}
	if location == "" {
		return fmt.Sprintf("%s %s", symbol, i.Message)
	}
	return fmt.Sprintf("%s %s: %s", symbol, location, i.Message)
}

// FormatPath formats a dotted document path from segments.
func FormatPath(segments ...string) string {
	return strings.Join(segments, ".")
}

// Sink receives issues as they are found.
type Sink interface {
	Report(issue Issue)
}

// Discard is a Sink that drops every issue.
var Discard Sink = discard{}

type discard struct{}

func (discard) Report(Issue) {}

// OrDiscard returns s, or Discard when s is nil.
func OrDiscard(s Sink) Sink {
	if s == nil {
		return Discard
	}
	return s
}

// Collector is a Sink that keeps every reported issue in order.
// It is safe for concurrent use.
type Collector struct {
	mu       sync.Mutex
	issues   []Issue
	onReport func(Issue)
}

// NewCollector creates a Collector. If onReport is non-nil it is invoked
// for each issue as it is reported, typically to mirror it into a log.
func NewCollector(onReport func(Issue)) *Collector {
	return &Collector{onReport: onReport}
}

// Report implements Sink.
func (c *Collector) Report(issue Issue) {
	c.mu.Lock()
	c.issues = append(c.issues, issue)
	c.mu.Unlock()
	if c.onReport != nil {
		c.onReport(issue)
	}
}

// Issues returns a copy of the collected issues in report order.
func (c *Collector) Issues() []Issue {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Issue, len(c.issues))
	copy(out, c.issues)
	return out
}

// Count returns the number of collected issues with the given severity.
func (c *Collector) Count(s severity.Severity) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, issue := range c.issues {
		if issue.Severity == s {
			n++
		}
	}
	return n
}
