// Package pipeline provides the clean pipeline shared by the CLI and the
// HTTP server.
//
// # Architecture
//
// A clean runs in three stages:
//
//  1. Parse: validate the fragment and build a node tree
//  2. Apply: run the rewrite rules over the tree
//  3. Render: serialize the tree back to an HTML fragment
//
// The [Runner] wraps the stages with a result cache, observability hooks and
// logging. Each stage can also be called on its own.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, err := runner.Clean(ctx, fragment, pipeline.Options{})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.HTML)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/webpaste/pkg/errors"
	"github.com/matzehuels/webpaste/pkg/transform"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultMaxBytes caps the size of an input fragment (1 MiB).
	DefaultMaxBytes = 1 << 20

	// DefaultCacheTTL is how long a cleaned result stays cached.
	DefaultCacheTTL = 24 * time.Hour
)

// cacheKeyType labels clean results in cache hooks.
const cacheKeyType = "clean"

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a single clean.
type Options struct {
	// Skip lists rule names that are not run.
	Skip []string `json:"skip,omitempty"`

	// MaxBytes rejects larger inputs with TOO_LARGE. Negative disables the
	// check; zero means DefaultMaxBytes.
	MaxBytes int `json:"max_bytes,omitempty"`

	// Refresh bypasses the cache read; the fresh result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	CacheTTL time.Duration `json:"-"`
	Logger   *log.Logger   `json:"-"`

	validated bool
}

// Result contains the outputs of a clean.
type Result struct {
	// HTML is the cleaned fragment.
	HTML string

	// Report holds per-rule match counts.
	Report *transform.Report

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit is true when HTML and Report came from the cache. Stage
	// timings are zero in that case.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	InputBytes  int
	OutputBytes int
	ParseTime   time.Duration
	ApplyTime   time.Duration
	RenderTime  time.Duration
	Total       time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and fills in defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := ValidateRuleNames(o.Skip); err != nil {
		return err
	}
	if o.MaxBytes == 0 {
		o.MaxBytes = DefaultMaxBytes
	}
	if o.CacheTTL == 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Rules returns the default rules minus the skipped ones, in pipeline order.
func (o *Options) Rules() []transform.Rule {
	rules := transform.Rules()
	if len(o.Skip) == 0 {
		return rules
	}
	skip := make(map[string]bool, len(o.Skip))
	for _, name := range o.Skip {
		skip[name] = true
	}
	kept := rules[:0]
	for _, r := range rules {
		if !skip[r.Name] {
			kept = append(kept, r)
		}
	}
	return kept
}

// maxBytes returns the limit handed to fragment validation, where 0 means
// unlimited.
func (o *Options) maxBytes() int {
	if o.MaxBytes < 0 {
		return 0
	}
	return o.MaxBytes
}

// =============================================================================
// Validation Functions
// =============================================================================

// RuleNames returns the names of the default rules in pipeline order.
func RuleNames() []string {
	rules := transform.Rules()
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name
	}
	return names
}

// ValidateRuleNames checks that every name is a known rule.
func ValidateRuleNames(names []string) error {
	known := RuleNames()
	for _, name := range names {
		found := false
		for _, k := range known {
			if k == name {
				found = true
				break
			}
		}
		if !found {
			return errors.New(errors.ErrCodeInvalidInput,
				"unknown rule %q (known: %s)", name, strings.Join(known, ", "))
		}
	}
	return nil
}

func ruleNames(rules []transform.Rule) []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name
	}
	return names
}
