package transform

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/matzehuels/webpaste/pkg/dom"
	"github.com/matzehuels/webpaste/pkg/errors"
)

// Rule is one rewrite step of the pipeline. Match selects the elements the
// rule acts on; Rewrite mutates the tree around a matched element.
type Rule struct {
	Name        string
	Description string
	Match       func(n *html.Node) bool
	Rewrite     func(n *html.Node) error
}

// Report records how many elements each rule matched during Apply.
type Report struct {
	Rules []RuleResult `json:"rules"`
}

// RuleResult is the outcome of one rule's pass.
type RuleResult struct {
	Name    string `json:"name"`
	Matches int    `json:"matches"`
}

// Matches returns how many elements the named rule matched.
func (r *Report) Matches(name string) int {
	for _, res := range r.Rules {
		if res.Name == name {
			return res.Matches
		}
	}
	return 0
}

// Total returns the number of matches across all rules.
func (r *Report) Total() int {
	total := 0
	for _, res := range r.Rules {
		total += res.Matches
	}
	return total
}

// Apply runs rules over the tree rooted at root, in order, one post-order
// pass per rule. The tree is modified in place.
//
// An error is returned only when a rewrite hits a structural invariant
// violation; the remaining rules are not run and the tree must be discarded.
func Apply(root *html.Node, rules []Rule) (*Report, error) {
	if root == nil || root.Type != html.ElementNode {
		return nil, errors.Invariant("apply rules: root must be an element")
	}

	report := &Report{Rules: make([]RuleResult, 0, len(rules))}
	for _, rule := range rules {
		res := RuleResult{Name: rule.Name}
		for _, n := range dom.PostOrder(root) {
			// An earlier rewrite in this pass may have detached n.
			if !dom.Attached(root, n) {
				continue
			}
			if !rule.Match(n) {
				continue
			}
			if err := rule.Rewrite(n); err != nil {
				report.Rules = append(report.Rules, res)
				return report, fmt.Errorf("rule %s: %w", rule.Name, err)
			}
			res.Matches++
		}
		report.Rules = append(report.Rules, res)
	}
	return report, nil
}

// Clean parses fragment, applies the default rules and renders the result.
// The same input always produces the same output.
func Clean(fragment string) (string, error) {
	out, _, err := CleanWithReport(fragment)
	return out, err
}

// CleanWithReport is Clean that also returns the per-rule match counts.
func CleanWithReport(fragment string) (string, *Report, error) {
	root, err := dom.Parse(fragment)
	if err != nil {
		return "", nil, err
	}
	report, err := Apply(root, Rules())
	if err != nil {
		return "", report, err
	}
	out, err := dom.Render(root)
	if err != nil {
		return "", report, err
	}
	return out, report, nil
}
