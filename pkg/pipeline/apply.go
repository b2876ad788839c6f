package pipeline

import (
	"context"

	"golang.org/x/net/html"

	"github.com/matzehuels/webpaste/pkg/observability"
	"github.com/matzehuels/webpaste/pkg/transform"
)

// Apply runs the rules selected by opts over root and reports each rule's
// match count to the transform hooks.
func Apply(ctx context.Context, root *html.Node, opts Options) (*transform.Report, error) {
	report, err := transform.Apply(root, opts.Rules())
	if report != nil {
		hooks := observability.Transform()
		for _, res := range report.Rules {
			hooks.OnRuleApplied(ctx, res.Name, res.Matches)
			if opts.Logger != nil && res.Matches > 0 {
				opts.Logger.Debug("rule applied", "rule", res.Name, "matches", res.Matches)
			}
		}
	}
	return report, err
}
