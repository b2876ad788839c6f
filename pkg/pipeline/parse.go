package pipeline

import (
	"golang.org/x/net/html"

	"github.com/matzehuels/webpaste/pkg/dom"
	"github.com/matzehuels/webpaste/pkg/errors"
)

// Parse checks fragment against the size limit in opts and parses it.
// Oversized input fails with TOO_LARGE, malformed input with PARSE_FAILURE.
func Parse(fragment string, opts Options) (*html.Node, error) {
	if err := errors.ValidateFragment(fragment, opts.maxBytes()); err != nil {
		return nil, err
	}
	return dom.Parse(fragment)
}
