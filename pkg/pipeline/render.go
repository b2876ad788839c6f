package pipeline

import (
	"golang.org/x/net/html"

	"github.com/matzehuels/webpaste/pkg/dom"
)

// Render serializes the children of root.
func Render(root *html.Node) (string, error) {
	return dom.Render(root)
}
