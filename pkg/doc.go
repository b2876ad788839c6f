// Package pkg provides the core libraries for webpaste clipboard HTML cleaning.
//
// # Overview
//
// webpaste rewrites rich-text HTML captured from word processors, browsers and
// document editors into the markup subset a web-mail compose field renders
// faithfully. The pkg directory is organized into three areas:
//
//  1. Core: [dom] (fragment parsing, tree edits, serialization) and
//     [transform] (the ordered rewrite rules)
//  2. Orchestration: [pipeline] (parse → apply → render with caching and
//     hooks) used by the CLI and the HTTP service alike
//  3. Infrastructure: [cache], [server], [clipboard], [observability],
//     [errors] and [buildinfo]
//
// # Architecture
//
// The data flow through webpaste:
//
//	Clipboard / file / HTTP body
//	         ↓
//	    [dom] package (parse fragment under a synthetic <body>)
//	         ↓
//	    [transform] package (nine post-order rewrite passes)
//	         ↓
//	    [dom] package (dense serialization of the body's children)
//	         ↓
//	Clipboard / stdout / HTTP response
//
// The core packages never import clipboard, OS, HTTP or CLI types.
//
// # Quick Start
//
//	out, err := transform.Clean(`<p class="MsoNormal">hello</p>`)
//	// out == "hello"
//
// With caching, stage timings and metrics hooks:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), logger)
//	res, err := runner.Clean(ctx, fragment, pipeline.Options{Skip: []string{"lone-div"}})
//
// # Testing
//
//	go test ./pkg/...                  # All tests
//	go test ./pkg/transform/...        # Rules only
//	go test -run Example ./pkg/...     # Examples only
//
// [dom]: https://pkg.go.dev/github.com/matzehuels/webpaste/pkg/dom
// [transform]: https://pkg.go.dev/github.com/matzehuels/webpaste/pkg/transform
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/webpaste/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/webpaste/pkg/cache
// [server]: https://pkg.go.dev/github.com/matzehuels/webpaste/pkg/server
// [clipboard]: https://pkg.go.dev/github.com/matzehuels/webpaste/pkg/clipboard
// [observability]: https://pkg.go.dev/github.com/matzehuels/webpaste/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/webpaste/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/webpaste/pkg/buildinfo
package pkg
