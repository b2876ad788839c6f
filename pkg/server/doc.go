// Package server exposes the clean pipeline over HTTP.
//
// # Routes
//
//	POST /v1/clean   clean a fragment
//	GET  /healthz    liveness check, answers "ok"
//	GET  /metrics    Prometheus metrics
//
// POST /v1/clean accepts the fragment as a text/html (or text/plain) body, or
// as JSON:
//
//	{"html": "<p>hello</p>", "skip": ["lone-div"]}
//
// The cleaned fragment is returned as text/html unless the request accepts
// application/json, in which case the response is:
//
//	{"html": "<div>hello</div>", "cached": false, "rules": [{"name": "drop-meta", "matches": 0}, ...]}
//
// Errors are always JSON:
//
//	{"code": "PARSE_FAILURE", "message": "...", "request_id": "..."}
//
// Every response carries an X-Request-ID header, echoing the request's own
// when it sent one.
package server
