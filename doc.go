// Package browsercookie extracts cookies persisted by locally installed
// browsers and merges them into a single queryable Jar, so that local
// tooling can reuse an existing browser session without re-authenticating.
//
// A CookieFinder is assembled through a builder:
//
//	jar, err := browsercookie.NewBuilder().
//		WithRegexp(regexp.MustCompile(`example\.com`), browsercookie.AttributeDomain).
//		WithBrowser(browsercookie.BrowserFirefox).
//		Build().
//		Find(ctx)
//
// Jar.ToHeader renders the result as an HTTP Cookie header value.
//
// The package reads browser stores strictly read-only (sqlite stores are
// snapshot-copied before opening) and never writes back. It may surface
// expired cookies; expiry interpretation is left to callers.
package browsercookie
