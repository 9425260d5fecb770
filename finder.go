package browsercookie

import (
	"context"
	"errors"
	"regexp"
	"slices"
	"sync"
)

// CookieFinder extracts cookies from local browser stores according to an
// immutable configuration. Build one with NewBuilder; a finder is safe to
// reuse and to call from multiple goroutines.
type CookieFinder struct {
	filters    []Filter
	browsers   []Browser
	masterPath string
}

// CookieFinderBuilder accumulates filters, browsers, and an optional master
// path. The zero value is ready to use. The builder performs no I/O and
// Build cannot fail; defaults are injected exactly once at Build time.
type CookieFinderBuilder struct {
	filters    []Filter
	browsers   []Browser
	masterPath string
}

// NewBuilder returns an empty CookieFinderBuilder.
func NewBuilder() *CookieFinderBuilder {
	return &CookieFinderBuilder{}
}

// WithRegexp adds a (pattern, attribute) filter pair. A cookie is kept if
// it matches any configured pair.
func (b *CookieFinderBuilder) WithRegexp(re *regexp.Regexp, attr Attribute) *CookieFinderBuilder {
	b.filters = append(b.filters, Filter{Pattern: re, Attribute: attr})
	return b
}

// WithBrowser adds a browser to read from. Duplicates are ignored; the
// first insertion fixes the browser's position in the merge order.
func (b *CookieFinderBuilder) WithBrowser(browser Browser) *CookieFinderBuilder {
	if !slices.Contains(b.browsers, browser) {
		b.browsers = append(b.browsers, browser)
	}
	return b
}

// WithMasterPath points every requested browser at a single store path
// instead of discovering profiles. With more than one browser configured
// they all read the same file, so this is chiefly useful for
// single-browser configurations.
func (b *CookieFinderBuilder) WithMasterPath(path string) *CookieFinderBuilder {
	b.masterPath = path
	return b
}

// Build produces the immutable finder. If no filter was added, a single
// match-everything pair against the Name attribute is injected; if no
// browser was added, every supported browser is.
func (b *CookieFinderBuilder) Build() *CookieFinder {
	f := &CookieFinder{
		filters:    slices.Clone(b.filters),
		browsers:   slices.Clone(b.browsers),
		masterPath: b.masterPath,
	}
	if len(f.filters) == 0 {
		f.filters = []Filter{{Pattern: regexp.MustCompile(`.*`), Attribute: AttributeName}}
	}
	if len(f.browsers) == 0 {
		f.browsers = SupportedBrowsers()
	}
	return f
}

type storeResult struct {
	cookies []Cookie
	err     error
}

// Find reads every configured browser's stores and merges matching cookies
// into a Jar.
//
// Stores are read concurrently, one goroutine per located store, but the
// merge itself runs single-threaded in a fixed (filter index, browser
// insertion order, store discovery order) sequence, so the survivor of a
// duplicate name is deterministic: the last insertion in that sequence
// wins. Unavailable stores (browser not installed, file missing or locked)
// contribute nothing; format errors abort the whole call with an aggregate
// error and no partial jar.
func (f *CookieFinder) Find(ctx context.Context) (*Jar, error) {
	perBrowser := make([][]storeResult, len(f.browsers))
	cookiesFor := make([][][]Cookie, len(f.browsers))

	var wg sync.WaitGroup
	for bi, b := range f.browsers {
		p := providerFor(b)
		if p == nil {
			continue
		}
		locs := p.locate(f.masterPath)
		perBrowser[bi] = make([]storeResult, len(locs))
		for si, loc := range locs {
			wg.Add(1)
			go func(slot *storeResult, loc storeLocation) {
				defer wg.Done()
				slot.cookies, slot.err = p.read(ctx, loc)
			}(&perBrowser[bi][si], loc)
		}
	}
	wg.Wait()

	var failures []error
	for bi := range perBrowser {
		cookiesFor[bi] = make([][]Cookie, len(perBrowser[bi]))
		for si := range perBrowser[bi] {
			res := &perBrowser[bi][si]
			if res.err != nil {
				if errors.Is(res.err, ErrStoreUnavailable) {
					continue
				}
				failures = append(failures, res.err)
				continue
			}
			cookiesFor[bi][si] = res.cookies
		}
	}
	if len(failures) > 0 {
		return nil, errors.Join(failures...)
	}

	jar := newJar()
	for _, filter := range f.filters {
		for bi := range f.browsers {
			for _, cookies := range cookiesFor[bi] {
				for _, c := range cookies {
					if filter.matches(c) {
						jar.set(c)
					}
				}
			}
		}
	}
	return jar, nil
}
