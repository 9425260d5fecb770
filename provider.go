package browsercookie

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// storeFormat tells the reader how a location's on-disk bytes are laid out.
type storeFormat int

const (
	formatSQLite storeFormat = iota
	formatSessionJSON
)

// storeLocation is one discovered cookie store: a path plus the browser and
// profile it belongs to. A browser with several profiles yields several
// locations, all of which get scanned.
type storeLocation struct {
	browser Browser
	profile string
	path    string
	format  storeFormat
}

// storeProvider discovers and reads one browser family's cookie stores.
// Adding a browser means adding a provider; the finder never changes.
type storeProvider interface {
	// locate returns the stores to read, in a stable discovery order. An
	// override path replaces discovery entirely. An empty result means the
	// browser is not installed or has no profiles; that is not an error.
	locate(override string) []storeLocation

	// read parses one located store. It fails with ErrStoreUnavailable or
	// a *FormatError and never returns partial results alongside an error.
	read(ctx context.Context, loc storeLocation) ([]Cookie, error)
}

func providerFor(b Browser) storeProvider {
	switch b {
	case BrowserFirefox:
		return firefoxProvider{}
	case BrowserChrome, BrowserChromium, BrowserEdge, BrowserBrave, BrowserVivaldi, BrowserOpera:
		return chromiumProvider{b: b}
	default:
		return nil
	}
}

// overrideFileLocation wraps a master path that points at a single store
// file. A path that does not exist still becomes a location, so the reader
// reports it through its unavailable/format contract instead of the
// locator guessing.
func overrideFileLocation(b Browser, path string, format storeFormat) []storeLocation {
	return []storeLocation{{
		browser: b,
		profile: filepath.Base(filepath.Dir(path)),
		path:    path,
		format:  format,
	}}
}

func formatForPath(path string) storeFormat {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return formatSessionJSON
	}
	return formatSQLite
}

// statDir reports whether path names an existing directory, returning the
// cleaned path when it does.
func statDir(path string) (string, bool) {
	fi, err := os.Stat(path)
	if err != nil || !fi.IsDir() {
		return "", false
	}
	return filepath.Clean(path), true
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}
