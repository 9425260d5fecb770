package browsercookie

import (
	"fmt"
	"strings"
	"time"
)

// Browser identifies a cookie source.
type Browser string

const (
	// BrowserFirefox is Mozilla Firefox.
	BrowserFirefox Browser = "firefox"

	// BrowserChrome is Google Chrome.
	BrowserChrome Browser = "chrome"
	// BrowserChromium is Chromium.
	BrowserChromium Browser = "chromium"
	// BrowserEdge is Microsoft Edge.
	BrowserEdge Browser = "edge"
	// BrowserBrave is Brave Browser.
	BrowserBrave Browser = "brave"
	// BrowserVivaldi is Vivaldi.
	BrowserVivaldi Browser = "vivaldi"
	// BrowserOpera is Opera.
	BrowserOpera Browser = "opera"
)

// SupportedBrowsers returns every browser this package can read, in the
// order they contribute to a merge when a finder is built without explicit
// browsers.
func SupportedBrowsers() []Browser {
	return []Browser{
		BrowserFirefox,
		BrowserChrome,
		BrowserChromium,
		BrowserEdge,
		BrowserBrave,
		BrowserVivaldi,
		BrowserOpera,
	}
}

// ParseBrowser maps a user-supplied name onto a supported Browser.
func ParseBrowser(s string) (Browser, error) {
	b := Browser(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range SupportedBrowsers() {
		if b == known {
			return b, nil
		}
	}
	return "", fmt.Errorf("browsercookie: unsupported browser %q", s)
}

// Attribute selects which Cookie field a filter pattern is evaluated
// against.
type Attribute int

const (
	// AttributeName matches against the cookie name.
	AttributeName Attribute = iota
	// AttributeValue matches against the cookie value.
	AttributeValue
	// AttributeDomain matches against the cookie domain.
	AttributeDomain
	// AttributePath matches against the cookie path.
	AttributePath
)

func (a Attribute) String() string {
	switch a {
	case AttributeName:
		return "name"
	case AttributeValue:
		return "value"
	case AttributeDomain:
		return "domain"
	case AttributePath:
		return "path"
	default:
		return fmt.Sprintf("attribute(%d)", int(a))
	}
}

// ParseAttribute maps a user-supplied name onto an Attribute.
func ParseAttribute(s string) (Attribute, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name":
		return AttributeName, nil
	case "value":
		return AttributeValue, nil
	case "domain":
		return AttributeDomain, nil
	case "path":
		return AttributePath, nil
	default:
		return 0, fmt.Errorf("browsercookie: unknown attribute %q", s)
	}
}

// SameSite is the cookie SameSite attribute.
type SameSite string

const (
	// SameSiteNone is SameSite=None.
	SameSiteNone SameSite = "None"
	// SameSiteLax is SameSite=Lax.
	SameSiteLax SameSite = "Lax"
	// SameSiteStrict is SameSite=Strict.
	SameSiteStrict SameSite = "Strict"
)

func sameSiteFromInt(v int64) SameSite {
	switch v {
	case 2:
		return SameSiteStrict
	case 1:
		return SameSiteLax
	case 0:
		return SameSiteNone
	default:
		return ""
	}
}

// Source describes where a cookie came from.
type Source struct {
	Browser   Browser
	Profile   string
	StorePath string
}

// Cookie is a browser cookie record. Name is the only required field and
// is the merge key inside a Jar; Domain and Path may be empty, and the
// store-native metadata (Expires, Secure, HTTPOnly, SameSite) is passed
// through as found.
type Cookie struct {
	Name     string
	Value    string
	Domain   string
	Path     string
	Secure   bool
	HTTPOnly bool
	SameSite SameSite

	Expires *time.Time
	Source  Source
}
