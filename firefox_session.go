package browsercookie

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// firefoxSessionCookie is the cookie shape inside
// sessionstore-backups/recovery.json.
type firefoxSessionCookie struct {
	Host     string `json:"host"`
	Name     string `json:"name"`
	Value    string `json:"value"`
	Path     string `json:"path"`
	Secure   bool   `json:"secure"`
	HTTPOnly bool   `json:"httponly"`
}

// readFirefoxSessionStore parses the cookies Firefox keeps for the live
// session, outside the sqlite store. Session cookies carry no expiry.
func readFirefoxSessionStore(loc storeLocation) ([]Cookie, error) {
	raw, err := os.ReadFile(loc.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, loc.path, err)
	}

	var state struct {
		Cookies []firefoxSessionCookie `json:"cookies"`
	}
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, &FormatError{Path: loc.path, Err: err}
	}

	var out []Cookie
	for _, sc := range state.Cookies {
		if sc.Name == "" {
			continue
		}
		path := sc.Path
		if path == "" {
			path = "/"
		}
		out = append(out, Cookie{
			Name:     sc.Name,
			Value:    sc.Value,
			Domain:   strings.TrimPrefix(sc.Host, "."),
			Path:     path,
			Secure:   sc.Secure,
			HTTPOnly: sc.HTTPOnly,
			Source: Source{
				Browser:   loc.browser,
				Profile:   loc.profile,
				StorePath: loc.path,
			},
		})
	}
	return out, nil
}
