package browsercookie

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-ini/ini"
)

type firefoxProvider struct{}

func (p firefoxProvider) locate(override string) []storeLocation {
	if override = strings.TrimSpace(override); override != "" {
		if dir, ok := statDir(override); ok {
			return firefoxProfileStores(filepath.Base(dir), dir)
		}
		return overrideFileLocation(BrowserFirefox, override, formatForPath(override))
	}

	var out []storeLocation
	for _, root := range firefoxRoots() {
		cfg, err := ini.Load(filepath.Join(root, "profiles.ini"))
		if err != nil {
			continue
		}
		for _, secName := range cfg.SectionStrings() {
			if !strings.HasPrefix(secName, "Profile") {
				continue
			}
			sec := cfg.Section(secName)
			dir := filepath.FromSlash(sec.Key("Path").String())
			if dir == "" {
				continue
			}
			if sec.Key("IsRelative").String() == "1" {
				dir = filepath.Join(root, dir)
			}
			name := sec.Key("Name").String()
			if name == "" {
				name = filepath.Base(dir)
			}
			out = append(out, firefoxProfileStores(name, dir)...)
		}
	}
	return out
}

// firefoxProfileStores probes one profile directory for the stores Firefox
// keeps cookies in: the sqlite DB for persisted cookies and the session
// restore file for cookies of the live session.
func firefoxProfileStores(profile, dir string) []storeLocation {
	var out []storeLocation
	if p := filepath.Join(dir, "cookies.sqlite"); fileExists(p) {
		out = append(out, storeLocation{browser: BrowserFirefox, profile: profile, path: p, format: formatSQLite})
	}
	if p := filepath.Join(dir, "sessionstore-backups", "recovery.json"); fileExists(p) {
		out = append(out, storeLocation{browser: BrowserFirefox, profile: profile, path: p, format: formatSessionJSON})
	}
	return out
}

func (p firefoxProvider) read(ctx context.Context, loc storeLocation) ([]Cookie, error) {
	if loc.format == formatSessionJSON {
		return readFirefoxSessionStore(loc)
	}

	db, cleanup, err := openStoreSnapshot(ctx, loc.path)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	rows, err := db.QueryContext(ctx,
		`SELECT host, name, value, path, expiry, isSecure, isHttpOnly, sameSite FROM moz_cookies ORDER BY expiry DESC`)
	if err != nil {
		return nil, classifyQueryErr(loc.path, err)
	}
	defer func() { _ = rows.Close() }()

	var out []Cookie
	for rows.Next() {
		var host, name, value, path sql.NullString
		var expiry, secure, httpOnly, sameSite sql.NullInt64
		if err := rows.Scan(&host, &name, &value, &path, &expiry, &secure, &httpOnly, &sameSite); err != nil {
			// Malformed row, not a malformed store.
			continue
		}
		c, ok := firefoxRowToCookie(loc, firefoxRow{
			host:     host.String,
			name:     name.String,
			value:    value.String,
			path:     path.String,
			expiry:   expiry.Int64,
			secure:   secure.Valid && secure.Int64 == 1,
			httpOnly: httpOnly.Valid && httpOnly.Int64 == 1,
			sameSite: sameSite.Int64,
		})
		if !ok {
			continue
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyQueryErr(loc.path, err)
	}
	return out, nil
}

type firefoxRow struct {
	host     string
	name     string
	value    string
	path     string
	expiry   int64
	secure   bool
	httpOnly bool
	sameSite int64
}

func firefoxRowToCookie(loc storeLocation, r firefoxRow) (Cookie, bool) {
	if r.name == "" {
		return Cookie{}, false
	}
	if r.path == "" {
		r.path = "/"
	}

	var expires *time.Time
	if r.expiry > 0 {
		t := time.Unix(r.expiry, 0).UTC()
		expires = &t
	}

	return Cookie{
		Name:     r.name,
		Value:    r.value,
		Domain:   strings.TrimPrefix(r.host, "."),
		Path:     r.path,
		Secure:   r.secure,
		HTTPOnly: r.httpOnly,
		SameSite: sameSiteFromInt(r.sameSite),
		Expires:  expires,
		Source: Source{
			Browser:   BrowserFirefox,
			Profile:   loc.profile,
			StorePath: loc.path,
		},
	}, true
}
