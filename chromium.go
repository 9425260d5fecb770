package browsercookie

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"
)

// chromiumProvider covers every Chromium-derived browser; they share the
// store layout and differ only in where the user data dir lives.
type chromiumProvider struct {
	b Browser
}

func (p chromiumProvider) locate(override string) []storeLocation {
	if override = strings.TrimSpace(override); override != "" {
		if dir, ok := statDir(override); ok {
			return chromiumProfileStores(p.b, filepath.Base(dir), dir)
		}
		return overrideFileLocation(p.b, override, formatSQLite)
	}

	var out []storeLocation
	for _, root := range chromiumUserDataDirs(p.b) {
		out = append(out, chromiumStoresInUserDataDir(p.b, root)...)
	}
	return out
}

// chromiumStoresInUserDataDir enumerates profiles through the Local State
// file's info_cache. Profile order is sorted so discovery is stable; an
// unreadable or unparseable Local State degrades to probing "Default".
func chromiumStoresInUserDataDir(b Browser, userDataDir string) []storeLocation {
	raw, err := os.ReadFile(filepath.Join(userDataDir, "Local State"))
	if err != nil {
		return nil
	}

	var localState struct {
		Profile struct {
			InfoCache map[string]struct {
				Name string `json:"name"`
			} `json:"info_cache"`
		} `json:"profile"`
	}
	if err := json.Unmarshal(raw, &localState); err != nil {
		return chromiumProfileStores(b, "Default", filepath.Join(userDataDir, "Default"))
	}

	dirs := make([]string, 0, len(localState.Profile.InfoCache))
	for dir := range localState.Profile.InfoCache {
		dirs = append(dirs, dir)
	}
	slices.Sort(dirs)

	var out []storeLocation
	for _, dir := range dirs {
		name := localState.Profile.InfoCache[dir].Name
		if name == "" {
			name = dir
		}
		out = append(out, chromiumProfileStores(b, name, filepath.Join(userDataDir, dir))...)
	}
	return out
}

// chromiumProfileStores probes a profile directory for the cookies DB,
// which newer Chromium keeps under Network/.
func chromiumProfileStores(b Browser, profile, dir string) []storeLocation {
	candidates := []string{
		filepath.Join(dir, "Network", "Cookies"),
		filepath.Join(dir, "Cookies"),
	}
	var out []storeLocation
	for _, p := range candidates {
		if fileExists(p) {
			out = append(out, storeLocation{browser: b, profile: profile, path: p, format: formatSQLite})
		}
	}
	return out
}

func (p chromiumProvider) read(ctx context.Context, loc storeLocation) ([]Cookie, error) {
	db, cleanup, err := openStoreSnapshot(ctx, loc.path)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	metaVersion := chromiumMetaVersion(ctx, db)

	rows, err := db.QueryContext(ctx,
		`SELECT host_key, name, path, value, encrypted_value, expires_utc, is_secure, is_httponly, samesite FROM cookies ORDER BY expires_utc DESC`)
	if err != nil {
		return nil, classifyQueryErr(loc.path, err)
	}
	defer func() { _ = rows.Close() }()

	var out []Cookie
	for rows.Next() {
		var hostKey, name, path, value sql.NullString
		var encrypted []byte
		var expires, secure, httpOnly, sameSite sql.NullInt64
		if err := rows.Scan(&hostKey, &name, &path, &value, &encrypted, &expires, &secure, &httpOnly, &sameSite); err != nil {
			continue
		}
		c, ok := chromiumRowToCookie(loc, chromiumRow{
			hostKey:        hostKey.String,
			name:           name.String,
			path:           path.String,
			value:          value.String,
			encryptedValue: encrypted,
			expiresUTC:     expires.Int64,
			secure:         secure.Valid && secure.Int64 == 1,
			httpOnly:       httpOnly.Valid && httpOnly.Int64 == 1,
			sameSite:       sameSite.Int64,
		}, metaVersion)
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

// chromiumMetaVersion reads the store's schema version, best effort. Newer
// versions prepend a host hash to decrypted values.
func chromiumMetaVersion(ctx context.Context, db *sql.DB) int64 {
	var value string
	if err := db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'version'`).Scan(&value); err != nil {
		return 0
	}
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

type chromiumRow struct {
	hostKey        string
	name           string
	path           string
	value          string
	encryptedValue []byte
	expiresUTC     int64
	secure         bool
	httpOnly       bool
	sameSite       int64
}

func chromiumRowToCookie(loc storeLocation, r chromiumRow, metaVersion int64) (Cookie, bool) {
	if r.name == "" {
		return Cookie{}, false
	}

	value := r.value
	if value == "" && len(r.encryptedValue) > 0 {
		plain, ok := chromiumDecryptValue(r.encryptedValue, metaVersion)
		if !ok {
			// Sealed with OS credentials, skip the row.
			return Cookie{}, false
		}
		decoded, ok := chromiumDecodeCookieValue(plain)
		if !ok {
			return Cookie{}, false
		}
		value = decoded
	}

	if r.path == "" {
		r.path = "/"
	}

	var expires *time.Time
	if r.expiresUTC != 0 {
		if t, ok := chromiumExpiresUTCToTime(r.expiresUTC); ok {
			expires = &t
		}
	}

	return Cookie{
		Name:     r.name,
		Value:    value,
		Domain:   strings.TrimPrefix(r.hostKey, "."),
		Path:     r.path,
		Secure:   r.secure,
		HTTPOnly: r.httpOnly,
		SameSite: sameSiteFromInt(r.sameSite),
		Expires:  expires,
		Source: Source{
			Browser:   loc.browser,
			Profile:   loc.profile,
			StorePath: loc.path,
		},
	}, true
}

// chromiumExpiresUTCToTime converts Chromium's microseconds-since-1601
// timestamps to wall time.
func chromiumExpiresUTCToTime(expiresUTC int64) (time.Time, bool) {
	const unixEpochDiffMicros = int64(11644473600000000)
	unixMicros := expiresUTC - unixEpochDiffMicros
	if unixMicros <= 0 {
		return time.Time{}, false
	}
	return time.Unix(0, unixMicros*1000).UTC(), true
}
