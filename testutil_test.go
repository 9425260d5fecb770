package browsercookie

import (
	"crypto/aes"
	"crypto/cipher"
	"database/sql"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

// setTestHome isolates every per-OS discovery root inside a temp dir and
// returns the Firefox root under it.
func setTestHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	switch runtime.GOOS {
	case "linux":
		t.Setenv("HOME", home)
		t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
		return filepath.Join(home, ".mozilla", "firefox")
	case "darwin":
		t.Setenv("HOME", home)
		return filepath.Join(home, "Library", "Application Support", "Firefox")
	case "windows":
		t.Setenv("USERPROFILE", home)
		t.Setenv("APPDATA", filepath.Join(home, "AppData", "Roaming"))
		t.Setenv("LOCALAPPDATA", filepath.Join(home, "AppData", "Local"))
		return filepath.Join(home, "AppData", "Roaming", "Mozilla", "Firefox")
	default:
		t.Skip("no store discovery on " + runtime.GOOS)
		return ""
	}
}

func openTestSQLite(t *testing.T, path string) *sql.DB {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	db, err := sql.Open("sqlite", "file:"+filepath.ToSlash(path)+"?mode=rwc")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

type mozRow struct {
	host     string
	name     string
	value    string
	path     string
	expiry   int64
	secure   int64
	httpOnly int64
	sameSite int64
}

func createFirefoxCookieDB(t *testing.T, path string, rows []mozRow) {
	t.Helper()
	db := openTestSQLite(t, path)
	if _, err := db.Exec(`CREATE TABLE moz_cookies(host TEXT, name TEXT, value TEXT, path TEXT, expiry INTEGER, isSecure INTEGER, isHttpOnly INTEGER, sameSite INTEGER)`); err != nil {
		t.Fatal(err)
	}
	for _, r := range rows {
		if _, err := db.Exec(
			`INSERT INTO moz_cookies(host,name,value,path,expiry,isSecure,isHttpOnly,sameSite) VALUES(?,?,?,?,?,?,?,?)`,
			r.host, r.name, r.value, r.path, r.expiry, r.secure, r.httpOnly, r.sameSite,
		); err != nil {
			t.Fatal(err)
		}
	}
}

type chromiumTestRow struct {
	hostKey   string
	name      string
	path      string
	value     string
	encrypted []byte
	expires   int64
	secure    int64
	httpOnly  int64
	sameSite  int64
}

func createChromiumCookieDB(t *testing.T, path string, metaVersion int64, rows []chromiumTestRow) {
	t.Helper()
	db := openTestSQLite(t, path)
	if _, err := db.Exec(`CREATE TABLE meta(key TEXT, value TEXT)`); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`INSERT INTO meta(key,value) VALUES('version',?)`, metaVersion); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`CREATE TABLE cookies(host_key TEXT, name TEXT, path TEXT, value TEXT, encrypted_value BLOB, expires_utc INTEGER, is_secure INTEGER, is_httponly INTEGER, samesite INTEGER)`); err != nil {
		t.Fatal(err)
	}
	for _, r := range rows {
		if _, err := db.Exec(
			`INSERT INTO cookies(host_key,name,path,value,encrypted_value,expires_utc,is_secure,is_httponly,samesite) VALUES(?,?,?,?,?,?,?,?,?)`,
			r.hostKey, r.name, r.path, r.value, r.encrypted, r.expires, r.secure, r.httpOnly, r.sameSite,
		); err != nil {
			t.Fatal(err)
		}
	}
}

func writeProfilesINI(t *testing.T, root string, body string) {
	t.Helper()
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "profiles.ini"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func writeRecoveryJSON(t *testing.T, profileDir string, body string) string {
	t.Helper()
	dir := filepath.Join(profileDir, "sessionstore-backups")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "recovery.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// writeCanonicalFirefoxFixture builds one profile holding three cookies:
// "name" (httpbin.org) in the session store, "somename" (somehost) and
// "othername" (otherhost) in cookies.sqlite.
func writeCanonicalFirefoxFixture(t *testing.T) {
	t.Helper()
	root := setTestHome(t)
	profileDir := filepath.Join(root, "Profiles", "abcd.default-release")
	expiry := time.Now().Add(24 * time.Hour).Unix()
	createFirefoxCookieDB(t, filepath.Join(profileDir, "cookies.sqlite"), []mozRow{
		{host: "somehost", name: "somename", value: "somevalue", path: "/", expiry: expiry},
		{host: "otherhost", name: "othername", value: "othervalue", path: "/", expiry: expiry},
	})
	writeRecoveryJSON(t, profileDir,
		`{"cookies":[{"host":"httpbin.org","name":"name","value":"value","path":"/"}]}`)
	writeProfilesINI(t, root, "[Profile0]\nName=default\nIsRelative=1\nPath=Profiles/abcd.default-release\n")
}

func pkcs7Pad(t *testing.T, b []byte) []byte {
	t.Helper()
	paddingLen := aes.BlockSize - (len(b) % aes.BlockSize)
	if paddingLen == 0 {
		paddingLen = aes.BlockSize
	}
	out := make([]byte, 0, len(b)+paddingLen)
	out = append(out, b...)
	for i := 0; i < paddingLen; i++ {
		out = append(out, byte(paddingLen))
	}
	return out
}

func encryptAESCBCForTest(t *testing.T, prefix string, key []byte, plaintext []byte) []byte {
	t.Helper()
	block, err := aes.NewCipher(key)
	if err != nil {
		t.Fatal(err)
	}
	padded := pkcs7Pad(t, plaintext)
	ciphertext := make([]byte, len(padded))
	cbc := cipher.NewCBCEncrypter(block, []byte(chromiumAESCBCIV))
	cbc.CryptBlocks(ciphertext, padded)
	return append([]byte(prefix), ciphertext...)
}
