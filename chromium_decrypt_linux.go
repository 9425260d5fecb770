//go:build linux && !android

package browsercookie

// chromiumDecryptValue decodes v10 values, which Linux Chromium seals with
// the fixed "peanuts" password when no OS keyring is in play (some builds
// use an empty password instead). v11 values are protected by the user's
// keyring and are left alone; rows holding them are skipped.
func chromiumDecryptValue(encrypted []byte, metaVersion int64) ([]byte, bool) {
	if len(encrypted) < 3 || string(encrypted[:3]) != "v10" {
		return nil, false
	}
	for _, password := range []string{"peanuts", ""} {
		key := chromiumDeriveAESCBCKey(password, chromiumAESCBCIterationsLinux)
		if plain, err := chromiumDecryptAESCBC(encrypted, key, metaVersion); err == nil {
			return plain, true
		}
	}
	return nil, false
}
