//go:build !linux || android

package browsercookie

// On macOS and Windows, encrypted cookie values are sealed with OS
// credentials (keychain-derived keys, DPAPI). This package does not talk
// to those services, so only plaintext values are readable there.
func chromiumDecryptValue(encrypted []byte, metaVersion int64) ([]byte, bool) {
	return nil, false
}
