package gamejolt

import (
	"crypto/md5" //nolint:gosec // the remote API defines the signature as MD5
	"encoding/hex"
)

// Sign returns the request signature for url: the lowercase hex MD5 digest
// of url immediately followed by secret. url must already carry every query
// parameter except the signature itself.
func Sign(url, secret string) string {
	sum := md5.Sum([]byte(url + secret)) //nolint:gosec
	return hex.EncodeToString(sum[:])
}
