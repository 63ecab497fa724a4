package gamejolt

import "strings"

var redactedKeys = []string{"signature", "user_token"}

// redactSignature masks the signature and user token in a request URL so it
// can be logged.
func redactSignature(url string) string {
	for _, key := range redactedKeys {
		marker := "&" + key + "="
		start := strings.Index(url, marker)
		if start < 0 {
			continue
		}
		start += len(marker)
		end := strings.IndexByte(url[start:], '&')
		if end < 0 {
			url = url[:start] + "<redacted>"
			continue
		}
		url = url[:start] + "<redacted>" + url[start+end:]
	}
	return url
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}

// firstChar returns the first byte of s, or 0 when s is empty.
func firstChar(s string) byte {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	return s[0]
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
