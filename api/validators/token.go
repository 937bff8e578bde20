package validators

import "strings"

// BearerToken extracts the token from an Authorization header value.
// The scheme match is case-insensitive; anything else reports false.
func BearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	const scheme = "bearer "
	if len(header) < len(scheme) || !strings.EqualFold(header[:len(scheme)], scheme) {
		return "", false
	}
	token := strings.TrimSpace(header[len(scheme):])
	return token, token != ""
}
