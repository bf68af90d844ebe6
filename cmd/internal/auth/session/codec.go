package session

import "encoding/base64"

// bcrypt's alphabet includes '/' and '$', and RFC 6265 forbids '/' in
// cookie names; net/http silently drops cookies with invalid names. Digests
// therefore travel base64url-encoded and are decoded before verification.
// The wrapper changes nothing about opacity: the decoded digest still needs
// the hash primitive's own comparison to relate it to any plaintext.

func encodeCookieToken(dig string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(dig))
}

// decodeCookieToken reports ok=false for anything that is not valid
// base64url; foreign cookies routinely fail here and are simply no-matches.
func decodeCookieToken(tok string) (string, bool) {
	b, err := base64.RawURLEncoding.DecodeString(tok)
	if err != nil {
		return "", false
	}
	return string(b), true
}
