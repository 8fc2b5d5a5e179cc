package authentication

import "os"

// signingKey reads the shared HS256 secret. Read per call so tests and
// late-loaded .env files both work.
func signingKey() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}
