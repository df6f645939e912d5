package httpapi

const defaultScoreBodyBytes int64 = 1 << 20

// scoreBodyBytes caps the /score request body.
var scoreBodyBytes = defaultScoreBodyBytes

// SetMaxBodyBytes configures the /score body limit; n <= 0 restores the 1 MiB default.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		scoreBodyBytes = defaultScoreBodyBytes
		return
	}
	scoreBodyBytes = n
}

// relayBodyBytes caps the body forwarded by /api/ask. Zero means unlimited.
var relayBodyBytes int64

// SetRelayMaxBodyBytes configures the /api/ask body limit (0 disables).
func SetRelayMaxBodyBytes(n int64) {
	if n < 0 {
		n = 0
	}
	relayBodyBytes = n
}

// CORSOptions configures the relay's CORS middleware.
type CORSOptions struct {
	Enabled        bool
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// DefaultCORS allows any origin to POST JSON.
func DefaultCORS() CORSOptions {
	return CORSOptions{
		Enabled:        true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}
}
