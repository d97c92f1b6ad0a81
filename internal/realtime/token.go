package realtime

import (
	"net/http"
	"strings"
)

// minTokenLength filters obviously-truncated candidates before any signature
// verification is attempted.
const minTokenLength = 20

type tokenExtractor func(*http.Request) string

// Token extraction order: explicit auth field, query parameter, bearer
// header, then cookies. The first syntactically plausible candidate wins;
// verification happens afterwards, once.
var tokenExtractors = []tokenExtractor{
	queryExtractor("auth"),
	queryExtractor("token"),
	bearerHeaderExtractor,
	cookieExtractor("access_token"),
	cookieExtractor("token"),
}

func extractToken(r *http.Request) (string, bool) {
	for _, extract := range tokenExtractors {
		candidate := strings.TrimSpace(extract(r))
		if len(candidate) >= minTokenLength {
			return candidate, true
		}
	}
	return "", false
}

func queryExtractor(name string) tokenExtractor {
	return func(r *http.Request) string {
		return r.URL.Query().Get(name)
	}
}

func bearerHeaderExtractor(r *http.Request) string {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func cookieExtractor(name string) tokenExtractor {
	return func(r *http.Request) string {
		cookie, err := r.Cookie(name)
		if err != nil {
			return ""
		}
		return cookie.Value
	}
}
