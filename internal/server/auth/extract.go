package auth

import "strings"

// Request carries the token transport channels of an inbound HTTP request,
// already separated out by the web layer:
//
//   - BoundCookie: the access-token cookie value bound by the framework.
//   - Cookies: the full request cookie jar.
//   - BearerToken: the Authorization header credential with the scheme
//     already stripped by header-parsing middleware.
//
// Any of the three may be empty.
type Request struct {
	BoundCookie string
	Cookies     map[string]string
	BearerToken string
}

// tokenSource returns a candidate token from one transport channel, or "".
type tokenSource func(r Request) string

// Extractor locates an access token on a request by trying a fixed priority
// chain of sources: the bound cookie value, then a cookie-jar lookup by the
// configured cookie name, then the Authorization bearer credential. The
// first source producing a non-empty string wins; later sources are not
// consulted.
type Extractor struct {
	cookieName   string
	bearerPrefix string
	sources      []tokenSource
}

func NewExtractor(cookieName, bearerPrefix string) *Extractor {
	e := &Extractor{cookieName: cookieName, bearerPrefix: bearerPrefix}
	e.sources = []tokenSource{e.fromBoundCookie, e.fromCookieJar, e.fromBearerCredential}
	return e
}

// Extract returns the first token found on r, or "" when no channel has one.
func (e *Extractor) Extract(r Request) string {
	for _, source := range e.sources {
		if token := source(r); token != "" {
			return token
		}
	}
	return ""
}

// ExtractCookieOnly consults only the raw cookie-jar channel. Page rendering
// resolves its optional identity through this path alone.
func (e *Extractor) ExtractCookieOnly(r Request) string {
	return e.fromCookieJar(r)
}

func (e *Extractor) fromBoundCookie(r Request) string {
	return e.stripPrefix(r.BoundCookie)
}

func (e *Extractor) fromCookieJar(r Request) string {
	return e.stripPrefix(r.Cookies[e.cookieName])
}

// The header credential arrives with its scheme already removed, so no
// prefix handling applies here.
func (e *Extractor) fromBearerCredential(r Request) string {
	return r.BearerToken
}

// stripPrefix removes the configured bearer prefix when present. The match
// is a literal, case-sensitive compare; a value stored without the prefix is
// used verbatim.
func (e *Extractor) stripPrefix(value string) string {
	return strings.TrimPrefix(value, e.bearerPrefix)
}
