package viewtoken

import (
	"encoding/gob"
	"log"
	"net/http"

	"github.com/gorilla/sessions"

	"Agora/internal/core/viewguard"
)

const (
	cookieName = "agora_seen"
	tokenKey   = "seen"

	// MinCookieSecretLength is the floor for the signing secret
	MinCookieSecretLength = 32
)

func init() {
	// The token rides inside the session's interface{} values, so gob needs
	// the concrete type up front.
	gob.Register(viewguard.Token{})
}

// Transport carries the duplicate-count token between client and server as a
// signed cookie. The token is opaque to the client; a tampered or unreadable
// cookie is treated as an empty token, which at worst counts one extra view.
type Transport struct {
	store *sessions.CookieStore
}

// NewTransport creates a cookie transport signed with secret. The cookie
// lives slightly longer than the guard window so entries expire server-side
// first.
func NewTransport(secret []byte, maxAge int) *Transport {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Transport{store: store}
}

// Load reads the client's token from the request cookie.
func (t *Transport) Load(r *http.Request) viewguard.Token {
	session, err := t.store.Get(r, cookieName)
	if err != nil {
		// Bad signature or stale format: start over with an empty token
		return viewguard.Token{}
	}

	if tok, ok := session.Values[tokenKey].(viewguard.Token); ok {
		return tok
	}
	return viewguard.Token{}
}

// Store writes the updated token back to the client.
func (t *Transport) Store(w http.ResponseWriter, r *http.Request, tok viewguard.Token) {
	// Get returns a usable fresh session even when the cookie fails to decode
	session, _ := t.store.Get(r, cookieName)
	session.Values[tokenKey] = tok
	if err := session.Save(r, w); err != nil {
		log.Printf("WARN: failed to write view token cookie: %v", err)
	}
}
