package viewguard

import (
	"fmt"
	"time"
)

// Namespace separates the dedup windows for different counted actions, so a
// client's view of a post and its recommend of the same post expire
// independently.
type Namespace string

const (
	NamespaceView      Namespace = "view"
	NamespaceRecommend Namespace = "recommend"
)

// Token is the client-held record of which posts this client has already had
// counted, mapping a namespaced post key to a unix-seconds expiry. It travels
// opaquely through the cookie transport; the guard never shares it across
// clients.
type Token map[string]int64

// key builds the token entry key for a post within a namespace.
func key(ns Namespace, postID int64) string {
	return fmt.Sprintf("%s:%d", ns, postID)
}

// Guard decides whether a counter increment is allowed for a (post, client)
// pair within the current window.
type Guard struct {
	ttl time.Duration
}

// NewGuard creates a guard with the given dedup window. A fixed TTL is used
// rather than a calendar-day boundary; 24h is the conventional choice.
func NewGuard(ttl time.Duration) *Guard {
	return &Guard{ttl: ttl}
}

// ShouldCount reports whether a count is allowed for postID under ns at the
// given instant, and returns the token to hand back to the client. When the
// count is allowed the returned token carries a fresh expiry for the post;
// otherwise the token is returned unchanged. The caller applies the increment
// only when countIt is true.
func (g *Guard) ShouldCount(tok Token, ns Namespace, postID int64, now time.Time) (countIt bool, updated Token) {
	k := key(ns, postID)
	if exp, ok := tok[k]; ok && exp > now.Unix() {
		return false, tok
	}

	updated = make(Token, len(tok)+1)
	for entryKey, exp := range tok {
		// Drop entries that have already lapsed so the cookie doesn't grow
		// without bound as the client browses.
		if exp > now.Unix() {
			updated[entryKey] = exp
		}
	}
	updated[k] = now.Add(g.ttl).Unix()
	return true, updated
}
