package authz

// RoleAdmin is the role that grants moderation rights: reading soft-deleted
// posts, editing or deleting any post, and the admin operations.
const RoleAdmin = "ADMIN"

// Viewer is the caller's identity as supplied by the transport's auth layer.
// A zero Viewer is an anonymous reader with no roles.
type Viewer struct {
	Identity string
	Roles    []string
}

// Anonymous is the viewer used for unauthenticated requests.
var Anonymous = Viewer{}

// HasRole reports whether the viewer carries the given role.
func (v Viewer) HasRole(role string) bool {
	for _, r := range v.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the viewer may see admin-only info.
func (v Viewer) IsAdmin() bool {
	return v.HasRole(RoleAdmin)
}

// IsOwner reports whether the viewer authored the post with the given author
// identity. Anonymous viewers own nothing.
func IsOwner(v Viewer, author string) bool {
	return v.Identity != "" && v.Identity == author
}

// CanView reports whether the viewer may read a post. Soft-deleted posts are
// visible to admins only; this is a hard gate, not a display hint.
func CanView(v Viewer, author string, deleted bool) bool {
	if !deleted {
		return true
	}
	return v.IsAdmin()
}

// CanEditOrDelete reports whether the viewer may modify or delete a post:
// the author, or an admin.
func CanEditOrDelete(v Viewer, author string) bool {
	return v.IsAdmin() || IsOwner(v, author)
}
