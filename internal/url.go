package internal

import "net/url"

// NodePath returns the backend-meaningful path of a node URL. Opaque URLs
// (mem:test, data:hello) carry their path in the opaque part rather than in
// Path.
func NodePath(u *url.URL) string {
	if u.Opaque != "" {
		return u.Opaque
	}

	return u.Path
}

// CloneURL returns a copy of u that can be mutated without affecting the
// original. URLs are never mutated in place across back-end boundaries.
func CloneURL(u *url.URL) *url.URL {
	c := *u
	if u.User != nil {
		user := *u.User
		c.User = &user
	}

	return &c
}
