package domain

// Resource is anything an ownership check can be run against. Any protected
// entity type (stories, profiles, ...) satisfies it, so the predicate below
// stays resource-agnostic.
type Resource interface {
	ResourceOwnerID() string
	ResourcePublic() bool
}

// CanAccess reports whether a user may access a resource: the owner, anyone
// for a public resource, or an administrator. Pure; no store access.
func CanAccess(user *User, resource Resource) bool {
	if resource == nil {
		return false
	}
	if resource.ResourcePublic() {
		return true
	}
	if user == nil {
		return false
	}
	return user.UserID == resource.ResourceOwnerID() || user.IsAdmin()
}
