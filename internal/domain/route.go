package domain

// RouteAccess describes who may view a route: unrestricted (any authenticated
// role) or restricted to an explicit role set. The zero value is unrestricted,
// so the restricted form can only be built through RestrictedTo.
type RouteAccess struct {
	restricted bool
	roles      map[Role]struct{}
}

// Unrestricted allows any authenticated role.
func Unrestricted() RouteAccess {
	return RouteAccess{}
}

// RestrictedTo allows only the given roles.
func RestrictedTo(roles ...Role) RouteAccess {
	set := make(map[Role]struct{}, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return RouteAccess{restricted: true, roles: set}
}

// Restricted reports whether the route carries a role allow-list.
func (a RouteAccess) Restricted() bool {
	return a.restricted
}

// Permits reports whether the role may view the route. Unrestricted access
// permits every role.
func (a RouteAccess) Permits(r Role) bool {
	if !a.restricted {
		return true
	}
	_, ok := a.roles[r]
	return ok
}
