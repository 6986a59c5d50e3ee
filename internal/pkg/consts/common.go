package consts

const (
	VisibilityPublic     int8 = 0
	VisibilityRestricted int8 = 1
	VisibilityPrivate    int8 = 2
)

const (
	RoleAdmin = "ADMIN"
)
