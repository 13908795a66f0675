package authz

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

func IsValidRole(role string) bool {
	return role == RoleStudent || role == RoleTeacher || role == RoleAdmin
}

func CanManageStudents(role string) bool {
	return role == RoleTeacher || role == RoleAdmin
}

// AccountKind separates the fixed demo identities from real credentials.
// It is resolved once at lookup so bypass logic stays a single branch.
type AccountKind int

const (
	KindNormal AccountKind = iota
	KindDemo
)
