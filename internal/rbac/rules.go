package rbac

// RolePermissions is the default policy. Students own their exams; viewers
// (e.g. a parent or tutor) can only look.
var RolePermissions = map[string][]string{
	"student": {
		"exam:*",
		"plan:view",
	},
	"viewer": {
		"exam:view",
		"plan:view",
	},
	"admin": {
		"*", // everything
	},
}

func KnownRole(role string) bool {
	_, ok := RolePermissions[role]
	return ok
}
