package log

const (
	NamespaceKey = "humantask"

	InstanceIDKey   = NamespaceKey + ".instance.id"
	DefinitionIDKey = NamespaceKey + ".definition.id"
	TaskKeyKey      = NamespaceKey + ".task.key"

	CommandKey = NamespaceKey + ".command"
	StatusKey  = NamespaceKey + ".status"
	UserIDKey  = NamespaceKey + ".user.id"

	RoleKey      = NamespaceKey + ".role"
	GroupNameKey = NamespaceKey + ".group.name"
	UserCountKey = NamespaceKey + ".user_count"
)
