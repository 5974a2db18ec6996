package models

// Default holds every model the kanban backend persists. Importing this
// package is enough to make them known to the schema tools.
var Default = NewRegistry()

func init() {
	Default.Register(
		&User{},
		&Workspace{},
		&WorkspaceMember{},
		&Board{},
		&Column{},
		&Label{},
		&Task{},
		&TaskLabel{},
		&Comment{},
		&Activity{},
	)
}
