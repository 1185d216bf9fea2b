package domain

// Permission levels understood by the host permission system.
const (
	PermissionGuest = iota
	PermissionUser
	PermissionHelper
	PermissionAdmin
	PermissionOwner
)

// PermissionHolder is anything the host can check a permission level against.
type PermissionHolder interface {
	HasPermission(level int) bool
}

// PermissionPredicate decides whether a holder may use a command node.
type PermissionPredicate func(PermissionHolder) bool
