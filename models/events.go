package models

// Operations carried by a permission-error event. The values match the
// access-control rule verbs of the backing store.
const (
	OpGet    = "get"
	OpList   = "list"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// PermissionEvent describes a denied read or write for the diagnostics
// surface. By the time one is emitted the local optimistic state has already
// been rolled back.
type PermissionEvent struct {
	ID                  string         `json:"id"`
	Path                string         `json:"path"`
	Operation           string         `json:"operation"`
	RequestResourceData map[string]any `json:"requestResourceData,omitempty"`
}
