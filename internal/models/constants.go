package models

// CategoryUncategorized is the fallback category. It always exists in the category
// store and is never removed.
const CategoryUncategorized = "Uncategorized"

// File permissions
const (
	PermissionDirectory  = 0750
	PermissionExportFile = 0644
)
