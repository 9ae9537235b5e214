package application

import "chroninotes/internal/domain"

// Re-export domain types for use by adapters
type (
	Entry            = domain.Entry
	TreeNode         = domain.TreeNode
	Patch            = domain.Patch
	PomodoroSettings = domain.PomodoroSettings
)

// BuildTree nests a flat listing under a synthetic root
func BuildTree(entries []Entry) *TreeNode {
	return domain.BuildTree(entries)
}

// Nest returns the top-level entries with Children populated
func Nest(entries []Entry) []Entry {
	return domain.Nest(entries)
}
