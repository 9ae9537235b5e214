package ports

// FolderOpener defines the interface for revealing a directory in the OS file explorer
type FolderOpener interface {
	// OpenFolder opens dir with the platform's default file manager
	OpenFolder(dir string) error
}
