package ports

import "chroninotes/internal/domain"

// NotesRepository defines the storage operations over the note tree.
// A missing id is not an error: Get and Update return nil, Delete is a no-op.
type NotesRepository interface {
	// List scans the whole tree and returns a flat list without content
	List() ([]domain.Entry, error)

	// Get returns one entry; notes include their content
	Get(id string) (*domain.Entry, error)

	// Create operations. An empty parentID targets the root.
	Create(parentID, title, icon string) (*domain.Entry, error)
	CreateFolder(parentID, title, icon string) (*domain.Entry, error)

	// Update applies patch and refreshes updatedAt. The on-disk name is kept.
	Update(id string, patch domain.Patch) (*domain.Entry, error)

	// Delete removes a note, or a folder with everything below it
	Delete(id string) error

	// Root returns the notes root, creating it if needed
	Root() (string, error)

	// Path resolves an id to the file or directory backing it
	Path(id string) (string, error)
}
