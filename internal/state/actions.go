package state

// Action is the base interface for all state mutations
type Action interface{}

// ===== NAVIGATION ACTIONS =====

// NavigateUpAction moves the menu cursor or scrolls the book back one line.
type NavigateUpAction struct{}

// NavigateDownAction moves the menu cursor or scrolls the book forward one line.
type NavigateDownAction struct{}

type ScrollPageUpAction struct{}
type ScrollPageDownAction struct{}
type ScrollHomeAction struct{}
type ScrollEndAction struct{}

// SelectAction is the device's SELECT button: enter in menus, back elsewhere.
type SelectAction struct{}

// BackAction leaves the reading or error screen.
type BackAction struct{}

// ===== FILE ACTIONS =====

// OpenFileAction opens Path in reading mode.
type OpenFileAction struct {
	Path string
}

// LoadDirectoryAction lists Dir in the file menu.
type LoadDirectoryAction struct {
	Dir string
}

type RefreshDirectoryAction struct{}

// ===== VIEW ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}

// ===== APPLICATION ACTIONS =====

type QuitAction struct{}
type SuspendAction struct{}
