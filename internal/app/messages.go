package app

import "github.com/jwulff/summit/internal/source"

// CatalogLoadedMsg is sent when the snapshot has been read and validated.
type CatalogLoadedMsg struct {
	Source *source.Loaded
}

// CatalogErrorMsg is sent when the snapshot cannot be loaded, including when
// required columns are missing.
type CatalogErrorMsg struct {
	Err error
}
