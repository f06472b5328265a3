package api

import (
	"github.com/JaimeStill/folio/internal/attachments"
	"github.com/JaimeStill/folio/internal/categories"
	"github.com/JaimeStill/folio/internal/documents"
	"github.com/JaimeStill/folio/internal/folders"
	"github.com/JaimeStill/folio/internal/values"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Categories  categories.System
	Folders     folders.System
	Values      values.System
	Attachments attachments.System
	Documents   documents.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	db := runtime.Database.Connection()

	categoriesSys := categories.New(
		db,
		runtime.Cache,
		runtime.Logger,
		runtime.Pagination,
	)

	foldersSys := folders.New(
		db,
		runtime.Logger,
		runtime.Pagination,
	)

	valuesSys := values.New(db, runtime.Logger)

	attachmentsSys := attachments.New(
		db,
		runtime.Storage,
		runtime.Logger,
		runtime.MaxUploadSize,
	)

	documentsSys := documents.New(
		db,
		categoriesSys,
		valuesSys,
		attachmentsSys,
		runtime.Logger,
		runtime.Pagination,
	)

	return &Domain{
		Categories:  categoriesSys,
		Folders:     foldersSys,
		Values:      valuesSys,
		Attachments: attachmentsSys,
		Documents:   documentsSys,
	}
}
