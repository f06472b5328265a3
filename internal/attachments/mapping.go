package attachments

import "github.com/JaimeStill/folio/pkg/repository"

const columns = `id, document_id, filename, content_type, size_bytes, page_count, storage_key, created_at`

func scanAttachment(s repository.Scanner) (Attachment, error) {
	var a Attachment
	err := s.Scan(
		&a.ID,
		&a.DocumentID,
		&a.Filename,
		&a.ContentType,
		&a.SizeBytes,
		&a.PageCount,
		&a.StorageKey,
		&a.CreatedAt,
	)
	return a, err
}
