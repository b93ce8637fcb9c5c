package models

import "strings"

// Upload is a base64-encoded file payload attached to a form submission.
// MIME validation against the per-kind allow-list happens in the storage
// client before anything is written.
type Upload struct {
	Data        string `json:"data" binding:"required"` // base64, optionally a data: URI
	FileName    string `json:"file_name" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required,max=100"`
}

// Present reports whether an optional upload was actually provided.
func (u *Upload) Present() bool {
	return u != nil && u.Data != ""
}

// MIME allow-lists per upload kind.
var (
	ImageContentTypes = map[string]bool{
		"image/png":  true,
		"image/jpg":  true,
		"image/jpeg": true,
	}

	PDFContentTypes = map[string]bool{
		"application/pdf": true,
	}

	DocumentContentTypes = map[string]bool{
		"application/pdf":    true,
		"application/msword": true,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	}
)

// IsImage reports whether the payload declares an allowed image type.
func (u *Upload) IsImage() bool {
	return u != nil && ImageContentTypes[strings.ToLower(u.ContentType)]
}

// IsPDF reports whether the payload declares a PDF.
func (u *Upload) IsPDF() bool {
	return u != nil && PDFContentTypes[strings.ToLower(u.ContentType)]
}

// IsDocument reports whether the payload declares an allowed document type
// (pdf, doc, docx).
func (u *Upload) IsDocument() bool {
	return u != nil && DocumentContentTypes[strings.ToLower(u.ContentType)]
}
