package attachments

import "github.com/JaimeStill/folio/pkg/openapi"

type spec struct {
	List     *openapi.Operation
	Upload   *openapi.Operation
	Find     *openapi.Operation
	Download *openapi.Operation
	Delete   *openapi.Operation
}

var Spec = spec{
	List: &openapi.Operation{
		Summary: "List attachments",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Document ID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Attachments", "AttachmentList"),
		},
	},
	Upload: &openapi.Operation{
		Summary:     "Upload attachment",
		Description: "Attach a file to a document. PDFs have page count extracted automatically.",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Document ID"),
		},
		RequestBody: openapi.RequestBodyMultipart(&openapi.Schema{
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"file": {Type: "string", Format: "binary", Description: "File to attach"},
			},
			Required: []string{"file"},
		}),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Attachment stored", "Attachment"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
			413: {Description: "File too large"},
		},
	},
	Find: &openapi.Operation{
		Summary: "Find attachment",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Document ID"),
			openapi.PathParam("attachmentId", "Attachment ID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Attachment details", "Attachment"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Download: &openapi.Operation{
		Summary: "Download attachment",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Document ID"),
			openapi.PathParam("attachmentId", "Attachment ID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseBinary("Attachment content", "application/octet-stream"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Delete: &openapi.Operation{
		Summary:     "Delete attachment",
		Description: "Delete attachment and its stored file",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Document ID"),
			openapi.PathParam("attachmentId", "Attachment ID"),
		},
		Responses: map[int]*openapi.Response{
			204: {Description: "Attachment deleted"},
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Attachment": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":           {Type: "string", Format: "uuid"},
				"document_id":  {Type: "string", Format: "uuid"},
				"filename":     {Type: "string", Description: "Sanitized original filename"},
				"content_type": {Type: "string", Description: "MIME type"},
				"size_bytes":   {Type: "integer", Format: "int64"},
				"page_count":   {Type: "integer", Description: "Page count (PDFs only)"},
				"storage_key":  {Type: "string", Description: "Storage location key"},
				"created_at":   {Type: "string", Format: "date-time"},
			},
		},
		"AttachmentList": {
			Type:  "array",
			Items: openapi.SchemaRef("Attachment"),
		},
	}
}
