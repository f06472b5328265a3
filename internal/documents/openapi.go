package documents

import "github.com/JaimeStill/folio/pkg/openapi"

type spec struct {
	List      *openapi.Operation
	Search    *openapi.Operation
	Export    *openapi.Operation
	Find      *openapi.Operation
	Create    *openapi.Operation
	Update    *openapi.Operation
	SetStatus *openapi.Operation
	SetBackup *openapi.Operation
	Values    *openapi.Operation
	SetValues *openapi.Operation
	Delete    *openapi.Operation
}

var filterParams = []*openapi.Parameter{
	openapi.QueryParam("category_id", "string", "Filter by category ID", false),
	openapi.QueryParam("folder_id", "string", "Filter by folder ID", false),
	openapi.QueryParam("management_status", "string", "Filter by management status", false),
	openapi.QueryParam("backup_status", "string", "Filter by backup status", false),
	openapi.QueryParam("created_by", "string", "Filter by creating user", false),
	openapi.QueryParam("date_from", "string", "Earliest document date (YYYY-MM-DD)", false),
	openapi.QueryParam("date_to", "string", "Latest document date (YYYY-MM-DD)", false),
	openapi.QueryParam("title", "string", "Filter by title (contains)", false),
}

func withFilters(params ...*openapi.Parameter) []*openapi.Parameter {
	return append(params, filterParams...)
}

var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List documents",
		Description: "List document summaries with pagination and optional filters",
		Parameters: withFilters(
			openapi.QueryParam("page", "integer", "Page number", false),
			openapi.QueryParam("page_size", "integer", "Items per page", false),
			openapi.QueryParam("search", "string", "Search in title, category, folder and creator", false),
			openapi.QueryParam("sort", "string", "Sort fields, e.g. -document_date,title", false),
		),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Documents list", "DocumentPageResult"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Search: &openapi.Operation{
		Summary:     "Search documents",
		Description: "Search document summaries with pagination in request body",
		Parameters:  withFilters(),
		RequestBody: openapi.RequestBodyJSON("PageRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Search results", "DocumentPageResult"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Export: &openapi.Operation{
		Summary:     "Export documents",
		Description: "Download matching documents as an XLSX workbook. Filtering by category adds a column per category field.",
		Parameters:  withFilters(),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseBinary("Workbook", xlsxContentType),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Find: &openapi.Operation{
		Summary:     "Find document",
		Description: "Document metadata with its field values in display order and its attachments",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Document ID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Document aggregate", "DocumentAggregate"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create document",
		Description: "Register a document. Send JSON, or a multipart form with the command in the \"document\" part and an optional \"file\" part.",
		RequestBody: &openapi.RequestBody{
			Required: true,
			Content: map[string]*openapi.MediaType{
				"application/json": {Schema: openapi.SchemaRef("DocumentCreateCommand")},
				"multipart/form-data": {Schema: &openapi.Schema{
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"document": {Type: "string", Description: "DocumentCreateCommand as JSON"},
						"file":     {Type: "string", Format: "binary", Description: "Optional file to attach"},
					},
					Required: []string{"document"},
				}},
			},
		},
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Document created", "DocumentAggregate"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
			413: {Description: "File too large"},
		},
	},
	Update: &openapi.Operation{
		Summary:     "Update document",
		Description: "Patch metadata and field values. Unknown members are rejected.",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Document ID"),
		},
		RequestBody: openapi.RequestBodyJSON("DocumentUpdateCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Document updated", "DocumentAggregate"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	SetStatus: &openapi.Operation{
		Summary: "Change management status",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Document ID"),
		},
		RequestBody: openapi.RequestBodyJSON("ManagementStatusCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Document updated", "DocumentAggregate"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	SetBackup: &openapi.Operation{
		Summary: "Change backup status",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Document ID"),
		},
		RequestBody: openapi.RequestBodyJSON("BackupStatusCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Document updated", "DocumentAggregate"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Values: &openapi.Operation{
		Summary: "Get field values",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Document ID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Field entries", "FieldEntryList"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	SetValues: &openapi.Operation{
		Summary:     "Set field values",
		Description: "Write the given values keyed by field ID. Blank values clear optional fields.",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Document ID"),
			openapi.QueryParam("expected_version", "integer", "Reject the write unless the document is at this version", false),
		},
		RequestBody: openapi.RequestBodyJSON("FieldValues", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Field entries", "FieldEntryList"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Delete: &openapi.Operation{
		Summary:     "Delete document",
		Description: "Delete the document, its values and its attachments",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Document ID"),
		},
		Responses: map[int]*openapi.Response{
			204: {Description: "Document deleted"},
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func managementEnum() []string {
	out := make([]string, 0, 4)
	for _, s := range ManagementStatuses() {
		out = append(out, string(s))
	}
	return out
}

func (spec) Schemas() map[string]*openapi.Schema {
	backupEnum := []string{string(BackupPending), string(BackupDone)}

	return map[string]*openapi.Schema{
		"DocumentSummary": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":                {Type: "string", Format: "uuid"},
				"category_id":       {Type: "string", Format: "uuid"},
				"folder_id":         {Type: "string", Format: "uuid"},
				"created_by":        {Type: "string"},
				"title":             {Type: "string"},
				"document_date":     {Type: "string", Format: "date-time"},
				"management_status": {Type: "string", Enum: managementEnum()},
				"backup_status":     {Type: "string", Enum: backupEnum},
				"version":           {Type: "integer"},
				"category_name":     {Type: "string"},
				"folder_label":      {Type: "string"},
				"created_at":        {Type: "string", Format: "date-time"},
				"updated_at":        {Type: "string", Format: "date-time"},
			},
		},
		"FieldEntry": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"field_id": {Type: "string", Format: "uuid"},
				"name":     {Type: "string"},
				"type":     {Type: "string"},
				"required": {Type: "boolean"},
				"value":    {Description: "Typed value, or null when unset"},
			},
		},
		"FieldEntryList": {
			Type:  "array",
			Items: openapi.SchemaRef("FieldEntry"),
		},
		"FieldValues": {
			Type:                 "object",
			Description:          "Raw values keyed by field ID",
			AdditionalProperties: &openapi.Schema{},
		},
		"DocumentAggregate": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":                {Type: "string", Format: "uuid"},
				"category_id":       {Type: "string", Format: "uuid"},
				"category_name":     {Type: "string"},
				"folder_id":         {Type: "string", Format: "uuid"},
				"folder_label":      {Type: "string"},
				"created_by":        {Type: "string"},
				"title":             {Type: "string"},
				"document_date":     {Type: "string", Format: "date-time"},
				"management_status": {Type: "string", Enum: managementEnum()},
				"backup_status":     {Type: "string", Enum: backupEnum},
				"version":           {Type: "integer"},
				"fields":            {Type: "array", Items: openapi.SchemaRef("FieldEntry")},
				"attachments":       {Type: "array", Items: openapi.SchemaRef("Attachment")},
			},
		},
		"DocumentCreateCommand": {
			Type:     "object",
			Required: []string{"category_id", "folder_id", "document_date"},
			Properties: map[string]*openapi.Schema{
				"category_id":   {Type: "string", Format: "uuid"},
				"folder_id":     {Type: "string", Format: "uuid"},
				"title":         {Type: "string"},
				"document_date": {Type: "string", Format: "date"},
				"values":        openapi.SchemaRef("FieldValues"),
			},
		},
		"DocumentUpdateCommand": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"folder_id":         {Type: "string", Format: "uuid"},
				"title":             {Type: "string"},
				"document_date":     {Type: "string", Format: "date"},
				"management_status": {Type: "string", Enum: managementEnum()},
				"backup_status":     {Type: "string", Enum: backupEnum},
				"values":            openapi.SchemaRef("FieldValues"),
				"expected_version":  {Type: "integer"},
			},
		},
		"ManagementStatusCommand": {
			Type:     "object",
			Required: []string{"status"},
			Properties: map[string]*openapi.Schema{
				"status": {Type: "string", Enum: managementEnum()},
			},
		},
		"BackupStatusCommand": {
			Type:     "object",
			Required: []string{"status"},
			Properties: map[string]*openapi.Schema{
				"status": {Type: "string", Enum: backupEnum},
			},
		},
		"DocumentPageResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("DocumentSummary")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
	}
}
