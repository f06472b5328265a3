package categories

import "github.com/JaimeStill/folio/pkg/openapi"

type spec struct {
	List        *openapi.Operation
	Search      *openapi.Operation
	Types       *openapi.Operation
	Find        *openapi.Operation
	Create      *openapi.Operation
	Update      *openapi.Operation
	Rename      *openapi.Operation
	Retire      *openapi.Operation
	Reactivate  *openapi.Operation
	Fields      *openapi.Operation
	AddField    *openapi.Operation
	UpdateField *openapi.Operation
	RemoveField *openapi.Operation
}

var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List categories",
		Description: "List categories with pagination and optional filters",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number", false),
			openapi.QueryParam("page_size", "integer", "Items per page", false),
			openapi.QueryParam("search", "string", "Search in name and description", false),
			openapi.QueryParam("sort", "string", "Sort fields, e.g. name,-created_at", false),
			openapi.QueryParam("name", "string", "Filter by name (contains)", false),
			openapi.QueryParam("status", "string", "Filter by status (active, obsolete)", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Categories list", "CategoryPageResult"),
		},
	},
	Search: &openapi.Operation{
		Summary:     "Search categories",
		Description: "Search categories with pagination in request body",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("name", "string", "Filter by name (contains)", false),
			openapi.QueryParam("status", "string", "Filter by status (active, obsolete)", false),
		},
		RequestBody: openapi.RequestBodyJSON("PageRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Search results", "CategoryPageResult"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Types: &openapi.Operation{
		Summary:     "List field types",
		Description: "List the supported field types and their storage slots",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Field types", "FieldTypeList"),
		},
	},
	Find: &openapi.Operation{
		Summary:     "Find category",
		Description: "Find category by ID including its ordered fields",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Category ID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Category details", "Category"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create category",
		Description: "Create a category with its initial fields",
		RequestBody: openapi.RequestBodyJSON("CreateCategoryCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Category created", "Category"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Update category",
		Description: "Replace category name and description",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Category ID"),
		},
		RequestBody: openapi.RequestBodyJSON("UpdateCategoryCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Category updated", "Category"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Rename: &openapi.Operation{
		Summary:     "Rename category",
		Description: "Change category name. Names are unique without regard to case, including retired categories.",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Category ID"),
		},
		RequestBody: openapi.RequestBodyJSON("RenameCategoryCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Category renamed", "Category"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Retire: &openapi.Operation{
		Summary:     "Retire category",
		Description: "Mark category obsolete. Existing documents are unaffected and no new documents may use it.",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Category ID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Category retired", "Category"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Reactivate: &openapi.Operation{
		Summary:     "Reactivate category",
		Description: "Return an obsolete category to active",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Category ID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Category reactivated", "Category"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Fields: &openapi.Operation{
		Summary:     "List fields",
		Description: "List category fields ordered by display order, then ID",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Category ID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Category fields", "CategoryFieldList"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	AddField: &openapi.Operation{
		Summary:     "Add field",
		Description: "Add a typed field to a category. Omitting order appends the field.",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Category ID"),
		},
		RequestBody: openapi.RequestBodyJSON("AddFieldCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Field added", "CategoryField"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	UpdateField: &openapi.Operation{
		Summary:     "Update field",
		Description: "Rename, retype, or reorder a field. Stored values are not converted.",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Category ID"),
			openapi.PathParam("fieldId", "Field ID"),
		},
		RequestBody: openapi.RequestBodyJSON("UpdateFieldCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Field updated", "CategoryField"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	RemoveField: &openapi.Operation{
		Summary:     "Remove field",
		Description: "Delete a field definition. Stored values are kept but no longer read.",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Category ID"),
			openapi.PathParam("fieldId", "Field ID"),
		},
		Responses: map[int]*openapi.Response{
			204: {Description: "Field removed"},
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func fieldTypeSchema() *openapi.Schema {
	return &openapi.Schema{
		Type: "string",
		Enum: []string{"short_text", "long_text", "integer", "decimal", "date", "boolean"},
	}
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Category": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "string", Format: "uuid"},
				"name":        {Type: "string"},
				"description": {Type: "string"},
				"status":      {Type: "string", Enum: []string{"active", "obsolete"}},
				"fields":      {Type: "array", Items: openapi.SchemaRef("CategoryField")},
				"created_at":  {Type: "string", Format: "date-time"},
				"updated_at":  {Type: "string", Format: "date-time"},
			},
		},
		"CategoryField": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "string", Format: "uuid"},
				"category_id": {Type: "string", Format: "uuid"},
				"name":        {Type: "string"},
				"type":        fieldTypeSchema(),
				"required":    {Type: "boolean"},
				"order":       {Type: "integer"},
				"max_length":  {Type: "integer", Description: "Character limit (text types only)"},
				"created_at":  {Type: "string", Format: "date-time"},
			},
		},
		"CategoryFieldList": {
			Type:  "array",
			Items: openapi.SchemaRef("CategoryField"),
		},
		"FieldTypeList": {
			Type: "array",
			Items: &openapi.Schema{
				Type: "object",
				Properties: map[string]*openapi.Schema{
					"type":       fieldTypeSchema(),
					"slot":       {Type: "string", Enum: []string{"text", "number", "date", "bool"}},
					"slot_limit": {Type: "integer"},
				},
			},
		},
		"AddFieldCommand": {
			Type:     "object",
			Required: []string{"name", "type"},
			Properties: map[string]*openapi.Schema{
				"name":       {Type: "string"},
				"type":       fieldTypeSchema(),
				"required":   {Type: "boolean"},
				"order":      {Type: "integer", Description: "Display order; appended when omitted"},
				"max_length": {Type: "integer"},
			},
		},
		"UpdateFieldCommand": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"name":       {Type: "string"},
				"type":       fieldTypeSchema(),
				"required":   {Type: "boolean"},
				"order":      {Type: "integer"},
				"max_length": {Type: "integer", Description: "Zero clears the limit"},
			},
		},
		"CreateCategoryCommand": {
			Type:     "object",
			Required: []string{"name"},
			Properties: map[string]*openapi.Schema{
				"name":        {Type: "string"},
				"description": {Type: "string"},
				"fields":      {Type: "array", Items: openapi.SchemaRef("AddFieldCommand")},
			},
		},
		"UpdateCategoryCommand": {
			Type:     "object",
			Required: []string{"name"},
			Properties: map[string]*openapi.Schema{
				"name":        {Type: "string"},
				"description": {Type: "string"},
			},
		},
		"RenameCategoryCommand": {
			Type:     "object",
			Required: []string{"name"},
			Properties: map[string]*openapi.Schema{
				"name": {Type: "string"},
			},
		},
		"CategoryPageResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("Category")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
	}
}
