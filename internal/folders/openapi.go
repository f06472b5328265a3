package folders

import "github.com/JaimeStill/folio/pkg/openapi"

type spec struct {
	List   *openapi.Operation
	Find   *openapi.Operation
	Search *openapi.Operation
	Create *openapi.Operation
	Update *openapi.Operation
	Delete *openapi.Operation
}

var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List folders",
		Description: "List folders with pagination and optional filters",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number", false),
			openapi.QueryParam("page_size", "integer", "Items per page", false),
			openapi.QueryParam("search", "string", "Search in label, location and description", false),
			openapi.QueryParam("sort", "string", "Sort fields, e.g. label,-created_at", false),
			openapi.QueryParam("label", "string", "Filter by label (contains)", false),
			openapi.QueryParam("location", "string", "Filter by location (contains)", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Folders list", "FolderPageResult"),
		},
	},
	Find: &openapi.Operation{
		Summary:     "Find folder",
		Description: "Find folder by ID",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Folder ID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Folder details", "Folder"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Search: &openapi.Operation{
		Summary:     "Search folders",
		Description: "Search folders with pagination in request body",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("label", "string", "Filter by label (contains)", false),
			openapi.QueryParam("location", "string", "Filter by location (contains)", false),
		},
		RequestBody: openapi.RequestBodyJSON("PageRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Search results", "FolderPageResult"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create folder",
		RequestBody: openapi.RequestBodyJSON("FolderCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Folder created", "Folder"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Update: &openapi.Operation{
		Summary: "Update folder",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Folder ID"),
		},
		RequestBody: openapi.RequestBodyJSON("FolderCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Folder updated", "Folder"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Delete: &openapi.Operation{
		Summary:     "Delete folder",
		Description: "Delete an empty folder",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Folder ID"),
		},
		Responses: map[int]*openapi.Response{
			204: {Description: "Folder deleted"},
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Folder": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "string", Format: "uuid"},
				"label":       {Type: "string", Description: "Unique folder label"},
				"location":    {Type: "string", Description: "Shelf or room"},
				"description": {Type: "string"},
				"created_at":  {Type: "string", Format: "date-time"},
				"updated_at":  {Type: "string", Format: "date-time"},
			},
		},
		"FolderCommand": {
			Type:     "object",
			Required: []string{"label"},
			Properties: map[string]*openapi.Schema{
				"label":       {Type: "string"},
				"location":    {Type: "string"},
				"description": {Type: "string"},
			},
		},
		"FolderPageResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("Folder")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
	}
}
