package openapi

// NewComponents creates the components shared by every operation:
// the paging request schema, the error schema, and the standard error responses.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"PageRequest": {
				Type: "object",
				Properties: map[string]*Schema{
					"page":      {Type: "integer", Description: "1-indexed page number"},
					"page_size": {Type: "integer", Description: "Results per page"},
					"search":    {Type: "string", Description: "Case-insensitive search term"},
					"sort":      {Type: "string", Description: "Comma-separated fields, prefix with - for descending"},
				},
			},
			"Error": {
				Type: "object",
				Properties: map[string]*Schema{
					"error": {Type: "string"},
					"fields": {
						Type: "array",
						Items: &Schema{
							Type: "object",
							Properties: map[string]*Schema{
								"field":   {Type: "string"},
								"message": {Type: "string"},
							},
						},
					},
				},
				Required: []string{"error"},
			},
		},
		Responses: map[string]*Response{
			"BadRequest": ResponseJSON("Invalid request", "Error"),
			"Forbidden":  ResponseJSON("Caller lacks the required permission", "Error"),
			"NotFound":   ResponseJSON("Resource not found", "Error"),
			"Conflict":   ResponseJSON("Request conflicts with current state", "Error"),
		},
	}
}

// AddSchemas merges schemas into the components.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	for name, schema := range schemas {
		c.Schemas[name] = schema
	}
}

// AddResponses merges responses into the components.
func (c *Components) AddResponses(responses map[string]*Response) {
	for name, resp := range responses {
		c.Responses[name] = resp
	}
}
