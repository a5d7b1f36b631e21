package api

import (
	"encoding/json"
	"net/http"
)

// handleOpenAPI serves the OpenAPI documentation interface
func (s *APIServer) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		s.writeError(w, methodNotAllowed())
		return
	}

	html := `<!DOCTYPE html>
<html>
<head>
    <title>Prompt Foundry API Documentation</title>
    <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@4.15.5/swagger-ui.css" />
    <style>
        html { box-sizing: border-box; overflow: -moz-scrollbars-vertical; overflow-y: scroll; }
        *, *:before, *:after { box-sizing: inherit; }
        body { margin:0; background: #fafafa; }
    </style>
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4.15.5/swagger-ui-bundle.js"></script>
    <script>
        window.onload = function() {
            const ui = SwaggerUIBundle({
                url: '/api/openapi.json',
                dom_id: '#swagger-ui',
                deepLinking: true,
                presets: [
                    SwaggerUIBundle.presets.apis,
                    SwaggerUIBundle.presets.standalone
                ],
                plugins: [
                    SwaggerUIBundle.plugins.DownloadUrl
                ],
                layout: "StandaloneLayout"
            });
        };
    </script>
</body>
</html>`

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

// handleOpenAPISpec serves the OpenAPI JSON specification
func (s *APIServer) handleOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		s.writeError(w, methodNotAllowed())
		return
	}

	spec := getOpenAPISpec()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(spec)
}

// getOpenAPISpec returns the OpenAPI 3.0 specification
func getOpenAPISpec() map[string]interface{} {
	return map[string]interface{}{
		"openapi": "3.0.3",
		"info": map[string]interface{}{
			"title":       "Prompt Foundry API",
			"description": "Template-driven prompt synthesis with a saved prompt library and offline sync",
			"version":     "1.0.0",
		},
		"servers": []map[string]interface{}{
			{"url": "/", "description": "This server"},
		},
		"paths": map[string]interface{}{
			"/api/v1/templates": map[string]interface{}{
				"get": map[string]interface{}{
					"summary": "List prompt templates",
					"responses": map[string]interface{}{
						"200": jsonResponse("Template catalog in catalog order"),
					},
				},
			},
			"/api/v1/templates/{id}": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":    "Get one template with its question schema",
					"parameters": []map[string]interface{}{pathParam("id", "Template identifier")},
					"responses": map[string]interface{}{
						"200": jsonResponse("Template with questions"),
						"404": jsonResponse("Template not found"),
					},
				},
			},
			"/api/v1/synthesize": map[string]interface{}{
				"post": map[string]interface{}{
					"summary": "Synthesize a prompt document without saving it",
					"requestBody": map[string]interface{}{
						"required": true,
						"content": map[string]interface{}{
							"application/json": map[string]interface{}{
								"schema": map[string]interface{}{
									"$ref": "#/components/schemas/SynthesizeRequest",
								},
							},
						},
					},
					"responses": map[string]interface{}{
						"200": jsonResponse("Generated document"),
						"400": jsonResponse("Missing or invalid request body"),
						"404": jsonResponse("Template not found"),
					},
				},
			},
			"/api/v1/prompts": map[string]interface{}{
				"get": map[string]interface{}{
					"summary": "List saved prompts, newest first",
					"parameters": []map[string]interface{}{
						queryParam("template", "Filter by template id"),
					},
					"responses": map[string]interface{}{
						"200": jsonResponse("Saved prompts"),
					},
				},
				"post": map[string]interface{}{
					"summary": "Synthesize and save a prompt",
					"requestBody": map[string]interface{}{
						"required": true,
						"content": map[string]interface{}{
							"application/json": map[string]interface{}{
								"schema": map[string]interface{}{
									"$ref": "#/components/schemas/CreatePromptRequest",
								},
							},
						},
					},
					"responses": map[string]interface{}{
						"201": jsonResponse("Saved prompt"),
						"400": jsonResponse("Missing or invalid request body"),
						"404": jsonResponse("Template not found"),
					},
				},
			},
			"/api/v1/prompts/{id}": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":    "Get one saved prompt",
					"parameters": []map[string]interface{}{pathParam("id", "Saved prompt identifier")},
					"responses": map[string]interface{}{
						"200": jsonResponse("Saved prompt with document text"),
						"404": jsonResponse("Prompt not found"),
					},
				},
				"delete": map[string]interface{}{
					"summary":    "Delete a saved prompt",
					"parameters": []map[string]interface{}{pathParam("id", "Saved prompt identifier")},
					"responses": map[string]interface{}{
						"200": jsonResponse("Deleted"),
					},
				},
			},
			"/api/v1/search": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":    "Fuzzy search saved prompts",
					"parameters": []map[string]interface{}{queryParam("q", "Search query")},
					"responses": map[string]interface{}{
						"200": jsonResponse("Matching prompts, best match first"),
						"400": jsonResponse("Missing query"),
					},
				},
			},
			"/api/v1/health": map[string]interface{}{
				"get": map[string]interface{}{
					"summary": "Health, connectivity and sync queue status",
					"responses": map[string]interface{}{
						"200": jsonResponse("Health report"),
					},
				},
			},
		},
		"components": map[string]interface{}{
			"schemas": map[string]interface{}{
				"SynthesizeRequest": map[string]interface{}{
					"type":     "object",
					"required": []string{"template"},
					"properties": map[string]interface{}{
						"template":    map[string]interface{}{"type": "string", "example": "code-generation"},
						"answers":     map[string]interface{}{"type": "object", "description": "Question id to answer value; key order is preserved"},
						"initialText": map[string]interface{}{"type": "string"},
						"format":      map[string]interface{}{"type": "string", "enum": []string{"text", "messages"}},
					},
				},
				"CreatePromptRequest": map[string]interface{}{
					"type":     "object",
					"required": []string{"template"},
					"properties": map[string]interface{}{
						"template":    map[string]interface{}{"type": "string"},
						"name":        map[string]interface{}{"type": "string", "description": "Defaults to a timestamped name"},
						"answers":     map[string]interface{}{"type": "object"},
						"initialText": map[string]interface{}{"type": "string"},
					},
				},
				"ErrorResponse": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"error": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"code":      map[string]interface{}{"type": "string"},
								"message":   map[string]interface{}{"type": "string"},
								"timestamp": map[string]interface{}{"type": "string", "format": "date-time"},
							},
						},
					},
				},
			},
		},
	}
}

func jsonResponse(description string) map[string]interface{} {
	return map[string]interface{}{
		"description": description,
		"content": map[string]interface{}{
			"application/json": map[string]interface{}{
				"schema": map[string]interface{}{"type": "object"},
			},
		},
	}
}

func pathParam(name, description string) map[string]interface{} {
	return map[string]interface{}{
		"name":        name,
		"in":          "path",
		"required":    true,
		"description": description,
		"schema":      map[string]interface{}{"type": "string"},
	}
}

func queryParam(name, description string) map[string]interface{} {
	return map[string]interface{}{
		"name":        name,
		"in":          "query",
		"description": description,
		"schema":      map[string]interface{}{"type": "string"},
	}
}
