// Package docs holds the OpenAPI description served under /swagger when the
// binary is built with -tags=swagger. Regenerate with `swag init -g cmd/summaryd/docs.go`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["status"],
                "summary": "Loader status",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/types.StatusResponse"}
                    }
                }
            }
        },
        "/summarize": {
            "post": {
                "description": "Loads the model on first use, then returns an abstractive summary of the given text.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["summarize"],
                "summary": "Summarize text",
                "parameters": [
                    {
                        "description": "Text to summarize",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/types.SummarizeRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.SummarizeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "No text provided"}
            }
        },
        "types.SummarizeRequest": {
            "type": "object",
            "properties": {
                "text": {"type": "string", "example": "The quick brown fox jumps over the lazy dog. It was not amused."}
            }
        },
        "types.SummarizeResponse": {
            "type": "object",
            "properties": {
                "summary": {"type": "string", "example": "The quick brown fox jumps over the lazy dog."}
            }
        },
        "types.StatusResponse": {
            "type": "object",
            "properties": {
                "loaded": {"type": "boolean", "example": true},
                "state": {"type": "string", "example": "ready"},
                "repo_id": {"type": "string", "example": "TheOCEAN/summarizer-portable"},
                "revision": {"type": "string", "example": "main"},
                "runtime": {"type": "string", "example": "extractive"},
                "model_type": {"type": "string", "example": "pegasus"},
                "load_attempts": {"type": "integer", "example": 1},
                "last_error": {"type": "string"},
                "loaded_at_unix": {"type": "integer", "example": 1700000000},
                "uptime_seconds": {"type": "integer", "example": 3600},
                "server_time_unix": {"type": "integer", "example": 1700000000}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "summaryd API",
	Description:      "HTTP API for on-demand text summarization.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
