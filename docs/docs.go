// Package docs holds the OpenAPI description served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/bots": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Bots"],
                "summary": "List interview bots",
                "parameters": [
                    {"type": "integer", "description": "Page number (default: 1)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Items per page (default: 20)", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.SuccessResponse"}},
                    "401": {"description": "User not authenticated", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Bots"],
                "summary": "Create an interview bot",
                "parameters": [
                    {"description": "Bot definition", "name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/common.SuccessResponse"}},
                    "400": {"description": "Malformed body", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "422": {"description": "Invalid bot configuration", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/bots/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Bots"],
                "summary": "Get an interview bot",
                "parameters": [
                    {"type": "string", "description": "Bot ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.SuccessResponse"}},
                    "404": {"description": "Bot not found", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/sessions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "List interview sessions",
                "parameters": [
                    {"type": "integer", "description": "Page number (default: 1)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Items per page (default: 20)", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.SuccessResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Create an interview session",
                "parameters": [
                    {"description": "Session settings", "name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/common.SuccessResponse"}},
                    "404": {"description": "Bot not found", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "422": {"description": "Invalid session configuration", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/sessions/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Get an interview session",
                "parameters": [
                    {"type": "string", "description": "Session ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.SuccessResponse"}},
                    "404": {"description": "Session not found", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/interview/responses": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Interview"],
                "summary": "Submit an answer",
                "parameters": [
                    {"description": "Answer", "name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.SuccessResponse"}},
                    "409": {"description": "Question index mismatch or participant completed", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "422": {"description": "Empty response", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/interview/participants/{id}/progress": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Interview"],
                "summary": "Get participant progress",
                "parameters": [
                    {"type": "string", "description": "Participant session ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.SuccessResponse"}},
                    "404": {"description": "Participant session not found", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/interview/{token}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Interview"],
                "summary": "Preview an interview",
                "parameters": [
                    {"type": "string", "description": "Session access token", "name": "token", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.SuccessResponse"}},
                    "404": {"description": "Session not found", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/interview/{token}/join": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Interview"],
                "summary": "Join an interview",
                "parameters": [
                    {"type": "string", "description": "Session access token", "name": "token", "in": "path", "required": true},
                    {"description": "Participant data", "name": "request", "in": "body", "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/common.SuccessResponse"}},
                    "409": {"description": "Session already completed", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "410": {"description": "Session expired", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "429": {"description": "Session full", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "common.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {},
                "details": {"type": "object", "additionalProperties": {"type": "string"}},
                "info": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "common.SuccessResponse": {
            "type": "object",
            "properties": {
                "code": {},
                "data": {},
                "message": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Interview Assistant API",
	Description:      "Adaptive interview sessions: bots, token-gated sessions, participants and responses.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
