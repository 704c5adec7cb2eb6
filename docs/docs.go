// Package docs is generated by swaggo/swag from the handler annotations.
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
        "/console/sections": {
            "get": {
                "produces": ["application/json"],
                "tags": ["console"],
                "summary": "Console navigation",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sectionsResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/console/sections/{section}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["console"],
                "summary": "Open a console section",
                "parameters": [
                    {"type": "string", "description": "Section name", "name": "section", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Section"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/session": {
            "get": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Current session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}}
                }
            }
        },
        "/session/demo": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Login with demo credentials",
                "parameters": [
                    {"description": "Demo credentials", "name": "body", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/handler.credentialLoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionMessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/session/demo/start": {
            "post": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Start a demo session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionMessageResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/session/error": {
            "delete": {
                "tags": ["session"],
                "summary": "Clear login error",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/session/google": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Login with Google",
                "parameters": [
                    {"description": "Google identity token", "name": "body", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/handler.googleLoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionMessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/session/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Logout",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionMessageResponse"}}
                }
            }
        },
        "/session/refresh": {
            "post": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Refresh the session user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Section": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "path": {"type": "string"},
                "roles": {"type": "array", "items": {"type": "string"}},
                "title": {"type": "string"}
            }
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "avatar_url": {"type": "string"},
                "created_at": {"type": "string"},
                "email": {"type": "string"},
                "full_name": {"type": "string"},
                "id": {"type": "integer"},
                "is_active": {"type": "boolean"},
                "is_verified": {"type": "boolean"},
                "last_login": {"type": "string"},
                "role": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "handler.credentialLoginRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string", "maxLength": 128},
                "username": {"type": "string", "maxLength": 128}
            }
        },
        "handler.googleLoginRequest": {
            "type": "object",
            "required": ["id_token"],
            "properties": {
                "id_token": {"type": "string"}
            }
        },
        "handler.sectionsResponse": {
            "type": "object",
            "properties": {
                "sections": {"type": "array", "items": {"$ref": "#/definitions/domain.Section"}},
                "user": {"$ref": "#/definitions/domain.User"}
            }
        },
        "handler.sessionMessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "session": {"$ref": "#/definitions/handler.sessionResponse"}
            }
        },
        "handler.sessionResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "is_authenticated": {"type": "boolean"},
                "is_loading": {"type": "boolean"},
                "phase": {"type": "string", "enum": ["unresolved", "authenticated", "anonymous"]},
                "user": {"$ref": "#/definitions/domain.User"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8090",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Publisher Console API",
	Description:      "Session management for the mobile publisher admin console.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
