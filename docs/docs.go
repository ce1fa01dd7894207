// Package docs registers the OpenAPI document served at /swagger/doc.json.
// Regenerate with `swag init -g cmd/main.go` after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/auth/sign-up": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register an operator",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.authCredentials"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}
            }
        },
        "/auth/sign-in": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Obtain a bearer token",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.authCredentials"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/v1/accessory/temperature": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["accessory"],
                "summary": "Read temperature",
                "description": "Polls the printer once. 503 while the printer is idle or heating, 424 when the printer rejects the API key, 502 on any other failure.",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.TemperatureResponse"}},
                    "401": {"description": "Unauthorized"},
                    "424": {"description": "Failed Dependency", "schema": {"$ref": "#/definitions/handlers.ReadErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handlers.ReadErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handlers.ReadErrorResponse"}}
                }
            }
        },
        "/api/v1/accessory/state": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["accessory"],
                "summary": "Get accessory state",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.AccessoryState"}},
                    "401": {"description": "Unauthorized"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/api/v1/accessory/info": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["accessory"],
                "summary": "Get accessory information",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.AccessoryInformation"}},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/api/v1/events": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "List accessory events",
                "parameters": [
                    {"type": "string", "name": "from", "in": "query"},
                    {"type": "string", "name": "to", "in": "query"},
                    {"enum": ["ACTIVE", "INACTIVE", "FAILURE"], "type": "string", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "count, events"},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/ws": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["accessory"],
                "summary": "Accessory state stream",
                "parameters": [
                    {"type": "string", "name": "interval", "in": "query"},
                    {"type": "integer", "name": "interval_ms", "in": "query"}
                ],
                "responses": {"101": {"description": "Switching Protocols"}, "401": {"description": "Unauthorized"}}
            }
        }
    },
    "definitions": {
        "handlers.authCredentials": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {"password": {"type": "string"}, "username": {"type": "string"}}
        },
        "handlers.TemperatureResponse": {
            "type": "object",
            "properties": {"value": {"type": "number", "example": 61.5}}
        },
        "handlers.ReadErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "resource unavailable"},
                "kind": {"type": "string", "example": "RESOURCE_UNAVAILABLE"},
                "hap_status": {"type": "integer", "example": -70403}
            }
        },
        "models.AccessoryState": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "active": {"type": "boolean"},
                "tampered": {"type": "boolean"},
                "temperature": {"type": "number"},
                "failure": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "models.AccessoryInformation": {
            "type": "object",
            "properties": {
                "manufacturer": {"type": "string"},
                "model": {"type": "string"},
                "name": {"type": "string"},
                "serial_number": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Prusa Thermal Bridge API",
	Description:      "Exposes a PrusaLink printer as a temperature sensor accessory.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
