// Package docs holds the OpenAPI document served by swaggerkit.
// Regenerate with: swag init --v3.1 -g cmd/tgcheck-api/main.go -o internal/services/api/docs --instanceName api
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "openapi": "3.0.3",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "paths": {
        "/check-account": {
            "post": {
                "tags": ["Check"],
                "summary": "Check whether one phone number has a Telegram account",
                "requestBody": {
                    "required": true,
                    "content": {"application/json": {"schema": {"$ref": "#/components/schemas/AccountInput"}}}
                },
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {"application/json": {"schema": {"$ref": "#/components/schemas/AccountOutput"}}}
                    },
                    "401": {"description": "Session not signed in or bad token"},
                    "429": {"description": "Telegram rate limit"}
                }
            }
        },
        "/check-batch": {
            "post": {
                "tags": ["Check"],
                "summary": "Check a list of phone numbers in one run",
                "requestBody": {
                    "required": true,
                    "content": {"application/json": {"schema": {"$ref": "#/components/schemas/BatchInput"}}}
                },
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {"application/json": {"schema": {"$ref": "#/components/schemas/BatchOutput"}}}
                    }
                }
            }
        },
        "/session": {
            "get": {
                "tags": ["Session"],
                "summary": "Operator session status",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/session/code": {
            "post": {
                "tags": ["Session"],
                "summary": "Request a login code for the operator phone",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/session/verify": {
            "post": {
                "tags": ["Session"],
                "summary": "Sign in with the received login code",
                "requestBody": {
                    "required": true,
                    "content": {"application/json": {"schema": {"$ref": "#/components/schemas/VerifyInput"}}}
                },
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/meta/health": {"get": {"tags": ["Meta"], "summary": "Health check", "responses": {"200": {"description": "OK"}}}},
        "/meta/ready": {"get": {"tags": ["Meta"], "summary": "Readiness probe with dependency checks", "responses": {"200": {"description": "OK"}}}},
        "/meta/version": {"get": {"tags": ["Meta"], "summary": "Build and version info", "responses": {"200": {"description": "OK"}}}},
        "/meta/service": {"get": {"tags": ["Meta"], "summary": "Service info", "responses": {"200": {"description": "OK"}}}}
    },
    "components": {
        "securitySchemes": {
            "bearer": {"type": "http", "scheme": "bearer"}
        },
        "schemas": {
            "AccountInput": {
                "type": "object",
                "required": ["number"],
                "properties": {"number": {"type": "string", "example": "+15551234567"}}
            },
            "AccountOutput": {
                "type": "object",
                "properties": {
                    "exists": {"type": "boolean"},
                    "message": {"type": "string", "example": "Number found"}
                }
            },
            "BatchInput": {
                "type": "object",
                "required": ["numbers"],
                "properties": {"numbers": {"type": "array", "items": {"type": "string"}}}
            },
            "BatchOutput": {
                "type": "object",
                "properties": {
                    "run_id": {"type": "string"},
                    "state": {"type": "string", "example": "completed"},
                    "results": {"type": "array", "items": {"$ref": "#/components/schemas/CheckResult"}},
                    "code": {"type": "integer"},
                    "error": {"type": "string"}
                }
            },
            "CheckResult": {
                "type": "object",
                "properties": {
                    "phone": {"type": "string"},
                    "exists": {"type": "boolean"},
                    "comment": {"type": "string"}
                }
            },
            "VerifyInput": {
                "type": "object",
                "required": ["code"],
                "properties": {"code": {"type": "string", "example": "12345"}}
            }
        }
    },
    "security": [{"bearer": []}]
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "tgcheck API",
	Description:      "Telegram account existence checks over a single operator session",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
