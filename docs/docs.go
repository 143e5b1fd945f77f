// Package docs registers the OpenAPI document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/login": {
            "post": {
                "description": "Signs in with email and password. The role is derived from the address and any password is accepted unless an access code is configured.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "User login",
                "parameters": [
                    {
                        "description": "Login credentials",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.LoginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Login successful", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "400": {"description": "Invalid request format or validation error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/auth/login/{provider}": {
            "post": {
                "description": "Signs in through Google or Apple",
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Social login",
                "parameters": [
                    {
                        "enum": ["google", "apple"],
                        "type": "string",
                        "description": "Login provider",
                        "name": "provider",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {"description": "Login successful", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "400": {"description": "Unknown provider", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {
                    "200": {"description": "Logged out", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "Current user", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/dashboard": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Headline stats and chart series over the current roster. reload=true regenerates the roster first.",
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Dashboard overview",
                "parameters": [
                    {"type": "boolean", "description": "Regenerate the roster first", "name": "reload", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Dashboard", "schema": {"$ref": "#/definitions/dto.APIResponse"}}
                }
            }
        },
        "/students": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns the roster filtered by search text, risk level, class and department, sorted by risk score",
                "produces": ["application/json"],
                "tags": ["students"],
                "summary": "List students",
                "parameters": [
                    {"type": "string", "name": "search", "in": "query"},
                    {"enum": ["all", "low", "medium", "high"], "type": "string", "name": "riskLevel", "in": "query"},
                    {"type": "string", "name": "class", "in": "query"},
                    {"type": "string", "name": "department", "in": "query"},
                    {"type": "integer", "default": 1, "name": "page", "in": "query"},
                    {"type": "integer", "default": 10, "name": "size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Students", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "400": {"description": "Invalid filter", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/students/regenerate": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["students"],
                "summary": "Regenerate roster",
                "responses": {
                    "200": {"description": "New roster summary", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/students/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv"],
                "tags": ["students"],
                "summary": "Export students",
                "responses": {
                    "200": {"description": "CSV file", "schema": {"type": "string"}}
                }
            }
        },
        "/students/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["students"],
                "summary": "Get student",
                "parameters": [
                    {"type": "string", "description": "Student ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Student detail", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/students/{id}/interventions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["interventions"],
                "summary": "List interventions",
                "parameters": [
                    {"type": "string", "description": "Student ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Interventions", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["interventions"],
                "summary": "Log intervention",
                "parameters": [
                    {"type": "string", "description": "Student ID", "name": "id", "in": "path", "required": true},
                    {"description": "Intervention", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateInterventionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Intervention logged", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "400": {"description": "Missing fields", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/students/{id}/insights/{kind}": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["insights"],
                "summary": "Generate insight",
                "parameters": [
                    {"type": "string", "description": "Student ID", "name": "id", "in": "path", "required": true},
                    {"enum": ["risk_story", "resources", "email_draft", "intervention_plan", "syllabus"], "type": "string", "name": "kind", "in": "path", "required": true},
                    {"description": "Input text", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/dto.InsightRequest"}}
                ],
                "responses": {
                    "200": {"description": "Generated text", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "400": {"description": "Empty syllabus text", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "502": {"description": "Generation failed", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/students/{id}/email": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["insights"],
                "summary": "Send guardian email",
                "parameters": [
                    {"type": "string", "description": "Student ID", "name": "id", "in": "path", "required": true},
                    {"description": "Email", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SendEmailRequest"}}
                ],
                "responses": {
                    "200": {"description": "Email sent", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "502": {"description": "Delivery failed", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/risk/score": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["risk"],
                "summary": "Score risk",
                "parameters": [
                    {"description": "Scoring input", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RiskScoreRequest"}}
                ],
                "responses": {
                    "200": {"description": "Score", "schema": {"$ref": "#/definitions/dto.APIResponse"}}
                }
            }
        },
        "/risk/predict": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["risk"],
                "summary": "Predict dropout risk",
                "parameters": [
                    {"description": "Enrollment form", "name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "Prediction", "schema": {"$ref": "#/definitions/dto.APIResponse"}}
                }
            }
        },
        "/risk/predict/defaults": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["risk"],
                "summary": "Predictor defaults",
                "responses": {
                    "200": {"description": "Defaults", "schema": {"$ref": "#/definitions/dto.APIResponse"}}
                }
            }
        },
        "/uploads": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["uploads"],
                "summary": "Upload data files",
                "parameters": [
                    {"type": "file", "description": "Data files", "name": "files", "in": "formData", "required": true}
                ],
                "responses": {
                    "202": {"description": "Upload accepted", "schema": {"$ref": "#/definitions/dto.APIResponse"}},
                    "400": {"description": "No supported files", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/notifications": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Recent notifications",
                "parameters": [
                    {"type": "integer", "default": 20, "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Notifications", "schema": {"$ref": "#/definitions/dto.APIResponse"}}
                }
            }
        },
        "/notifications/ws": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Upgrades to a WebSocket that pushes notifications for the session. Browsers pass the token as access_token.",
                "tags": ["notifications"],
                "summary": "Notification stream",
                "parameters": [
                    {"type": "string", "name": "access_token", "in": "query"}
                ],
                "responses": {
                    "101": {"description": "Switching Protocols"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.APIResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": true},
                "data": {},
                "error": {"$ref": "#/definitions/dto.ErrorDetail"},
                "timestamp": {"type": "string", "example": "2025-04-23T12:01:05.123Z"}
            }
        },
        "dto.ErrorDetail": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "VAL_001"},
                "message": {"type": "string", "example": "Please fill in all required fields."},
                "field": {"type": "string"},
                "severity": {"type": "string", "example": "ERROR"},
                "details": {}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": false},
                "error": {"$ref": "#/definitions/dto.ErrorDetail"},
                "timestamp": {"type": "string"}
            }
        },
        "dto.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string", "example": "jane.mentor@school.edu"},
                "password": {"type": "string", "example": "secret"}
            }
        },
        "dto.CreateInterventionRequest": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "enum": ["meeting", "call", "email", "resource", "plan"]},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "outcome": {"type": "string", "enum": ["completed", "pending", "scheduled"]}
            }
        },
        "dto.InsightRequest": {
            "type": "object",
            "properties": {
                "input": {"type": "string"}
            }
        },
        "dto.SendEmailRequest": {
            "type": "object",
            "required": ["to", "subject", "body"],
            "properties": {
                "to": {"type": "string", "example": "parent@example.com"},
                "toName": {"type": "string"},
                "subject": {"type": "string"},
                "body": {"type": "string"}
            }
        },
        "dto.RiskScoreRequest": {
            "type": "object",
            "properties": {
                "attendance": {"type": "number", "example": 72},
                "averageMarks": {"type": "number", "example": 64},
                "feeStatus": {"type": "string", "enum": ["paid", "pending", "overdue"]}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT token for authorization",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "MentorAid API",
	Description:      "Student dropout risk tracking for mentors and teachers",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
