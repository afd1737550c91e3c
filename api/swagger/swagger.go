package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Dream Stars Feedback API",
        "description": "Parent feedback dashboard backend",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "Authentication", "description": "Admin and parent login"},
        {"name": "Questions", "description": "Feedback form questions"},
        {"name": "Parents", "description": "Registered parents roster"},
        {"name": "Feedback", "description": "Daily feedback submissions"},
        {"name": "Analytics", "description": "Per-parent score projections"},
        {"name": "Exports", "description": "CSV and PDF report downloads"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Still loading"}
                }
            }
        },
        "/api/v1/auth/admin-login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate administrator",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AdminLoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/api/v1/auth/parent-login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate parent",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ParentLoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/api/v1/questions": {
            "get": {
                "tags": ["Questions"],
                "summary": "List active questions",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/admin/questions": {
            "get": {
                "tags": ["Questions"],
                "summary": "List all questions",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Questions"],
                "summary": "Add a question",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateQuestionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error"}
                }
            }
        },
        "/api/v1/admin/questions/{id}/toggle": {
            "patch": {
                "tags": ["Questions"],
                "summary": "Toggle a question",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Question not found"}
                }
            }
        },
        "/api/v1/admin/parents": {
            "get": {
                "tags": ["Parents"],
                "summary": "List registered parents",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Parents"],
                "summary": "Register a parent",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterParentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error"},
                    "409": {"description": "Student id already registered"}
                }
            }
        },
        "/api/v1/admin/parents/{studentId}": {
            "delete": {
                "tags": ["Parents"],
                "summary": "Delete a parent",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/api/v1/feedback": {
            "post": {
                "tags": ["Feedback"],
                "summary": "Submit feedback",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitFeedbackRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Incomplete or invalid answers"},
                    "401": {"description": "Missing or invalid token"}
                }
            }
        },
        "/api/v1/admin/feedback": {
            "get": {
                "tags": ["Feedback"],
                "summary": "List submissions",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/admin/analytics/parents/{studentId}/scores": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Parent score series",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Parent not found"}
                }
            }
        },
        "/api/v1/admin/analytics/parents/{studentId}/history": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Parent score history",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Parent not found"}
                }
            }
        },
        "/api/v1/admin/exports": {
            "post": {
                "tags": ["Exports"],
                "summary": "Generate an export",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error"}
                }
            }
        },
        "/api/v1/export/{token}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download an export",
                "produces": ["application/octet-stream"],
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File stream"},
                    "401": {"description": "Invalid or expired token"},
                    "404": {"description": "File not found"}
                }
            }
        }
    },
    "definitions": {
        "AdminLoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "ParentLoginRequest": {
            "type": "object",
            "properties": {
                "student_id": {"type": "string"},
                "phone": {"type": "string"}
            }
        },
        "CreateQuestionRequest": {
            "type": "object",
            "properties": {
                "textAm": {"type": "string"},
                "textEn": {"type": "string"}
            }
        },
        "RegisterParentRequest": {
            "type": "object",
            "properties": {
                "studentId": {"type": "string"},
                "parentName": {"type": "string"},
                "parentPhone": {"type": "string"}
            }
        },
        "SubmitFeedbackRequest": {
            "type": "object",
            "properties": {
                "answers": {
                    "type": "object",
                    "additionalProperties": {"type": "string", "enum": ["well_done", "not_done"]}
                }
            }
        },
        "ExportRequest": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "enum": ["parents", "scores"]},
                "format": {"type": "string", "enum": ["csv", "pdf"]},
                "student_id": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_pages": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
