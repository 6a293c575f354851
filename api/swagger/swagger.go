package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "HR Desk Review API",
        "description": "Employee table editor and document page review service",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Operator login and identity"},
        {"name": "Employees", "description": "Snapshot, pending edits and commit"},
        {"name": "Review", "description": "Per-page document review"},
        {"name": "Analytics", "description": "Salary reporting"}
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
                    "503": {"description": "Store unreachable"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate operator",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current operator",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/employees": {
            "get": {
                "tags": ["Employees"],
                "summary": "Current employee snapshot",
                "parameters": [
                    {"name": "refresh", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Store unavailable"}
                }
            }
        },
        "/employees/edits": {
            "get": {
                "tags": ["Employees"],
                "summary": "List pending edits",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Employees"],
                "summary": "Record pending cell edits",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BatchEditRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload"}
                }
            },
            "delete": {
                "tags": ["Employees"],
                "summary": "Discard pending edits",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/employees/commit": {
            "post": {
                "tags": ["Employees"],
                "summary": "Commit pending edits",
                "responses": {
                    "200": {"description": "Applied", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Rolled back"},
                    "503": {"description": "Store unavailable"}
                }
            }
        },
        "/employees/export.csv": {
            "get": {
                "tags": ["Employees"],
                "summary": "Download the snapshot as CSV",
                "produces": ["text/csv"],
                "responses": {
                    "200": {"description": "CSV file"}
                }
            }
        },
        "/employees/export.pdf": {
            "get": {
                "tags": ["Employees"],
                "summary": "Download the snapshot as a PDF report",
                "produces": ["application/pdf"],
                "responses": {
                    "200": {"description": "PDF file"}
                }
            }
        },
        "/pages": {
            "get": {
                "tags": ["Review"],
                "summary": "List pages with review status and text",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/pages/{page}": {
            "get": {
                "tags": ["Review"],
                "summary": "Get a page",
                "parameters": [
                    {"name": "page", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown page"}
                }
            }
        },
        "/pages/{page}/approve": {
            "post": {
                "tags": ["Review"],
                "summary": "Approve a page",
                "parameters": [
                    {"name": "page", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Approved", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown page"},
                    "409": {"description": "Already approved"}
                }
            }
        },
        "/pages/{page}/text": {
            "put": {
                "tags": ["Review"],
                "summary": "Save page text",
                "parameters": [
                    {"name": "page", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveTextRequest"}}
                ],
                "responses": {
                    "200": {"description": "Saved", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown page"}
                }
            }
        },
        "/analytics/salary-summary": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Salary summary by designation",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Store unavailable"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["username", "password"]
        },
        "EditItem": {
            "type": "object",
            "properties": {
                "empId": {"type": "integer"},
                "field": {"type": "string", "enum": ["salary", "designation", "changed_by", "reason"]},
                "value": {"type": "object"}
            },
            "required": ["empId", "field"]
        },
        "BatchEditRequest": {
            "type": "object",
            "properties": {
                "edits": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/EditItem"}
                }
            },
            "required": ["edits"]
        },
        "SaveTextRequest": {
            "type": "object",
            "properties": {
                "text": {"type": "string"}
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
