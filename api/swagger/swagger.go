package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "UTA TIC Tutoring API",
        "description": "Role-based academic tutoring platform",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Login, role selection and session management"},
        {"name": "Users", "description": "Account registry"},
        {"name": "Careers", "description": "Academic program registry"},
        {"name": "Semesters", "description": "Term label registry"},
        {"name": "Subjects", "description": "Curriculum subjects and approval workflow"},
        {"name": "Assignments", "description": "Teacher to subject roster"},
        {"name": "Tutoring", "description": "Session request lifecycle and chat"},
        {"name": "Notifications", "description": "Per-user notifications and broadcasts"},
        {"name": "Documents", "description": "Career document registry"},
        {"name": "Periods", "description": "Academic calendar windows"},
        {"name": "Reports", "description": "Asynchronous CSV and PDF exports"},
        {"name": "Stats", "description": "Derived aggregate metrics"},
        {"name": "Imports", "description": "Bulk account and curriculum loads"}
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
                    "200": {"description": "Ready"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Token, or role options for multi-role accounts", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/select-role": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Select the active role",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SelectRoleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "No role selection is pending"}
                }
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register a student account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate national id or email"}
                }
            }
        },
        "/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List users",
                "parameters": [
                    {"name": "role", "in": "query", "type": "string"},
                    {"name": "career", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Users"],
                "summary": "Create a user account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tutoring": {
            "get": {
                "tags": ["Tutoring"],
                "summary": "List every tutoring request",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Tutoring"],
                "summary": "Request a tutoring session",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTutoringRequestPayload"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/stats/users": {
            "get": {
                "tags": ["Stats"],
                "summary": "User population metrics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/stats/teachers": {
            "get": {
                "tags": ["Stats"],
                "summary": "Teacher rating leaderboard",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "SelectRoleRequest": {
            "type": "object",
            "required": ["user_id", "role"],
            "properties": {
                "user_id": {"type": "string"},
                "role": {"type": "string", "enum": ["admin", "coordinator", "teacher", "student"]}
            }
        },
        "RegisterStudentRequest": {
            "type": "object",
            "required": ["national_id", "first_name", "last_name", "email", "password", "career", "semester"],
            "properties": {
                "national_id": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "career": {"type": "string"},
                "semester": {"type": "string"},
                "phone": {"type": "string"}
            }
        },
        "CreateUserRequest": {
            "type": "object",
            "required": ["national_id", "first_name", "last_name", "email", "roles"],
            "properties": {
                "national_id": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "roles": {"type": "array", "items": {"type": "string"}},
                "career": {"type": "string"},
                "semester": {"type": "string"},
                "phone": {"type": "string"}
            }
        },
        "CreateTutoringRequestPayload": {
            "type": "object",
            "required": ["teacher_id", "topic", "date", "time"],
            "properties": {
                "teacher_id": {"type": "string"},
                "subject_id": {"type": "string"},
                "semester_id": {"type": "string"},
                "topic": {"type": "string"},
                "description": {"type": "string"},
                "date": {"type": "string"},
                "time": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
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
