//go:build swag

// Package docs holds the OpenAPI document served at /api/docs under the swag build tag
// regenerate with: swag init --v3.1 -g cmd/postpilot-api/main.go -o internal/services/api/docs --instanceName api
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.1.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "components": {
        "securitySchemes": {
            "BearerAuth": {"type": "http", "scheme": "bearer"}
        },
        "schemas": {
            "httpkit.Envelope": {
                "type": "object",
                "properties": {
                    "status_code": {"type": "integer"},
                    "status": {"type": "string"},
                    "code": {"type": "string"},
                    "error": {"type": "string"},
                    "request_id": {"type": "string"},
                    "data": {}
                }
            },
            "domain.TokenInput": {
                "type": "object",
                "required": ["code", "redirect_uri"],
                "properties": {
                    "code": {"type": "string", "example": "AQTx9kz..."},
                    "redirect_uri": {"type": "string", "example": "http://localhost:5173/auth/callback"}
                }
            },
            "domain.MeOutput": {
                "type": "object",
                "properties": {
                    "id": {"type": "string", "example": "abcd123"},
                    "person_urn": {"type": ["string", "null"], "example": "urn:li:person:abcd123"},
                    "name": {"type": "string", "example": "Ada Lovelace"},
                    "email": {"type": ["string", "null"], "example": "ada@example.com"},
                    "session_id": {"type": "string"}
                }
            },
            "domain.AuthorizeURLOutput": {
                "type": "object",
                "properties": {"url": {"type": "string"}}
            },
            "workflow.State": {
                "type": "object",
                "properties": {
                    "niche": {"type": "string"},
                    "topic": {"type": "string"},
                    "post_draft": {"type": "string"},
                    "review_feedback": {"type": "string"},
                    "final_post": {"type": "string"},
                    "image_path": {"type": "string"},
                    "image_asset_urn": {"type": "string"},
                    "is_approved": {"type": "boolean"},
                    "iteration_count": {"type": "integer"},
                    "linkedin_access_token": {"type": "string", "example": "AQV...abcd"},
                    "linkedin_person_urn": {"type": "string"},
                    "published": {"type": "boolean"},
                    "post_urn": {"type": "string"},
                    "publish_message": {"type": "string"}
                }
            },
            "domain.StartOutput": {
                "type": "object",
                "properties": {
                    "status": {"type": "string", "example": "success"},
                    "message": {"type": "string", "example": "Workflow completed"},
                    "run_id": {"type": "string"},
                    "final_state": {"$ref": "#/components/schemas/workflow.State"}
                }
            },
            "domain.JobSummary": {
                "type": "object",
                "properties": {
                    "total_completed": {"type": "integer"},
                    "total_failed": {"type": "integer"}
                }
            },
            "domain.PublishInput": {
                "type": "object",
                "required": ["text"],
                "properties": {
                    "text": {"type": "string"},
                    "image_asset_urn": {"type": "string"}
                }
            },
            "linkedin.PublishResult": {
                "type": "object",
                "properties": {
                    "status": {"type": "integer", "example": 201},
                    "post_urn": {"type": "string"},
                    "message": {"type": "string", "example": "Post published successfully on LinkedIn"}
                }
            },
            "domain.UploadInput": {
                "type": "object",
                "required": ["file_path"],
                "properties": {"file_path": {"type": "string"}}
            },
            "domain.UploadOutput": {
                "type": "object",
                "properties": {"asset_urn": {"type": "string"}}
            }
        }
    },
    "paths": {
        "/auth/linkedin/token": {
            "post": {
                "tags": ["Auth"],
                "summary": "Exchange an authorization code for an access token",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.TokenInput"}}}},
                "responses": {
                    "200": {"description": "raw LinkedIn token payload"},
                    "400": {"description": "missing code or redirect_uri", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/httpkit.Envelope"}}}},
                    "502": {"description": "LinkedIn refused the exchange", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/httpkit.Envelope"}}}}
                }
            }
        },
        "/auth/linkedin/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Current LinkedIn member",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.MeOutput"}}}},
                    "401": {"description": "missing bearer token"},
                    "502": {"description": "LinkedIn refused the token"}
                }
            }
        },
        "/auth/linkedin/authorize-url": {
            "get": {
                "tags": ["Auth"],
                "summary": "LinkedIn consent url",
                "parameters": [
                    {"name": "redirect_uri", "in": "query", "required": true, "schema": {"type": "string"}},
                    {"name": "state", "in": "query", "schema": {"type": "string"}},
                    {"name": "scope", "in": "query", "schema": {"type": "string"}}
                ],
                "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.AuthorizeURLOutput"}}}}}
            }
        },
        "/auth/linkedin/session": {
            "delete": {
                "tags": ["Auth"],
                "summary": "Forget a parked session",
                "parameters": [{"name": "X-Session-ID", "in": "header", "required": true, "schema": {"type": "string"}}],
                "responses": {"204": {"description": "gone"}}
            }
        },
        "/agent/start": {
            "post": {
                "tags": ["Agent"],
                "summary": "Run the posting workflow for a niche",
                "parameters": [
                    {"name": "niche", "in": "query", "required": true, "schema": {"type": "string"}},
                    {"name": "topic", "in": "query", "schema": {"type": "string"}},
                    {"name": "image_path", "in": "query", "schema": {"type": "string"}},
                    {"name": "access-token", "in": "header", "schema": {"type": "string"}},
                    {"name": "person-urn", "in": "header", "schema": {"type": "string"}},
                    {"name": "X-Session-ID", "in": "header", "schema": {"type": "string"}}
                ],
                "responses": {
                    "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.StartOutput"}}}},
                    "400": {"description": "missing niche"},
                    "401": {"description": "missing, invalid or expired credentials"},
                    "502": {"description": "LinkedIn or the model refused a step"}
                }
            }
        },
        "/agent/summary": {
            "get": {
                "tags": ["Agent"],
                "summary": "Completed and failed run counts",
                "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.JobSummary"}}}}}
            }
        },
        "/linkedin/posts": {
            "post": {
                "tags": ["Posts"],
                "summary": "Publish a post",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.PublishInput"}}}},
                "responses": {
                    "201": {"description": "created", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/linkedin.PublishResult"}}}},
                    "401": {"description": "missing credentials"},
                    "502": {"description": "LinkedIn did not answer 201"}
                }
            }
        },
        "/linkedin/assets": {
            "post": {
                "tags": ["Posts"],
                "summary": "Upload an image from the media root",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.UploadInput"}}}},
                "responses": {
                    "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.UploadOutput"}}}},
                    "502": {"description": "unreadable file, register or upload refused"}
                }
            }
        },
        "/meta/health": {"get": {"tags": ["Meta"], "summary": "Health check", "responses": {"200": {"description": "ok"}}}},
        "/meta/ready": {"get": {"tags": ["Meta"], "summary": "Readiness probe with dependency checks", "responses": {"200": {"description": "ok"}}}},
        "/meta/version": {"get": {"tags": ["Meta"], "summary": "Build and version info", "responses": {"200": {"description": "ok"}}}},
        "/meta/service": {"get": {"tags": ["Meta"], "summary": "Service info and uptime", "responses": {"200": {"description": "ok"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Title:            "PostPilot API",
	Description:      "LinkedIn sign in, agent driven drafting and publishing",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
