// Package docs registers the toastd OpenAPI document with swag. Keep it in
// sync with the handler annotations in internal/httpapi.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "toastd maintainers"
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
        "/toast": {
            "get": {
                "description": "Returns the most recent toast text, or an empty list if none was captured or it expired.",
                "produces": ["application/json"],
                "tags": ["toast"],
                "summary": "Current toast text",
                "parameters": [
                    {
                        "type": "boolean",
                        "description": "Fail with 409 when the listener is not started",
                        "name": "strict",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ToastResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/toast/start": {
            "post": {
                "produces": ["application/json"],
                "tags": ["toast"],
                "summary": "Start the toast listener",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StatusResponse"}}
                }
            }
        },
        "/toast/stop": {
            "post": {
                "produces": ["application/json"],
                "tags": ["toast"],
                "summary": "Stop the toast listener",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StatusResponse"}}
                }
            }
        },
        "/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["status"],
                "summary": "Listener state and counters",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StatusResponse"}}
                }
            }
        },
        "/events": {
            "post": {
                "description": "Hands one event to the observer slot, as the platform would.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Ingest an accessibility event",
                "parameters": [
                    {
                        "description": "Event",
                        "name": "event",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/types.AccessibilityEvent"}
                    }
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/types.EventAck"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/events/ws": {
            "get": {
                "description": "Websocket. Each text frame is one types.AccessibilityEvent; each is answered with a types.EventAck frame.",
                "tags": ["events"],
                "summary": "Stream accessibility events",
                "responses": {}
            }
        }
    },
    "definitions": {
        "types.AccessibilityEvent": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "type": {"type": "string", "example": "notification_state_changed"},
                "text": {"type": "array", "items": {"type": "string"}},
                "package_name": {"type": "string"},
                "class_name": {"type": "string"},
                "time_unix_ms": {"type": "integer"}
            }
        },
        "types.EventAck": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "delivered": {"type": "boolean"},
                "error": {"type": "string"}
            }
        },
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "code": {"type": "integer"}
            }
        },
        "types.StatusResponse": {
            "type": "object",
            "properties": {
                "listening": {"type": "boolean"},
                "expiry_ms": {"type": "integer"},
                "events_dispatched": {"type": "integer"},
                "events_undelivered": {"type": "integer"},
                "toasts_captured": {"type": "integer"},
                "toasts_expired": {"type": "integer"},
                "last_capture_unix_ms": {"type": "integer"},
                "uptime_seconds": {"type": "integer"},
                "server_time_unix": {"type": "integer"}
            }
        },
        "types.ToastResponse": {
            "type": "object",
            "properties": {
                "listening": {"type": "boolean"},
                "messages": {"type": "array", "items": {"type": "string"}}
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
	Title:            "toastd API",
	Description:      "Captures toast notification text from accessibility events for UI test harnesses.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
