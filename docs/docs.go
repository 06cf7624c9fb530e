// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with `swag init -g cmd/main.go`.
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
        "/vehicles": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["vehicles"], "summary": "Create vehicle",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/http.VehicleRequest"}}],
                "responses": {"201": {"description": "Vehicle created"}, "400": {"description": "Invalid request"}, "401": {"description": "Unauthorized"}}}
        },
        "/vehicles/my": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["vehicles"], "summary": "List my vehicles",
                "responses": {"200": {"description": "OK"}}}
        },
        "/vehicles/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["vehicles"], "summary": "Get vehicle",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Vehicle not found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["vehicles"], "summary": "Delete vehicle",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Vehicle not found"}}}
        },
        "/vehicles/{id}/mileage": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["vehicles"], "summary": "Correct mileage",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid request"}}}
        },
        "/vehicles/{id}/components": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["components"], "summary": "List vehicle components",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}, {"type": "string", "in": "query", "name": "vehicle_type"}],
                "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["components"], "summary": "Attach component to vehicle",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}
        },
        "/vehicles/{id}/components/{instance_id}/alias": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["components"], "summary": "Rename vehicle component",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}, {"type": "string", "in": "path", "name": "instance_id", "required": true}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/vehicles/{id}/maintenance": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["maintenance"], "summary": "Maintenance history",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}, {"type": "integer", "in": "query", "name": "limit"}, {"type": "string", "in": "query", "name": "order"}],
                "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["maintenance"], "summary": "Record maintenance",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Invalid request"}}}
        },
        "/vehicles/{id}/maintenance/{event_id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["maintenance"], "summary": "Get maintenance event",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}, {"type": "string", "in": "path", "name": "event_id", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Event not found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["maintenance"], "summary": "Update maintenance",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}, {"type": "string", "in": "path", "name": "event_id", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid request"}}}
        },
        "/components": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["components"], "summary": "List component catalog",
                "parameters": [{"type": "string", "in": "query", "name": "vehicle_type", "required": true}],
                "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["components"], "summary": "Create custom component",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Invalid request"}}}
        },
        "/components/{id}/maintenance-types": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["maintenance-types"], "summary": "List maintenance types for a component",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}, {"type": "boolean", "in": "query", "name": "mapped"}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/maintenance-types": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["maintenance-types"], "summary": "Create custom maintenance type",
                "responses": {"201": {"description": "Created"}}}
        },
        "/maintenance-types/{id}/components/{component_id}": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["maintenance-types"], "summary": "Link maintenance type to component",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}, {"type": "string", "in": "path", "name": "component_id", "required": true}],
                "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["maintenance-types"], "summary": "Unlink maintenance type from component",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}, {"type": "string", "in": "path", "name": "component_id", "required": true}],
                "responses": {"200": {"description": "OK"}}}
        }
    },
    "definitions": {
        "http.VehicleRequest": {
            "type": "object",
            "required": ["brand", "model", "type"],
            "properties": {
                "brand": {"type": "string", "example": "BMW"},
                "model": {"type": "string", "example": "R 1250 GS"},
                "year": {"type": "integer", "example": 2021},
                "type": {"type": "string", "example": "motorcycle"},
                "current_km": {"type": "integer", "example": 12500},
                "vin": {"type": "string"},
                "first_registration": {"type": "string", "example": "2021-04-15"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8082",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Garage Maintenance API",
	Description:      "Vehicles, component catalog, maintenance history and interval tracking",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
