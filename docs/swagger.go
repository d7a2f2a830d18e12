// Package docs registers the OpenAPI description served under /swagger.
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
        "/tasks": {
            "get": {"tags": ["tasks"], "summary": "List tasks", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["tasks"], "summary": "Create a task", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/tasks/view": {
            "get": {
                "tags": ["tasks"],
                "summary": "Derived task view",
                "parameters": [
                    {"type": "string", "name": "tab", "in": "query"},
                    {"type": "string", "name": "assignee", "in": "query"},
                    {"type": "string", "name": "month", "in": "query"},
                    {"type": "string", "name": "date", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/tasks/{id}": {
            "put": {"tags": ["tasks"], "summary": "Update a task", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["tasks"], "summary": "Delete a task", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/stats": {
            "get": {"tags": ["tasks"], "summary": "Task statistics", "responses": {"200": {"description": "OK"}}}
        },
        "/todos": {
            "get": {"tags": ["todos"], "summary": "List a user's todos", "parameters": [{"type": "string", "name": "user_id", "in": "query", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}},
            "post": {"tags": ["todos"], "summary": "Create a todo", "responses": {"201": {"description": "Created"}}}
        },
        "/todos/{id}": {
            "put": {"tags": ["todos"], "summary": "Update a todo", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["todos"], "summary": "Delete a todo", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}, {"type": "string", "name": "user_id", "in": "query", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/board": {
            "get": {"tags": ["board"], "summary": "List board posts", "parameters": [{"type": "string", "name": "category", "in": "query"}, {"type": "string", "name": "search", "in": "query"}, {"type": "integer", "name": "page", "in": "query"}, {"type": "integer", "name": "limit", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["board"], "summary": "Create a post", "responses": {"201": {"description": "Created"}}},
            "put": {"tags": ["board"], "summary": "Update a post", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}},
            "delete": {"tags": ["board"], "summary": "Delete a post", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/board/like/{postId}": {
            "post": {"tags": ["board"], "summary": "Toggle a like", "parameters": [{"type": "integer", "name": "postId", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/board/view/{postId}": {
            "put": {"tags": ["board"], "summary": "Count a view", "parameters": [{"type": "integer", "name": "postId", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/board/comments/{postId}": {
            "get": {"tags": ["board"], "summary": "List comments", "parameters": [{"type": "integer", "name": "postId", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["board"], "summary": "Add a comment", "parameters": [{"type": "integer", "name": "postId", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}}}
        },
        "/board/comments/{postId}/{commentId}": {
            "delete": {"tags": ["board"], "summary": "Delete a comment", "parameters": [{"type": "integer", "name": "postId", "in": "path", "required": true}, {"type": "integer", "name": "commentId", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/diary": {
            "get": {"tags": ["diary"], "summary": "Get diaries", "parameters": [{"type": "string", "name": "user_id", "in": "query", "required": true}, {"type": "string", "name": "date", "in": "query"}, {"type": "integer", "name": "limit", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["diary"], "summary": "Save a diary", "responses": {"200": {"description": "OK"}}}
        },
        "/users/session": {
            "post": {"tags": ["users"], "summary": "Record a signed-in user", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/users/{id}": {
            "get": {"tags": ["users"], "summary": "Get a user", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Taskboard API",
	Description:      "Team task dashboard, personal todos, bulletin board and daily diary.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
