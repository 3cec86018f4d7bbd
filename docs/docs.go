// Package docs registers the OpenAPI document served at /docs.
// Regenerate the full document from the handler annotations with `swag init`.
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
        "/register": {"post": {"tags": ["auth"], "summary": "Register a user", "responses": {"201": {"description": "Created"}, "409": {"description": "Username taken"}}}},
        "/login": {"post": {"tags": ["auth"], "summary": "Log in", "responses": {"200": {"description": "OK"}, "401": {"description": "Wrong credentials"}}}},
        "/profile": {"get": {"tags": ["auth"], "summary": "Current session", "responses": {"200": {"description": "OK"}}}},
        "/logout": {"post": {"tags": ["auth"], "summary": "Log out", "responses": {"200": {"description": "OK"}}}},
        "/postWrite": {"post": {"tags": ["posts"], "summary": "Write a post", "consumes": ["multipart/form-data"], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/postlist": {"get": {"tags": ["posts"], "summary": "List posts", "responses": {"200": {"description": "OK"}}}},
        "/post/{postId}": {
            "get": {"tags": ["posts"], "summary": "Get a post", "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "put": {"tags": ["posts"], "summary": "Edit a post", "responses": {"200": {"description": "OK"}, "403": {"description": "Not the author"}}},
            "delete": {"tags": ["posts"], "summary": "Delete a post", "description": "Needs the session cookie and only the author may delete. Older clients that called this route without a cookie now get 401.", "responses": {"200": {"description": "OK"}, "401": {"description": "No session"}, "403": {"description": "Not the author"}}}
        },
        "/like/{postId}": {"post": {"tags": ["posts"], "summary": "Toggle like", "responses": {"200": {"description": "OK"}, "401": {"description": "No session"}, "403": {"description": "Invalid token"}}}},
        "/comments": {"post": {"tags": ["comments"], "summary": "Create a comment", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad request"}}}},
        "/comments/{postId}": {"get": {"tags": ["comments"], "summary": "List comments of a post", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad id"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Blog API",
	Description:      "Posts, comments, likes and a realtime chat.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
