// Package docs registers the OpenAPI document served by gin-swagger.
// Regenerate with: swag init -g cmd/server/main.go -o docs
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
        "/auth/register": {
            "post": {
                "tags": ["Auth"], "summary": "Register a credential", "operationId": "register",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CredentialsRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/services.Session"}},
                    "400": {"description": "Bad request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Email already registered", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"], "summary": "Sign in", "operationId": "login",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CredentialsRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.Session"}},
                    "401": {"description": "Wrong password", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Unknown email", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/surveys": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["Surveys"], "summary": "List surveys (paginated)", "operationId": "listSurveys",
                "parameters": [
                    {"type": "integer", "default": 1, "minimum": 1, "name": "page", "in": "query"},
                    {"type": "integer", "default": 20, "maximum": 100, "minimum": 1, "name": "page_size", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "304": {"description": "Not Modified"}}
            },
            "post": {
                "security": [{"BearerAuth": []}], "tags": ["Surveys"], "summary": "Create a survey", "operationId": "createSurvey",
                "parameters": [
                    {"type": "string", "name": "Idempotency-Key", "in": "header"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.SurveyRequest"}}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}
            }
        },
        "/surveys/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Surveys"], "summary": "Survey detail", "operationId": "getSurvey",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Survey not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["Surveys"], "summary": "Rename a survey", "operationId": "updateSurvey",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.SurveyRequest"}}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Survey not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Surveys"], "summary": "Delete a survey", "operationId": "deleteSurvey",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}}
        },
        "/surveys/{id}/respondents": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Surveys"], "summary": "Respondents of a survey", "operationId": "listSurveyRespondents",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Surveys"], "summary": "Assign a respondent to a survey", "operationId": "assignRespondent",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.AssignRespondentRequest"}}],
                "responses": {"200": {"description": "Already assigned"}, "201": {"description": "Assigned"}}}
        },
        "/surveys/{id}/questions": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Surveys"], "summary": "Questions of a survey", "operationId": "listSurveyQuestions",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Surveys"], "summary": "Attach a question to a survey", "operationId": "assignQuestion",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.AssignQuestionRequest"}}],
                "responses": {"200": {"description": "Already attached"}, "201": {"description": "Attached"}}}
        },
        "/surveys/{id}/links": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Surveys"], "summary": "Link rows of a survey", "operationId": "listSurveyLinks",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Survey not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}}
        },
        "/surveys/{id}/responses": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Responses"], "summary": "Record a batch of answers", "operationId": "submitResponses",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.SubmitResponsesRequest"}}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/surveys/{id}/questions/{questionId}/responses": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Responses"], "summary": "Answers to a question", "operationId": "listQuestionResponses",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "name": "questionId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/surveys/{id}/questions/{questionId}/responses/{respondentId}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Responses"], "summary": "One answer", "operationId": "getResponse",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "name": "questionId", "in": "path", "required": true},
                    {"type": "integer", "name": "respondentId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Survey or answer not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["Responses"], "summary": "Record an answer", "operationId": "submitResponse",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "name": "questionId", "in": "path", "required": true},
                    {"type": "integer", "name": "respondentId", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.SubmitResponseRequest"}}],
                "responses": {"200": {"description": "Updated or skipped"}, "201": {"description": "Created"}}}
        },
        "/respondents": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Respondents"], "summary": "List respondents (paginated)", "operationId": "listRespondents", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Respondents"], "summary": "Create a respondent", "operationId": "createRespondent",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.RespondentRequest"}}],
                "responses": {"201": {"description": "Created"}}}
        },
        "/respondents/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Respondents"], "summary": "Get a respondent", "operationId": "getRespondent",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["Respondents"], "summary": "Update a respondent", "operationId": "updateRespondent",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.RespondentRequest"}}],
                "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Respondents"], "summary": "Delete a respondent", "operationId": "deleteRespondent",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/questions": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Questions"], "summary": "List questions (paginated)", "operationId": "listQuestions", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Questions"], "summary": "Create a question", "operationId": "createQuestion",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.QuestionRequest"}}],
                "responses": {"201": {"description": "Created"}}}
        },
        "/questions/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Questions"], "summary": "Get a question", "operationId": "getQuestion",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["Questions"], "summary": "Update a question", "operationId": "updateQuestion",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.QuestionRequest"}}],
                "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Questions"], "summary": "Delete a question", "operationId": "deleteQuestion",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        }
    },
    "definitions": {
        "handlers.ErrorResponse": {"type": "object", "properties": {"request_id": {"type": "string"}, "code": {"type": "string"}, "message": {"type": "string"}}},
        "handlers.CredentialsRequest": {"type": "object", "required": ["email", "password"], "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "handlers.SurveyRequest": {"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}}},
        "handlers.RespondentRequest": {"type": "object", "required": ["full_name", "email"], "properties": {"full_name": {"type": "string"}, "email": {"type": "string"}}},
        "handlers.QuestionRequest": {"type": "object", "required": ["text"], "properties": {"text": {"type": "string"}}},
        "handlers.AssignRespondentRequest": {"type": "object", "required": ["respondent_id"], "properties": {"respondent_id": {"type": "integer"}}},
        "handlers.AssignQuestionRequest": {"type": "object", "required": ["question_id"], "properties": {"question_id": {"type": "integer"}}},
        "handlers.SubmitResponseRequest": {"type": "object", "required": ["response"], "properties": {"response": {"type": "string"}}},
        "handlers.SubmitResponsesRequest": {"type": "object", "required": ["respondent_id", "answers"], "properties": {"respondent_id": {"type": "integer"}, "answers": {"type": "object", "additionalProperties": {"type": "string"}}}},
        "services.Session": {"type": "object", "properties": {"email": {"type": "string"}, "token": {"type": "string"}, "expires_at": {"type": "string"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Survey Manager API",
	Description:      "Surveys, respondents, questions, their assignments and free-text responses.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
