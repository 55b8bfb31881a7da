// Package docs регистрирует swagger-описание API профиля для /docs.
//
// Описание совпадает с аннотациями обработчиков; после их изменения файл
// пересобирается командой
//
//	swag init -g cmd/profile-api/main.go -o internal/http/docs
//
// /health и /metrics висят вне /api/v1 и в описание не попадают.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Вход пользователя",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/login.Request"}}
                ],
                "responses": {
                    "200": {"description": "code 0, data: token, role, username", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "code 1001", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "code 1003", "schema": {"$ref": "#/definitions/response.Response"}},
                    "422": {"description": "code 1002", "schema": {"$ref": "#/definitions/response.Response"}},
                    "500": {"description": "code 1004", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Регистрация пользователя",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/register.Request"}}
                ],
                "responses": {
                    "200": {"description": "code 0, data: id, username", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "code 1001", "schema": {"$ref": "#/definitions/response.Response"}},
                    "422": {"description": "code 1002", "schema": {"$ref": "#/definitions/response.Response"}},
                    "500": {"description": "code 1004", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/user/info": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["User"],
                "summary": "Профиль текущего пользователя",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "code 0, data: UserInfo", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "code 1003", "schema": {"$ref": "#/definitions/response.Response"}},
                    "500": {"description": "code 1004", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/user/password": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Текущий токен остаётся действительным.",
                "tags": ["User"],
                "summary": "Смена пароля",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.PasswordChange"}}
                ],
                "responses": {
                    "200": {"description": "code 0", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "code 1001", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "code 1003", "schema": {"$ref": "#/definitions/response.Response"}},
                    "422": {"description": "code 1002 или 1006", "schema": {"$ref": "#/definitions/response.Response"}},
                    "500": {"description": "code 1004", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/user/notice": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Принимает профиль целиком, сохраняет только поля уведомлений.",
                "tags": ["User"],
                "summary": "Настройки уведомлений",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.UserInfo"}}
                ],
                "responses": {
                    "200": {"description": "code 0, data: UserInfo", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "code 1001", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "code 1003", "schema": {"$ref": "#/definitions/response.Response"}},
                    "422": {"description": "code 1002", "schema": {"$ref": "#/definitions/response.Response"}},
                    "500": {"description": "code 1004", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        }
    },
    "definitions": {
        "login.Request": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string"},
                "username": {"type": "string", "maxLength": 50, "minLength": 3}
            }
        },
        "register.Request": {
            "type": "object",
            "required": ["email", "password", "username"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 8},
                "username": {"type": "string", "maxLength": 50, "minLength": 3}
            }
        },
        "models.PasswordChange": {
            "type": "object",
            "required": ["password", "re_password"],
            "properties": {
                "password": {"type": "string", "minLength": 8},
                "re_password": {"type": "string", "minLength": 8}
            }
        },
        "models.UserInfo": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "service_expire_at": {"type": "string"},
                "enable_tg_bot": {"type": "boolean"},
                "tg_id": {"type": "string", "pattern": "^[0-9]*$"},
                "when_service_almost_expired": {"type": "boolean"},
                "when_purchased": {"type": "boolean"},
                "when_balance_changed": {"type": "boolean"}
            }
        },
        "response.Response": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "msg": {"type": "string"},
                "data": {}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo содержит общие поля описания.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Profile Settings API",
	Description:      "Настройки профиля: уведомления, привязка Telegram, смена пароля.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
