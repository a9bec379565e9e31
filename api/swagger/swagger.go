package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "SGA API",
        "description": "API del Sistema de Gestión Académica",
        "version": "1.0.0"
    },
    "basePath": "/api",
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
        {"name": "Auth", "description": "Autenticación y sesión"},
        {"name": "Usuarios", "description": "Gestión de usuarios"},
        {"name": "Profesores", "description": "Gestión de profesores"},
        {"name": "Alumnos", "description": "Gestión de alumnos"},
        {"name": "Materias", "description": "Catálogo de materias"},
        {"name": "Grupos", "description": "Catálogo de grupos"},
        {"name": "Inscripciones", "description": "Inscripciones de alumnos a grupos"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Iniciar sesión",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LoginResponse"}},
                    "401": {"description": "Credenciales incorrectas", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/auth/profile": {
            "get": {
                "tags": ["Auth"],
                "summary": "Perfil del usuario autenticado",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "No autorizado", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/auth/validate": {
            "get": {
                "tags": ["Auth"],
                "summary": "Validar token de acceso",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Token inválido o expirado", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/usuarios": {
            "get": {
                "tags": ["Usuarios"],
                "summary": "Listar usuarios",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Usuario"}}},
                    "403": {"description": "Acceso denegado", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "post": {
                "tags": ["Usuarios"],
                "summary": "Crear usuario",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateUsuario"}}
                ],
                "responses": {
                    "201": {"description": "Creado", "schema": {"$ref": "#/definitions/Usuario"}},
                    "409": {"description": "Email duplicado", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/usuarios/{id}": {
            "get": {
                "tags": ["Usuarios"],
                "summary": "Obtener usuario",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Usuario"}},
                    "404": {"description": "No encontrado", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "put": {
                "tags": ["Usuarios"],
                "summary": "Actualizar usuario",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateUsuario"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Usuario"}},
                    "400": {"description": "Sin campos o datos inválidos", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["Usuarios"],
                "summary": "Eliminar usuario",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "204": {"description": "Eliminado"},
                    "404": {"description": "No encontrado", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/alumnos/export": {
            "get": {
                "tags": ["Alumnos"],
                "summary": "Exportar listado de alumnos",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "formato", "in": "query", "type": "string", "enum": ["csv", "pdf"]}],
                "responses": {
                    "200": {"description": "Archivo CSV o PDF"},
                    "400": {"description": "Formato no soportado", "schema": {"$ref": "#/definitions/ErrorResponse"}}
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
        "LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/Usuario"}
            }
        },
        "Usuario": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "nombre": {"type": "string"},
                "email": {"type": "string"},
                "rol": {"type": "string", "enum": ["admin", "profesor", "alumno"]},
                "activo": {"type": "boolean"},
                "fecha_creacion": {"type": "string", "format": "date-time"}
            }
        },
        "CreateUsuario": {
            "type": "object",
            "required": ["nombre", "email", "password", "rol"],
            "properties": {
                "nombre": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "rol": {"type": "string", "enum": ["admin", "profesor", "alumno"]}
            }
        },
        "UpdateUsuario": {
            "type": "object",
            "properties": {
                "nombre": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "activo": {"type": "boolean"}
            }
        },
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
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
