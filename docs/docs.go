// Package docs holds the generated OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/server/main.go
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
        "/api/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login with username/password or RFID tag",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/api/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new user account",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/api/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Logout and revoke the current token",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/user/profile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Get the authenticated user's profile",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "List users",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Create a user",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/api/users/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Get a user by id",
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Update a user",
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Delete a user",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/items": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["items"],
                "summary": "List items",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["items"],
                "summary": "Create an item",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/api/items/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["items"],
                "summary": "Get an item by id",
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["items"],
                "summary": "Update an item",
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["items"],
                "summary": "Delete an item",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/lockers": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["lockers"],
                "summary": "List lockers",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["lockers"],
                "summary": "Create a locker",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/api/lockers/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["lockers"],
                "summary": "Get a locker by id",
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["lockers"],
                "summary": "Update a locker",
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["lockers"],
                "summary": "Delete a locker",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/lockers/{id}/open": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["lockers"],
                "summary": "Open a locker",
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/api/lockers/{id}/close": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["lockers"],
                "summary": "Close a locker",
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/api/borrows": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["borrows"],
                "summary": "List borrows",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["borrows"],
                "summary": "Borrow an item into a locker",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/api/borrows/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["borrows"],
                "summary": "Get a borrow by id",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/borrows/{id}/return": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["borrows"],
                "summary": "Return a borrowed item",
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/api/reservations": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["reservations"],
                "summary": "List reservations",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["reservations"],
                "summary": "Create a reservation",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/api/reservations/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["reservations"],
                "summary": "Get a reservation by id",
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["reservations"],
                "summary": "Update a reservation",
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["reservations"],
                "summary": "Delete a reservation",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/payments": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["payments"],
                "summary": "List payments",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["payments"],
                "summary": "Create a payment",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/api/payments/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["payments"],
                "summary": "Get a payment by id",
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["payments"],
                "summary": "Update a payment",
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["payments"],
                "summary": "Delete a payment",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/logs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "List activity log entries",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/admin/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Dashboard statistics",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/admin/active-borrows": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Active borrows with user, item, and locker details",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/admin/recent-activity": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Recent activity feed",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/admin/export/{kind}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Export a dataset as CSV",
                "produces": ["text/csv"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/health/ready": {
            "get": {
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Service Unavailable"}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Locker System API",
	Description:      "Smart locker management: authentication, inventory, borrow/return transactions, and admin dashboards.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
