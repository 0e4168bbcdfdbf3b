// Package docs holds the swagger document served under /swagger.
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
        "/screenings": {
            "post": {
                "description": "Fetches market data for every symbol, scores and ranks it and asks the AI provider for a recommendation",
                "produces": ["application/json", "text/html"],
                "tags": ["screenings"],
                "summary": "Run a screening",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Set to html to receive only the rendered fragment",
                        "name": "format",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ScreeningResult"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ScreeningErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ScreeningErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/dto.ScreeningErrorResponse"}}
                }
            }
        },
        "/rules/reload": {
            "post": {
                "description": "Reads the chat rules file again",
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Reload chat rules",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ChatRules"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.ChatRules": {
            "type": "object",
            "properties": {
                "general_rules": {"type": "array", "items": {"type": "string"}},
                "identity_response": {
                    "type": "object",
                    "properties": {
                        "identity_keywords": {"type": "array", "items": {"type": "string"}},
                        "response": {"type": "string"}
                    }
                },
                "speaking_style": {
                    "type": "object",
                    "properties": {
                        "description": {"type": "string"},
                        "examples": {"type": "array", "items": {"type": "string"}}
                    }
                }
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "dto.Recommendation": {
            "type": "object",
            "properties": {
                "source": {"type": "string", "enum": ["ai", "fallback"]},
                "text": {"type": "string"}
            }
        },
        "dto.ScreeningErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "progress": {"type": "array", "items": {"type": "string"}},
                "run_id": {"type": "string"}
            }
        },
        "dto.ScreeningResult": {
            "type": "object",
            "properties": {
                "finished_at": {"type": "string"},
                "html": {"type": "string"},
                "progress": {"type": "array", "items": {"type": "string"}},
                "recommendation": {"$ref": "#/definitions/dto.Recommendation"},
                "run_id": {"type": "string"},
                "shortlist": {"type": "array", "items": {"$ref": "#/definitions/entity.ScoredSnapshot"}},
                "started_at": {"type": "string"},
                "total_retrieved": {"type": "integer"},
                "total_symbols": {"type": "integer"},
                "used_fallback_shortlist": {"type": "boolean"}
            }
        },
        "entity.ScoredSnapshot": {
            "type": "object",
            "properties": {
                "symbol": {"type": "string"},
                "price": {"type": "number"},
                "change_percent": {"type": "number"},
                "score": {"type": "integer"},
                "volume_ratio": {"type": "number"},
                "signals": {"type": "array", "items": {"type": "string"}},
                "bandar_type": {"type": "string"},
                "category": {"type": "string"},
                "risk_level": {"type": "string"},
                "sentiment": {"type": "string"},
                "entry_price": {"type": "number"},
                "early_entry_price": {"type": "number"},
                "stop_loss": {"type": "number"},
                "price_targets": {"type": "array", "items": {"type": "number"}},
                "risk_reward_ratio": {"type": "number"},
                "exit_signal": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Bandar Screener API",
	Description:      "Bandarmology stock screening with AI recommendations.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
