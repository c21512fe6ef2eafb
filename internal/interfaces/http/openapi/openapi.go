// Package openapi embeds the OpenAPI document of the HTTP API.
package openapi

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Document is the OpenAPI 3 description of the API in YAML
//
//go:embed openapi.yaml
var Document []byte

// Handler serves the embedded document
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Data(http.StatusOK, "application/yaml", Document)
	}
}
