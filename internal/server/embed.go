package server

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

//go:embed web
var webFS embed.FS

func setupAssets(router *gin.Engine) error {
	tmpl, err := template.ParseFS(webFS, "web/templates/*.tmpl")
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	assets, err := static.EmbedFolder(webFS, "web/assets")
	if err != nil {
		return fmt.Errorf("embed assets: %w", err)
	}
	router.Use(static.Serve("/assets", assets))

	return nil
}
