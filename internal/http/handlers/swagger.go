package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// docsPage is a self-contained Swagger UI shell for the OpenAPI document
// served at /docs/openapi.yaml. Assets come from the unpkg CDN, which the
// security headers whitelist for /docs only.
const docsPage = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width,initial-scale=1" />
    <title>EduHub API Reference</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
    <style>
      body { margin: 0; background: #ffffff; }
      #api-docs { max-width: 1100px; margin: 0 auto; padding-bottom: 2rem; }
    </style>
  </head>
  <body>
    <div id="api-docs"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      SwaggerUIBundle({
        url: "/docs/openapi.yaml",
        dom_id: "#api-docs",
        deepLinking: true,
        displayRequestDuration: true,
        docExpansion: "list",
        presets: [SwaggerUIBundle.presets.apis],
        layout: "BaseLayout"
      });
    </script>
  </body>
</html>`

func SwaggerUI(ctx *gin.Context) {
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(docsPage))
}
