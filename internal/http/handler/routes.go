package handler

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/momentohq/doc-sharing-app/internal/cache"
	"github.com/momentohq/doc-sharing-app/internal/model"
	"github.com/momentohq/doc-sharing-app/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin; all flow logic lives in the services.
func RegisterRoutes(app *fiber.App, cacheClient cache.Client, tokenSvc service.TokenService, docSvc service.DocumentService) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck(cacheClient))
	app.Get("/healthz", LivenessProbe())

	app.Post("/api/users", CreateUser())
	app.Get("/api/tokens", GetToken(tokenSvc))

	app.Get("/api/documents", ListDocuments(docSvc))
	app.Post("/api/documents", UploadDocument(docSvc))
	app.Delete("/api/documents/:name", DeleteDocument(docSvc))
	app.Post("/api/documents/:name/shares", CreateShare(docSvc))

	// Shared view: the path recipients land on when following a share link.
	app.Get("/documents/:name", GetSharedDocument(docSvc))
}

// documentName returns the :name route param decoded exactly once. Fiber hands
// the raw path segment through without percent-decoding, and the stored cache
// keys use the decoded form.
func documentName(c *fiber.Ctx) string {
	raw := c.Params("name")
	name, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return name
}

// HealthCheck verifies cache connectivity.
func HealthCheck(cacheClient cache.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := cacheClient.Ping(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a simple liveness probe.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// CreateUser mints a fresh identity for a browser to persist. There is no
// server-side registry; the id matters only as the caller's key namespace.
func CreateUser() fiber.Handler {
	type request struct {
		Username string `json:"username"`
	}
	return func(c *fiber.Ctx) error {
		var req request
		if err := c.BodyParser(&req); err != nil || req.Username == "" {
			return writeError(c, fiber.StatusBadRequest, "USERNAME_REQUIRED", "You must include a \"username\" value in the body")
		}
		user := model.User{ID: uuid.NewString(), Username: req.Username}
		return c.Status(fiber.StatusCreated).JSON(user)
	}
}

// GetToken returns the broad-scope token for a user, minting one if needed.
func GetToken(tokenSvc service.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Query("user")
		if userID == "" {
			return writeError(c, fiber.StatusBadRequest, "USER_REQUIRED", "You must include a \"user\" query parameter")
		}
		token, err := tokenSvc.UserToken(c.UserContext(), userID)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
		}
		return c.JSON(token)
	}
}

// CreateShare mints a disposable read-only token for one document and builds
// the link a recipient follows.
func CreateShare(docSvc service.DocumentService) fiber.Handler {
	type request struct {
		TTL    int    `json:"ttl"`
		UserID string `json:"userId"`
	}
	return func(c *fiber.Ctx) error {
		var req request
		if err := c.BodyParser(&req); err != nil || req.TTL == 0 || req.UserID == "" {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "You must include \"ttl\" and \"userId\" values in the body")
		}

		share, err := docSvc.ShareLink(c.UserContext(), req.UserID, documentName(c), req.TTL)
		if err != nil {
			if errors.Is(err, service.ErrInvalidTTL) {
				return writeError(c, fiber.StatusBadRequest, "INVALID_TTL", "\"ttl\" must be a positive number of minutes")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
		}
		return c.JSON(share)
	}
}

// ListDocuments returns the user's documents, pruning expired names as a side effect.
func ListDocuments(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Query("user")
		if userID == "" {
			return writeError(c, fiber.StatusBadRequest, "USER_REQUIRED", "You must include a \"user\" query parameter")
		}
		res, err := docSvc.List(c.UserContext(), userID)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
		}
		return c.JSON(res)
	}
}

// UploadDocument stores a file (multipart/form-data: file, name, ttl, userId).
func UploadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		userID := c.FormValue("userId")
		if userID == "" {
			return writeError(c, fiber.StatusBadRequest, "USER_REQUIRED", "userId is required")
		}
		name := c.FormValue("name")
		if name == "" {
			name = fh.Filename
		}
		ttlMinutes, err := strconv.Atoi(c.FormValue("ttl"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_TTL", "ttl must be a number of minutes")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()
		content, err := io.ReadAll(f)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_READ_ERROR", "cannot read uploaded file")
		}

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		doc, err := docSvc.Upload(c.UserContext(), userID, name, ct, content, time.Duration(ttlMinutes)*time.Minute)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrContentTooLarge):
				return writeError(c, fiber.StatusBadRequest, "CONTENT_TOO_LARGE", "File size should be less than 1MB")
			case errors.Is(err, service.ErrRetentionTooLong):
				return writeError(c, fiber.StatusBadRequest, "RETENTION_TOO_LONG", "Retention minutes cannot be greater than 1440 (24 hours)")
			case errors.Is(err, service.ErrInvalidTTL):
				return writeError(c, fiber.StatusBadRequest, "INVALID_TTL", "ttl must be a positive number of minutes")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
			}
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// DeleteDocument removes a document and its index entry.
func DeleteDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Query("user")
		if userID == "" {
			return writeError(c, fiber.StatusBadRequest, "USER_REQUIRED", "You must include a \"user\" query parameter")
		}
		if err := docSvc.Delete(c.UserContext(), userID, documentName(c)); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GetSharedDocument serves the shared-view flow. Any failure (expired token,
// wrong scope, missing document) renders the same unauthorized response.
func GetSharedDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := docSvc.SharedDocument(c.UserContext(), c.Query("token"), c.Query("userId"), documentName(c))
		if err != nil {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "You aren't allowed to view this document")
		}
		return c.JSON(doc)
	}
}
