package httpapi

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"translator-backend/internal/store"
	"translator-backend/internal/translation"
)

const (
	// diagnosticTimeout bounds the /test connectivity probes.
	diagnosticTimeout = 5 * time.Second
	// maxDiagnosticCollections caps collection names listed by /test.
	maxDiagnosticCollections = 10
	// maxDiagnosticErrorChars caps error text surfaced by /test.
	maxDiagnosticErrorChars = 50
)

type translateRequest struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Target string `json:"target"`
}

type translateResponse struct {
	Translated string `json:"translated"`
}

type themeResponse struct {
	ID string `json:"id"`
	store.Theme
}

func (s *Server) handleRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Translator Backend Running",
	})
}

func (s *Server) handleTranslate(c echo.Context) error {
	var req translateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Text) == "" {
		return badRequest(c, "Text cannot be empty")
	}
	if strings.TrimSpace(req.Target) == "" {
		return badRequest(c, "Target language is required")
	}

	result, err := s.provider.Translate(c.Request().Context(), translation.Request{
		Text:   req.Text,
		Source: req.Source,
		Target: req.Target,
	})
	if err != nil {
		message := translation.DetailOf(err)
		switch translation.KindOf(err) {
		case translation.KindInvalidInput:
			return badRequest(c, message)
		case translation.KindGatewayTimeout:
			s.logger.Error().Err(err).Str("provider", s.provider.Name()).Msg("translation provider timed out")
			return detail(c, http.StatusGatewayTimeout, message)
		case translation.KindBadGateway:
			s.logger.Error().Err(err).Str("provider", s.provider.Name()).Msg("translation provider failed")
			return detail(c, http.StatusBadGateway, message)
		default:
			s.logger.Error().Err(err).Str("provider", s.provider.Name()).Msg("translation request failed")
			return internalError(c, message)
		}
	}

	return c.JSON(http.StatusOK, translateResponse{Translated: result.Translated})
}

func (s *Server) handleListThemes(c echo.Context) error {
	if s.store == nil {
		return internalError(c, "Database not available")
	}

	limit := int64(store.DefaultListLimit)
	if raw := strings.TrimSpace(c.QueryParam("limit")); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return badRequest(c, "limit must be an integer")
		}
		if parsed > 0 {
			limit = parsed
		}
	}

	items, err := s.store.ListThemes(c.Request().Context(), limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("list themes failed")
		return internalError(c, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]any{
		"items": items,
	})
}

func (s *Server) handleCreateTheme(c echo.Context) error {
	if s.store == nil {
		return internalError(c, "Database not available")
	}

	var theme store.Theme
	if err := c.Bind(&theme); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(theme.Name) == "" {
		return badRequest(c, "Name is required")
	}
	theme.ApplyDefaults()

	id, err := s.store.InsertTheme(c.Request().Context(), theme)
	if err != nil {
		s.logger.Error().Err(err).Msg("create theme failed")
		return internalError(c, err.Error())
	}

	return c.JSON(http.StatusOK, themeResponse{ID: id, Theme: theme})
}

// handleTest reports backend liveness, document-store reachability and
// whether the storage environment variables are set. It never fails.
func (s *Server) handleTest(c echo.Context) error {
	resp := map[string]any{
		"backend":           "running",
		"database":          "not available",
		"database_url":      envStatus("DATABASE_URL"),
		"database_name":     envStatus("DATABASE_NAME"),
		"connection_status": "not connected",
		"collections":       []string{},
	}

	if s.store == nil {
		return c.JSON(http.StatusOK, resp)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), diagnosticTimeout)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		resp["database"] = "error: " + truncateChars(err.Error(), maxDiagnosticErrorChars)
		return c.JSON(http.StatusOK, resp)
	}
	resp["database"] = "connected"
	resp["connection_status"] = "connected"

	names, err := s.store.CollectionNames(ctx)
	if err != nil {
		resp["database"] = "connected but error: " + truncateChars(err.Error(), maxDiagnosticErrorChars)
		return c.JSON(http.StatusOK, resp)
	}
	if len(names) > maxDiagnosticCollections {
		names = names[:maxDiagnosticCollections]
	}
	if names == nil {
		names = []string{}
	}
	resp["collections"] = names

	return c.JSON(http.StatusOK, resp)
}

func envStatus(name string) string {
	if strings.TrimSpace(os.Getenv(name)) != "" {
		return "set"
	}
	return "not set"
}

func truncateChars(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
