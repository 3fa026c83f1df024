package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tcadundee/hobby-finder/api/internal/cache"
)

// AssetsHandler serves the static application shell, cache first with a
// network fallback.
type AssetsHandler struct {
	manager *cache.Manager
}

// NewAssetsHandler constructs an AssetsHandler.
func NewAssetsHandler(manager *cache.Manager) *AssetsHandler {
	return &AssetsHandler{manager: manager}
}

// Serve handles GET /* requests for anything outside the API surface.
func (h *AssetsHandler) Serve(c echo.Context) error {
	req := c.Request()

	resp, err := h.manager.Serve(req.Context(), cache.Request{
		Path:     req.URL.RequestURI(),
		Document: isDocumentRequest(req),
	})
	if err != nil {
		return Error(c, http.StatusBadGateway, "asset unavailable")
	}

	return c.Blob(http.StatusOK, resp.ContentType, resp.Body)
}

// isDocumentRequest reports whether the request is a page navigation rather
// than a subresource fetch.
func isDocumentRequest(req *http.Request) bool {
	if req.Header.Get("Sec-Fetch-Dest") == "document" {
		return true
	}
	return strings.Contains(req.Header.Get("Accept"), "text/html")
}
