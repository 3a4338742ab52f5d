package export

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carelink/carelink/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	grp := api.Group("/exports", auth.RequireRole("patient", "provider", "family", "guest"))
	grp.POST("", h.CreateExport)
}

// CreateExport runs the export pipeline and returns the finished artifact
// inline, with its filename and MIME type. The sink is also written so a
// server-side copy exists.
func (h *Handler) CreateExport(c echo.Context) error {
	var req Request
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.SubjectID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "subject_id is required")
	}

	result, err := h.svc.Download(c.Request().Context(), req)
	if err != nil {
		return translateError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// translateError maps the export error taxonomy onto HTTP status codes.
func translateError(err error) error {
	var fetchErr *FetchError
	switch {
	case errors.Is(err, ErrUnsupportedRole),
		errors.Is(err, ErrUnsupportedFormat),
		errors.Is(err, ErrInvalidExportData),
		errors.Is(err, ErrMissingMetadata),
		errors.Is(err, ErrMissingContent):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrSessionExpired):
		return echo.NewHTTPError(http.StatusGone, err.Error())
	case errors.As(err, &fetchErr):
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
