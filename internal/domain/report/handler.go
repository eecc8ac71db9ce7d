package report

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/postcare/postcare/internal/domain/questionnaire"
	"github.com/postcare/postcare/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/surgeries/:id/reports", h.Submit)
	api.GET("/surgeries/:id/reports", h.ListBySurgery)
	api.GET("/patients/:id/reports", h.ListByPatient)
	api.GET("/reports/:id", h.Get)
	api.GET("/surgeries/:id/alerts", h.ListAlerts)
	api.POST("/alerts/:id/resolve", h.ResolveAlert)
}

type submitRequest struct {
	Answers questionnaire.AnswerSet `json:"answers"`
}

type validationResponse struct {
	Message string   `json:"message"`
	Missing []string `json:"missing"`
}

func (h *Handler) Submit(c echo.Context) error {
	surgeryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	r, err := h.svc.Submit(c.Request().Context(), surgeryID, req.Answers)
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, validationResponse{
				Message: "missing required answers",
				Missing: ve.Missing,
			})
		}
		if errors.Is(err, ErrDuplicateReport) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if r == nil {
		return echo.NewHTTPError(http.StatusNotFound, "surgery not found")
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	r, err := h.svc.GetReport(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if r == nil {
		return echo.NewHTTPError(http.StatusNotFound, "report not found")
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) ListBySurgery(c echo.Context) error {
	surgeryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListBySurgery(c.Request().Context(), surgeryID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) ListByPatient(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListByPatient(c.Request().Context(), patientID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) ListAlerts(c echo.Context) error {
	surgeryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	unresolvedOnly := c.QueryParam("unresolved") == "true"
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListAlerts(c.Request().Context(), surgeryID, unresolvedOnly, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) ResolveAlert(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.ResolveAlert(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, a)
}
