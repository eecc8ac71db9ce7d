package surgery

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/postcare/postcare/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/surgery-types", h.CreateType)
	api.GET("/surgery-types", h.ListTypes)
	api.GET("/surgery-types/:id", h.GetType)
	api.PUT("/surgery-types/:id", h.UpdateType)
	api.DELETE("/surgery-types/:id", h.DeleteType)

	api.POST("/surgeries", h.Create)
	api.GET("/surgeries", h.List)
	api.GET("/surgeries/:id", h.Get)
	api.PUT("/surgeries/:id", h.Update)
	api.DELETE("/surgeries/:id", h.Delete)
	api.GET("/doctors/:id/surgeries", h.ListByDoctor)
	api.GET("/patients/:id/surgeries", h.ListByPatient)
}

// -- Surgery Type Handlers --

func (h *Handler) CreateType(c echo.Context) error {
	var st SurgeryType
	if err := c.Bind(&st); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateType(c.Request().Context(), &st); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, st)
}

func (h *Handler) GetType(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	st, err := h.svc.GetType(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if st == nil {
		return echo.NewHTTPError(http.StatusNotFound, "surgery type not found")
	}
	return c.JSON(http.StatusOK, st)
}

func (h *Handler) UpdateType(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var st SurgeryType
	if err := c.Bind(&st); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	st.ID = id
	if err := h.svc.UpdateType(c.Request().Context(), &st); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, st)
}

func (h *Handler) DeleteType(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteType(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListTypes(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListTypes(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

// -- Surgery Handlers --

func (h *Handler) Create(c echo.Context) error {
	var sg Surgery
	if err := c.Bind(&sg); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), &sg); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, sg)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	sg, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if sg == nil {
		return echo.NewHTTPError(http.StatusNotFound, "surgery not found")
	}
	return c.JSON(http.StatusOK, sg)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var sg Surgery
	if err := c.Bind(&sg); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	sg.ID = id
	if err := h.svc.Update(c.Request().Context(), &sg); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, sg)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) ListByDoctor(c echo.Context) error {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListByDoctor(c.Request().Context(), doctorID, pg.Limit, pg.Offset)
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
