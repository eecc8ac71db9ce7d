package questionnaire

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/surgery-types/:id/questions", h.GetQuestionnaire)
	api.POST("/questions", h.CreateQuestion)
	api.GET("/questions/:id", h.GetQuestion)
	api.PUT("/questions/:id", h.UpdateQuestion)
	api.DELETE("/questions/:id", h.DeleteQuestion)
	api.POST("/questions/:id/options", h.AddOption)
	api.GET("/questions/:id/options", h.GetOptions)
	api.PUT("/options/:id", h.UpdateOption)
	api.DELETE("/options/:id", h.RemoveOption)
}

func (h *Handler) GetQuestionnaire(c echo.Context) error {
	surgeryTypeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	questions, err := h.svc.GetQuestionnaire(c.Request().Context(), surgeryTypeID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, questions)
}

func (h *Handler) CreateQuestion(c echo.Context) error {
	var q Question
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateQuestion(c.Request().Context(), &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, q)
}

func (h *Handler) GetQuestion(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	q, err := h.svc.GetQuestion(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if q == nil {
		return echo.NewHTTPError(http.StatusNotFound, "question not found")
	}
	return c.JSON(http.StatusOK, q)
}

func (h *Handler) UpdateQuestion(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var q Question
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	q.ID = id
	if err := h.svc.UpdateQuestion(c.Request().Context(), &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, q)
}

func (h *Handler) DeleteQuestion(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteQuestion(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) AddOption(c echo.Context) error {
	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var o Option
	if err := c.Bind(&o); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	o.QuestionID = questionID
	if err := h.svc.AddOption(c.Request().Context(), &o); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, o)
}

func (h *Handler) GetOptions(c echo.Context) error {
	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	opts, err := h.svc.GetOptions(c.Request().Context(), questionID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, opts)
}

func (h *Handler) UpdateOption(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var o Option
	if err := c.Bind(&o); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	o.ID = id
	if err := h.svc.UpdateOption(c.Request().Context(), &o); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, o)
}

func (h *Handler) RemoveOption(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.RemoveOption(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
