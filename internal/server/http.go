package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) HandleSolve(c echo.Context) error {
	var dto PositionDTO
	if err := c.Bind(&dto); err != nil {
		return err
	}
	view, err := s.solve(&dto)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, view)
}

func (s *Server) HandleAnalyze(c echo.Context) error {
	var dto PositionDTO
	if err := c.Bind(&dto); err != nil {
		return err
	}
	p, results, elapsed, err := s.analyze(c.Request().Context(), &dto)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, BuildAnalysisView(p, results, elapsed))
}

func httpError(err error) error {
	code := errorCode(err)
	status := http.StatusBadRequest
	switch code {
	case "too_large":
		status = http.StatusRequestEntityTooLarge
	case "internal":
		status = http.StatusInternalServerError
	case "cancelled":
		status = http.StatusServiceUnavailable
	}
	return echo.NewHTTPError(status, ErrorView{Code: code, Message: err.Error()})
}
