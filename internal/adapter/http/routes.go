package http

import "github.com/labstack/echo/v4"

// Register mounts every route. guard wraps POST /donate and may be nil.
func Register(e *echo.Echo, h *Handler, donations *DonationHandler, reports *ReportHandler, guard echo.MiddlewareFunc) {
	e.GET("/health", h.Health)

	e.GET("/donate", donations.ShowForm)
	if guard != nil {
		e.POST("/donate", donations.Submit, guard)
	} else {
		e.POST("/donate", donations.Submit)
	}

	e.GET("/report", reports.Show)
}
