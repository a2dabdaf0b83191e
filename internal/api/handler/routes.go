package handler

import (
	"net/http"

	"github.com/vfg2006/campaign-tracker-api/internal/api/handler/router"
	"github.com/vfg2006/campaign-tracker-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Pipeline(services PipelineServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/pipeline/run",
			Method:      http.MethodPost,
			Handler:     RunPipeline(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/pipeline/status",
			Method:      http.MethodGet,
			Handler:     GetPipelineStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Report(services ReportServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/reports/latest",
			Method:      http.MethodGet,
			Handler:     GetLatestReport(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/alerts/latest",
			Method:      http.MethodGet,
			Handler:     GetLatestAlerts(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}
