package common

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/paypost/go-paypost/internal/api"
	"github.com/paypost/go-paypost/internal/util"
)

func GetHealthyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/healthy", getHealthyHandler(s))
}

// Liveness check including the database and the chain node.
// Use /-/ready for a check that only covers in-process state.
func getHealthyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.Ready() {
			return c.String(521, "Not ready.")
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), s.Config.Management.LivenessTimeout)
		defer cancel()

		log := util.LogFromContext(ctx)

		if err := s.DB.PingContext(ctx); err != nil {
			log.Error().Err(err).Msg("Database is unreachable")
			return c.String(http.StatusServiceUnavailable, "Database unreachable.")
		}

		if err := s.Chain.Ping(ctx); err != nil {
			log.Error().Err(err).Msg("Chain node is unreachable")
			return c.String(http.StatusServiceUnavailable, "Chain node unreachable.")
		}

		return c.String(http.StatusOK, "Healthy.")
	}
}
