package common_test

import (
	"net/http"
	"testing"

	"github.com/paypost/go-paypost/internal/api"
	"github.com/paypost/go-paypost/internal/config"
	"github.com/paypost/go-paypost/internal/test"
	"github.com/stretchr/testify/assert"
)

func TestGetVersion(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, _ *test.Mocks) {
		res := test.PerformRequest(t, s, "GET", "/-/version", nil, nil)
		assert.Equal(t, http.StatusOK, res.Result().StatusCode)
		assert.Equal(t, config.GetFormattedBuildArgs(), res.Body.String())
	})
}
