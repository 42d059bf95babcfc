package handler

import (
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/uta-tic/tutoring-api/internal/service"
)

func registeredRoutes(t *testing.T, h Handlers) []string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, h, service.NewAuthService(nil, nil, nil, nil, nil, service.AuthConfig{}))

	paths := make([]string, 0, len(r.Routes()))
	for _, route := range r.Routes() {
		paths = append(paths, route.Path)
	}
	return paths
}

func TestRegisterRoutesSkipsReportsWhenDisabled(t *testing.T) {
	paths := registeredRoutes(t, Handlers{})
	for _, path := range paths {
		assert.False(t, strings.HasPrefix(path, "/api/v1/reports"), "unexpected route %s", path)
	}
}

func TestRegisterRoutesMountsReportsWhenEnabled(t *testing.T) {
	paths := registeredRoutes(t, Handlers{Reports: NewReportHandler(nil)})
	assert.Contains(t, paths, "/api/v1/reports")
	assert.Contains(t, paths, "/api/v1/reports/download")
}
