package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareCountsByRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/campaigns/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/campaigns/:id", "204"))
	for _, id := range []string{"1", "2"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/campaigns/"+id, nil))
	}

	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/campaigns/:id", "204"))
	assert.Equal(t, before+2, after)
}

func TestDomainCounters(t *testing.T) {
	before := testutil.ToFloat64(donationAggregations.WithLabelValues("error"))
	RecordAggregation(errors.New("boom"))
	assert.Equal(t, before+1, testutil.ToFloat64(donationAggregations.WithLabelValues("error")))

	beforeLogin := testutil.ToFloat64(logins.WithLabelValues("created"))
	RecordLogin("created")
	assert.Equal(t, beforeLogin+1, testutil.ToFloat64(logins.WithLabelValues("created")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	RecordUpload()

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "donation_platform_files_uploaded_total")
}
