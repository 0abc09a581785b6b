package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/02loveslollipop/gfsi-dashboard/services/dashboard/config"
	"github.com/02loveslollipop/gfsi-dashboard/services/dashboard/gfsi"
)

var testColumns = []string{
	"Rank", "Country",
	"Overall_Score_2019", "Affordability_2019", "Availability_2019", "Quality_and_Safety_2019",
	"Overall_Score_2022", "Affordability_2022", "Availability_2022", "Quality_and_Safety_2022",
}

func testDataset(t *testing.T, rows ...[]string) *gfsi.Dataset {
	t.Helper()
	ds, err := gfsi.NewDataset(gfsi.Frame{Name: "test", Columns: testColumns, Rows: rows})
	require.NoError(t, err)
	return ds
}

func defaultDataset(t *testing.T) *gfsi.Dataset {
	return testDataset(t,
		[]string{"1", "Testland", "55", "50", "60", "70", "65", "62", "68", "71"},
		[]string{"2", "Otherland", "45", "40", "50", "60", "48", "41", "52", "63"},
	)
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.ChartWidth = 4
	cfg.ChartHeight = 3
	cfg.RenderRate = 0
	return cfg
}

func newTestServer(t *testing.T, cfg config.Config, ds *gfsi.Dataset) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return New(cfg, ds, nil, nil)
}

func do(s *Server, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	s.Engine().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, testConfig(), defaultDataset(t))

	rec := do(s, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 2, body["records"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDIsEchoed(t *testing.T) {
	s := newTestServer(t, testConfig(), defaultDataset(t))

	rec := do(s, http.MethodGet, "/healthz", http.Header{"X-Request-Id": {"abc-123"}})
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestV1Countries(t *testing.T) {
	s := newTestServer(t, testConfig(), defaultDataset(t))

	rec := do(s, http.MethodGet, "/api/v1/core/countries", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "v1", rec.Header().Get("X-API-Version"))

	body := decode(t, rec)
	assert.Equal(t, []interface{}{"Testland", "Otherland"}, body["data"])
	assert.EqualValues(t, 2, body["meta"].(map[string]interface{})["count"])
}

func TestV1Records(t *testing.T) {
	s := newTestServer(t, testConfig(), defaultDataset(t))

	rec := do(s, http.MethodGet, "/api/v1/core/records", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	data := body["data"].([]interface{})
	require.Len(t, data, 2)
	first := data[0].(map[string]interface{})
	assert.Equal(t, "Testland", first["country"])
	assert.EqualValues(t, 55, first["overall_score_2019"])
	assert.EqualValues(t, 65, first["overall_score_2022"])

	meta := body["meta"].(map[string]interface{})
	assert.NotEmpty(t, meta["version"])
	assert.Contains(t, meta["columns"], "Overall_Score_2019")
}

func TestV1Views(t *testing.T) {
	s := newTestServer(t, testConfig(), defaultDataset(t))

	t.Run("radar", func(t *testing.T) {
		rec := do(s, http.MethodGet, "/api/v1/views/radar?country=Otherland", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		fig := decode(t, rec)["data"].(map[string]interface{})
		assert.Equal(t, "radar", fig["mode"])
		radar := fig["radar"].(map[string]interface{})
		assert.Equal(t, "Otherland", radar["country"])
		assert.Equal(t, []interface{}{0.0, 100.0}, radar["radial_range"])
	})

	t.Run("unknown mode", func(t *testing.T) {
		rec := do(s, http.MethodGet, "/api/v1/views/pie", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown country", func(t *testing.T) {
		rec := do(s, http.MethodGet, "/api/v1/views/radar?country=Narnia", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, decode(t, rec)["error"], "Narnia")
	})
}

func TestV1ViewsEmptyDataset(t *testing.T) {
	s := newTestServer(t, testConfig(), testDataset(t))

	rec := do(s, http.MethodGet, "/api/v1/views/radar", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "no data")

	rec = do(s, http.MethodGet, "/api/v1/views/scatter", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["data"].(map[string]interface{})["no_data"])
}

func TestCharts(t *testing.T) {
	s := newTestServer(t, testConfig(), defaultDataset(t))

	rec := do(s, http.MethodGet, "/charts/bar", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	rec = do(s, http.MethodGet, "/api/v1/charts/radar?country=Testland&format=svg", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))

	rec = do(s, http.MethodGet, "/charts/bar?format=gif", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExport(t *testing.T) {
	s := newTestServer(t, testConfig(), defaultDataset(t))

	rec := do(s, http.MethodGet, "/api/v1/export/scatter", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "gfsi-scatter.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Scatter Plot")
}

func TestBearerGuardsAPIOnly(t *testing.T) {
	cfg := testConfig()
	cfg.BearerToken = "secret"
	s := newTestServer(t, cfg, defaultDataset(t))

	rec := do(s, http.MethodGet, "/api/v1/core/countries", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(s, http.MethodGet, "/api/v1/core/countries", http.Header{"Authorization": {"Bearer wrong"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(s, http.MethodGet, "/api/v1/core/countries", http.Header{"Authorization": {"Bearer secret"}})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(s, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Download as Excel")
}

func TestRenderRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RenderRate = 0.001
	cfg.RenderBurst = 1
	s := newTestServer(t, cfg, defaultDataset(t))

	rec := do(s, http.MethodGet, "/charts/scatter?format=svg", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(s, http.MethodGet, "/api/v1/charts/scatter?format=svg", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// data endpoints are not limited
	rec = do(s, http.MethodGet, "/api/v1/views/scatter", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDashboardPage(t *testing.T) {
	s := newTestServer(t, testConfig(), defaultDataset(t))

	t.Run("default scatter", func(t *testing.T) {
		rec := do(s, http.MethodGet, "/", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()

		assert.Contains(t, body, "Global Food Security: Key Indicators Across Countries")
		assert.Contains(t, body, "Scatter Plot")
		assert.Contains(t, body, "Bar Chart")
		assert.Contains(t, body, "Radar Chart")
		assert.Contains(t, body, "Scatter Plot: Comparison of Overall Scores (2019 vs 2022)")
		assert.NotContains(t, body, "<select")
		assert.Contains(t, body, "/charts/scatter?format=svg")
	})

	t.Run("radar shows country selector", func(t *testing.T) {
		rec := do(s, http.MethodGet, "/?mode=radar", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()

		assert.Contains(t, body, "<select")
		assert.Contains(t, body, `<option value="Testland" selected>`)
		assert.Contains(t, body, `<option value="Otherland">`)
		assert.Contains(t, body, "/charts/radar?country=Testland")
	})

	t.Run("unknown country is shown, not fatal", func(t *testing.T) {
		rec := do(s, http.MethodGet, "/?mode=radar&country=Narnia", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `class="error"`)
		assert.NotContains(t, rec.Body.String(), "<img")
	})

	t.Run("unknown mode", func(t *testing.T) {
		rec := do(s, http.MethodGet, "/?mode=pie", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "unknown visualization")
	})
}

func TestDashboardEmptyDataset(t *testing.T) {
	s := newTestServer(t, testConfig(), testDataset(t))

	rec := do(s, http.MethodGet, "/?mode=radar", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, "Radar Chart: no data")
	assert.Contains(t, body, `value="radar" onchange="this.form.submit()" checked disabled`)
}
