package http

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/02loveslollipop/gfsi-dashboard/services/dashboard/views"
)

const pageTitle = "Global Food Security: Key Indicators Across Countries"

//go:embed templates/dashboard.html
var templatesFS embed.FS

var dashboardTemplate = template.Must(template.ParseFS(templatesFS, "templates/dashboard.html"))

type modeOption struct {
	Slug     string
	Label    string
	Selected bool
	Disabled bool
}

type countryOption struct {
	Name     string
	Selected bool
}

type pageData struct {
	Title       string
	Subtitle    string
	Modes       []modeOption
	ShowCountry bool
	Countries   []countryOption
	Error       string
	ChartURL    string
	ExportURL   string
	Records     int
}

// handleDashboard renders the interactive page. Selection problems are
// shown on the page rather than failing the request.
// GET /?mode=&country=
func (s *Server) handleDashboard(c *gin.Context) {
	data := pageData{Title: pageTitle, Records: s.dataset.Len()}

	mode := views.Scatter
	status := http.StatusOK
	if raw := c.Query("mode"); raw != "" {
		parsed, err := views.ParseMode(raw)
		if err != nil {
			data.Error = err.Error()
			status = http.StatusBadRequest
		} else {
			mode = parsed
		}
	}

	for _, m := range views.Modes() {
		data.Modes = append(data.Modes, modeOption{
			Slug:     m.Slug(),
			Label:    m.Label(),
			Selected: m == mode,
			Disabled: m == views.Radar && s.dataset.Empty(),
		})
	}
	data.Subtitle = views.Subtitle(mode)

	if data.Error != "" {
		c.HTML(status, "dashboard.html", data)
		return
	}

	fig, err := views.Build(s.dataset, views.Selection{Mode: mode, Country: c.Query("country")})
	if err != nil {
		_ = c.Error(err)
		data.Error = err.Error()
	}

	if mode == views.Radar {
		data.ShowCountry = true
		selected := ""
		if fig.Radar != nil {
			selected = fig.Radar.Country
		}
		for _, name := range s.dataset.Countries() {
			data.Countries = append(data.Countries, countryOption{Name: name, Selected: name == selected})
		}
	}

	if data.Error == "" {
		q := url.Values{}
		if fig.Radar != nil {
			q.Set("country", fig.Radar.Country)
		}
		exportQuery := q.Encode()

		q.Set("format", "svg")
		data.ChartURL = "/charts/" + mode.Slug() + "?" + q.Encode()

		// export lives under the API group; skip the link when it needs a token
		if s.cfg.BearerToken == "" {
			data.ExportURL = "/api/v1/export/" + mode.Slug()
			if exportQuery != "" {
				data.ExportURL += "?" + exportQuery
			}
		}
	}

	c.HTML(status, "dashboard.html", data)
}
