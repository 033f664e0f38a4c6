package views

import (
	"net/url"
	"strconv"
	"time"

	"github.com/HammerMeetNail/quizdash/internal/services"
)

const (
	EmptyStateMessage = "No responses found. Adjust your filters or check back later."
	dashboardPath     = "/"
	exportPath        = "/api/responses/export"
)

// Query is the dashboard state carried in the URL.
type Query struct {
	Selection Selection
	Search    string
	Page      int
	PerPage   int
}

func ParseQuery(values url.Values) Query {
	page, _ := strconv.Atoi(values.Get("page"))
	perPage, _ := strconv.Atoi(values.Get("per_page"))
	return Query{
		Selection: ParseSelection(values["type"]),
		Search:    values.Get("q"),
		Page:      page,
		PerPage:   perPage,
	}
}

func (q Query) Criteria() services.Criteria {
	return services.Criteria{Categories: q.Selection.IDs(), Search: q.Search}
}

// Values encodes q, leaving out defaults.
func (q Query) Values() url.Values {
	v := url.Values{}
	for _, id := range q.Selection.IDs() {
		v.Add("type", strconv.Itoa(id))
	}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Page > 1 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage != 0 && q.PerPage != DefaultPerPage {
		v.Set("per_page", strconv.Itoa(q.PerPage))
	}
	return v
}

func (q Query) URL(path string) string {
	if enc := q.Values().Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}

// WithSelection changes the category filter and returns to the first page.
func (q Query) WithSelection(s Selection) Query {
	q.Selection = s
	q.Page = 0
	return q
}

func (q Query) WithPage(page int) Query {
	q.Page = page
	return q
}

type MultiSelectOption struct {
	ID        int
	Label     string
	Checked   bool
	ToggleURL string
}

type MultiSelect struct {
	Label      string
	AllChecked bool
	AllURL     string
	Options    []MultiSelectOption
}

func NewMultiSelect(q Query, options []Option) MultiSelect {
	ms := MultiSelect{
		Label:      q.Selection.Label(options, AllTypesLabel),
		AllChecked: q.Selection.IsAll(),
		AllURL:     q.WithSelection(q.Selection.Clear()).URL(dashboardPath),
		Options:    make([]MultiSelectOption, len(options)),
	}
	for i, o := range options {
		ms.Options[i] = MultiSelectOption{
			ID:        o.ID,
			Label:     o.Label,
			Checked:   q.Selection.Contains(o.ID),
			ToggleURL: q.WithSelection(q.Selection.Toggle(o.ID)).URL(dashboardPath),
		}
	}
	return ms
}

// PageLink is one pagination control.
type PageLink struct {
	Page   int
	URL    string
	Active bool
}

// Dashboard is the complete view model for dashboard.html.
type Dashboard struct {
	Title          string
	Total          int
	StatCards      []StatCard
	Filter         MultiSelect
	Query          Query
	Cards          []ResponseCard
	Pagination     Pagination
	PageLinks      []PageLink
	PrevURL        string
	NextURL        string
	PerPageOptions []int
	Empty          bool
	Refreshing     bool
	FetchedAt      string
	Source         string
	CurrentURL     string
	ExportURL      string
	CSRFToken      string
	CSSPath        string
	JSPath         string
}

// BuildDashboard runs the filter engine over the snapshot and lays out the page.
func BuildDashboard(snap *services.Snapshot, q Query, refreshing bool) Dashboard {
	if snap == nil {
		snap = &services.Snapshot{}
	}
	summary := services.Summarize(snap.Responses, q.Criteria())

	pg := Paginate(summary.Total, q.Page, q.PerPage)
	q.Page = pg.Page
	q.PerPage = pg.PerPage
	lo, hi := pg.Bounds()

	d := Dashboard{
		Title:          "Quiz Responses",
		Total:          summary.Total,
		StatCards:      StatCards(summary),
		Filter:         NewMultiSelect(q, CategoryOptions()),
		Query:          q,
		Cards:          NewResponseCards(summary.Responses[lo:hi]),
		Pagination:     pg,
		PrevURL:        q.WithPage(pg.PrevPage()).URL(dashboardPath),
		NextURL:        q.WithPage(pg.NextPage()).URL(dashboardPath),
		PerPageOptions: PerPageOptions,
		Empty:          summary.Total == 0,
		Refreshing:     refreshing,
		Source:         snap.Source,
		CurrentURL:     q.URL(dashboardPath),
		ExportURL:      q.WithPage(0).URL(exportPath),
	}
	if !snap.FetchedAt.IsZero() {
		d.FetchedAt = snap.FetchedAt.UTC().Format(time.RFC3339)
	}
	for _, p := range pg.Pages() {
		d.PageLinks = append(d.PageLinks, PageLink{
			Page:   p,
			URL:    q.WithPage(p).URL(dashboardPath),
			Active: p == pg.Page,
		})
	}
	return d
}
