package handler

import (
	"net/url"
	"strconv"

	"github.com/nakkarenukadevi/mbbs-ui/internal/form"
	"github.com/nakkarenukadevi/mbbs-ui/internal/labels"
	"github.com/nakkarenukadevi/mbbs-ui/internal/models"
	"github.com/nakkarenukadevi/mbbs-ui/internal/pagination"
	"github.com/nakkarenukadevi/mbbs-ui/internal/viewer"
)

// Messages shown by the result viewer
const (
	MsgFetchFailed = "Failed to fetch data"
	MsgNoData      = "No data found."
)

// ResultsPath is where the result viewer is served
const ResultsPath = "/filteredData"

type flagField struct {
	Name  string
	Label string
	Value string
}

type formView struct {
	Title       string
	Form        *form.State
	Categories  []string
	FlagOptions []string
	Flags       []flagField
	Message     string
}

func newFormView(s *form.State, message string) formView {
	return formView{
		Title:       "Find your seat",
		Form:        s,
		Categories:  models.CategoryOptions,
		FlagOptions: models.FlagOptions,
		Flags: []flagField{
			{Name: "muslimMinority", Label: "Muslim Minority", Value: s.MuslimMinority},
			{Name: "angloIndian", Label: "Anglo Indian", Value: s.AngloIndian},
			{Name: "pmc", Label: "PMC", Value: s.PMC},
			{Name: "ews", Label: "EWS", Value: s.EWS},
		},
		Message: message,
	}
}

type pageLink struct {
	Label    string
	Href     string
	Active   bool
	Ellipsis bool
}

type tableRow struct {
	Number int
	Cells  []string
}

type resultsView struct {
	Title     string
	Status    string
	Message   string
	Headers   []string
	Rows      []tableRow
	PageSize  int
	PageSizes []int
	Pages     []pageLink
	RetryHref string
}

func newResultsView(st viewer.State, formatter *labels.Formatter) resultsView {
	view := resultsView{
		Title:     "Results",
		Status:    st.Status.String(),
		PageSize:  st.Query.PageSize,
		PageSizes: models.PageSizeOptions,
		RetryHref: resultsHref(st.Query),
	}

	switch st.Status {
	case viewer.StatusError:
		view.Message = MsgFetchFailed
	case viewer.StatusEmpty:
		view.Message = MsgNoData
	case viewer.StatusReady:
		columns := st.Page.Columns()
		view.Headers = formatter.FormatAll(columns)
		view.Rows = make([]tableRow, len(st.Page.Rows))
		for i, rec := range st.Page.Rows {
			cells := make([]string, len(columns))
			for j, col := range columns {
				cells[j] = rec.Text(col)
			}
			view.Rows[i] = tableRow{Number: st.Query.RowNumber(i), Cells: cells}
		}
	}

	for _, item := range pagination.Window(st.Query.PageNumber, st.TotalPages()) {
		link := pageLink{Label: item.Label(), Active: item.Active, Ellipsis: item.Ellipsis}
		if item.Clickable() {
			link.Href = resultsHref(models.PageQuery{PageNumber: item.Page, PageSize: st.Query.PageSize})
		}
		view.Pages = append(view.Pages, link)
	}
	return view
}

func resultsHref(q models.PageQuery) string {
	v := url.Values{}
	v.Set("pageNumber", strconv.Itoa(q.PageNumber))
	v.Set("pageSize", strconv.Itoa(q.PageSize))
	return ResultsPath + "?" + v.Encode()
}
