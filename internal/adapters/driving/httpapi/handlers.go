package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/proxsearch/internal/adapters/driving/present"
	"github.com/custodia-labs/proxsearch/internal/core/domain"
	"github.com/custodia-labs/proxsearch/internal/core/textpos"
)

// inlineURI names documents posted without a uri.
const inlineURI = "inline:http"

// APIResponse is the envelope of every /api response.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Kind    string `json:"kind,omitempty"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// SearchRequest is the body of POST /api/search.
type SearchRequest struct {
	Text          string            `json:"text"`
	URI           string            `json:"uri"`
	Query         string            `json:"query"`
	Regex         bool              `json:"regex"`
	CaseSensitive bool              `json:"case_sensitive"`
	WholeWord     *bool             `json:"whole_word"`
	Range         int               `json:"range" binding:"min=0"`
	Mode          string            `json:"mode" binding:"omitempty,oneof=all any"`
	Selection     *domain.Selection `json:"selection"`
	Detail        bool              `json:"detail"`
}

// DocumentInfo identifies the stored snapshot a request ran against.
type DocumentInfo struct {
	ID    string `json:"id"`
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// SearchResponse is the data of a successful search.
type SearchResponse struct {
	Document DocumentInfo         `json:"document"`
	Status   string               `json:"status"`
	Report   *domain.SearchReport `json:"report"`
	Results  []ResultView         `json:"results"`
}

// ResultView is one result with its presentation.
type ResultView struct {
	present.Summary
	Lines []present.DetailLine `json:"lines,omitempty"`
}

// FindRequest is the body of POST /api/find.
type FindRequest struct {
	Text    string  `json:"text"`
	Query   string  `json:"query"`
	Replace *string `json:"replace"`
	All     bool    `json:"all"`
	// Index selects the current match, counting from 1. Zero keeps the first.
	Index   int     `json:"index" binding:"min=0"`
}

// FindResponse is the data of a successful find.
type FindResponse struct {
	Report    *domain.FindReport    `json:"report"`
	Label     string                `json:"label"`
	Positions []string              `json:"positions"`
	Replace   *domain.ReplaceResult `json:"replace,omitempty"`
}

// LinksRequest is the body of POST /api/links.
type LinksRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleSearch(c *gin.Context) {
	var req SearchRequest
	if !bind(c, &req) {
		return
	}
	ctx := c.Request.Context()

	uri := req.URI
	if uri == "" {
		uri = inlineURI
	}
	doc, err := s.ports.Document.Put(ctx, uri, req.Text)
	if err != nil {
		fail(c, statusFor(err), err.Error(), "")
		return
	}

	sreq := searchRequest(req)
	report, err := s.ports.Search.Search(ctx, doc, sreq)
	if err != nil {
		kind := domain.ClassifySearchError(err)
		fail(c, statusFor(err), present.SearchMessage(err, sreq.Options.Regex), kind.String())
		return
	}

	p := present.New(doc.Content)
	results := make([]ResultView, len(report.Results))
	for i, sum := range p.Describe(report.Results) {
		results[i] = ResultView{Summary: sum}
		if req.Detail {
			results[i].Lines = p.Detail(report.Results[i])
		}
	}

	c.JSON(http.StatusOK, APIResponse{Success: true, Data: SearchResponse{
		Document: DocumentInfo{ID: doc.ID, URI: doc.URI, Title: doc.Title},
		Status:   present.StatusLine(report),
		Report:   report,
		Results:  results,
	}})
}

// searchRequest maps the body to a domain request. Unset fields keep the
// built-in defaults.
func searchRequest(req SearchRequest) domain.SearchRequest {
	opts := domain.DefaultSearchOptions()
	opts.Regex = req.Regex
	opts.CaseSensitive = req.CaseSensitive
	if req.WholeWord != nil {
		opts.WholeWord = *req.WholeWord
	}
	opts.Range = domain.ClampRange(req.Range)
	if req.Mode != "" {
		opts.Mode = domain.MatchMode(req.Mode)
	}
	out := domain.SearchRequest{Query: req.Query, Options: opts}
	if req.Selection != nil {
		out.Selection = req.Selection
		out.Options.SelectionOnly = true
	}
	return out
}

func (s *Server) handleFind(c *gin.Context) {
	if s.ports.Find == nil {
		fail(c, http.StatusServiceUnavailable, "find is not available", "")
		return
	}
	var req FindRequest
	if !bind(c, &req) {
		return
	}
	ctx := c.Request.Context()

	report, err := s.ports.Find.FindAll(ctx, req.Text, req.Query)
	if err != nil {
		fail(c, statusFor(err), present.FindMessage(err), "")
		return
	}
	if req.Index > 0 {
		report = s.ports.Find.Navigate(report, req.Index-1)
	}

	ix := textpos.NewLineIndex(req.Text)
	resp := FindResponse{
		Report:    report,
		Label:     report.Label(),
		Positions: make([]string, len(report.Matches)),
	}
	for i, m := range report.Matches {
		resp.Positions[i] = ix.Position(m.Start).String()
	}

	if req.Replace != nil {
		var res *domain.ReplaceResult
		if req.All {
			res, err = s.ports.Find.ReplaceAll(ctx, req.Text, req.Query, *req.Replace)
		} else {
			res, err = s.ports.Find.ReplaceCurrent(ctx, req.Text, report, *req.Replace)
		}
		if err != nil {
			fail(c, statusFor(err), present.FindMessage(err), "")
			return
		}
		resp.Replace = res
	}

	c.JSON(http.StatusOK, APIResponse{Success: true, Data: resp})
}

func (s *Server) handleLinks(c *gin.Context) {
	if s.ports.Links == nil {
		fail(c, http.StatusServiceUnavailable, domain.ErrLinkCheckUnavailable.Error(), "")
		return
	}
	var req LinksRequest
	if !bind(c, &req) {
		return
	}

	report, err := s.ports.Links.Validate(c.Request.Context(), req.Text)
	if err != nil {
		fail(c, statusFor(err), err.Error(), "")
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: report})
}

// bind decodes the JSON body into dst, answering 400 or 413 on failure.
func bind(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		fail(c, http.StatusRequestEntityTooLarge, "request body too large", "")
		return false
	}
	fail(c, http.StatusBadRequest, "invalid request: "+err.Error(), "")
	return false
}

func fail(c *gin.Context, status int, msg, kind string) {
	c.AbortWithStatusJSON(status, APIResponse{Error: msg, Kind: kind})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidPattern),
		errors.Is(err, domain.ErrEmptyInput),
		errors.Is(err, domain.ErrInvalidScope),
		errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrLinkCheckUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
