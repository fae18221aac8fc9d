package rest

import (
	"net/http"
	"strings"

	"github.com/gorilla/schema"

	"docuflow/internal/engine"
)

// facetParamPrefix marks query parameters that select a facet bucket, e.g.
// facet.status=draft or facet.quantity=mid.
const facetParamPrefix = "facet."

var queryDecoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

type listQuery struct {
	Search      string `schema:"search"`
	SearchField string `schema:"searchField"`
	SortField   string `schema:"sort"`
	SortDir     string `schema:"dir"`
	Page        int    `schema:"page"`
	PageSize    int    `schema:"pageSize"`
}

// parseListRequest decodes the list-view query string. Facet selections use
// the facet.<name>=<bucket> convention and are collected separately because
// the set of facet names is configuration driven.
func parseListRequest(r *http.Request) (engine.ListRequest, error) {
	var q listQuery
	if err := queryDecoder.Decode(&q, r.URL.Query()); err != nil {
		return engine.ListRequest{}, err
	}

	req := engine.ListRequest{
		Search:      q.Search,
		SearchField: q.SearchField,
		SortField:   q.SortField,
		SortDir:     q.SortDir,
		Page:        q.Page,
		PageSize:    q.PageSize,
	}

	for name, values := range r.URL.Query() {
		if !strings.HasPrefix(name, facetParamPrefix) || len(values) == 0 {
			continue
		}
		if req.Facets == nil {
			req.Facets = make(map[string]string)
		}
		req.Facets[strings.TrimPrefix(name, facetParamPrefix)] = values[0]
	}

	return req, nil
}
