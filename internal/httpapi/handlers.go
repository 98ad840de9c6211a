package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/jwulff/summit/internal/catalog"
	"github.com/jwulff/summit/internal/source"
)

type handlers struct {
	src        *source.Loaded
	lang       catalog.Language
	searchDate bool
}

type sessionsResponse struct {
	Snapshot string            `json:"snapshot"`
	Count    int               `json:"count"`
	Sessions []catalog.Session `json:"sessions"`
	Domains  catalog.Domains   `json:"domains"`
}

type facetsResponse struct {
	Snapshot string          `json:"snapshot"`
	Language string          `json:"language"`
	Domains  catalog.Domains `json:"domains"`
}

// selectorParams maps query parameters onto selector fields.
var selectorParams = []struct {
	param string
	field catalog.Field
}{
	{"track", catalog.FieldTrack},
	{"date", catalog.FieldDate},
	{"hour", catalog.FieldHour},
	{"type", catalog.FieldType},
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	respondOK(w, r, map[string]any{
		"snapshot": h.src.Snapshot,
		"rows":     h.src.Catalog.Len(),
	})
}

func (h *handlers) sessions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lang, err := h.language(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err)
		return
	}

	crit := catalog.Unset()
	crit.Query = q.Get("q")
	crit.SearchDate = h.searchDate
	if raw := q.Get("include_date"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(w, r, http.StatusBadRequest, fmt.Errorf("include_date: invalid boolean %q", raw))
			return
		}
		crit.SearchDate = b
	}
	for _, p := range selectorParams {
		if v := q.Get(p.param); v != "" {
			crit = crit.WithSelector(p.field, v)
		}
	}

	res, err := h.src.Catalog.Query(lang, crit)
	if err != nil {
		respondError(w, r, statusOf(err), err)
		return
	}
	respondOK(w, r, sessionsResponse{
		Snapshot: h.src.Snapshot,
		Count:    res.Count,
		Sessions: res.Sessions,
		Domains:  res.Domains,
	})
}

func (h *handlers) facets(w http.ResponseWriter, r *http.Request) {
	lang, err := h.language(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err)
		return
	}
	d, err := h.src.Catalog.Domains(lang)
	if err != nil {
		respondError(w, r, statusOf(err), err)
		return
	}
	respondOK(w, r, facetsResponse{Snapshot: h.src.Snapshot, Language: string(lang), Domains: d})
}

func (h *handlers) language(r *http.Request) (catalog.Language, error) {
	raw := r.URL.Query().Get("lang")
	if raw == "" {
		return h.lang, nil
	}
	return catalog.ParseLanguage(raw)
}

func statusOf(err error) int {
	var se *catalog.SchemaError
	if errors.As(err, &se) {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}
