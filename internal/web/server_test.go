package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/variantlab/variantview/internal/store"
	"github.com/variantlab/variantview/internal/vcf"
)

func newTestHandler(t *testing.T) (http.Handler, *store.Store) {
	t.Helper()
	s, err := store.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return NewServer(s).Handler(), s
}

func seedViewer(t *testing.T, s *store.Store) {
	t.Helper()
	require.NoError(t, s.InsertInput(store.Input{
		PatientID:     1,
		VariantNumber: 1,
		Record:        vcf.Record{Chrom: "17", Pos: 45983420, ID: ".", Ref: "G", Alt: "T"},
	}))
	require.NoError(t, s.InsertInput(store.Input{
		PatientID:     1,
		VariantNumber: 2,
		Record:        vcf.Record{Chrom: "12", Pos: 40340400, ID: "rs34637584", Ref: "G", Alt: "A"},
	}))
	require.NoError(t, s.UpsertOutput(store.Output{
		PatientID:            1,
		VariantNumber:        1,
		HGVS:                 "NC_000017.11:g.45983420G>T",
		ClinVarID:            "98243",
		ClinicalSignificance: "Pathogenic",
		StarRating:           "1",
		ReviewStatus:         "criteria provided, single submitter",
		ConditionsAssoc:      "Frontotemporal dementia",
	}))
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func postForm(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIndexPage(t *testing.T) {
	h, s := newTestHandler(t)
	seedViewer(t, s)

	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "45983420")
	assert.Contains(t, body, "Pathogenic")
	assert.Contains(t, body, "Frontotemporal dementia")
	assert.Contains(t, body, "not enriched yet")
}

func TestIndexPageEmpty(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No variants loaded.")
}

func TestInputsPage(t *testing.T) {
	h, s := newTestHandler(t)
	seedViewer(t, s)

	rec := get(t, h, "/inputs")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "rs34637584")
}

func TestAddVariantForm(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := get(t, h, "/add")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="patient_id"`)
}

func TestAddVariantSubmit(t *testing.T) {
	h, s := newTestHandler(t)

	form := url.Values{
		"patient_id":     {"4"},
		"variant_number": {"1"},
		"chrom":          {"6"},
		"pos":            {"161785820"},
		"id":             {""},
		"ref":            {"T"},
		"alt":            {"C"},
	}
	rec := postForm(t, h, "/add", form)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	inputs, err := s.ListInputs()
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	assert.Equal(t, 4, inputs[0].PatientID)
	assert.Equal(t, ".", inputs[0].Record.ID)
}

func TestAddVariantDuplicate(t *testing.T) {
	h, _ := newTestHandler(t)

	form := url.Values{
		"patient_id":     {"4"},
		"variant_number": {"1"},
		"chrom":          {"6"},
		"pos":            {"161785820"},
		"ref":            {"T"},
		"alt":            {"C"},
	}
	require.Equal(t, http.StatusSeeOther, postForm(t, h, "/add", form).Code)

	rec := postForm(t, h, "/add", form)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already exists")
}

func TestAddVariantRejectsBadInput(t *testing.T) {
	h, _ := newTestHandler(t)

	form := url.Values{
		"patient_id":     {"zero"},
		"variant_number": {"1"},
		"chrom":          {"6"},
		"pos":            {"161785820"},
		"ref":            {"T"},
		"alt":            {"C"},
	}
	rec := postForm(t, h, "/add", form)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "patient_id")
}

func TestHealthz(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := get(t, h, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
