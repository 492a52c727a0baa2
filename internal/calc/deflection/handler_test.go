package deflection

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerCalc(t *testing.T) {
	h := &Handler{}

	body := `{"e_pa":200e9,"i_m4":0.001,"udl_n_m":5000,"span_m":6,"num_points":50}`
	rec := httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/calc", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var res Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Len(t, res.Samples, 51)
	assert.InDelta(t, 4.21875e-4, res.Stats.Midspan, 1e-12)
	assert.Equal(t, PolicyIndex, res.Policy)
}

func TestHandlerCalcRejects(t *testing.T) {
	h := &Handler{}
	for name, body := range map[string]string{
		"malformed":             `{"e_pa":`,
		"zero span":             `{"e_pa":200e9,"i_m4":0.001,"udl_n_m":5000,"span_m":0}`,
		"bad policy":            `{"e_pa":200e9,"i_m4":0.001,"udl_n_m":5000,"span_m":6,"policy":"x"}`,
		"underflowing rigidity": `{"e_pa":1e-300,"i_m4":1e-300,"udl_n_m":5000,"span_m":6}`,
	} {
		rec := httptest.NewRecorder()
		h.Calc(rec, httptest.NewRequest(http.MethodPost, "/calc", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
		assert.NotEmpty(t, rec.Body.String(), name)
	}
}

func TestHandlerCalcReportsClosedForm(t *testing.T) {
	rec := httptest.NewRecorder()
	body := `{"e_pa":200e9,"i_m4":0.001,"udl_n_m":5000,"span_m":6}`
	(&Handler{}).Calc(rec, httptest.NewRequest(http.MethodPost, "/calc", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var res Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.InDelta(t, 4.21875e-4, res.Check.ClosedFormM, 1e-12)
}
