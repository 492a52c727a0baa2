package batch

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Flexure/internal/calc/deflection"
)

func TestCalculate(t *testing.T) {
	steel := deflection.Params{E: 200e9, I: 0.001, W: 5e3, L: 6}
	out, err := Calculate(Input{Items: []deflection.Input{
		{Params: steel},
		{Params: steel, NumPoints: 10, Policy: deflection.PolicyAdditive},
	}})
	require.NoError(t, err)
	require.Len(t, out.Results, 2)
	assert.Len(t, out.Results[0].Samples, 101)
	assert.Equal(t, deflection.PolicyAdditive, out.Results[1].Policy)
}

func TestCalculateErrors(t *testing.T) {
	_, err := Calculate(Input{})
	assert.Equal(t, ErrNoItems, err)

	_, err = Calculate(Input{Items: []deflection.Input{
		{Params: deflection.Params{E: 200e9, I: 0.001, W: 5e3, L: 6}},
		{Params: deflection.Params{E: 200e9, I: 0, W: 5e3, L: 6}},
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item 1")
	assert.Equal(t, deflection.ErrInvalidInput, errors.Cause(err))
}

func TestHandler(t *testing.T) {
	h := &Handler{}
	rec := httptest.NewRecorder()
	body := `{"items":[{"e_pa":200e9,"i_m4":0.001,"udl_n_m":5000,"span_m":6}]}`
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/batch", strings.NewReader(body)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"results"`)

	rec = httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/batch", strings.NewReader(`{"items":[]}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
