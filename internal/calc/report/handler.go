package report

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"Flexure/internal/calc/deflection"
)

type Input struct {
	Meta
	deflection.Input
}

type Handler struct{}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := deflection.Calculate(input.Input)
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"report.pdf\"")
	if err := Write(w, input.Meta, res); err != nil {
		logrus.WithError(err).Error("report generation failed")
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}
