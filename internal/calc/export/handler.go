package export

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"Flexure/internal/calc/deflection"
)

type Handler struct{}

func (h *Handler) XLSX(w http.ResponseWriter, r *http.Request) {
	var input deflection.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := deflection.Calculate(input)
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"deflection.xlsx\"")
	if err := WriteXLSX(w, res); err != nil {
		logrus.WithError(err).Error("xlsx export failed")
		http.Error(w, "Export error", http.StatusInternalServerError)
		return
	}
}
