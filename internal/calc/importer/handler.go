package importer

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

const MaxUploadSize = 10 << 20 // 10MB

type Handler struct{}

type Response struct {
	Count int   `json:"count"`
	Rows  []Row `json:"rows"`
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := ReadWorkbook(file)
	if err != nil {
		logrus.WithError(err).Debug("workbook import rejected")
		http.Error(w, "Invalid file: "+err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(Response{Count: len(rows), Rows: rows}); err != nil {
		logrus.WithError(err).Error("encode import response")
	}
}
