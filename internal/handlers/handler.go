package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/csg33k/attrition-form/internal/domain"
	"github.com/csg33k/attrition-form/internal/normalize"
	"github.com/csg33k/attrition-form/internal/ports"
	"github.com/csg33k/attrition-form/internal/templates"
)

type Handler struct {
	norm         ports.FormNormalizer
	client       ports.PredictionClient
	repo         ports.PredictionRepository
	report       ports.ReportGenerator
	historyLimit int
}

func New(norm ports.FormNormalizer, client ports.PredictionClient, repo ports.PredictionRepository, report ports.ReportGenerator, historyLimit int) *Handler {
	return &Handler{norm: norm, client: client, repo: repo, report: report, historyLimit: historyLimit}
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.index)
	mux.HandleFunc("POST /assess", h.assess)
	mux.HandleFunc("POST /api/normalize", h.normalizeJSON)
	mux.HandleFunc("GET /history", h.history)
	mux.HandleFunc("GET /history/{id}/pdf", h.historyPDF)
	mux.HandleFunc("DELETE /history/{id}", h.deleteHistory)
	mux.HandleFunc("GET /health", h.health)
	return mux
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.ListPredictions(r.Context(), h.historyLimit)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	render(w, r, http.StatusOK, templates.Index(h.norm.Fields(), list))
}

// assess handles the form submission: normalize, then one exchange with the
// prediction endpoint. Validation messages are returned together with 422
// and also raised as a single newline-joined alert via HX-Trigger.
func (h *Handler) assess(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	res := h.norm.Normalize(rawInput(r.PostForm))
	if !res.OK() {
		trigger, _ := json.Marshal(map[string]string{"validationFailed": normalize.Messages(res.Errors)})
		w.Header().Set("HX-Trigger", string(trigger))
		render(w, r, http.StatusUnprocessableEntity, templates.Errors(res.Errors))
		return
	}

	pred, err := h.client.Predict(r.Context(), res.Record)
	if err != nil {
		status := http.StatusInternalServerError
		if domain.IsTransmission(err) {
			status = http.StatusBadGateway
		}
		slog.Error("prediction request failed", "err", err, "status", status)
		render(w, r, status, templates.TransmissionFailed())
		return
	}

	rec := &domain.PredictionRecord{
		Record:      res.Record,
		Leave:       pred.Leave,
		Probability: pred.Probability,
	}
	if pred.Probability != nil {
		rec.Confidence = domain.ConfidenceLevel(*pred.Probability)
	}
	// The outcome is shown even when it cannot be stored.
	if err := h.repo.SavePrediction(r.Context(), rec); err != nil {
		slog.Error("failed to store prediction", "err", err)
		rec.ID = 0
	} else {
		w.Header().Set("HX-Trigger", "predictionSaved")
	}
	render(w, r, http.StatusOK, templates.Outcome(*pred, rec.ID))
}

type normalizeResponse struct {
	Record domain.Record `json:"record,omitempty"`
	Errors []string      `json:"errors,omitempty"`
}

// normalizeJSON runs the pipeline on a JSON object of field values without
// contacting the prediction endpoint.
func (h *Handler) normalizeJSON(w http.ResponseWriter, r *http.Request) {
	values, err := decodeValues(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	res := h.norm.Normalize(domain.RawInput{Values: values})
	if !res.OK() {
		writeJSON(w, http.StatusUnprocessableEntity, normalizeResponse{Errors: res.Errors})
		return
	}
	writeJSON(w, http.StatusOK, normalizeResponse{Record: res.Record})
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.ListPredictions(r.Context(), h.historyLimit)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	render(w, r, http.StatusOK, templates.History(list))
}

func (h *Handler) historyPDF(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid id", 400)
		return
	}
	p, err := h.repo.GetPrediction(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, "prediction not found", 404)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	var buf bytes.Buffer
	if err := h.report.Generate(p, h.norm.Fields(), &buf); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	filename := fmt.Sprintf("attrition_prediction_%d_%s.pdf", p.ID, p.CreatedAt.Format("20060102"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Write(buf.Bytes())
}

func (h *Handler) deleteHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid id", 400)
		return
	}
	if err := h.repo.DeletePrediction(r.Context(), id); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// render writes a templ component to the response with the given status.
func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "err", err)
	}
}

func pathID(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(r.PathValue(key), 10, 64)
}

// rawInput keeps the first value of every submitted form field.
func rawInput(form url.Values) domain.RawInput {
	values := make(map[string]string, len(form))
	for k := range form {
		values[k] = form.Get(k)
	}
	return domain.RawInput{Values: values}
}

// decodeValues reads a flat JSON object. Numbers keep their literal text,
// booleans become "true"/"false" and null becomes "".
func decodeValues(r *http.Request) (map[string]string, error) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	values := make(map[string]string, len(body))
	for k, v := range body {
		switch x := v.(type) {
		case nil:
			values[k] = ""
		case string:
			values[k] = x
		case json.Number:
			values[k] = x.String()
		case bool:
			values[k] = strconv.FormatBool(x)
		default:
			return nil, fmt.Errorf("field %q must be a string or number", k)
		}
	}
	return values, nil
}
