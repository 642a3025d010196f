package api

import (
	"embed"
	"errors"
	"html/template"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vinifranco48/performace/internal/domain"
	"github.com/vinifranco48/performace/internal/observability"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// formValues echoes the submitted fields back into the form.
type formValues struct {
	Date       string
	DistanceKm string
	Hours      string
	Minutes    string
	Seconds    string
	WeightKg   string
}

type pageView struct {
	Form          formValues
	ConnectionErr string
	FormErr       string
	InsertErr     string
	Success       bool
	LoadErr       string
	Columns       []string
	Rows          [][]string
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.renderEvaluation(w, r, nil, h.defaultForm(), "")
	case http.MethodPost:
		h.submitForm(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) submitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderEvaluation(w, r, nil, h.defaultForm(), "formulário inválido")
		return
	}

	form := formValues{
		Date:       strings.TrimSpace(r.PostForm.Get("date")),
		DistanceKm: strings.TrimSpace(r.PostForm.Get("distance_km")),
		Hours:      strings.TrimSpace(r.PostForm.Get("hours")),
		Minutes:    strings.TrimSpace(r.PostForm.Get("minutes")),
		Seconds:    strings.TrimSpace(r.PostForm.Get("seconds")),
		WeightKg:   strings.TrimSpace(r.PostForm.Get("weight_kg")),
	}

	sub, err := parseForm(form)
	if err == nil {
		err = sub.Validate()
	}
	if err != nil {
		observability.RecordSubmission("invalid")
		h.renderEvaluation(w, r, nil, form, err.Error())
		return
	}
	h.renderEvaluation(w, r, &sub, form, "")
}

// renderEvaluation runs one evaluation and renders the page. A validation
// failure (formErr) skips the insert but still shows the history.
func (h *Handler) renderEvaluation(w http.ResponseWriter, r *http.Request, sub *domain.Submission, form formValues, formErr string) {
	view := pageView{Form: form, FormErr: formErr}
	status := http.StatusOK
	if formErr != "" {
		status = http.StatusBadRequest
	}

	page, err := h.service.Evaluate(r.Context(), sub)
	if err != nil {
		view.ConnectionErr = err.Error()
		h.render(w, http.StatusServiceUnavailable, view)
		return
	}

	if page.Submitted {
		if page.InsertErr != nil {
			view.InsertErr = page.InsertErr.Error()
			status = http.StatusBadGateway
		} else {
			view.Success = true
		}
	}
	if page.LoadErr != nil {
		view.LoadErr = page.LoadErr.Error()
	} else {
		view.Columns = page.History.Columns
		view.Rows = page.History.Rows()
	}
	h.render(w, status, view)
}

func (h *Handler) render(w http.ResponseWriter, status int, view pageView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, view); err != nil {
		h.logger.Error("render page", zap.Error(err))
	}
}

func (h *Handler) defaultForm() formValues {
	return formValues{
		Date:       h.now().Format(domain.DateLayout),
		DistanceKm: "0.00",
		Hours:      "0",
		Minutes:    "0",
		Seconds:    "0",
		WeightKg:   "0.0",
	}
}

func parseForm(f formValues) (domain.Submission, error) {
	date, err := time.Parse(domain.DateLayout, f.Date)
	if err != nil {
		return domain.Submission{}, errors.New("data inválida")
	}
	distance, err := parseFloatField(f.DistanceKm)
	if err != nil {
		return domain.Submission{}, errors.New("distância inválida")
	}
	hours, err := parseIntField(f.Hours)
	if err != nil {
		return domain.Submission{}, errors.New("horas inválidas")
	}
	minutes, err := parseIntField(f.Minutes)
	if err != nil {
		return domain.Submission{}, errors.New("minutos inválidos")
	}
	seconds, err := parseIntField(f.Seconds)
	if err != nil {
		return domain.Submission{}, errors.New("segundos inválidos")
	}
	weight, err := parseFloatField(f.WeightKg)
	if err != nil {
		return domain.Submission{}, errors.New("peso inválido")
	}
	return domain.Submission{
		Date:       date,
		DistanceKm: distance,
		Hours:      hours,
		Minutes:    minutes,
		Seconds:    seconds,
		WeightKg:   weight,
	}, nil
}

// Empty numeric fields count as zero, matching the form defaults.
func parseFloatField(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("not a finite number")
	}
	return v, nil
}

func parseIntField(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
