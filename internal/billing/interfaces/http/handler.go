package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"meterbill/internal/billing/application"
	"meterbill/internal/billing/interfaces"
	"meterbill/internal/observability/metrics"
)

const (
	formatPDF  = "pdf"
	formatXLSX = "xlsx"
)

// Handler serves the statements computed for one billing run. The serve
// mode is read-only; bills are computed once at startup from the input file.
type Handler struct {
	statements []application.Statement
}

// NewHandler constructs a handler.
func NewHandler(statements []application.Statement) (*Handler, error) {
	if len(statements) == 0 {
		return nil, errors.New("bills handler: no statements")
	}
	return &Handler{statements: statements}, nil
}

// ServeHTTP handles /api/v1/bills and subroutes.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	switch {
	case r.URL.Path == "/api/v1/bills":
		h.handleList(w, r)
	case strings.HasPrefix(r.URL.Path, "/api/v1/bills/"):
		h.handleExport(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *Handler) handleList(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.statements)
}

// handleExport serves /api/v1/bills/{plan}/export.{pdf|xlsx}.
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/bills/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	planName := parts[0]

	var format string
	switch parts[1] {
	case "export.pdf":
		format = formatPDF
	case "export.xlsx":
		format = formatXLSX
	default:
		w.WriteHeader(http.StatusNotFound)
		return
	}

	stmt, ok := h.findStatement(planName)
	if !ok {
		http.Error(w, "unknown plan", http.StatusNotFound)
		return
	}

	start := time.Now()
	data, err := buildExport(format, stmt)
	if err != nil {
		metrics.ObserveStatementExport(format, metrics.ResultError, time.Since(start))
		http.Error(w, "export error", http.StatusInternalServerError)
		return
	}
	metrics.ObserveStatementExport(format, metrics.ResultSuccess, time.Since(start))

	if format == formatPDF {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="`+planName+`.pdf"`)
	} else {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="`+planName+`.xlsx"`)
	}
	_, _ = w.Write(data)
}

func (h *Handler) findStatement(planName string) (application.Statement, bool) {
	for _, stmt := range h.statements {
		if stmt.PlanName == planName {
			return stmt, true
		}
	}
	return application.Statement{}, false
}

func buildExport(format string, stmt application.Statement) ([]byte, error) {
	if format == formatPDF {
		return interfaces.BuildBillPDF([]application.Statement{stmt})
	}
	return interfaces.BuildBillXLSX([]application.Statement{stmt})
}
