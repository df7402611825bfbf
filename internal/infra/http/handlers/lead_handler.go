package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-crm/internal/board"
	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

const maxImportSize = 10 << 20

type LeadHandler struct {
	CreateLead  *usecase.CreateLeadUseCase
	ImportLeads *usecase.ImportLeadsUseCase
	ExportLeads *usecase.ExportLeadsUseCase
	LeadDetails *usecase.LeadDetailsUseCase
	Boards      *board.Registry
	Logger      *zap.Logger
}

func NewLeadHandler(
	create *usecase.CreateLeadUseCase,
	imp *usecase.ImportLeadsUseCase,
	exp *usecase.ExportLeadsUseCase,
	details *usecase.LeadDetailsUseCase,
	boards *board.Registry,
	logger *zap.Logger,
) *LeadHandler {
	return &LeadHandler{
		CreateLead:  create,
		ImportLeads: imp,
		ExportLeads: exp,
		LeadDetails: details,
		Boards:      boards,
		Logger:      logger,
	}
}

type LeadDetailsError struct {
	ErrorResponse
	Notification board.Notification `json:"notification"`
}

// Create grava um lead novo e, se o board do usuário já estiver aberto, coloca o card nele.
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	var input usecase.CreateLeadInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido: "+err.Error())
		return
	}

	lead, err := h.CreateLead.Execute(r.Context(), user.ID, input)
	if err != nil {
		if usecase.IsTechnicalError(err) {
			h.Logger.Error("create lead failed", zap.String("user_id", user.ID), zap.Error(err))
		}
		respondUsecaseError(w, err)
		return
	}

	if b, ok := h.Boards.Peek(user.ID); ok {
		b.Put(*lead)
	}
	writeJSON(w, http.StatusCreated, lead)
}

// Details devolve o lead e suas interações. O board não é tocado.
func (h *LeadHandler) Details(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())
	leadID := chi.URLParam(r, "id")

	out, err := h.LeadDetails.Execute(r.Context(), user.ID, leadID)
	if err != nil {
		status, code := statusFor(err)
		msg := err.Error()
		if status == http.StatusInternalServerError {
			h.Logger.Error("lead details failed", zap.String("lead_id", leadID), zap.Error(err))
			msg = "erro interno"
		}
		writeJSON(w, status, LeadDetailsError{
			ErrorResponse: ErrorResponse{Code: code, Message: msg},
			Notification: board.Notification{
				Severity:    board.SeverityError,
				Title:       "Erro ao buscar detalhes.",
				Description: msg,
			},
		})
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Import recebe um CSV no campo multipart "file".
func (h *LeadHandler) Import(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, usecase.CodeValidation, "arquivo é obrigatório")
		return
	}
	defer file.Close()

	out, err := h.ImportLeads.Execute(r.Context(), user.ID, file)
	if out != nil {
		middleware.RecordImport(out.ImportedCount, out.ErrorCount)
	}
	if err != nil {
		status, code := statusFor(err)
		if status == http.StatusInternalServerError {
			h.Logger.Error("import leads failed", zap.String("user_id", user.ID), zap.Error(err))
			writeError(w, status, code, "erro interno")
			return
		}
		resp := ErrorResponse{Code: code, Message: err.Error()}
		if out != nil {
			resp.Details = out
		}
		writeJSON(w, status, resp)
		return
	}

	h.Logger.Info("leads imported",
		zap.String("user_id", user.ID),
		zap.Int("imported", out.ImportedCount),
		zap.Int("errors", out.ErrorCount))

	if b, ok := h.Boards.Peek(user.ID); ok {
		if err := b.Resync(r.Context()); err != nil {
			h.Logger.Warn("board resync after import failed", zap.Error(err))
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// Export baixa os leads como CSV; ?status= filtra por etapa.
func (h *LeadHandler) Export(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	var filter entity.LeadFilter
	if raw := r.URL.Query().Get("status"); raw != "" && raw != board.AllStatuses {
		st, err := entity.ParseStage(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, usecase.CodeValidation, err.Error())
			return
		}
		filter.Status = st
	}

	out, err := h.ExportLeads.Execute(r.Context(), user.ID, filter)
	if err != nil {
		if usecase.IsTechnicalError(err) {
			h.Logger.Error("export leads failed", zap.String("user_id", user.ID), zap.Error(err))
		}
		respondUsecaseError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+out.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(out.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(out.Data)
}
