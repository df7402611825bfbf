package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-crm/internal/board"
	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
)

// BoardHandler expõe o board kanban de cada usuário.
type BoardHandler struct {
	Boards *board.Registry
	Logger *zap.Logger
}

func NewBoardHandler(boards *board.Registry, logger *zap.Logger) *BoardHandler {
	return &BoardHandler{Boards: boards, Logger: logger}
}

type BoardResponse struct {
	Columns []board.Column `json:"columns"`
	Total   int            `json:"total"`
}

type MoveRequest struct {
	LeadID string `json:"lead_id"`
	Stage  string `json:"stage"`
}

type MoveResponse struct {
	State         board.TransitionState `json:"state"`
	Lead          *entity.Lead          `json:"lead,omitempty"`
	Notifications []board.Notification  `json:"notifications"`
}

func (h *BoardHandler) loadBoard(w http.ResponseWriter, r *http.Request) (*board.Board, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", entity.ErrUnauthenticated.Error())
		return nil, false
	}
	b := h.Boards.Get(user.ID)
	if err := b.EnsureLoaded(r.Context()); err != nil {
		h.Logger.Error("board load failed", zap.String("user_id", user.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "BOARD_LOAD_FAILED", "Erro ao carregar os leads.")
		return nil, false
	}
	return b, true
}

// Get devolve as colunas, filtradas por ?search= e ?status=.
func (h *BoardHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, ok := h.loadBoard(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.view(b, r))
}

// Reload descarta o cache e recarrega do banco.
func (h *BoardHandler) Reload(w http.ResponseWriter, r *http.Request) {
	b, ok := h.loadBoard(w, r)
	if !ok {
		return
	}
	if err := b.Resync(r.Context()); err != nil {
		h.Logger.Error("board reload failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "BOARD_LOAD_FAILED", "Erro ao carregar os leads.")
		return
	}
	writeJSON(w, http.StatusOK, h.view(b, r))
}

// Move arrasta um lead para outra coluna.
func (h *BoardHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido: "+err.Error())
		return
	}
	req.LeadID = strings.TrimSpace(req.LeadID)
	if req.LeadID == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "lead_id é obrigatório")
		return
	}

	b, ok := h.loadBoard(w, r)
	if !ok {
		return
	}

	t, moved := b.Move(r.Context(), req.LeadID, entity.Stage(req.Stage))
	if !moved {
		middleware.RecordTransition(board.StateIdle.String())
		resp := MoveResponse{State: board.StateIdle, Notifications: []board.Notification{}}
		if l, found := b.Lead(req.LeadID); found {
			resp.Lead = &l
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}

	middleware.RecordTransition(t.State.String())
	if t.AuditErr != nil {
		middleware.RecordAuditFailure()
	}

	resp := MoveResponse{State: t.State, Notifications: t.Notices}
	if resp.Notifications == nil {
		resp.Notifications = []board.Notification{}
	}
	if l, found := b.Lead(req.LeadID); found {
		resp.Lead = &l
	}

	status := http.StatusOK
	if t.State == board.StateRolledBack {
		status = http.StatusConflict
	}
	writeJSON(w, status, resp)
}

func (h *BoardHandler) view(b *board.Board, r *http.Request) BoardResponse {
	q := board.Query{
		Search: r.URL.Query().Get("search"),
		Status: r.URL.Query().Get("status"),
	}
	cols := b.View(q)
	total := 0
	for _, c := range cols {
		total += c.Count()
	}
	return BoardResponse{Columns: cols, Total: total}
}
