package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"github.com/diewo77/go-wills/internal/auth"
	"github.com/diewo77/go-wills/internal/httpx"
	"github.com/diewo77/go-wills/internal/localize"
	"github.com/diewo77/go-wills/internal/pdf"
	"github.com/diewo77/go-wills/internal/services"
	"github.com/diewo77/go-wills/internal/willdoc"
)

// WillHandler exposes the wizard over HTTP. All routes are owner-scoped: the
// session user id qualifies every lookup, and someone else's will is
// indistinguishable from a missing one.
type WillHandler struct {
	DB  *gorm.DB
	Svc *services.WillService
	Del *services.DeleteFlow
	PDF pdf.Renderer
}

func NewWillHandler(db *gorm.DB, svc *services.WillService, del *services.DeleteFlow, renderer pdf.Renderer) *WillHandler {
	return &WillHandler{DB: db, Svc: svc, Del: del, PDF: renderer}
}

func userID(r *http.Request) uint {
	uid, _ := auth.UserIDFromContext(r.Context())
	return uid
}

// List: GET /wills
func (h *WillHandler) List(w http.ResponseWriter, r *http.Request) {
	wills, err := h.Svc.List(userID(r))
	if err != nil {
		log.Println("list wills:", err)
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_wills", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"wills": wills})
}

// Create: POST /wills
func (h *WillHandler) Create(w http.ResponseWriter, r *http.Request) {
	will, err := h.Svc.Create(userID(r))
	if err != nil {
		log.Println("create will:", err)
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_will", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, will)
}

// Get: GET /wills/get?id=...
func (h *WillHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	will, err := h.Svc.Get(userID(r), id)
	if err != nil {
		h.writeError(w, err, "failed_to_load_will")
		return
	}
	httpx.JSON(w, http.StatusOK, will)
}

// Save: POST /wills/save?id=...&step=N
func (h *WillHandler) Save(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	step, err := strconv.Atoi(r.URL.Query().Get("step"))
	if err != nil || !services.ValidStep(step) {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_step", nil)
		return
	}
	var in services.StepInput
	if err := httpx.Decode(r, &in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	will, err := h.Svc.SaveStep(userID(r), id, step, in)
	if err != nil {
		h.writeError(w, err, "failed_to_save_step")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"willId": will.ID, "will": will})
}

// Generate: POST /wills/generate?id=... with optional body {"language":"es"}.
// English persists the document; other languages return a one-off rendering.
func (h *WillHandler) Generate(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	var req struct {
		Language string `json:"language"`
	}
	if err := httpx.Decode(r, &req); err != nil && !errors.Is(err, io.EOF) {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	html, err := h.Svc.Generate(r.Context(), userID(r), id, req.Language)
	if err != nil {
		h.writeError(w, err, "failed_to_generate")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"html": html})
}

// Preview: POST /wills/preview with a raw document body. Renders without
// touching storage, so the wizard can show a live preview of unsaved edits.
func (h *WillHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var doc willdoc.Document
	if err := httpx.Decode(r, &doc); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	doc.Normalize()
	httpx.JSON(w, http.StatusOK, map[string]string{"html": willdoc.Render(&doc)})
}

// Finalize: POST /wills/finalize?id=...
func (h *WillHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	will, err := h.Svc.Finalize(userID(r), id)
	if err != nil {
		h.writeError(w, err, "failed_to_finalize")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": will.Status})
}

// Export: GET /wills/pdf?id=...
func (h *WillHandler) Export(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	will, err := h.Svc.Get(userID(r), id)
	if err != nil {
		h.writeError(w, err, "failed_to_load_will")
		return
	}
	if will.GeneratedHTML == "" {
		httpx.JSONError(w, http.StatusBadRequest, "not_generated", nil)
		return
	}
	if h.PDF == nil {
		httpx.JSONError(w, http.StatusServiceUnavailable, "pdf_unavailable", nil)
		return
	}
	data, err := h.PDF.Render(r.Context(), pdf.WrapDocument(will.Title, will.GeneratedHTML))
	if err != nil {
		log.Println("pdf render:", err)
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_failed", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="will.pdf"`)
	if _, err := w.Write(data); err != nil {
		_ = err
	}
}

// DeleteRequest: POST /wills/delete/request?id=...
func (h *WillHandler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	if err := h.Del.Request(userID(r), id); err != nil {
		h.writeError(w, err, "failed_to_send_code")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "code_sent"})
}

// DeleteVerify: POST /wills/delete/verify?id=... with body {"code":"123456"}
func (h *WillHandler) DeleteVerify(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	var req struct {
		Code string `json:"code"`
	}
	if err := httpx.Decode(r, &req); err != nil || req.Code == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_code", nil)
		return
	}
	if err := h.Del.Verify(userID(r), id, req.Code); err != nil {
		h.writeError(w, err, "failed_to_delete")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// writeError maps service errors onto HTTP responses. Unclassified errors are
// logged and reported with the handler's fallback message.
func (h *WillHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	var verr *services.ValidationError
	switch {
	case errors.Is(err, services.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	case errors.As(err, &verr):
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", verr.Problems)
	case errors.Is(err, services.ErrInvalidStep):
		httpx.JSONError(w, http.StatusBadRequest, "invalid_step", nil)
	case errors.Is(err, services.ErrNotCompleted):
		httpx.JSONError(w, http.StatusBadRequest, "not_generated", nil)
	case errors.Is(err, services.ErrNoLocalizer):
		httpx.JSONError(w, http.StatusServiceUnavailable, "localization_unavailable", nil)
	case errors.Is(err, localize.ErrOverloaded):
		httpx.JSONError(w, http.StatusServiceUnavailable, "translation_overloaded", nil)
	case errors.Is(err, localize.ErrAuthFailed):
		httpx.JSONError(w, http.StatusBadGateway, "translation_auth_failed", nil)
	case errors.Is(err, localize.ErrFailed):
		httpx.JSONError(w, http.StatusBadGateway, "translation_failed", nil)
	case errors.Is(err, services.ErrNoCode):
		httpx.JSONError(w, http.StatusBadRequest, "no_code", nil)
	case errors.Is(err, services.ErrCodeExpired):
		httpx.JSONError(w, http.StatusBadRequest, "code_expired", nil)
	case errors.Is(err, services.ErrTooManyAttempts):
		httpx.JSONError(w, http.StatusBadRequest, "too_many_attempts", nil)
	case errors.Is(err, services.ErrCodeMismatch):
		httpx.JSONError(w, http.StatusBadRequest, "code_mismatch", nil)
	default:
		log.Println("will handler:", err)
		httpx.JSONError(w, http.StatusInternalServerError, fallback, nil)
	}
}
