package handler

import (
	"encoding/json"
	"net/http"

	"jsonshare/internal/document/model"
	"jsonshare/internal/document/service"
	"jsonshare/middleware"
	"jsonshare/pkg/apperr"
	"jsonshare/pkg/logger"
)

type DocumentHandler struct {
	Service *service.DocumentService
}

func NewDocumentHandler(service *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{Service: service}
}

func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(middleware.UserIDKey).(string)

	docs, err := h.Service.List(r.Context(), userID)
	if err != nil {
		logger.Sugar.Errorf("Failed to list documents for user %s: %v", userID, err)
		apperr.WriteError(w, err)
		return
	}
	apperr.WriteJSON(w, http.StatusOK, docs)
}

func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(middleware.UserIDKey).(string)

	var req model.CreateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.WriteError(w, apperr.Validation([]apperr.FieldError{{Field: "body", Message: "must be valid JSON"}}))
		return
	}

	doc, err := h.Service.Create(r.Context(), userID, req)
	if err != nil {
		logger.Sugar.Errorf("Failed to create document for user %s: %v", userID, err)
		apperr.WriteError(w, err)
		return
	}
	apperr.WriteJSON(w, http.StatusCreated, doc)
}

func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(middleware.UserIDKey).(string)
	docID := r.PathValue("id")

	doc, err := h.Service.Get(r.Context(), userID, docID)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	apperr.WriteJSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(middleware.UserIDKey).(string)
	docID := r.PathValue("id")

	var req model.UpdateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.WriteError(w, apperr.Validation([]apperr.FieldError{{Field: "body", Message: "must be valid JSON"}}))
		return
	}

	doc, err := h.Service.Update(r.Context(), userID, docID, req)
	if err != nil {
		logger.Sugar.Errorf("Failed to update document %s: %v", docID, err)
		apperr.WriteError(w, err)
		return
	}
	apperr.WriteJSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(middleware.UserIDKey).(string)
	docID := r.PathValue("id")

	if err := h.Service.Delete(r.Context(), userID, docID); err != nil {
		apperr.WriteError(w, err)
		return
	}
	apperr.WriteJSON(w, http.StatusOK, model.DeleteDocumentResponse{Success: true})
}

// GetPublicDocument serves shared documents by slug without authentication.
func (h *DocumentHandler) GetPublicDocument(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	doc, err := h.Service.GetPublic(r.Context(), slug)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	apperr.WriteJSON(w, http.StatusOK, doc)
}
