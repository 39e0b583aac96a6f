package transport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"maison-be/internal/comment"
	"maison-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type CommentHandler struct {
	comments comment.Service
}

func NewCommentHandler(comments comment.Service) *CommentHandler {
	return &CommentHandler{comments: comments}
}

func (h *CommentHandler) ListForProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := utils.ToInt64(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, "invalid product id", http.StatusBadRequest)
		return
	}

	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit := limitParam(r, 100)

	comments, err := h.comments.ListForProduct(r.Context(), productID, limit, skip)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, comments)
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	productID, err := utils.ToInt64(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, "invalid product id", http.StatusBadRequest)
		return
	}

	var input comment.NewCommentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.comments.Create(r.Context(), productID, input)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, c)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ToInt64(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, "invalid comment id", http.StatusBadRequest)
		return
	}

	if err := h.comments.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CommentHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit := limitParam(r, 100)

	comments, err := h.comments.ListAll(r.Context(), limit, skip)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, comments)
}
