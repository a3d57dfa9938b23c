package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"media-review/internal/dto/request"
	"media-review/internal/usecase"
	"media-review/pkg/utils"
)

type CommentHandler struct {
	service usecase.CommentService
	log     *zap.Logger
}

func NewCommentHandler(service usecase.CommentService, log *zap.Logger) *CommentHandler {
	return &CommentHandler{
		service: service,
		log:     log.With(zap.String("handler", "comment")),
	}
}

// List handles GET /api/v1/titles/{title_id}/reviews/{review_id}/comments (public)
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "title_id")
	reviewID := chi.URLParam(r, "review_id")

	comments, err := h.service.ListByReview(r.Context(), titleID, reviewID, parsePagination(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list comments")
		return
	}

	utils.ResponseSuccess(w, "success", comments)
}

// Get handles GET /api/v1/titles/{title_id}/reviews/{review_id}/comments/{comment_id} (public)
func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "title_id")
	reviewID := chi.URLParam(r, "review_id")
	commentID := chi.URLParam(r, "comment_id")

	comment, err := h.service.Get(r.Context(), titleID, reviewID, commentID)
	if err != nil {
		handleServiceError(w, h.log, err, "get comment")
		return
	}

	utils.ResponseSuccess(w, "success", comment)
}

// Create handles POST /api/v1/titles/{title_id}/reviews/{review_id}/comments (authenticated)
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller := utils.GetCallerFromContext(r.Context())
	titleID := chi.URLParam(r, "title_id")
	reviewID := chi.URLParam(r, "review_id")

	var req request.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	comment, err := h.service.Create(r.Context(), caller, titleID, reviewID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create comment")
		return
	}

	utils.ResponseCreated(w, "success", comment)
}

// Update handles PATCH .../comments/{comment_id} (author, moderator or admin)
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller := utils.GetCallerFromContext(r.Context())
	titleID := chi.URLParam(r, "title_id")
	reviewID := chi.URLParam(r, "review_id")
	commentID := chi.URLParam(r, "comment_id")

	var req request.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	comment, err := h.service.Update(r.Context(), caller, titleID, reviewID, commentID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update comment")
		return
	}

	utils.ResponseSuccess(w, "success", comment)
}

// Delete handles DELETE .../comments/{comment_id} (author, moderator or admin)
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller := utils.GetCallerFromContext(r.Context())
	titleID := chi.URLParam(r, "title_id")
	reviewID := chi.URLParam(r, "review_id")
	commentID := chi.URLParam(r, "comment_id")

	if err := h.service.Delete(r.Context(), caller, titleID, reviewID, commentID); err != nil {
		handleServiceError(w, h.log, err, "delete comment")
		return
	}

	utils.ResponseNoContent(w)
}
