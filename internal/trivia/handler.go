package trivia

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/triviahub/trivia-api/internal/logging"
	httperrors "github.com/triviahub/trivia-api/pkg/http/errors"
)

// HTTPHandlers exposes the question-bank REST endpoints.
type HTTPHandlers struct {
	service *Service
	logger  zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers backed by the query service.
func NewHTTPHandlers(service *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		service: service,
		logger:  logger.With().Str("component", "trivia_http").Logger(),
	}
}

// ListCategories handles GET /categories.
func (h *HTTPHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondWriteRejected(w)
		return
	}
	res, err := h.service.Categories(r.Context())
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, res)
}

// Questions dispatches GET (paginated listing) and POST (create) on
// /questions.
func (h *HTTPHandlers) Questions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listQuestions(w, r)
	case http.MethodPost:
		h.createQuestion(w, r)
	default:
		httperrors.RespondWriteRejected(w)
	}
}

func (h *HTTPHandlers) listQuestions(w http.ResponseWriter, r *http.Request) {
	page := ParsePage(r.URL.Query().Get("page"))
	res, err := h.service.Questions(r.Context(), page)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, res)
}

func (h *HTTPHandlers) createQuestion(w http.ResponseWriter, r *http.Request) {
	var in QuestionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httperrors.RespondBadRequest(w)
		return
	}
	res, err := h.service.Create(r.Context(), in, 1)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, res)
}

// SearchQuestions handles POST /questions/search.
func (h *HTTPHandlers) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondWriteRejected(w)
		return
	}
	var req struct {
		SearchTerm string `json:"searchTerm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w)
		return
	}
	page := ParsePage(r.URL.Query().Get("page"))
	res, err := h.service.Search(r.Context(), req.SearchTerm, page)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, res)
}

// DeleteQuestion handles DELETE /questions/{id}. A non-numeric id does not
// address any resource, so it reports 404 rather than 400.
func (h *HTTPHandlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		httperrors.RespondWriteRejected(w)
		return
	}
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httperrors.RespondNotFound(w)
		return
	}
	res, err := h.service.Delete(r.Context(), id, 1)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, res)
}

// QuestionsByCategory handles GET /categories/{id}/questions. Unlike delete,
// the category id segment is untyped: a malformed id is a runtime failure of
// the lookup, so it reports 400, while only a well-formed but unknown id is
// 404.
func (h *HTTPHandlers) QuestionsByCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondWriteRejected(w)
		return
	}
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httperrors.RespondBadRequest(w)
		return
	}
	page := ParsePage(r.URL.Query().Get("page"))
	res, err := h.service.ByCategory(r.Context(), id, page)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, res)
}

// PlayQuiz handles POST /quizzes.
func (h *HTTPHandlers) PlayQuiz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondWriteRejected(w)
		return
	}
	var req struct {
		PreviousQuestions []int `json:"previous_questions"`
		QuizCategory      *struct {
			ID CategoryRef `json:"id"`
		} `json:"quiz_category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w)
		return
	}
	if req.QuizCategory == nil {
		httperrors.RespondUnprocessable(w)
		return
	}
	res, err := h.service.NextQuizQuestion(r.Context(), req.QuizCategory.ID, req.PreviousQuestions)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, res)
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("response encode failed")
	}
}

// respondDomainError maps the taxonomy onto the wire envelope. Causes stay in
// the logs; the client only ever sees the fixed code and message.
func (h *HTTPHandlers) respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.FromContext(r.Context())
	switch {
	case errors.Is(err, ErrNotFound):
		logger.Debug().Err(err).Str("path", r.URL.Path).Msg("resource not found")
		httperrors.RespondNotFound(w)
	case errors.Is(err, ErrWriteRejected):
		logger.Warn().Err(err).Str("path", r.URL.Path).Msg("write rejected")
		httperrors.RespondWriteRejected(w)
	case errors.Is(err, ErrUnprocessable):
		logger.Warn().Err(err).Str("path", r.URL.Path).Msg("unprocessable request")
		httperrors.RespondUnprocessable(w)
	default:
		logger.Warn().Err(err).Str("path", r.URL.Path).Msg("bad request")
		httperrors.RespondBadRequest(w)
	}
}
