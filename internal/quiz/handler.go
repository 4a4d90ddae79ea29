package quiz

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/saulo-duarte/quizforge/internal/aiquiz"
	"github.com/saulo-duarte/quizforge/internal/auth"
	"github.com/saulo-duarte/quizforge/internal/config"
	"github.com/saulo-duarte/quizforge/internal/document"
	"github.com/saulo-duarte/quizforge/internal/report"
	"github.com/saulo-duarte/quizforge/internal/validator"
)

const generateFailedMessage = "Could not generate quiz. Please try again."

const DefaultMaxUploadBytes = 10 << 20

type Handler struct {
	service        QuizService
	sessions       SessionStore
	extractor      document.Extractor
	maxUploadBytes int64
}

func NewHandler(s QuizService, sessions SessionStore, extractor document.Extractor, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &Handler{
		service:        s,
		sessions:       sessions,
		extractor:      extractor,
		maxUploadBytes: maxUploadBytes,
	}
}

func userIDFromRequest(r *http.Request) (uuid.UUID, error) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(claims.UserID)
}

// writeError maps service errors to status codes. It reports false for unknown errors.
func writeError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, aiquiz.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, aiquiz.ErrOracleNotConfigured):
		http.Error(w, generateFailedMessage, http.StatusServiceUnavailable)
	case errors.Is(err, aiquiz.ErrOracleUnavailable), errors.Is(err, aiquiz.ErrParse):
		http.Error(w, generateFailedMessage, http.StatusBadGateway)
	case errors.Is(err, ErrNoActiveQuiz):
		http.Error(w, "no active quiz", http.StatusConflict)
	case errors.Is(err, ErrResultNotFound):
		http.Error(w, "result not found", http.StatusNotFound)
	default:
		return false
	}
	return true
}

func (h *Handler) loadSession(w http.ResponseWriter, r *http.Request) (*Session, uuid.UUID, bool) {
	log := config.WithContext(r.Context())

	userID, err := userIDFromRequest(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil, uuid.Nil, false
	}

	sess, err := h.sessions.Load(r)
	if err != nil {
		log.WithError(err).Warn("Discarding unreadable quiz session")
	}
	return sess, userID, true
}

func (h *Handler) saveSession(w http.ResponseWriter, r *http.Request, sess *Session) {
	if err := h.sessions.Save(w, r, sess); err != nil {
		config.WithContext(r.Context()).WithError(err).Error("Failed to save quiz session")
	}
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	sess, userID, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	in, err := h.parseGenerateInput(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	active, err := h.service.Generate(r.Context(), sess, userID, in)
	h.saveSession(w, r, sess)
	if err != nil {
		if writeError(w, err) {
			return
		}
		log.WithError(err).Error("Failed to generate quiz")
		http.Error(w, generateFailedMessage, http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusCreated, active)
}

// parseGenerateInput accepts JSON or a multipart form. An uploaded pdf_file takes
// precedence over topic.
func (h *Handler) parseGenerateInput(w http.ResponseWriter, r *http.Request) (GenerateInput, error) {
	var dto GenerateRequestDTO
	var in GenerateInput

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
		if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
			return in, errors.New("invalid form or file too large")
		}

		dto.Topic = r.FormValue("topic")
		dto.Difficulty = r.FormValue("difficulty")
		dto.QuestionType = r.FormValue("question_type")
		var err error
		if dto.QuestionLimit, err = formInt(r, "question_limit"); err != nil {
			return in, err
		}
		if dto.Duration, err = formInt(r, "duration"); err != nil {
			return in, err
		}

		file, header, err := r.FormFile("pdf_file")
		if err == nil {
			defer file.Close()
			if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
				return in, errors.New("only PDF files are supported")
			}
			in.FromDocument = true
			in.SourceName = header.Filename
			in.SourceText = h.extractor.Extract(file, header.Size)
		} else if !errors.Is(err, http.ErrMissingFile) {
			return in, errors.New("invalid pdf_file upload")
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			return in, errors.New("invalid request body")
		}
	}

	if fields := validator.Struct(dto); fields != nil {
		return in, errors.New(validator.Summary(fields))
	}

	difficulty, ok := aiquiz.ParseDifficulty(dto.Difficulty)
	if !ok {
		return in, fmt.Errorf("unknown difficulty %q", dto.Difficulty)
	}
	qt, ok := aiquiz.ParseQuestionType(dto.QuestionType)
	if !ok {
		return in, fmt.Errorf("unknown question type %q", dto.QuestionType)
	}

	in.Topic = dto.Topic
	in.QuestionCount = dto.QuestionLimit
	in.Difficulty = difficulty
	in.QuestionType = qt
	in.DurationSeconds = dto.Duration
	return in, nil
}

func formInt(r *http.Request, name string) (int, error) {
	v := strings.TrimSpace(r.FormValue(name))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	return n, nil
}

func (h *Handler) Active(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	sess, userID, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	active, err := h.service.Active(r.Context(), sess, userID)
	if err != nil {
		if writeError(w, err) {
			return
		}
		log.WithError(err).Error("Failed to load active quiz")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, active)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	sess, userID, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	var dto SubmitRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	res, err := h.service.Submit(r.Context(), sess, userID, dto.Answers)
	h.saveSession(w, r, sess)
	if err != nil {
		if writeError(w, err) {
			return
		}
		log.WithError(err).Error("Failed to submit quiz")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, ResultResponse{
		ResultSummary: ResultSummary{
			ID:             res.ResultID,
			Topic:          sess.Topic,
			Difficulty:     sess.Difficulty,
			QuestionType:   sess.QuestionType,
			Score:          res.Score,
			TotalQuestions: res.Total,
		},
		Details:   toDetailViews(res.Details),
		NewBadges: res.NewBadges,
	})
}

func (h *Handler) Quit(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	sess, userID, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	if err := h.service.Quit(r.Context(), sess, userID); err != nil {
		log.WithError(err).Error("Failed to quit quiz")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.saveSession(w, r, sess)

	config.JSON(w, http.StatusOK, map[string]string{"state": string(sess.State)})
}

func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	results, err := h.service.ListHistory(r.Context(), userID)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	summaries := make([]ResultSummary, 0, len(results))
	for i := range results {
		summaries = append(summaries, ToSummary(&results[i]))
	}
	config.JSON(w, http.StatusOK, summaries)
}

func (h *Handler) result(w http.ResponseWriter, r *http.Request) (*QuizResult, bool) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil, false
	}

	resultID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid result id", http.StatusBadRequest)
		return nil, false
	}

	res, err := h.service.GetResult(r.Context(), userID, resultID)
	if err != nil {
		if !writeError(w, err) {
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return nil, false
	}
	return res, true
}

func (h *Handler) GetResult(w http.ResponseWriter, r *http.Request) {
	res, ok := h.result(w, r)
	if !ok {
		return
	}
	config.JSON(w, http.StatusOK, ToResultResponse(res))
}

func (h *Handler) ExportResult(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	res, ok := h.result(w, r)
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")
	doc := toReportDocument(res)
	body, contentType, err := report.Render(format, doc)
	if err != nil {
		if errors.Is(err, report.ErrUnknownFormat) {
			http.Error(w, "format must be pdf or xlsx", http.StatusBadRequest)
			return
		}
		log.WithError(err).Error("Failed to render report")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename(doc, format)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func toReportDocument(res *QuizResult) report.Document {
	doc := report.Document{
		Topic:        res.Topic,
		Difficulty:   string(res.Difficulty),
		QuestionType: string(res.QuestionType),
		Score:        res.Score,
		Total:        res.TotalQuestions,
		TakenAt:      res.CreatedAt,
	}
	for _, d := range res.DetailList() {
		doc.Rows = append(doc.Rows, report.Row{
			Question:      d.Question,
			UserAnswer:    d.UserAnswer,
			CorrectAnswer: d.CorrectAnswer,
			IsCorrect:     d.IsCorrect,
			Feedback:      d.Feedback,
		})
	}
	return doc
}
