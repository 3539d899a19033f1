package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/etap-learning/etap-backend/internal/application/command"
	"github.com/etap-learning/etap-backend/internal/application/query"
	"github.com/etap-learning/etap-backend/internal/domain/enrollment"
	"github.com/etap-learning/etap-backend/internal/domain/shared"
)

// validate checks request DTO struct tags before commands see the payload.
var validate = validator.New()

// ══════════════════════════════════════════════════════════════════════════════
// REQUEST DTOs
// ══════════════════════════════════════════════════════════════════════════════

// createSubjectRequest is the body of POST /api/v1/subjects.
type createSubjectRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// createTopicRequest is the body of POST /api/v1/subjects/{id}/topics.
type createTopicRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	VideoURL    *string `json:"video_url" validate:"omitempty,url"`
}

// registerLearnerRequest is the body of POST /api/v1/learners.
type registerLearnerRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// assignTopicsRequest is the body of POST /api/v1/assignments.
type assignTopicsRequest struct {
	LearnerID  int64                  `json:"learner_id" validate:"required,gt=0"`
	Selections []enrollment.Selection `json:"selections" validate:"required,min=1,dive"`
}

// updateProgressRequest is the body of POST /api/v1/progress. Progress is a
// pointer so an explicit zero survives decoding.
type updateProgressRequest struct {
	LearnerID int64 `json:"learner_id" validate:"required,gt=0"`
	TopicID   int64 `json:"topic_id" validate:"required,gt=0"`
	Progress  *int  `json:"progress" validate:"required"`
}

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH & STATUS HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleRoot returns basic service information.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeJSONError(w, http.StatusNotFound, "not_found", "The requested resource was not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service": "etap-backend",
		"version": "v1",
		"status":  "ok",
	})
}

// handleLive reports process liveness.
func (s *Server) handleLive(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// handleHealth reports overall health including uptime.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"uptime":    s.Uptime().String(),
		"timestamp": time.Now().UTC(),
	})
}

// handleReady reports readiness of the backing store and cache.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]string{}
	ready := true

	if s.deps.DBChecker != nil {
		if err := s.deps.DBChecker.Ping(ctx); err != nil {
			checks["database"] = "unavailable"
			ready = false
		} else {
			checks["database"] = "ok"
		}
	}

	if s.deps.CacheChecker != nil {
		if err := s.deps.CacheChecker.Ping(ctx); err != nil {
			// Cache is advisory: a down cache does not fail readiness.
			checks["cache"] = "unavailable"
		} else {
			checks["cache"] = "ok"
		}
	}

	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]interface{}{
		"ready":  ready,
		"checks": checks,
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// CATALOG HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleCreateSubject creates a subject.
// POST /api/v1/subjects
func (s *Server) handleCreateSubject(w http.ResponseWriter, r *http.Request) {
	var req createSubjectRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	subject, err := s.deps.CreateSubjectHandler.Handle(r.Context(), command.CreateSubjectCommand{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, subject)
}

// handleListSubjects lists all subjects.
// GET /api/v1/subjects
func (s *Server) handleListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := s.deps.ListSubjectsHandler.Handle(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, subjects)
}

// handleCreateTopic creates a topic under a subject from a JSON body with
// an optional pre-resolved video URL.
// POST /api/v1/subjects/{id}/topics
func (s *Server) handleCreateTopic(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req createTopicRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	topic, err := s.deps.CreateTopicHandler.Handle(r.Context(), command.CreateTopicCommand{
		SubjectID:   subjectID,
		Title:       req.Title,
		Description: req.Description,
		VideoURL:    req.VideoURL,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, topic)
}

// handleCreateTopicWithUpload creates a topic from a multipart form whose
// "video" part is streamed to the media gateway before the row is written.
// POST /api/v1/subjects/{id}/topics/upload
func (s *Server) handleCreateTopicWithUpload(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "invalid multipart form")
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	video, _, err := r.FormFile("video")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "missing video file")
		return
	}
	defer video.Close()

	topic, err := s.deps.CreateTopicHandler.Handle(r.Context(), command.CreateTopicCommand{
		SubjectID:   subjectID,
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Video:       video,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, topic)
}

// handleListTopics lists the topics of a subject.
// GET /api/v1/subjects/{id}/topics
func (s *Server) handleListTopics(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	topics, err := s.deps.ListTopicsHandler.Handle(r.Context(), query.ListTopicsQuery{SubjectID: subjectID})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, topics)
}

// handleGetTopic returns a single topic.
// GET /api/v1/topics/{id}
func (s *Server) handleGetTopic(w http.ResponseWriter, r *http.Request) {
	topicID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	topic, err := s.deps.GetTopicHandler.Handle(r.Context(), query.GetTopicQuery{TopicID: topicID})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, topic)
}

// ══════════════════════════════════════════════════════════════════════════════
// LEARNER & ENROLLMENT HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleRegisterLearner registers a learner.
// POST /api/v1/learners
func (s *Server) handleRegisterLearner(w http.ResponseWriter, r *http.Request) {
	var req registerLearnerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	l, err := s.deps.RegisterLearnerHandler.Handle(r.Context(), command.RegisterLearnerCommand{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, l)
}

// handleListLearners lists all learners.
// GET /api/v1/learners
func (s *Server) handleListLearners(w http.ResponseWriter, r *http.Request) {
	learners, err := s.deps.ListLearnersHandler.Handle(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, learners)
}

// handleAssignTopics assigns a batch of topic selections to a learner.
// POST /api/v1/assignments
func (s *Server) handleAssignTopics(w http.ResponseWriter, r *http.Request) {
	var req assignTopicsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := s.deps.AssignTopicsHandler.Handle(r.Context(), command.AssignTopicsCommand{
		LearnerID:  req.LearnerID,
		Selections: req.Selections,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleUpdateProgress records a progress update for one enrollment.
// POST /api/v1/progress
func (s *Server) handleUpdateProgress(w http.ResponseWriter, r *http.Request) {
	var req updateProgressRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	tc, err := s.deps.UpdateProgressHandler.Handle(r.Context(), command.UpdateProgressCommand{
		LearnerID: req.LearnerID,
		TopicID:   req.TopicID,
		Progress:  req.Progress,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tc)
}

// handleGetFullCurriculum returns the full curriculum annotated for one learner.
// GET /api/v1/learners/{id}/curriculum
func (s *Server) handleGetFullCurriculum(w http.ResponseWriter, r *http.Request) {
	learnerID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	subjects, err := s.deps.GetFullCurriculumHandler.Handle(r.Context(), query.GetFullCurriculumQuery{LearnerID: learnerID})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, subjects)
}

// handleGetEnrolledCurriculum returns only the subjects/topics the learner
// is enrolled in, with progress.
// GET /api/v1/learners/{id}/enrollments
func (s *Server) handleGetEnrolledCurriculum(w http.ResponseWriter, r *http.Request) {
	learnerID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	subjects, err := s.deps.GetEnrolledCurriculumHandler.Handle(r.Context(), query.GetEnrolledCurriculumQuery{LearnerID: learnerID})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, subjects)
}

// handleListTopicOfferings returns the enrolled learner roster of a topic.
// GET /api/v1/topics/{id}/learners
func (s *Server) handleListTopicOfferings(w http.ResponseWriter, r *http.Request) {
	topicID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	offerings, err := s.deps.ListTopicOfferingsHandler.Handle(r.Context(), query.ListTopicOfferingsQuery{TopicID: topicID})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, offerings)
}

// ══════════════════════════════════════════════════════════════════════════════
// REQUEST HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// pathID parses a positive integer path value, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "invalid "+name+" path parameter")
		return 0, false
	}
	return id, true
}

// decodeAndValidate decodes a JSON body into dst and runs struct tag
// validation, writing a 400 on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "invalid JSON body")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			writeJSONError(w, http.StatusBadRequest, "validation_error", "invalid field: "+verrs[0].Field())
			return false
		}
		writeJSONError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return false
	}

	return true
}

// writeDomainError maps domain error kinds to HTTP statuses. Store and
// upload failures both surface as 500 with distinct codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case shared.IsValidation(err):
		writeJSONError(w, http.StatusBadRequest, "validation_error", domainMessage(err))
	case shared.IsNotFound(err):
		writeJSONError(w, http.StatusNotFound, "not_found", domainMessage(err))
	case shared.IsUpload(err):
		writeJSONError(w, http.StatusInternalServerError, "upload_error", domainMessage(err))
	default:
		writeJSONError(w, http.StatusInternalServerError, "store_error", "An internal error occurred")
	}
}

// domainMessage extracts the human-readable message of a DomainError.
func domainMessage(err error) string {
	var derr *shared.DomainError
	if errors.As(err, &derr) {
		return derr.Message
	}
	return err.Error()
}
