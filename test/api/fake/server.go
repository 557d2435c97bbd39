/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

//nolint:revive
package fake

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/drivingschool/enrollment-harness/test/api"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

const maxUploadSize = 10 << 20

type accountKeyType int

//nolint:gochecknoglobals
var accountKey accountKeyType

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Add("Cache-Control", "no-cache")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.FromContext(r.Context()).Error(err, "failed to write response")
	}
}

// writeError writes an error in the platform's {"detail": ...} form.
func writeError(w http.ResponseWriter, r *http.Request, status int, detail string) {
	writeJSON(w, r, status, map[string]string{"detail": detail})
}

// Handler returns the platform's HTTP routes.
func (p *Platform) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Get("/health", p.health)

	if p.prefix == "" {
		p.routes(router)
	} else {
		router.Route(p.prefix, p.routes)
	}

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "Not Found")
	})

	return router
}

func (p *Platform) routes(r chi.Router) {
	r.Get("/states", p.listStates)
	r.Get("/driving-schools", p.listDrivingSchools)
	r.Post("/auth/register", p.register)
	r.Post("/auth/login", p.login)

	r.Group(func(r chi.Router) {
		r.Use(p.authenticate)

		r.Get("/dashboard", p.dashboard)
		r.Get("/notifications", p.listNotifications)
		r.Get("/courses", p.listCourses)

		r.Group(func(r chi.Router) {
			r.Use(requireRole(api.RoleStudent))

			r.Post("/enrollments", p.createEnrollment)
			r.Post("/enroll", p.enroll)
			r.Post("/documents/upload", p.uploadDocument)
			r.Get("/documents", p.listDocuments)
		})

		r.Group(func(r chi.Router) {
			r.Use(requireRole(api.RoleManager))

			r.Get("/managers/pending-documents", p.listPendingDocuments)
			r.Post("/documents/accept/{id}", p.acceptDocument)
			r.Post("/documents/refuse/{id}", p.refuseDocument)
			r.Get("/manager/pending-enrollments-enhanced", p.listPendingEnrollments)
			r.Get("/manager/student-details/{student_id}", p.studentDetails)
			r.Get("/manager/student-documents/{student_id}", p.studentDocuments)
			r.Post("/manager/enrollments/{id}/accept", p.acceptEnrollment)
			r.Post("/manager/enrollments/{id}/refuse", p.refuseEnrollment)
		})
	})
}

func (p *Platform) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeError(w, r, http.StatusUnauthorized, "Not authenticated")
			return
		}

		p.lock.Lock()
		id, err := p.subject(token)

		var a *account

		if err == nil {
			a, ok = p.accountByID(id)
		}
		p.lock.Unlock()

		if err != nil || !ok {
			writeError(w, r, http.StatusUnauthorized, "Invalid authentication credentials")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), accountKey, a.User)))
	})
}

func requireRole(roles ...api.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !slices.Contains(roles, caller(r).Role) {
				writeError(w, r, http.StatusForbidden, "Access denied")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func caller(r *http.Request) api.User {
	//nolint:forcetypeassert
	return r.Context().Value(accountKey).(api.User)
}

func (p *Platform) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "healthy"})
}

func (p *Platform) listStates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"states": []string{"Adrar", "Alger", "Blida", "Oran", "Constantine", "Tizi Ouzou"},
	})
}

func (p *Platform) listDrivingSchools(w http.ResponseWriter, r *http.Request) {
	p.lock.Lock()
	defer p.lock.Unlock()

	schools := append([]api.School{}, p.schools...)

	writeJSON(w, r, http.StatusOK, map[string]any{
		"schools":     schools,
		"total_count": len(schools),
	})
}

func (p *Platform) authResponse(w http.ResponseWriter, r *http.Request, a *account) {
	token, err := p.issueToken(a)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, api.AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        a.User,
	})
}

func (p *Platform) register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "Expected multipart form data")
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")

	if email == "" || password == "" {
		writeError(w, r, http.StatusUnprocessableEntity, "email and password are required")
		return
	}

	if _, _, err := r.FormFile("profile_photo"); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "profile_photo is required")
		return
	}

	p.lock.Lock()
	defer p.lock.Unlock()

	if _, ok := p.accounts[email]; ok {
		writeError(w, r, http.StatusBadRequest, "Email already registered")
		return
	}

	a := p.addAccount(api.Credentials{Email: email, Password: password}, api.RoleStudent, r.FormValue("first_name"), r.FormValue("last_name"))

	p.authResponse(w, r, a)
}

func (p *Platform) login(w http.ResponseWriter, r *http.Request) {
	var credentials api.Credentials

	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	p.lock.Lock()
	defer p.lock.Unlock()

	a, ok := p.accounts[credentials.Email]
	if !ok || a.password != credentials.Password {
		writeError(w, r, http.StatusUnauthorized, "Incorrect email or password")
		return
	}

	p.authResponse(w, r, a)
}

func (p *Platform) dashboard(w http.ResponseWriter, r *http.Request) {
	user := caller(r)

	p.lock.Lock()
	defer p.lock.Unlock()

	writeJSON(w, r, http.StatusOK, map[string]any{
		"user":        user,
		"enrollments": p.enrollmentsOf(user.ID),
		"documents":   p.documentsOf(user.ID),
	})
}

func (p *Platform) listNotifications(w http.ResponseWriter, r *http.Request) {
	user := caller(r)

	p.lock.Lock()
	defer p.lock.Unlock()

	notifications := append([]map[string]any{}, p.notifications[user.ID]...)

	writeJSON(w, r, http.StatusOK, map[string]any{
		"notifications": notifications,
	})
}

func (p *Platform) listCourses(w http.ResponseWriter, r *http.Request) {
	user := caller(r)

	if user.Role != api.RoleStudent {
		writeError(w, r, http.StatusForbidden, "Only students can access courses")
		return
	}

	p.lock.Lock()
	defer p.lock.Unlock()

	courses := []map[string]any{}

	for _, e := range p.enrollmentsOf(user.ID) {
		if e.Status != api.StatusApproved {
			continue
		}

		for _, courseType := range []string{"theory", "park", "road"} {
			courses = append(courses, map[string]any{
				"id":            uuid.NewString(),
				"enrollment_id": e.ID,
				"course_type":   courseType,
				"status":        "available",
			})
		}
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"courses": courses,
	})
}

type schoolRequest struct {
	SchoolID string `json:"school_id"`
}

// newEnrollment validates and creates an enrollment, writing an error
// response on failure. Callers must hold the lock.
func (p *Platform) newEnrollment(w http.ResponseWriter, r *http.Request) (*api.Enrollment, bool) {
	var request schoolRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.SchoolID == "" {
		writeError(w, r, http.StatusUnprocessableEntity, "school_id is required")
		return nil, false
	}

	if _, ok := p.school(request.SchoolID); !ok {
		writeError(w, r, http.StatusNotFound, "Driving school not found")
		return nil, false
	}

	user := caller(r)

	for _, e := range p.enrollmentsOf(user.ID) {
		if e.SchoolID == request.SchoolID && e.Status != api.StatusRejected {
			writeError(w, r, http.StatusBadRequest, "Already enrolled in this driving school")
			return nil, false
		}
	}

	enrollment := &api.Enrollment{
		ID:        uuid.NewString(),
		StudentID: user.ID,
		SchoolID:  request.SchoolID,
		Status:    api.StatusPendingDocuments,
	}

	p.enrollments = append(p.enrollments, enrollment)

	return enrollment, true
}

func (p *Platform) createEnrollment(w http.ResponseWriter, r *http.Request) {
	p.lock.Lock()
	defer p.lock.Unlock()

	enrollment, ok := p.newEnrollment(w, r)
	if !ok {
		return
	}

	writeJSON(w, r, http.StatusOK, api.EnrollmentCreated{
		EnrollmentID: enrollment.ID,
		Message:      "Enrollment created successfully",
	})
}

func (p *Platform) enroll(w http.ResponseWriter, r *http.Request) {
	p.lock.Lock()
	defer p.lock.Unlock()

	enrollment, ok := p.newEnrollment(w, r)
	if !ok {
		return
	}

	writeJSON(w, r, http.StatusOK, api.EnrollResponse{
		Enrollment: *enrollment,
	})
}

func (p *Platform) uploadDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "Expected multipart form data")
		return
	}

	documentType := api.DocumentType(r.FormValue("document_type"))
	if !slices.Contains(api.RequiredDocumentTypes(), documentType) {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid document type %q", documentType))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "file is required")
		return
	}

	file.Close()

	user := caller(r)

	p.lock.Lock()
	defer p.lock.Unlock()

	document := &api.Document{
		ID:           uuid.NewString(),
		StudentID:    user.ID,
		DocumentType: documentType,
		Status:       api.DocumentPending,
		FileName:     header.Filename,
	}

	p.documents = append(p.documents, document)

	if p.uploadTransition && p.allUploaded(user.ID) {
		p.promote(user.ID)
	}

	writeJSON(w, r, http.StatusOK, api.UploadResponse{
		Document: *document,
	})
}

func (p *Platform) listDocuments(w http.ResponseWriter, r *http.Request) {
	user := caller(r)

	p.lock.Lock()
	defer p.lock.Unlock()

	writeJSON(w, r, http.StatusOK, api.DocumentList{
		Documents:         p.documentsOf(user.ID),
		RequiredDocuments: api.RequiredDocumentTypes(),
	})
}

func (p *Platform) listPendingDocuments(w http.ResponseWriter, r *http.Request) {
	p.lock.Lock()
	defer p.lock.Unlock()

	pending := []api.Document{}

	for _, d := range p.documents {
		switch {
		case d.Status == api.DocumentPending:
			pending = append(pending, *d)
		case d.Status == api.DocumentAccepted && p.stickyPending:
			stale := *d
			stale.Status = api.DocumentPending

			pending = append(pending, stale)
		}
	}

	writeJSON(w, r, http.StatusOK, api.DocumentList{
		Documents: pending,
	})
}

// pendingDocument looks up a document awaiting review, writing an error
// response on failure. Callers must hold the lock.
func (p *Platform) pendingDocument(w http.ResponseWriter, r *http.Request) (*api.Document, bool) {
	document, ok := p.document(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, r, http.StatusNotFound, "Document not found")
		return nil, false
	}

	if document.Status != api.DocumentPending {
		writeError(w, r, http.StatusBadRequest, "Document has already been reviewed")
		return nil, false
	}

	return document, true
}

func (p *Platform) acceptDocument(w http.ResponseWriter, r *http.Request) {
	p.lock.Lock()
	defer p.lock.Unlock()

	document, ok := p.pendingDocument(w, r)
	if !ok {
		return
	}

	document.Status = api.DocumentAccepted

	complete := p.documentsComplete(document.StudentID)

	if complete || p.prematureTransition {
		p.promote(document.StudentID)
	}

	p.notify(document.StudentID, "document_accepted", "Document accepted", fmt.Sprintf("Your %s has been accepted", document.DocumentType))

	response := api.AcceptResponse{
		Message: "Document accepted successfully",
	}

	if !p.omitCompletionFlag {
		reported := complete || p.earlyCompletion
		response.DocumentsComplete = &reported
	}

	writeJSON(w, r, http.StatusOK, response)
}

func (p *Platform) refuseDocument(w http.ResponseWriter, r *http.Request) {
	reason, ok := formReason(w, r)
	if !ok {
		return
	}

	p.lock.Lock()
	defer p.lock.Unlock()

	document, ok := p.pendingDocument(w, r)
	if !ok {
		return
	}

	document.Status = api.DocumentRefused
	document.RefusalReason = reason

	p.notify(document.StudentID, "document_refused", "Document refused", fmt.Sprintf("Your %s was refused: %s", document.DocumentType, reason))

	writeJSON(w, r, http.StatusOK, api.UploadResponse{
		Document: *document,
	})
}

// formReason reads the mandatory refusal reason.
func formReason(w http.ResponseWriter, r *http.Request) (string, bool) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "Expected multipart form data")
		return "", false
	}

	reason := strings.TrimSpace(r.FormValue("reason"))
	if reason == "" {
		writeError(w, r, http.StatusBadRequest, "A refusal reason is required")
		return "", false
	}

	return reason, true
}

func (p *Platform) documentSummary(studentID string) api.DocumentSummary {
	uploaded := len(p.documentTypesIn(studentID, api.DocumentPending, api.DocumentAccepted))
	required := len(api.RequiredDocumentTypes())

	return api.DocumentSummary{
		TotalRequired:    required,
		TotalUploaded:    uploaded,
		AllUploaded:      uploaded == required,
		ReadyForDecision: p.documentsComplete(studentID),
	}
}

func (p *Platform) listPendingEnrollments(w http.ResponseWriter, r *http.Request) {
	p.lock.Lock()
	defer p.lock.Unlock()

	enrollments := []api.PendingEnrollment{}

	for _, e := range p.enrollments {
		if !e.Status.Testable() {
			continue
		}

		pending := api.PendingEnrollment{
			ID:              e.ID,
			StudentID:       e.StudentID,
			DocumentSummary: p.documentSummary(e.StudentID),
		}

		if student, ok := p.accountByID(e.StudentID); ok {
			pending.StudentName = strings.TrimSpace(student.FirstName + " " + student.LastName)
			pending.StudentEmail = student.Email
		}

		enrollments = append(enrollments, pending)
	}

	writeJSON(w, r, http.StatusOK, api.PendingEnrollmentList{
		Enrollments: enrollments,
	})
}

func (p *Platform) studentDetails(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "student_id")

	p.lock.Lock()
	defer p.lock.Unlock()

	student, ok := p.accountByID(studentID)
	if !ok || student.Role != api.RoleStudent {
		writeError(w, r, http.StatusNotFound, "Student not found")
		return
	}

	enrollment, ok := p.latestEnrollment(studentID)
	if !ok {
		writeError(w, r, http.StatusNotFound, "Enrollment not found")
		return
	}

	writeJSON(w, r, http.StatusOK, api.StudentDetails{
		Student:    student.User,
		Enrollment: *enrollment,
	})
}

func (p *Platform) studentDocuments(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "student_id")

	p.lock.Lock()
	defer p.lock.Unlock()

	if _, ok := p.accountByID(studentID); !ok {
		writeError(w, r, http.StatusNotFound, "Student not found")
		return
	}

	documents := p.documentsOf(studentID)

	for _, documentType := range api.RequiredDocumentTypes() {
		if !slices.ContainsFunc(documents, func(d api.Document) bool { return d.DocumentType == documentType }) {
			documents = append(documents, api.Document{
				StudentID:    studentID,
				DocumentType: documentType,
				Status:       api.DocumentNotUploaded,
			})
		}
	}

	writeJSON(w, r, http.StatusOK, api.DocumentList{
		Documents:         documents,
		RequiredDocuments: api.RequiredDocumentTypes(),
	})
}

func (p *Platform) acceptEnrollment(w http.ResponseWriter, r *http.Request) {
	p.lock.Lock()
	defer p.lock.Unlock()

	enrollment, ok := p.enrollment(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, r, http.StatusNotFound, "Enrollment not found")
		return
	}

	if enrollment.Status != api.StatusPendingApproval {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("Enrollment is %s, documents must be complete first", enrollment.Status))
		return
	}

	enrollment.Status = api.StatusApproved

	p.notify(enrollment.StudentID, "enrollment_accepted", "Enrollment accepted", "Your enrollment has been accepted")

	writeJSON(w, r, http.StatusOK, map[string]string{"message": "Student accepted successfully"})
}

func (p *Platform) refuseEnrollment(w http.ResponseWriter, r *http.Request) {
	reason, ok := formReason(w, r)
	if !ok {
		return
	}

	p.lock.Lock()
	defer p.lock.Unlock()

	enrollment, ok := p.enrollment(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, r, http.StatusNotFound, "Enrollment not found")
		return
	}

	if !enrollment.Status.Testable() {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("Enrollment is already %s", enrollment.Status))
		return
	}

	enrollment.Status = api.StatusRejected

	p.notify(enrollment.StudentID, "enrollment_refused", "Enrollment refused", "Your enrollment was refused: "+reason)

	writeJSON(w, r, http.StatusOK, map[string]string{"message": "Student refused"})
}
