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

// Package fake is an in-memory rendition of the driving school platform used
// to exercise the harness without a deployment. Faults can be injected to
// prove the harness notices when the platform misbehaves.
package fake

import (
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/drivingschool/enrollment-harness/test/api"
)

// Default accounts seeded into every platform.
//
//nolint:gochecknoglobals
var (
	StudentCredentials = api.Credentials{Email: "student@test.dz", Password: "student123"}
	ManagerCredentials = api.Credentials{Email: "manager8@auto-ecoleblidacentreschool.dz", Password: "manager123"}
	TeacherCredentials = api.Credentials{Email: "teacher@test.dz", Password: "teacher123"}
)

type account struct {
	api.User
	password string
}

// Platform holds all platform state. It is safe for concurrent use.
type Platform struct {
	lock sync.Mutex

	prefix string
	secret []byte

	// opaqueTokens issues random tokens rather than JWTs.
	opaqueTokens bool
	// prematureTransition moves an enrollment to pending_approval on the
	// first acceptance rather than the last.
	prematureTransition bool
	// uploadTransition moves an enrollment to pending_approval once every
	// required document is uploaded, before any review.
	uploadTransition bool
	// omitCompletionFlag drops documents_complete from accept responses.
	omitCompletionFlag bool
	// earlyCompletion reports documents_complete on every acceptance.
	earlyCompletion bool
	// stickyPending keeps accepted documents in the manager's pending list.
	stickyPending bool

	accounts      map[string]*account
	sessions      map[string]string
	schools       []api.School
	enrollments   []*api.Enrollment
	documents     []*api.Document
	notifications map[string][]map[string]any

	seeds []func(p *Platform)
}

// Option customizes a platform.
type Option func(p *Platform)

// WithPrefix serves every route but health under the given prefix.
func WithPrefix(prefix string) Option {
	return func(p *Platform) {
		p.prefix = api.NewEndpoints(prefix).Prefix()
	}
}

func WithOpaqueTokens() Option {
	return func(p *Platform) {
		p.opaqueTokens = true
	}
}

func WithPrematureTransition() Option {
	return func(p *Platform) {
		p.prematureTransition = true
	}
}

func WithUploadTransition() Option {
	return func(p *Platform) {
		p.uploadTransition = true
	}
}

func WithoutCompletionFlag() Option {
	return func(p *Platform) {
		p.omitCompletionFlag = true
	}
}

func WithEarlyCompletion() Option {
	return func(p *Platform) {
		p.earlyCompletion = true
	}
}

func WithStickyPending() Option {
	return func(p *Platform) {
		p.stickyPending = true
	}
}

// WithStudentEnrollment seeds an enrollment for the default student in the
// first school.
func WithStudentEnrollment(status api.EnrollmentStatus) Option {
	return func(p *Platform) {
		p.seeds = append(p.seeds, func(p *Platform) {
			student := p.accounts[StudentCredentials.Email]

			p.enrollments = append(p.enrollments, &api.Enrollment{
				ID:        uuid.NewString(),
				StudentID: student.ID,
				SchoolID:  p.schools[0].ID,
				Status:    status,
			})
		})
	}
}

// WithStudentDocuments seeds documents for the default student.
func WithStudentDocuments(status api.DocumentStatus, documentTypes ...api.DocumentType) Option {
	return func(p *Platform) {
		p.seeds = append(p.seeds, func(p *Platform) {
			student := p.accounts[StudentCredentials.Email]

			for _, documentType := range documentTypes {
				p.documents = append(p.documents, &api.Document{
					ID:           uuid.NewString(),
					StudentID:    student.ID,
					DocumentType: documentType,
					Status:       status,
					FileName:     string(documentType) + ".jpg",
				})
			}
		})
	}
}

// WithoutSchools removes every driving school.
func WithoutSchools() Option {
	return func(p *Platform) {
		p.schools = nil
	}
}

func New(options ...Option) *Platform {
	p := &Platform{
		prefix:        "/api",
		secret:        []byte(uuid.NewString()),
		accounts:      map[string]*account{},
		sessions:      map[string]string{},
		notifications: map[string][]map[string]any{},
		schools: []api.School{
			{ID: uuid.NewString(), Name: "Auto-Ecole Blida Centre"},
			{ID: uuid.NewString(), Name: "Auto-Ecole Alger Est"},
		},
	}

	p.addAccount(StudentCredentials, api.RoleStudent, "Test", "Student")
	p.addAccount(ManagerCredentials, api.RoleManager, "Test", "Manager")
	p.addAccount(TeacherCredentials, api.RoleTeacher, "Test", "Teacher")

	for _, option := range options {
		option(p)
	}

	for _, seed := range p.seeds {
		seed(p)
	}

	return p
}

// Prefix returns the route prefix the platform serves under.
func (p *Platform) Prefix() string {
	return p.prefix
}

func (p *Platform) addAccount(credentials api.Credentials, role api.Role, firstName, lastName string) *account {
	a := &account{
		User: api.User{
			ID:        uuid.NewString(),
			Email:     credentials.Email,
			Role:      role,
			FirstName: firstName,
			LastName:  lastName,
		},
		password: credentials.Password,
	}

	p.accounts[a.Email] = a

	return a
}

func (p *Platform) accountByID(id string) (*account, bool) {
	for _, a := range p.accounts {
		if a.ID == id {
			return a, true
		}
	}

	return nil, false
}

func (p *Platform) school(id string) (*api.School, bool) {
	for i := range p.schools {
		if p.schools[i].ID == id {
			return &p.schools[i], true
		}
	}

	return nil, false
}

func (p *Platform) enrollment(id string) (*api.Enrollment, bool) {
	for _, e := range p.enrollments {
		if e.ID == id {
			return e, true
		}
	}

	return nil, false
}

func (p *Platform) document(id string) (*api.Document, bool) {
	for _, d := range p.documents {
		if d.ID == id {
			return d, true
		}
	}

	return nil, false
}

func (p *Platform) enrollmentsOf(studentID string) []api.Enrollment {
	out := []api.Enrollment{}

	for _, e := range p.enrollments {
		if e.StudentID == studentID {
			out = append(out, *e)
		}
	}

	return out
}

func (p *Platform) documentsOf(studentID string) []api.Document {
	out := []api.Document{}

	for _, d := range p.documents {
		if d.StudentID == studentID {
			out = append(out, *d)
		}
	}

	return out
}

// latestEnrollment is the student's most recent enrollment.
func (p *Platform) latestEnrollment(studentID string) (*api.Enrollment, bool) {
	for i := len(p.enrollments) - 1; i >= 0; i-- {
		if p.enrollments[i].StudentID == studentID {
			return p.enrollments[i], true
		}
	}

	return nil, false
}

// documentTypesIn returns the required document types the student has a
// document for in any of the given states.
func (p *Platform) documentTypesIn(studentID string, statuses ...api.DocumentStatus) []api.DocumentType {
	var types []api.DocumentType

	for _, d := range p.documents {
		if d.StudentID != studentID || !slices.Contains(statuses, d.Status) {
			continue
		}

		if slices.Contains(api.RequiredDocumentTypes(), d.DocumentType) && !slices.Contains(types, d.DocumentType) {
			types = append(types, d.DocumentType)
		}
	}

	return types
}

func (p *Platform) documentsComplete(studentID string) bool {
	return len(p.documentTypesIn(studentID, api.DocumentAccepted)) == len(api.RequiredDocumentTypes())
}

func (p *Platform) allUploaded(studentID string) bool {
	return len(p.documentTypesIn(studentID, api.DocumentPending, api.DocumentAccepted)) == len(api.RequiredDocumentTypes())
}

// promote moves the student's enrollments awaiting documents on to approval.
func (p *Platform) promote(studentID string) {
	for _, e := range p.enrollments {
		if e.StudentID == studentID && e.Status == api.StatusPendingDocuments {
			e.Status = api.StatusPendingApproval
		}
	}
}

func (p *Platform) notify(userID, notificationType, title, message string) {
	p.notifications[userID] = append(p.notifications[userID], map[string]any{
		"id":      uuid.NewString(),
		"type":    notificationType,
		"title":   title,
		"message": message,
		"is_read": false,
	})
}
