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

package api

import (
	"k8s.io/utils/ptr"
)

// Role is the role attached to a platform user.
type Role string

const (
	RoleStudent Role = "student"
	RoleManager Role = "manager"
	RoleTeacher Role = "teacher"
)

// EnrollmentStatus is the externally observed state of an enrollment.
type EnrollmentStatus string

const (
	// StatusPendingDocuments holds until every required document is accepted.
	StatusPendingDocuments EnrollmentStatus = "pending_documents"
	// StatusPendingApproval is entered when the last required document is accepted.
	StatusPendingApproval EnrollmentStatus = "pending_approval"
	StatusApproved        EnrollmentStatus = "approved"
	StatusRejected        EnrollmentStatus = "rejected"
)

// Testable reports whether the document approval workflow can be driven
// from this status.
func (s EnrollmentStatus) Testable() bool {
	return s == StatusPendingDocuments || s == StatusPendingApproval
}

// DocumentType is one of the document kinds a student uploads.
type DocumentType string

const (
	DocumentProfilePhoto         DocumentType = "profile_photo"
	DocumentIDCard               DocumentType = "id_card"
	DocumentMedicalCertificate   DocumentType = "medical_certificate"
	DocumentResidenceCertificate DocumentType = "residence_certificate"
)

// RequiredDocumentTypes returns the documents every student must have
// accepted before the enrollment can proceed, in upload order.
func RequiredDocumentTypes() []DocumentType {
	return []DocumentType{
		DocumentProfilePhoto,
		DocumentIDCard,
		DocumentMedicalCertificate,
		DocumentResidenceCertificate,
	}
}

// DocumentStatus is the review state of an uploaded document.
type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "pending"
	DocumentAccepted DocumentStatus = "accepted"
	DocumentRefused  DocumentStatus = "refused"

	// DocumentNotUploaded marks a required slot with nothing uploaded yet. It
	// only appears in the manager's view of a student's documents.
	DocumentNotUploaded DocumentStatus = "not_uploaded"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type User struct {
	ID        string `json:"id,omitempty"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	User        User   `json:"user"`
}

type StateList struct {
	States []any `json:"states"`
}

type School struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type SchoolList struct {
	Schools []School `json:"schools"`
}

type Enrollment struct {
	ID        string           `json:"id"`
	StudentID string           `json:"student_id,omitempty"`
	SchoolID  string           `json:"school_id,omitempty"`
	Status    EnrollmentStatus `json:"enrollment_status"`
}

type Document struct {
	ID            string         `json:"id"`
	StudentID     string         `json:"student_id,omitempty"`
	DocumentType  DocumentType   `json:"document_type,omitempty"`
	Status        DocumentStatus `json:"status,omitempty"`
	FileName      string         `json:"file_name,omitempty"`
	RefusalReason string         `json:"refusal_reason,omitempty"`
}

type Dashboard struct {
	Enrollments []Enrollment `json:"enrollments"`
	Documents   []Document   `json:"documents,omitempty"`
}

// Enrollment returns the enrollment with the given ID, if present.
func (d *Dashboard) Enrollment(id string) (*Enrollment, bool) {
	for i := range d.Enrollments {
		if d.Enrollments[i].ID == id {
			return &d.Enrollments[i], true
		}
	}

	return nil, false
}

type EnrollmentCreated struct {
	EnrollmentID string `json:"enrollment_id"`
	Message      string `json:"message,omitempty"`
}

type EnrollResponse struct {
	Enrollment Enrollment `json:"enrollment"`
}

type UploadResponse struct {
	Document Document `json:"document"`
}

type DocumentList struct {
	Documents         []Document     `json:"documents"`
	RequiredDocuments []DocumentType `json:"required_documents,omitempty"`
}

type AcceptResponse struct {
	Message           string `json:"message,omitempty"`
	DocumentsComplete *bool  `json:"documents_complete,omitempty"`
}

// Complete reports whether every required document is now accepted.
// A missing flag is treated as false.
func (r *AcceptResponse) Complete() bool {
	return ptr.Deref(r.DocumentsComplete, false)
}

type NotificationList struct {
	Notifications []map[string]any `json:"notifications"`
}

type CourseList struct {
	Courses []map[string]any `json:"courses"`
}

type DocumentSummary struct {
	TotalRequired    int  `json:"total_required"`
	TotalUploaded    int  `json:"total_uploaded"`
	AllUploaded      bool `json:"all_uploaded"`
	ReadyForDecision bool `json:"ready_for_decision"`
}

type PendingEnrollment struct {
	ID              string          `json:"id"`
	StudentID       string          `json:"student_id"`
	StudentName     string          `json:"student_name,omitempty"`
	StudentEmail    string          `json:"student_email,omitempty"`
	DaysPending     int             `json:"days_pending,omitempty"`
	DocumentSummary DocumentSummary `json:"document_summary"`
}

type PendingEnrollmentList struct {
	Enrollments []PendingEnrollment `json:"enrollments"`
}

type StudentDetails struct {
	Student    User       `json:"student"`
	Enrollment Enrollment `json:"enrollment"`
}
