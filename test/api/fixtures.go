/*
Copyright 2024-2025 the Unikorn Authors.
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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"

	"github.com/spjmurray/go-util/pkg/set"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// LoginAs logs in and returns a client carrying the role's bearer token.
func LoginAs(client *APIClient, ctx context.Context, credentials Credentials) (*APIClient, *AuthResponse) {
	auth, err := client.Login(ctx, credentials)
	Expect(err).NotTo(HaveOccurred(), "logging in as %s", credentials.Email)
	Expect(auth.AccessToken).NotTo(BeEmpty())

	GinkgoWriter.Printf("Logged in as %s with role %s\n", auth.User.Email, auth.User.Role)

	return client.WithAuthToken(auth.AccessToken), auth
}

// RegisterStudent registers a fresh student account and returns a client
// authenticated as that student.
func RegisterStudent(client *APIClient, ctx context.Context, config *TestConfig) (*APIClient, *Registration, *AuthResponse) {
	registration := NewRegistration(config.RegistrationState).Build()

	auth, err := client.Register(ctx, registration)
	Expect(err).NotTo(HaveOccurred())
	Expect(auth.AccessToken).NotTo(BeEmpty())
	Expect(auth.User.Role).NotTo(BeEmpty())

	GinkgoWriter.Printf("Registered user %s with role %s\n", registration.Email, auth.User.Role)

	return client.WithAuthToken(auth.AccessToken), registration, auth
}

// EnsureEnrollment returns an enrollment in a testable status, creating one
// when the student has none.
func EnsureEnrollment(student *APIClient, ctx context.Context) *Enrollment {
	dashboard, err := student.GetDashboard(ctx)
	Expect(err).NotTo(HaveOccurred())

	if enrollment, ok := SelectTestableEnrollment(dashboard.Enrollments); ok {
		GinkgoWriter.Printf("Using enrollment %s in status %s\n", enrollment.ID, enrollment.Status)
		return enrollment
	}

	schools, err := student.ListDrivingSchools(ctx)
	Expect(err).NotTo(HaveOccurred())

	school, err := ChooseSchool(schools.Schools, len(dashboard.Enrollments) > 0)
	Expect(err).NotTo(HaveOccurred())

	created, err := student.CreateEnrollment(ctx, school.ID)
	Expect(err).NotTo(HaveOccurred())

	GinkgoWriter.Printf("Created enrollment %s in school %s\n", created.EnrollmentID, school.ID)

	return ExpectEnrollment(student, ctx, created.EnrollmentID)
}

// ExpectEnrollment re-reads the dashboard and returns the tracked enrollment.
func ExpectEnrollment(student *APIClient, ctx context.Context, enrollmentID string) *Enrollment {
	dashboard, err := student.GetDashboard(ctx)
	Expect(err).NotTo(HaveOccurred())

	enrollment, ok := dashboard.Enrollment(enrollmentID)
	Expect(ok).To(BeTrue(), "Expected enrollment %s to be on the dashboard", enrollmentID)

	return enrollment
}

// ExpectEnrollmentStatus verifies the tracked enrollment's current status.
func ExpectEnrollmentStatus(student *APIClient, ctx context.Context, enrollmentID string, expected EnrollmentStatus) {
	enrollment := ExpectEnrollment(student, ctx, enrollmentID)
	Expect(enrollment.Status).To(Equal(expected), "Expected enrollment %s to be %s", enrollmentID, expected)
}

// UploadDocuments uploads one document per type, checking the enrollment
// stays in pending_documents after each, and returns the IDs in upload order.
func UploadDocuments(student *APIClient, ctx context.Context, enrollmentID string, documentTypes []DocumentType) []string {
	ids := make([]string, 0, len(documentTypes))

	for _, documentType := range documentTypes {
		document, err := student.UploadDocument(ctx, documentType, DocumentFixture(documentType))
		Expect(err).NotTo(HaveOccurred())
		Expect(ids).NotTo(ContainElement(document.ID), "Expected document IDs to be distinct")

		GinkgoWriter.Printf("Uploaded %s as %s\n", documentType, document.ID)

		ids = append(ids, document.ID)

		ExpectEnrollmentStatus(student, ctx, enrollmentID, StatusPendingDocuments)
	}

	return ids
}

// ExpectNoPendingDocuments verifies none of the given documents are still
// waiting for review.
func ExpectNoPendingDocuments(manager *APIClient, ctx context.Context, documentIDs []string) {
	pending, err := manager.ListPendingDocuments(ctx)
	Expect(err).NotTo(HaveOccurred())

	leftover := set.New[string](DocumentIDs(pending)...).Intersection(set.New[string](documentIDs...))

	var remaining []string

	for id := range leftover.All() {
		remaining = append(remaining, id)
	}

	Expect(remaining).To(BeEmpty(), "Expected no pending documents after accepting all")
}
