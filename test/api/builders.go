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

package api

import (
	"fmt"

	"k8s.io/apimachinery/pkg/util/rand"
)

const (
	// DefaultRegistrationPassword is used for every generated account.
	DefaultRegistrationPassword = "Test@123456"
)

func generateRandomName(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, rand.String(8))
}

// GenerateTestEmail returns a unique address so registrations never collide.
func GenerateTestEmail() string {
	return generateRandomName("test_user") + "@example.com"
}

// Registration is the multipart payload for a new student account.
type Registration struct {
	Email        string
	Password     string
	FirstName    string
	LastName     string
	Phone        string
	Address      string
	DateOfBirth  string
	Gender       string
	State        string
	ProfilePhoto FileFixture
}

// Credentials returns the login for the registered account.
func (r *Registration) Credentials() Credentials {
	return Credentials{
		Email:    r.Email,
		Password: r.Password,
	}
}

// Form renders the registration as multipart form data.
func (r *Registration) Form() *MultipartForm {
	form := NewMultipartForm().
		Field("email", r.Email).
		Field("password", r.Password).
		Field("first_name", r.FirstName).
		Field("last_name", r.LastName).
		Field("phone", r.Phone).
		Field("address", r.Address).
		Field("date_of_birth", r.DateOfBirth).
		Field("gender", r.Gender).
		Field("state", r.State)

	if r.ProfilePhoto.FileName != "" {
		form.File("profile_photo", r.ProfilePhoto)
	}

	return form
}

// RegistrationBuilder builds registration payloads for testing.
type RegistrationBuilder struct {
	registration Registration
}

// NewRegistration creates a new registration builder with a random email,
// residing in the given state.
func NewRegistration(state string) *RegistrationBuilder {
	return &RegistrationBuilder{
		registration: Registration{
			Email:        GenerateTestEmail(),
			Password:     DefaultRegistrationPassword,
			FirstName:    "Test",
			LastName:     "User",
			Phone:        "1234567890",
			Address:      "123 Test Street",
			DateOfBirth:  "1990-01-01",
			Gender:       "male",
			State:        state,
			ProfilePhoto: ProfilePhotoFixture(),
		},
	}
}

// WithEmail sets the account email.
func (b *RegistrationBuilder) WithEmail(email string) *RegistrationBuilder {
	b.registration.Email = email
	return b
}

// WithPassword sets the account password.
func (b *RegistrationBuilder) WithPassword(password string) *RegistrationBuilder {
	b.registration.Password = password
	return b
}

// WithState sets the state of residence.
func (b *RegistrationBuilder) WithState(state string) *RegistrationBuilder {
	b.registration.State = state
	return b
}

// WithoutProfilePhoto drops the photo, which the platform requires.
func (b *RegistrationBuilder) WithoutProfilePhoto() *RegistrationBuilder {
	b.registration.ProfilePhoto = FileFixture{}
	return b
}

// Build returns the completed registration.
func (b *RegistrationBuilder) Build() *Registration {
	registration := b.registration
	return &registration
}

// ProfilePhotoFixture is the photo attached to registrations.
func ProfilePhotoFixture() FileFixture {
	return FileFixture{
		FileName:    "test_photo.jpg",
		ContentType: "image/jpeg",
		Content:     []byte("dummy content"),
	}
}

// DocumentFixture is the file uploaded for a required document.
func DocumentFixture(documentType DocumentType) FileFixture {
	return FileFixture{
		FileName:    string(documentType) + ".jpg",
		ContentType: "image/jpeg",
		Content:     []byte("dummy file content for testing documents"),
	}
}

// TextDocumentFixture is the plain text file the smoke run uploads.
func TextDocumentFixture(documentType DocumentType) FileFixture {
	return FileFixture{
		FileName:    "test_" + string(documentType) + ".txt",
		ContentType: "text/plain",
		Content:     []byte("Test document content for " + string(documentType)),
	}
}
