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
	"net/url"
	"strings"

	"github.com/oapi-codegen/runtime"
)

// Endpoints contains all API endpoint patterns.
//
// The platform has been deployed both with and without an "api/" route
// prefix, so every path except the health check is built relative to it.
type Endpoints struct {
	prefix string
}

// NewEndpoints creates a new Endpoints instance for the given route prefix,
// e.g. "api" or "" when the base URL already points at the API root.
func NewEndpoints(prefix string) *Endpoints {
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix = "/" + prefix
	}

	return &Endpoints{
		prefix: prefix,
	}
}

// Prefix returns the normalized route prefix, with a leading slash when set.
func (e *Endpoints) Prefix() string {
	return e.prefix
}

// Route strips the prefix from a path built by this instance, returning the
// route as documented in the API contract.
func (e *Endpoints) Route(path string) string {
	if path == e.HealthCheck() {
		return path
	}

	return strings.TrimPrefix(path, e.prefix)
}

func (e *Endpoints) path(route string) string {
	return e.prefix + route
}

// pathParam encodes a single path parameter using simple style, as the
// generated clients do.
func pathParam(name, value string) string {
	escaped, err := runtime.StyleParamWithLocation("simple", false, name, runtime.ParamLocationPath, value)
	if err != nil {
		return url.PathEscape(value)
	}

	return escaped
}

// Health and reference data endpoints.
func (e *Endpoints) HealthCheck() string {
	return "/health"
}

func (e *Endpoints) ListStates() string {
	return e.path("/states")
}

// Authentication endpoints.
func (e *Endpoints) Register() string {
	return e.path("/auth/register")
}

func (e *Endpoints) Login() string {
	return e.path("/auth/login")
}

// Student endpoints.
func (e *Endpoints) ListDrivingSchools() string {
	return e.path("/driving-schools")
}

func (e *Endpoints) Dashboard() string {
	return e.path("/dashboard")
}

func (e *Endpoints) CreateEnrollment() string {
	return e.path("/enrollments")
}

// Enroll is the older enrollment route still served by some deployments.
func (e *Endpoints) Enroll() string {
	return e.path("/enroll")
}

func (e *Endpoints) UploadDocument() string {
	return e.path("/documents/upload")
}

func (e *Endpoints) ListDocuments() string {
	return e.path("/documents")
}

func (e *Endpoints) ListNotifications() string {
	return e.path("/notifications")
}

func (e *Endpoints) ListCourses() string {
	return e.path("/courses")
}

// Document review endpoints.
func (e *Endpoints) ListPendingDocuments() string {
	return e.path("/managers/pending-documents")
}

func (e *Endpoints) AcceptDocument(documentID string) string {
	return e.path("/documents/accept/" + pathParam("id", documentID))
}

func (e *Endpoints) RefuseDocument(documentID string) string {
	return e.path("/documents/refuse/" + pathParam("id", documentID))
}

// Enrollment review endpoints.
func (e *Endpoints) ListPendingEnrollments() string {
	return e.path("/manager/pending-enrollments-enhanced")
}

func (e *Endpoints) GetStudentDetails(studentID string) string {
	return e.path("/manager/student-details/" + pathParam("student_id", studentID))
}

func (e *Endpoints) GetStudentDocuments(studentID string) string {
	return e.path("/manager/student-documents/" + pathParam("student_id", studentID))
}

func (e *Endpoints) AcceptEnrollment(enrollmentID string) string {
	return e.path("/manager/enrollments/" + pathParam("id", enrollmentID) + "/accept")
}

func (e *Endpoints) RefuseEnrollment(enrollmentID string) string {
	return e.path("/manager/enrollments/" + pathParam("id", enrollmentID) + "/refuse")
}
