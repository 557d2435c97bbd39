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

//go:generate mockgen -source=interfaces.go -destination=mock/interfaces.go -package=mock

package workflow

import (
	"context"

	"github.com/drivingschool/enrollment-harness/test/api"
)

// Client is the subset of the platform API the workflows drive. One client
// is held per role, each carrying that role's bearer token.
type Client interface {
	SetAuthToken(token string)
	Health(ctx context.Context) error
	ListStates(ctx context.Context) (*api.StateList, error)
	Register(ctx context.Context, registration *api.Registration) (*api.AuthResponse, error)
	Login(ctx context.Context, credentials api.Credentials) (*api.AuthResponse, error)
	ListDrivingSchools(ctx context.Context) (*api.SchoolList, error)
	GetDashboard(ctx context.Context) (*api.Dashboard, error)
	CreateEnrollment(ctx context.Context, schoolID string) (*api.EnrollmentCreated, error)
	Enroll(ctx context.Context, schoolID string) (*api.EnrollResponse, error)
	UploadDocument(ctx context.Context, documentType api.DocumentType, file api.FileFixture) (*api.Document, error)
	ListDocuments(ctx context.Context) (*api.DocumentList, error)
	ListNotifications(ctx context.Context) (*api.NotificationList, error)
	ListCourses(ctx context.Context, expectedStatus int) (*api.CourseList, error)
	ListPendingDocuments(ctx context.Context) ([]api.Document, error)
	AcceptDocument(ctx context.Context, documentID string) (*api.AcceptResponse, error)
}

// Ensure the HTTP client satisfies the workflow's needs.
var _ Client = (*api.APIClient)(nil)
