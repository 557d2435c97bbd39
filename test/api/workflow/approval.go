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

package workflow

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/spjmurray/go-util/pkg/set"

	"github.com/drivingschool/enrollment-harness/test/api"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// Options configure a workflow run.
type Options struct {
	Student           api.Credentials
	Manager           api.Credentials
	RegistrationState string
	// ExpectJWT fails the run when a bearer token cannot be decoded.
	ExpectJWT bool
	// Now defaults to time.Now.
	Now func() time.Time
}

// OptionsFromConfig derives run options from the harness configuration.
func OptionsFromConfig(config *api.TestConfig) Options {
	return Options{
		Student:           config.Student,
		Manager:           config.Manager,
		RegistrationState: config.RegistrationState,
		ExpectJWT:         config.ExpectJWT,
	}
}

func (o *Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}

	return time.Now()
}

// DocumentApproval walks the enrollment document lifecycle as a student and
// a manager, asserting the enrollment only leaves pending_documents once the
// last required document is accepted.
type DocumentApproval struct {
	student  Client
	manager  Client
	options  Options
	recorder *Recorder

	// enrollmentID is the enrollment under test.
	enrollmentID string
	// documentIDs are the uploaded documents in upload order. The last entry
	// is the one whose acceptance completes the set.
	documentIDs []string
}

func NewDocumentApproval(student, manager Client, options Options) *DocumentApproval {
	return &DocumentApproval{
		student:  student,
		manager:  manager,
		options:  options,
		recorder: NewRecorder(),
	}
}

func (w *DocumentApproval) Recorder() *Recorder {
	return w.recorder
}

func (w *DocumentApproval) EnrollmentID() string {
	return w.enrollmentID
}

func (w *DocumentApproval) DocumentIDs() []string {
	return w.documentIDs
}

// Run executes the workflow. Any failed step aborts the remaining steps, the
// returned error aggregates every step that did not pass.
func (w *DocumentApproval) Run(ctx context.Context) error {
	log := log.FromContext(ctx)

	err := w.run(ctx)
	if err != nil {
		log.Info("document approval run aborted", "error", err.Error())
	}

	if recorded := w.recorder.Err(); recorded != nil {
		return recorded
	}

	return err
}

func (w *DocumentApproval) run(ctx context.Context) error {
	if err := authenticate(ctx, w.recorder, w.student, api.RoleStudent, w.options); err != nil {
		return err
	}

	if err := w.ensureEnrollment(ctx); err != nil {
		return err
	}

	current, err := w.currentEnrollment(ctx, "Get current enrollment status")
	if err != nil {
		return err
	}

	log.FromContext(ctx).Info("current enrollment status", "enrollmentID", w.enrollmentID, "status", current.Status)

	switch current.Status {
	case api.StatusPendingDocuments:
		return w.runDocumentFlow(ctx)
	case api.StatusPendingApproval:
		return w.runManagerReview(ctx, current)
	default:
		return w.recorder.Check(ctx, "Enrollment status is testable", false, "enrollment %s is %s, which is not suitable for testing", w.enrollmentID, current.Status)
	}
}

// authenticate logs in and hands the bearer token to the client.
func authenticate(ctx context.Context, recorder *Recorder, client Client, role api.Role, options Options) error {
	credentials := options.Student
	if role == api.RoleManager {
		credentials = options.Manager
	}

	var token string

	err := recorder.Step(ctx, fmt.Sprintf("Login as %s", role), func(ctx context.Context) error {
		auth, err := client.Login(ctx, credentials)
		if err != nil {
			return err
		}

		if auth.AccessToken == "" {
			return fmt.Errorf("%w \"access_token\" in login response", api.ErrMissingField)
		}

		token = auth.AccessToken

		return nil
	})
	if err != nil {
		return err
	}

	client.SetAuthToken(token)

	return inspectToken(ctx, recorder, token, role, options)
}

// inspectToken checks JWT claims where the platform issues JWTs. Opaque
// tokens are accepted unless JWTs are expected.
func inspectToken(ctx context.Context, recorder *Recorder, token string, role api.Role, options Options) error {
	claims, err := api.InspectToken(token)
	if errors.Is(err, api.ErrNotJWT) && !options.ExpectJWT {
		log.FromContext(ctx).V(1).Info("bearer token is opaque, skipping claim checks", "role", role)
		return nil
	}

	return recorder.Step(ctx, fmt.Sprintf("Inspect %s token", role), func(context.Context) error {
		if err != nil {
			return err
		}

		if claims.Expired(options.now()) {
			return fmt.Errorf("%w: %s token expired at %s", ErrAssertion, role, claims.ExpiresAt)
		}

		if claims.Role != "" && claims.Role != role {
			return fmt.Errorf("%w: token role is %s, expected %s", ErrAssertion, claims.Role, role)
		}

		return nil
	})
}

// ensureEnrollment finds an enrollment in a testable status, creating one if
// the student has none, or only unusable ones.
func (w *DocumentApproval) ensureEnrollment(ctx context.Context) error {
	var dashboard *api.Dashboard

	err := w.recorder.Step(ctx, "Get student dashboard", func(ctx context.Context) error {
		var err error

		dashboard, err = w.student.GetDashboard(ctx)

		return err
	})
	if err != nil {
		return err
	}

	if enrollment, ok := api.SelectTestableEnrollment(dashboard.Enrollments); ok {
		log.FromContext(ctx).Info("using existing enrollment", "enrollmentID", enrollment.ID, "status", enrollment.Status)

		w.enrollmentID = enrollment.ID

		return nil
	}

	return w.createEnrollment(ctx, len(dashboard.Enrollments) > 0)
}

func (w *DocumentApproval) createEnrollment(ctx context.Context, differentSchool bool) error {
	var school *api.School

	err := w.recorder.Step(ctx, "Get available schools", func(ctx context.Context) error {
		schools, err := w.student.ListDrivingSchools(ctx)
		if err != nil {
			return err
		}

		school, err = api.ChooseSchool(schools.Schools, differentSchool)

		return err
	})
	if err != nil {
		return err
	}

	return w.recorder.Step(ctx, "Create enrollment", func(ctx context.Context) error {
		created, err := w.student.CreateEnrollment(ctx, school.ID)
		if err != nil {
			return err
		}

		log.FromContext(ctx).Info("created enrollment", "enrollmentID", created.EnrollmentID, "schoolID", school.ID)

		w.enrollmentID = created.EnrollmentID

		return nil
	})
}

// currentEnrollment re-reads the dashboard and returns the tracked enrollment.
func (w *DocumentApproval) currentEnrollment(ctx context.Context, name string) (*api.Enrollment, error) {
	var enrollment *api.Enrollment

	err := w.recorder.Step(ctx, name, func(ctx context.Context) error {
		dashboard, err := w.student.GetDashboard(ctx)
		if err != nil {
			return err
		}

		found, ok := dashboard.Enrollment(w.enrollmentID)
		if !ok {
			return fmt.Errorf("%w: enrollment %s not found on the dashboard", ErrAssertion, w.enrollmentID)
		}

		enrollment = found

		return nil
	})

	return enrollment, err
}

// expectStatus is the core verification primitive, run after every mutation.
func (w *DocumentApproval) expectStatus(ctx context.Context, expected api.EnrollmentStatus) error {
	return w.recorder.Step(ctx, fmt.Sprintf("Check enrollment status (expecting %s)", expected), func(ctx context.Context) error {
		dashboard, err := w.student.GetDashboard(ctx)
		if err != nil {
			return err
		}

		enrollment, ok := dashboard.Enrollment(w.enrollmentID)
		if !ok {
			return fmt.Errorf("%w: enrollment %s not found on the dashboard", ErrAssertion, w.enrollmentID)
		}

		if enrollment.Status != expected {
			return fmt.Errorf("%w: enrollment %s is %s, expected %s", ErrAssertion, w.enrollmentID, enrollment.Status, expected)
		}

		return nil
	})
}

// runDocumentFlow uploads every required document then has the manager
// accept them one at a time, checking the status after each mutation.
func (w *DocumentApproval) runDocumentFlow(ctx context.Context) error {
	required, err := w.requiredDocuments(ctx)
	if err != nil {
		return err
	}

	for _, documentType := range required {
		if err := w.upload(ctx, documentType); err != nil {
			return err
		}

		if err := w.expectStatus(ctx, api.StatusPendingDocuments); err != nil {
			return err
		}
	}

	if err := w.recorder.Check(ctx, "Uploaded document IDs are distinct", distinct(w.documentIDs), "upload returned duplicate IDs %v", w.documentIDs); err != nil {
		return err
	}

	if err := authenticate(ctx, w.recorder, w.manager, api.RoleManager, w.options); err != nil {
		return err
	}

	pending, err := w.pendingDocuments(ctx)
	if err != nil {
		return err
	}

	if err := w.recorder.Check(ctx, "Manager sees pending documents", len(pending) > 0, "no pending documents found for manager"); err != nil {
		return err
	}

	total := len(w.documentIDs)

	for i, documentID := range w.documentIDs[:total-1] {
		complete, err := w.accept(ctx, documentID)
		if err != nil {
			return err
		}

		if err := w.recorder.Check(ctx, fmt.Sprintf("Documents incomplete after %d/%d accepted", i+1, total), !complete, "documents marked as complete after accepting %d/%d documents", i+1, total); err != nil {
			return err
		}

		if err := w.expectStatus(ctx, api.StatusPendingDocuments); err != nil {
			return err
		}
	}

	complete, err := w.accept(ctx, w.documentIDs[total-1])
	if err != nil {
		return err
	}

	if err := w.recorder.Check(ctx, "Documents complete after last accepted", complete, "documents not marked as complete after accepting all %d documents", total); err != nil {
		return err
	}

	if err := w.expectStatus(ctx, api.StatusPendingApproval); err != nil {
		return err
	}

	return w.expectNoneStillPending(ctx)
}

func (w *DocumentApproval) requiredDocuments(ctx context.Context) ([]api.DocumentType, error) {
	var required []api.DocumentType

	err := w.recorder.Step(ctx, "Get student documents", func(ctx context.Context) error {
		documents, err := w.student.ListDocuments(ctx)
		if err != nil {
			return err
		}

		if len(documents.RequiredDocuments) == 0 {
			return fmt.Errorf("%w \"required_documents\" in documents response", api.ErrMissingField)
		}

		required = documents.RequiredDocuments

		return nil
	})

	return required, err
}

func (w *DocumentApproval) upload(ctx context.Context, documentType api.DocumentType) error {
	return w.recorder.Step(ctx, fmt.Sprintf("Upload %s", documentType), func(ctx context.Context) error {
		document, err := w.student.UploadDocument(ctx, documentType, api.DocumentFixture(documentType))
		if err != nil {
			return err
		}

		log.FromContext(ctx).Info("uploaded document", "documentType", documentType, "documentID", document.ID)

		w.documentIDs = append(w.documentIDs, document.ID)

		return nil
	})
}

func (w *DocumentApproval) pendingDocuments(ctx context.Context) ([]api.Document, error) {
	var pending []api.Document

	err := w.recorder.Step(ctx, "Get pending documents for manager", func(ctx context.Context) error {
		var err error

		pending, err = w.manager.ListPendingDocuments(ctx)

		return err
	})

	return pending, err
}

func (w *DocumentApproval) accept(ctx context.Context, documentID string) (bool, error) {
	var complete bool

	err := w.recorder.Step(ctx, fmt.Sprintf("Accept document %s", documentID), func(ctx context.Context) error {
		response, err := w.manager.AcceptDocument(ctx, documentID)
		if err != nil {
			return err
		}

		complete = response.Complete()

		log.FromContext(ctx).Info("accepted document", "documentID", documentID, "documentsComplete", complete)

		return nil
	})

	return complete, err
}

// expectNoneStillPending checks the manager's pending list no longer holds
// any document uploaded by this run.
func (w *DocumentApproval) expectNoneStillPending(ctx context.Context) error {
	pending, err := w.pendingDocuments(ctx)
	if err != nil {
		return err
	}

	leftover := members(set.New[string](api.DocumentIDs(pending)...).Intersection(set.New[string](w.documentIDs...)))

	return w.recorder.Check(ctx, "No pending documents remain", len(leftover) == 0, "still found %d pending documents after accepting all: %v", len(leftover), leftover)
}

// runManagerReview handles an enrollment already awaiting approval: the
// manager accepts whatever this student still has pending, and only the
// final acceptance may report the documents as complete.
func (w *DocumentApproval) runManagerReview(ctx context.Context, current *api.Enrollment) error {
	if err := authenticate(ctx, w.recorder, w.manager, api.RoleManager, w.options); err != nil {
		return err
	}

	err := w.recorder.Step(ctx, "Get student documents", func(ctx context.Context) error {
		_, err := w.student.ListDocuments(ctx)
		return err
	})
	if err != nil {
		return err
	}

	pending, err := w.pendingDocuments(ctx)
	if err != nil {
		return err
	}

	owned := api.DocumentsOwnedBy(pending, current.StudentID)

	log.FromContext(ctx).Info("pending documents for student", "studentID", current.StudentID, "count", len(owned))

	for i := range owned {
		complete, err := w.accept(ctx, owned[i].ID)
		if err != nil {
			return err
		}

		last := i == len(owned)-1

		if last {
			if err := w.recorder.Check(ctx, "Documents complete after last accepted", complete, "documents not marked as complete after accepting all %d documents", len(owned)); err != nil {
				return err
			}

			continue
		}

		if err := w.recorder.Check(ctx, fmt.Sprintf("Documents incomplete after %d/%d accepted", i+1, len(owned)), !complete, "documents marked as complete after accepting %d/%d documents", i+1, len(owned)); err != nil {
			return err
		}
	}

	return nil
}

func distinct(ids []string) bool {
	return len(members(set.New[string](ids...))) == len(ids)
}

// members returns the set's contents sorted, for stable reporting.
func members(s set.Set[string]) []string {
	var out []string

	for member := range s.All() {
		out = append(out, member)
	}

	slices.Sort(out)

	return out
}
