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
	"fmt"
	"net/http"

	"github.com/drivingschool/enrollment-harness/test/api"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// General is the platform smoke run. It registers a fresh account and
// touches every student facing route. Failures are recorded and the run
// carries on, except for registration which everything else depends on.
type General struct {
	client   Client
	options  Options
	recorder *Recorder

	user     api.User
	schoolID string
}

func NewGeneral(client Client, options Options) *General {
	return &General{
		client:   client,
		options:  options,
		recorder: NewRecorder(),
	}
}

func (g *General) Recorder() *Recorder {
	return g.recorder
}

// step records a step whose failure does not stop the run. The outcome is
// kept by the recorder and reported through Err.
func (g *General) step(ctx context.Context, name string, fn func(ctx context.Context) error) {
	//nolint:errcheck
	g.recorder.Step(ctx, name, fn)
}

// Run executes the smoke run and returns the aggregated failures.
func (g *General) Run(ctx context.Context) error {
	log := log.FromContext(ctx)

	// Reference data needs no account.
	g.step(ctx, "Health check", g.client.Health)

	g.step(ctx, "Get states", func(ctx context.Context) error {
		states, err := g.client.ListStates(ctx)
		if err != nil {
			return err
		}

		log.Info("listed states", "count", len(states.States))

		return nil
	})

	if err := g.register(ctx); err != nil {
		log.Info("registration failed, stopping run")
		return g.recorder.Err()
	}

	g.step(ctx, "Get driving schools", func(ctx context.Context) error {
		schools, err := g.client.ListDrivingSchools(ctx)
		if err != nil {
			return err
		}

		school, err := api.ChooseSchool(schools.Schools, false)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrAssertion, err)
		}

		g.schoolID = school.ID

		return nil
	})

	g.step(ctx, "Get dashboard", func(ctx context.Context) error {
		dashboard, err := g.client.GetDashboard(ctx)
		if err != nil {
			return err
		}

		log.Info("dashboard retrieved", "enrollments", len(dashboard.Enrollments), "documents", len(dashboard.Documents))

		return nil
	})

	if g.schoolID != "" {
		g.step(ctx, "Enroll in school", func(ctx context.Context) error {
			response, err := g.client.Enroll(ctx, g.schoolID)
			if err != nil {
				return err
			}

			log.Info("enrolled in school", "schoolID", g.schoolID, "status", response.Enrollment.Status)

			return nil
		})
	}

	for _, documentType := range api.RequiredDocumentTypes() {
		g.step(ctx, fmt.Sprintf("Upload %s", documentType), func(ctx context.Context) error {
			_, err := g.client.UploadDocument(ctx, documentType, api.TextDocumentFixture(documentType))
			return err
		})
	}

	g.step(ctx, "Get documents", func(ctx context.Context) error {
		documents, err := g.client.ListDocuments(ctx)
		if err != nil {
			return err
		}

		log.Info("listed documents", "count", len(documents.Documents), "required", documents.RequiredDocuments)

		return nil
	})

	g.step(ctx, "Get notifications", func(ctx context.Context) error {
		_, err := g.client.ListNotifications(ctx)
		return err
	})

	g.step(ctx, "Get courses", g.courses)

	return g.recorder.Err()
}

func (g *General) register(ctx context.Context) error {
	registration := api.NewRegistration(g.options.RegistrationState).Build()

	return g.recorder.Step(ctx, "Register user", func(ctx context.Context) error {
		auth, err := g.client.Register(ctx, registration)
		if err != nil {
			return err
		}

		if auth.AccessToken == "" {
			return fmt.Errorf("%w \"access_token\" in registration response", api.ErrMissingField)
		}

		if auth.User.Role == "" {
			return fmt.Errorf("%w \"user.role\" in registration response", api.ErrMissingField)
		}

		g.client.SetAuthToken(auth.AccessToken)
		g.user = auth.User

		log.FromContext(ctx).Info("registered user", "email", registration.Email, "role", auth.User.Role)

		return nil
	})
}

// courses checks the role gate, only students may list courses.
func (g *General) courses(ctx context.Context) error {
	expected := http.StatusForbidden
	if g.user.Role == api.RoleStudent {
		expected = http.StatusOK
	}

	if _, err := g.client.ListCourses(ctx, expected); err != nil {
		return err
	}

	return nil
}
