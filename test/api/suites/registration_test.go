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

//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	"errors"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/drivingschool/enrollment-harness/test/api"
)

var _ = Describe("Student Registration", func() {
	Context("When registering a new student", func() {
		Describe("Given a complete registration with a profile photo", func() {
			It("should return a bearer token for the new account", func() {
				student, registration, auth := api.RegisterStudent(client, ctx, config)

				Expect(auth.User.Email).To(Equal(registration.Email))

				dashboard, err := student.GetDashboard(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(dashboard.Enrollments).To(BeEmpty())
			})

			It("should reject a second registration with the same email", func() {
				registration := api.NewRegistration(config.RegistrationState).Build()

				_, err := client.Register(ctx, registration)
				Expect(err).NotTo(HaveOccurred())

				_, err = client.Register(ctx, registration)
				Expect(err).To(MatchError(api.ErrUnexpectedStatus))
			})
		})

		Describe("Given a registration without a profile photo", func() {
			It("should reject the registration", func() {
				_, err := client.Register(ctx, api.NewRegistration(config.RegistrationState).WithoutProfilePhoto().Build())
				Expect(err).To(MatchError(api.ErrUnexpectedStatus))
			})
		})
	})

	Context("When logging in", func() {
		Describe("Given the seeded student account", func() {
			It("should issue a bearer token with the student role", func() {
				_, auth := api.LoginAs(client, ctx, config.Student)
				Expect(auth.User.Role).To(Equal(api.RoleStudent))
			})
		})

		Describe("Given a wrong password", func() {
			It("should be rejected with 401", func() {
				_, err := client.Login(ctx, api.Credentials{Email: config.Student.Email, Password: "not-the-password"})

				var statusErr *api.StatusError
				Expect(errors.As(err, &statusErr)).To(BeTrue())
				Expect(statusErr.Actual).To(Equal(http.StatusUnauthorized))
			})
		})
	})
})
