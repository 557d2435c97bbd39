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
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/drivingschool/enrollment-harness/test/api"
)

var _ = Describe("Access Control", func() {
	Context("When calling authenticated routes", func() {
		Describe("Given no bearer token", func() {
			DescribeTable("should be rejected",
				func(path func(*api.Endpoints) string) {
					status, _, err := client.Probe(ctx, http.MethodGet, path(client.Endpoints()))
					Expect(err).NotTo(HaveOccurred())
					Expect(status).To(BeElementOf(http.StatusUnauthorized, http.StatusForbidden))
				},
				Entry("dashboard", (*api.Endpoints).Dashboard),
				Entry("documents", (*api.Endpoints).ListDocuments),
				Entry("notifications", (*api.Endpoints).ListNotifications),
				Entry("pending documents", (*api.Endpoints).ListPendingDocuments),
			)
		})

		Describe("Given a student bearer token", func() {
			It("should forbid manager routes", func() {
				student, _ := api.LoginAs(client, ctx, config.Student)

				status, _, err := student.Probe(ctx, http.MethodGet, client.Endpoints().ListPendingDocuments())
				Expect(err).NotTo(HaveOccurred())
				Expect(status).To(Equal(http.StatusForbidden))
			})
		})
	})

	Context("When listing courses", func() {
		Describe("Given a student", func() {
			It("should return the course list", func() {
				student, _ := api.LoginAs(client, ctx, config.Student)

				courses, err := student.ListCourses(ctx, http.StatusOK)
				Expect(err).NotTo(HaveOccurred())
				Expect(courses.Courses).NotTo(BeNil())
			})
		})

		Describe("Given a manager", func() {
			It("should be forbidden", func() {
				manager, _ := api.LoginAs(client, ctx, config.Manager)

				_, err := manager.ListCourses(ctx, http.StatusForbidden)
				Expect(err).NotTo(HaveOccurred())
			})
		})
	})
})
