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
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/drivingschool/enrollment-harness/test/api"
)

var _ = Describe("Enrollment Review", func() {
	Context("When a manager lists pending enrollments", func() {
		Describe("Given the enhanced listing", func() {
			It("should summarize each student's documents", func() {
				manager, _ := api.LoginAs(client, ctx, config.Manager)

				enrollments, err := manager.ListPendingEnrollments(ctx)
				Expect(err).NotTo(HaveOccurred())

				if len(enrollments) == 0 {
					Skip("no enrollments are pending review")
				}

				enrollment := enrollments[0]
				Expect(enrollment.ID).NotTo(BeEmpty())
				Expect(enrollment.StudentID).NotTo(BeEmpty())

				details, err := manager.GetStudentDetails(ctx, enrollment.StudentID)
				Expect(err).NotTo(HaveOccurred())
				Expect(details.Student.ID).To(Equal(enrollment.StudentID))

				documents, err := manager.GetStudentDocuments(ctx, enrollment.StudentID)
				Expect(err).NotTo(HaveOccurred())

				for _, document := range documents {
					Expect(document.StudentID).To(Or(BeEmpty(), Equal(enrollment.StudentID)))
				}
			})
		})
	})

	Context("When a student enrolls", func() {
		Describe("Given a newly registered student", func() {
			It("should create an enrollment awaiting documents", func() {
				student, _, _ := api.RegisterStudent(client, ctx, config)

				enrollment := api.EnsureEnrollment(student, ctx)
				Expect(enrollment.Status).To(Equal(api.StatusPendingDocuments))

				notifications, err := student.ListNotifications(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(notifications.Notifications).NotTo(BeNil())
			})
		})
	})
})
