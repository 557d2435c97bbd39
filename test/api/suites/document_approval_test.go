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
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/drivingschool/enrollment-harness/test/api"
)

var _ = Describe("Document Approval", func() {
	Context("When a student completes their enrollment documents", func() {
		Describe("Given an enrollment awaiting documents", func() {
			It("should only move to pending_approval once the last document is accepted", func() {
				student, _ := api.LoginAs(client, ctx, config.Student)

				enrollment := api.EnsureEnrollment(student, ctx)
				if enrollment.Status != api.StatusPendingDocuments {
					Skip(fmt.Sprintf("enrollment %s is %s, document uploads are not testable", enrollment.ID, enrollment.Status))
				}

				By("uploading every required document")

				documents, err := student.ListDocuments(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(documents.RequiredDocuments).NotTo(BeEmpty())

				ids := api.UploadDocuments(student, ctx, enrollment.ID, documents.RequiredDocuments)

				By("reviewing the documents as a manager")

				manager, _ := api.LoginAs(client, ctx, config.Manager)

				pending, err := manager.ListPendingDocuments(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(pending).NotTo(BeEmpty())

				for i, id := range ids[:len(ids)-1] {
					accepted, err := manager.AcceptDocument(ctx, id)
					Expect(err).NotTo(HaveOccurred())
					Expect(accepted.Complete()).To(BeFalse(), "Documents marked complete after %d/%d accepted", i+1, len(ids))

					api.ExpectEnrollmentStatus(student, ctx, enrollment.ID, api.StatusPendingDocuments)
				}

				By("accepting the last document")

				accepted, err := manager.AcceptDocument(ctx, ids[len(ids)-1])
				Expect(err).NotTo(HaveOccurred())
				Expect(accepted.Complete()).To(BeTrue())

				api.ExpectEnrollmentStatus(student, ctx, enrollment.ID, api.StatusPendingApproval)
				api.ExpectNoPendingDocuments(manager, ctx, ids)
			})
		})
	})

	Context("When a manager refuses a document", func() {
		Describe("Given a freshly uploaded document", func() {
			It("should record the refusal reason and keep the enrollment awaiting documents", func() {
				student, _, _ := api.RegisterStudent(client, ctx, config)
				manager, _ := api.LoginAs(client, ctx, config.Manager)

				enrollment := api.EnsureEnrollment(student, ctx)
				Expect(enrollment.Status).To(Equal(api.StatusPendingDocuments))

				uploaded, err := student.UploadDocument(ctx, api.DocumentIDCard, api.DocumentFixture(api.DocumentIDCard))
				Expect(err).NotTo(HaveOccurred())

				refused, err := manager.RefuseDocument(ctx, uploaded.ID, "Image is not readable")
				Expect(err).NotTo(HaveOccurred())
				Expect(refused.Status).To(Equal(api.DocumentRefused))
				Expect(refused.RefusalReason).To(Equal("Image is not readable"))

				documents, err := student.ListDocuments(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(documents.Documents).To(ContainElement(HaveField("ID", uploaded.ID)))

				api.ExpectEnrollmentStatus(student, ctx, enrollment.ID, api.StatusPendingDocuments)
			})

			It("should require a reason", func() {
				student, _, _ := api.RegisterStudent(client, ctx, config)
				manager, _ := api.LoginAs(client, ctx, config.Manager)

				uploaded, err := student.UploadDocument(ctx, api.DocumentIDCard, api.DocumentFixture(api.DocumentIDCard))
				Expect(err).NotTo(HaveOccurred())

				_, err = manager.RefuseDocument(ctx, uploaded.ID, "")
				Expect(err).To(MatchError(api.ErrUnexpectedStatus))
			})
		})
	})
})
