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

//nolint:revive // dot imports standard for Ginkgo
package workflow_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/drivingschool/enrollment-harness/test/api"
	"github.com/drivingschool/enrollment-harness/test/api/fake"
	"github.com/drivingschool/enrollment-harness/test/api/workflow"
)

var _ = Describe("Document Approval Workflow", func() {
	Context("When the platform follows the document lifecycle", func() {
		Describe("Given a student without an enrollment", func() {
			It("should enroll in the first school and pass every step", func() {
				p := startPlatform()
				run := p.documentApproval()

				Expect(run.Run(ctx)).To(Succeed())

				recorder := run.Recorder()
				Expect(recorder.Failed()).To(BeEmpty())
				Expect(recorder.Passed()).To(Equal(recorder.Run()))
				Expect(run.DocumentIDs()).To(HaveLen(len(api.RequiredDocumentTypes())))
				Expect(stepNames(recorder)).To(ContainElements(
					"Login as student",
					"Inspect student token",
					"Create enrollment",
					"Upload residence_certificate",
					"Login as manager",
					"Documents incomplete after 3/4 accepted",
					"Documents complete after last accepted",
					"Check enrollment status (expecting pending_approval)",
					"No pending documents remain",
				))

				student := p.studentClient()
				schools, err := student.ListDrivingSchools(ctx)
				Expect(err).NotTo(HaveOccurred())

				enrollment := api.ExpectEnrollment(student, ctx, run.EnrollmentID())
				Expect(enrollment.SchoolID).To(Equal(schools.Schools[0].ID))
				Expect(enrollment.Status).To(Equal(api.StatusPendingApproval))
			})
		})

		Describe("Given a student already awaiting documents", func() {
			It("should reuse the existing enrollment", func() {
				p := startPlatform(fake.WithStudentEnrollment(api.StatusPendingDocuments))
				run := p.documentApproval()

				Expect(run.Run(ctx)).To(Succeed())
				Expect(stepNames(run.Recorder())).NotTo(ContainElement("Create enrollment"))
			})
		})

		Describe("Given a student whose only enrollment is already approved", func() {
			It("should enroll in a different school", func() {
				p := startPlatform(fake.WithStudentEnrollment(api.StatusApproved))
				run := p.documentApproval()

				Expect(run.Run(ctx)).To(Succeed())

				student := p.studentClient()
				schools, err := student.ListDrivingSchools(ctx)
				Expect(err).NotTo(HaveOccurred())

				enrollment := api.ExpectEnrollment(student, ctx, run.EnrollmentID())
				Expect(enrollment.SchoolID).To(Equal(schools.Schools[1].ID))
			})
		})

		Describe("Given an enrollment already awaiting approval", func() {
			It("should have the manager accept what remains pending", func() {
				p := startPlatform(
					fake.WithStudentEnrollment(api.StatusPendingApproval),
					fake.WithStudentDocuments(api.DocumentAccepted, api.DocumentProfilePhoto, api.DocumentIDCard),
					fake.WithStudentDocuments(api.DocumentPending, api.DocumentMedicalCertificate, api.DocumentResidenceCertificate),
				)
				run := p.documentApproval()

				Expect(run.Run(ctx)).To(Succeed())

				names := stepNames(run.Recorder())
				Expect(names).To(ContainElements("Login as manager", "Documents incomplete after 1/2 accepted", "Documents complete after last accepted"))
				Expect(names).NotTo(ContainElement(ContainSubstring("Upload")))
			})
		})

		Describe("Given the platform issues opaque tokens", func() {
			It("should skip claim inspection", func() {
				p := startPlatform(fake.WithOpaqueTokens())
				run := p.documentApproval()

				Expect(run.Run(ctx)).To(Succeed())
				Expect(stepNames(run.Recorder())).NotTo(ContainElement("Inspect student token"))
			})

			It("should fail when JWTs are expected", func() {
				p := startPlatform(fake.WithOpaqueTokens())
				p.config.ExpectJWT = true
				run := p.documentApproval()

				err := run.Run(ctx)
				Expect(err).To(HaveOccurred())
				Expect(err).To(MatchError(ContainSubstring("Inspect student token")))

				step := lastStep(run.Recorder())
				Expect(step.Name).To(Equal("Inspect student token"))
				Expect(step.Outcome).To(Equal(workflow.OutcomeFailed))
			})
		})
	})

	Context("When the platform misbehaves", func() {
		Describe("Given the enrollment advances on the first acceptance", func() {
			It("should fail the status check after that acceptance", func() {
				p := startPlatform(fake.WithPrematureTransition())
				run := p.documentApproval()

				Expect(run.Run(ctx)).NotTo(Succeed())

				step := lastStep(run.Recorder())
				Expect(step.Name).To(Equal("Check enrollment status (expecting pending_documents)"))
				Expect(step.Outcome).To(Equal(workflow.OutcomeFailed))
				Expect(step.Details).To(ContainSubstring("expected pending_documents"))
				Expect(run.Recorder().Failed()).To(HaveLen(1))
			})
		})

		Describe("Given the enrollment advances once every document is uploaded", func() {
			It("should fail before the manager is involved", func() {
				p := startPlatform(fake.WithUploadTransition())
				run := p.documentApproval()

				Expect(run.Run(ctx)).NotTo(Succeed())

				Expect(lastStep(run.Recorder()).Name).To(Equal("Check enrollment status (expecting pending_documents)"))
				Expect(stepNames(run.Recorder())).NotTo(ContainElement("Login as manager"))
			})
		})

		Describe("Given accept responses omit the completion flag", func() {
			It("should fail on the last acceptance", func() {
				p := startPlatform(fake.WithoutCompletionFlag())
				run := p.documentApproval()

				Expect(run.Run(ctx)).NotTo(Succeed())
				Expect(lastStep(run.Recorder()).Name).To(Equal("Documents complete after last accepted"))
			})
		})

		Describe("Given accepted documents stay in the pending list", func() {
			It("should fail the final pending check", func() {
				p := startPlatform(fake.WithStickyPending())
				run := p.documentApproval()

				err := run.Run(ctx)
				Expect(err).To(MatchError(ContainSubstring("No pending documents remain")))

				step := lastStep(run.Recorder())
				Expect(step.Name).To(Equal("No pending documents remain"))
				Expect(step.Outcome).To(Equal(workflow.OutcomeFailed))
				Expect(step.Details).To(ContainSubstring("still found 4 pending documents"))
				Expect(run.Recorder().Failed()).To(HaveLen(1))
			})
		})

		Describe("Given the documents are reported complete on the first acceptance", func() {
			It("should fail the incomplete check after that acceptance", func() {
				p := startPlatform(fake.WithEarlyCompletion())
				run := p.documentApproval()

				Expect(run.Run(ctx)).NotTo(Succeed())

				step := lastStep(run.Recorder())
				Expect(step.Name).To(Equal("Documents incomplete after 1/4 accepted"))
				Expect(step.Details).To(ContainSubstring("documents marked as complete after accepting 1/4 documents"))
			})
		})

		Describe("Given an enrollment awaiting approval reported complete too early", func() {
			It("should fail the manager review on the first acceptance", func() {
				p := startPlatform(
					fake.WithStudentEnrollment(api.StatusPendingApproval),
					fake.WithStudentDocuments(api.DocumentAccepted, api.DocumentProfilePhoto, api.DocumentIDCard),
					fake.WithStudentDocuments(api.DocumentPending, api.DocumentMedicalCertificate, api.DocumentResidenceCertificate),
					fake.WithEarlyCompletion(),
				)
				run := p.documentApproval()

				Expect(run.Run(ctx)).NotTo(Succeed())

				step := lastStep(run.Recorder())
				Expect(step.Name).To(Equal("Documents incomplete after 1/2 accepted"))
				Expect(step.Outcome).To(Equal(workflow.OutcomeFailed))
			})
		})

		Describe("Given an enrollment awaiting approval without completion flags", func() {
			It("should fail the manager review on the last acceptance", func() {
				p := startPlatform(
					fake.WithStudentEnrollment(api.StatusPendingApproval),
					fake.WithStudentDocuments(api.DocumentAccepted, api.DocumentProfilePhoto, api.DocumentIDCard),
					fake.WithStudentDocuments(api.DocumentPending, api.DocumentMedicalCertificate, api.DocumentResidenceCertificate),
					fake.WithoutCompletionFlag(),
				)
				run := p.documentApproval()

				Expect(run.Run(ctx)).NotTo(Succeed())
				Expect(stepNames(run.Recorder())).To(ContainElement("Documents incomplete after 1/2 accepted"))
				Expect(lastStep(run.Recorder()).Name).To(Equal("Documents complete after last accepted"))
			})
		})

		Describe("Given the manager credentials are wrong", func() {
			It("should abort at the manager login", func() {
				p := startPlatform()
				p.config.Manager.Password = "wrong"
				run := p.documentApproval()

				err := run.Run(ctx)
				Expect(err).To(MatchError(ContainSubstring("401")))

				step := lastStep(run.Recorder())
				Expect(step.Name).To(Equal("Login as manager"))
				Expect(step.Details).To(ContainSubstring("trace ID"))
			})
		})

		Describe("Given the platform is unreachable", func() {
			It("should report the login as an error", func() {
				p := startPlatform()
				p.config.BaseURL = "http://127.0.0.1:1"
				run := p.documentApproval()

				Expect(run.Run(ctx)).NotTo(Succeed())
				Expect(run.Recorder().Results()).To(HaveLen(1))
				Expect(lastStep(run.Recorder()).Outcome).To(Equal(workflow.OutcomeError))
			})
		})
	})
})
