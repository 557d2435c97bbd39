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

	"github.com/drivingschool/enrollment-harness/test/api/fake"
)

var _ = Describe("General Smoke Run", func() {
	Context("When the platform is healthy", func() {
		It("should pass every step as a freshly registered student", func() {
			p := startPlatform()
			run := p.general()

			Expect(run.Run(ctx)).To(Succeed())

			recorder := run.Recorder()
			Expect(recorder.Run()).To(Equal(13))
			Expect(recorder.Passed()).To(Equal(13))
			Expect(recorder.Summary()).To(ContainSubstring("Tests passed: 13/13 (100.0%)"))
		})
	})

	Context("When a step fails", func() {
		Describe("Given there are no driving schools", func() {
			It("should record the failure, skip enrollment and carry on", func() {
				p := startPlatform(fake.WithoutSchools())
				run := p.general()

				Expect(run.Run(ctx)).NotTo(Succeed())

				recorder := run.Recorder()
				Expect(recorder.Run()).To(Equal(12))
				Expect(recorder.Failed()).To(HaveLen(1))
				Expect(recorder.Failed()[0].Name).To(Equal("Get driving schools"))
				Expect(stepNames(recorder)).NotTo(ContainElement("Enroll in school"))
				Expect(stepNames(recorder)).To(ContainElement("Get courses"))
			})
		})

		Describe("Given registration fails", func() {
			It("should stop the run", func() {
				p := startPlatform(fake.WithPrefix("v2"))
				run := p.general()

				Expect(run.Run(ctx)).NotTo(Succeed())

				recorder := run.Recorder()
				Expect(stepNames(recorder)).To(Equal([]string{"Health check", "Get states", "Register user"}))
				Expect(recorder.Passed()).To(Equal(1))
				Expect(recorder.Summary()).To(ContainSubstring("Register user [FAILED]"))
			})
		})
	})
})
