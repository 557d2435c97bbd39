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
)

var _ = Describe("Platform Reference Data", func() {
	Context("When checking platform health", func() {
		Describe("Given a running platform", func() {
			It("should report healthy outside the API prefix", func() {
				Expect(client.Health(ctx)).To(Succeed())
			})
		})
	})

	Context("When listing reference data", func() {
		Describe("Given an anonymous caller", func() {
			It("should return the list of states", func() {
				states, err := client.ListStates(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(states.States).NotTo(BeEmpty())
			})

			It("should return the driving schools", func() {
				schools, err := client.ListDrivingSchools(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(schools.Schools).NotTo(BeEmpty())

				for _, school := range schools.Schools {
					Expect(school.ID).NotTo(BeEmpty())
				}
			})
		})
	})
})
