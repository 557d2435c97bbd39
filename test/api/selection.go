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

package api

import (
	"errors"
)

// ErrNoSchools is returned when there is nowhere to enroll.
var ErrNoSchools = errors.New("no driving schools available")

// SelectTestableEnrollment returns the first enrollment the approval workflow
// can be driven from.
func SelectTestableEnrollment(enrollments []Enrollment) (*Enrollment, bool) {
	for i := range enrollments {
		if enrollments[i].Status.Testable() {
			return &enrollments[i], true
		}
	}

	return nil, false
}

// ChooseSchool picks the school for a new enrollment. The first school is
// used unless a different one is wanted, because the student already has an
// unusable enrollment there, and a second school exists.
func ChooseSchool(schools []School, differentSchool bool) (*School, error) {
	if len(schools) == 0 {
		return nil, ErrNoSchools
	}

	if differentSchool && len(schools) > 1 {
		return &schools[1], nil
	}

	return &schools[0], nil
}

// DocumentIDs returns the IDs of the given documents, in order.
func DocumentIDs(documents []Document) []string {
	ids := make([]string, len(documents))

	for i := range documents {
		ids[i] = documents[i].ID
	}

	return ids
}

// DocumentsOwnedBy filters documents down to those uploaded by one student.
func DocumentsOwnedBy(documents []Document, studentID string) []Document {
	var owned []Document

	for i := range documents {
		if documents[i].StudentID == studentID {
			owned = append(owned, documents[i])
		}
	}

	return owned
}
