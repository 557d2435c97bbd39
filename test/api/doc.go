/*
Copyright 2024-2025 the Unikorn Authors.
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

// Package api provides black-box test utilities for the driving school
// enrollment platform.
//
// # Separate Client Implementation
//
// The platform publishes no client library, the APIClient here is written
// against the routes as they are observed. The embedded openapi.yaml records
// the response shapes the harness depends on, and every successful response
// is validated against it when VALIDATE_RESPONSES is set. A platform change
// that breaks the harness therefore shows up as a contract violation naming
// the route, rather than as a confusing assertion failure further along.
//
// # Test-Specific Features
//
// The client includes features tailored for integration testing:
//   - W3C trace context propagation for request correlation
//   - Detailed error logging with trace IDs for debugging
//   - One client per role, each holding its own bearer token
//   - Typed errors for status mismatches and missing response fields
//   - Direct access to HTTP status codes and response bodies
package api
