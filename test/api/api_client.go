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

//nolint:revive // naming conventions acceptable in test code
package api

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/drivingschool/enrollment-harness/pkg/constants"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

var (
	// ErrUnexpectedStatus is wrapped by every StatusError.
	ErrUnexpectedStatus = errors.New("unexpected status code")

	// ErrMissingField is returned when a response lacks a field the step relies on.
	ErrMissingField = errors.New("missing expected field")

	// ErrTransport is returned when no response was received at all.
	ErrTransport = errors.New("http request failed")
)

// StatusError records a status code mismatch along with enough context to
// find the request in the platform's logs.
type StatusError struct {
	Method   string
	Path     string
	Expected int
	Actual   int
	Body     string
	TraceID  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: expected %d, got %d, body: %s (trace ID: %s)", e.Expected, e.Actual, e.Body, e.TraceID)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

// APIClient is the single HTTP helper shared by every role. Each role gets
// its own copy carrying that role's bearer token.
type APIClient struct {
	baseURL   string
	client    *http.Client
	authToken string
	config    *TestConfig
	endpoints *Endpoints
}

func NewAPIClientWithConfig(config *TestConfig) *APIClient {
	return newAPIClientWithConfig(config, config.BaseURL)
}

// common constructor logic.
func newAPIClientWithConfig(config *TestConfig, baseURL string) *APIClient {
	return &APIClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: config.RequestTimeout,
		},
		config:    config,
		endpoints: NewEndpoints(config.APIPrefix),
	}
}

func (c *APIClient) SetAuthToken(token string) {
	c.authToken = token
}

func (c *APIClient) AuthToken() string {
	return c.authToken
}

// WithAuthToken returns a copy of the client that authenticates with the
// given token. The underlying HTTP client is shared.
func (c *APIClient) WithAuthToken(token string) *APIClient {
	clone := *c
	clone.authToken = token

	return &clone
}

func (c *APIClient) Endpoints() *Endpoints {
	return c.endpoints
}

// logError logs a generic error with trace context.
func (c *APIClient) logError(ctx context.Context, method, path string, duration time.Duration, traceParent string, err error, message string) {
	log.FromContext(ctx).Error(err, message, "method", method, "path", path, "duration", duration, "traceID", extractTraceID(traceParent))
}

// logUnexpectedStatus logs an unexpected HTTP status code.
func (c *APIClient) logUnexpectedStatus(ctx context.Context, method, path string, expectedStatus, actualStatus int, body, traceParent string) {
	log.FromContext(ctx).Info("unexpected status", "method", method, "path", path, "expected", expectedStatus, "got", actualStatus, "body", body, "traceID", extractTraceID(traceParent))
}

// generateTraceID creates a new W3C trace ID.
// A fresh trace ID per request lets a failed step be found in the platform logs.
func generateTraceID() string {
	bytes := make([]byte, 16)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// generateSpanID creates a new W3C span ID.
func generateSpanID() string {
	bytes := make([]byte, 8)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// createTraceParent creates a W3C traceparent header value.
func createTraceParent() string {
	return fmt.Sprintf("00-%s-%s-01", generateTraceID(), generateSpanID())
}

// extractTraceID extracts the trace ID from a traceparent header value.
func extractTraceID(traceParent string) string {
	parts := strings.Split(traceParent, "-")
	if len(parts) >= 2 {
		return parts[1]
	}

	return traceParent
}

// doRequest issues a request and checks the status code. An expectedStatus of zero
// accepts any status, leaving interpretation to the caller.
//
//nolint:cyclop // test code complexity is acceptable
func (c *APIClient) doRequest(ctx context.Context, method, path string, body io.Reader, contentType string, expectedStatus int) (*http.Response, []byte, error) {
	fullURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, nil, fmt.Errorf("creating request: %w", err)
	}

	// Add W3C Trace Context headers
	traceParent := createTraceParent()
	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Tracestate", "test-automation=enrollment-harness")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", constants.VersionString())

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logError(ctx, method, path, duration, traceParent, err, "http request failed")
		return nil, nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logError(ctx, method, path, duration, traceParent, err, "reading response body")
		return resp, nil, fmt.Errorf("%w: reading response body: %w", ErrTransport, err)
	}

	logger := log.FromContext(ctx)

	if c.config.LogRequests {
		logger.Info("request", "method", method, "path", path, "status", resp.StatusCode, "duration", duration, "traceID", extractTraceID(traceParent))
	}

	if c.config.LogResponses && len(respBody) > 0 {
		logger.Info("response body", "method", method, "path", path, "body", string(respBody))
	}

	if expectedStatus > 0 && resp.StatusCode != expectedStatus {
		c.logUnexpectedStatus(ctx, method, path, expectedStatus, resp.StatusCode, string(respBody), traceParent)

		return resp, respBody, &StatusError{
			Method:   method,
			Path:     path,
			Expected: expectedStatus,
			Actual:   resp.StatusCode,
			Body:     string(respBody),
			TraceID:  extractTraceID(traceParent),
		}
	}

	if c.config.ValidateResponses && resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if err := c.validateResponse(ctx, method, path, resp, respBody); err != nil {
			return resp, respBody, fmt.Errorf("%w (trace ID: %s)", err, extractTraceID(traceParent))
		}
	}

	return resp, respBody, nil
}

func (c *APIClient) validateResponse(ctx context.Context, method, path string, resp *http.Response, body []byte) error {
	contract, err := DefaultContract()
	if err != nil {
		return err
	}

	return contract.ValidateResponse(ctx, method, c.endpoints.Route(path), resp.StatusCode, resp.Header, body)
}

// decodeResponse checks the named top level fields are present and not null
// before unmarshaling into out, so a missing field fails the step rather
// than silently decoding to a zero value.
func decodeResponse(body []byte, out any, required ...string) error {
	if len(required) > 0 {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(body, &fields); err != nil {
			return fmt.Errorf("unmarshaling response: %w", err)
		}

		for _, field := range required {
			if raw, ok := fields[field]; !ok || string(raw) == "null" {
				return fmt.Errorf("%w %q in response: %s", ErrMissingField, field, string(body))
			}
		}
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshaling response: %w", err)
	}

	return nil
}

func (c *APIClient) get(ctx context.Context, path string, out any, required ...string) error {
	//nolint:bodyclose // response body is closed in doRequest
	_, respBody, err := c.doRequest(ctx, http.MethodGet, path, nil, "", http.StatusOK)
	if err != nil {
		return err
	}

	return decodeResponse(respBody, out, required...)
}

func (c *APIClient) postJSON(ctx context.Context, path string, body, out any, required ...string) error {
	var reader io.Reader

	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}

		reader = bytes.NewReader(bodyBytes)
	}

	//nolint:bodyclose // response body is closed in doRequest
	_, respBody, err := c.doRequest(ctx, http.MethodPost, path, reader, "application/json", http.StatusOK)
	if err != nil {
		return err
	}

	return decodeResponse(respBody, out, required...)
}

func (c *APIClient) postForm(ctx context.Context, path string, form *MultipartForm, out any, required ...string) error {
	body, contentType, err := form.Encode()
	if err != nil {
		return err
	}

	//nolint:bodyclose // response body is closed in doRequest
	_, respBody, err := c.doRequest(ctx, http.MethodPost, path, body, contentType, http.StatusOK)
	if err != nil {
		return err
	}

	return decodeResponse(respBody, out, required...)
}

// Probe issues an unchecked request and returns the status code, for steps
// that assert on rejections.
func (c *APIClient) Probe(ctx context.Context, method, path string) (int, []byte, error) {
	//nolint:bodyclose // response body is closed in doRequest
	resp, respBody, err := c.doRequest(ctx, method, path, nil, "", 0)
	if err != nil {
		return 0, nil, err
	}

	return resp.StatusCode, respBody, nil
}

func (c *APIClient) Health(ctx context.Context) error {
	//nolint:bodyclose // response body is closed in doRequest
	if _, _, err := c.doRequest(ctx, http.MethodGet, c.endpoints.HealthCheck(), nil, "", http.StatusOK); err != nil {
		return fmt.Errorf("checking health: %w", err)
	}

	return nil
}

func (c *APIClient) ListStates(ctx context.Context) (*StateList, error) {
	var result StateList

	if err := c.get(ctx, c.endpoints.ListStates(), &result, "states"); err != nil {
		return nil, fmt.Errorf("listing states: %w", err)
	}

	return &result, nil
}

// Register creates a new student account. The token is not retained, callers
// decide which role client it belongs to.
func (c *APIClient) Register(ctx context.Context, registration *Registration) (*AuthResponse, error) {
	var result AuthResponse

	if err := c.postForm(ctx, c.endpoints.Register(), registration.Form(), &result, "access_token", "user"); err != nil {
		return nil, fmt.Errorf("registering user: %w", err)
	}

	return &result, nil
}

func (c *APIClient) Login(ctx context.Context, credentials Credentials) (*AuthResponse, error) {
	var result AuthResponse

	if err := c.postJSON(ctx, c.endpoints.Login(), credentials, &result, "access_token", "user"); err != nil {
		return nil, fmt.Errorf("logging in as %s: %w", credentials.Email, err)
	}

	return &result, nil
}

func (c *APIClient) ListDrivingSchools(ctx context.Context) (*SchoolList, error) {
	var result SchoolList

	if err := c.get(ctx, c.endpoints.ListDrivingSchools(), &result, "schools"); err != nil {
		return nil, fmt.Errorf("listing driving schools: %w", err)
	}

	return &result, nil
}

func (c *APIClient) GetDashboard(ctx context.Context) (*Dashboard, error) {
	var result Dashboard

	if err := c.get(ctx, c.endpoints.Dashboard(), &result, "enrollments"); err != nil {
		return nil, fmt.Errorf("getting dashboard: %w", err)
	}

	return &result, nil
}

func (c *APIClient) CreateEnrollment(ctx context.Context, schoolID string) (*EnrollmentCreated, error) {
	var result EnrollmentCreated

	body := map[string]string{
		"school_id": schoolID,
	}

	if err := c.postJSON(ctx, c.endpoints.CreateEnrollment(), body, &result, "enrollment_id"); err != nil {
		return nil, fmt.Errorf("creating enrollment: %w", err)
	}

	return &result, nil
}

func (c *APIClient) Enroll(ctx context.Context, schoolID string) (*EnrollResponse, error) {
	var result EnrollResponse

	body := map[string]string{
		"school_id": schoolID,
	}

	if err := c.postJSON(ctx, c.endpoints.Enroll(), body, &result, "enrollment"); err != nil {
		return nil, fmt.Errorf("enrolling in school: %w", err)
	}

	return &result, nil
}

func (c *APIClient) UploadDocument(ctx context.Context, documentType DocumentType, file FileFixture) (*Document, error) {
	var result UploadResponse

	form := NewMultipartForm().
		Field("document_type", string(documentType)).
		File("file", file)

	if err := c.postForm(ctx, c.endpoints.UploadDocument(), form, &result, "document"); err != nil {
		return nil, fmt.Errorf("uploading %s: %w", documentType, err)
	}

	if result.Document.ID == "" {
		return nil, fmt.Errorf("uploading %s: %w \"document.id\"", documentType, ErrMissingField)
	}

	return &result.Document, nil
}

func (c *APIClient) ListDocuments(ctx context.Context) (*DocumentList, error) {
	var result DocumentList

	if err := c.get(ctx, c.endpoints.ListDocuments(), &result, "documents"); err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	return &result, nil
}

func (c *APIClient) ListNotifications(ctx context.Context) (*NotificationList, error) {
	var result NotificationList

	if err := c.get(ctx, c.endpoints.ListNotifications(), &result, "notifications"); err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}

	return &result, nil
}

// ListCourses checks the role gate on courses, only students may list them.
func (c *APIClient) ListCourses(ctx context.Context, expectedStatus int) (*CourseList, error) {
	//nolint:bodyclose // response body is closed in doRequest
	_, respBody, err := c.doRequest(ctx, http.MethodGet, c.endpoints.ListCourses(), nil, "", expectedStatus)
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}

	var result CourseList

	if expectedStatus != http.StatusOK {
		return &result, nil
	}

	if err := decodeResponse(respBody, &result, "courses"); err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}

	return &result, nil
}

func (c *APIClient) ListPendingDocuments(ctx context.Context) ([]Document, error) {
	var result DocumentList

	if err := c.get(ctx, c.endpoints.ListPendingDocuments(), &result, "documents"); err != nil {
		return nil, fmt.Errorf("listing pending documents: %w", err)
	}

	return result.Documents, nil
}

func (c *APIClient) AcceptDocument(ctx context.Context, documentID string) (*AcceptResponse, error) {
	var result AcceptResponse

	if err := c.postJSON(ctx, c.endpoints.AcceptDocument(documentID), nil, &result); err != nil {
		return nil, fmt.Errorf("accepting document %s: %w", documentID, err)
	}

	return &result, nil
}

func (c *APIClient) RefuseDocument(ctx context.Context, documentID, reason string) (*Document, error) {
	var result UploadResponse

	form := NewMultipartForm().Field("reason", reason)

	if err := c.postForm(ctx, c.endpoints.RefuseDocument(documentID), form, &result, "document"); err != nil {
		return nil, fmt.Errorf("refusing document %s: %w", documentID, err)
	}

	return &result.Document, nil
}

func (c *APIClient) ListPendingEnrollments(ctx context.Context) ([]PendingEnrollment, error) {
	var result PendingEnrollmentList

	if err := c.get(ctx, c.endpoints.ListPendingEnrollments(), &result, "enrollments"); err != nil {
		return nil, fmt.Errorf("listing pending enrollments: %w", err)
	}

	return result.Enrollments, nil
}

func (c *APIClient) GetStudentDetails(ctx context.Context, studentID string) (*StudentDetails, error) {
	var result StudentDetails

	if err := c.get(ctx, c.endpoints.GetStudentDetails(studentID), &result, "student", "enrollment"); err != nil {
		return nil, fmt.Errorf("getting student %s details: %w", studentID, err)
	}

	return &result, nil
}

func (c *APIClient) GetStudentDocuments(ctx context.Context, studentID string) ([]Document, error) {
	var result DocumentList

	if err := c.get(ctx, c.endpoints.GetStudentDocuments(studentID), &result, "documents"); err != nil {
		return nil, fmt.Errorf("getting student %s documents: %w", studentID, err)
	}

	return result.Documents, nil
}

func (c *APIClient) AcceptEnrollment(ctx context.Context, enrollmentID string) error {
	if err := c.postJSON(ctx, c.endpoints.AcceptEnrollment(enrollmentID), map[string]any{}, nil); err != nil {
		return fmt.Errorf("accepting enrollment %s: %w", enrollmentID, err)
	}

	return nil
}

func (c *APIClient) RefuseEnrollment(ctx context.Context, enrollmentID, reason string) error {
	form := NewMultipartForm().Field("reason", reason)

	if err := c.postForm(ctx, c.endpoints.RefuseEnrollment(enrollmentID), form, nil); err != nil {
		return fmt.Errorf("refusing enrollment %s: %w", enrollmentID, err)
	}

	return nil
}
