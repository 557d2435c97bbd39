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
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// FileFixture is an in-memory file attached to a multipart request.
type FileFixture struct {
	FileName    string
	ContentType string
	Content     []byte
}

type formField struct {
	name  string
	value string
}

type formFile struct {
	field string
	file  FileFixture
}

// MultipartForm builds multipart/form-data bodies. Fields are written in
// the order they are added.
type MultipartForm struct {
	fields []formField
	files  []formFile
}

func NewMultipartForm() *MultipartForm {
	return &MultipartForm{}
}

func (f *MultipartForm) Field(name, value string) *MultipartForm {
	f.fields = append(f.fields, formField{name: name, value: value})
	return f
}

func (f *MultipartForm) File(field string, file FileFixture) *MultipartForm {
	f.files = append(f.files, formFile{field: field, file: file})
	return f
}

//nolint:gochecknoglobals
var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Encode renders the form, returning the body and its content type
// including the boundary.
func (f *MultipartForm) Encode() (io.Reader, string, error) {
	var body bytes.Buffer

	writer := multipart.NewWriter(&body)

	for _, field := range f.fields {
		if err := writer.WriteField(field.name, field.value); err != nil {
			return nil, "", fmt.Errorf("writing form field %s: %w", field.name, err)
		}
	}

	for _, file := range f.files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, quoteEscaper.Replace(file.field), quoteEscaper.Replace(file.file.FileName)))

		contentType := file.file.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		header.Set("Content-Type", contentType)

		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("creating form file %s: %w", file.field, err)
		}

		if _, err := part.Write(file.file.Content); err != nil {
			return nil, "", fmt.Errorf("writing form file %s: %w", file.field, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart form: %w", err)
	}

	return &body, writer.FormDataContentType(), nil
}
