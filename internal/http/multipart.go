package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// MultipartBody is a multipart/form-data request body. Pass it as the Body
// of a Request; Do encodes it and sets the Content-Type with its boundary.
type MultipartBody struct {
	Fields map[string]string
	Files  []FileField
}

// FileField is one file part of a MultipartBody.
type FileField struct {
	FieldName string
	FileName  string
	// ContentType defaults to application/octet-stream.
	ContentType string
	Data        []byte
	// Reader is read when Data is nil.
	Reader io.Reader
}

// encode renders the body. The whole form is buffered so the request
// carries a Content-Length.
func (m *MultipartBody) encode() ([]byte, string, error) {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	for key, value := range m.Fields {
		err := writer.WriteField(key, value)
		if err != nil {
			return nil, "", fmt.Errorf("writing field %s: %w", key, err)
		}
	}

	for _, file := range m.Files {
		contentType := file.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			`form-data; name="`+escapeQuotes(file.FieldName)+`"; filename="`+escapeQuotes(file.FileName)+`"`)
		header.Set("Content-Type", contentType)

		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("creating part %s: %w", file.FieldName, err)
		}

		switch {
		case file.Data != nil:
			_, err = part.Write(file.Data)
		case file.Reader != nil:
			_, err = io.Copy(part, file.Reader)
		}

		if err != nil {
			return nil, "", fmt.Errorf("writing file %s: %w", file.FileName, err)
		}
	}

	err := writer.Close()
	if err != nil {
		return nil, "", fmt.Errorf("closing multipart body: %w", err)
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// encodeBody returns the wire bytes and Content-Type of a request body.
// A nil body has neither.
func encodeBody(body interface{}) ([]byte, string, error) {
	switch typed := body.(type) {
	case nil:
		return nil, "", nil
	case *MultipartBody:
		return typed.encode()
	default:
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, "", err
		}

		return encoded, "application/json", nil
	}
}
