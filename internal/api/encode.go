package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"

	"pizzadmin/internal/domain"
)

// JSONFields sends the named draft fields as a flat JSON object.
func JSONFields(fields ...string) Encoder {
	return func(d domain.Draft) (io.Reader, string, error) {
		m := make(map[string]string, len(fields))
		for _, f := range fields {
			m[f] = d.Get(f)
		}
		b, err := json.Marshal(m)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(b), "application/json", nil
	}
}

// Multipart sends the named fields as form parts, in order, followed by the
// draft file under fileField when one was picked.
func Multipart(fileField string, fields ...string) Encoder {
	return func(d domain.Draft) (io.Reader, string, error) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		for _, f := range fields {
			if err := w.WriteField(f, d.Get(f)); err != nil {
				return nil, "", err
			}
		}
		if d.File != nil && len(d.File.Data) > 0 {
			h := make(textproto.MIMEHeader)
			h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, d.File.Filename))
			ct := d.File.ContentType
			if ct == "" {
				ct = "application/octet-stream"
			}
			h.Set("Content-Type", ct)
			part, err := w.CreatePart(h)
			if err != nil {
				return nil, "", err
			}
			if _, err := part.Write(d.File.Data); err != nil {
				return nil, "", err
			}
		}
		if err := w.Close(); err != nil {
			return nil, "", err
		}
		return &buf, w.FormDataContentType(), nil
	}
}
