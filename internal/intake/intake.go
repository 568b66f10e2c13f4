// Package intake extracts a generation request from a submitted form.
package intake

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/joestump/joe-writer/internal/writer"
)

// DefaultBrandVoice is used when no brand voice file is uploaded.
const DefaultBrandVoice = "No specific brand data or voice instructions provided."

// DefaultPersona is used when the form has no persona field.
const DefaultPersona = string(writer.PersonaArticle)

// FileFields are the accepted upload field names, in lookup order.
var FileFields = []string{"brand_voice_file", "brand_data_file"}

// ErrDecode is returned when an uploaded file is not valid UTF-8 text.
var ErrDecode = errors.New("uploaded file is not valid UTF-8 text")

// Parse reads persona, competitor_data and an optional brand voice file from
// r. Bodies larger than maxBytes are rejected with *http.MaxBytesError,
// whether url-encoded or multipart. Persona defaults only when the field is
// absent; any submitted value, including an empty one, is passed through
// unchecked.
func Parse(w http.ResponseWriter, r *http.Request, maxBytes int64) (writer.GenerationRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			return writer.GenerationRequest{}, fmt.Errorf("parse multipart form: %w", err)
		}
	} else if err := r.ParseForm(); err != nil {
		return writer.GenerationRequest{}, fmt.Errorf("parse form: %w", err)
	}

	req := writer.GenerationRequest{
		Persona:    DefaultPersona,
		Competitor: strings.TrimSpace(r.FormValue("competitor_data")),
		BrandVoice: DefaultBrandVoice,
	}
	if vs, ok := r.Form["persona"]; ok && len(vs) > 0 {
		req.Persona = vs[0]
	}

	if r.MultipartForm == nil {
		return req, nil
	}
	for _, field := range FileFields {
		files := r.MultipartForm.File[field]
		if len(files) == 0 || files[0].Size == 0 {
			continue
		}
		text, err := readUpload(files[0])
		if err != nil {
			return writer.GenerationRequest{}, err
		}
		req.BrandVoice = text
		break
	}
	return req, nil
}

func readUpload(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("read upload %s: %w", fh.Filename, err)
	}
	text, err := DecodeText(b)
	if err != nil {
		return "", fmt.Errorf("%s: %w", fh.Filename, err)
	}
	return text, nil
}

// DecodeText returns b unchanged as a string when it is valid UTF-8.
func DecodeText(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", ErrDecode
	}
	return string(b), nil
}
