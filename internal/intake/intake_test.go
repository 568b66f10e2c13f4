package intake

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

const testMaxBytes = 1 << 20

// multipartRequest builds a POST /generate request with the given fields and
// an optional file under fileField.
func multipartRequest(t *testing.T, fields map[string]string, fileField string, file []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, "voice.txt")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(file); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/generate", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestParse_Defaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	got, err := Parse(httptest.NewRecorder(), req, testMaxBytes)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got.Persona != "article" {
		t.Errorf("Persona = %q, want %q", got.Persona, "article")
	}
	if got.Competitor != "" {
		t.Errorf("Competitor = %q, want empty", got.Competitor)
	}
	if got.BrandVoice != DefaultBrandVoice {
		t.Errorf("BrandVoice = %q, want %q", got.BrandVoice, DefaultBrandVoice)
	}
}

func TestParse_URLEncoded(t *testing.T) {
	form := url.Values{"persona": {"copywriter"}, "competitor_data": {"  \n their copy \t"}}
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	got, err := Parse(httptest.NewRecorder(), req, testMaxBytes)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got.Persona != "copywriter" {
		t.Errorf("Persona = %q, want copywriter", got.Persona)
	}
	if got.Competitor != "their copy" {
		t.Errorf("Competitor = %q, want trimmed %q", got.Competitor, "their copy")
	}
	if got.BrandVoice != DefaultBrandVoice {
		t.Errorf("BrandVoice = %q, want default", got.BrandVoice)
	}
}

func TestParse_UnknownPersonaPassesThrough(t *testing.T) {
	req := multipartRequest(t, map[string]string{"persona": "poet"}, "", nil)
	got, err := Parse(httptest.NewRecorder(), req, testMaxBytes)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got.Persona != "poet" {
		t.Errorf("Persona = %q, want %q", got.Persona, "poet")
	}
}

func TestParse_EmptyPersonaIsNotDefaulted(t *testing.T) {
	form := url.Values{"persona": {""}, "competitor_data": {"x"}}
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	got, err := Parse(httptest.NewRecorder(), req, testMaxBytes)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got.Persona != "" {
		t.Errorf("Persona = %q, want empty", got.Persona)
	}
}

func TestParse_BrandVoiceFile(t *testing.T) {
	for _, field := range FileFields {
		t.Run(field, func(t *testing.T) {
			req := multipartRequest(t, map[string]string{"competitor_data": "x"}, field, []byte("Be bold and concise."))
			got, err := Parse(httptest.NewRecorder(), req, testMaxBytes)
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if got.BrandVoice != "Be bold and concise." {
				t.Errorf("BrandVoice = %q, want %q", got.BrandVoice, "Be bold and concise.")
			}
		})
	}
}

func TestParse_EmptyFileUsesDefault(t *testing.T) {
	req := multipartRequest(t, nil, "brand_voice_file", []byte{})
	got, err := Parse(httptest.NewRecorder(), req, testMaxBytes)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got.BrandVoice != DefaultBrandVoice {
		t.Errorf("BrandVoice = %q, want default", got.BrandVoice)
	}
}

func TestParse_InvalidUTF8(t *testing.T) {
	req := multipartRequest(t, nil, "brand_voice_file", []byte{0xff, 0xfe, 0x00, 'h', 'i'})
	_, err := Parse(httptest.NewRecorder(), req, testMaxBytes)
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("Parse() error = %v, want ErrDecode", err)
	}
}

func TestParse_TooLarge(t *testing.T) {
	big := strings.Repeat("a", 4096)
	urlencoded := func(t *testing.T) *http.Request {
		form := url.Values{"competitor_data": {big}}
		req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req
	}
	tests := []struct {
		name string
		req  func(t *testing.T) *http.Request
	}{
		{"multipart file", func(t *testing.T) *http.Request {
			return multipartRequest(t, nil, "brand_voice_file", []byte(big))
		}},
		{"multipart text field", func(t *testing.T) *http.Request {
			return multipartRequest(t, map[string]string{"competitor_data": big}, "", nil)
		}},
		{"url-encoded", urlencoded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(httptest.NewRecorder(), tt.req(t), 512)
			var mbe *http.MaxBytesError
			if !errors.As(err, &mbe) {
				t.Fatalf("Parse() error = %v, want *http.MaxBytesError", err)
			}
		})
	}
}

func TestDecodeText(t *testing.T) {
	got, err := DecodeText([]byte("Grüße, 世界"))
	if err != nil {
		t.Fatalf("DecodeText() error: %v", err)
	}
	if got != "Grüße, 世界" {
		t.Errorf("DecodeText() = %q", got)
	}
	if _, err := DecodeText([]byte{0xc3, 0x28}); !errors.Is(err, ErrDecode) {
		t.Errorf("DecodeText(invalid) error = %v, want ErrDecode", err)
	}
}
