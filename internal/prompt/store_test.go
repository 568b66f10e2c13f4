package prompt

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"
)

func TestStore_ManifestDefault(t *testing.T) {
	s := NewStore(fstest.MapFS{})
	m, err := s.Manifest()
	if err != nil {
		t.Fatalf("Manifest() error: %v", err)
	}
	if m.Single != "prompt.txt" {
		t.Errorf("Single = %q, want %q", m.Single, "prompt.txt")
	}
	if got := m.Personas["article"].Brief; got != "article_strategist.txt" {
		t.Errorf("article brief = %q, want %q", got, "article_strategist.txt")
	}
	if got := m.Personas["copywriter"].Draft; got != "copywriter_writer.txt" {
		t.Errorf("copywriter draft = %q, want %q", got, "copywriter_writer.txt")
	}
}

func TestStore_ManifestFromFile(t *testing.T) {
	s := NewStore(fstest.MapFS{
		ManifestFile: {Data: []byte(`
personas:
  article:
    draft: long_form.txt
  copywriter:
    brief: cw_brief.txt
    draft: cw_draft.txt
`)},
	})
	m, err := s.Manifest()
	if err != nil {
		t.Fatalf("Manifest() error: %v", err)
	}
	if m.Single != "prompt.txt" {
		t.Errorf("Single = %q, want default %q", m.Single, "prompt.txt")
	}
	art := m.Personas["article"]
	if art.Brief != "article_strategist.txt" || art.Draft != "long_form.txt" {
		t.Errorf("article = %+v, want default brief and long_form.txt draft", art)
	}
	cw := m.Personas["copywriter"]
	if cw.Brief != "cw_brief.txt" || cw.Draft != "cw_draft.txt" {
		t.Errorf("copywriter = %+v, want cw_brief.txt / cw_draft.txt", cw)
	}
}

func TestStore_ManifestInvalidYAML(t *testing.T) {
	s := NewStore(fstest.MapFS{ManifestFile: {Data: []byte("personas: [unclosed")}})
	if _, err := s.Manifest(); err == nil {
		t.Fatal("Manifest() = nil error, want parse error")
	}
}

func TestStore_Load(t *testing.T) {
	fsys := fstest.MapFS{"prompt.txt": {Data: []byte("Write about {competitor_data}")}}
	s := NewStore(fsys)

	tmpl, err := s.Load("prompt.txt")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if tmpl.Name != "prompt.txt" {
		t.Errorf("Name = %q, want %q", tmpl.Name, "prompt.txt")
	}
	out, err := tmpl.Fill(Vars{"competitor_data": "cats"})
	if err != nil {
		t.Fatalf("Fill() error: %v", err)
	}
	if out != "Write about cats" {
		t.Errorf("Fill() = %q, want %q", out, "Write about cats")
	}

	// Files are re-read on every Load.
	fsys["prompt.txt"] = &fstest.MapFile{Data: []byte("changed")}
	tmpl, err = s.Load("prompt.txt")
	if err != nil {
		t.Fatalf("second Load() error: %v", err)
	}
	if tmpl.Text != "changed" {
		t.Errorf("Text = %q after edit, want %q", tmpl.Text, "changed")
	}
}

func TestStore_LoadErrors(t *testing.T) {
	s := NewStore(fstest.MapFS{})
	if _, err := s.Load("missing.txt"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want fs.ErrNotExist", err)
	}
	if _, err := s.Load("../etc/passwd"); err == nil {
		t.Error("Load(../etc/passwd) = nil error, want invalid name error")
	}
}

func TestTemplate_FillNamesTemplateOnError(t *testing.T) {
	tmpl := Template{Name: "article_writer.txt", Text: "{strategic_brief}"}
	_, err := tmpl.Fill(Vars{})
	if !errors.Is(err, ErrMissingPlaceholder) {
		t.Fatalf("error = %v, want ErrMissingPlaceholder", err)
	}
	if want := "template article_writer.txt"; !strings.HasPrefix(err.Error(), want) {
		t.Errorf("error = %q, want prefix %q", err, want)
	}
}
