package prompt

import (
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the optional file, relative to the prompts directory, that
// names the template files for each persona.
const ManifestFile = "personas.yaml"

// Steps names the template files for a two-step persona.
type Steps struct {
	Brief string `yaml:"brief"`
	Draft string `yaml:"draft"`
}

// Manifest maps personas to their template files.
type Manifest struct {
	Single   string           `yaml:"single"`
	Personas map[string]Steps `yaml:"personas"`
}

// DefaultManifest is used when the prompts directory has no personas.yaml.
func DefaultManifest() Manifest {
	return Manifest{
		Single: "prompt.txt",
		Personas: map[string]Steps{
			"article":    {Brief: "article_strategist.txt", Draft: "article_writer.txt"},
			"copywriter": {Brief: "copywriter_strategist.txt", Draft: "copywriter_writer.txt"},
		},
	}
}

// Template is a prompt file as read from disk.
type Template struct {
	Name string
	Text string
}

// Fill substitutes vars into the template text.
func (t Template) Fill(vars Vars) (string, error) {
	out, err := Fill(t.Text, vars)
	if err != nil {
		return "", fmt.Errorf("template %s: %w", t.Name, err)
	}
	return out, nil
}

// Store reads templates from a directory. Nothing is cached: every call goes
// back to the filesystem so edits to prompt files apply to the next request.
type Store struct {
	fsys fs.FS
}

// NewStore creates a Store over fsys, typically os.DirFS(promptsDir).
func NewStore(fsys fs.FS) *Store {
	return &Store{fsys: fsys}
}

// Manifest reads personas.yaml, falling back to DefaultManifest when the file
// does not exist. Entries missing from the file are filled from the default.
func (s *Store) Manifest() (Manifest, error) {
	def := DefaultManifest()

	b, err := fs.ReadFile(s.fsys, ManifestFile)
	if errors.Is(err, fs.ErrNotExist) {
		return def, nil
	}
	if err != nil {
		return Manifest{}, fmt.Errorf("read %s: %w", ManifestFile, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse %s: %w", ManifestFile, err)
	}
	if m.Single == "" {
		m.Single = def.Single
	}
	if m.Personas == nil {
		m.Personas = map[string]Steps{}
	}
	for name, steps := range def.Personas {
		cur := m.Personas[name]
		if cur.Brief == "" {
			cur.Brief = steps.Brief
		}
		if cur.Draft == "" {
			cur.Draft = steps.Draft
		}
		m.Personas[name] = cur
	}
	return m, nil
}

// Load reads the named template file.
func (s *Store) Load(name string) (Template, error) {
	if !fs.ValidPath(name) {
		return Template{}, fmt.Errorf("invalid template name %q", name)
	}
	b, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return Template{}, fmt.Errorf("load template %s: %w", name, err)
	}
	return Template{Name: name, Text: string(b)}, nil
}
