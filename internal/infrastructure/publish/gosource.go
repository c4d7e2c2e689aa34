package publish

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strconv"
	"text/template"

	"kilometers.ai/buildprep/internal/core/domain"
)

var goSourceTemplate = template.Must(template.New("buildinfo").Funcs(template.FuncMap{
	"quote": strconv.Quote,
}).Parse(`// Code generated by buildprep. DO NOT EDIT.

package {{.Package}}
{{if .EnvArtifact}}
import _ "embed"
{{end}}
const (
{{- range .Values}}
	{{.Key.GoIdent}} = {{quote .Text}}
{{- end}}
)
{{if .EnvArtifact}}
// EnvSnapshot is the process environment captured when this file was
// generated. Decode it with envsnap.Parse.
//
//go:embed {{.EnvArtifact}}
var EnvSnapshot string
{{end}}`))

// GoSourceWriter collects published constants and renders them as a Go
// source file once the pass completes.
type GoSourceWriter struct {
	path        string
	pkg         string
	envArtifact string
	values      []domain.MetadataValue
}

// NewGoSourceWriter creates a writer for path in package pkg. When
// envArtifact is non-empty the generated file embeds that file (relative to
// the generated file's directory) as EnvSnapshot.
func NewGoSourceWriter(path, pkg, envArtifact string) *GoSourceWriter {
	return &GoSourceWriter{path: path, pkg: pkg, envArtifact: envArtifact}
}

// RerunIfChanged is a no-op; the Go file has no notion of triggers
func (g *GoSourceWriter) RerunIfChanged(string) error {
	return nil
}

// PublishConstant records v for the generated file
func (g *GoSourceWriter) PublishConstant(v domain.MetadataValue) error {
	g.values = append(g.values, v)
	return nil
}

// Render returns the formatted Go source
func (g *GoSourceWriter) Render() ([]byte, error) {
	var buf bytes.Buffer
	err := goSourceTemplate.Execute(&buf, struct {
		Package     string
		EnvArtifact string
		Values      []domain.MetadataValue
	}{
		Package:     g.pkg,
		EnvArtifact: g.envArtifact,
		Values:      g.values,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering go source: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting go source: %w", err)
	}
	return src, nil
}

// Flush writes the Go file
func (g *GoSourceWriter) Flush(report *domain.Report) error {
	src, err := g.Render()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(g.path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(g.path, src, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", g.path, err)
	}
	report.Artifacts = append(report.Artifacts, g.path)
	return nil
}
