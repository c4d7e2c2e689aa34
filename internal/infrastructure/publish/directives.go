// Package publish hands the results of a pass to the surrounding build.
package publish

import (
	"fmt"
	"io"
	"strconv"

	"kilometers.ai/buildprep/internal/core/domain"
)

// DefaultDirectivePrefix starts every directive line.
const DefaultDirectivePrefix = "buildprep"

// DirectiveWriter streams one line per event:
//
//	buildprep:rerun-if-changed=Lib/python_builtins/a.py
//	buildprep:const=GIT_HASH="1a2b3c4\n"
//	buildprep:artifact=out/env_vars.txt
//
// Constant values are Go-quoted so embedded newlines survive.
type DirectiveWriter struct {
	w      io.Writer
	prefix string
}

// NewDirectiveWriter creates a writer emitting to w
func NewDirectiveWriter(w io.Writer, prefix string) *DirectiveWriter {
	if prefix == "" {
		prefix = DefaultDirectivePrefix
	}
	return &DirectiveWriter{w: w, prefix: prefix}
}

// RerunIfChanged implements ports.DependencyRegistrar
func (d *DirectiveWriter) RerunIfChanged(path string) error {
	_, err := fmt.Fprintf(d.w, "%s:rerun-if-changed=%s\n", d.prefix, path)
	return err
}

// PublishConstant implements ports.ConstantPublisher
func (d *DirectiveWriter) PublishConstant(v domain.MetadataValue) error {
	_, err := fmt.Fprintf(d.w, "%s:const=%s=%s\n", d.prefix, v.Key, strconv.Quote(v.Text))
	return err
}

// Flush lists the artifacts the pass wrote
func (d *DirectiveWriter) Flush(report *domain.Report) error {
	for _, a := range report.Artifacts {
		if _, err := fmt.Fprintf(d.w, "%s:artifact=%s\n", d.prefix, a); err != nil {
			return err
		}
	}
	return nil
}
