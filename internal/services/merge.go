package services

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"ridereport/internal/domain"
	"ridereport/internal/utils"
)

// DocumentSource produces one PDF payload destined for the merged artifact.
// A generated cover table and an opaque fetched receipt are both just
// sources; the merge engine does not special-case either.
type DocumentSource interface {
	Label() string
	Document() ([]byte, error)
}

// GeneratedDocument renders a document on demand (e.g. the cover table).
type GeneratedDocument struct {
	Name   string
	Render func() ([]byte, error)
}

func (g GeneratedDocument) Label() string { return g.Name }

func (g GeneratedDocument) Document() ([]byte, error) {
	if g.Render == nil {
		return nil, fmt.Errorf("no renderer attached")
	}
	return g.Render()
}

// BinaryDocument wraps an already fetched payload.
type BinaryDocument struct {
	Name string
	Data []byte
}

func (b BinaryDocument) Label() string { return b.Name }

func (b BinaryDocument) Document() ([]byte, error) {
	if len(b.Data) == 0 {
		return nil, fmt.Errorf("empty payload")
	}
	return b.Data, nil
}

// MergeFailure reports one source that could not be merged.
type MergeFailure struct {
	Label  string `json:"label"`
	Reason string `json:"reason"`
}

// MergeEngine combines ordered document sources into a single PDF.
type MergeEngine struct {
	RequestID string
}

// Merge concatenates the sources' pages in input order. A source that fails
// to produce or validate is skipped and reported; it does not abort the
// merge of the remaining documents. When no source survives, the result is
// an error rather than an empty artifact.
func (m MergeEngine) Merge(sources []DocumentSource) ([]byte, []MergeFailure, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	var failures []MergeFailure
	var payloads [][]byte
	for _, src := range sources {
		data, err := src.Document()
		if err == nil {
			err = api.Validate(bytes.NewReader(data), conf)
		}
		if err != nil {
			failures = append(failures, MergeFailure{Label: src.Label(), Reason: err.Error()})
			utils.LogEvent(m.RequestID, "merge", "document_skipped", fmt.Sprintf("label=%s err=%v", src.Label(), err))
			continue
		}
		payloads = append(payloads, data)
	}

	if len(payloads) == 0 {
		return nil, failures, domain.ValidationError{Field: "documents", Msg: "nothing to merge"}
	}
	if len(payloads) == 1 {
		return payloads[0], failures, nil
	}

	readers := make([]io.ReadSeeker, len(payloads))
	for i, p := range payloads {
		readers[i] = bytes.NewReader(p)
	}

	var buf bytes.Buffer
	if err := api.MergeRaw(readers, &buf, false, conf); err != nil {
		return nil, failures, domain.InternalError{Msg: "merge documents", Err: err}
	}
	return buf.Bytes(), failures, nil
}
