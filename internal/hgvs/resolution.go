package hgvs

import (
	"bytes"
	"encoding/json"
	"regexp"
)

// Resolution is the outcome of one coordinate-to-HGVS lookup.
type Resolution struct {
	// VariantDescription is the "chrom:pos:ref:alt" string that was resolved.
	VariantDescription string

	// GenomicHGVS is the genomic-level HGVS description, e.g.
	// "NC_000017.11:g.45983420G>T".
	GenomicHGVS string

	// TandP carries the transcript/protein description when the service
	// returned one.
	TandP *TandP

	// SelectedBuild is the genome build the service actually used.
	SelectedBuild string

	// ManeSelect is the best-effort MANE Select transcript.
	ManeSelect string
}

var (
	refSeqPattern  = regexp.MustCompile(`NM_\d+\.\d+`)
	cChangePattern = regexp.MustCompile(`c\.[0-9*+\-][0-9_+\-*]*[A-Za-z>][A-Za-z0-9>]*`)
	pChangePattern = regexp.MustCompile(`p\.\([A-Za-z0-9*=?]+\)|p\.[A-Za-z0-9*=?]+`)
)

// TandP is the transcript/protein description field, which the service
// returns either as plain text or as a keyed structure. Exactly one of
// Text and Fields is set; both empty means the service sent nothing
// usable.
type TandP struct {
	Text   string
	Fields map[string]json.RawMessage

	raw []byte
}

// UnmarshalJSON accepts both shapes. Anything that is neither a string
// nor an object is ignored rather than failing the whole resolution.
func (t *TandP) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		t.Text = s
		return nil
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &m); err == nil {
		t.Fields = m
		t.raw = append([]byte(nil), trimmed...)
		return nil
	}

	return nil
}

func (t *TandP) isEmpty() bool {
	return t == nil || (t.Text == "" && t.Fields == nil)
}

// describe returns the textual form the best-effort extractors scan:
// the raw JSON for the structured shape, the string itself otherwise.
func (t *TandP) describe() string {
	if t == nil {
		return ""
	}
	if t.Fields != nil {
		return string(t.raw)
	}
	return t.Text
}

// ManeSelect returns the MANE Select transcript: the "mane_select" entry
// of the structured form, or the first RefSeq transcript pattern in the
// text form. Empty when neither yields one.
func (t *TandP) ManeSelect() string {
	if t == nil {
		return ""
	}
	if t.Fields != nil {
		raw, ok := t.Fields["mane_select"]
		if !ok {
			return ""
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	}
	return refSeqPattern.FindString(t.Text)
}

// CChange returns the first coding-sequence change ("c.6055G>A") found
// in the description, or "" when none is present.
func (t *TandP) CChange() string {
	return cChangePattern.FindString(t.describe())
}

// PChange returns the first protein change ("p.(Gly2019Ser)") found in
// the description, or "" when none is present.
func (t *TandP) PChange() string {
	return pChangePattern.FindString(t.describe())
}
