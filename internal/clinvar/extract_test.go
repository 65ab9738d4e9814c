package clinvar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSPDIPosition(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"45983419", "45983420"},
		{"0", "1"},
		{"007", "8"},
		{"12q21", "12q21"},
		{"-1", "-1"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, spdiPosition(tt.in), "position %q", tt.in)
	}
}

func TestTitleTranscript(t *testing.T) {
	tests := []struct {
		title, want string
	}{
		{"NM_198578.4(LRRK2):c.6055G>A (p.Gly2019Ser)", "NM_198578.4"},
		{"NC_000012.12:g.40340400G>A", "NC_000012.12:g.40340400G>A"},
		{"NR_024540.1 (WASH7P)", "NR_024540.1"},
		{"(odd title)", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, titleTranscript(tt.title), "title %q", tt.title)
	}
}

func TestExtractSPDI(t *testing.T) {
	doc := &documentSummary{
		Variations: []variation{{CanonicalSPDI: "NC_000017.11:45983419:G:T"}},
	}

	a := extract(doc, "NC_000017.11:g.45983420G>T", "99999")

	assert.Equal(t, "NC_000017.11", a.RefSeqID)
	assert.Equal(t, "45983420", a.Pos)
	assert.Equal(t, "G", a.Ref)
	assert.Equal(t, "T", a.Alt)
	// Fields with no source keep their defaults.
	assert.Equal(t, "99999", a.VariantID)
	assert.Equal(t, Unknown, a.ClinicalSignificance)
	assert.Equal(t, Unknown, a.ReviewStatus)
	assert.Equal(t, Unknown, a.ConditionsAssoc)
	assert.Equal(t, NotApplicable, a.StarRating)
}

func TestExtractMalformedSPDIIgnored(t *testing.T) {
	doc := &documentSummary{
		Variations: []variation{{CanonicalSPDI: "NC_000017.11:45983419"}},
	}

	a := extract(doc, "", "1")
	assert.Empty(t, a.RefSeqID)
	assert.Empty(t, a.Pos)
}

func TestExtractPrefersCurrentAssembly(t *testing.T) {
	doc := &documentSummary{
		Variations: []variation{{
			Assemblies: []assemblySet{
				{Status: "previous", Chr: "12", Start: "40734202"},
				{Status: "current", Chr: "12", Start: "40340400"},
			},
		}},
	}

	a := extract(doc, "", "1")
	assert.Equal(t, "12", a.Chrom)
	assert.Equal(t, "40340400", a.Pos)
}

func TestExtractFallsBackToFirstAssembly(t *testing.T) {
	doc := &documentSummary{
		Variations: []variation{{
			Assemblies: []assemblySet{
				{Status: "previous", Chr: "12", Start: "40734202"},
				{Status: "previous", Chr: "12", Start: "40734203"},
			},
		}},
	}

	a := extract(doc, "", "1")
	assert.Equal(t, "12", a.Chrom)
	assert.Equal(t, "40734202", a.Pos)
}

func TestExtractSPDIPositionNotOverwritten(t *testing.T) {
	doc := &documentSummary{
		Variations: []variation{{
			CanonicalSPDI: "NC_000012.12:40340399:G:A",
			Assemblies: []assemblySet{
				{Status: "current", Chr: "12", Start: "99999999"},
			},
		}},
	}

	a := extract(doc, "", "1")
	assert.Equal(t, "12", a.Chrom)
	assert.Equal(t, "40340400", a.Pos)
}

func TestExtractConditionsAndOMIM(t *testing.T) {
	doc := &documentSummary{}
	doc.Germline = germline{
		Description:  "Pathogenic",
		ReviewStatus: "criteria provided, multiple submitters, no conflicts",
		Traits: []trait{
			{
				Name: "Parkinson disease",
				Xrefs: []traitXref{
					{Source: "MedGen", ID: "C1846862"},
					{Source: "OMIM", ID: "168600"},
				},
			},
			{
				Name:  "Dystonia",
				Xrefs: []traitXref{{Source: "OMIM", ID: "607060"}},
			},
		},
	}

	a := extract(doc, "", "1")
	assert.Equal(t, "Parkinson disease; Dystonia", a.ConditionsAssoc)
	// The last OMIM cross-reference wins.
	assert.Equal(t, "607060", a.OMIMID)
	assert.Equal(t, "Pathogenic", a.ClinicalSignificance)
	assert.Equal(t, "3", a.StarRating)
}

func TestExtractFirstGeneOnly(t *testing.T) {
	doc := &documentSummary{
		Genes: []gene{
			{Symbol: "LRRK2", GeneID: "120892"},
			{Symbol: "CDC42EP5", GeneID: "148170"},
		},
	}

	a := extract(doc, "", "1")
	assert.Equal(t, "LRRK2", a.GeneSymbol)
	assert.Equal(t, "GeneID:120892", a.HGNCID)
}

func TestExtractFlatSummary(t *testing.T) {
	// Older service versions carry only the classification block.
	doc := &documentSummary{Accession: "VCV000001236"}
	doc.Germline = germline{
		Description:  "Pathogenic",
		ReviewStatus: "criteria provided, single submitter",
	}

	a := extract(doc, "NC_000012.12:g.40340400G>A", "1236")
	require.NotNil(t, a)

	assert.Equal(t, "VCV000001236", a.VariantID)
	assert.Equal(t, "Pathogenic", a.ClinicalSignificance)
	assert.Equal(t, "criteria provided, single submitter", a.ReviewStatus)
	assert.Equal(t, "1", a.StarRating)
	assert.Equal(t, Unknown, a.ConditionsAssoc)
	assert.Empty(t, a.Chrom)
	assert.Empty(t, a.GeneSymbol)
}
