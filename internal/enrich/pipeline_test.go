package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/variantlab/variantview/internal/clinvar"
	"github.com/variantlab/variantview/internal/hgvs"
	"github.com/variantlab/variantview/internal/ingest"
)

const lovdFoundJSON = `{
	"17:45983420:G:T": {
		"17:45983420:G:T": {
			"g_hgvs": "NC_000017.11:g.45983420G>T",
			"selected_build": "GRCh38",
			"hgvs_t_and_p": {
				"mane_select": "NM_001377265.1",
				"t_hgvs": "NM_001377265.1:c.1842G>T",
				"p_hgvs_tlc": "NP_001364194.1:p.(Glu614Asp)"
			}
		}
	},
	"metadata": {"variantvalidator_version": "2.2.1.dev"}
}`

const lovdEmptyJSON = `{"metadata": {"variantvalidator_version": "2.2.1.dev"}}`

const clinvarSearchXML = `<?xml version="1.0" encoding="UTF-8" ?>
<eSearchResult>
	<Count>1</Count>
	<IdList>
		<Id>98243</Id>
	</IdList>
</eSearchResult>`

const clinvarSummaryXML = `<?xml version="1.0" encoding="UTF-8" ?>
<eSummaryResult>
	<DocumentSummarySet status="OK">
		<DocumentSummary uid="98243">
			<accession>VCV000098243</accession>
			<title>NM_001377265.1(MAPT):c.1842G&gt;T (p.Glu614Asp)</title>
			<germline_classification>
				<description>Pathogenic</description>
				<review_status>criteria provided, single submitter</review_status>
				<trait_set>
					<trait>
						<trait_name>Frontotemporal dementia</trait_name>
						<trait_xrefs>
							<trait_xref>
								<db_source>OMIM</db_source>
								<db_id>600274</db_id>
							</trait_xref>
						</trait_xrefs>
					</trait>
				</trait_set>
			</germline_classification>
			<variation_set>
				<variation>
					<canonical_spdi>NC_000017.11:45983419:G:T</canonical_spdi>
					<variation_loc>
						<assembly_set>
							<status>current</status>
							<chr>17</chr>
							<start>45983420</start>
						</assembly_set>
					</variation_loc>
				</variation>
			</variation_set>
			<genes>
				<gene>
					<symbol>MAPT</symbol>
					<GeneID>4137</GeneID>
				</gene>
			</genes>
		</DocumentSummary>
	</DocumentSummarySet>
</eSummaryResult>`

// TestPipelineEndToEnd drives load, resolve, annotate, and store against
// stub services: one variant the services know, one they do not.
func TestPipelineEndToEnd(t *testing.T) {
	lovdCalls := 0
	lovd := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lovdCalls++
		w.Header().Set("Content-Type", "application/json")
		if strings.Contains(r.URL.Path, "17:45983420:G:T") {
			w.Write([]byte(lovdFoundJSON))
			return
		}
		w.Write([]byte(lovdEmptyJSON))
	}))
	defer lovd.Close()

	eutilsCalls := 0
	eutils := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		eutilsCalls++
		w.Header().Set("Content-Type", "text/xml")
		if strings.Contains(r.URL.Path, "esearch") {
			w.Write([]byte(clinvarSearchXML))
			return
		}
		w.Write([]byte(clinvarSummaryXML))
	}))
	defer eutils.Close()

	s := newTestStore(t)
	path := filepath.Join(t.TempDir(), "Patient3.vcf")
	content := "#CHROM\tPOS\tID\tREF\tALT\n" +
		"17\t45983420\t.\tG\tT\n" +
		"5\t123456\t.\tC\tG\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	loadSummary, err := ingest.NewLoader(s).LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, 2, loadSummary.Inserted)

	resolver := hgvs.NewResolver(lovd.URL, "GRCh38", 5*time.Second, time.Millisecond)
	annotator := clinvar.NewClient(eutils.URL, 5*time.Second)

	summary, err := NewEnricher(s, resolver, annotator).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Enriched)
	assert.Equal(t, 1, summary.NotFound)
	assert.Equal(t, 0, summary.Failed)

	// Both variants hit the resolver; only the resolved one reaches the
	// annotation service, with one search and one summary call.
	assert.Equal(t, 2, lovdCalls)
	assert.Equal(t, 2, eutilsCalls)

	rows, err := s.ListEnriched()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	found := rows[0].Output
	require.NotNil(t, found)
	assert.Equal(t, 3, rows[0].Input.PatientID)
	assert.Equal(t, "NC_000017.11:g.45983420G>T", found.HGVS)
	assert.Equal(t, "98243", found.ClinVarID)
	assert.Equal(t, "Pathogenic", found.ClinicalSignificance)
	assert.Equal(t, "1", found.StarRating)
	assert.Equal(t, "criteria provided, single submitter", found.ReviewStatus)
	assert.Equal(t, "Frontotemporal dementia", found.ConditionsAssoc)
	assert.Equal(t, "NM_001377265.1", found.Transcript)
	assert.Equal(t, "NC_000017.11", found.RefSeqID)
	assert.Equal(t, "GeneID:4137", found.HGNCID)
	assert.Equal(t, "600274", found.OMIMID)
	assert.Equal(t, "c.1842G>T", found.CChange)
	assert.Equal(t, "p.(Glu614Asp)", found.PChange)

	missing := rows[1].Output
	require.NotNil(t, missing)
	assert.Empty(t, missing.HGVS)
	assert.Equal(t, clinvar.NotFound, missing.ClinicalSignificance)
	assert.Equal(t, clinvar.NotApplicable, missing.StarRating)
}
