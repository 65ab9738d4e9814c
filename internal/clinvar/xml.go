package clinvar

import "encoding/xml"

// searchResult is the esearch envelope; only the identifier list matters.
type searchResult struct {
	XMLName xml.Name `xml:"eSearchResult"`
	IDs     []string `xml:"IdList>Id"`
}

// summaryResult is the esummary envelope.
type summaryResult struct {
	XMLName   xml.Name          `xml:"eSummaryResult"`
	Summaries []documentSummary `xml:"DocumentSummarySet>DocumentSummary"`
}

// documentSummary mirrors the parts of the ClinVar document summary the
// extractor reads. Older service versions return only the classification
// block; the repeated elements decode into slices and stay empty when
// absent, so both shapes unmarshal into the same type.
type documentSummary struct {
	Accession  string      `xml:"accession"`
	Title      string      `xml:"title"`
	Germline   germline    `xml:"germline_classification"`
	Variations []variation `xml:"variation_set>variation"`
	Genes      []gene      `xml:"genes>gene"`
}

type germline struct {
	Description  string  `xml:"description"`
	ReviewStatus string  `xml:"review_status"`
	Traits       []trait `xml:"trait_set>trait"`
}

type trait struct {
	Name  string      `xml:"trait_name"`
	Xrefs []traitXref `xml:"trait_xrefs>trait_xref"`
}

type traitXref struct {
	Source string `xml:"db_source"`
	ID     string `xml:"db_id"`
}

type variation struct {
	CanonicalSPDI string        `xml:"canonical_spdi"`
	Assemblies    []assemblySet `xml:"variation_loc>assembly_set"`
}

// assemblySet is one genome-assembly placement of the variant.
type assemblySet struct {
	Status string `xml:"status"`
	Chr    string `xml:"chr"`
	Start  string `xml:"start"`
}

type gene struct {
	Symbol string `xml:"symbol"`
	GeneID string `xml:"GeneID"`
}
