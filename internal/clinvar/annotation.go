package clinvar

// Sentinel values for annotation fields whose lookup came up empty.
const (
	Unknown       = "Unknown"
	NotFound      = "Not found"
	NotApplicable = "N/A"
)

// Annotation is the clinical interpretation resolved for one variant.
// Position fields are strings because the service reports them as text
// and a non-numeric value is passed through verbatim.
type Annotation struct {
	HGVS                 string
	ClinVarID            string
	VariantID            string
	Chrom                string
	Pos                  string
	Ref                  string
	Alt                  string
	ClinicalSignificance string
	StarRating           string
	ReviewStatus         string
	ConditionsAssoc      string
	Transcript           string
	RefSeqID             string
	HGNCID               string
	OMIMID               string
	GeneSymbol           string
}

// NotFoundAnnotation returns the sentinel annotation used when the search
// phase yields no identifiers, or when no HGVS string is available at all.
func NotFoundAnnotation(hgvs string) *Annotation {
	return &Annotation{
		HGVS:                 hgvs,
		ClinicalSignificance: NotFound,
		ReviewStatus:         NotFound,
		ConditionsAssoc:      NotFound,
		StarRating:           NotApplicable,
	}
}

// Found reports whether the annotation came from a ClinVar record rather
// than the not-found sentinel.
func (a *Annotation) Found() bool {
	return a.ClinVarID != ""
}
