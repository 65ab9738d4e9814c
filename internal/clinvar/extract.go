package clinvar

import (
	"strconv"
	"strings"
)

// extract builds an Annotation from one document summary. Every step is
// independent and best-effort: an absent or malformed path leaves its
// field at the default instead of failing the extraction.
func extract(doc *documentSummary, hgvs, clinvarID string) *Annotation {
	a := &Annotation{
		HGVS:                 hgvs,
		ClinVarID:            clinvarID,
		VariantID:            clinvarID,
		ClinicalSignificance: Unknown,
		StarRating:           NotApplicable,
		ReviewStatus:         Unknown,
		ConditionsAssoc:      Unknown,
	}

	if doc.Accession != "" {
		a.VariantID = doc.Accession
	}
	if t := titleTranscript(doc.Title); t != "" {
		a.Transcript = t
	}

	g := doc.Germline
	if g.Description != "" {
		a.ClinicalSignificance = g.Description
	}
	if g.ReviewStatus != "" {
		a.ReviewStatus = g.ReviewStatus
		a.StarRating = Stars(g.ReviewStatus)
	}

	// Condition names join in document order; the last OMIM xref wins.
	var conditions []string
	for _, tr := range g.Traits {
		if tr.Name != "" {
			conditions = append(conditions, tr.Name)
		}
		for _, xref := range tr.Xrefs {
			if xref.Source == "OMIM" {
				a.OMIMID = xref.ID
			}
		}
	}
	if len(conditions) > 0 {
		a.ConditionsAssoc = strings.Join(conditions, "; ")
	}

	if len(doc.Variations) > 0 {
		v := doc.Variations[0]
		if parts := strings.Split(v.CanonicalSPDI, ":"); len(parts) >= 4 {
			a.RefSeqID = parts[0]
			a.Pos = spdiPosition(parts[1])
			a.Ref = parts[2]
			a.Alt = parts[3]
		}
		a.Chrom, a.Pos = assemblyLocation(v.Assemblies, a.Pos)
	}

	if len(doc.Genes) > 0 {
		first := doc.Genes[0]
		a.GeneSymbol = first.Symbol
		if first.GeneID != "" {
			a.HGNCID = "GeneID:" + first.GeneID
		}
	}

	return a
}

// titleTranscript takes the text before the first parenthesis of the
// record title: "NM_198578.4(LRRK2):c.6055G>A (p.Gly2019Ser)" yields
// "NM_198578.4".
func titleTranscript(title string) string {
	if i := strings.Index(title, "("); i >= 0 {
		title = title[:i]
	}
	return strings.TrimSpace(title)
}

// spdiPosition converts the 0-based SPDI position to 1-based when it is
// numeric; anything else passes through verbatim.
func spdiPosition(p string) string {
	if !isDigits(p) {
		return p
	}
	n, err := strconv.Atoi(p)
	if err != nil {
		return p
	}
	return strconv.Itoa(n + 1)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// assemblyLocation picks the chromosome from the assembly list,
// preferring the entry flagged "current" and falling back to the first.
// Position comes from the accepted entry only when SPDI decoding has not
// already set it.
func assemblyLocation(assemblies []assemblySet, pos string) (string, string) {
	for _, as := range assemblies {
		if as.Status == "current" {
			return locate(as, pos)
		}
	}
	if len(assemblies) > 0 {
		return locate(assemblies[0], pos)
	}
	return "", pos
}

func locate(as assemblySet, pos string) (string, string) {
	if pos == "" {
		pos = as.Start
	}
	return as.Chr, pos
}
