package hgvs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// parseResolution extracts the payload from a response document. The
// top-level object carries a "metadata" key plus zero or more
// colon-delimited variant keys; the payload sits nested under the first
// variant key, repeated one level deeper. Key order is meaningful, so
// the top level is scanned with a token decoder instead of a map.
// A nil Resolution with a nil error means no usable variant key.
func parseResolution(body []byte) (*Resolution, error) {
	dec := json.NewDecoder(bytes.NewReader(body))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("unexpected top-level token %v", tok)
	}

	var variantKey string
	var outer json.RawMessage
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected key token %v", tok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("decode %q value: %w", key, err)
		}

		if key != "metadata" && strings.Contains(key, ":") {
			variantKey = key
			outer = value
			break
		}
	}
	if variantKey == "" {
		return nil, nil
	}

	var nested map[string]json.RawMessage
	if err := json.Unmarshal(outer, &nested); err != nil {
		return nil, nil
	}
	inner, ok := nested[variantKey]
	if !ok {
		return nil, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(inner, &fields); err != nil {
		return nil, nil
	}

	// Field extraction is best-effort: a missing or oddly typed field
	// keeps its zero value.
	res := &Resolution{}
	if raw, ok := fields["g_hgvs"]; ok {
		_ = json.Unmarshal(raw, &res.GenomicHGVS)
	}
	if raw, ok := fields["selected_build"]; ok {
		_ = json.Unmarshal(raw, &res.SelectedBuild)
	}
	if raw, ok := fields["hgvs_t_and_p"]; ok {
		t := &TandP{}
		if err := json.Unmarshal(raw, t); err == nil && !t.isEmpty() {
			res.TandP = t
			res.ManeSelect = t.ManeSelect()
		}
	}
	return res, nil
}
