// Package audit assembles per-URL audit records and exports them as CSV,
// JSON and PDF.
package audit

// PlaceholderDiagnosis fills the diagnosis column for indexed URLs, which are
// never sent to the model.
const PlaceholderDiagnosis = "N/A (Indexed)"

// Record is the per-URL audit outcome.
type Record struct {
	URL       string
	Indexed   bool
	Diagnosis string
}

// IndexedLabel is the human-readable form of the indexed flag used in exports.
func (r Record) IndexedLabel() string {
	if r.Indexed {
		return "Yes"
	}
	return "No"
}

// Summary aggregates verdict counts over a record set.
type Summary struct {
	Total      int
	Indexed    int
	NotIndexed int
}

// Summarize counts indexed and non-indexed records.
func Summarize(records []Record) Summary {
	s := Summary{Total: len(records)}
	for _, r := range records {
		if r.Indexed {
			s.Indexed++
		} else {
			s.NotIndexed++
		}
	}
	return s
}
