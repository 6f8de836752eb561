package audit

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

// Export column headers, shared by CSV and the JSON object keys so the two
// formats stay equivalent.
var exportHeader = []string{"URL", "Indexed", "AI Diagnosis"}

// WriteCSV writes the record set as CSV with a header row and the indexed
// flag rendered human-readable.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write([]string{r.URL, r.IndexedLabel(), r.Diagnosis}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

type recordView struct {
	URL       string `json:"URL"`
	Indexed   string `json:"Indexed"`
	Diagnosis string `json:"AI Diagnosis"`
}

// WriteJSON writes the record set as an indented JSON array equivalent to the
// CSV columns.
func WriteJSON(w io.Writer, records []Record) error {
	views := make([]recordView, len(records))
	for i, r := range records {
		views[i] = recordView{URL: r.URL, Indexed: r.IndexedLabel(), Diagnosis: r.Diagnosis}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(views)
}

// WriteTable renders an aligned text table for terminal display.
func WriteTable(w io.Writer, records []Record) error {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "URL\tINDEXED\tAI DIAGNOSIS")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.URL, r.IndexedLabel(), r.Diagnosis)
	}
	return tw.Flush()
}
