package audit

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"
)

func readFilePrefix(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	b := make([]byte, n)
	if _, err := io.ReadFull(f, b); err != nil {
		return nil, err
	}
	return b, nil
}

func sampleRecords() []Record {
	return []Record{
		{URL: "a.com/x", Indexed: true, Diagnosis: PlaceholderDiagnosis},
		{URL: "a.com/y", Indexed: false, Diagnosis: "Thin content"},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleRecords()); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if got := strings.Join(rows[0], ","); got != "URL,Indexed,AI Diagnosis" {
		t.Fatalf("header = %q", got)
	}
	if rows[1][1] != "Yes" || rows[2][1] != "No" {
		t.Fatalf("indexed flags = %q, %q", rows[1][1], rows[2][1])
	}
	if rows[2][2] != "Thin content" {
		t.Fatalf("diagnosis = %q", rows[2][2])
	}
}

func TestWriteJSON_EquivalentToCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleRecords()); err != nil {
		t.Fatalf("write json: %v", err)
	}
	var rows []map[string]string
	if err := json.Unmarshal(buf.Bytes(), &rows); err != nil {
		t.Fatalf("parse json: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 objects, got %d", len(rows))
	}
	if rows[0]["URL"] != "a.com/x" || rows[0]["Indexed"] != "Yes" || rows[0]["AI Diagnosis"] != PlaceholderDiagnosis {
		t.Fatalf("unexpected first object: %v", rows[0])
	}
	if rows[1]["Indexed"] != "No" || rows[1]["AI Diagnosis"] != "Thin content" {
		t.Fatalf("unexpected second object: %v", rows[1])
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleRecords())
	if s.Total != 2 || s.Indexed != 1 || s.NotIndexed != 1 {
		t.Fatalf("summary = %+v", s)
	}
	if z := Summarize(nil); z.Total != 0 || z.Indexed != 0 || z.NotIndexed != 0 {
		t.Fatalf("empty summary = %+v", z)
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTable(&buf, sampleRecords()); err != nil {
		t.Fatalf("write table: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"URL", "a.com/x", "Yes", "a.com/y", "Thin content"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
}

func TestWritePDF(t *testing.T) {
	path := t.TempDir() + "/audit.pdf"
	if err := WritePDF(sampleRecords(), path); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	// Smoke check only: the file exists and starts with the PDF magic.
	b, err := readFilePrefix(path, 5)
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if string(b) != "%PDF-" {
		t.Fatalf("unexpected file prefix %q", b)
	}
}
