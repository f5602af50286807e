package store

import (
	"strings"
	"testing"
)

func TestParseSeedCSV(t *testing.T) {
	input := strings.Join([]string{
		"category_id,category_name,sort_order",
		"health,Health,1",
		"money,Money,2",
	}, "\n")

	records, err := parseSeedCSV(strings.NewReader(input), []string{"category_id", "category_name", "sort_order"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0][0] != "health" || records[0][1] != "Health" || records[0][2] != "1" {
		t.Errorf("first record mismatch: %v", records[0])
	}
}

func TestParseSeedCSVReordersColumns(t *testing.T) {
	// The header order in the file does not have to match the insert order.
	input := strings.Join([]string{
		"user_name,password_hash,user_id",
		"Ken,hash123,ken",
	}, "\n")

	records, err := parseSeedCSV(strings.NewReader(input), []string{"user_id", "user_name", "password_hash"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"ken", "Ken", "hash123"}
	for i, v := range want {
		if records[0][i] != v {
			t.Errorf("column %d: expected %q, got %q", i, v, records[0][i])
		}
	}
}

func TestParseSeedCSVQuotedFields(t *testing.T) {
	input := strings.Join([]string{
		"knowledge_id,fact_type,fact_text",
		`1,action,"Bought a remote, wasted money"`,
	}, "\n")

	records, err := parseSeedCSV(strings.NewReader(input), []string{"knowledge_id", "fact_type", "fact_text"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records[0][2] != "Bought a remote, wasted money" {
		t.Errorf("quoted field not preserved: %q", records[0][2])
	}
}

func TestParseSeedCSVMissingColumn(t *testing.T) {
	input := strings.Join([]string{
		"category_id,category_name",
		"health,Health",
	}, "\n")

	_, err := parseSeedCSV(strings.NewReader(input), []string{"category_id", "sort_order"})
	if err == nil {
		t.Fatal("expected an error for a missing column")
	}
	if !strings.Contains(err.Error(), "sort_order") {
		t.Errorf("error should name the missing column: %v", err)
	}
}

func TestParseSeedCSVEmptyFile(t *testing.T) {
	_, err := parseSeedCSV(strings.NewReader(""), []string{"user_id"})
	if err == nil {
		t.Fatal("expected an error for a file without a header")
	}
}
