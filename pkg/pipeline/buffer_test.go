package pipeline

import (
	"testing"

	"github.com/el-remph/hertzian-steam-tech-test/pkg/review"
)

func rec(id, date string) review.Record {
	return review.Record{ID: id, Date: date, Source: review.Source}
}

func ids(records []review.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func assertIDs(t *testing.T, got []review.Record, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Expected %d records, got %d (%v)", len(want), len(got), ids(got))
	}
	for i, w := range want {
		if got[i].ID != w {
			t.Errorf("Record %d: got id %q, want %q (full order %v)", i, got[i].ID, w, ids(got))
		}
	}
}

func TestBuffer_ExtractSortsEqualDateRun(t *testing.T) {
	var buf Buffer
	buf.Append(rec("b", "2024-01-02"), rec("a", "2024-01-02"), rec("c", "2024-01-02"))

	got, err := buf.Extract(3)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	assertIDs(t, got, "a", "b", "c")
	if buf.Len() != 0 {
		t.Errorf("Expected empty buffer, got %d", buf.Len())
	}
}

func TestBuffer_ExtractPreservesDateDescending(t *testing.T) {
	var buf Buffer
	// Arrival order is date-descending, ids shuffled within each date
	buf.Append(
		rec("z", "2024-03-01"),
		rec("m", "2024-02-01"), rec("k", "2024-02-01"),
		rec("q", "2024-01-15"), rec("p", "2024-01-15"), rec("r", "2024-01-15"),
	)

	got, err := buf.Extract(6)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	assertIDs(t, got, "z", "k", "m", "p", "q", "r")
}

func TestBuffer_ExtractRemovesPrefixOnly(t *testing.T) {
	var buf Buffer
	buf.Append(
		rec("b", "2024-01-03"), rec("a", "2024-01-03"),
		rec("d", "2024-01-02"), rec("c", "2024-01-02"),
	)

	got, err := buf.Extract(2)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	assertIDs(t, got, "a", "b")

	// The remainder stays in arrival order, untouched by the sort
	rest, err := buf.Extract(2)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	assertIDs(t, rest, "c", "d")
}

func TestBuffer_ExtractCutsRunAtN(t *testing.T) {
	var buf Buffer
	buf.Append(rec("d", "2024-01-01"), rec("c", "2024-01-01"), rec("b", "2024-01-01"), rec("a", "2024-01-01"))

	// Only the first two arrivals take part in the sort; the run is cut
	// when the result reaches n
	got, err := buf.Extract(2)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	assertIDs(t, got, "c", "d")

	got, err = buf.Extract(2)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	assertIDs(t, got, "a", "b")
}

func TestBuffer_ExtractTooMany(t *testing.T) {
	var buf Buffer
	buf.Append(rec("a", "2024-01-01"))

	if _, err := buf.Extract(2); err == nil {
		t.Error("Expected error extracting more than buffered")
	}
	if buf.Len() != 1 {
		t.Errorf("Failed extract must not consume records, have %d", buf.Len())
	}
}

func TestBuffer_ExtractAllForDrain(t *testing.T) {
	var buf Buffer
	buf.Append(rec("b", "2024-01-02"), rec("a", "2024-01-02"), rec("c", "2024-01-01"))

	got, err := buf.Extract(buf.Len())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	assertIDs(t, got, "a", "b", "c")
	if buf.Len() != 0 {
		t.Errorf("Expected drained buffer, got %d", buf.Len())
	}
}

func TestBuffer_ExtractZero(t *testing.T) {
	var buf Buffer
	got, err := buf.Extract(0)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected no records, got %d", len(got))
	}
}

func TestBuffer_OwnershipTransfer(t *testing.T) {
	var buf Buffer
	buf.Append(rec("a", "2024-01-02"), rec("b", "2024-01-01"))

	got, err := buf.Extract(1)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	// Later appends must not be able to reach into the extracted slice
	buf.Append(rec("x", "2024-01-01"))
	if got[0].ID != "a" {
		t.Errorf("Extracted records mutated after buffer append: %q", got[0].ID)
	}
}
