package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/theirongolddev/spendlog/internal/model"
)

func testExpense(t *testing.T, amount, category, description, date string) model.Expense {
	t.Helper()
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		t.Fatalf("parse amount %q: %v", amount, err)
	}
	return model.Expense{Amount: amt, Category: category, Description: description, Date: date}
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	f := NewJSONFile(filepath.Join(t.TempDir(), "expenses.json"))

	expenses, err := f.Load()
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	if len(expenses) != 0 {
		t.Fatalf("Load on missing file returned %d expenses, want 0", len(expenses))
	}
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	if err := os.WriteFile(path, []byte(`[{"amount": 1,`), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := NewJSONFile(path).Load(); err == nil {
		t.Fatal("Load on malformed JSON returned nil error")
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	f := NewJSONFile(filepath.Join(t.TempDir(), "nested", "expenses.json"))

	want := []model.Expense{
		testExpense(t, "12.50", "Food", "lunch", "2024-05-01T12:30:00.000000"),
		testExpense(t, "3", "Transport", "", "2024-05-02T08:00:00.123456"),
		testExpense(t, "0.1", "", "no category", "2024-05-03T09:00:00.000000"),
	}

	if err := f.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := f.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(got) != len(want) {
		t.Fatalf("Load returned %d expenses, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("expense %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSaveWritesIndentedNumbers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	f := NewJSONFile(path)

	if err := f.Save([]model.Expense{testExpense(t, "10.5", "Food", "a&b", "2024-05-01")}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)

	for _, want := range []string{
		"[\n  {\n",
		`"amount": 10.5,`,
		`"category": "Food",`,
		`"description": "a&b",`,
		`"date": "2024-05-01"`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("saved file missing %q:\n%s", want, text)
		}
	}
}

func TestSaveEmptyWritesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	if err := NewJSONFile(path).Save(nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Fatalf("empty save wrote %q, want []", data)
	}
}

func TestLoadAcceptsLegacyFloatFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	legacy := `[
  {
    "amount": 10.0,
    "category": "Food",
    "description": "",
    "date": "2024-05-01T12:30:00.654321"
  },
  {
    "amount": "5.25",
    "category": "Food",
    "description": "quoted amount",
    "date": "2024-05-01T12:31:00"
  }
]`
	if err := os.WriteFile(path, []byte(legacy), 0o600); err != nil {
		t.Fatal(err)
	}

	expenses, err := NewJSONFile(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(expenses) != 2 {
		t.Fatalf("got %d expenses, want 2", len(expenses))
	}
	if !expenses[0].Amount.Equal(decimal.NewFromInt(10)) {
		t.Errorf("first amount = %s, want 10", expenses[0].Amount)
	}
	if !expenses[1].Amount.Equal(decimal.RequireFromString("5.25")) {
		t.Errorf("second amount = %s, want 5.25", expenses[1].Amount)
	}
	if _, ok := expenses[0].Time(); !ok {
		t.Errorf("date %q did not parse", expenses[0].Date)
	}
}

func TestStatTracksChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	f := NewJSONFile(path)

	if err := f.Save([]model.Expense{testExpense(t, "1", "A", "", "2024-01-01")}); err != nil {
		t.Fatal(err)
	}
	before, err := f.Stat()
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}

	later := time.Now().Add(time.Minute)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	after, err := f.Stat()
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if before == after {
		t.Fatal("Stat did not change after touching the file")
	}
}
