package stats

import (
	"errors"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	xlsx "github.com/360EntSecGroup-Skylar/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := ioutil.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return p
}

const threeYears = "Year,Population\n2000,100\n2001,200\n2002,300\n"

func TestLoadCSV(t *testing.T) {
	ds, err := Load(writeFile(t, "pop.csv", threeYears))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ds.Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", ds.Len())
	}
	if ds.Has(ColUrban) || ds.Has(ColDensity) {
		t.Fatalf("optional columns reported present: %v", ds.Columns())
	}
	recs := ds.Records()
	if recs[1].Year != 2001 || recs[1].Population != 200 {
		t.Fatalf("unexpected second record: %+v", recs[1])
	}
	min, max := ds.YearRange()
	if min != 2000 || max != 2002 {
		t.Fatalf("year range = %d..%d", min, max)
	}
}

func TestLoadEmpty(t *testing.T) {
	cases := map[string]string{
		"no bytes":    "",
		"blank lines": "\n\n  \n",
		"header only": "Year,Population\n",
	}
	for name, content := range cases {
		_, err := Load(writeFile(t, "empty.csv", content))
		if !errors.Is(err, ErrEmptyDataset) {
			t.Fatalf("%s: expected ErrEmptyDataset, got %v", name, err)
		}
	}
}

func TestLoadBOM(t *testing.T) {
	ds, err := Load(writeFile(t, "bom.csv", "\ufeffYear,Population\n2000,100\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ds.Columns()[0] != ColYear || ds.Len() != 1 {
		t.Fatalf("unexpected columns %q", ds.Columns())
	}
}

func TestLoadLongHeader(t *testing.T) {
	wide := strings.Repeat("x", 70*1024)
	ds, err := Load(writeFile(t, "wide.csv", "Year,Population,"+wide+"\n2000,100,a\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ds.Len() != 1 || !ds.Has(wide) {
		t.Fatalf("unexpected dataset with %d rows", ds.Len())
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if errors.Is(err, ErrEmptyDataset) {
		t.Fatalf("missing file should not be reported as empty: %v", err)
	}
}

func TestLoadMissingRequiredColumn(t *testing.T) {
	_, err := Load(writeFile(t, "bad.csv", "Year,Urban\n2000,1\n"))
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
}

func TestLoadInvalidYear(t *testing.T) {
	_, err := Load(writeFile(t, "bad.csv", "Year,Population\n2000,1\nsoon,2\n"))
	if !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
}

func TestLoadKeepsExtraColumns(t *testing.T) {
	ds, err := Load(writeFile(t, "pop.csv", "Country,Year,Population,Rank\nJapan,2020,125.8,11\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	r := ds.Records()[0]
	if r.Country != "Japan" || r.Extra["Rank"] != "11" {
		t.Fatalf("unexpected record %+v", r)
	}
	rows := ds.Rows()
	want := []string{"Japan", "2020", "125.8", "11"}
	for i := range want {
		if rows[0][i] != want[i] {
			t.Fatalf("row = %v want %v", rows[0], want)
		}
	}
}

func TestFilterYearsInclusive(t *testing.T) {
	ds, err := Load(writeFile(t, "pop.csv", "Year,Population\n2003,4\n2000,1\n2001,2\n2002,3\n2001,5\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	cases := []struct {
		from, to int
		want     []int
	}{
		{2001, 2002, []int{2001, 2001, 2002}},
		{2000, 2000, []int{2000}},
		{2002, 2001, []int{2001, 2001, 2002}},
		{1990, 1995, nil},
		{1990, 2100, []int{2000, 2001, 2001, 2002, 2003}},
	}
	for _, c := range cases {
		got := ds.FilterYears(c.from, c.to)
		if len(got) != len(c.want) {
			t.Fatalf("[%d,%d] got %d rows want %d", c.from, c.to, len(got), len(c.want))
		}
		for i, r := range got {
			if r.Year != c.want[i] {
				t.Fatalf("[%d,%d] row %d year %d want %d", c.from, c.to, i, r.Year, c.want[i])
			}
		}
	}

	// Rows sharing a year keep file order.
	got := ds.FilterYears(2001, 2001)
	if got[0].Population != 2 || got[1].Population != 5 {
		t.Fatalf("stable order broken: %+v", got)
	}
}

func TestLoadXLSX(t *testing.T) {
	wb := xlsx.NewFile()
	cells := [][]interface{}{
		{"Year", "Population", "Urban"},
		{2000, 100, 40},
		{2001, 200, 90},
	}
	for r, row := range cells {
		for c, v := range row {
			cell, _ := xlsx.CoordinatesToCellName(c+1, r+1)
			if err := wb.SetCellValue("Sheet1", cell, v); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	p := filepath.Join(t.TempDir(), "pop.xlsx")
	if err := wb.SaveAs(p); err != nil {
		t.Fatalf("save fixture: %v", err)
	}

	ds, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ds.Len() != 2 || !ds.Has(ColUrban) {
		t.Fatalf("unexpected dataset: %d rows, columns %v", ds.Len(), ds.Columns())
	}
	if r := ds.Records()[1]; r.Year != 2001 || r.Population != 200 || r.Urban != 90 {
		t.Fatalf("unexpected record %+v", r)
	}
}

func TestExtractRowsFromXLS(t *testing.T) {
	content, err := ioutil.ReadFile("testdata/ledger.xls")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	rows, err := ExtractRowsFromFile(&File{Source: "testdata/ledger.xls", Content: content})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	// Two leading blank rows are dropped.
	if len(rows) != 28 || rows[0][0] != "日期" {
		t.Fatalf("unexpected rows: %d, first %q", len(rows), rows[0])
	}
	// Labels are indented with spaces in the sheet.
	if r := rows[2]; r[0] != "加：当日收入资金" || r[1] == "" {
		t.Fatalf("unexpected row %q", r)
	}
	for _, r := range rows {
		if len(r) != len(rows[0]) {
			t.Fatalf("row %q not padded to %d cells", r, len(rows[0]))
		}
	}
}

func TestFileExt(t *testing.T) {
	cases := map[string]string{
		"data/WorldPopulation.CSV":                ".csv",
		"https://example.org/pop.xlsx?download=1": ".xlsx",
		"http://example.org/a.xls#sheet":          ".xls",
		"noext":                                   "",
	}
	for src, want := range cases {
		f := &File{Source: src}
		if got := f.Ext(); got != want {
			t.Fatalf("%s: ext %q want %q", src, got, want)
		}
	}
}
