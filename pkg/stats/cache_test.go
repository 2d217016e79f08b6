package stats

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadIfExists(t *testing.T) {
	ds, found, err := LoadIfExists(filepath.Join(t.TempDir(), "missing.csv"))
	if err != nil || found || ds != nil {
		t.Fatalf("missing file: ds=%v found=%v err=%v", ds, found, err)
	}

	_, found, err = LoadIfExists(writeFile(t, "empty.csv", ""))
	if !found || !errors.Is(err, ErrEmptyDataset) {
		t.Fatalf("empty file: found=%v err=%v", found, err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	src := "Country,Year,Population,Density\nJapan,2020,125.8,333.5\nChad,2020,16.4,13\n"
	ds, err := Load(writeFile(t, "pop.csv", src))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	var buf bytes.Buffer
	if err := ds.WriteCSV(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.String() != src {
		t.Fatalf("csv differs:\n%s\nwant\n%s", buf.String(), src)
	}

	out := filepath.Join(t.TempDir(), "copy.csv")
	if err := ds.Save(out); err != nil {
		t.Fatalf("save: %v", err)
	}
	again, found, err := LoadIfExists(out)
	if err != nil || !found {
		t.Fatalf("reload: found=%v err=%v", found, err)
	}
	if again.Len() != 2 || !again.Has(ColDensity) {
		t.Fatalf("unexpected reload %s", again.Info())
	}
	if !strings.Contains(again.Info(), "2020 - 2020") {
		t.Fatalf("info missing year range: %s", again.Info())
	}
}

func TestLoadFromURL(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pop.csv":
			fmt.Fprint(w, threeYears)
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	ds, err := Load(ts.URL + "/pop.csv")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ds.Len() != 3 || ds.Source() != ts.URL+"/pop.csv" {
		t.Fatalf("unexpected dataset %s", ds.Info())
	}

	if _, err := Load(ts.URL + "/gone.csv"); err == nil {
		t.Fatalf("expected error for 404")
	}
}
