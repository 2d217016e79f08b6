package stats

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// LoadIfExists loads a local copy of a dataset if one is present. found is
// false, with a nil error, when the file does not exist.
func LoadIfExists(path string) (ds *Dataset, found bool, err error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	ds, err = Load(path)
	if err != nil {
		return nil, true, err
	}
	return ds, true, nil
}

// Info returns a short description of the dataset.
func (ds *Dataset) Info() string {
	first, last := ds.YearRange()
	return fmt.Sprintf(`
	Source  : %s
	Years   : %d - %d
	Rows    : %d
	Columns : %v
	`, ds.source, first, last, ds.Len(), ds.columns)
}

// WriteCSV writes the dataset with its header in file column order.
func (ds *Dataset) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ds.columns); err != nil {
		return err
	}
	if err := cw.WriteAll(ds.Rows()); err != nil {
		return err
	}
	return cw.Error()
}

// Save writes the dataset as CSV to path.
func (ds *Dataset) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := ds.WriteCSV(f); err != nil {
		f.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	return f.Close()
}
