package fetcher

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/rotisserie/eris"
)

// ReadTSV reads a tab-separated file and returns the header row and the
// data rows. Eurostat dumps have a ragged tail on some rows, so records are
// not required to share a field count.
func ReadTSV(path string) (header []string, rows [][]string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "tsv: open %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err = r.Read()
	if err != nil {
		return nil, nil, eris.Wrapf(err, "tsv: read header of %s", path)
	}

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, eris.Wrapf(err, "tsv: read %s", path)
		}
		rows = append(rows, record)
	}
	return header, rows, nil
}
