package timeseries

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/dtwgesture/internal/tokens"
)

// File format tokens.
const (
	DatasetHeader     = "GRT_LABELLED_TIME_SERIES_CLASSIFICATION_DATA_FILE_V1.0"
	timeSeriesMarker  = "************TIME_SERIES************"
	unnamedDatasetTag = "NOT_SET"
)

// Save writes d in the labelled time-series dataset text format.
func (d *Dataset) Save(w io.Writer) error {
	name := d.name
	if name == "" {
		name = unnamedDatasetTag
	}

	tw := tokens.NewWriter(w)
	tw.Line(DatasetHeader)
	tw.Line("DatasetName:", name)
	tw.Line("InfoText:", d.info)
	tw.Line("NumDimensions:", d.dims)
	tw.Line("TotalNumTrainingExamples:", len(d.samples))
	tw.Line("NumberOfClasses:", len(d.tracker))
	tw.Line("ClassIDsAndCounters:")
	for _, t := range d.tracker {
		tw.Row([]float64{float64(t.Label), float64(t.Count)})
	}
	tw.Line("UseExternalRanges:", d.useExternal)
	if d.useExternal {
		for _, r := range d.external {
			tw.Row([]float64{r.Min, r.Max})
		}
	}
	tw.Line("LabelledTimeSeriesTrainingData:")
	for _, s := range d.samples {
		tw.Line(timeSeriesMarker)
		tw.Line("ClassID:", s.Label)
		tw.Line("TimeSeriesLength:", s.Len())
		tw.Line("TimeSeriesData:")
		writeRows(tw, s.Data)
	}

	return tw.Flush()
}

// SaveFile writes d to path, creating or truncating it.
func (d *Dataset) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = d.Save(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Load parses a dataset written by Save. Any unexpected token fails the
// whole load with ErrMalformedDataset.
func Load(r io.Reader) (*Dataset, error) {
	d, err := load(tokens.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDataset, err)
	}
	return d, nil
}

// LoadFile opens path and calls Load.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}

func load(tr *tokens.Reader) (*Dataset, error) {
	if err := tr.Expect(DatasetHeader); err != nil {
		return nil, err
	}
	if err := tr.Expect("DatasetName:"); err != nil {
		return nil, err
	}
	name, err := tr.Next()
	if err != nil {
		return nil, err
	}
	if err = tr.Expect("InfoText:"); err != nil {
		return nil, err
	}
	var info []string
	for {
		tok, err := tr.Next()
		if err != nil {
			return nil, err
		}
		if tok == "NumDimensions:" {
			break
		}
		info = append(info, tok)
	}
	dims, err := tr.Int()
	if err != nil {
		return nil, err
	}
	if dims < 1 {
		return nil, fmt.Errorf("NumDimensions %d", dims)
	}
	total, err := tr.KeyInt("TotalNumTrainingExamples:")
	if err != nil {
		return nil, err
	}
	numClasses, err := tr.KeyInt("NumberOfClasses:")
	if err != nil {
		return nil, err
	}
	if total < 0 || numClasses < 0 {
		return nil, fmt.Errorf("negative counts %d/%d", total, numClasses)
	}
	if err = tr.Expect("ClassIDsAndCounters:"); err != nil {
		return nil, err
	}
	want := make(map[int]int, numClasses)
	for k := 0; k < numClasses; k++ {
		label, err := tr.Int()
		if err != nil {
			return nil, err
		}
		count, err := tr.Int()
		if err != nil {
			return nil, err
		}
		want[label] = count
	}

	d := NewDataset(dims)
	d.name = name
	if name == unnamedDatasetTag {
		d.name = ""
	}
	d.info = strings.Join(info, " ")
	_, d.allowNull = want[NullClassLabel]

	useExternal, err := tr.KeyBool("UseExternalRanges:")
	if err != nil {
		return nil, err
	}
	if useExternal {
		ranges := make([]MinMax, dims)
		for j := range ranges {
			if ranges[j].Min, err = tr.Float(); err != nil {
				return nil, err
			}
			if ranges[j].Max, err = tr.Float(); err != nil {
				return nil, err
			}
		}
		d.external, d.useExternal = ranges, true
	}

	if err = tr.Expect("LabelledTimeSeriesTrainingData:"); err != nil {
		return nil, err
	}
	for x := 0; x < total; x++ {
		if err = tr.Expect(timeSeriesMarker); err != nil {
			return nil, err
		}
		label, err := tr.KeyInt("ClassID:")
		if err != nil {
			return nil, err
		}
		length, err := tr.KeyInt("TimeSeriesLength:")
		if err != nil {
			return nil, err
		}
		if length < 1 {
			return nil, fmt.Errorf("sample %d has length %d", x, length)
		}
		if err = tr.Expect("TimeSeriesData:"); err != nil {
			return nil, err
		}
		data, err := readRows(tr, length, dims)
		if err != nil {
			return nil, err
		}
		if err = d.AddSample(label, data); err != nil {
			return nil, fmt.Errorf("sample %d: %w", x, err)
		}
	}

	for _, t := range d.tracker {
		if want[t.Label] != t.Count {
			return nil, fmt.Errorf("class %d declares %d samples, found %d", t.Label, want[t.Label], t.Count)
		}
	}
	if len(d.tracker) != numClasses {
		return nil, fmt.Errorf("declared %d classes, found %d", numClasses, len(d.tracker))
	}

	return d, nil
}

func writeRows(tw *tokens.Writer, m *mat.Dense) {
	rows, _ := m.Dims()
	for i := 0; i < rows; i++ {
		tw.Row(m.RawRowView(i))
	}
}

func readRows(tr *tokens.Reader, rows, cols int) (*mat.Dense, error) {
	data := make([]float64, rows*cols)
	for i := range data {
		v, err := tr.Float()
		if err != nil {
			return nil, err
		}
		data[i] = v
	}
	return mat.NewDense(rows, cols, data), nil
}

// WriteMatrix writes m as tab-separated rows, one per line.
func WriteMatrix(w io.Writer, m *mat.Dense) error {
	tw := tokens.NewWriter(w)
	writeRows(tw, m)
	return tw.Flush()
}

// ReadMatrix parses whitespace-separated rows, one per line. Blank lines and
// lines starting with '#' are skipped. Every row must have the same width.
func ReadMatrix(r io.Reader) (*mat.Dense, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<24)

	var (
		data []float64
		cols int
		rows int
		line int
	)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == '\t' || r == ' ' || r == ','
		})
		if rows == 0 {
			cols = len(fields)
		} else if len(fields) != cols {
			return nil, fmt.Errorf("%w: line %d has %d columns, want %d", ErrDimensionMismatch, line, len(fields), cols)
		}
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			data = append(data, v)
		}
		rows++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrEmptySample
	}

	return mat.NewDense(rows, cols, data), nil
}

// ReadMatrixFile opens path and calls ReadMatrix.
func ReadMatrixFile(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadMatrix(f)
}
