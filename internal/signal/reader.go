// Package signal loads one-dimensional real-valued sequences from disk
// and computes one-pass summary statistics over them.
package signal

import (
	"encoding/binary"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Format identifies a signal file format.
type Format string

const (
	// FormatAuto selects the format from the file extension.
	FormatAuto Format = ""
	// FormatCSV is comma-separated values, any number of fields per record.
	FormatCSV Format = "csv"
	// FormatF64 is raw little-endian float64 samples.
	FormatF64 Format = "f64"
	// FormatJSON is a single JSON array of numbers.
	FormatJSON Format = "json"
)

// Read loads a signal from path. With FormatAuto the format is chosen
// by extension: .csv, .f64 (also .bin, .raw), .json.
func Read(path string, format Format) ([]float64, error) {
	if format == FormatAuto {
		var err error
		if format, err = detectFormat(path); err != nil {
			return nil, err
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening signal file %s: %w", path, err)
	}
	defer f.Close()

	var values []float64

	switch format {
	case FormatCSV:
		values, err = readCSV(f)
	case FormatF64:
		values, err = readF64(f)
	case FormatJSON:
		values, err = readJSON(f)
	default:
		return nil, fmt.Errorf("unsupported signal format %q", format)
	}

	if err != nil {
		return nil, fmt.Errorf("reading signal file %s: %w", path, err)
	}

	return values, nil
}

func detectFormat(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return FormatCSV, nil
	case ".f64", ".bin", ".raw":
		return FormatF64, nil
	case ".json":
		return FormatJSON, nil
	default:
		return FormatAuto, fmt.Errorf("cannot detect signal format from extension %q", ext)
	}
}

func readCSV(r io.Reader) ([]float64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	values := make([]float64, 0, 1024)

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, err
		}

		for _, field := range record {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}

			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("parsing value %q: %w", field, err)
			}

			values = append(values, v)
		}
	}

	return values, nil
}

func readF64(r io.Reader) ([]float64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if len(data)%8 != 0 {
		return nil, fmt.Errorf("raw float64 data length %d is not a multiple of 8", len(data))
	}

	values := make([]float64, len(data)/8)
	for i := range values {
		bits := binary.LittleEndian.Uint64(data[i*8:])
		values[i] = math.Float64frombits(bits)
	}

	return values, nil
}

func readJSON(r io.Reader) ([]float64, error) {
	var values []float64
	if err := json.NewDecoder(r).Decode(&values); err != nil {
		return nil, err
	}

	return values, nil
}
