package record

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/sift/internal/errors"
)

// Supported dataset formats, keyed by file extension.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// tomlRecordsKey is the top-level array TOML datasets must use, since TOML
// documents cannot be bare arrays.
const tomlRecordsKey = "records"

// maxConcurrentLoads bounds LoadAll's file reads.
const maxConcurrentLoads = 4

// FormatOf returns the dataset format implied by path's extension, or ""
// when the extension is not supported.
func FormatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return ""
	}
}

// Load reads one dataset file from fs. JSON and YAML files hold a list of
// objects at the top level; TOML files hold a "records" array of tables.
func Load(fs afero.Fs, path string) ([]Record, error) {
	format := FormatOf(path)
	if format == "" {
		return nil, errors.NewDatasetError("cannot infer format from extension", errors.ErrUnsupportedFormat).
			WithPath(path)
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewDatasetError("cannot read file", errors.ErrDatasetNotFound).WithPath(path)
		}
		return nil, errors.NewDatasetError("cannot read file", err).WithPath(path)
	}

	records, err := Decode(data, format)
	if err != nil {
		return nil, errors.NewDatasetError("decode failed", err).WithPath(path).WithFormat(format)
	}
	return records, nil
}

// Decode parses raw dataset bytes in the given format.
func Decode(data []byte, format string) ([]Record, error) {
	var raw []map[string]any

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case FormatTOML:
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		tables, err := tomlRecords(doc)
		if err != nil {
			return nil, err
		}
		raw = tables
	default:
		return nil, errors.ErrUnsupportedFormat
	}

	records := make([]Record, 0, len(raw))
	for _, m := range raw {
		if m == nil {
			return nil, errors.Wrap(errors.ErrMalformedDataset, "null entry in record list")
		}
		records = append(records, Record(m))
	}
	return records, nil
}

func tomlRecords(doc map[string]any) ([]map[string]any, error) {
	v, ok := doc[tomlRecordsKey]
	if !ok {
		return nil, errors.Wrapf(errors.ErrMalformedDataset, "missing top-level %q array", tomlRecordsKey)
	}
	list, ok := v.([]any)
	if !ok {
		return nil, errors.Wrapf(errors.ErrMalformedDataset, "%q must be an array of tables", tomlRecordsKey)
	}
	tables := make([]map[string]any, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, errors.Wrapf(errors.ErrMalformedDataset, "%q must be an array of tables", tomlRecordsKey)
		}
		tables = append(tables, m)
	}
	return tables, nil
}

// LoadAll loads several dataset files concurrently and concatenates their
// records in argument order. The first failure cancels the remaining loads
// and all failures are returned joined.
func LoadAll(ctx context.Context, fs afero.Fs, paths []string) ([]Record, error) {
	results := make([][]Record, len(paths))

	p := pool.New().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(maxConcurrentLoads)
	for i, path := range paths {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			records, err := Load(fs, path)
			if err != nil {
				return err
			}
			results[i] = records
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	var all []Record
	for _, records := range results {
		all = append(all, records...)
	}
	return all, nil
}
