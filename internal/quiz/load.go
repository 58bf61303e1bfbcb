package quiz

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// Format is a bank file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnsupportedVersion is returned for bank files with a version other
// than FileVersion.
var ErrUnsupportedVersion = errors.New("unsupported bank file version")

//go:embed schema/bank.schema.json
var bankSchemaJSON []byte

const bankSchemaURL = "https://quizbox.local/bank.schema.json"

var (
	bankSchemaOnce sync.Once
	bankSchema     *jsonschema.Schema
	bankSchemaErr  error
)

func compiledBankSchema() (*jsonschema.Schema, error) {
	bankSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(bankSchemaJSON))
		if err != nil {
			bankSchemaErr = fmt.Errorf("parse bank schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(bankSchemaURL, doc); err != nil {
			bankSchemaErr = fmt.Errorf("add bank schema: %w", err)
			return
		}
		bankSchema, bankSchemaErr = c.Compile(bankSchemaURL)
	})
	return bankSchema, bankSchemaErr
}

// FormatFromPath picks the format from the file extension: ".json" is JSON,
// anything else is YAML.
func FormatFromPath(path string) Format {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return FormatJSON
	}
	return FormatYAML
}

// LoadBank reads, parses and validates a bank file.
func LoadBank(path string) (Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Bank{}, fmt.Errorf("read question bank: %w", err)
	}
	return ParseBank(data, FormatFromPath(path))
}

// ParseBank parses a bank document. The document is checked against the
// bank JSON Schema, decoded strictly, and validated.
func ParseBank(data []byte, format Format) (Bank, error) {
	if err := checkSchema(data, format); err != nil {
		return Bank{}, err
	}

	var (
		f   File
		err error
	)
	switch format {
	case FormatJSON:
		f, err = parseJSONFile(data)
	default:
		f, err = parseYAMLFile(data)
	}
	if err != nil {
		return Bank{}, err
	}

	if f.Version != FileVersion {
		return Bank{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, f.Version)
	}
	return f.Bank()
}

func checkSchema(data []byte, format Format) error {
	schema, err := compiledBankSchema()
	if err != nil {
		return err
	}

	jsonData := data
	if format != FormatJSON {
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parse yaml: %w", err)
		}
		jsonData, err = json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("convert yaml: %w", err)
		}
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("parse json: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("question bank schema: %w", err)
	}
	return nil
}

func parseJSONFile(data []byte) (File, error) {
	var f File
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&f); err != nil {
		return File{}, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return File{}, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return File{}, fmt.Errorf("parse json: %w", err)
	}
	return f, nil
}

func parseYAMLFile(data []byte) (File, error) {
	var f File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return File{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return File{}, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return File{}, fmt.Errorf("parse yaml: %w", err)
	}
	return f, nil
}

// WriteBank encodes b in the given format.
func WriteBank(w io.Writer, b Bank, format Format) error {
	f := FileFromBank(b)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}
}

// SaveBank writes b to path, creating parent directories as needed. The
// format follows the file extension.
func SaveBank(path string, b Bank) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create bank directory: %w", err)
	}
	var buf bytes.Buffer
	if err := WriteBank(&buf, b, FormatFromPath(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write question bank: %w", err)
	}
	return nil
}

// LoadOrCreate loads the bank at path. When the file does not exist, the
// default bank is written there first and returned.
func LoadOrCreate(path string) (Bank, bool, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		b := DefaultBank()
		if err := SaveBank(path, b); err != nil {
			return Bank{}, false, err
		}
		return b, true, nil
	}
	b, err := LoadBank(path)
	return b, false, err
}
