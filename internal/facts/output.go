package facts

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
	"github.com/sigreer/zfsfacts/internal/zfs"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatAuto  = "auto"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"
)

// Formats lists the accepted --output values.
var Formats = []string{FormatAuto, FormatJSON, FormatYAML, FormatTable}

// ResolveFormat turns "auto" into table for terminals and JSON otherwise.
func ResolveFormat(format string, out *os.File) (string, error) {
	if !slices.Contains(Formats, format) {
		return "", fmt.Errorf("unknown output format %q", format)
	}
	if format != FormatAuto {
		return format, nil
	}
	if out != nil && (isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())) {
		return FormatTable, nil
	}
	return FormatJSON, nil
}

// Print writes v in the given format. Table output is only defined for a
// *Response; failures fall back to JSON.
func Print(w io.Writer, format string, v any) error {
	switch format {
	case FormatYAML:
		return PrintYAML(w, v)
	case FormatTable:
		if resp, ok := v.(*Response); ok {
			PrintTable(w, resp)
			return nil
		}
		return PrintJSON(w, v)
	default:
		return PrintJSON(w, v)
	}
}

// PrintJSON outputs v as indented JSON
func PrintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintYAML outputs v as YAML
func PrintYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// PrintTable renders one table per facts key with a row per property.
func PrintTable(w io.Writer, resp *Response) {
	keys := make([]string, 0, len(resp.Facts))
	for k := range resp.Facts {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleRounded)
		t.SetTitle(key)
		t.AppendHeader(table.Row{"Name", "Property", "Value"})

		set := resp.Facts[key]
		if len(set) == 0 {
			t.AppendRow(table.Row{"(none)", "", ""})
		}
		for i, rec := range set {
			if i > 0 {
				t.AppendSeparator()
			}
			for _, prop := range sortedProperties(rec) {
				t.AppendRow(table.Row{rec.Name(), prop, rec[prop]})
			}
		}
		t.Render()
	}
}

func sortedProperties(rec zfs.Record) []string {
	props := make([]string, 0, len(rec))
	for k := range rec {
		if k != "name" {
			props = append(props, k)
		}
	}
	slices.Sort(props)
	return props
}
