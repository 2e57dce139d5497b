package platform

import (
	"context"
	"fmt"
	"strings"
)

// baseboardColumns are queried from `wmic baseboard`. wmic sorts the
// requested properties alphabetically in its output.
var baseboardColumns = []string{"Manufacturer", "Product", "SerialNumber", "Version"}

// wmicColumn is one header column with its byte offset.
type wmicColumn struct {
	name  string
	start int
}

// parseWmicTable parses the fixed-width table printed by `wmic <alias> get`.
// Column boundaries are taken from the header word offsets, so values with
// embedded spaces are kept intact. Only the first data row is returned.
func parseWmicTable(command, raw string) (map[string]string, error) {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(raw, "\r", ""), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return nil, parseError(command, raw, "expected a header and a data row")
	}

	header := lines[0]
	var cols []wmicColumn
	for i := 0; i < len(header); {
		if header[i] == ' ' {
			i++
			continue
		}
		j := i
		for j < len(header) && header[j] != ' ' {
			j++
		}
		cols = append(cols, wmicColumn{name: header[i:j], start: i})
		i = j
	}

	row := lines[1]
	values := make(map[string]string, len(cols))
	for k, col := range cols {
		if col.start >= len(row) {
			values[col.name] = ""
			continue
		}
		end := len(row)
		if k+1 < len(cols) && cols[k+1].start < end {
			end = cols[k+1].start
		}
		values[col.name] = strings.TrimSpace(row[col.start:end])
	}
	return values, nil
}

// ParseMotherboardOutput parses `wmic baseboard get Manufacturer,Product,SerialNumber,Version`:
//
//	Manufacturer           Product        SerialNumber     Version
//	ASUSTeK COMPUTER INC.  PRIME B450M-A  190436626900451  Rev X.0x
func ParseMotherboardOutput(raw string) (Motherboard, error) {
	const command = "wmic baseboard"

	values, err := parseWmicTable(command, raw)
	if err != nil {
		return Motherboard{}, err
	}
	for _, name := range baseboardColumns {
		if _, ok := values[name]; !ok {
			return Motherboard{}, parseError(command, raw, "missing column %q", name)
		}
	}

	return Motherboard{
		Manufacturer: values["Manufacturer"],
		Product:      values["Product"],
		SerialNumber: values["SerialNumber"],
		Version:      values["Version"],
	}, nil
}

// ReadMotherboard runs `wmic baseboard` on Windows.
func ReadMotherboard(ctx context.Context, runner CommandRunner, c Category) (Motherboard, error) {
	if c.Family() != FamilyWindows {
		return Motherboard{}, fmt.Errorf("wmic on %s: %w", c, ErrPlatformMismatch)
	}

	output, err := runner.Run(ctx, "wmic", "baseboard", "get", strings.Join(baseboardColumns, ","))
	if err != nil {
		return Motherboard{}, err
	}
	return ParseMotherboardOutput(output)
}
