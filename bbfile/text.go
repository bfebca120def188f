package bbfile

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/beaverkit/beaver/machine"
)

// ReadTables reads the text format: one compact table per line. Blank
// lines and lines starting with '#' are skipped. A parse failure reports
// the offending line number.
func ReadTables(r io.Reader) ([]machine.TransitionTable, error) {
	var out []machine.TransitionTable
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		tb, err := machine.ParseTable(text)
		if err != nil {
			return nil, fmt.Errorf("bbfile: line %d: %w", line, err)
		}
		out = append(out, tb)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("bbfile: %w", err)
	}
	return out, nil
}

// WriteTables writes tables in the text format, one per line.
func WriteTables(w io.Writer, tables []machine.TransitionTable) error {
	bw := bufio.NewWriter(w)
	for _, tb := range tables {
		if _, err := bw.WriteString(tb.String()); err != nil {
			return fmt.Errorf("bbfile: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("bbfile: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("bbfile: %w", err)
	}
	return nil
}
