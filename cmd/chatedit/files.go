package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/aerissecure/chatedit"
	"github.com/aerissecure/chatedit/docx"
	"github.com/aerissecure/chatedit/xlsx"
)

// readWorkbook opens an .xlsx file as a snapshot.
func readWorkbook(path string) (chatedit.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return chatedit.Snapshot{}, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return chatedit.Snapshot{}, err
	}
	s, err := xlsx.ReadWorkbook(f, info.Size())
	if err != nil {
		return chatedit.Snapshot{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// readTables opens a .docx file and imports its tables.
func readTables(path string) (chatedit.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return chatedit.Snapshot{}, err
	}
	s, err := docx.ReadTables(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return chatedit.Snapshot{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// readInput reads path, or stdin when path is "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func writeWorkbook(path string, s chatedit.Snapshot) error {
	var buf bytes.Buffer
	if err := xlsx.WriteWorkbook(&buf, s); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// writeHTML writes the rendered snapshot to path, or to stdout when path is
// empty or "-".
func writeHTML(path string, stdout io.Writer, s chatedit.Snapshot, highlight []string) error {
	html := xlsx.RenderHTML(s, xlsx.RenderOptions{
		Highlight:      highlight,
		HighlightColor: cfg.Render.HighlightColor,
		AllSheets:      cfg.Render.AllSheets,
	})
	if path == "" || path == "-" {
		_, err := io.WriteString(stdout, html)
		return err
	}
	return os.WriteFile(path, []byte(html), 0o644)
}
