package lemmatizer

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// entrySeparator divides the lemma from its forms on a dictionary line.
const entrySeparator = "==="

// Entry is one dictionary line: a lemma and the surface forms that map to it.
type Entry struct {
	Lemma string
	Forms []string
}

// ParseEntries reads dictionary lines from r. Parsing is lenient: blank
// lines and lines that do not split into exactly a lemma and a form list
// are skipped.
func ParseEntries(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		if e, ok := parseEntry(scanner.Text()); ok {
			entries = append(entries, e)
		}
	}
	return entries, scanner.Err()
}

func parseEntry(line string) (Entry, bool) {
	if strings.TrimSpace(line) == "" {
		return Entry{}, false
	}
	fields := splitDropTrailing(line, entrySeparator)
	if len(fields) != 2 {
		return Entry{}, false
	}
	lemma := strings.TrimSpace(fields[0])
	if lemma == "" {
		return Entry{}, false
	}
	var forms []string
	for _, form := range strings.Split(fields[1], ";") {
		if form != "" {
			forms = append(forms, form)
		}
	}
	if len(forms) == 0 {
		return Entry{}, false
	}
	return Entry{Lemma: lemma, Forms: forms}, true
}

// splitDropTrailing splits s on sep and drops trailing empty fields, so
// "lemma===" yields one field and is rejected as an entry.
func splitDropTrailing(s, sep string) []string {
	fields := strings.Split(s, sep)
	for len(fields) > 0 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	return fields
}

// FormatEntry renders e in the dictionary line format.
func FormatEntry(e Entry) string {
	return e.Lemma + entrySeparator + strings.Join(e.Forms, ";")
}

// ReadEntries reads a gzip-compressed dictionary file.
func ReadEntries(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("read dictionary %s: %w", path, err)
	}
	defer gz.Close()

	entries, err := ParseEntries(gz)
	if err != nil {
		return nil, fmt.Errorf("read dictionary %s: %w", path, err)
	}
	return entries, nil
}

// WriteEntries writes entries to path as a gzip-compressed dictionary file,
// replacing any existing file.
func WriteEntries(path string, entries []Entry) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	gz := gzip.NewWriter(file)
	w := bufio.NewWriter(gz)
	for _, e := range entries {
		if _, err := w.WriteString(FormatEntry(e) + "\n"); err != nil {
			file.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return err
	}
	if err := gz.Close(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
