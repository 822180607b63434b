package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/kerem-kaynak/dict-lemmatizer/pkg/lemmatizer"
)

func main() {
	if len(os.Args) < 3 {
		printUsage()
		os.Exit(1)
	}

	dictPath := os.Args[1]
	command := os.Args[2]

	entries, err := lemmatizer.ReadEntries(dictPath)
	if err != nil && !(command == "add" && errors.Is(err, fs.ErrNotExist)) {
		fmt.Fprintf(os.Stderr, "Error loading dictionary: %v\n", err)
		os.Exit(1)
	}

	switch command {
	case "add":
		if len(os.Args) < 5 {
			fmt.Println("Error: add requires a lemma and at least one form")
			os.Exit(1)
		}
		lemma := os.Args[3]
		entries = addForms(entries, lemma, os.Args[4:])
		save(dictPath, entries)
		fmt.Printf("Added %d form(s) for: %s\n", len(os.Args[4:]), lemma)
		fmt.Printf("Total lemmas: %d\n", len(entries))

	case "remove":
		if len(os.Args) < 4 {
			fmt.Println("Error: remove requires at least one form")
			os.Exit(1)
		}
		for _, form := range os.Args[3:] {
			var removed bool
			entries, removed = removeForm(entries, form)
			if !removed {
				fmt.Fprintf(os.Stderr, "Form '%s' not in dictionary\n", form)
				continue
			}
			fmt.Printf("Removed: %s\n", form)
		}
		save(dictPath, entries)
		fmt.Printf("Total lemmas: %d\n", len(entries))

	case "lookup":
		if len(os.Args) < 4 {
			fmt.Println("Error: lookup requires a form")
			os.Exit(1)
		}
		dict, err := lemmatizer.NewDictionary(entries)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building dictionary: %v\n", err)
			os.Exit(1)
		}
		defer dict.Close()
		form := os.Args[3]
		lemma, ok := dict.Lookup(form)
		if !ok {
			fmt.Printf("'%s' NOT in dictionary\n", form)
			os.Exit(1)
		}
		fmt.Printf("'%s' -> %s\n", form, lemma)

	case "normalize":
		entries = normalize(entries)
		save(dictPath, entries)
		fmt.Printf("Dictionary normalized. Total lemmas: %d\n", len(entries))

	case "stats":
		dict, err := lemmatizer.NewDictionary(entries)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building dictionary: %v\n", err)
			os.Exit(1)
		}
		defer dict.Close()
		forms := 0
		for _, e := range entries {
			forms += len(e.Forms)
		}
		fmt.Printf("Dictionary: %s\n", dictPath)
		fmt.Printf("Entries: %d\n", len(entries))
		fmt.Printf("Forms listed: %d\n", forms)
		fmt.Printf("Distinct forms: %d\n", dict.Len())

	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func save(path string, entries []lemmatizer.Entry) {
	if err := lemmatizer.WriteEntries(path, entries); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing dictionary: %v\n", err)
		os.Exit(1)
	}
}

// addForms appends forms to the entry for lemma, creating it if needed.
func addForms(entries []lemmatizer.Entry, lemma string, forms []string) []lemmatizer.Entry {
	for i := range entries {
		if entries[i].Lemma == lemma {
			entries[i].Forms = appendMissing(entries[i].Forms, forms)
			return entries
		}
	}
	return append(entries, lemmatizer.Entry{Lemma: lemma, Forms: appendMissing(nil, forms)})
}

func appendMissing(have, add []string) []string {
	for _, f := range add {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		found := false
		for _, h := range have {
			if strings.EqualFold(h, f) {
				found = true
				break
			}
		}
		if !found {
			have = append(have, f)
		}
	}
	return have
}

// removeForm deletes form from every entry and drops entries left empty.
func removeForm(entries []lemmatizer.Entry, form string) ([]lemmatizer.Entry, bool) {
	removed := false
	out := entries[:0]
	for _, e := range entries {
		kept := e.Forms[:0]
		for _, f := range e.Forms {
			if strings.EqualFold(f, form) {
				removed = true
				continue
			}
			kept = append(kept, f)
		}
		e.Forms = kept
		if len(e.Forms) > 0 {
			out = append(out, e)
		}
	}
	return out, removed
}

// normalize lowercases and deduplicates forms, merges entries sharing a
// lemma and sorts the result by lemma.
func normalize(entries []lemmatizer.Entry) []lemmatizer.Entry {
	byLemma := make(map[string][]string)
	var lemmas []string
	for _, e := range entries {
		if _, ok := byLemma[e.Lemma]; !ok {
			lemmas = append(lemmas, e.Lemma)
		}
		byLemma[e.Lemma] = appendMissing(byLemma[e.Lemma], e.Forms)
	}
	sort.Strings(lemmas)
	out := make([]lemmatizer.Entry, 0, len(lemmas))
	for _, lemma := range lemmas {
		if forms := byLemma[lemma]; len(forms) > 0 {
			out = append(out, lemmatizer.Entry{Lemma: lemma, Forms: forms})
		}
	}
	return out
}

func printUsage() {
	fmt.Println("Usage: dictmgr <CAT-Dict.txt.gz> <command> [args...]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  add <lemma> <form> [form...] Add forms for a lemma (creates the file)")
	fmt.Println("  remove <form> [form...]      Remove forms from dictionary")
	fmt.Println("  lookup <form>                Show the lemma for a form")
	fmt.Println("  normalize                    Lowercase, deduplicate and sort entries")
	fmt.Println("  stats                        Show dictionary statistics")
}
