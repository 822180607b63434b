package lemmatizer

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
)

// DefaultLookupCommand is the program used for optimized-lookup models.
const DefaultLookupCommand = "hfst-optimized-lookup"

// unknownAnalysis is appended by the lookup tool to words it cannot analyze.
const unknownAnalysis = "+?"

// CommandOptions configures a CommandAnalyzer.
type CommandOptions struct {
	// Command defaults to DefaultLookupCommand.
	Command string
	// Args are passed before the model path.
	Args []string
	// TempDir receives decompressed models; empty means os.TempDir().
	TempDir string
}

// CommandAnalyzer drives a long-running lookup process that reads one word
// per line and answers with "word<TAB>analysis<TAB>weight" lines terminated
// by a blank line. Calls are serialised; once the process fails every later
// call returns the failure.
type CommandAnalyzer struct {
	mu        sync.Mutex
	cmd       *exec.Cmd
	stdin     io.WriteCloser
	stdout    *bufio.Reader
	tempModel string
	failed    error
	closed    bool
}

// NewCommandAnalyzer starts the lookup process for modelPath. Gzip models
// are decompressed to a temporary file first.
func NewCommandAnalyzer(modelPath string, opts CommandOptions) (*CommandAnalyzer, error) {
	command := opts.Command
	if command == "" {
		command = DefaultLookupCommand
	}
	bin, err := exec.LookPath(command)
	if err != nil {
		return nil, fmt.Errorf("lookup command for %s: %w", modelPath, err)
	}

	a := &CommandAnalyzer{}
	model := modelPath
	if strings.HasSuffix(modelPath, ".gz") {
		model, err = gunzipToTemp(modelPath, opts.TempDir)
		if err != nil {
			return nil, err
		}
		a.tempModel = model
	}

	args := append(append([]string{}, opts.Args...), model)
	a.cmd = exec.Command(bin, args...)
	a.cmd.Stderr = io.Discard
	if a.stdin, err = a.cmd.StdinPipe(); err != nil {
		a.removeTemp()
		return nil, err
	}
	stdout, err := a.cmd.StdoutPipe()
	if err != nil {
		a.removeTemp()
		return nil, err
	}
	a.stdout = bufio.NewReader(stdout)
	if err := a.cmd.Start(); err != nil {
		a.removeTemp()
		return nil, fmt.Errorf("start %s: %w", command, err)
	}
	// A model the tool rejects makes it exit at once; surface that now
	// rather than as a failure on every word.
	if _, err := a.Analyze("a"); err != nil {
		a.Close()
		return nil, fmt.Errorf("%s %s: %w", command, modelPath, err)
	}
	return a, nil
}

func gunzipToTemp(path, dir string) (string, error) {
	in, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer in.Close()

	gz, err := gzip.NewReader(in)
	if err != nil {
		return "", fmt.Errorf("decompress %s: %w", path, err)
	}
	defer gz.Close()

	out, err := os.CreateTemp(dir, "lemma-model-*.hfst.ol")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, gz); err != nil {
		out.Close()
		os.Remove(out.Name())
		return "", fmt.Errorf("decompress %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(out.Name())
		return "", err
	}
	return out.Name(), nil
}

// Analyze sends word to the lookup process and collects its analyses.
func (a *CommandAnalyzer) Analyze(word string) ([]string, error) {
	if word == "" {
		return nil, nil
	}
	if strings.ContainsAny(word, "\r\n") {
		return nil, fmt.Errorf("word %q contains a line break", word)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.failed != nil {
		return nil, a.failed
	}
	if _, err := io.WriteString(a.stdin, word+"\n"); err != nil {
		a.failed = fmt.Errorf("lookup process: %w", err)
		return nil, a.failed
	}

	var analyses []string
	for {
		line, err := a.stdout.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			a.failed = fmt.Errorf("lookup process: %w", err)
			return nil, a.failed
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			return analyses, nil
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 || strings.HasSuffix(fields[1], unknownAnalysis) {
			continue
		}
		analyses = append(analyses, fields[1])
	}
}

// Close stops the lookup process and removes any decompressed model.
func (a *CommandAnalyzer) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}
	a.closed = true
	if a.failed == nil {
		a.failed = errors.New("lookup process closed")
	}
	a.stdin.Close()
	err := a.cmd.Wait()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		err = nil
	}
	a.removeTemp()
	return err
}

func (a *CommandAnalyzer) removeTemp() {
	if a.tempModel != "" {
		os.Remove(a.tempModel)
		a.tempModel = ""
	}
}
