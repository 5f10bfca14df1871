package batch

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrEmptyInput is returned when no reader is supplied.
var ErrEmptyInput = errors.New("no task input")

// maxLineSize bounds a single task line.
const maxLineSize = 1024 * 1024

// ReadTasks reads one task per line from r. Lines are trimmed; blank lines
// and '#' comments are skipped. CRLF line endings are accepted.
func ReadTasks(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, ErrEmptyInput
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var tasks []string
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		tasks = append(tasks, text)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read tasks after line %d: %w", line, err)
	}
	return tasks, nil
}

// ReadTaskFile reads tasks from the file at path.
func ReadTaskFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open task file: %w", err)
	}
	defer f.Close()

	tasks, err := ReadTasks(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tasks, nil
}
