package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// Read returns at most maxLines from the end of the file at path. A missing
// file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()
	return tail(file, maxLines)
}

// tail keeps the last n lines of r in a ring.
func tail(r io.Reader, n int) ([]string, error) {
	ring := make([]string, n)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	seen := 0
	for scanner.Scan() {
		ring[seen%n] = scanner.Text()
		seen++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if seen <= n {
		return ring[:seen], nil
	}
	start := seen % n
	return append(ring[start:], ring[:start]...), nil
}
