// Package sse reads Server-Sent Event streams returned by LLM providers.
package sse

import (
	"bufio"
	"io"
	"iter"
	"strings"
)

// maxLineSize bounds a single SSE line.
const maxLineSize = 1 << 20

// Event is one dispatched server-sent event.
type Event struct {
	// Name is the value of the "event:" field, empty when absent.
	Name string

	// Data is the concatenation of the event's "data:" lines joined by "\n".
	Data string
}

// Read yields events from r until EOF. A read error is yielded once and ends
// the sequence. Comment lines and unknown fields are ignored.
func Read(r io.Reader) iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

		var (
			name    string
			data    []string
			hasData bool
		)
		dispatch := func() bool {
			if !hasData {
				name = ""
				return true
			}
			ev := Event{Name: name, Data: strings.Join(data, "\n")}
			name, data, hasData = "", data[:0], false
			return yield(ev, nil)
		}

		for scanner.Scan() {
			line := strings.TrimSuffix(scanner.Text(), "\r")
			if line == "" {
				if !dispatch() {
					return
				}
				continue
			}
			if strings.HasPrefix(line, ":") {
				continue
			}

			field, value, _ := strings.Cut(line, ":")
			value = strings.TrimPrefix(value, " ")
			switch field {
			case "event":
				name = value
			case "data":
				data = append(data, value)
				hasData = true
			}
		}

		if err := scanner.Err(); err != nil {
			yield(Event{}, err)
			return
		}
		dispatch()
	}
}
