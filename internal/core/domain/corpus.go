package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
)

// Corpus maps document names to their page-tagged text.
//
// Insertion order is preserved and drives search hit ordering, so the
// corpus is an ordered map rather than a plain Go map. The zero value is an
// empty corpus ready to use.
type Corpus struct {
	names []string
	texts map[string]string
}

// NewCorpus creates an empty corpus.
func NewCorpus() Corpus {
	return Corpus{texts: make(map[string]string)}
}

// Put stores text under name. An existing entry keeps its position.
func (c *Corpus) Put(name, text string) {
	if c.texts == nil {
		c.texts = make(map[string]string)
	}
	if _, ok := c.texts[name]; !ok {
		c.names = append(c.names, name)
	}
	c.texts[name] = text
}

// Text returns the text stored under name.
func (c Corpus) Text(name string) (string, bool) {
	text, ok := c.texts[name]
	return text, ok
}

// Len returns the number of documents.
func (c Corpus) Len() int {
	return len(c.names)
}

// IsEmpty reports whether the corpus holds no documents.
func (c Corpus) IsEmpty() bool {
	return len(c.names) == 0
}

// Names returns document names in insertion order.
func (c Corpus) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// All iterates documents in insertion order.
func (c Corpus) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, name := range c.names {
			if !yield(name, c.texts[name]) {
				return
			}
		}
	}
}

// MarshalJSON encodes the corpus as a JSON object whose key order follows
// insertion order.
func (c Corpus) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range c.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(c.texts[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of name to text, keeping key order.
func (c *Corpus) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("corpus: expected JSON object, got %v", tok)
	}

	out := NewCorpus()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("corpus: expected string key, got %v", tok)
		}
		var text string
		if err := dec.Decode(&text); err != nil {
			return fmt.Errorf("corpus: document %q: %w", name, err)
		}
		out.Put(name, text)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*c = out
	return nil
}
