package seo

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"github.com/Odunjoy/NaijaStoic-props/discord"
	"github.com/Odunjoy/NaijaStoic-props/errs"
	mapset "github.com/deckarep/golang-set/v2"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

//go:embed data/seo_content.csv
var defaultCSV []byte

// Template is one row of the SEO table. Values handed out by a Store are
// copies; mutating them never affects the store.
type Template struct {
	ID             int      `json:"id"`
	OriginalTitle  string   `json:"original_title"`
	LocalizedTitle string   `json:"naija_title"`
	Tags           []string `json:"tags"`
	Hashtags       []string `json:"hashtags"`
}

func (t Template) clone() Template {
	t.Tags = append(make([]string, 0, len(t.Tags)), t.Tags...)
	t.Hashtags = append(make([]string, 0, len(t.Hashtags)), t.Hashtags...)
	return t
}

type entry struct {
	template Template
	keywords []string
}

// Store is the read-only template table, sorted by id.
type Store struct {
	entries []entry
	byID    map[int]int
}

var columns = []string{"id", "original_title", "naija_title", "tags", "hashtags"}

// Load reads the table from path, or the embedded table when path is empty.
func Load(path string) (*Store, error) {
	if path == "" {
		return Parse(bytes.NewReader(defaultCSV))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.New(errs.Configuration, "opening seo table", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			discord.Errorf("error closing %s: %v", path, err)
		}
	}()
	return Parse(f)
}

// MustLoad is Load for process start, where an unusable table is fatal.
func MustLoad(path string) *Store {
	s, err := Load(path)
	if err != nil {
		panic(err)
	}
	return s
}

// Parse reads a csv table. Malformed rows are skipped with a warning; a
// missing header or a table without a single usable row is an error.
func Parse(r io.Reader) (*Store, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errs.New(errs.Configuration, "reading seo table header", err)
	}
	index := make(map[string]int)
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, c := range columns {
		if _, ok := index[c]; !ok {
			return nil, errs.Newf(errs.Configuration, "seo table is missing column %q", c)
		}
	}

	s := &Store{byID: make(map[int]int)}
	line := 1
	for {
		line++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				discord.Warnf("Skipping seo row %d: %v", line, err)
				continue
			}
			return nil, errs.New(errs.Configuration, "reading seo table", err)
		}
		t, err := parseRow(record, index)
		if err != nil {
			discord.Warnf("Skipping seo row %d: %v", line, err)
			continue
		}
		if _, ok := s.byID[t.ID]; ok {
			discord.Warnf("Skipping seo row %d: duplicate id %d", line, t.ID)
			continue
		}
		s.byID[t.ID] = len(s.entries)
		s.entries = append(s.entries, entry{template: t, keywords: keywords(t)})
	}
	if len(s.entries) == 0 {
		return nil, errs.Newf(errs.Configuration, "seo table has no usable rows")
	}

	sort.Slice(s.entries, func(i, j int) bool {
		return s.entries[i].template.ID < s.entries[j].template.ID
	})
	for i, e := range s.entries {
		s.byID[e.template.ID] = i
	}
	return s, nil
}

func parseRow(record []string, index map[string]int) (Template, error) {
	field := func(name string) string {
		i := index[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	if len(record) < len(columns) {
		return Template{}, fmt.Errorf("expected %d fields, got %d", len(columns), len(record))
	}
	id, err := strconv.Atoi(field("id"))
	if err != nil {
		return Template{}, fmt.Errorf("invalid id %q", field("id"))
	}
	t := Template{
		ID:             id,
		OriginalTitle:  field("original_title"),
		LocalizedTitle: field("naija_title"),
		Tags:           splitCell(field("tags")),
		Hashtags:       splitCell(field("hashtags")),
	}
	if t.LocalizedTitle == "" {
		return Template{}, fmt.Errorf("empty naija_title for id %d", id)
	}
	return t, nil
}

func splitCell(cell string) []string {
	out := make([]string, 0)
	seen := mapset.NewThreadUnsafeSet[string]()
	for _, p := range strings.Split(cell, ",") {
		p = strings.TrimSpace(p)
		if p == "" || !seen.Add(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Get returns the template with id.
func (s *Store) Get(id int) (Template, error) {
	i, ok := s.byID[id]
	if !ok {
		return Template{}, errs.Newf(errs.TemplateNotFound, "no seo template with id %d (known: %d-%d)",
			id, s.entries[0].template.ID, s.entries[len(s.entries)-1].template.ID)
	}
	return s.entries[i].template.clone(), nil
}

// Default is the template used when nothing matches: the lowest id.
func (s *Store) Default() Template {
	return s.entries[0].template.clone()
}

func (s *Store) All() []Template {
	out := make([]Template, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.template.clone())
	}
	return out
}

func (s *Store) Len() int {
	return len(s.entries)
}
