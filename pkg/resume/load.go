package resume

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/cvrender/pkg/mdast"
)

// Load reads, decodes and validates the resume file at path.
// Markdown fields are parsed with parser.
func Load(path string, parser mdast.Parser) (*Resume, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadData, err)
	}

	res, err := Decode(bytes.NewReader(data), parser)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return res, nil
}

// Decode decodes a resume from YAML, then normalizes, resolves and validates
// it. Errors wrap ErrReadData for malformed YAML and ErrInvalidData for
// schema violations.
func Decode(r io.Reader, parser mdast.Parser) (*Resume, error) {
	var res Resume

	if err := yaml.NewDecoder(r).Decode(&res); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: document is empty", ErrReadData)
		}
		return nil, fmt.Errorf("%w: %w", ErrReadData, err)
	}

	res.normalize()

	if err := res.Resolve(parser); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
	}

	if err := res.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
	}

	return &res, nil
}

// Resolve parses or validates every Markdown field. All failing fields are
// reported, each prefixed with its location, e.g. "experience[0].description".
func (r *Resume) Resolve(parser mdast.Parser) error {
	var errs []error

	resolve := func(path string, field *mdast.Field) {
		if err := field.Resolve(parser); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
		}
	}

	resolve("personal.summary", &r.Personal.Summary)

	for i := range r.Experience {
		exp := &r.Experience[i]
		prefix := "experience[" + strconv.Itoa(i) + "]"

		resolve(prefix+".description", &exp.Description)
		for j := range exp.Achievements {
			resolve(prefix+".achievements["+strconv.Itoa(j)+"]", &exp.Achievements[j])
		}
	}

	return errors.Join(errs...)
}

// normalize trims every plain string and derives link display names.
func (r *Resume) normalize() {
	p := &r.Personal
	trim(&p.Name.First, &p.Name.Last, &p.Title, &p.Location, &p.Contact.Email)
	for _, link := range []*Link{p.Contact.LinkedIn, p.Contact.Telegram, p.Contact.GitHub} {
		if link != nil {
			link.normalize()
		}
	}

	for i := range r.Skills {
		s := &r.Skills[i]
		trim(&s.Category)
		for j := range s.Skills {
			trim(&s.Skills[j])
		}
	}

	for i := range r.Languages {
		trim(&r.Languages[i].Language, &r.Languages[i].Level)
	}

	for i := range r.Education {
		e := &r.Education[i]
		trim(&e.Institution, &e.Degree, &e.Period, &e.Location, &e.Specialization, &e.Focus,
			&e.GPA.Cumulative, &e.GPA.Major)
	}

	for i := range r.Experience {
		e := &r.Experience[i]
		trim(&e.Company, &e.Position, &e.Period, &e.Location, &e.Stack)
	}

	m := &r.Metadata
	trim(&m.PDFTitle, &m.PDFAuthor, &m.PDFSubject, &m.PDFKeywords, &m.PDFFilename, &m.URL, &m.AppName)
}

func trim(values ...*string) {
	for _, v := range values {
		*v = strings.TrimSpace(*v)
	}
}
