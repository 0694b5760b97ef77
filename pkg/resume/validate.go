package resume

import (
	"errors"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/yaklabco/cvrender/pkg/mdast"
)

// Field length limits.
const (
	maxShort         = 50
	maxEducationSpan = 200
	maxStack         = 200
	maxKeywords      = 100
	maxAppName       = 20
	maxGPA           = 20
)

var (
	errNotHTTPURL = errors.New("must be an absolute http or https URL")
	errNoMarkdown = errors.New("markdown text is required")
	errEmptySkill = errors.New("individual skill cannot be empty")
)

// shortText is a required string of at most 50 characters.
//
//nolint:gochecknoglobals // Shared rule set.
var shortText = []validation.Rule{validation.Required, validation.RuneLength(1, maxShort)}

// httpURL accepts only absolute http(s) URLs.
//
//nolint:gochecknoglobals // Shared rule.
var httpURL = validation.By(func(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errNotHTTPURL
	}
	return nil
})

// markdownRequired requires a resolved, non-empty Markdown field.
//
//nolint:gochecknoglobals // Shared rule.
var markdownRequired = validation.By(func(value any) error {
	field, ok := value.(mdast.Field)
	if !ok || field.Text == "" || !field.HasAST() {
		return errNoMarkdown
	}
	return nil
})

// nonEmptySkill rejects blank entries in a skill list.
//
//nolint:gochecknoglobals // Shared rule.
var nonEmptySkill = validation.By(func(value any) error {
	if s, _ := value.(string); s == "" {
		return errEmptySkill
	}
	return nil
})

// Validate checks the whole resume.
func (r Resume) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Personal),
		validation.Field(&r.Skills, validation.Required),
		validation.Field(&r.Languages, validation.Required),
		validation.Field(&r.Education, validation.Required),
		validation.Field(&r.Experience, validation.Required),
		validation.Field(&r.Metadata),
	)
}

// Validate checks the name.
func (n Name) Validate() error {
	return validation.ValidateStruct(&n,
		validation.Field(&n.First, shortText...),
		validation.Field(&n.Last, shortText...),
	)
}

// Validate checks personal information.
func (p Personal) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name),
		validation.Field(&p.Title, shortText...),
		validation.Field(&p.Summary, markdownRequired),
		validation.Field(&p.Location, shortText...),
		validation.Field(&p.Contact),
	)
}

// Validate checks contact details.
func (c Contact) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required, is.EmailFormat),
		validation.Field(&c.LinkedIn),
		validation.Field(&c.Telegram),
		validation.Field(&c.GitHub),
	)
}

// Validate checks the link URL.
func (l Link) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.URL, validation.Required, httpURL),
	)
}

// Validate checks a language entry.
func (l Language) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Language, shortText...),
		validation.Field(&l.Level, shortText...),
	)
}

// Validate checks the GPA.
func (g GPA) Validate() error {
	return validation.ValidateStruct(&g,
		validation.Field(&g.Cumulative, validation.Required, validation.RuneLength(1, maxGPA)),
		validation.Field(&g.Major, validation.Required, validation.RuneLength(1, maxGPA)),
	)
}

// Validate checks an education entry.
func (e Education) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Institution, shortText...),
		validation.Field(&e.Degree, shortText...),
		validation.Field(&e.Period, validation.Required, validation.RuneLength(1, maxEducationSpan)),
		validation.Field(&e.Location, shortText...),
		validation.Field(&e.Specialization, shortText...),
		validation.Field(&e.Focus, shortText...),
		validation.Field(&e.GPA),
	)
}

// Validate checks an experience entry.
func (e Experience) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Company, shortText...),
		validation.Field(&e.Position, shortText...),
		validation.Field(&e.Period, shortText...),
		validation.Field(&e.Location, shortText...),
		validation.Field(&e.Description, markdownRequired),
		validation.Field(&e.Achievements, validation.Required, validation.Each(markdownRequired)),
		validation.Field(&e.Stack, validation.Required, validation.RuneLength(1, maxStack)),
	)
}

// Validate checks PDF and site metadata.
func (m Metadata) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.PDFTitle, shortText...),
		validation.Field(&m.PDFAuthor, shortText...),
		validation.Field(&m.PDFSubject, shortText...),
		validation.Field(&m.PDFKeywords, validation.Required, validation.RuneLength(1, maxKeywords)),
		validation.Field(&m.PDFFilename, shortText...),
		validation.Field(&m.URL, validation.Required, httpURL),
		validation.Field(&m.AppName, validation.Required, validation.RuneLength(1, maxAppName)),
	)
}

// Validate checks a skill category.
func (s SkillCategory) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Category, shortText...),
		validation.Field(&s.Skills, validation.Required, validation.Each(nonEmptySkill)),
	)
}
