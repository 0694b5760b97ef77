// Package resume defines the resume data model rendered by cvrender templates.
//
// Data is decoded from YAML, normalized (strings trimmed, link display names
// derived), its Markdown fields are parsed and checked against the supported
// vocabulary, and finally the whole document is validated.
package resume

import (
	"strings"

	"github.com/yaklabco/cvrender/pkg/mdast"
)

// Resume is the root of a resume document.
type Resume struct {
	Personal   Personal        `yaml:"personal" json:"personal"`
	Skills     []SkillCategory `yaml:"skills" json:"skills"`
	Languages  []Language      `yaml:"languages" json:"languages"`
	Education  []Education     `yaml:"education" json:"education"`
	Experience []Experience    `yaml:"experience" json:"experience"`
	Metadata   Metadata        `yaml:"metadata" json:"metadata"`
}

// Name is a person's name.
type Name struct {
	First string `yaml:"first" json:"first"`
	Last  string `yaml:"last" json:"last"`
}

// Full returns "First Last".
func (n Name) Full() string {
	return strings.TrimSpace(n.First + " " + n.Last)
}

// Personal holds personal information.
type Personal struct {
	Name     Name        `yaml:"name" json:"name"`
	Title    string      `yaml:"title" json:"title"`
	Summary  mdast.Field `yaml:"summary" json:"summary"`
	Location string      `yaml:"location" json:"location"`
	Contact  Contact     `yaml:"contact" json:"contact"`
}

// Contact holds contact details. Links are optional.
type Contact struct {
	Email    string `yaml:"email" json:"email"`
	LinkedIn *Link  `yaml:"linkedin,omitempty" json:"linkedin,omitempty"`
	Telegram *Link  `yaml:"telegram,omitempty" json:"telegram,omitempty"`
	GitHub   *Link  `yaml:"github,omitempty" json:"github,omitempty"`
}

// Language is a spoken language and proficiency level.
type Language struct {
	Language string `yaml:"language" json:"language"`
	Level    string `yaml:"level" json:"level"`
}

// GPA holds grade averages as free-form strings.
type GPA struct {
	Cumulative string `yaml:"cumulative" json:"cumulative"`
	Major      string `yaml:"major" json:"major"`
}

// Education is a single education entry.
type Education struct {
	Institution    string `yaml:"institution" json:"institution"`
	Degree         string `yaml:"degree" json:"degree"`
	Period         string `yaml:"period" json:"period"`
	Location       string `yaml:"location" json:"location"`
	Specialization string `yaml:"specialization" json:"specialization"`
	Focus          string `yaml:"focus" json:"focus"`
	GPA            GPA    `yaml:"gpa" json:"gpa"`
}

// Experience is a single work experience entry.
type Experience struct {
	Company      string        `yaml:"company" json:"company"`
	Position     string        `yaml:"position" json:"position"`
	Period       string        `yaml:"period" json:"period"`
	Location     string        `yaml:"location" json:"location"`
	Description  mdast.Field   `yaml:"description" json:"description"`
	Achievements []mdast.Field `yaml:"achievements" json:"achievements"`
	Stack        string        `yaml:"stack" json:"stack"`
}

// Metadata carries document metadata such as PDF properties.
type Metadata struct {
	PDFTitle    string `yaml:"pdf_title" json:"pdf_title"`
	PDFAuthor   string `yaml:"pdf_author" json:"pdf_author"`
	PDFSubject  string `yaml:"pdf_subject" json:"pdf_subject"`
	PDFKeywords string `yaml:"pdf_keywords" json:"pdf_keywords"`
	PDFFilename string `yaml:"pdf_filename" json:"pdf_filename"`
	URL         string `yaml:"url" json:"url"`
	AppName     string `yaml:"app_name" json:"app_name"`
}

// SkillCategory groups skills under a heading.
type SkillCategory struct {
	Category string   `yaml:"category" json:"category"`
	Skills   []string `yaml:"skills" json:"skills"`
}
