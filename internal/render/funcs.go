package render

import (
	"html/template"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleReplacer = strings.NewReplacer("-", " ", "_", " ", "/", " / ")

// Title turns a template name such as "templates/hero-banner" into
// "Templates / Hero Banner".
func Title(s string) string {
	return cases.Title(language.English).String(titleReplacer.Replace(s))
}

// URL returns a root-relative link for p.
func URL(p string) string {
	return "/" + strings.TrimLeft(p, "/")
}

// FuncMap returns the helpers available to every template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"title": Title,
		"url":   URL,
	}
}
