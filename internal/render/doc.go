// Package render turns sitemap resources into files under the output
// directory.
//
// The engine is chosen by the final extension of the resolved template:
// ".tmpl" and ".gotmpl" run through html/template, ".md" and ".markdown" run
// through text/template and then goldmark, and anything else is copied as-is.
// HTML output is wrapped in the site layout unless the resource opts out.
package render
