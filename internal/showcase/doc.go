// Package showcase maps template files onto showcase pages.
//
// Every source file matched by the configured glob patterns becomes a proxy
// resource at {showcase_path}/{template_name}/index.html, and one index page
// at {showcase_path}/index.html lists them all.
//
// Two path rules are in play and they are deliberately not the same:
//
//   - ExtensionStrip (URL and template name) removes the final extension and
//     then a literal ".html" suffix: "a.html.tmpl" -> "a", "a.txt" -> "a".
//   - BuildSourcePath (proxy target) keeps paths whose final extension is
//     empty or ".html" and otherwise removes only the final extension:
//     "a.html.tmpl" -> "a.html", "a.html" -> "a.html", "a.txt" -> "a".
package showcase
