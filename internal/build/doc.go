// Package build runs the site build: gather resources, let extensions
// rewrite the list, validate it and render every page.
//
// All execution paths (the build and list commands, the preview loop, tests)
// go through Service. A Service serves one build at a time; the preview loop
// serializes rebuilds before calling Run.
package build
