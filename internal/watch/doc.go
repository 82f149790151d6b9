// Package watch rebuilds the site when its sources change.
//
// A Watcher follows directory trees with fsnotify, drops editor noise,
// debounces bursts of events and hands rebuilds to a single worker so at most
// one build runs at a time. An optional gocron job rescans the trees on an
// interval to pick up directories fsnotify missed.
package watch
