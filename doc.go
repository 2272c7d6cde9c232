// Package main provides the entry point of BrandAlign, a brand governance dashboard.
// It serves a fiber web interface where content is checked against the configured
// brand guidelines by a generative model, rewritten and translated, and it offers
// command line tools to import guidelines and analyze single files.
package main
