// Package output formats review reports for display or machine consumption.
//
// Four formats are supported:
//   - text: the review between banners for the terminal (default)
//   - markdown: a heading, the review and a metadata footer
//   - json: the full structured report
//   - html: the markdown review rendered to a standalone page with goldmark
//
// [Publisher] adapts these writers to review.Publisher for local runs.
package output
