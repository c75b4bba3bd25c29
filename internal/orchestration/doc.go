// Package orchestration runs one or more multiplication engines on the same
// operands, feeds their progress to a reporter and compares the products.
// Presentation stays behind the ProgressReporter and ResultPresenter
// interfaces.
package orchestration
