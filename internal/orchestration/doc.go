// Package orchestration runs one or more π engines concurrently, forwards
// their progress to a reporter and compares their results. Presentation is
// reached only through the ProgressReporter, ResultPresenter and
// ErrorHandler interfaces.
package orchestration
