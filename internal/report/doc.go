package report

// Package report consumes terminal download results: one structured log line
// per result, live progress bars while downloads run, and a colored
// end-of-run summary. Reporting never propagates errors into the pipeline.
