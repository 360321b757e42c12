package domain

// ProgressFunc reports page loading progress.
// Called after each page: (1, 9), (2, 9), ... Total equals loaded when the
// last page is still unknown.
type ProgressFunc func(loaded, total int)
