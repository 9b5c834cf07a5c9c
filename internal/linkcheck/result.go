package linkcheck

// Result aggregates the findings of one run over an input file list.
type Result struct {
	Findings     []Finding
	FilesTotal   int
	LinksTotal   int
	LinksByClass map[Class]int
}

// HasErrors returns true if any finding was recorded.
func (r *Result) HasErrors() bool {
	return len(r.Findings) > 0
}

// Messages renders every finding in discovery order.
func (r *Result) Messages() []string {
	out := make([]string, 0, len(r.Findings))
	for _, f := range r.Findings {
		out = append(out, f.Message())
	}
	return out
}

// CountByKind returns the number of findings of the given kind.
func (r *Result) CountByKind(kind FindingKind) int {
	count := 0
	for _, f := range r.Findings {
		if f.Kind == kind {
			count++
		}
	}
	return count
}
