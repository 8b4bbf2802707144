package migrator

// Report summarizes ledger and source state for human inspection.
type Report struct {
	Total        int      `json:"total"`
	Applied      int      `json:"applied"`
	Pending      int      `json:"pending"`
	AppliedFiles []string `json:"applied_files"`
	PendingFiles []string `json:"pending_files"`
}

// StatusOf composes a plan into a report. Pure; no database access.
func StatusOf(plan *Plan) Report {
	pf := make([]string, 0, len(plan.Pending))
	for _, sc := range plan.Pending {
		pf = append(pf, sc.Filename)
	}
	return Report{
		Total:        len(plan.All),
		Applied:      len(plan.Applied),
		Pending:      len(plan.Pending),
		AppliedFiles: append([]string(nil), plan.Applied...),
		PendingFiles: pf,
	}
}
