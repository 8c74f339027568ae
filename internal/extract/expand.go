package extract

// Update is one row of the output table.
type Update struct {
	ProjectID ProjectID `json:"project_id"`
	Date      string    `json:"date"`
	Comment   string    `json:"comment"`
}

// Record returns the update as output cells in Header order.
func (u Update) Record() []string {
	return []string{u.ProjectID.String(), u.Date, u.Comment}
}

// Expand fans one source row out into its updates. Every update carries id.
// Without annotations a single update with Null date and comment is returned.
// Comments are left raw.
func Expand(id ProjectID, annotations []Annotation) []Update {
	if len(annotations) == 0 {
		return []Update{{ProjectID: id, Date: Null, Comment: Null}}
	}

	updates := make([]Update, len(annotations))
	for i, a := range annotations {
		updates[i] = Update{ProjectID: id, Date: a.Date, Comment: a.Comment}
	}
	return updates
}
