package models

// ExtractionResult holds the structured fields pulled out of a free-text
// message by the completion backend. It is transient: validated, consumed to
// build a Task, then discarded.
type ExtractionResult struct {
	Description string  `json:"taakOmschrijving"`
	Company     *string `json:"bedrijfsnaam"`
	Deadline    *string `json:"deadlineString"`
	WeekNumber  *int    `json:"weeknummer"`
}
