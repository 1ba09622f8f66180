package exam

// Record is one scheduled exam. ExamDate is kept as stored ("2006-01-02" or
// RFC 3339) and is only interpreted by a dates.Calendar.
type Record struct {
	ID       string   `json:"id"`
	ExamName string   `json:"exam_name"`
	Subject  string   `json:"subject"`
	ExamDate string   `json:"exam_date"`
	Topics   []string `json:"topics,omitempty"`

	OwnerID   string `json:"owner_id,omitempty"`
	CreatedAt int64  `json:"created_at,omitempty"`
}
