package entity

import "time"

// Task is one calendar entry. Date is the literal YYYY-MM-DD string the front
// end renders its date grid from; it is stored verbatim, not as a native date.
type Task struct {
	ID          int64
	AccountID   int64
	Name        string
	Description string
	Type        string
	Time        string
	Date        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
