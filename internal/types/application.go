//nolint:revive // types is a standard Go package name pattern
package types

// ApplicationStatus is the review state of an application.
type ApplicationStatus string

// Application statuses.
const (
	ApplicationPending     ApplicationStatus = "pending"
	ApplicationReviewing   ApplicationStatus = "reviewing"
	ApplicationShortlisted ApplicationStatus = "shortlisted"
	ApplicationInterview   ApplicationStatus = "interview"
	ApplicationOffer       ApplicationStatus = "offer"
	ApplicationAccepted    ApplicationStatus = "accepted"
	ApplicationRejected    ApplicationStatus = "rejected"
	ApplicationWithdrawn   ApplicationStatus = "withdrawn"
)

// ApplicationStatuses returns every status in lifecycle order.
func ApplicationStatuses() []ApplicationStatus {
	return []ApplicationStatus{
		ApplicationPending, ApplicationReviewing, ApplicationShortlisted, ApplicationInterview,
		ApplicationOffer, ApplicationAccepted, ApplicationRejected, ApplicationWithdrawn,
	}
}

// ApplicationStats summarizes the applications received by one job.
type ApplicationStats struct {
	Total             int                       `json:"total"`
	ByStatus          map[ApplicationStatus]int `json:"by_status"`
	AverageMatchScore float64                   `json:"average_match_score"`
}
