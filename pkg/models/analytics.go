package models

import "time"

// Overview holds the headline recruitment numbers for an organization
type Overview struct {
	TotalJobs         int `json:"totalJobs"`
	OpenJobs          int `json:"openJobs"`
	TotalCandidates   int `json:"totalCandidates"`
	TotalApplications int `json:"totalApplications"`
	RecentHires       int `json:"recentHires"`
	AvgTimeToHire     int `json:"avgTimeToHire"`
}

// AnalyticsResult is the combined output of the analytics aggregator.
// Pipeline only carries stages that occur in the data.
type AnalyticsResult struct {
	Overview    Overview       `json:"overview"`
	Pipeline    map[Stage]int  `json:"pipeline"`
	Sources     map[Source]int `json:"sources"`
	GeneratedAt time.Time      `json:"generatedAt"`
}

// HirePair is the (appliedAt, hiredAt) pair of a hired application
type HirePair struct {
	AppliedAt time.Time
	HiredAt   time.Time
}

// InsightsResponse is returned by the insights endpoint
type InsightsResponse struct {
	Analytics AnalyticsResult `json:"analytics"`
	Insights  string          `json:"insights"`
	Provider  string          `json:"provider"`
}
