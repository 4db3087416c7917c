package domain

import "time"

// BehaviorProfile accumulates passive browsing signals for one visitor.
// HasViewedPricing and HasViewedCaseStudies are monotonic: once true they
// never flip back to false for the life of the profile. TimeOnSite is
// wall-clock seconds with the tab open, persisted on every tick so a refresh
// resumes rather than resetting.
type BehaviorProfile struct {
	IsFirstVisit         bool       `json:"isFirstVisit"`
	HasViewedPricing     bool       `json:"hasViewedPricing"`
	HasViewedCaseStudies bool       `json:"hasViewedCaseStudies"`
	TimeOnSite           int        `json:"timeOnSite"`
	VisitCount           int        `json:"visitCount"`
	LastVisitDate        *time.Time `json:"lastVisitDate,omitempty"`
}
