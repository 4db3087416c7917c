// Package behavior derives a small per-visitor profile from passive browsing
// signals and maps it to one of a fixed set of call-to-action copy variants.
// The reducer and CTA selection are pure; persistence sits behind Store.
package behavior

import (
	"strings"
	"time"

	"github.com/lewieville/g1-creative-sub000/internal/domain"
)

// Call-to-action copy variants, in priority order.
const (
	CTAFirstVisit  = "Book Your Free Consultation"
	CTAPricing     = "Questions About Pricing? Let's Talk"
	CTACaseStudies = "Ready to Start Your Project?"
	CTAExploring   = "Still Exploring? We're Here to Help"
	CTAReturning   = "Welcome Back! Let's Continue Where We Left Off"
)

// Dwell-time threshold (seconds) before the "still exploring" variant fires.
const exploringThreshold = 120

// Event is a signal that advances a profile. Exactly two exist: a page load
// and a one-second dwell tick.
type Event interface {
	isEvent()
}

// PageViewed records one fresh page load at the given path.
type PageViewed struct {
	Path string
	At   time.Time
}

// TickElapsed records one second of dwell time with the tab open.
type TickElapsed struct{}

func (PageViewed) isEvent()  {}
func (TickElapsed) isEvent() {}

// Reduce applies one event to a profile and returns the next profile. It is
// pure: no clock, no storage, no logging. The section flags are monotonic —
// Reduce only ever ORs them upward.
func Reduce(p domain.BehaviorProfile, ev Event) domain.BehaviorProfile {
	switch e := ev.(type) {
	case PageViewed:
		p.VisitCount++
		p.HasViewedPricing = p.HasViewedPricing || strings.Contains(e.Path, "/pricing")
		p.HasViewedCaseStudies = p.HasViewedCaseStudies ||
			strings.Contains(e.Path, "/insights") || strings.Contains(e.Path, "/portfolio")
		at := e.At
		p.LastVisitDate = &at
	case TickElapsed:
		p.TimeOnSite++
	}
	return p
}

// SelectCTA maps a profile to call-to-action copy. First match wins; the
// ordering encodes which behavioral signal is the strongest buying signal
// (pricing intent > case-study interest > dwell time > generic return visit).
func SelectCTA(p domain.BehaviorProfile) string {
	switch {
	case p.IsFirstVisit:
		return CTAFirstVisit
	case p.VisitCount > 1 && p.HasViewedPricing:
		return CTAPricing
	case p.VisitCount > 1 && p.HasViewedCaseStudies:
		return CTACaseStudies
	case p.VisitCount > 1 && p.TimeOnSite > exploringThreshold:
		return CTAExploring
	case p.VisitCount > 1:
		return CTAReturning
	default:
		return CTAFirstVisit
	}
}
