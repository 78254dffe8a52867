// Package crm exposes the ERP's collections as narrow, testable services.
// Each sub-service is an interface with an implementation backed by the
// shared odoo client; handlers depend on the interfaces only.
package crm

import (
	"context"

	"github.com/golfph/gateway/internal/odoo"
)

// Model and field technical names from the ERP's studio setup.
const (
	ModelPartner    = "res.partner"
	ModelRateCourse = "x_golf_course_rates"
	ModelRateLine   = "x_golf_course_rates_line_931dd"
	ModelTeeTime    = "x_tee_time_appointment"
	ModelGolfCourse = "x_golf_course"

	fieldRateLines       = "x_studio_green_fee"
	fieldRateCourseRef   = "x_golf_course_rates_id"
	fieldShowToDashboard = "x_studio_show_to_dashboard"
	fieldDestination     = "x_studio_destination"

	fieldExternalID      = "x_studio_bd_member_id"
	fieldMemberStatus    = "x_studio_selection_field_33m_1j7j68j38"
	fieldNearExpiry      = "x_studio_near_expiry_date"
	fieldRemainingPasses = "x_studio_remaining_buddy_passes"
	fieldDateJoined      = "x_studio_date_joined"
	fieldDateExpiry      = "x_studio_date_expiry"
	fieldSubscriptionID  = "x_studio_subscription_id"

	fieldTeeMember    = "x_studio_member"
	fieldTeeDate      = "x_studio_date"
	fieldTeeTime      = "x_studio_time"
	fieldTeeStatus    = "x_studio_selection_field_8jm_1j7dq7a1s"
	fieldTeeCourse    = "x_studio_golf_course"
	fieldTeeDeduction = "x_studio_buddy_pass_deduction"
	fieldTeeSequence  = "x_studio_sequence"
	fieldTeePlayers   = "x_studio_players"

	// Selection key written by the expiry sweep (key, not label).
	statusNearExpiry = "nexpire"
)

// Partner is a flattened member record.
type Partner struct {
	ID              int64  `json:"partner_id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	ExternalID      string `json:"external_id"`
	RawStatus       string `json:"-"`
	RemainingPasses int    `json:"remaining_passes"`
}

// Course is a rate-sheet parent record.
type Course struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	LineIDs []int64 `json:"line_ids"`
}

// RateLine is a flattened rate-sheet line with stable public field names.
type RateLine struct {
	ID             int64   `json:"id"`
	Destination    string  `json:"destination"`
	LocalWeekday   float64 `json:"local_weekday"`
	LocalWeekend   float64 `json:"local_weekend"`
	ForeignWeekday float64 `json:"foreign_weekday"`
	ForeignWeekend float64 `json:"foreign_weekend"`
	ACRWeekday     float64 `json:"acr_weekday"`
	ACRWeekend     float64 `json:"acr_weekend"`
	Caddy          float64 `json:"caddy"`
	GolfCart       float64 `json:"golf_cart"`
	Insurance      float64 `json:"insurance"`
	Consumables    float64 `json:"consumables"`
	Prepayment     string  `json:"prepayment"`
	Promotion      string  `json:"promotion"`
	Notes          string  `json:"notes"`
	CourseID       int64   `json:"course_id"`
	CourseName     string  `json:"course_name"`
}

// Appointment is a flattened tee-time record.
type Appointment struct {
	ID         int64  `json:"id"`
	Reference  string `json:"reference"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Status     string `json:"status"`
	CourseID   *int64 `json:"golf_course_id"`
	CourseName string `json:"golf_course_name"`
	Deduction  int    `json:"buddy_pass_deduction"`
	Sequence   int    `json:"sequence"`
}

// Booking carries the inputs for creating a tee-time appointment.
type Booking struct {
	PartnerID int64
	CourseID  int64
	Date      string
	Time      string
	Players   []string
	Deduction int
}

// SetOnceResult reports the outcome of a set-once external id assignment.
type SetOnceResult struct {
	PartnerID  int64
	Updated    bool
	AlreadySet bool
	ExternalID string
}

// Partners resolves and mutates member records. Find methods return
// (nil, nil) when no record matches; absence is not an error at this layer.
type Partners interface {
	FindByEmail(ctx context.Context, email string) (*Partner, error)
	FindByExternalID(ctx context.Context, externalID string) (*Partner, error)
	FindByPhone(ctx context.Context, phone string) (*Partner, error)
	Create(ctx context.Context, values odoo.Values) (int64, error)
	Write(ctx context.Context, id int64, values odoo.Values) error
	SetExternalIDOnce(ctx context.Context, email, externalID string) (*SetOnceResult, error)
	DeductPasses(ctx context.Context, partner *Partner, deduction int) (int, error)
	SweepNearExpiry(ctx context.Context, today string) ([]int64, error)
}

// Rates reads the rate-sheet parents and lines.
type Rates interface {
	Courses(ctx context.Context, includeAll bool, limit int) ([]Course, error)
	Lines(ctx context.Context, courses []Course, destination string, limit int) ([]RateLine, error)
}

// TeeTimes lists and creates tee-time appointments.
type TeeTimes interface {
	ListForMember(ctx context.Context, partnerID int64, q string, limit, offset int) ([]Appointment, int, error)
	Create(ctx context.Context, b Booking) (int64, error)
}

// Service bundles the sub-services used by the handlers.
type Service struct {
	Partners Partners
	Rates    Rates
	TeeTimes TeeTimes
}

// New creates a Service with all sub-services backed by the given client.
func New(c *odoo.Client) *Service {
	return &Service{
		Partners: &odooPartners{client: c},
		Rates:    &odooRates{client: c},
		TeeTimes: &odooTeeTimes{client: c},
	}
}
