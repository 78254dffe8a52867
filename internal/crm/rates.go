package crm

import (
	"context"
	"strings"

	"github.com/golfph/gateway/internal/odoo"
)

type odooRates struct {
	client *odoo.Client
}

type courseRecord struct {
	ID          int64       `json:"id"`
	DisplayName odoo.String `json:"display_name"`
	LineIDs     []int64     `json:"x_studio_green_fee"`
}

type rateLineRecord struct {
	ID             int64         `json:"id"`
	Destination    odoo.String   `json:"x_studio_destination"`
	LocalWeekday   odoo.Float    `json:"x_studio_local_wd"`
	LocalWeekend   odoo.Float    `json:"x_studio_local_we"`
	ForeignWeekday odoo.Float    `json:"x_studio_foreign_wd"`
	ForeignWeekend odoo.Float    `json:"x_studio_foreign_we"`
	ACRWeekday     odoo.Float    `json:"x_studio_acr_wd"`
	ACRWeekend     odoo.Float    `json:"x_studio_acr_we"`
	Caddy          odoo.Float    `json:"x_studio_caddy"`
	GolfCart       odoo.Float    `json:"x_studio_golf_cart"`
	Insurance      odoo.Float    `json:"x_studio_insurance"`
	Consumables    odoo.Float    `json:"x_studio_consumables"`
	Prepayment     odoo.String   `json:"x_studio_prepayment"`
	Promotion      odoo.String   `json:"x_studio_promotion"`
	Notes          odoo.String   `json:"x_studio_notes"`
	Course         odoo.Relation `json:"x_golf_course_rates_id"`
}

var rateLineFields = []string{
	"x_studio_acr_wd", "x_studio_acr_we", "x_studio_caddy",
	"x_studio_consumables", "x_studio_destination",
	"x_studio_foreign_wd", "x_studio_foreign_we", "x_studio_golf_cart",
	"x_studio_insurance", "x_studio_local_wd", "x_studio_local_we",
	"x_studio_notes", "x_studio_prepayment", "x_studio_promotion",
	fieldRateCourseRef,
}

// Courses lists rate-sheet parents, restricted to dashboard-visible records
// unless includeAll is set.
func (r *odooRates) Courses(ctx context.Context, includeAll bool, limit int) ([]Course, error) {
	dom := odoo.Domain{}
	if !includeAll {
		dom = odoo.And(odoo.F(fieldShowToDashboard, "=", true))
	}
	var records []courseRecord
	err := r.client.SearchRead(ctx, ModelRateCourse, dom, odoo.SearchOpts{
		Fields: []string{"id", "display_name", fieldRateLines},
		Limit:  limit,
	}, &records)
	if err != nil {
		return nil, err
	}
	courses := make([]Course, 0, len(records))
	for _, rec := range records {
		courses = append(courses, Course{
			ID:      rec.ID,
			Name:    rec.DisplayName.String(),
			LineIDs: rec.LineIDs,
		})
	}
	return courses, nil
}

// Lines fetches the rate lines belonging to the given parents, preferring the
// parents' explicit one2many id lists and falling back to the back-reference
// field when no parent carries ids. The destination filter is a
// case-insensitive substring match applied over the fetched lines.
func (r *odooRates) Lines(ctx context.Context, courses []Course, destination string, limit int) ([]RateLine, error) {
	var lineIDs, courseIDs []int64
	for _, c := range courses {
		lineIDs = append(lineIDs, c.LineIDs...)
		courseIDs = append(courseIDs, c.ID)
	}

	var dom odoo.Domain
	if len(lineIDs) > 0 {
		dom = odoo.And(odoo.F("id", "in", lineIDs))
	} else {
		dom = odoo.And(odoo.F(fieldRateCourseRef, "in", courseIDs))
	}

	var records []rateLineRecord
	err := r.client.SearchRead(ctx, ModelRateLine, dom,
		odoo.SearchOpts{Fields: rateLineFields, Limit: limit}, &records)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(destination))
	lines := make([]RateLine, 0, len(records))
	for _, rec := range records {
		if needle != "" && !strings.Contains(strings.ToLower(rec.Destination.String()), needle) {
			continue
		}
		line := RateLine{
			ID:             rec.ID,
			Destination:    rec.Destination.String(),
			LocalWeekday:   float64(rec.LocalWeekday),
			LocalWeekend:   float64(rec.LocalWeekend),
			ForeignWeekday: float64(rec.ForeignWeekday),
			ForeignWeekend: float64(rec.ForeignWeekend),
			ACRWeekday:     float64(rec.ACRWeekday),
			ACRWeekend:     float64(rec.ACRWeekend),
			Caddy:          float64(rec.Caddy),
			GolfCart:       float64(rec.GolfCart),
			Insurance:      float64(rec.Insurance),
			Consumables:    float64(rec.Consumables),
			Prepayment:     rec.Prepayment.String(),
			Promotion:      rec.Promotion.String(),
			Notes:          rec.Notes.String(),
			CourseName:     rec.Course.Label(),
		}
		if id, ok := rec.Course.ID(); ok {
			line.CourseID = id
		}
		lines = append(lines, line)
	}
	return lines, nil
}
