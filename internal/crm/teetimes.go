package crm

import (
	"context"
	"strings"

	"github.com/golfph/gateway/internal/odoo"
)

type odooTeeTimes struct {
	client *odoo.Client
}

type teeTimeRecord struct {
	ID        int64         `json:"id"`
	Reference odoo.String   `json:"x_name"`
	Date      odoo.String   `json:"x_studio_date"`
	Time      odoo.String   `json:"x_studio_time"`
	Status    odoo.String   `json:"x_studio_selection_field_8jm_1j7dq7a1s"`
	Course    odoo.Relation `json:"x_studio_golf_course"`
	Deduction odoo.Int      `json:"x_studio_buddy_pass_deduction"`
	Sequence  odoo.Int      `json:"x_studio_sequence"`
}

var teeTimeFields = []string{
	"x_name", fieldTeeDate, fieldTeeTime, fieldTeeStatus,
	fieldTeeCourse, fieldTeeDeduction, fieldTeeSequence,
}

const teeTimeOrder = "x_studio_date desc, x_studio_time desc, x_studio_sequence desc"

// memberDomain builds the appointment domain for one member, widening to an
// OR over reference and course when a search term is present. The same domain
// feeds both the count call and the page fetch so the reported total always
// matches what paging would yield.
func (t *odooTeeTimes) memberDomain(ctx context.Context, partnerID int64, q string) (odoo.Domain, error) {
	base := odoo.F(fieldTeeMember, "=", partnerID)
	if q == "" {
		return odoo.Domain{base}, nil
	}

	// Searching the course by display name needs the matching course ids
	// first, since the appointment only holds the relation.
	var courses []struct {
		ID int64 `json:"id"`
	}
	err := t.client.SearchRead(ctx, ModelGolfCourse,
		odoo.And(odoo.F("x_name", "ilike", q)),
		odoo.SearchOpts{Fields: []string{"id"}, Limit: 200}, &courses)
	if err != nil {
		return nil, err
	}
	courseIDs := make([]int64, 0, len(courses))
	for _, c := range courses {
		courseIDs = append(courseIDs, c.ID)
	}
	if len(courseIDs) == 0 {
		// Keep the in-operator valid with an impossible id.
		courseIDs = []int64{-1}
	}

	return odoo.Domain{
		"&", base,
		"|",
		odoo.F("x_name", "ilike", q),
		odoo.F(fieldTeeCourse, "in", courseIDs),
	}, nil
}

// ListForMember returns one page of the member's appointments plus the total
// count under the same domain.
func (t *odooTeeTimes) ListForMember(ctx context.Context, partnerID int64, q string, limit, offset int) ([]Appointment, int, error) {
	q = strings.ToLower(strings.TrimSpace(q))
	dom, err := t.memberDomain(ctx, partnerID, q)
	if err != nil {
		return nil, 0, err
	}

	total, err := t.client.SearchCount(ctx, ModelTeeTime, dom)
	if err != nil {
		return nil, 0, err
	}

	var records []teeTimeRecord
	err = t.client.SearchRead(ctx, ModelTeeTime, dom, odoo.SearchOpts{
		Fields: teeTimeFields,
		Limit:  limit,
		Offset: offset,
		Order:  teeTimeOrder,
	}, &records)
	if err != nil {
		return nil, 0, err
	}

	items := make([]Appointment, 0, len(records))
	for _, rec := range records {
		item := Appointment{
			ID:         rec.ID,
			Reference:  rec.Reference.String(),
			Date:       rec.Date.String(),
			Time:       rec.Time.String(),
			Status:     rec.Status.String(),
			CourseName: rec.Course.Label(),
			Deduction:  int(rec.Deduction),
			Sequence:   int(rec.Sequence),
		}
		if id, ok := rec.Course.ID(); ok {
			item.CourseID = &id
		}
		items = append(items, item)
	}
	return items, total, nil
}

// Create inserts a tee-time appointment for the booking.
func (t *odooTeeTimes) Create(ctx context.Context, b Booking) (int64, error) {
	values := odoo.Values{
		fieldTeeMember:    b.PartnerID,
		fieldTeeCourse:    b.CourseID,
		fieldTeeDate:      b.Date,
		fieldTeeTime:      b.Time,
		fieldTeePlayers:   strings.Join(b.Players, ", "),
		fieldTeeDeduction: b.Deduction,
	}
	return t.client.Create(ctx, ModelTeeTime, values)
}
