package crm

import (
	"context"
	"strings"

	"github.com/golfph/gateway/internal/odoo"
)

type odooPartners struct {
	client *odoo.Client
}

var partnerFields = []string{
	"id", "name", "email", "phone",
	fieldExternalID, fieldMemberStatus, fieldRemainingPasses,
}

type partnerRecord struct {
	ID              int64       `json:"id"`
	Name            odoo.String `json:"name"`
	Email           odoo.String `json:"email"`
	Phone           odoo.String `json:"phone"`
	ExternalID      odoo.String `json:"x_studio_bd_member_id"`
	Status          odoo.String `json:"x_studio_selection_field_33m_1j7j68j38"`
	RemainingPasses odoo.Int    `json:"x_studio_remaining_buddy_passes"`
}

func (r partnerRecord) flatten() *Partner {
	return &Partner{
		ID:              r.ID,
		Name:            r.Name.String(),
		Email:           r.Email.String(),
		Phone:           r.Phone.String(),
		ExternalID:      strings.TrimSpace(r.ExternalID.String()),
		RawStatus:       r.Status.String(),
		RemainingPasses: int(r.RemainingPasses),
	}
}

func (p *odooPartners) findOne(ctx context.Context, dom odoo.Domain) (*Partner, error) {
	var records []partnerRecord
	err := p.client.SearchRead(ctx, ModelPartner, dom,
		odoo.SearchOpts{Fields: partnerFields, Limit: 1}, &records)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0].flatten(), nil
}

func (p *odooPartners) FindByEmail(ctx context.Context, email string) (*Partner, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return p.findOne(ctx, odoo.And(odoo.F("email", "=", email)))
}

func (p *odooPartners) FindByExternalID(ctx context.Context, externalID string) (*Partner, error) {
	return p.findOne(ctx, odoo.And(odoo.F(fieldExternalID, "=", strings.TrimSpace(externalID))))
}

func (p *odooPartners) FindByPhone(ctx context.Context, phone string) (*Partner, error) {
	return p.findOne(ctx, odoo.And(odoo.F("phone", "=", strings.TrimSpace(phone))))
}

func (p *odooPartners) Create(ctx context.Context, values odoo.Values) (int64, error) {
	return p.client.Create(ctx, ModelPartner, values)
}

func (p *odooPartners) Write(ctx context.Context, id int64, values odoo.Values) error {
	return p.client.Write(ctx, ModelPartner, []int64{id}, values)
}

// SetExternalIDOnce attaches the external membership id to the partner found
// by email, refusing to overwrite a non-empty existing value. The identifier
// is immutable through this path once assigned.
func (p *odooPartners) SetExternalIDOnce(ctx context.Context, email, externalID string) (*SetOnceResult, error) {
	partner, err := p.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, nil
	}
	if partner.ExternalID != "" {
		return &SetOnceResult{
			PartnerID:  partner.ID,
			AlreadySet: true,
			ExternalID: partner.ExternalID,
		}, nil
	}
	externalID = strings.TrimSpace(externalID)
	if err := p.Write(ctx, partner.ID, odoo.Values{fieldExternalID: externalID}); err != nil {
		return nil, err
	}
	return &SetOnceResult{
		PartnerID:  partner.ID,
		Updated:    true,
		ExternalID: externalID,
	}, nil
}

// DeductPasses lowers the partner's remaining buddy-pass allowance by the
// given amount, clamped at zero, and returns the new balance. A zero
// deduction performs no write.
func (p *odooPartners) DeductPasses(ctx context.Context, partner *Partner, deduction int) (int, error) {
	if deduction <= 0 {
		return partner.RemainingPasses, nil
	}
	remaining := partner.RemainingPasses - deduction
	if remaining < 0 {
		remaining = 0
	}
	if err := p.Write(ctx, partner.ID, odoo.Values{fieldRemainingPasses: remaining}); err != nil {
		return 0, err
	}
	return remaining, nil
}

// SweepNearExpiry transitions active partners whose near-expiry date has
// passed to the near-expiry status. Records already transitioned are excluded
// from the search, so re-running after a full sweep finds nothing to update.
func (p *odooPartners) SweepNearExpiry(ctx context.Context, today string) ([]int64, error) {
	dom := odoo.And(
		odoo.F("active", "=", true),
		odoo.F(fieldNearExpiry, "!=", false),
		odoo.F(fieldNearExpiry, "<=", today),
		odoo.F(fieldMemberStatus, "!=", statusNearExpiry),
	)
	ids, err := p.client.Search(ctx, ModelPartner, dom, 0)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []int64{}, nil
	}
	err = p.client.Write(ctx, ModelPartner, ids, odoo.Values{fieldMemberStatus: statusNearExpiry})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
