package sqlstore

import (
	"time"

	"github.com/forecourt/go-dealers/core"
)

func (r *dealerRecord) toDomain() core.Dealer {
	if r == nil {
		return core.Dealer{}
	}
	return core.Dealer{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Postcode:  r.Postcode,
		Phone:     r.Phone,
		Website:   r.Website,
		Status:    core.DealerStatus(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func newDealerCredentialRecord(in core.WriteCredentialInput, now time.Time) *dealerCredentialRecord {
	return &dealerCredentialRecord{
		DealerID:                   in.DealerID,
		AdvertisementID:            in.AdvertisementID,
		AdditionalAdvertisementIDs: copyStringSlice(in.AdditionalAdvertisementIDs),
		PrimaryAdvertisementID:     in.PrimaryAdvertisementID,
		AdvertisementIDsParsed:     copyStringSlice(in.AdvertisementIDsParsed),
		IntegrationID:              in.IntegrationID,
		CompanyName:                in.CompanyName,
		CompanyLogoURL:             in.CompanyLogoURL,
		InvitationStatus:           string(core.InvitationStatusNone),
		CreatedAt:                  now,
		UpdatedAt:                  now,
	}
}

func (r *dealerCredentialRecord) applyWrite(in core.WriteCredentialInput, now time.Time) {
	if r == nil {
		return
	}
	r.AdvertisementID = in.AdvertisementID
	r.AdditionalAdvertisementIDs = copyStringSlice(in.AdditionalAdvertisementIDs)
	r.PrimaryAdvertisementID = in.PrimaryAdvertisementID
	r.AdvertisementIDsParsed = copyStringSlice(in.AdvertisementIDsParsed)
	r.IntegrationID = in.IntegrationID
	r.CompanyName = in.CompanyName
	r.CompanyLogoURL = in.CompanyLogoURL
	r.UpdatedAt = now
}

func (r *dealerCredentialRecord) toDomain() core.DealerCredential {
	if r == nil {
		return core.DealerCredential{}
	}
	return core.DealerCredential{
		DealerID:                   r.DealerID,
		AdvertisementID:            r.AdvertisementID,
		AdditionalAdvertisementIDs: copyStringSlice(r.AdditionalAdvertisementIDs),
		PrimaryAdvertisementID:     r.PrimaryAdvertisementID,
		AdvertisementIDsParsed:     copyStringSlice(r.AdvertisementIDsParsed),
		IntegrationID:              r.IntegrationID,
		CompanyName:                r.CompanyName,
		CompanyLogoURL:             r.CompanyLogoURL,
		InvitationStatus:           core.InvitationStatus(r.InvitationStatus),
		CreatedAt:                  r.CreatedAt,
		UpdatedAt:                  r.UpdatedAt,
	}
}

func (r *joinSubmissionRecord) toDomain() core.JoinSubmission {
	if r == nil {
		return core.JoinSubmission{}
	}
	submission := core.JoinSubmission{
		ID:           r.ID,
		DealerName:   r.DealerName,
		Email:        r.Email,
		Postcode:     r.Postcode,
		Phone:        r.Phone,
		Status:       core.SubmissionStatus(r.Status),
		VehicleCount: r.VehicleCount,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.DealerID != nil {
		submission.DealerID = *r.DealerID
	}
	return submission
}

func (r *vehicleRecord) toDomain() core.Vehicle {
	if r == nil {
		return core.Vehicle{}
	}
	return core.Vehicle{
		ID:           r.ID,
		DealerID:     r.DealerID,
		Registration: r.Registration,
		Make:         r.Make,
		Model:        r.Model,
		Derivative:   r.Derivative,
		Year:         r.Year,
		Mileage:      r.Mileage,
		PricePence:   r.PricePence,
		CostPence:    r.CostPence,
		SoldPence:    r.SoldPence,
		Status:       core.VehicleStatus(r.Status),
		Checklist:    copyBoolMap(r.Checklist),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func copyStringSlice(in []string) []string {
	if in == nil {
		return []string{}
	}
	return append([]string(nil), in...)
}

func copyBoolMap(in map[string]bool) map[string]bool {
	if len(in) == 0 {
		return map[string]bool{}
	}
	out := make(map[string]bool, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
