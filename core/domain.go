package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidDealerStatusTransition     = errors.New("core: invalid dealer status transition")
	ErrInvalidInvitationStatusTransition = errors.New("core: invalid invitation status transition")
	ErrInvalidSubmissionStatusTransition = errors.New("core: invalid submission status transition")
	ErrInvalidVehicleStatusTransition    = errors.New("core: invalid vehicle status transition")
)

type DealerStatus string

const (
	DealerStatusActive    DealerStatus = "active"
	DealerStatusSuspended DealerStatus = "suspended"
	DealerStatusClosed    DealerStatus = "closed"
)

type Dealer struct {
	ID        string
	Name      string
	Email     string
	Postcode  string
	Phone     string
	Website   string
	Status    DealerStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (d *Dealer) TransitionTo(status DealerStatus, now time.Time) error {
	if d == nil {
		return nil
	}
	if d.Status == status {
		d.UpdatedAt = now
		return nil
	}
	if !dealerTransitionAllowed(d.Status, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidDealerStatusTransition, d.Status, status)
	}
	d.Status = status
	d.UpdatedAt = now
	return nil
}

func dealerTransitionAllowed(current, next DealerStatus) bool {
	allowed := map[DealerStatus]map[DealerStatus]struct{}{
		DealerStatusActive: {
			DealerStatusSuspended: {},
			DealerStatusClosed:    {},
		},
		DealerStatusSuspended: {
			DealerStatusActive: {},
			DealerStatusClosed: {},
		},
		DealerStatusClosed: {},
	}
	_, ok := allowed[current][next]
	return ok
}

type InvitationStatus string

const (
	InvitationStatusNone       InvitationStatus = "none"
	InvitationStatusPending    InvitationStatus = "pending"
	InvitationStatusInvited    InvitationStatus = "invited"
	InvitationStatusAccepted   InvitationStatus = "accepted"
	InvitationStatusFailed     InvitationStatus = "failed"
	InvitationStatusUserExists InvitationStatus = "user_exists"
)

func invitationTransitionAllowed(current, next InvitationStatus) bool {
	allowed := map[InvitationStatus]map[InvitationStatus]struct{}{
		InvitationStatusNone: {
			InvitationStatusPending:    {},
			InvitationStatusInvited:    {},
			InvitationStatusFailed:     {},
			InvitationStatusUserExists: {},
		},
		InvitationStatusPending: {
			InvitationStatusInvited:    {},
			InvitationStatusFailed:     {},
			InvitationStatusUserExists: {},
		},
		InvitationStatusInvited: {
			InvitationStatusAccepted:   {},
			InvitationStatusFailed:     {},
			InvitationStatusUserExists: {},
		},
		InvitationStatusFailed: {
			InvitationStatusInvited:    {},
			InvitationStatusUserExists: {},
		},
		InvitationStatusUserExists: {
			InvitationStatusAccepted: {},
		},
		InvitationStatusAccepted: {},
	}
	_, ok := allowed[current][next]
	return ok
}

// DealerCredential is the persisted linkage between a dealer and the
// third-party advertising service. Both historical shapes live on the same
// record: the enhanced fields (AdvertisementID plus
// AdditionalAdvertisementIDs) and the legacy fields (PrimaryAdvertisementID
// plus AdvertisementIDsParsed). Readers of either shape must keep working,
// so commits always write both; Reconcile folds them into one view.
type DealerCredential struct {
	DealerID string

	AdvertisementID            string
	AdditionalAdvertisementIDs []string

	PrimaryAdvertisementID string
	AdvertisementIDsParsed []string

	IntegrationID    string
	CompanyName      string
	CompanyLogoURL   string
	InvitationStatus InvitationStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Cleared reports whether the record grants no API access: every
// advertisement id field of both shapes is empty after trimming.
func (c DealerCredential) Cleared() bool {
	if strings.TrimSpace(c.AdvertisementID) != "" {
		return false
	}
	if strings.TrimSpace(c.PrimaryAdvertisementID) != "" {
		return false
	}
	for _, id := range c.AdditionalAdvertisementIDs {
		if strings.TrimSpace(id) != "" {
			return false
		}
	}
	for _, id := range c.AdvertisementIDsParsed {
		if strings.TrimSpace(id) != "" {
			return false
		}
	}
	return true
}

func (c *DealerCredential) TransitionInvitation(status InvitationStatus, now time.Time) error {
	if c == nil {
		return nil
	}
	if c.InvitationStatus == status {
		c.UpdatedAt = now
		return nil
	}
	if !invitationTransitionAllowed(c.InvitationStatus, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidInvitationStatusTransition, c.InvitationStatus, status)
	}
	c.InvitationStatus = status
	c.UpdatedAt = now
	return nil
}

type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "pending"
	SubmissionStatusApproved SubmissionStatus = "approved"
	SubmissionStatusRejected SubmissionStatus = "rejected"
)

// JoinSubmission is a dealership's application to join the platform. A
// submission must be approved by an admin before it can carry credentials.
type JoinSubmission struct {
	ID           string
	DealerName   string
	Email        string
	Postcode     string
	Phone        string
	DealerID     string
	Status       SubmissionStatus
	VehicleCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (s *JoinSubmission) TransitionTo(status SubmissionStatus, now time.Time) error {
	if s == nil {
		return nil
	}
	if s.Status == status {
		s.UpdatedAt = now
		return nil
	}
	if !submissionTransitionAllowed(s.Status, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidSubmissionStatusTransition, s.Status, status)
	}
	s.Status = status
	s.UpdatedAt = now
	return nil
}

func submissionTransitionAllowed(current, next SubmissionStatus) bool {
	allowed := map[SubmissionStatus]map[SubmissionStatus]struct{}{
		SubmissionStatusPending: {
			SubmissionStatusApproved: {},
			SubmissionStatusRejected: {},
		},
		SubmissionStatusRejected: {
			SubmissionStatusApproved: {},
		},
		SubmissionStatusApproved: {},
	}
	_, ok := allowed[current][next]
	return ok
}

type VehicleStatus string

const (
	VehicleStatusInStock   VehicleStatus = "in_stock"
	VehicleStatusForecourt VehicleStatus = "forecourt"
	VehicleStatusSold      VehicleStatus = "sold"
	VehicleStatusArchived  VehicleStatus = "archived"
)

type Vehicle struct {
	ID           string
	DealerID     string
	Registration string
	Make         string
	Model        string
	Derivative   string
	Year         int
	Mileage      int
	// Monetary fields are pence to avoid float drift in feed output.
	PricePence int64
	CostPence  int64
	SoldPence  int64
	Status     VehicleStatus
	Checklist  map[string]bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (v *Vehicle) TransitionTo(status VehicleStatus, now time.Time) error {
	if v == nil {
		return nil
	}
	if v.Status == status {
		v.UpdatedAt = now
		return nil
	}
	if !vehicleTransitionAllowed(v.Status, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidVehicleStatusTransition, v.Status, status)
	}
	v.Status = status
	v.UpdatedAt = now
	return nil
}

func vehicleTransitionAllowed(current, next VehicleStatus) bool {
	allowed := map[VehicleStatus]map[VehicleStatus]struct{}{
		VehicleStatusInStock: {
			VehicleStatusForecourt: {},
			VehicleStatusSold:      {},
			VehicleStatusArchived:  {},
		},
		VehicleStatusForecourt: {
			VehicleStatusInStock:  {},
			VehicleStatusSold:     {},
			VehicleStatusArchived: {},
		},
		VehicleStatusSold: {
			VehicleStatusArchived: {},
		},
		VehicleStatusArchived: {},
	}
	_, ok := allowed[current][next]
	return ok
}

// ChecklistCompletion returns the percentage of completed checklist items,
// rounded down. An empty checklist counts as zero percent.
func (v Vehicle) ChecklistCompletion() int {
	if len(v.Checklist) == 0 {
		return 0
	}
	done := 0
	for _, checked := range v.Checklist {
		if checked {
			done++
		}
	}
	return done * 100 / len(v.Checklist)
}

type AdvertisementIDSource string

const (
	AdvertisementIDSourceEnhancedPrimary    AdvertisementIDSource = "enhanced-primary"
	AdvertisementIDSourceEnhancedAdditional AdvertisementIDSource = "enhanced-additional"
	AdvertisementIDSourceLegacyPrimary      AdvertisementIDSource = "legacy-primary"
	AdvertisementIDSourceLegacyAdditional   AdvertisementIDSource = "legacy-additional"
)

type ReconciledAdvertisementID struct {
	ID        string
	Source    AdvertisementIDSource
	IsPrimary bool
}

// ReconciledCredential is the single de-duplicated view of a dealer's
// advertisement ids across both stored shapes.
type ReconciledCredential struct {
	DealerID         string
	Entries          []ReconciledAdvertisementID
	PrimaryID        string
	IntegrationID    string
	CompanyName      string
	CompanyLogoURL   string
	InvitationStatus InvitationStatus
}

// EditableCredentialState is the flat, source-agnostic list the edit form
// works on. IDs always has at least one slot, possibly empty.
type EditableCredentialState struct {
	IDs       []string
	PrimaryID string
}

func (s EditableCredentialState) clone() EditableCredentialState {
	return EditableCredentialState{
		IDs:       append([]string(nil), s.IDs...),
		PrimaryID: s.PrimaryID,
	}
}
