package query

import (
	"fmt"
	"strings"

	"github.com/forecourt/go-dealers/core"
)

const (
	TypeGetDealerCredential   = "dealers.query.credential.get"
	TypeLoadDealerCredentials = "dealers.query.credential.load"
	TypeLoadDealers           = "dealers.query.dealer.load"
	TypeGetSubmission         = "dealers.query.submission.get"
	TypeListSubmissions       = "dealers.query.submission.list"
	TypeGetVehicle            = "dealers.query.vehicle.get"
)

type GetDealerCredentialMessage struct {
	DealerID string
}

func (GetDealerCredentialMessage) Type() string { return TypeGetDealerCredential }

func (m GetDealerCredentialMessage) Validate() error {
	if strings.TrimSpace(m.DealerID) == "" {
		return fmt.Errorf("query: dealer id is required")
	}
	return nil
}

type LoadDealerCredentialsMessage struct {
	DealerIDs []string
}

func (LoadDealerCredentialsMessage) Type() string { return TypeLoadDealerCredentials }

func (m LoadDealerCredentialsMessage) Validate() error {
	for _, id := range m.DealerIDs {
		if strings.TrimSpace(id) != "" {
			return nil
		}
	}
	return fmt.Errorf("query: at least one dealer id is required")
}

type LoadDealersMessage struct {
	DealerIDs []string
}

func (LoadDealersMessage) Type() string { return TypeLoadDealers }

func (m LoadDealersMessage) Validate() error {
	for _, id := range m.DealerIDs {
		if strings.TrimSpace(id) != "" {
			return nil
		}
	}
	return fmt.Errorf("query: at least one dealer id is required")
}

type GetSubmissionMessage struct {
	SubmissionID string
}

func (GetSubmissionMessage) Type() string { return TypeGetSubmission }

func (m GetSubmissionMessage) Validate() error {
	if strings.TrimSpace(m.SubmissionID) == "" {
		return fmt.Errorf("query: submission id is required")
	}
	return nil
}

type GetVehicleMessage struct {
	VehicleID string
}

func (GetVehicleMessage) Type() string { return TypeGetVehicle }

func (m GetVehicleMessage) Validate() error {
	if strings.TrimSpace(m.VehicleID) == "" {
		return fmt.Errorf("query: vehicle id is required")
	}
	return nil
}

type ListSubmissionsMessage struct {
	Status core.SubmissionStatus
}

func (ListSubmissionsMessage) Type() string { return TypeListSubmissions }

func (m ListSubmissionsMessage) Validate() error {
	switch m.Status {
	case core.SubmissionStatusPending, core.SubmissionStatusApproved, core.SubmissionStatusRejected:
		return nil
	}
	return fmt.Errorf("query: unknown submission status %q", m.Status)
}
