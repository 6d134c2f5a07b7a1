package query

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/forecourt/go-dealers/core"
	goerrors "github.com/goliatone/go-errors"
)

type stubCredentialReader struct {
	getCredentialFn   func(ctx context.Context, dealerID string) (core.ReconciledCredential, bool, error)
	loadCredentialsFn func(ctx context.Context, dealerIDs []string) (map[string]core.ReconciledCredential, error)
	loadDealersFn     func(ctx context.Context, dealerIDs []string) (map[string]core.Dealer, error)
	loadSubmissionsFn func(ctx context.Context, submissionIDs []string) (map[string]core.SubmissionWithCounts, error)
}

func (s stubCredentialReader) GetCredential(ctx context.Context, dealerID string) (core.ReconciledCredential, bool, error) {
	if s.getCredentialFn == nil {
		return core.ReconciledCredential{}, false, fmt.Errorf("unexpected GetCredential call")
	}
	return s.getCredentialFn(ctx, dealerID)
}

func (s stubCredentialReader) LoadCredentials(ctx context.Context, dealerIDs []string) (map[string]core.ReconciledCredential, error) {
	if s.loadCredentialsFn == nil {
		return nil, fmt.Errorf("unexpected LoadCredentials call")
	}
	return s.loadCredentialsFn(ctx, dealerIDs)
}

func (s stubCredentialReader) LoadDealers(ctx context.Context, dealerIDs []string) (map[string]core.Dealer, error) {
	if s.loadDealersFn == nil {
		return nil, fmt.Errorf("unexpected LoadDealers call")
	}
	return s.loadDealersFn(ctx, dealerIDs)
}

func (s stubCredentialReader) LoadSubmissions(ctx context.Context, submissionIDs []string) (map[string]core.SubmissionWithCounts, error) {
	if s.loadSubmissionsFn == nil {
		return nil, fmt.Errorf("unexpected LoadSubmissions call")
	}
	return s.loadSubmissionsFn(ctx, submissionIDs)
}

type stubVehicleReader struct {
	getVehicleFn func(ctx context.Context, vehicleID string) (core.VehicleDetail, bool, error)
}

func (s stubVehicleReader) GetVehicle(ctx context.Context, vehicleID string) (core.VehicleDetail, bool, error) {
	if s.getVehicleFn == nil {
		return core.VehicleDetail{}, false, fmt.Errorf("unexpected GetVehicle call")
	}
	return s.getVehicleFn(ctx, vehicleID)
}

type stubSubmissionLister struct {
	listFn func(ctx context.Context, status core.SubmissionStatus) ([]core.JoinSubmission, error)
}

func (s stubSubmissionLister) ListSubmissionsByStatus(ctx context.Context, status core.SubmissionStatus) ([]core.JoinSubmission, error) {
	if s.listFn == nil {
		return nil, fmt.Errorf("unexpected ListSubmissionsByStatus call")
	}
	return s.listFn(ctx, status)
}

func TestGetDealerCredentialQuery_ReturnsReconciledView(t *testing.T) {
	reader := stubCredentialReader{
		getCredentialFn: func(_ context.Context, dealerID string) (core.ReconciledCredential, bool, error) {
			if dealerID != "dlr_1" {
				t.Fatalf("unexpected dealer id %q", dealerID)
			}
			return core.ReconciledCredential{DealerID: "dlr_1", PrimaryID: "A"}, true, nil
		},
	}
	q := NewGetDealerCredentialQuery(reader)

	credential, err := q.Query(context.Background(), GetDealerCredentialMessage{DealerID: "dlr_1"})
	if err != nil {
		t.Fatalf("query credential: %v", err)
	}
	if credential.PrimaryID != "A" {
		t.Fatalf("unexpected credential: %#v", credential)
	}
}

func TestGetDealerCredentialQuery_NotFound(t *testing.T) {
	reader := stubCredentialReader{
		getCredentialFn: func(_ context.Context, _ string) (core.ReconciledCredential, bool, error) {
			return core.ReconciledCredential{}, false, nil
		},
	}
	q := NewGetDealerCredentialQuery(reader)

	_, err := q.Query(context.Background(), GetDealerCredentialMessage{DealerID: "missing"})
	if err == nil {
		t.Fatalf("expected not found error")
	}
	var mapped *goerrors.Error
	if !errors.As(err, &mapped) {
		t.Fatalf("expected mapped error, got %T", err)
	}
	if mapped.TextCode != core.DealerErrorNotFound {
		t.Fatalf("expected %s, got %s", core.DealerErrorNotFound, mapped.TextCode)
	}
}

func TestLoadDealerCredentialsQuery_Delegates(t *testing.T) {
	reader := stubCredentialReader{
		loadCredentialsFn: func(_ context.Context, dealerIDs []string) (map[string]core.ReconciledCredential, error) {
			if len(dealerIDs) != 2 {
				t.Fatalf("unexpected ids: %#v", dealerIDs)
			}
			return map[string]core.ReconciledCredential{
				"dlr_1": {DealerID: "dlr_1"},
			}, nil
		},
	}
	q := NewLoadDealerCredentialsQuery(reader)

	out, err := q.Query(context.Background(), LoadDealerCredentialsMessage{DealerIDs: []string{"dlr_1", "dlr_2"}})
	if err != nil {
		t.Fatalf("query credentials: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("unexpected result: %#v", out)
	}
}

func TestGetSubmissionQuery_NotFound(t *testing.T) {
	reader := stubCredentialReader{
		loadSubmissionsFn: func(_ context.Context, _ []string) (map[string]core.SubmissionWithCounts, error) {
			return map[string]core.SubmissionWithCounts{}, nil
		},
	}
	q := NewGetSubmissionQuery(reader)

	_, err := q.Query(context.Background(), GetSubmissionMessage{SubmissionID: "missing"})
	if err == nil {
		t.Fatalf("expected not found error")
	}
}

func TestGetSubmissionQuery_TrimsSubmissionID(t *testing.T) {
	reader := stubCredentialReader{
		loadSubmissionsFn: func(_ context.Context, submissionIDs []string) (map[string]core.SubmissionWithCounts, error) {
			if len(submissionIDs) != 1 || submissionIDs[0] != "sub_1" {
				t.Fatalf("unexpected ids: %#v", submissionIDs)
			}
			return map[string]core.SubmissionWithCounts{
				"sub_1": {Submission: core.JoinSubmission{ID: "sub_1"}, VehicleCount: 3},
			}, nil
		},
	}
	q := NewGetSubmissionQuery(reader)

	out, err := q.Query(context.Background(), GetSubmissionMessage{SubmissionID: "  sub_1  "})
	if err != nil {
		t.Fatalf("query submission: %v", err)
	}
	if out.Submission.ID != "sub_1" || out.VehicleCount != 3 {
		t.Fatalf("unexpected result: %#v", out)
	}
}

func TestListSubmissionsQuery_Delegates(t *testing.T) {
	lister := stubSubmissionLister{
		listFn: func(_ context.Context, status core.SubmissionStatus) ([]core.JoinSubmission, error) {
			if status != core.SubmissionStatusPending {
				t.Fatalf("unexpected status %q", status)
			}
			return []core.JoinSubmission{{ID: "sub_1", Status: core.SubmissionStatusPending}}, nil
		},
	}
	q := NewListSubmissionsQuery(lister)

	out, err := q.Query(context.Background(), ListSubmissionsMessage{Status: core.SubmissionStatusPending})
	if err != nil {
		t.Fatalf("query submissions: %v", err)
	}
	if len(out) != 1 || out[0].ID != "sub_1" {
		t.Fatalf("unexpected result: %#v", out)
	}
}

func TestGetVehicleQuery_ReturnsDetail(t *testing.T) {
	reader := stubVehicleReader{
		getVehicleFn: func(_ context.Context, vehicleID string) (core.VehicleDetail, bool, error) {
			if vehicleID != "veh_1" {
				t.Fatalf("unexpected vehicle id %q", vehicleID)
			}
			return core.VehicleDetail{
				Vehicle:             core.Vehicle{ID: "veh_1"},
				ChecklistCompletion: 75,
			}, true, nil
		},
	}
	q := NewGetVehicleQuery(reader)

	detail, err := q.Query(context.Background(), GetVehicleMessage{VehicleID: " veh_1 "})
	if err != nil {
		t.Fatalf("query vehicle: %v", err)
	}
	if detail.Vehicle.ID != "veh_1" || detail.ChecklistCompletion != 75 {
		t.Fatalf("unexpected detail: %#v", detail)
	}
}

func TestGetVehicleQuery_NotFound(t *testing.T) {
	reader := stubVehicleReader{
		getVehicleFn: func(_ context.Context, _ string) (core.VehicleDetail, bool, error) {
			return core.VehicleDetail{}, false, nil
		},
	}
	q := NewGetVehicleQuery(reader)

	_, err := q.Query(context.Background(), GetVehicleMessage{VehicleID: "missing"})
	if err == nil {
		t.Fatalf("expected not found error")
	}
}

func TestQueryMessages_Validate(t *testing.T) {
	if err := (GetDealerCredentialMessage{}).Validate(); err == nil {
		t.Fatalf("expected dealer id validation error")
	}
	if err := (LoadDealerCredentialsMessage{DealerIDs: []string{"", " "}}).Validate(); err == nil {
		t.Fatalf("expected dealer ids validation error")
	}
	if err := (GetSubmissionMessage{}).Validate(); err == nil {
		t.Fatalf("expected submission id validation error")
	}
	if err := (GetVehicleMessage{}).Validate(); err == nil {
		t.Fatalf("expected vehicle id validation error")
	}
	if err := (ListSubmissionsMessage{Status: "bogus"}).Validate(); err == nil {
		t.Fatalf("expected status validation error")
	}
	if err := (ListSubmissionsMessage{Status: core.SubmissionStatusApproved}).Validate(); err != nil {
		t.Fatalf("expected valid status, got %v", err)
	}
}
