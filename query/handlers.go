package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/forecourt/go-dealers/core"
)

type SubmissionLister interface {
	ListSubmissionsByStatus(ctx context.Context, status core.SubmissionStatus) ([]core.JoinSubmission, error)
}

type VehicleReader interface {
	GetVehicle(ctx context.Context, vehicleID string) (core.VehicleDetail, bool, error)
}

type GetDealerCredentialQuery struct {
	reader core.CredentialReader
}

func NewGetDealerCredentialQuery(reader core.CredentialReader) *GetDealerCredentialQuery {
	return &GetDealerCredentialQuery{reader: reader}
}

func (q *GetDealerCredentialQuery) Query(ctx context.Context, msg GetDealerCredentialMessage) (core.ReconciledCredential, error) {
	if q == nil || q.reader == nil {
		return core.ReconciledCredential{}, queryDependencyError("query: credential reader is required")
	}
	credential, found, err := q.reader.GetCredential(ctx, msg.DealerID)
	if err != nil {
		return core.ReconciledCredential{}, err
	}
	if !found {
		return core.ReconciledCredential{}, queryNotFoundError(
			fmt.Sprintf("query: no credential record for dealer %q", msg.DealerID),
		)
	}
	return credential, nil
}

type LoadDealerCredentialsQuery struct {
	reader core.CredentialReader
}

func NewLoadDealerCredentialsQuery(reader core.CredentialReader) *LoadDealerCredentialsQuery {
	return &LoadDealerCredentialsQuery{reader: reader}
}

func (q *LoadDealerCredentialsQuery) Query(ctx context.Context, msg LoadDealerCredentialsMessage) (map[string]core.ReconciledCredential, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: credential reader is required")
	}
	return q.reader.LoadCredentials(ctx, msg.DealerIDs)
}

type LoadDealersQuery struct {
	reader core.CredentialReader
}

func NewLoadDealersQuery(reader core.CredentialReader) *LoadDealersQuery {
	return &LoadDealersQuery{reader: reader}
}

func (q *LoadDealersQuery) Query(ctx context.Context, msg LoadDealersMessage) (map[string]core.Dealer, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: dealer reader is required")
	}
	return q.reader.LoadDealers(ctx, msg.DealerIDs)
}

type GetSubmissionQuery struct {
	reader core.CredentialReader
}

func NewGetSubmissionQuery(reader core.CredentialReader) *GetSubmissionQuery {
	return &GetSubmissionQuery{reader: reader}
}

func (q *GetSubmissionQuery) Query(ctx context.Context, msg GetSubmissionMessage) (core.SubmissionWithCounts, error) {
	if q == nil || q.reader == nil {
		return core.SubmissionWithCounts{}, queryDependencyError("query: submission reader is required")
	}
	submissionID := strings.TrimSpace(msg.SubmissionID)
	submissions, err := q.reader.LoadSubmissions(ctx, []string{submissionID})
	if err != nil {
		return core.SubmissionWithCounts{}, err
	}
	submission, ok := submissions[submissionID]
	if !ok {
		return core.SubmissionWithCounts{}, queryNotFoundError(
			fmt.Sprintf("query: submission %q not found", submissionID),
		)
	}
	return submission, nil
}

type GetVehicleQuery struct {
	reader VehicleReader
}

func NewGetVehicleQuery(reader VehicleReader) *GetVehicleQuery {
	return &GetVehicleQuery{reader: reader}
}

func (q *GetVehicleQuery) Query(ctx context.Context, msg GetVehicleMessage) (core.VehicleDetail, error) {
	if q == nil || q.reader == nil {
		return core.VehicleDetail{}, queryDependencyError("query: vehicle reader is required")
	}
	vehicleID := strings.TrimSpace(msg.VehicleID)
	detail, found, err := q.reader.GetVehicle(ctx, vehicleID)
	if err != nil {
		return core.VehicleDetail{}, err
	}
	if !found {
		return core.VehicleDetail{}, queryNotFoundError(
			fmt.Sprintf("query: vehicle %q not found", vehicleID),
		)
	}
	return detail, nil
}

type ListSubmissionsQuery struct {
	lister SubmissionLister
}

func NewListSubmissionsQuery(lister SubmissionLister) *ListSubmissionsQuery {
	return &ListSubmissionsQuery{lister: lister}
}

func (q *ListSubmissionsQuery) Query(ctx context.Context, msg ListSubmissionsMessage) ([]core.JoinSubmission, error) {
	if q == nil || q.lister == nil {
		return nil, queryDependencyError("query: submission lister is required")
	}
	return q.lister.ListSubmissionsByStatus(ctx, msg.Status)
}
