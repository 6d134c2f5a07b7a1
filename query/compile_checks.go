package query

import (
	"github.com/forecourt/go-dealers/core"
	gocmd "github.com/goliatone/go-command"
)

var (
	_ gocmd.Querier[GetDealerCredentialMessage, core.ReconciledCredential]              = (*GetDealerCredentialQuery)(nil)
	_ gocmd.Querier[LoadDealerCredentialsMessage, map[string]core.ReconciledCredential] = (*LoadDealerCredentialsQuery)(nil)
	_ gocmd.Querier[LoadDealersMessage, map[string]core.Dealer]                         = (*LoadDealersQuery)(nil)
	_ gocmd.Querier[GetSubmissionMessage, core.SubmissionWithCounts]                    = (*GetSubmissionQuery)(nil)
	_ gocmd.Querier[ListSubmissionsMessage, []core.JoinSubmission]                      = (*ListSubmissionsQuery)(nil)
	_ gocmd.Querier[GetVehicleMessage, core.VehicleDetail]                              = (*GetVehicleQuery)(nil)
)
