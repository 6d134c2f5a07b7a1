package dealers

import (
	"fmt"

	dealercommand "github.com/forecourt/go-dealers/command"
	"github.com/forecourt/go-dealers/core"
	"github.com/forecourt/go-dealers/export"
	dealerquery "github.com/forecourt/go-dealers/query"
)

// CommandQueryService is the engine surface the facade wires handlers
// around. *core.Engine satisfies it.
type CommandQueryService interface {
	core.AssignmentService
	core.CredentialReader
}

type Commands struct {
	AssignCredential  *dealercommand.AssignCredentialCommand
	RevokeCredential  *dealercommand.RevokeCredentialCommand
	ApproveSubmission *dealercommand.ApproveSubmissionCommand
	ResendInvitation  *dealercommand.ResendInvitationCommand
	ExportFeed        *dealercommand.ExportFeedCommand
}

type Queries struct {
	GetDealerCredential   *dealerquery.GetDealerCredentialQuery
	LoadDealerCredentials *dealerquery.LoadDealerCredentialsQuery
	LoadDealers           *dealerquery.LoadDealersQuery
	GetSubmission         *dealerquery.GetSubmissionQuery
	ListSubmissions       *dealerquery.ListSubmissionsQuery
	GetVehicle            *dealerquery.GetVehicleQuery
}

type Facade struct {
	service  CommandQueryService
	commands Commands
	queries  Queries
}

type FacadeOption func(*facadeOptions)

type facadeOptions struct {
	exporter     core.FeedExporter
	lister       dealerquery.SubmissionLister
	exportConfig *core.ExportConfig
}

func WithFeedExporter(exporter core.FeedExporter) FacadeOption {
	return func(options *facadeOptions) {
		options.exporter = exporter
	}
}

func WithSubmissionLister(lister dealerquery.SubmissionLister) FacadeOption {
	return func(options *facadeOptions) {
		options.lister = lister
	}
}

func WithExportConfig(cfg core.ExportConfig) FacadeOption {
	return func(options *facadeOptions) {
		options.exportConfig = &cfg
	}
}

func NewFacade(service CommandQueryService, opts ...FacadeOption) (*Facade, error) {
	if service == nil {
		return nil, fmt.Errorf("dealers: command/query service is required")
	}
	cfg := facadeOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	exporter := cfg.exporter
	if exporter == nil {
		exporter = resolveFeedExporter(service, cfg.exportConfig)
	}
	lister := cfg.lister
	if lister == nil {
		lister = resolveSubmissionLister(service)
	}

	facade := &Facade{service: service}
	facade.commands = Commands{
		AssignCredential:  dealercommand.NewAssignCredentialCommand(service),
		RevokeCredential:  dealercommand.NewRevokeCredentialCommand(service),
		ApproveSubmission: dealercommand.NewApproveSubmissionCommand(service),
		ResendInvitation:  dealercommand.NewResendInvitationCommand(service),
	}
	if exporter != nil {
		facade.commands.ExportFeed = dealercommand.NewExportFeedCommand(exporter)
	}
	facade.queries = Queries{
		GetDealerCredential:   dealerquery.NewGetDealerCredentialQuery(service),
		LoadDealerCredentials: dealerquery.NewLoadDealerCredentialsQuery(service),
		LoadDealers:           dealerquery.NewLoadDealersQuery(service),
		GetSubmission:         dealerquery.NewGetSubmissionQuery(service),
	}
	if lister != nil {
		facade.queries.ListSubmissions = dealerquery.NewListSubmissionsQuery(lister)
	}
	if vehicles := resolveVehicleReader(service); vehicles != nil {
		facade.queries.GetVehicle = dealerquery.NewGetVehicleQuery(vehicles)
	}

	return facade, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Service() CommandQueryService {
	if f == nil {
		return nil
	}
	return f.service
}

// resolveFeedExporter prefers a service that already exports feeds, then
// falls back to building an exporter over the service's read surface.
func resolveFeedExporter(service CommandQueryService, exportConfig *core.ExportConfig) core.FeedExporter {
	if service == nil {
		return nil
	}
	if exporter, ok := service.(core.FeedExporter); ok {
		return exporter
	}
	source, ok := service.(core.FeedSource)
	if !ok {
		return nil
	}
	cfg := DefaultConfig().Export
	if exportConfig != nil {
		cfg = *exportConfig
	}
	exporter, err := export.NewExporter(cfg, source)
	if err != nil {
		return nil
	}
	return exporter
}

func resolveSubmissionLister(service CommandQueryService) dealerquery.SubmissionLister {
	if lister, ok := service.(dealerquery.SubmissionLister); ok {
		return lister
	}
	return nil
}

func resolveVehicleReader(service CommandQueryService) dealerquery.VehicleReader {
	if reader, ok := service.(dealerquery.VehicleReader); ok {
		return reader
	}
	return nil
}
