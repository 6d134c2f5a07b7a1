package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/forecourt/go-dealers/core"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

type VehicleStore struct {
	db   *bun.DB
	repo repository.Repository[*vehicleRecord]
}

func NewVehicleStore(db *bun.DB) (*VehicleStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*vehicleRecord](db, vehicleHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid vehicle repository wiring: %w", err)
		}
	}
	return &VehicleStore{db: db, repo: repo}, nil
}

func (s *VehicleStore) Get(ctx context.Context, vehicleID string) (core.Vehicle, bool, error) {
	if s == nil || s.repo == nil {
		return core.Vehicle{}, false, fmt.Errorf("sqlstore: vehicle store is not configured")
	}
	vehicleID = strings.TrimSpace(vehicleID)
	if vehicleID == "" {
		return core.Vehicle{}, false, fmt.Errorf("sqlstore: vehicle id is required")
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("id", "=", vehicleID),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return core.Vehicle{}, false, err
	}
	if len(records) == 0 {
		return core.Vehicle{}, false, nil
	}
	return records[0].toDomain(), true, nil
}

func (s *VehicleStore) ListByDealer(ctx context.Context, dealerID string) ([]core.Vehicle, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("sqlstore: vehicle store is not configured")
	}
	dealerID = strings.TrimSpace(dealerID)
	if dealerID == "" {
		return nil, fmt.Errorf("sqlstore: dealer id is required")
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("dealer_id", "=", dealerID),
		repository.OrderBy("created_at DESC"),
	)
	if err != nil {
		return nil, err
	}
	return vehicleRecordsToDomain(records), nil
}

func (s *VehicleStore) ListByDealerAndStatus(ctx context.Context, dealerID string, status core.VehicleStatus) ([]core.Vehicle, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("sqlstore: vehicle store is not configured")
	}
	dealerID = strings.TrimSpace(dealerID)
	if dealerID == "" {
		return nil, fmt.Errorf("sqlstore: dealer id is required")
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("dealer_id", "=", dealerID),
		repository.SelectBy("status", "=", string(status)),
		repository.OrderBy("created_at DESC"),
	)
	if err != nil {
		return nil, err
	}
	return vehicleRecordsToDomain(records), nil
}

func vehicleRecordsToDomain(records []*vehicleRecord) []core.Vehicle {
	out := make([]core.Vehicle, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDomain())
	}
	return out
}
