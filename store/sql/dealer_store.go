package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/forecourt/go-dealers/core"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

type DealerStore struct {
	db   *bun.DB
	repo repository.Repository[*dealerRecord]
}

func NewDealerStore(db *bun.DB) (*DealerStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*dealerRecord](db, dealerHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid dealer repository wiring: %w", err)
		}
	}
	return &DealerStore{db: db, repo: repo}, nil
}

func (s *DealerStore) Get(ctx context.Context, dealerID string) (core.Dealer, bool, error) {
	if s == nil || s.repo == nil {
		return core.Dealer{}, false, fmt.Errorf("sqlstore: dealer store is not configured")
	}
	dealerID = strings.TrimSpace(dealerID)
	if dealerID == "" {
		return core.Dealer{}, false, fmt.Errorf("sqlstore: dealer id is required")
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("id", "=", dealerID),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return core.Dealer{}, false, err
	}
	if len(records) == 0 {
		return core.Dealer{}, false, nil
	}
	return records[0].toDomain(), true, nil
}

func (s *DealerStore) GetBulk(ctx context.Context, dealerIDs []string) (map[string]core.Dealer, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlstore: dealer store is not configured")
	}
	cleaned := cleanIDs(dealerIDs)
	if len(cleaned) == 0 {
		return map[string]core.Dealer{}, nil
	}

	var records []*dealerRecord
	err := s.db.NewSelect().
		Model(&records).
		Where("?TableAlias.id IN (?)", bun.In(cleaned)).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]core.Dealer, len(records))
	for _, record := range records {
		out[record.ID] = record.toDomain()
	}
	return out, nil
}

func (s *DealerStore) List(ctx context.Context) ([]core.Dealer, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("sqlstore: dealer store is not configured")
	}
	records, _, err := s.repo.List(ctx,
		repository.OrderBy("name ASC"),
	)
	if err != nil {
		return nil, err
	}
	out := make([]core.Dealer, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDomain())
	}
	return out, nil
}
