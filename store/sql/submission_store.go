package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/forecourt/go-dealers/core"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

type SubmissionStore struct {
	db   *bun.DB
	repo repository.Repository[*joinSubmissionRecord]
}

func NewSubmissionStore(db *bun.DB) (*SubmissionStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*joinSubmissionRecord](db, joinSubmissionHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid join submission repository wiring: %w", err)
		}
	}
	return &SubmissionStore{db: db, repo: repo}, nil
}

func (s *SubmissionStore) Get(ctx context.Context, submissionID string) (core.JoinSubmission, bool, error) {
	if s == nil || s.repo == nil {
		return core.JoinSubmission{}, false, fmt.Errorf("sqlstore: submission store is not configured")
	}
	submissionID = strings.TrimSpace(submissionID)
	if submissionID == "" {
		return core.JoinSubmission{}, false, fmt.Errorf("sqlstore: submission id is required")
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("id", "=", submissionID),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return core.JoinSubmission{}, false, err
	}
	if len(records) == 0 {
		return core.JoinSubmission{}, false, nil
	}
	return records[0].toDomain(), true, nil
}

func (s *SubmissionStore) GetBulk(ctx context.Context, submissionIDs []string) (map[string]core.JoinSubmission, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlstore: submission store is not configured")
	}
	cleaned := cleanIDs(submissionIDs)
	if len(cleaned) == 0 {
		return map[string]core.JoinSubmission{}, nil
	}

	var records []*joinSubmissionRecord
	err := s.db.NewSelect().
		Model(&records).
		Where("?TableAlias.id IN (?)", bun.In(cleaned)).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]core.JoinSubmission, len(records))
	for _, record := range records {
		out[record.ID] = record.toDomain()
	}
	return out, nil
}

func (s *SubmissionStore) ListByStatus(ctx context.Context, status core.SubmissionStatus) ([]core.JoinSubmission, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("sqlstore: submission store is not configured")
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("status", "=", string(status)),
		repository.OrderBy("created_at DESC"),
	)
	if err != nil {
		return nil, err
	}
	out := make([]core.JoinSubmission, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDomain())
	}
	return out, nil
}

func (s *SubmissionStore) UpdateStatus(ctx context.Context, submissionID string, status core.SubmissionStatus, dealerID string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: submission store is not configured")
	}
	submissionID = strings.TrimSpace(submissionID)
	if submissionID == "" {
		return fmt.Errorf("sqlstore: submission id is required")
	}
	if strings.TrimSpace(string(status)) == "" {
		return fmt.Errorf("sqlstore: submission status is required")
	}

	query := s.db.NewUpdate().
		Model((*joinSubmissionRecord)(nil)).
		Set("status = ?", string(status)).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", submissionID)
	if dealerID = strings.TrimSpace(dealerID); dealerID != "" {
		query = query.Set("dealer_id = ?", dealerID)
	}
	_, err := query.Exec(ctx)
	return err
}
