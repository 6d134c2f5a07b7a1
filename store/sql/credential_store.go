package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/forecourt/go-dealers/core"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type CredentialStore struct {
	db   *bun.DB
	repo repository.Repository[*dealerCredentialRecord]
}

func NewCredentialStore(db *bun.DB) (*CredentialStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*dealerCredentialRecord](db, dealerCredentialHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid dealer credential repository wiring: %w", err)
		}
	}
	return &CredentialStore{db: db, repo: repo}, nil
}

func (s *CredentialStore) Get(ctx context.Context, dealerID string) (core.DealerCredential, bool, error) {
	if s == nil || s.repo == nil {
		return core.DealerCredential{}, false, fmt.Errorf("sqlstore: credential store is not configured")
	}
	dealerID = strings.TrimSpace(dealerID)
	if dealerID == "" {
		return core.DealerCredential{}, false, fmt.Errorf("sqlstore: dealer id is required")
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("dealer_id", "=", dealerID),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return core.DealerCredential{}, false, err
	}
	if len(records) == 0 {
		return core.DealerCredential{}, false, nil
	}
	return records[0].toDomain(), true, nil
}

func (s *CredentialStore) GetBulk(ctx context.Context, dealerIDs []string) (map[string]core.DealerCredential, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlstore: credential store is not configured")
	}
	cleaned := cleanIDs(dealerIDs)
	if len(cleaned) == 0 {
		return map[string]core.DealerCredential{}, nil
	}

	var records []*dealerCredentialRecord
	err := s.db.NewSelect().
		Model(&records).
		Where("?TableAlias.dealer_id IN (?)", bun.In(cleaned)).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]core.DealerCredential, len(records))
	for _, record := range records {
		out[record.DealerID] = record.toDomain()
	}
	return out, nil
}

func (s *CredentialStore) GetBySubmission(ctx context.Context, submissionID string) (core.DealerCredential, bool, error) {
	if s == nil || s.repo == nil {
		return core.DealerCredential{}, false, fmt.Errorf("sqlstore: credential store is not configured")
	}
	submissionID = strings.TrimSpace(submissionID)
	if submissionID == "" {
		return core.DealerCredential{}, false, fmt.Errorf("sqlstore: submission id is required")
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("submission_id", "=", submissionID),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return core.DealerCredential{}, false, err
	}
	if len(records) == 0 {
		return core.DealerCredential{}, false, nil
	}
	return records[0].toDomain(), true, nil
}

// Write upserts the credential row for a dealer, replacing every column of
// both shapes in one transaction. Returns created=true when no row existed.
func (s *CredentialStore) Write(ctx context.Context, in core.WriteCredentialInput) (bool, error) {
	if s == nil || s.db == nil {
		return false, fmt.Errorf("sqlstore: credential store is not configured")
	}
	in.DealerID = strings.TrimSpace(in.DealerID)
	if in.DealerID == "" {
		return false, fmt.Errorf("sqlstore: dealer id is required")
	}
	now := time.Now().UTC()

	created := false
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		record, findErr := findCredentialByDealerTx(ctx, tx, in.DealerID)
		if findErr != nil {
			return findErr
		}
		if record == nil {
			record = newDealerCredentialRecord(in, now)
			record.ID = uuid.NewString()
			if _, insertErr := tx.NewInsert().Model(record).Exec(ctx); insertErr != nil {
				if !isUniqueViolation(insertErr) {
					return insertErr
				}
				// Lost the insert race; fall through to the update path.
				record, findErr = findCredentialByDealerTx(ctx, tx, in.DealerID)
				if findErr != nil {
					return findErr
				}
				if record == nil {
					return insertErr
				}
			} else {
				created = true
				return nil
			}
		}

		record.applyWrite(in, now)
		if _, updateErr := tx.NewUpdate().Model(record).Where("id = ?", record.ID).Exec(ctx); updateErr != nil {
			return updateErr
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

// Clear empties every credential column, ad-id shapes and extras alike,
// while keeping the row for audit.
func (s *CredentialStore) Clear(ctx context.Context, dealerID string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: credential store is not configured")
	}
	dealerID = strings.TrimSpace(dealerID)
	if dealerID == "" {
		return fmt.Errorf("sqlstore: dealer id is required")
	}

	_, err := s.db.NewUpdate().
		Model((*dealerCredentialRecord)(nil)).
		Set("advertisement_id = ?", "").
		Set("additional_advertisement_ids = ?", "[]").
		Set("primary_advertisement_id = ?", "").
		Set("advertisement_ids_parsed = ?", "[]").
		Set("integration_id = ?", "").
		Set("company_name = ?", "").
		Set("company_logo_url = ?", "").
		Set("updated_at = ?", time.Now().UTC()).
		Where("dealer_id = ?", dealerID).
		Exec(ctx)
	return err
}

func (s *CredentialStore) UpdateInvitationStatus(ctx context.Context, dealerID string, status core.InvitationStatus) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: credential store is not configured")
	}
	dealerID = strings.TrimSpace(dealerID)
	if dealerID == "" {
		return fmt.Errorf("sqlstore: dealer id is required")
	}
	if strings.TrimSpace(string(status)) == "" {
		return fmt.Errorf("sqlstore: invitation status is required")
	}

	_, err := s.db.NewUpdate().
		Model((*dealerCredentialRecord)(nil)).
		Set("invitation_status = ?", string(status)).
		Set("updated_at = ?", time.Now().UTC()).
		Where("dealer_id = ?", dealerID).
		Exec(ctx)
	return err
}

func findCredentialByDealerTx(ctx context.Context, tx bun.Tx, dealerID string) (*dealerCredentialRecord, error) {
	records := []*dealerCredentialRecord{}
	err := tx.NewSelect().
		Model(&records).
		Where("?TableAlias.dealer_id = ?", dealerID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

func cleanIDs(ids []string) []string {
	cleaned := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		cleaned = append(cleaned, id)
	}
	return cleaned
}

func isUniqueViolation(err error) bool {
	message := strings.ToLower(strings.TrimSpace(err.Error()))
	return strings.Contains(message, "unique constraint failed") ||
		strings.Contains(message, "duplicate key value violates unique constraint")
}
