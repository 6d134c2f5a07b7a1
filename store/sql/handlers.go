package sqlstore

import (
	"strings"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

func dealerHandlers() repository.ModelHandlers[*dealerRecord] {
	return repository.ModelHandlers[*dealerRecord]{
		NewRecord: func() *dealerRecord {
			return &dealerRecord{}
		},
		GetID: func(record *dealerRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.ID)
		},
		SetID: func(record *dealerRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.ID = id.String()
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *dealerRecord) string {
			if record == nil {
				return ""
			}
			return strings.TrimSpace(record.ID)
		},
	}
}

func dealerCredentialHandlers() repository.ModelHandlers[*dealerCredentialRecord] {
	return repository.ModelHandlers[*dealerCredentialRecord]{
		NewRecord: func() *dealerCredentialRecord {
			return &dealerCredentialRecord{}
		},
		GetID: func(record *dealerCredentialRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.ID)
		},
		SetID: func(record *dealerCredentialRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.ID = id.String()
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *dealerCredentialRecord) string {
			if record == nil {
				return ""
			}
			return strings.TrimSpace(record.ID)
		},
	}
}

func joinSubmissionHandlers() repository.ModelHandlers[*joinSubmissionRecord] {
	return repository.ModelHandlers[*joinSubmissionRecord]{
		NewRecord: func() *joinSubmissionRecord {
			return &joinSubmissionRecord{}
		},
		GetID: func(record *joinSubmissionRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.ID)
		},
		SetID: func(record *joinSubmissionRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.ID = id.String()
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *joinSubmissionRecord) string {
			if record == nil {
				return ""
			}
			return strings.TrimSpace(record.ID)
		},
	}
}

func vehicleHandlers() repository.ModelHandlers[*vehicleRecord] {
	return repository.ModelHandlers[*vehicleRecord]{
		NewRecord: func() *vehicleRecord {
			return &vehicleRecord{}
		},
		GetID: func(record *vehicleRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.ID)
		},
		SetID: func(record *vehicleRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.ID = id.String()
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *vehicleRecord) string {
			if record == nil {
				return ""
			}
			return strings.TrimSpace(record.ID)
		},
	}
}

func parseUUID(value string) uuid.UUID {
	parsed, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil
	}
	return parsed
}
