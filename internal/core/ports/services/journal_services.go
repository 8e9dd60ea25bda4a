package services

import (
	"context"

	"github.com/SscSPs/textile_erp/internal/core/domain"
	"github.com/SscSPs/textile_erp/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetEntryByID retrieves a journal entry with its lines.
	GetEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error)

	// GetEntries retrieves a page of journal entries, most recent first.
	GetEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// CreateEntry validates, numbers and posts a journal entry.
	CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// ReverseEntry posts a new entry that cancels a posted one.
	ReverseEntry(ctx context.Context, entryID int64, req dto.ReverseJournalEntryRequest, userID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
