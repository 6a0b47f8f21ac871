package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mkral/budget-planner/internal/storage"
	"github.com/mkral/budget-planner/internal/utils"
)

// BackupArchive is the exportable form of a household's data. Checksum is
// an HMAC over the snapshot payload and is verified before import.
type BackupArchive struct {
	ArchiveID string            `json:"archive_id"`
	CreatedAt string            `json:"created_at"`
	Checksum  string            `json:"checksum"`
	Snapshot  *storage.Snapshot `json:"snapshot"`
}

// ExportBackup serializes the household's full snapshot into a signed
// archive.
func (s *Service) ExportBackup(ctx context.Context) (*BackupArchive, error) {
	snap, userID, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize snapshot: %w", err)
	}
	archive := &BackupArchive{
		ArchiveID: uuid.New().String(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Checksum:  utils.Checksum(payload, s.config.BackupSecret),
		Snapshot:  snap,
	}
	s.log.Infof("Backup %s exported for user %d", archive.ArchiveID, userID)
	return archive, nil
}

// ImportBackup replaces the household's data with the archive's snapshot
// after verifying its checksum. Record ids are reassigned on import.
func (s *Service) ImportBackup(ctx context.Context, archive *BackupArchive) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if archive == nil || archive.Snapshot == nil {
		return fmt.Errorf("%w: archive has no snapshot", ErrValidation)
	}
	payload, err := json.Marshal(archive.Snapshot)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}
	if !utils.VerifyChecksum(payload, s.config.BackupSecret, archive.Checksum) {
		return fmt.Errorf("%w: archive checksum mismatch", ErrValidation)
	}
	if err := s.store.ImportSnapshot(userID, archive.Snapshot); err != nil {
		return fmt.Errorf("failed to import snapshot: %w", err)
	}
	s.cache.invalidate(userID, mutMembers)
	s.log.Infof("Backup %s imported for user %d", archive.ArchiveID, userID)
	return nil
}
