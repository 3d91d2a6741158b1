package attachment

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/sv1nxmmvt/GigaChat/internal/common"
	"github.com/sv1nxmmvt/GigaChat/internal/config"
	"github.com/sv1nxmmvt/GigaChat/internal/dbmysql"
	"github.com/sv1nxmmvt/GigaChat/internal/membership"
)

// BlobStore is the content side of an attachment; metadata lives in the
// relational store.
type BlobStore interface {
	Store(ctx context.Context, filename, contentType, uploaderID string, content io.Reader) (string, int64, error)
	Retrieve(ctx context.Context, storageID string) (io.ReadCloser, error)
	Delete(ctx context.Context, storageID string) error
}

// MessageLookup resolves the message an attachment is linked to.
type MessageLookup interface {
	GetByID(ctx context.Context, id string) (*dbmysql.Message, error)
}

type Service interface {
	Upload(ctx context.Context, uploaderID, filename, contentType string, content io.Reader) (*dbmysql.Attachment, error)
	Download(ctx context.Context, attachmentID, requestorID string) (*dbmysql.Attachment, io.ReadCloser, error)
	Delete(ctx context.Context, attachmentID, requestorID string) error
}

type blobService struct {
	repo     Repository
	blobs    BlobStore
	messages MessageLookup
	guard    *membership.Guard
	grace    time.Duration
	maxBytes int64
}

func NewService(repo Repository, blobs BlobStore, messages MessageLookup, guard *membership.Guard, cnf *config.Config) Service {
	return &blobService{
		repo:     repo,
		blobs:    blobs,
		messages: messages,
		guard:    guard,
		grace:    time.Duration(cnf.Upload.GraceMinutes) * time.Minute,
		maxBytes: cnf.Upload.MaxFileBytes,
	}
}

// Upload stores the blob and records metadata. The attachment is born
// unlinked; a later send claims it into a message.
func (s *blobService) Upload(ctx context.Context, uploaderID, filename, contentType string, content io.Reader) (*dbmysql.Attachment, error) {
	if filename == "" {
		return nil, fmt.Errorf("%w: missing file name", common.ErrInvalidInput)
	}

	limited := io.LimitReader(content, s.maxBytes+1)
	storageID, size, err := s.blobs.Store(ctx, filename, contentType, uploaderID, limited)
	if err != nil {
		return nil, fmt.Errorf("store blob: %w", err)
	}
	if size > s.maxBytes {
		if derr := s.blobs.Delete(ctx, storageID); derr != nil {
			log.Printf("failed to purge oversized blob %s: %v", storageID, derr)
		}
		return nil, fmt.Errorf("%w: file exceeds %d bytes", common.ErrInvalidInput, s.maxBytes)
	}

	att := &dbmysql.Attachment{
		ID:          uuid.NewString(),
		UploaderID:  uploaderID,
		FileName:    filename,
		ContentType: contentType,
		FileSize:    size,
		StorageID:   storageID,
		UploadedAt:  time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, att); err != nil {
		if derr := s.blobs.Delete(ctx, storageID); derr != nil {
			log.Printf("failed to purge orphaned blob %s: %v", storageID, derr)
		}
		return nil, err
	}
	return att, nil
}

func (s *blobService) Download(ctx context.Context, attachmentID, requestorID string) (*dbmysql.Attachment, io.ReadCloser, error) {
	att, err := s.repo.GetByID(ctx, attachmentID)
	if err != nil {
		return nil, nil, err
	}

	if att.MessageID == nil {
		if err := s.requireUploaderInGrace(att, requestorID); err != nil {
			return nil, nil, err
		}
	} else {
		msg, err := s.messages.GetByID(ctx, *att.MessageID)
		if err != nil {
			return nil, nil, err
		}
		if err := s.guard.RequireMember(ctx, msg.ChatID, requestorID); err != nil {
			return nil, nil, err
		}
	}

	stream, err := s.blobs.Retrieve(ctx, att.StorageID)
	if err != nil {
		return nil, nil, fmt.Errorf("retrieve blob: %w", err)
	}
	return att, stream, nil
}

func (s *blobService) Delete(ctx context.Context, attachmentID, requestorID string) error {
	att, err := s.repo.GetByID(ctx, attachmentID)
	if err != nil {
		return err
	}

	if att.MessageID == nil {
		if err := s.requireUploaderInGrace(att, requestorID); err != nil {
			return err
		}
		att, err = s.repo.DeleteUnlinked(ctx, attachmentID, requestorID)
		if err != nil {
			return err
		}
	} else {
		msg, err := s.messages.GetByID(ctx, *att.MessageID)
		if err != nil {
			return err
		}
		if msg.SenderID != requestorID {
			admin, err := s.guard.IsAdmin(ctx, msg.ChatID, requestorID)
			if err != nil {
				return err
			}
			if !admin {
				return fmt.Errorf("%w: only the sender or a chat admin may delete an attachment", common.ErrForbidden)
			}
		}
		att, err = s.repo.DeleteLinked(ctx, attachmentID)
		if err != nil {
			return err
		}
	}

	if err := s.blobs.Delete(ctx, att.StorageID); err != nil {
		log.Printf("failed to purge attachment blob %s: %v", att.StorageID, err)
	}
	return nil
}

func (s *blobService) requireUploaderInGrace(att *dbmysql.Attachment, requestorID string) error {
	if att.UploaderID != requestorID {
		return fmt.Errorf("%w: attachment is not linked to a message yet", common.ErrForbidden)
	}
	if time.Since(att.UploadedAt) > s.grace {
		return fmt.Errorf("%w: attachment %s", common.ErrNotFound, att.ID)
	}
	return nil
}
