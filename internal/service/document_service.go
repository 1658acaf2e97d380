package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"vendorhub/internal/model"
	"vendorhub/internal/repository"
	"vendorhub/internal/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
)

// AllowedMimeTypes are the document types accepted on upload.
var AllowedMimeTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"image/jpeg",
	"image/png",
	"image/gif",
	"text/plain",
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// UploadInput describes one uploaded file.
type UploadInput struct {
	FileName       string
	Name           string
	Description    *string
	VendorID       *string
	SubscriptionID *string
	Body           io.Reader
}

// DocumentService stores contracts and other files for vendors.
type DocumentService interface {
	ListDocuments(ctx context.Context, orgID string, vendorID *string) ([]model.Document, error)
	// UploadDocument sniffs the content type, stores the bytes and then the metadata.
	UploadDocument(ctx context.Context, orgID, userID string, in UploadInput) (*model.Document, error)
	// DownloadURL returns a short-lived link to the stored file.
	DownloadURL(ctx context.Context, orgID, documentID string) (string, error)
	// DeleteDocument removes the stored file, then the record. A storage failure is logged only.
	DeleteDocument(ctx context.Context, orgID, documentID string) error
}

type documentService struct {
	repo     repository.DocumentRepository
	vendors  repository.VendorRepository
	subs     repository.SubscriptionRepository
	store    storage.ObjectStore
	activity ActivityService
	maxBytes int64
	now      func() time.Time
	logger   zerolog.Logger
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(
	repo repository.DocumentRepository,
	vendors repository.VendorRepository,
	subs repository.SubscriptionRepository,
	store storage.ObjectStore,
	activity ActivityService,
	maxBytes int64,
	logger zerolog.Logger,
) DocumentService {
	return &documentService{
		repo:     repo,
		vendors:  vendors,
		subs:     subs,
		store:    store,
		activity: activity,
		maxBytes: maxBytes,
		now:      time.Now,
		logger:   logger.With().Str("service", "DocumentService").Logger(),
	}
}

// StoragePath builds the object key for a document uploaded at t.
func StoragePath(orgID, fileName string, t time.Time) string {
	return fmt.Sprintf("%s/vendor-contracts/%d-%s", orgID, t.UnixMilli(), unsafeFileChars.ReplaceAllString(fileName, "_"))
}

func allowedMime(m *mimetype.MIME) bool {
	for _, allowed := range AllowedMimeTypes {
		if m.Is(allowed) {
			return true
		}
	}
	return false
}

func (s *documentService) ListDocuments(ctx context.Context, orgID string, vendorID *string) ([]model.Document, error) {
	return s.repo.ListDocuments(ctx, orgID, vendorID)
}

func (s *documentService) UploadDocument(ctx context.Context, orgID, userID string, in UploadInput) (*model.Document, error) {
	if strings.TrimSpace(in.FileName) == "" {
		return nil, &ValidationError{Problems: []string{"file name is required"}}
	}
	if in.VendorID != nil {
		v, err := s.vendors.GetVendor(ctx, orgID, *in.VendorID)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, ErrVendorNotFound
		}
	}
	if in.SubscriptionID != nil {
		sub, err := s.subs.GetSubscription(ctx, orgID, *in.SubscriptionID)
		if err != nil {
			return nil, err
		}
		if sub == nil {
			return nil, ErrSubscriptionNotFound
		}
	}

	data, err := io.ReadAll(io.LimitReader(in.Body, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, ErrFileTooLarge
	}
	if len(data) == 0 {
		return nil, &ValidationError{Problems: []string{"file is empty"}}
	}

	mtype := mimetype.Detect(data)
	if !allowedMime(mtype) {
		s.logger.Warn().Str("mime_type", mtype.String()).Str("file_name", in.FileName).Msg("Rejected upload")
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, mtype.String())
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = in.FileName
	}
	doc := &model.Document{
		OrganizationID: orgID,
		VendorID:       in.VendorID,
		SubscriptionID: in.SubscriptionID,
		Name:           name,
		Description:    in.Description,
		FilePath:       StoragePath(orgID, in.FileName, s.now()),
		FileSize:       int64(len(data)),
		MimeType:       mtype.String(),
		UploadedBy:     userID,
	}

	if err := s.store.Put(ctx, doc.FilePath, bytes.NewReader(data), doc.FileSize, doc.MimeType); err != nil {
		s.logger.Error().Err(err).Str("file_path", doc.FilePath).Msg("Failed to store document")
		return nil, err
	}
	if err := s.repo.CreateDocument(ctx, doc); err != nil {
		if delErr := s.store.Delete(ctx, doc.FilePath); delErr != nil {
			s.logger.Warn().Err(delErr).Str("file_path", doc.FilePath).Msg("Failed to remove orphaned object")
		}
		return nil, err
	}

	s.activity.Record(ctx, orgID, "document.uploaded", "document", &doc.ID, map[string]any{
		"name":      doc.Name,
		"file_size": doc.FileSize,
	})
	return doc, nil
}

func (s *documentService) get(ctx context.Context, orgID, documentID string) (*model.Document, error) {
	doc, err := s.repo.GetDocument(ctx, orgID, documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}
	return doc, nil
}

func (s *documentService) DownloadURL(ctx context.Context, orgID, documentID string) (string, error) {
	doc, err := s.get(ctx, orgID, documentID)
	if err != nil {
		return "", err
	}
	return s.store.PresignGet(ctx, doc.FilePath)
}

func (s *documentService) DeleteDocument(ctx context.Context, orgID, documentID string) error {
	doc, err := s.get(ctx, orgID, documentID)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, doc.FilePath); err != nil {
		s.logger.Warn().Err(err).Str("file_path", doc.FilePath).Msg("Failed to delete stored file, removing record anyway")
	}
	ok, err := s.repo.DeleteDocument(ctx, orgID, documentID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrDocumentNotFound
	}
	s.activity.Record(ctx, orgID, "document.deleted", "document", &documentID, map[string]any{"name": doc.Name})
	return nil
}
