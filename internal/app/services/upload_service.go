package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/mentoraid/internal/app/models/dto"
	"github.com/yigit/mentoraid/internal/pkg/apperrors"
	"github.com/yigit/mentoraid/internal/pkg/filestorage"
	"github.com/yigit/mentoraid/internal/pkg/helpers"
	"github.com/yigit/mentoraid/internal/pkg/metrics"
	"github.com/yigit/mentoraid/internal/pkg/notify"
)

// MaxUploadSize is the per-file upload limit
const MaxUploadSize = 10 << 20

const (
	msgNoFiles        = "Please select at least one file to upload."
	msgSkippedFiles   = "Some files were skipped. Only CSV and Excel files are supported."
	msgProcessingDone = "Data integration complete! Dashboard updated."
)

var allowedUploadExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".xls":  true,
}

// UploadService stores roster data files
type UploadService interface {
	Upload(ctx context.Context, files []*multipart.FileHeader) (*dto.UploadResponse, error)
	Wait()
}

// uploadServiceImpl implements UploadService
type uploadServiceImpl struct {
	storage         filestorage.FileStorage
	publisher       notify.Publisher
	metrics         *metrics.Metrics
	processingDelay time.Duration
	baseCtx         context.Context
	wg              sync.WaitGroup
	logger          zerolog.Logger
}

// NewUploadService creates a new UploadService. Background processing is
// bound to baseCtx so cancelling it abandons pending batches.
func NewUploadService(
	baseCtx context.Context,
	storage filestorage.FileStorage,
	processingDelay time.Duration,
	publisher notify.Publisher,
	m *metrics.Metrics,
	logger zerolog.Logger,
) UploadService {
	return &uploadServiceImpl{
		storage:         storage,
		publisher:       publisher,
		metrics:         m,
		processingDelay: processingDelay,
		baseCtx:         baseCtx,
		logger:          logger,
	}
}

// Upload accepts CSV and Excel files up to MaxUploadSize each and schedules
// their processing
func (s *uploadServiceImpl) Upload(ctx context.Context, files []*multipart.FileHeader) (*dto.UploadResponse, error) {
	if len(files) == 0 {
		s.publisher.Publish(ctx, notify.Error(msgNoFiles))
		return nil, apperrors.NewCustomError(apperrors.ErrNoFiles, msgNoFiles)
	}

	batchID := uuid.New().String()
	resp := &dto.UploadResponse{
		BatchID:  batchID,
		Accepted: []filestorage.StoredFile{},
	}

	for _, fh := range files {
		if reason := rejectReason(fh); reason != "" {
			resp.Skipped = append(resp.Skipped, dto.SkippedFile{Name: fh.Filename, Reason: reason})
			continue
		}

		stored, err := s.storage.SaveFile(fh, batchID)
		if err != nil {
			s.logger.Error().Err(err).Str("file", fh.Filename).Msg("Failed to store uploaded file")
			resp.Skipped = append(resp.Skipped, dto.SkippedFile{Name: fh.Filename, Reason: "could not be stored"})
			continue
		}
		resp.Accepted = append(resp.Accepted, *stored)
	}

	s.metrics.FilesUploaded(len(resp.Accepted), len(resp.Skipped))
	if len(resp.Skipped) > 0 {
		s.publisher.Publish(ctx, notify.Warning(msgSkippedFiles))
	}
	if len(resp.Accepted) == 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrUnsupportedFiles, msgSkippedFiles)
	}

	s.publisher.Publish(ctx, notify.Success(
		fmt.Sprintf("Successfully uploaded %d file(s). Processing data...", len(resp.Accepted)),
	))

	s.logger.Info().
		Str("batchID", batchID).
		Int("accepted", len(resp.Accepted)).
		Int("skipped", len(resp.Skipped)).
		Msg("Upload batch stored")

	s.process(ctx, batchID)
	return resp, nil
}

// Wait blocks until every scheduled batch has finished or been abandoned
func (s *uploadServiceImpl) Wait() {
	s.wg.Wait()
}

// process announces completion after the processing delay. The batch
// outlives the request but keeps its recipient.
func (s *uploadServiceImpl) process(reqCtx context.Context, batchID string) {
	ctx := s.baseCtx
	if recipient, ok := notify.RecipientFrom(reqCtx); ok {
		ctx = notify.WithRecipient(ctx, recipient)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		if err := helpers.Sleep(ctx, s.processingDelay); err != nil {
			s.logger.Warn().Err(err).Str("batchID", batchID).Msg("Upload processing abandoned")
			return
		}
		s.publisher.Publish(ctx, notify.Success(msgProcessingDone))
		s.logger.Debug().Str("batchID", batchID).Msg("Upload batch processed")
	}()
}

func rejectReason(fh *multipart.FileHeader) string {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedUploadExtensions[ext] {
		return "unsupported file type"
	}
	if fh.Size > MaxUploadSize {
		return "file exceeds 10MB"
	}
	return ""
}
