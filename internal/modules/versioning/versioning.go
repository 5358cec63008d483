package versioning

import (
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/deliverysla-backend/internal/data/repos"
	types "github.com/yungbote/deliverysla-backend/internal/domain"
	"github.com/yungbote/deliverysla-backend/internal/observability"
	"github.com/yungbote/deliverysla-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/deliverysla-backend/internal/pkg/errors"
	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

const CreatedByDocumentDelivery = "JOB_DOCUMENT_DELIVERY"

// NewFile describes the document content of a new version.
type NewFile struct {
	Name      string
	Extension string
	Comment   string
	Path      string
	Hash      string
}

// Service creates deliverable file versions. Versions are append-only: a
// new row is inserted and earlier rows are never modified.
type Service struct {
	files   repos.DeliverableFileRepo
	log     *logger.Logger
	metrics *observability.Metrics
	now     func() time.Time
}

func NewService(files repos.DeliverableFileRepo, baseLog *logger.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		files:   files,
		log:     baseLog.With("service", "VersioningService"),
		metrics: metrics,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// CurrentFile returns the non-deleted file with the highest (major, minor),
// or nil when none exists. It always reads through to the store.
func (s *Service) CurrentFile(dbc dbctx.Context, deliverableID int64) (*types.DeliverableFile, error) {
	f, err := s.files.GetCurrent(dbc, deliverableID)
	if err != nil {
		return nil, fmt.Errorf("current file of deliverable %d: %w", deliverableID, err)
	}
	return f, nil
}

// Rollover inserts a copy of current with the next major version and minor 0.
// Calling it twice yields two new rows; it is not idempotent.
func (s *Service) Rollover(dbc dbctx.Context, current *types.DeliverableFile) (*types.DeliverableFile, error) {
	if current == nil {
		return nil, fmt.Errorf("rollover: %w", apperr.ErrInvalidArgument)
	}
	next := *current
	next.ID = 0
	next.Major = current.Major + 1
	next.Minor = 0
	created := types.CreatedAudit(CreatedByDocumentDelivery, s.now())
	next.CreatedBy, next.CreatedAt = created.CreatedBy, created.CreatedAt
	next.DeletedBy, next.DeletedAt = nil, nil

	if _, err := s.files.Create(dbc, []*types.DeliverableFile{&next}); err != nil {
		return nil, fmt.Errorf("rollover deliverable %d to v%d.0: %w", current.DeliverableID, next.Major, err)
	}
	s.metrics.IncDeliverableVersion()
	s.log.Info("deliverable version rolled over",
		"deliverable_id", current.DeliverableID, "from", current.VersionName(), "to", next.VersionName(), "file_id", next.ID)
	return &next, nil
}

// NextVersion returns the version an on-demand upload should get: the current
// minor bumped by one, or v0.1 when the deliverable has no active file.
func (s *Service) NextVersion(dbc dbctx.Context, deliverableID int64) (int, int, error) {
	cur, err := s.CurrentFile(dbc, deliverableID)
	if err != nil {
		return 0, 0, err
	}
	if cur == nil {
		return 0, 1, nil
	}
	return cur.Major, cur.Minor + 1, nil
}

// AddMinorVersion stores a new document at NextVersion. The new row inherits
// the SLA markers of the version it supersedes.
func (s *Service) AddMinorVersion(dbc dbctx.Context, deliverableID int64, file NewFile, by string) (*types.DeliverableFile, error) {
	if deliverableID <= 0 || strings.TrimSpace(file.Path) == "" {
		return nil, fmt.Errorf("add minor version: %w", apperr.ErrInvalidArgument)
	}
	cur, err := s.CurrentFile(dbc, deliverableID)
	if err != nil {
		return nil, err
	}
	row := &types.DeliverableFile{
		DeliverableID: deliverableID,
		Major:         0,
		Minor:         1,
		Name:          file.Name,
		Extension:     file.Extension,
		Comment:       file.Comment,
		Path:          file.Path,
		Hash:          file.Hash,
		Audit:         types.CreatedAudit(by, s.now()),
	}
	if cur != nil {
		row.Major = cur.Major
		row.Minor = cur.Minor + 1
		row.CurrentSla = cur.CurrentSla
		row.ClientSla = cur.ClientSla
	}
	if _, err := s.files.Create(dbc, []*types.DeliverableFile{row}); err != nil {
		return nil, fmt.Errorf("add version %s to deliverable %d: %w", row.VersionName(), deliverableID, err)
	}
	s.log.Info("deliverable version added", "deliverable_id", deliverableID, "version", row.VersionName(), "by", by)
	return row, nil
}
