package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"math"
	"mime/multipart"
	"path"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"darb_pms/internal/apperror"
	"darb_pms/internal/model"
	"darb_pms/internal/repository"
	"darb_pms/internal/storage"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	// MaxAttachmentSize is the largest accepted attachment upload.
	MaxAttachmentSize = 20 << 20
	dateLayout        = "2006-01-02"
	attachmentPrefix  = "investment-projects"
)

var allowedAttachmentExts = map[string]bool{
	".pdf": true, ".png": true, ".jpg": true, ".jpeg": true,
	".dwg": true, ".dxf": true, ".zip": true, ".doc": true, ".docx": true,
	".xls": true, ".xlsx": true,
}

// Fixed keys of the stats endpoints; statuses missing from the table report 0.
var (
	feasibilityStatKeys = []string{"total", "approved", "signed_contract", "rejected"}
	contractStatKeys    = []string{"total", "contracted", "need_contract"}
)

// InvestmentProjectService provides investment project operations and the
// PM/CEO review workflow.
type InvestmentProjectService interface {
	Create(ctx context.Context, req model.CreateInvestmentProjectRequest, userID int) (*model.InvestmentProject, error)
	List(ctx context.Context, departmentType *string) ([]model.InvestmentProject, error)
	ListByStation(ctx context.Context, stationCode string, departmentType *string) ([]model.InvestmentProject, error)
	Get(ctx context.Context, id int) (*model.InvestmentProject, error)
	Update(ctx context.Context, id int, patch map[string]any, userID int) (*model.InvestmentProject, error)
	UpdateReviewStatus(ctx context.Context, id int, req model.ReviewRequest, callerRole string, callerID int) (*model.InvestmentProject, error)
	Delete(ctx context.Context, id int) (*model.InvestmentProject, error)
	FeasibilityStats(ctx context.Context, departmentType *string) (model.ProjectStatusCounts, error)
	ContractStats(ctx context.Context, departmentType *string) (model.ProjectStatusCounts, error)
	UploadAttachment(ctx context.Context, id int, kind string, file *multipart.FileHeader, userID int) (*model.InvestmentProject, error)
	OpenAttachment(ctx context.Context, id int, kind string) (io.ReadCloser, string, error)
}

type investmentProjectService struct {
	repo  repository.InvestmentProjectRepository
	store storage.ObjectStorage
}

// NewInvestmentProjectService creates a new InvestmentProjectService
func NewInvestmentProjectService(repo repository.InvestmentProjectRepository, store storage.ObjectStorage) InvestmentProjectService {
	return &investmentProjectService{repo: repo, store: store}
}

func valueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

func parseDate(field string, raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(*raw))
	if err != nil {
		return nil, apperror.Validation(fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field))
	}
	return &t, nil
}

func projectError(err error, action string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrProjectNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return ErrProjectCodeTaken
	default:
		return apperror.Internal("failed to "+action+" project", err)
	}
}

func (s *investmentProjectService) Create(ctx context.Context, req model.CreateInvestmentProjectRequest, userID int) (*model.InvestmentProject, error) {
	if strings.TrimSpace(req.DepartmentType) == "" || strings.TrimSpace(req.ProjectName) == "" || strings.TrimSpace(req.ProjectCode) == "" {
		return nil, ErrProjectFieldsRequired
	}
	orderDate, err := parseDate("orderDate", req.OrderDate)
	if err != nil {
		return nil, err
	}

	p := &model.InvestmentProject{
		DepartmentType:  req.DepartmentType,
		RequestType:     req.RequestType,
		ProjectName:     req.ProjectName,
		ProjectCode:     req.ProjectCode,
		City:            req.City,
		District:        req.District,
		Area:            valueOr(req.Area, 0),
		ProjectStatus:   req.ProjectStatus,
		ContractType:    req.ContractType,
		GoogleLocation:  req.GoogleLocation,
		PriorityLevel:   req.PriorityLevel,
		OrderDate:       orderDate,
		RequestSender:   req.RequestSender,
		SuperMarket:     valueOr(req.SuperMarket, 0),
		FuelStation:     valueOr(req.FuelStation, 0),
		Kiosks:          valueOr(req.Kiosks, 0),
		RetailShop:      valueOr(req.RetailShop, 0),
		DriveThrough:    valueOr(req.DriveThrough, 0),
		ElementArea:     valueOr(req.ElementArea, 0),
		OwnerName:       req.OwnerName,
		OwnerContactNo:  req.OwnerContactNo,
		IDNo:            req.IDNo,
		NationalAddress: req.NationalAddress,
		Email:           req.Email,
		OwnerType:       valueOr(req.OwnerType, model.OwnerTypeIndividual),
		DesignFileURL:   req.DesignFileURL,
		DocumentsURL:    req.DocumentsURL,
		AutocadURL:      req.AutocadURL,
		StationCode:     req.StationCode,
		CreatedBy:       &userID,
	}
	if p.OwnerType == "" {
		p.OwnerType = model.OwnerTypeIndividual
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, projectError(err, "create")
	}
	return p, nil
}

func (s *investmentProjectService) List(ctx context.Context, departmentType *string) ([]model.InvestmentProject, error) {
	projects, err := s.repo.List(ctx, repository.ProjectFilter{DepartmentType: departmentType})
	if err != nil {
		return nil, projectError(err, "list")
	}
	return projects, nil
}

func (s *investmentProjectService) ListByStation(ctx context.Context, stationCode string, departmentType *string) ([]model.InvestmentProject, error) {
	projects, err := s.repo.List(ctx, repository.ProjectFilter{DepartmentType: departmentType, StationCode: &stationCode})
	if err != nil {
		return nil, projectError(err, "list")
	}
	return projects, nil
}

func (s *investmentProjectService) Get(ctx context.Context, id int) (*model.InvestmentProject, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, projectError(err, "load")
	}
	return p, nil
}

// Update applies a partial update. Only keys listed in
// model.InvestmentProjectPatchFields are accepted; anything else, including
// the review columns, is a validation error and nothing is written.
func (s *investmentProjectService) Update(ctx context.Context, id int, patch map[string]any, userID int) (*model.InvestmentProject, error) {
	assignments, err := buildAssignments(patch)
	if err != nil {
		return nil, err
	}
	p, err := s.repo.Update(ctx, id, assignments, userID)
	if err != nil {
		return nil, projectError(err, "update")
	}
	return p, nil
}

func buildAssignments(patch map[string]any) ([]model.ColumnAssignment, error) {
	if len(patch) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	assignments := make([]model.ColumnAssignment, 0, len(patch))
	for _, key := range slices.Sorted(maps.Keys(patch)) {
		field, ok := model.InvestmentProjectPatchFields[key]
		if !ok {
			return nil, apperror.Validation(fmt.Sprintf("field %q cannot be updated", key))
		}
		value, err := coerceField(key, field, patch[key])
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, model.ColumnAssignment{Column: field.Column, Value: value})
	}
	return assignments, nil
}

func coerceField(key string, field model.PatchField, raw any) (any, error) {
	if raw == nil {
		if field.Required {
			return nil, apperror.Validation(fmt.Sprintf("%s cannot be null", key))
		}
		return nil, nil
	}

	switch field.Kind {
	case model.FieldText:
		str, ok := raw.(string)
		if !ok {
			return nil, apperror.Validation(fmt.Sprintf("%s must be a string", key))
		}
		if field.Required && strings.TrimSpace(str) == "" {
			return nil, apperror.Validation(fmt.Sprintf("%s cannot be empty", key))
		}
		return str, nil
	case model.FieldInt:
		num, ok := raw.(float64)
		if !ok || num != math.Trunc(num) || num < 0 || num > math.MaxInt32 {
			return nil, apperror.Validation(fmt.Sprintf("%s must be a non-negative integer", key))
		}
		return int(num), nil
	case model.FieldNumeric:
		num, ok := raw.(float64)
		if !ok {
			return nil, apperror.Validation(fmt.Sprintf("%s must be a number", key))
		}
		return num, nil
	case model.FieldDate:
		str, ok := raw.(string)
		if !ok {
			return nil, apperror.Validation(fmt.Sprintf("%s must be a date in YYYY-MM-DD format", key))
		}
		t, err := parseDate(key, &str)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, nil
		}
		return *t, nil
	}
	return nil, apperror.Internal("unknown field kind", fmt.Errorf("field %s has kind %d", key, field.Kind))
}

// UpdateReviewStatus records a review decision. A CEO's comment goes to
// ceo_comment; every other role writes pm_comment. Any of the four statuses
// may follow any other.
func (s *investmentProjectService) UpdateReviewStatus(ctx context.Context, id int, req model.ReviewRequest, callerRole string, callerID int) (*model.InvestmentProject, error) {
	if req.ReviewStatus == "" {
		return nil, ErrReviewStatusRequired
	}
	if !model.IsValidReviewStatus(req.ReviewStatus) {
		return nil, ErrInvalidReviewStatus
	}

	asCEO := callerRole == model.RoleCEO
	p, err := s.repo.UpdateReview(ctx, id, req.ReviewStatus, req.Comment, asCEO, callerID)
	if err != nil {
		return nil, projectError(err, "review")
	}

	log.WithFields(log.Fields{
		"project_id":    id,
		"review_status": req.ReviewStatus,
		"reviewer_id":   callerID,
		"as_ceo":        asCEO,
	}).Info("project review status updated")
	return p, nil
}

func (s *investmentProjectService) Delete(ctx context.Context, id int) (*model.InvestmentProject, error) {
	p, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, projectError(err, "delete")
	}
	return p, nil
}

func (s *investmentProjectService) FeasibilityStats(ctx context.Context, departmentType *string) (model.ProjectStatusCounts, error) {
	counts, err := s.repo.CountByFeasibility(ctx, departmentType)
	if err != nil {
		return nil, apperror.Internal("failed to fetch stats", err)
	}
	return pickCounts(counts, feasibilityStatKeys), nil
}

func (s *investmentProjectService) ContractStats(ctx context.Context, departmentType *string) (model.ProjectStatusCounts, error) {
	counts, err := s.repo.CountByContract(ctx, departmentType)
	if err != nil {
		return nil, apperror.Internal("failed to fetch contract stats", err)
	}
	return pickCounts(counts, contractStatKeys), nil
}

func pickCounts(counts map[string]int64, keys []string) model.ProjectStatusCounts {
	out := make(model.ProjectStatusCounts, len(keys))
	for _, k := range keys {
		out[k] = counts[k]
	}
	return out
}

// attachmentKey returns a fresh object key per upload, so a new file never
// replaces the object a project row still references. The client filename
// follows the uuid and is only used as the download name.
func attachmentKey(id int, kind, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	return path.Join(attachmentPrefix, strconv.Itoa(id), kind, uuid.NewString()+"-"+name)
}

// attachmentName recovers the client filename from a key built by attachmentKey.
func attachmentName(key string) string {
	base := path.Base(key)
	const idLen = 36
	if len(base) > idLen+1 && base[idLen] == '-' && uuid.Validate(base[:idLen]) == nil {
		return base[idLen+1:]
	}
	return base
}

func storedAttachment(p *model.InvestmentProject, kind string) *string {
	switch kind {
	case model.AttachmentDesign:
		return p.DesignFileURL
	case model.AttachmentDocuments:
		return p.DocumentsURL
	case model.AttachmentAutocad:
		return p.AutocadURL
	}
	return nil
}

func isStoredKey(url *string) bool {
	return url != nil && strings.HasPrefix(*url, attachmentPrefix+"/")
}

// UploadAttachment stores a project file and records its key in the URL
// column of the given kind. The previous object of that kind is removed only
// after the row points at the new one.
func (s *investmentProjectService) UploadAttachment(ctx context.Context, id int, kind string, fileHeader *multipart.FileHeader, userID int) (*model.InvestmentProject, error) {
	if _, ok := model.AttachmentColumns[kind]; !ok {
		return nil, ErrInvalidAttachmentKind
	}
	if fileHeader.Size > MaxAttachmentSize {
		return nil, ErrFileSizeExceeded
	}
	if !allowedAttachmentExts[strings.ToLower(filepath.Ext(fileHeader.Filename))] {
		return nil, ErrInvalidFileFormat
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := storedAttachment(current, kind)

	src, err := fileHeader.Open()
	if err != nil {
		return nil, apperror.Internal("failed to open uploaded file", err)
	}
	defer src.Close()

	key := attachmentKey(id, kind, fileHeader.Filename)
	if err := s.store.Put(ctx, key, src, fileHeader.Size, fileHeader.Header.Get("Content-Type")); err != nil {
		return nil, apperror.Internal("failed to store attachment", err)
	}

	p, err := s.repo.SetAttachmentURL(ctx, id, kind, key, userID)
	if err != nil {
		if rmErr := s.store.Delete(ctx, key); rmErr != nil {
			log.WithField("key", key).WithError(rmErr).Warn("failed to clean up orphaned attachment")
		}
		return nil, projectError(err, "update")
	}

	if isStoredKey(previous) && *previous != key {
		if rmErr := s.store.Delete(ctx, *previous); rmErr != nil {
			log.WithField("key", *previous).WithError(rmErr).Warn("failed to remove replaced attachment")
		}
	}
	return p, nil
}

// OpenAttachment streams a file previously stored by UploadAttachment. URL
// columns holding external links are reported as not found.
func (s *investmentProjectService) OpenAttachment(ctx context.Context, id int, kind string) (io.ReadCloser, string, error) {
	if _, ok := model.AttachmentColumns[kind]; !ok {
		return nil, "", ErrInvalidAttachmentKind
	}
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}

	stored := storedAttachment(p, kind)
	if !isStoredKey(stored) {
		return nil, "", ErrAttachmentNotFound
	}

	rc, err := s.store.Get(ctx, *stored)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, "", ErrAttachmentNotFound
		}
		return nil, "", apperror.Internal("failed to open attachment", err)
	}
	return rc, attachmentName(*stored), nil
}
