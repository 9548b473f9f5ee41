package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Elzorno/AOP/internal/dto"
	"github.com/Elzorno/AOP/internal/model"
	"github.com/Elzorno/AOP/internal/repository"
)

// ── 课表发布模块业务错误 ──

var (
	ErrPublicationNotFound = errors.New("发布版本不存在")
	ErrTermNotLocked       = errors.New("学期课表未锁定，不可发布")
)

// PublicationService 课表发布业务接口
//
// 发布即归档：对已锁定学期生成带版本号的 Excel 快照落盘，
// 并签发对外下载令牌。版本号在学期内单调递增。
type PublicationService interface {
	Publish(ctx context.Context, termID string, req *dto.PublishScheduleRequest, callerID string) (*dto.PublicationResponse, error)
	ListByTerm(ctx context.Context, termID string) ([]dto.PublicationResponse, error)
	// Latest 学期最新发布版本
	Latest(ctx context.Context, termID string) (*dto.PublicationResponse, error)
	// DownloadByToken 对外下载：令牌 → (文件路径, 建议文件名)
	DownloadByToken(ctx context.Context, token string) (string, string, error)
}

type publicationService struct {
	repo       *repository.Repository
	export     ExportService
	publishDir string
	logger     *zap.Logger
}

// NewPublicationService 创建 PublicationService 实例
func NewPublicationService(repo *repository.Repository, export ExportService, publishDir string, logger *zap.Logger) PublicationService {
	return &publicationService{repo: repo, export: export, publishDir: publishDir, logger: logger}
}

func (s *publicationService) Publish(ctx context.Context, termID string, req *dto.PublishScheduleRequest, callerID string) (*dto.PublicationResponse, error) {
	term, err := s.repo.Term.GetByID(ctx, termID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTermNotFound
		}
		return nil, err
	}
	if !term.IsScheduleLocked() {
		return nil, ErrTermNotLocked
	}

	buf, _, err := s.export.ExportTermSchedule(ctx, termID)
	if err != nil {
		return nil, err
	}

	maxVersion, err := s.repo.SchedulePublication.MaxVersion(ctx, termID)
	if err != nil {
		s.logger.Error("查询发布版本失败", zap.Error(err))
		return nil, err
	}
	version := maxVersion + 1

	if err := os.MkdirAll(s.publishDir, 0o755); err != nil {
		s.logger.Error("创建发布目录失败", zap.String("dir", s.publishDir), zap.Error(err))
		return nil, err
	}
	filePath := filepath.Join(s.publishDir, fmt.Sprintf("%s_v%d.xlsx", term.Code, version))
	if err := os.WriteFile(filePath, buf.Bytes(), 0o644); err != nil {
		s.logger.Error("写入发布文件失败", zap.String("path", filePath), zap.Error(err))
		return nil, err
	}

	pub := &model.SchedulePublication{
		TermID:      termID,
		Version:     version,
		PublicToken: uuid.NewString(),
		FilePath:    filePath,
		Notes:       req.Notes,
	}
	pub.CreatedBy = &callerID
	pub.UpdatedBy = &callerID

	if err := s.repo.SchedulePublication.Create(ctx, pub); err != nil {
		s.logger.Error("创建发布记录失败", zap.Error(err))
		return nil, err
	}
	s.logger.Info("课表已发布",
		zap.String("term_id", termID),
		zap.Int("version", version),
		zap.String("actor", callerID))
	return toPublicationResponse(pub), nil
}

func (s *publicationService) ListByTerm(ctx context.Context, termID string) ([]dto.PublicationResponse, error) {
	pubs, err := s.repo.SchedulePublication.ListByTerm(ctx, termID)
	if err != nil {
		s.logger.Error("查询发布记录失败", zap.Error(err))
		return nil, err
	}
	out := make([]dto.PublicationResponse, 0, len(pubs))
	for i := range pubs {
		out = append(out, *toPublicationResponse(&pubs[i]))
	}
	return out, nil
}

func (s *publicationService) Latest(ctx context.Context, termID string) (*dto.PublicationResponse, error) {
	pub, err := s.repo.SchedulePublication.GetLatest(ctx, termID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPublicationNotFound
		}
		s.logger.Error("查询发布记录失败", zap.Error(err))
		return nil, err
	}
	return toPublicationResponse(pub), nil
}

func (s *publicationService) DownloadByToken(ctx context.Context, token string) (string, string, error) {
	pub, err := s.repo.SchedulePublication.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", ErrPublicationNotFound
		}
		s.logger.Error("查询发布记录失败", zap.Error(err))
		return "", "", err
	}
	return pub.FilePath, filepath.Base(pub.FilePath), nil
}

// toPublicationResponse model → dto 转换
func toPublicationResponse(pub *model.SchedulePublication) *dto.PublicationResponse {
	resp := &dto.PublicationResponse{
		ID:          pub.PublicationID,
		TermID:      pub.TermID,
		Version:     pub.Version,
		PublicToken: pub.PublicToken,
		Notes:       pub.Notes,
		CreatedAt:   pub.CreatedAt.Format(time.RFC3339),
	}
	if pub.CreatedBy != nil {
		resp.CreatedBy = *pub.CreatedBy
	}
	return resp
}
