package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/totegamma/rerum-inbox/internal/domain"
	"github.com/totegamma/rerum-inbox/internal/infra/database/models"
	"github.com/totegamma/rerum-inbox/internal/usecase"
)

// columns maps the document fields a store query may name to their column.
var columns = map[string]string{
	domain.KeyType:   "type",
	domain.KeyTarget: "target",
}

type AnnouncementRepository struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

func (r *AnnouncementRepository) Create(ctx context.Context, doc domain.Announcement) (domain.StoredAnnouncement, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return domain.StoredAnnouncement{}, errors.Wrap(err, "AnnouncementRepository.Create: key generation failed")
	}

	document, err := json.Marshal(doc)
	if err != nil {
		return domain.StoredAnnouncement{}, err
	}

	record := models.Announcement{
		ID:         id.String(),
		Type:       doc.StringField(domain.KeyType),
		Target:     doc.StringField(domain.KeyTarget),
		Motivation: doc.StringField(domain.KeyMotivation),
		Document:   string(document),
	}

	err = r.db.WithContext(ctx).Create(&record).Error
	if err != nil {
		return domain.StoredAnnouncement{}, errors.Wrap(err, "AnnouncementRepository.Create")
	}

	return domain.StoredAnnouncement{Key: record.ID, Document: doc}, nil
}

func (r *AnnouncementRepository) Read(ctx context.Context, key string) (domain.Announcement, error) {
	var record models.Announcement
	err := r.db.WithContext(ctx).
		Where("id = ?", key).
		Take(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Announcement{}, domain.NotFoundError{Resource: "announcement"}
		}
		return domain.Announcement{}, errors.Wrap(err, "AnnouncementRepository.Read")
	}

	return domain.ParseAnnouncement([]byte(record.Document))
}

func (r *AnnouncementRepository) List(ctx context.Context, query domain.StoreQuery) ([]domain.StoredAnnouncement, error) {
	var column string
	if !query.IsZero() {
		var ok bool
		column, ok = columns[query.Field]
		if !ok {
			return nil, fmt.Errorf("AnnouncementRepository.List: unsupported field %q", query.Field)
		}
	}

	tx := r.db.WithContext(ctx).Order("c_date ASC").Order("id ASC")
	if column != "" {
		tx = tx.Where(column+" = ?", query.Value)
	}

	var records []models.Announcement
	if err := tx.Find(&records).Error; err != nil {
		return nil, errors.Wrap(err, "AnnouncementRepository.List")
	}

	result := make([]domain.StoredAnnouncement, 0, len(records))
	for _, record := range records {
		doc, err := domain.ParseAnnouncement([]byte(record.Document))
		if err != nil {
			return nil, errors.Wrapf(err, "AnnouncementRepository.List: record %s", record.ID)
		}
		result = append(result, domain.StoredAnnouncement{Key: record.ID, Document: doc})
	}
	return result, nil
}

var _ usecase.AnnouncementStore = (*AnnouncementRepository)(nil)
