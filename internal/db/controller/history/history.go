// Package history provides CRUD operations for stored analysis summaries.
package history

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/brandalign/brandalign/internal/db/models"
	"github.com/brandalign/brandalign/internal/governance"
)

const (
	// DefaultPerPage is the page size used when none is requested.
	DefaultPerPage = 20
	maxPerPage     = 200
)

var (
	// ErrHistoryNotFound is returned when a history entry does not exist.
	ErrHistoryNotFound = errors.New("history entry not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Query filters and pages the history list.
type Query struct {
	Search  string `query:"q"`
	Page    int    `query:"page"`
	PerPage int    `query:"per_page"`
}

func (q *Query) normalize() {
	if q.Page < 1 {
		q.Page = 1
	}

	if q.PerPage < 1 {
		q.PerPage = DefaultPerPage
	}

	if q.PerPage > maxPerPage {
		q.PerPage = maxPerPage
	}

	q.Search = strings.TrimSpace(q.Search)
}

// Page is one page of history entries.
type Page struct {
	Items   []governance.HistoryItem `json:"items"`
	Total   int64                    `json:"total"`
	Page    int                      `json:"page"`
	PerPage int                      `json:"perPage"`
}

// Pages returns the number of pages.
func (p Page) Pages() int {
	if p.PerPage == 0 {
		return 0
	}

	return int((p.Total + int64(p.PerPage) - 1) / int64(p.PerPage))
}

// Create stores a history entry and returns it with its ID.
func Create(db *gorm.DB, item governance.HistoryItem) (governance.HistoryItem, error) {
	if db == nil {
		return item, ErrDBNil
	}

	m := toModel(item)
	if err := db.Create(&m).Error; err != nil {
		return item, err
	}

	return fromModel(m), nil
}

// likeEscaper makes a search term match literally inside a LIKE pattern.
// '!' is the escape character since backslash is itself special in MySQL literals.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_") //nolint:gochecknoglobals

// List returns the newest entries first, optionally filtered by filename or purpose.
func List(db *gorm.DB, q Query) (Page, error) {
	if db == nil {
		return Page{}, ErrDBNil
	}

	q.normalize()

	filtered := func() *gorm.DB {
		tx := db.Model(&models.History{})
		if q.Search != "" {
			like := "%" + likeEscaper.Replace(strings.ToLower(q.Search)) + "%"
			tx = tx.Where("LOWER(filename) LIKE ? ESCAPE '!' OR LOWER(purpose) LIKE ? ESCAPE '!'", like, like)
		}

		return tx
	}

	page := Page{Page: q.Page, PerPage: q.PerPage}
	if err := filtered().Count(&page.Total).Error; err != nil {
		return page, err
	}

	var rows []models.History
	if err := filtered().Order("created_at DESC").Order("id DESC").
		Offset((q.Page - 1) * q.PerPage).Limit(q.PerPage).
		Find(&rows).Error; err != nil {
		return page, err
	}

	page.Items = make([]governance.HistoryItem, 0, len(rows))
	for _, r := range rows {
		page.Items = append(page.Items, fromModel(r))
	}

	return page, nil
}

// All returns every entry, newest first.
func All(db *gorm.DB) ([]governance.HistoryItem, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var rows []models.History
	if err := db.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]governance.HistoryItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, fromModel(r))
	}

	return items, nil
}

// Get returns a single entry.
func Get(db *gorm.DB, id uint64) (governance.HistoryItem, error) {
	if db == nil {
		return governance.HistoryItem{}, ErrDBNil
	}

	var m models.History
	if err := db.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return governance.HistoryItem{}, ErrHistoryNotFound
		}

		return governance.HistoryItem{}, err
	}

	return fromModel(m), nil
}

// Delete removes a single entry.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.History{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrHistoryNotFound
	}

	return nil
}

// Seed adds the sample entries when the history is empty.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.History{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	samples := []governance.HistoryItem{
		{
			Filename: "Q3_Marketing_Strategy.pptx",
			Type:     governance.AssetPresentation,
			Date:     time.Date(2023, 10, 24, 14, 30, 0, 0, time.UTC),
			Score:    92,
			Purpose:  governance.PurposeMarketing,
			Region:   governance.DefaultRegion,
			Issues:   3,
			Status:   governance.StatusPass,
		},
		{
			Filename: "Sales_Pitch_V2.docx",
			Type:     governance.AssetDocument,
			Date:     time.Date(2023, 10, 23, 9, 15, 0, 0, time.UTC),
			Score:    78,
			Purpose:  governance.PurposeSalesPitch,
			Region:   "North America",
			Issues:   12,
			Status:   governance.StatusNeedsReview,
		},
	}

	for _, s := range samples {
		if _, err := Create(db, s); err != nil {
			return err
		}
	}

	return nil
}

func toModel(item governance.HistoryItem) models.History {
	return models.History{
		ID:                   uint64(item.ID),
		Filename:             item.Filename,
		AssetType:            string(item.Type),
		Score:                item.Score,
		Purpose:              string(item.Purpose),
		Region:               item.Region,
		Issues:               item.Issues,
		Status:               string(item.Status),
		BrandSettingsVersion: item.ContextSnapshot.BrandSettingsVersion,
		CreatedAt:            item.Date,
	}
}

func fromModel(m models.History) governance.HistoryItem {
	return governance.HistoryItem{
		ID:       uint(m.ID),
		Filename: m.Filename,
		Type:     governance.AssetType(m.AssetType),
		Date:     m.CreatedAt,
		Score:    m.Score,
		Purpose:  governance.Purpose(m.Purpose),
		Region:   m.Region,
		Issues:   m.Issues,
		Status:   governance.HistoryStatus(m.Status),
		ContextSnapshot: governance.ContextSnapshot{
			BrandSettingsVersion: m.BrandSettingsVersion,
			Region:               m.Region,
		},
	}
}
