package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"skynow-api/internal/domain/entity"
)

type recentCityRecord struct {
	ClientID string `gorm:"column:client_id;primaryKey"`
	Position int    `gorm:"column:position;primaryKey"`
	entity.CitySearchResult
}

func (recentCityRecord) TableName() string {
	return "recent_cities"
}

type GormHistoryGateway struct {
	DB *gorm.DB
}

var _ HistoryGateway = (*GormHistoryGateway)(nil)

func NewGormHistoryGateway(db *gorm.DB) *GormHistoryGateway {
	return &GormHistoryGateway{DB: db}
}

// Migrate creates the recent_cities table when missing
func (gateway *GormHistoryGateway) Migrate() error {
	return gateway.DB.AutoMigrate(&recentCityRecord{})
}

func (gateway *GormHistoryGateway) Load(ctx context.Context, clientID string) ([]entity.CitySearchResult, error) {
	var records []recentCityRecord
	err := gateway.DB.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("position").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	cities := make([]entity.CitySearchResult, 0, len(records))
	for _, record := range records {
		cities = append(cities, record.CitySearchResult)
	}
	return cities, nil
}

// Save rewrites the client's rows in one transaction
func (gateway *GormHistoryGateway) Save(ctx context.Context, clientID string, cities []entity.CitySearchResult) error {
	records := make([]recentCityRecord, 0, len(cities))
	for position, city := range cities {
		records = append(records, recentCityRecord{ClientID: clientID, Position: position, CitySearchResult: city})
	}

	err := gateway.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ?", clientID).Delete(&recentCityRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
	if err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}
