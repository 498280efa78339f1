package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/stampdeck/stampdeck-backend/internal/app/model"
	"github.com/stampdeck/stampdeck-backend/internal/kv"
)

type QRCodeRepository interface {
	List() ([]model.QRCodeData, error)
	Add(input model.QRCodeData) (*model.QRCodeData, error)
	Update(id string, mutate func(*model.QRCodeData)) error
	Remove(id string) error
	FindByID(id string) (*model.QRCodeData, error)
	ByCampaign(campaignID string) ([]model.QRCodeData, error)
}

type qrCodeRepository struct {
	store kv.Store
}

func NewQRCodeRepository(store kv.Store) QRCodeRepository {
	return &qrCodeRepository{store: store}
}

func (r *qrCodeRepository) List() ([]model.QRCodeData, error) {
	return readCollection[model.QRCodeData](r.store, KeyQRCodes)
}

func (r *qrCodeRepository) Add(input model.QRCodeData) (*model.QRCodeData, error) {
	next := input
	next.ID = uuid.New().String()
	next.CreatedAt = time.Now()

	if err := prependToCollection(r.store, KeyQRCodes, next); err != nil {
		return nil, err
	}
	return &next, nil
}

func (r *qrCodeRepository) Update(id string, mutate func(*model.QRCodeData)) error {
	return updateCollection(r.store, KeyQRCodes,
		func(x *model.QRCodeData) bool { return x.ID == id }, mutate)
}

func (r *qrCodeRepository) Remove(id string) error {
	return removeFromCollection(r.store, KeyQRCodes,
		func(x *model.QRCodeData) bool { return x.ID == id })
}

func (r *qrCodeRepository) FindByID(id string) (*model.QRCodeData, error) {
	items, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, nil
}

func (r *qrCodeRepository) ByCampaign(campaignID string) ([]model.QRCodeData, error) {
	items, err := r.List()
	if err != nil {
		return nil, err
	}
	matched := make([]model.QRCodeData, 0)
	for _, x := range items {
		if x.CampaignID == campaignID {
			matched = append(matched, x)
		}
	}
	return matched, nil
}
