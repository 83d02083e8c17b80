package service

import (
	"errors"

	"go-purchasing-api/internal/apperr"
	"go-purchasing-api/internal/model"
	"go-purchasing-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupplierRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	ContactInfo string `json:"contact_info" validate:"max=255"`
	Address     string `json:"address" validate:"max=255"`
}

type SupplierService interface {
	Create(req *SupplierRequest) (*model.Supplier, error)
	Update(id uuid.UUID, req *SupplierRequest) (*model.Supplier, error)
	Delete(id uuid.UUID) error
	FindAll(page, limit int) ([]model.Supplier, int64, error)
	FindOne(id uuid.UUID) (*model.Supplier, error)
}

type supplierService struct {
	supplierRepo repository.SupplierRepository
}

func NewSupplierService(supplierRepo repository.SupplierRepository) SupplierService {
	return &supplierService{supplierRepo: supplierRepo}
}

func (s *supplierService) Create(req *SupplierRequest) (*model.Supplier, error) {
	supplier := &model.Supplier{
		Name:        req.Name,
		ContactInfo: req.ContactInfo,
		Address:     req.Address,
	}
	if err := s.supplierRepo.Create(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *supplierService) Update(id uuid.UUID, req *SupplierRequest) (*model.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	supplier.Name = req.Name
	supplier.ContactInfo = req.ContactInfo
	supplier.Address = req.Address

	if err := s.supplierRepo.Update(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *supplierService) Delete(id uuid.UUID) error {
	if _, err := s.supplierRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}
	return s.supplierRepo.Delete(id)
}

func (s *supplierService) FindAll(page, limit int) ([]model.Supplier, int64, error) {
	return s.supplierRepo.FindAll(page, limit)
}

func (s *supplierService) FindOne(id uuid.UUID) (*model.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return supplier, nil
}
