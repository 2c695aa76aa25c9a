package repository

import (
	"fmt"
	"org_chart_go/internal/model"

	"gorm.io/gorm"
)

// EmployeeRepository 员工仓库接口
type EmployeeRepository interface {
	// EmployeeRepository 只提供读取，用于构建初始组织树；调岗结果不回写数据库。
	FindAll() ([]model.EmployeeRecord, error)
	FindByID(id int64) (*model.EmployeeRecord, error)
	Count() (int64, error)
}

type employeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

// FindAll 按 sort_order、id 升序返回全部员工，同一上级下的下属顺序由此决定。
func (r *employeeRepository) FindAll() ([]model.EmployeeRecord, error) {
	var records []model.EmployeeRecord
	if err := r.db.Order("sort_order ASC, id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *employeeRepository) FindByID(id int64) (*model.EmployeeRecord, error) {
	if id <= 0 {
		return nil, fmt.Errorf("employee id must be positive, got %d", id)
	}

	var record model.EmployeeRecord
	if err := r.db.Where("id = ?", id).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *employeeRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.EmployeeRecord{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
