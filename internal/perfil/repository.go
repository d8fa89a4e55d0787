package perfil

import "gorm.io/gorm"

type Repository interface {
	BuscarPorEmail(db *gorm.DB, email string) (*Perfil, error)
	Salvar(db *gorm.DB, p *Perfil) error
	BuscarPorID(db *gorm.DB, id uint) (*Perfil, error)
	ListarPorAgencia(db *gorm.DB, agencyID string) ([]Perfil, error)
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) BuscarPorEmail(db *gorm.DB, email string) (*Perfil, error) {
	var p Perfil
	err := db.Where("email = ?", email).First(&p).Error
	return &p, err
}

func (r *repositoryImpl) Salvar(db *gorm.DB, p *Perfil) error {
	return db.Save(p).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Perfil, error) {
	var p Perfil
	err := db.First(&p, id).Error
	return &p, err
}

func (r *repositoryImpl) ListarPorAgencia(db *gorm.DB, agencyID string) ([]Perfil, error) {
	var perfis []Perfil
	err := db.Where("agency_id = ?", agencyID).Find(&perfis).Error
	return perfis, err
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Perfil{}, id).Error
}
