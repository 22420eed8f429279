package db

import (
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/LunaStudioApps/salon-scheduler/internal/config"
	"github.com/LunaStudioApps/salon-scheduler/internal/models"
)

func NewDB(cfg *config.Config, log *zap.Logger) *gorm.DB {
	connCfg, err := pgx.ParseConfig(cfg.DBUrl)
	if err != nil {
		log.Fatal("invalid database url", zap.Error(err))
	}
	sqlDB := stdlib.OpenDB(*connCfg)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Salon{},
		&models.User{},
		&models.Service{},
		&models.Professional{},
		&models.Product{},
		&models.BlockedPeriod{},
		&models.Client{},
		&models.Appointment{},
		&models.AppointmentProduct{},
		&models.Transaction{},
		&models.SaaSPlan{},
		&models.Coupon{},
		&models.AuditLog{},
	); err != nil {
		log.Fatal("failed to migrate", zap.Error(err))
	}

	db.Exec(`
        UPDATE salons
        SET timezone = 'America/Sao_Paulo'
        WHERE timezone IS NULL OR timezone = ''
    `)

	seedPlans(db, log)
	seedAdmin(db, cfg, log)

	return db
}

// seedPlans inserts the landing page tiers on first boot.
func seedPlans(db *gorm.DB, log *zap.Logger) {
	var count int64
	db.Model(&models.SaaSPlan{}).Count(&count)
	if count > 0 {
		return
	}

	plans := []models.SaaSPlan{
		{
			ID:               "start",
			Name:             "Start",
			Price:            0,
			MaxProfessionals: 1,
			Features:         []string{"Agenda Simples", "Link Personalizado", "Até 50 agendamentos/mês"},
		},
		{
			ID:                   "professional",
			Name:                 "Profissional",
			Price:                29.90,
			PerProfessionalPrice: 10,
			MaxProfessionals:     1,
			IsRecommended:        true,
			Features:             []string{"Agenda Ilimitada", "Controle Financeiro", "Gestão de Estoque", "Site Próprio"},
		},
		{
			ID:                   "redes",
			Name:                 "Redes",
			Price:                19.90,
			PerProfessionalPrice: 10,
			MaxProfessionals:     11,
			Features:             []string{"Múltiplos Profissionais (+10)", "Dashboard Avançado", "Campanhas de Marketing", "Suporte Prioritário"},
		},
	}

	if err := db.Create(&plans).Error; err != nil {
		log.Warn("failed to seed plans", zap.Error(err))
	}
}

func seedAdmin(db *gorm.DB, cfg *config.Config, log *zap.Logger) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return
	}

	var count int64
	db.Model(&models.User{}).Where("email = ?", cfg.AdminEmail).Count(&count)
	if count > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Warn("failed to hash admin password", zap.Error(err))
		return
	}

	admin := models.User{
		Name:         "Platform Admin",
		Email:        cfg.AdminEmail,
		PasswordHash: string(hashed),
		Role:         "admin",
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Warn("failed to seed admin user", zap.Error(err))
	}
}
