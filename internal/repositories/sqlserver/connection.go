package sqlserver

import (
	"context"
	"errors"
	"fmt"
	"portalseguranca/internal/models/entities"
	"time"

	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Internal guarda a conexão gorm com o SQL Server
type Internal struct {
	db *gorm.DB
}

// NewSQLServerInternal abre a conexão com o DSN informado (SQLSERVER_DSN),
// valida com ping e cria a tabela de coleções se necessário.
func NewSQLServerInternal(ctx context.Context, dsn string) (*Internal, error) {
	if dsn == "" {
		return nil, errors.New("SQLSERVER_DSN must be set when STORE_DRIVER=sqlserver")
	}

	db, err := gorm.Open(sqlserver.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("opening sqlserver: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("pinging sqlserver: %w", err)
	}

	if err := db.WithContext(ctx).AutoMigrate(&entities.Colecao{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrating dbo.Colecoes: %w", err)
	}

	return &Internal{db: db}, nil
}

// Close fecha o pool de conexões
func (s *Internal) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
