package app

import (
	"fmt"

	auditMySQL "github.com/allisson/redactor/internal/audit/repository/mysql"
	auditPostgreSQL "github.com/allisson/redactor/internal/audit/repository/postgresql"
	auditUsecase "github.com/allisson/redactor/internal/audit/usecase"
	"github.com/allisson/redactor/internal/database"
)

// AuditRepository returns the redaction audit repository for the configured driver.
func (c *Container) AuditRepository() (auditUsecase.RedactionAuditRepository, error) {
	c.auditRepositoryInit.Do(func() {
		var err error
		c.auditRepository, err = c.initAuditRepository()
		c.storeErr("auditRepository", err)
	})
	if err := c.loadErr("auditRepository"); err != nil {
		return nil, err
	}
	return c.auditRepository, nil
}

// AuditUseCase returns the audit trail use case.
func (c *Container) AuditUseCase() (auditUsecase.AuditUseCase, error) {
	c.auditUseCaseInit.Do(func() {
		repo, err := c.AuditRepository()
		if err != nil {
			c.storeErr("auditUseCase", fmt.Errorf("failed to get audit repository for audit use case: %w", err))
			return
		}
		c.auditUseCase = auditUsecase.NewAuditUseCase(repo)
	})
	if err := c.loadErr("auditUseCase"); err != nil {
		return nil, err
	}
	return c.auditUseCase, nil
}

func (c *Container) initAuditRepository() (auditUsecase.RedactionAuditRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for audit repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverMySQL:
		return auditMySQL.NewMySQLRedactionAuditRepository(db), nil
	case database.DriverPostgres:
		return auditPostgreSQL.NewPostgreSQLRedactionAuditRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}
