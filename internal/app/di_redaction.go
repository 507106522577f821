package app

import (
	"fmt"

	storage "github.com/allisson/redactor/internal/artifact/store"
	"github.com/allisson/redactor/internal/metrics"
	redactionHTTP "github.com/allisson/redactor/internal/redaction/http"
	redactionService "github.com/allisson/redactor/internal/redaction/service"
	redactionUsecase "github.com/allisson/redactor/internal/redaction/usecase"
)

// ArtifactStore returns the in-memory store of redacted artifacts.
func (c *Container) ArtifactStore() (*storage.MemoryStore, error) {
	c.artifactStoreInit.Do(func() {
		var err error
		c.artifactStore, err = c.initArtifactStore()
		c.storeErr("artifactStore", err)
	})
	if err := c.loadErr("artifactStore"); err != nil {
		return nil, err
	}
	return c.artifactStore, nil
}

// DetectionClient returns the client of the external detection engine.
func (c *Container) DetectionClient() (*redactionService.DetectionClient, error) {
	c.detectionClientInit.Do(func() {
		var err error
		c.detectionClient, err = c.initDetectionClient()
		c.storeErr("detectionClient", err)
	})
	if err := c.loadErr("detectionClient"); err != nil {
		return nil, err
	}
	return c.detectionClient, nil
}

// Redactor returns the text redactor.
func (c *Container) Redactor() *redactionService.Redactor {
	c.redactorInit.Do(func() {
		c.redactor = redactionService.NewRedactor()
	})
	return c.redactor
}

// RedactionUseCase returns the upload pipeline, wrapped with metrics when enabled.
func (c *Container) RedactionUseCase() (redactionUsecase.RedactionUseCase, error) {
	c.redactionUseCaseInit.Do(func() {
		var err error
		c.redactionUseCase, err = c.initRedactionUseCase()
		c.storeErr("redactionUseCase", err)
	})
	if err := c.loadErr("redactionUseCase"); err != nil {
		return nil, err
	}
	return c.redactionUseCase, nil
}

// RedactionHandler returns the HTTP handler for the redaction endpoints.
func (c *Container) RedactionHandler() (*redactionHTTP.RedactionHandler, error) {
	c.redactionHandlerInit.Do(func() {
		useCase, err := c.RedactionUseCase()
		if err != nil {
			c.storeErr(
				"redactionHandler",
				fmt.Errorf("failed to get redaction use case for redaction handler: %w", err),
			)
			return
		}
		c.redactionHandler = redactionHTTP.NewRedactionHandler(
			useCase,
			int64(c.config.MaxUploadSizeBytes),
			c.Logger(),
		)
	})
	if err := c.loadErr("redactionHandler"); err != nil {
		return nil, err
	}
	return c.redactionHandler, nil
}

func (c *Container) initArtifactStore() (*storage.MemoryStore, error) {
	store, err := storage.NewMemoryStore(storage.Config{
		TTL:                c.config.ArtifactTTL,
		MaxArtifacts:       c.config.ArtifactMaxCount,
		CompressionEnabled: c.config.ArtifactCompressionEnabled,
	}, c.Logger())
	if err != nil {
		return nil, fmt.Errorf("failed to create artifact store: %w", err)
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to get metrics provider for artifact store: %w", err)
	}
	if provider != nil {
		if err := metrics.RegisterArtifactGauge(provider.MeterProvider(), c.config.MetricsNamespace, store.Len); err != nil {
			store.Close()
			return nil, err
		}
	}

	return store, nil
}

func (c *Container) initDetectionClient() (*redactionService.DetectionClient, error) {
	unit, err := redactionService.ParseOffsetUnit(c.config.DetectionOffsetUnit)
	if err != nil {
		return nil, fmt.Errorf("invalid detection offset unit: %w", err)
	}
	if c.config.DetectionEngineTimeout <= 0 {
		return nil, fmt.Errorf("invalid detection engine timeout %s: must be positive", c.config.DetectionEngineTimeout)
	}

	return redactionService.NewDetectionClient(redactionService.DetectionClientConfig{
		URL:              c.config.DetectionEngineURL,
		Timeout:          c.config.DetectionEngineTimeout,
		OffsetUnit:       unit,
		MaxResponseBytes: int64(c.config.DetectionMaxResponseBytes),
	}, c.Logger()), nil
}

func (c *Container) initRedactionUseCase() (redactionUsecase.RedactionUseCase, error) {
	keyExchange, err := c.KeyExchange()
	if err != nil {
		return nil, fmt.Errorf("failed to get key exchange for redaction use case: %w", err)
	}

	detector, err := c.DetectionClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get detection client for redaction use case: %w", err)
	}

	store, err := c.ArtifactStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get artifact store for redaction use case: %w", err)
	}

	// Must stay an untyped nil when auditing is off.
	var auditor redactionUsecase.AuditRecorder
	if c.config.AuditEnabled {
		auditUseCase, err := c.AuditUseCase()
		if err != nil {
			return nil, fmt.Errorf("failed to get audit use case for redaction use case: %w", err)
		}
		auditor = auditUseCase
	}

	useCase := redactionUsecase.NewRedactionUseCase(
		keyExchange,
		c.SessionCipher(),
		detector,
		c.Redactor(),
		store,
		auditor,
		c.Logger(),
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for redaction use case: %w", err)
		}
		return redactionUsecase.NewRedactionUseCaseWithMetrics(useCase, businessMetrics), nil
	}

	return useCase, nil
}
