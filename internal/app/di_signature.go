package app

import (
	"fmt"

	"github.com/enrollhq/signflow/internal/carrier"
	documentRepository "github.com/enrollhq/signflow/internal/document/repository"
	documentUseCase "github.com/enrollhq/signflow/internal/document/usecase"
	"github.com/enrollhq/signflow/internal/esign"
	quoteRepository "github.com/enrollhq/signflow/internal/quote/repository"
	rateRepository "github.com/enrollhq/signflow/internal/rates/repository"
	signatureDomain "github.com/enrollhq/signflow/internal/signature/domain"
	signatureHTTP "github.com/enrollhq/signflow/internal/signature/http"
	signatureUseCase "github.com/enrollhq/signflow/internal/signature/usecase"
	submissionRepository "github.com/enrollhq/signflow/internal/submission/repository"
)

// QuoteRepository returns the quote repository based on database driver.
func (c *Container) QuoteRepository() (signatureUseCase.QuoteRepository, error) {
	var err error
	c.quoteRepoInit.Do(func() {
		c.quoteRepo, err = c.initQuoteRepository()
		if err != nil {
			c.initErrors["quoteRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["quoteRepo"]; exists {
		return nil, storedErr
	}
	return c.quoteRepo, nil
}

// SubmissionHistoryRepository returns the submission history repository based on database driver.
func (c *Container) SubmissionHistoryRepository() (signatureUseCase.SubmissionHistoryRepository, error) {
	var err error
	c.historyRepoInit.Do(func() {
		c.historyRepo, err = c.initSubmissionHistoryRepository()
		if err != nil {
			c.initErrors["historyRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["historyRepo"]; exists {
		return nil, storedErr
	}
	return c.historyRepo, nil
}

// RateRepository returns the rate repository based on database driver.
func (c *Container) RateRepository() (signatureUseCase.RateRepository, error) {
	var err error
	c.rateRepoInit.Do(func() {
		c.rateRepo, err = c.initRateRepository()
		if err != nil {
			c.initErrors["rateRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["rateRepo"]; exists {
		return nil, storedErr
	}
	return c.rateRepo, nil
}

// DocumentRepository returns the document repository based on database driver.
func (c *Container) DocumentRepository() (documentUseCase.DocumentRepository, error) {
	var err error
	c.documentRepoInit.Do(func() {
		c.documentRepo, err = c.initDocumentRepository()
		if err != nil {
			c.initErrors["documentRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["documentRepo"]; exists {
		return nil, storedErr
	}
	return c.documentRepo, nil
}

// DocumentUseCase returns the document use case.
func (c *Container) DocumentUseCase() (*documentUseCase.DocumentUseCase, error) {
	var err error
	c.docUseCaseInit.Do(func() {
		c.docUseCase, err = c.initDocumentUseCase()
		if err != nil {
			c.initErrors["docUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["docUseCase"]; exists {
		return nil, storedErr
	}
	return c.docUseCase, nil
}

// CarrierClient returns the carrier submission client.
func (c *Container) CarrierClient() (signatureUseCase.CarrierSubmitter, error) {
	var err error
	c.carrierClientInit.Do(func() {
		c.carrierClient, err = c.initCarrierClient()
		if err != nil {
			c.initErrors["carrierClient"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["carrierClient"]; exists {
		return nil, storedErr
	}
	return c.carrierClient, nil
}

// ESignClient returns the e-signature provider client.
func (c *Container) ESignClient() (signatureUseCase.ESignProvider, error) {
	var err error
	c.esignClientInit.Do(func() {
		c.esignClient, err = c.initESignClient()
		if err != nil {
			c.initErrors["esignClient"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["esignClient"]; exists {
		return nil, storedErr
	}
	return c.esignClient, nil
}

// SignatureUseCase returns the signature workflow use case.
func (c *Container) SignatureUseCase() (signatureUseCase.SignatureUseCase, error) {
	var err error
	c.sigUseCaseInit.Do(func() {
		c.sigUseCase, err = c.initSignatureUseCase()
		if err != nil {
			c.initErrors["sigUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sigUseCase"]; exists {
		return nil, storedErr
	}
	return c.sigUseCase, nil
}

// SignatureHandler returns the HTTP handler for e-signature operations.
func (c *Container) SignatureHandler() (*signatureHTTP.SignatureHandler, error) {
	var err error
	c.signatureHandlerInit.Do(func() {
		c.signatureHandler, err = c.initSignatureHandler()
		if err != nil {
			c.initErrors["signatureHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["signatureHandler"]; exists {
		return nil, storedErr
	}
	return c.signatureHandler, nil
}

// initQuoteRepository creates the quote repository based on the database driver.
func (c *Container) initQuoteRepository() (signatureUseCase.QuoteRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for quote repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return quoteRepository.NewPostgreSQLQuoteRepository(db), nil
	case "mysql":
		return quoteRepository.NewMySQLQuoteRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initSubmissionHistoryRepository creates the submission history repository based on the database driver.
func (c *Container) initSubmissionHistoryRepository() (signatureUseCase.SubmissionHistoryRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for submission history repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return submissionRepository.NewPostgreSQLHistoryRepository(db), nil
	case "mysql":
		return submissionRepository.NewMySQLHistoryRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initRateRepository creates the rate repository based on the database driver.
func (c *Container) initRateRepository() (signatureUseCase.RateRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for rate repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return rateRepository.NewPostgreSQLRateRepository(db), nil
	case "mysql":
		return rateRepository.NewMySQLRateRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initDocumentRepository creates the document repository based on the database driver.
func (c *Container) initDocumentRepository() (documentUseCase.DocumentRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for document repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return documentRepository.NewPostgreSQLDocumentRepository(db), nil
	case "mysql":
		return documentRepository.NewMySQLDocumentRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initDocumentUseCase creates the document use case with all its dependencies.
func (c *Container) initDocumentUseCase() (*documentUseCase.DocumentUseCase, error) {
	documentRepo, err := c.DocumentRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get document repository for document use case: %w", err)
	}

	return documentUseCase.NewDocumentUseCase(documentRepo, c.Logger()), nil
}

// initCarrierClient creates the carrier submission client.
func (c *Container) initCarrierClient() (signatureUseCase.CarrierSubmitter, error) {
	if c.config.CarrierBaseURL == "" {
		return nil, fmt.Errorf("carrier base URL is not configured")
	}

	return carrier.NewClient(
		c.config.CarrierBaseURL,
		c.config.CarrierAPIKey,
		c.config.CarrierClientTimeout,
	), nil
}

// initESignClient creates the e-signature provider client.
func (c *Container) initESignClient() (signatureUseCase.ESignProvider, error) {
	if c.config.ESignAPIKey == "" {
		return nil, fmt.Errorf("e-signature API key is not configured")
	}

	return esign.NewClient(
		c.config.ESignBaseURL,
		c.config.ESignAPIKey,
		c.config.ESignClientTimeout,
	), nil
}

// initSignatureUseCase creates the signature workflow use case with all its dependencies.
func (c *Container) initSignatureUseCase() (signatureUseCase.SignatureUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for signature use case: %w", err)
	}

	quoteRepo, err := c.QuoteRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get quote repository for signature use case: %w", err)
	}

	historyRepo, err := c.SubmissionHistoryRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get submission history repository for signature use case: %w", err)
	}

	rateRepo, err := c.RateRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get rate repository for signature use case: %w", err)
	}

	docUseCase, err := c.DocumentUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get document use case for signature use case: %w", err)
	}

	carrierClient, err := c.CarrierClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get carrier client for signature use case: %w", err)
	}

	esignClient, err := c.ESignClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get e-signature client for signature use case: %w", err)
	}

	logger := c.Logger()

	authenticator := signatureUseCase.NewAuthenticator(c.config.ESignAPIKey)
	dispatcher := signatureUseCase.NewDispatcher(
		quoteRepo,
		historyRepo,
		rateRepo,
		docUseCase,
		carrierClient,
		txManager,
		logger,
	)

	runtimeConfig := signatureDomain.RuntimeConfig{
		IsProduction:   c.config.IsProduction(),
		VerboseLogging: c.config.PrintFullLogs(),
	}

	baseUseCase := signatureUseCase.NewSignatureWorkflowUseCase(
		authenticator,
		dispatcher,
		quoteRepo,
		esignClient,
		runtimeConfig,
		logger,
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for signature use case: %w", err)
		}
		return signatureUseCase.NewSignatureUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initSignatureHandler creates the signature HTTP handler with all its dependencies.
func (c *Container) initSignatureHandler() (*signatureHTTP.SignatureHandler, error) {
	sigUseCase, err := c.SignatureUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get signature use case for signature handler: %w", err)
	}

	return signatureHTTP.NewSignatureHandler(sigUseCase, c.Logger()), nil
}
