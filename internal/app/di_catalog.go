package app

import (
	"fmt"

	catalogHTTP "github.com/allisson/staffdocs/internal/catalog/http"
	catalogRepository "github.com/allisson/staffdocs/internal/catalog/repository"
	catalogUseCase "github.com/allisson/staffdocs/internal/catalog/usecase"
)

// CatalogRepository returns the catalog repository based on database driver.
func (c *Container) CatalogRepository() (catalogUseCase.CatalogRepository, error) {
	c.catalogRepoInit.Do(func() {
		repo, err := c.initCatalogRepository()
		if err != nil {
			c.initErrors["catalogRepo"] = err
			return
		}
		c.catalogRepo = repo
	})
	if storedErr, exists := c.initErrors["catalogRepo"]; exists {
		return nil, storedErr
	}
	return c.catalogRepo, nil
}

// CatalogUseCase returns the catalog use case.
func (c *Container) CatalogUseCase() (catalogUseCase.CatalogUseCase, error) {
	c.catalogUseCaseInit.Do(func() {
		useCase, err := c.initCatalogUseCase()
		if err != nil {
			c.initErrors["catalogUseCase"] = err
			return
		}
		c.catalogUseCase = useCase
	})
	if storedErr, exists := c.initErrors["catalogUseCase"]; exists {
		return nil, storedErr
	}
	return c.catalogUseCase, nil
}

// CatalogHandler returns the HTTP handler for catalog operations.
func (c *Container) CatalogHandler() (*catalogHTTP.CatalogHandler, error) {
	c.catalogHandlerInit.Do(func() {
		useCase, err := c.CatalogUseCase()
		if err != nil {
			c.initErrors["catalogHandler"] = fmt.Errorf(
				"failed to get catalog use case for catalog handler: %w", err)
			return
		}
		c.catalogHandler = catalogHTTP.NewCatalogHandler(useCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["catalogHandler"]; exists {
		return nil, storedErr
	}
	return c.catalogHandler, nil
}

// initCatalogRepository creates the catalog repository based on the database driver.
func (c *Container) initCatalogRepository() (catalogUseCase.CatalogRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for catalog repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return catalogRepository.NewPostgreSQLCatalogRepository(db), nil
	case "mysql":
		return catalogRepository.NewMySQLCatalogRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initCatalogUseCase creates the catalog use case with all its dependencies.
func (c *Container) initCatalogUseCase() (catalogUseCase.CatalogUseCase, error) {
	catalogRepo, err := c.CatalogRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog repository for catalog use case: %w", err)
	}

	baseUseCase := catalogUseCase.NewCatalogUseCase(catalogRepo)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for catalog use case: %w", err)
		}
		return catalogUseCase.NewCatalogUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
