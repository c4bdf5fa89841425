package app

import (
	"context"
	"fmt"

	minutesHTTP "github.com/allisson/staffdocs/internal/minutes/http"
	minutesRepository "github.com/allisson/staffdocs/internal/minutes/repository"
	minutesService "github.com/allisson/staffdocs/internal/minutes/service"
	minutesUseCase "github.com/allisson/staffdocs/internal/minutes/usecase"
)

// AttachmentStore returns the blob-backed attachment store.
func (c *Container) AttachmentStore() (minutesService.AttachmentStore, error) {
	c.blobBucketInit.Do(func() {
		bucket, err := minutesService.OpenBucket(context.Background(), c.config.BlobBucketURL)
		if err != nil {
			c.initErrors["attachmentStore"] = fmt.Errorf(
				"failed to open blob bucket %q: %w", c.config.BlobBucketURL, err)
			return
		}
		c.blobBucket = bucket
		c.attachmentStore = minutesService.NewBlobAttachmentStore(bucket)
	})
	if storedErr, exists := c.initErrors["attachmentStore"]; exists {
		return nil, storedErr
	}
	return c.attachmentStore, nil
}

// MinuteRepository returns the meeting minute repository based on database driver.
func (c *Container) MinuteRepository() (minutesUseCase.MinuteRepository, error) {
	c.minuteRepoInit.Do(func() {
		repo, err := c.initMinuteRepository()
		if err != nil {
			c.initErrors["minuteRepo"] = err
			return
		}
		c.minuteRepo = repo
	})
	if storedErr, exists := c.initErrors["minuteRepo"]; exists {
		return nil, storedErr
	}
	return c.minuteRepo, nil
}

// MinuteUseCase returns the meeting minute use case.
func (c *Container) MinuteUseCase() (minutesUseCase.MinuteUseCase, error) {
	c.minuteUseCaseInit.Do(func() {
		useCase, err := c.initMinuteUseCase()
		if err != nil {
			c.initErrors["minuteUseCase"] = err
			return
		}
		c.minuteUseCase = useCase
	})
	if storedErr, exists := c.initErrors["minuteUseCase"]; exists {
		return nil, storedErr
	}
	return c.minuteUseCase, nil
}

// MinuteHandler returns the HTTP handler for meeting minute operations.
func (c *Container) MinuteHandler() (*minutesHTTP.MinuteHandler, error) {
	c.minuteHandlerInit.Do(func() {
		useCase, err := c.MinuteUseCase()
		if err != nil {
			c.initErrors["minuteHandler"] = fmt.Errorf(
				"failed to get minute use case for minute handler: %w", err)
			return
		}
		c.minuteHandler = minutesHTTP.NewMinuteHandler(useCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["minuteHandler"]; exists {
		return nil, storedErr
	}
	return c.minuteHandler, nil
}

// initMinuteRepository creates the meeting minute repository based on the database driver.
func (c *Container) initMinuteRepository() (minutesUseCase.MinuteRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for minute repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return minutesRepository.NewPostgreSQLMinuteRepository(db), nil
	case "mysql":
		return minutesRepository.NewMySQLMinuteRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initMinuteUseCase creates the meeting minute use case with all its dependencies.
func (c *Container) initMinuteUseCase() (minutesUseCase.MinuteUseCase, error) {
	minuteRepo, err := c.MinuteRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get minute repository for minute use case: %w", err)
	}

	attachments, err := c.AttachmentStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get attachment store for minute use case: %w", err)
	}

	baseUseCase := minutesUseCase.NewMinuteUseCase(minuteRepo, attachments, c.Logger())

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for minute use case: %w", err)
		}
		return minutesUseCase.NewMinuteUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
