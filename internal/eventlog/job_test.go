package eventlog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCleanupJob_Process(t *testing.T) {
	t.Run("deletes expired journal rows", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)
		job := NewCleanupJob(service, 90)
		ctx := context.Background()

		mockRepo.On("CleanupOldEvents", mock.Anything, 90).Return(int64(42), nil)

		err := job.Process(ctx)
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("propagates repository error", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)
		job := NewCleanupJob(service, 30)
		ctx := context.Background()

		mockRepo.On("CleanupOldEvents", mock.Anything, 30).Return(int64(0), errors.New("db down"))

		err := job.Process(ctx)
		assert.Error(t, err)
		mockRepo.AssertExpectations(t)
	})
}
