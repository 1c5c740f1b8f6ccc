package workers

import (
	"context"
	"time"

	"github.com/cbodonnell/pong/pkg/log"
	"github.com/cbodonnell/pong/pkg/repositories"
	"github.com/cbodonnell/pong/pkg/repositories/models"
)

// DefaultSaveTimeout bounds a single repository write.
const DefaultSaveTimeout = 5 * time.Second

type SaveMatchResultWorker struct {
	repository          repositories.Repository
	saveMatchResultChan <-chan SaveMatchResultRequest
	timeout             time.Duration
}

type NewSaveMatchResultWorkerOptions struct {
	Repository          repositories.Repository
	SaveMatchResultChan <-chan SaveMatchResultRequest
	// Timeout defaults to DefaultSaveTimeout
	Timeout time.Duration
}

type SaveMatchResultRequest struct {
	Result *models.MatchResult
}

// NewSaveMatchResultWorker creates a new SaveMatchResultWorker.
// The worker persists the results of finished matches sent by the game loop.
func NewSaveMatchResultWorker(opts NewSaveMatchResultWorkerOptions) *SaveMatchResultWorker {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultSaveTimeout
	}
	return &SaveMatchResultWorker{
		repository:          opts.Repository,
		saveMatchResultChan: opts.SaveMatchResultChan,
		timeout:             timeout,
	}
}

func (w *SaveMatchResultWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case saveRequest := <-w.saveMatchResultChan:
			w.saveMatchResult(ctx, saveRequest)
		}
	}
}

func (w *SaveMatchResultWorker) saveMatchResult(ctx context.Context, saveRequest SaveMatchResultRequest) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	if err := w.repository.SaveMatchResult(ctx, saveRequest.Result); err != nil {
		log.Error("Failed to save match result %s: %v", saveRequest.Result.ID, err)
		return
	}
	log.Debug("Saved match result %s", saveRequest.Result.ID)
}
