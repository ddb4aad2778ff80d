package request

import (
	"context"
	"errors"

	"github.com/fhuszti/asset-portal-go/internal/logger"
	"github.com/fhuszti/asset-portal-go/internal/model"
	"github.com/fhuszti/asset-portal-go/internal/port"
)

// ErrEmptySelection rejects a submission with no selected assets.
var ErrEmptySelection = errors.New("request: no assets selected")

type Submitter interface {
	Submit(ctx context.Context, draft model.RequestDraft, selectedAssetIDs []string) error
}

type submitterSrv struct {
	backend port.Backend
}

func NewSubmitter(backend port.Backend) Submitter {
	return &submitterSrv{backend: backend}
}

// Submit re-validates the draft at call time — UI-side validation is not
// trusted — then performs exactly one network call. No automatic retry: on
// failure the caller re-enables the form and the user decides.
func (s *submitterSrv) Submit(ctx context.Context, draft model.RequestDraft, selectedAssetIDs []string) error {
	if len(selectedAssetIDs) == 0 {
		return ErrEmptySelection
	}
	if err := validateStruct(draft); err != nil {
		return err
	}

	in := port.CreateRequestInput{
		RequesterName:  draft.RequesterName,
		RequesterEmail: draft.RequesterEmail,
		Purpose:        draft.Purpose,
		Deadline:       draft.Deadline,
		Items:          selectedAssetIDs,
		AssetsCount:    len(selectedAssetIDs),
	}

	if err := s.backend.CreateRequest(ctx, in); err != nil {
		return err
	}

	logger.Infof(ctx, "✅  Request submitted for %d assets", in.AssetsCount)
	return nil
}
