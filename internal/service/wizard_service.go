package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/liliang-cn/claimwizard/internal/catalog"
	"github.com/liliang-cn/claimwizard/internal/claim"
	"github.com/liliang-cn/claimwizard/internal/domain"
	"github.com/liliang-cn/claimwizard/internal/view"
)

// SubmitAcknowledgment is returned by Submit. Nothing is recorded.
const SubmitAcknowledgment = "Claims submitted successfully!"

// WizardService drives the claim wizard of a session
type WizardService struct {
	sessions *SessionService
	catalog  *catalog.Catalog
	logger   *zap.Logger
}

// NewWizardService creates a new wizard service
func NewWizardService(sessions *SessionService, catalog *catalog.Catalog, logger *zap.Logger) *WizardService {
	return &WizardService{
		sessions: sessions,
		catalog:  catalog,
		logger:   logger,
	}
}

// Page returns the projection of the session's current step
func (s *WizardService) Page(ctx context.Context, sessionID, query string) (*view.Page, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.project(session, query), nil
}

// Conditions returns the catalog filtered by query with selection flags
func (s *WizardService) Conditions(ctx context.Context, sessionID, query string) ([]domain.ConditionOption, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return view.Options(s.catalog.Conditions(), session.Claim.Selected, query), nil
}

// Select toggles a catalog condition in the session's selection
func (s *WizardService) Select(ctx context.Context, sessionID string, conditionID int) (*view.Page, error) {
	cond, ok := s.catalog.Get(conditionID)
	if !ok {
		return nil, fmt.Errorf("condition %d: %w", conditionID, domain.ErrNotFound)
	}

	session, err := s.sessions.Update(ctx, sessionID, func(sess *domain.Session) error {
		sess.Claim.Selected = claim.Toggle(sess.Claim.Selected, cond)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("condition toggled",
		zap.String("session_id", sessionID),
		zap.Int("condition_id", conditionID),
		zap.Bool("selected", claim.IsSelected(session.Claim.Selected, conditionID)),
	)
	return s.project(session, ""), nil
}

// AddDocuments appends the named files to the session's documents
func (s *WizardService) AddDocuments(ctx context.Context, sessionID string, files []domain.FileRef) (*view.Page, error) {
	session, err := s.sessions.Update(ctx, sessionID, func(sess *domain.Session) error {
		sess.Claim.Documents = claim.AddFiles(sess.Claim.Documents, files)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("documents added",
		zap.String("session_id", sessionID),
		zap.Int("added", len(files)),
		zap.Int("total", len(session.Claim.Documents)),
	)
	return s.project(session, ""), nil
}

// Navigate moves the wizard one step. Moving forward while the current
// step is not ready fails with domain.ErrPreconditionUnmet.
func (s *WizardService) Navigate(ctx context.Context, sessionID, direction string) (*view.Page, error) {
	session, err := s.sessions.Update(ctx, sessionID, func(sess *domain.Session) error {
		w := claim.NewWizard(sess.Claim.Step)
		switch direction {
		case domain.DirectionContinue:
			if !claim.CanContinue(sess.Claim) {
				return fmt.Errorf("cannot leave %q: %w", claim.StepFor(w.Step()).Label, domain.ErrPreconditionUnmet)
			}
			w.Continue()
		case domain.DirectionBack:
			w.Back()
		default:
			return fmt.Errorf("unknown direction %q: %w", direction, domain.ErrInvalidRequest)
		}
		sess.Claim.Step = w.Step()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("wizard navigated",
		zap.String("session_id", sessionID),
		zap.String("direction", direction),
		zap.Int("step", session.Claim.Step),
	)
	return s.project(session, ""), nil
}

// Submit acknowledges the claim. The session is left unchanged.
func (s *WizardService) Submit(ctx context.Context, sessionID string) (*domain.SubmitResponse, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("claim submitted",
		zap.String("session_id", sessionID),
		zap.Int("step", session.Claim.Step),
		zap.Int("conditions", len(session.Claim.Selected)),
		zap.Int("documents", len(session.Claim.Documents)),
	)
	return &domain.SubmitResponse{Message: SubmitAcknowledgment}, nil
}

func (s *WizardService) project(session *domain.Session, query string) *view.Page {
	return view.Project(view.Input{
		Claim:   session.Claim,
		Chat:    session.Chat,
		Catalog: s.catalog.Conditions(),
		Query:   query,
	})
}
