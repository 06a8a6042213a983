package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"gamestore/internal/model"
	"gamestore/internal/payment"
	"gamestore/internal/repository"
)

type fakeGameRepo struct {
	games map[string]*model.Game
}

func newFakeGameRepo(games ...*model.Game) *fakeGameRepo {
	r := &fakeGameRepo{games: make(map[string]*model.Game)}
	for _, g := range games {
		r.games[g.ID] = g
	}
	return r
}

func (r *fakeGameRepo) Resolve(ctx context.Context, gameID string) (*model.Game, error) {
	g, ok := r.games[gameID]
	if !ok {
		return nil, repository.ErrGameNotFound
	}
	return g, nil
}

func (r *fakeGameRepo) List(ctx context.Context) ([]*model.Game, error) {
	out := make([]*model.Game, 0, len(r.games))
	for _, g := range r.games {
		out = append(out, g)
	}
	return out, nil
}

func demoGame() *model.Game {
	return &model.Game{
		ID:       "demo-game",
		Title:    "Demo Game",
		Price:    1999,
		Currency: "USD",
		Files: []model.GameFile{
			{GameID: "demo-game", Name: "Windows build", Filename: "demo-game-win64.zip", SizeGB: 1.2},
		},
	}
}

type fakeProvider struct {
	name        string
	sessionID   string
	createCalls int
	completed   *payment.CompletedCheckout
	verifyErr   error
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) CreateCheckoutSession(ctx context.Context, game *model.Game, email string) (*payment.CheckoutSession, error) {
	p.createCalls++
	return &payment.CheckoutSession{ID: p.sessionID}, nil
}

func (p *fakeProvider) VerifyWebhook(ctx context.Context, headers http.Header, body []byte) (*payment.CompletedCheckout, error) {
	if p.verifyErr != nil {
		return nil, p.verifyErr
	}
	return p.completed, nil
}

type fakeNotifier struct {
	downloadNotices int
	recoveryNotices int
	lastRecords     []*model.PurchaseRecord
	sendErr         error
}

func (n *fakeNotifier) IsConfigured() bool { return true }

func (n *fakeNotifier) SendDownloadNotice(ctx context.Context, rec *model.PurchaseRecord) error {
	if n.sendErr != nil {
		return n.sendErr
	}
	n.downloadNotices++
	n.lastRecords = []*model.PurchaseRecord{rec}
	return nil
}

func (n *fakeNotifier) SendRecoveryNotice(ctx context.Context, email string, recs []*model.PurchaseRecord) error {
	if n.sendErr != nil {
		return n.sendErr
	}
	n.recoveryNotices++
	n.lastRecords = recs
	return nil
}

type fakeFileStore struct {
	url        string
	err        error
	configured bool
}

func (f *fakeFileStore) IsConfigured() bool  { return f.configured }
func (f *fakeFileStore) ServiceName() string { return "Fake Storage" }

func (f *fakeFileStore) GenerateDownloadURL(ctx context.Context, gameID, fileName string, expiresIn time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func record(sessionID, gameID string, expires time.Time) *model.PurchaseRecord {
	return &model.PurchaseRecord{
		SessionID:       sessionID,
		GameID:          gameID,
		GameTitle:       "Demo Game",
		CustomerEmail:   "foo@bar.com",
		PurchaseDate:    time.Now().Add(-time.Hour),
		DownloadURL:     "http://localhost:8080/download/" + gameID + "?token=tok",
		DownloadExpires: expires,
		MaxDownloads:    5,
	}
}

// listErrStore makes reads fail while writes keep working.
type listErrStore struct {
	repository.PurchaseStore
	listErr error
}

func (s *listErrStore) List(ctx context.Context, email string) ([]*model.PurchaseRecord, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.PurchaseStore.List(ctx, email)
}

var errFakeUpstream = errors.New("upstream exploded")
