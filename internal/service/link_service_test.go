package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/linkdeck/link-bio-service/internal/domain"
	"github.com/linkdeck/link-bio-service/internal/dto"
	"github.com/linkdeck/link-bio-service/pkg/code"
)

type mockLinkRepo struct {
	domain.LinkRepository

	mu     sync.Mutex
	links  map[string]*domain.Link
	nextID int

	createCalls int
	updateCalls int
	deleteCalls int
	batchCalls  int

	failDelete bool
}

func newMockLinkRepo(seed ...*domain.Link) *mockLinkRepo {
	m := &mockLinkRepo{links: make(map[string]*domain.Link)}
	for _, l := range seed {
		cp := *l
		m.links[cp.ID] = &cp
	}
	return m
}

func (m *mockLinkRepo) ListByUID(ctx context.Context, uid int64) ([]*domain.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Link, 0, len(m.links))
	for _, l := range m.links {
		if l.UID == uid {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (m *mockLinkRepo) GetByID(ctx context.Context, id string, uid int64) (*domain.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.links[id]; ok && l.UID == uid {
		cp := *l
		return &cp, nil
	}
	return nil, errors.New("record not found")
}

func (m *mockLinkRepo) Create(ctx context.Context, link *domain.Link) (*domain.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	m.nextID++
	cp := *link
	cp.ID = fmt.Sprintf("srv-%d", m.nextID)
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	m.links[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *mockLinkRepo) Update(ctx context.Context, link *domain.Link) (*domain.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	old, ok := m.links[link.ID]
	if !ok || old.UID != link.UID {
		return nil, errors.New("record not found")
	}
	old.Platform = link.Platform
	old.Title = link.Title
	old.URL = link.URL
	old.UpdatedAt = time.Now()
	cp := *old
	return &cp, nil
}

func (m *mockLinkRepo) Delete(ctx context.Context, id string, uid int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteCalls++
	if m.failDelete {
		return errors.New("delete rejected")
	}
	if l, ok := m.links[id]; !ok || l.UID != uid {
		return errors.New("record not found")
	}
	delete(m.links, id)
	return nil
}

func (m *mockLinkRepo) UpdatePositions(ctx context.Context, uid int64, updates []domain.PositionUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batchCalls++
	for _, u := range updates {
		if l, ok := m.links[u.ID]; ok && l.UID == uid {
			l.Position = u.Position
		}
	}
	return nil
}

func (m *mockLinkRepo) writeCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCalls + m.updateCalls + m.deleteCalls + m.batchCalls
}

func newTestLinkService(repo domain.LinkRepository) LinkService {
	return NewLinkService(repo, zap.NewNop())
}

func TestCreateAppendsToEnd(t *testing.T) {
	ctx := context.Background()
	uid := int64(1)
	repo := newMockLinkRepo(
		&domain.Link{ID: "a", UID: uid, Platform: "github", Position: 0},
		&domain.Link{ID: "b", UID: uid, Platform: "youtube", Position: 1},
	)
	svc := newTestLinkService(repo)

	got, err := svc.Create(ctx, uid, &dto.LinkCreateRequest{
		Platform: "twitch",
		URL:      "https://twitch.tv/me",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if got.Position != 2 {
		t.Errorf("position = %d, want 2", got.Position)
	}
	if got.Title != "Twitch" {
		t.Errorf("title = %q, want %q", got.Title, "Twitch")
	}
}

func TestSavePendingMixedBatch(t *testing.T) {
	ctx := context.Background()
	uid := int64(7)
	repo := newMockLinkRepo(
		&domain.Link{ID: "keep", UID: uid, Platform: "github", Title: "GitHub", URL: "https://github.com/u", Position: 0},
		&domain.Link{ID: "gone", UID: uid, Platform: "twitter", Title: "Twitter", URL: "https://twitter.com/u", Position: 1},
	)
	svc := newTestLinkService(repo)

	got, err := svc.SavePending(ctx, uid, &dto.LinkSaveRequest{
		Links: []dto.PendingLink{
			{ID: "keep", Platform: "github", URL: "https://github.com/u2", Position: 0, Modified: true},
			{ID: "gone", Platform: "twitter", URL: "https://twitter.com/u", Position: 1, Deleted: true},
			{Platform: "devto", URL: "https://dev.to/u", Position: 2, New: true},
		},
	})
	if err != nil {
		t.Fatalf("SavePending failed: %v", err)
	}

	if repo.createCalls != 1 || repo.updateCalls != 1 || repo.deleteCalls != 1 {
		t.Errorf("calls = create %d update %d delete %d, want 1/1/1",
			repo.createCalls, repo.updateCalls, repo.deleteCalls)
	}
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2", len(got))
	}
	for _, l := range got {
		if l.ID == "" {
			t.Errorf("record %q has empty ID after save", l.Title)
		}
		if l.ID == "gone" {
			t.Errorf("deleted record survived the refresh")
		}
	}
}

func TestSavePendingRefreshCarriesTimestamps(t *testing.T) {
	ctx := context.Background()
	uid := int64(7)
	repo := newMockLinkRepo()
	svc := newTestLinkService(repo)

	got, err := svc.SavePending(ctx, uid, &dto.LinkSaveRequest{
		Links: []dto.PendingLink{
			{Platform: "github", URL: "https://github.com/u", Position: 0, New: true},
		},
	})
	if err != nil {
		t.Fatalf("SavePending failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len(got) = %d, want 1", len(got))
	}
	if time.Time(got[0].CreatedAt).IsZero() || time.Time(got[0].UpdatedAt).IsZero() {
		t.Errorf("refreshed record timestamps = %v / %v, want row times set",
			got[0].CreatedAt, got[0].UpdatedAt)
	}
}

func TestSavePendingNoChangesIssuesNoWrites(t *testing.T) {
	ctx := context.Background()
	uid := int64(7)
	repo := newMockLinkRepo(
		&domain.Link{ID: "a", UID: uid, Platform: "github", URL: "https://github.com/u", Position: 0},
	)
	svc := newTestLinkService(repo)

	got, err := svc.SavePending(ctx, uid, &dto.LinkSaveRequest{
		Links: []dto.PendingLink{
			{ID: "a", Platform: "github", URL: "https://github.com/u", Position: 0},
		},
	})
	if err != nil {
		t.Fatalf("SavePending failed: %v", err)
	}
	if n := repo.writeCalls(); n != 0 {
		t.Errorf("write calls = %d, want 0", n)
	}
	if len(got) != 1 {
		t.Errorf("len(got) = %d, want 1", len(got))
	}
}

func TestSavePendingDeleteFailureReturnsSaveFail(t *testing.T) {
	ctx := context.Background()
	uid := int64(7)
	repo := newMockLinkRepo(
		&domain.Link{ID: "a", UID: uid, Platform: "github", URL: "https://github.com/u", Position: 0},
	)
	repo.failDelete = true
	svc := newTestLinkService(repo)

	_, err := svc.SavePending(ctx, uid, &dto.LinkSaveRequest{
		Links: []dto.PendingLink{
			{ID: "a", Platform: "github", URL: "https://github.com/u", Position: 0, Deleted: true},
		},
	})
	if err == nil {
		t.Fatal("SavePending succeeded, want failure")
	}
	var cerr *code.Code
	if !errors.As(err, &cerr) || cerr.Code() != code.ErrorLinkSaveFail.Code() {
		t.Errorf("err = %v, want ErrorLinkSaveFail", err)
	}

	// 远端未被改动，重试应当成功
	repo.failDelete = false
	got, err := svc.SavePending(ctx, uid, &dto.LinkSaveRequest{
		Links: []dto.PendingLink{
			{ID: "a", Platform: "github", URL: "https://github.com/u", Position: 0, Deleted: true},
		},
	})
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len(got) = %d, want 0", len(got))
	}
}

type blockingLinkRepo struct {
	*mockLinkRepo
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingLinkRepo) Update(ctx context.Context, link *domain.Link) (*domain.Link, error) {
	b.once.Do(func() { close(b.started) })
	<-b.release
	return b.mockLinkRepo.Update(ctx, link)
}

func TestSavePendingRejectsOverlappingSave(t *testing.T) {
	ctx := context.Background()
	uid := int64(7)
	repo := &blockingLinkRepo{
		mockLinkRepo: newMockLinkRepo(
			&domain.Link{ID: "a", UID: uid, Platform: "github", URL: "https://github.com/u", Position: 0},
		),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc := newTestLinkService(repo)

	req := &dto.LinkSaveRequest{
		Links: []dto.PendingLink{
			{ID: "a", Platform: "github", URL: "https://github.com/u2", Position: 0, Modified: true},
		},
	}

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.SavePending(ctx, uid, req)
		firstDone <- err
	}()
	<-repo.started

	_, err := svc.SavePending(ctx, uid, req)
	var cerr *code.Code
	if !errors.As(err, &cerr) || cerr.Code() != code.ErrorLinkSaveInFlight.Code() {
		t.Errorf("overlapping save err = %v, want ErrorLinkSaveInFlight", err)
	}

	close(repo.release)
	if err := <-firstDone; err != nil {
		t.Fatalf("first save failed: %v", err)
	}
}
