package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/linkdeck/link-bio-service/internal/domain"
	"github.com/linkdeck/link-bio-service/internal/dto"
	"github.com/linkdeck/link-bio-service/pkg/code"
)

type mockProfileRepo struct {
	domain.ProfileRepository

	profiles map[int64]*domain.Profile
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{profiles: make(map[int64]*domain.Profile)}
}

func (m *mockProfileRepo) GetByUID(ctx context.Context, uid int64) (*domain.Profile, error) {
	if p, ok := m.profiles[uid]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfileRepo) Create(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	cp := *profile
	cp.ID = int64(len(m.profiles) + 1)
	m.profiles[profile.UID] = &cp
	out := cp
	return &out, nil
}

func (m *mockProfileRepo) Update(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	old, ok := m.profiles[profile.UID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	old.FirstName = profile.FirstName
	old.LastName = profile.LastName
	old.Email = profile.Email
	old.AvatarURL = profile.AvatarURL
	cp := *old
	return &cp, nil
}

type mockStorager struct {
	sentKeys []string
	sentSize int
	failSend bool
}

func (m *mockStorager) SendFile(pathKey string, file io.Reader, cType string, modTime time.Time) (string, error) {
	if m.failSend {
		return "", errors.New("backend unavailable")
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	m.sentKeys = append(m.sentKeys, pathKey)
	m.sentSize = len(data)
	return pathKey, nil
}

func (m *mockStorager) SendContent(pathKey string, content []byte, modTime time.Time) (string, error) {
	m.sentKeys = append(m.sentKeys, pathKey)
	return pathKey, nil
}

func (m *mockStorager) Delete(pathKey string) error { return nil }

func newTestProfileService(repo domain.ProfileRepository, store *mockStorager) ProfileService {
	return NewProfileService(repo, store, zap.NewNop(), &ServiceConfig{
		Upload: UploadServiceConfig{
			AvatarMaxSizeMB: 2,
			AvatarAllowExts: []string{".jpg", ".png"},
			PublicURL:       "https://cdn.example.com",
		},
	})
}

// avatarFileHeader 通过真实的 multipart 表单构造文件头
func avatarFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("avatar", filename)
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer failed: %v", err)
	}

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("ReadForm failed: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["avatar"][0]
}

func TestProfileGetNotFoundReturnsNil(t *testing.T) {
	svc := newTestProfileService(newMockProfileRepo(), &mockStorager{})

	got, err := svc.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("got = %+v, want nil for a user without a profile", got)
	}
}

func TestProfileSaveCreatesThenUpdates(t *testing.T) {
	ctx := context.Background()
	uid := int64(1)
	repo := newMockProfileRepo()
	svc := newTestProfileService(repo, &mockStorager{})

	created, err := svc.Save(ctx, uid, &dto.ProfileSaveRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	}, nil)
	if err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	if created.FirstName != "Ada" {
		t.Errorf("firstName = %q, want %q", created.FirstName, "Ada")
	}

	updated, err := svc.Save(ctx, uid, &dto.ProfileSaveRequest{
		FirstName: "Ada",
		LastName:  "King",
		Email:     "ada@example.com",
	}, nil)
	if err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	if updated.LastName != "King" {
		t.Errorf("lastName = %q, want %q", updated.LastName, "King")
	}
	if len(repo.profiles) != 1 {
		t.Errorf("profiles = %d, want single row per user", len(repo.profiles))
	}
}

func TestProfileSaveUploadsAvatarWithCacheBusting(t *testing.T) {
	ctx := context.Background()
	uid := int64(9)
	store := &mockStorager{}
	svc := newTestProfileService(newMockProfileRepo(), store)

	avatar := avatarFileHeader(t, "me.png", []byte("png-bytes"))
	got, err := svc.Save(ctx, uid, &dto.ProfileSaveRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
	}, avatar)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if len(store.sentKeys) != 1 || store.sentKeys[0] != "avatars/9/avatar.png" {
		t.Errorf("sentKeys = %v, want fixed per-user key", store.sentKeys)
	}
	if !strings.HasPrefix(got.AvatarURL, "https://cdn.example.com/avatars/9/avatar.png?v=") {
		t.Errorf("avatarURL = %q, want cache-busted public URL", got.AvatarURL)
	}
}

func TestProfileSaveKeepsAvatarWhenNoneUploaded(t *testing.T) {
	ctx := context.Background()
	uid := int64(9)
	store := &mockStorager{}
	repo := newMockProfileRepo()
	svc := newTestProfileService(repo, store)

	avatar := avatarFileHeader(t, "me.png", []byte("png-bytes"))
	first, err := svc.Save(ctx, uid, &dto.ProfileSaveRequest{FirstName: "Ada", LastName: "L"}, avatar)
	if err != nil {
		t.Fatalf("Save with avatar failed: %v", err)
	}

	second, err := svc.Save(ctx, uid, &dto.ProfileSaveRequest{FirstName: "Ada", LastName: "L"}, nil)
	if err != nil {
		t.Fatalf("Save without avatar failed: %v", err)
	}
	if second.AvatarURL != first.AvatarURL {
		t.Errorf("avatarURL changed on avatar-less save: %q -> %q", first.AvatarURL, second.AvatarURL)
	}
}

func TestProfileSaveRejectsBadExtension(t *testing.T) {
	svc := newTestProfileService(newMockProfileRepo(), &mockStorager{})

	avatar := avatarFileHeader(t, "payload.exe", []byte("nope"))
	_, err := svc.Save(context.Background(), 1, &dto.ProfileSaveRequest{FirstName: "A", LastName: "B"}, avatar)

	var cerr *code.Code
	if !errors.As(err, &cerr) || cerr.Code() != code.ErrorInvalidFileExt.Code() {
		t.Errorf("err = %v, want ErrorInvalidFileExt", err)
	}
}

func TestProfileSaveUploadFailureLeavesProfileUntouched(t *testing.T) {
	ctx := context.Background()
	uid := int64(9)
	repo := newMockProfileRepo()
	store := &mockStorager{}
	svc := newTestProfileService(repo, store)

	if _, err := svc.Save(ctx, uid, &dto.ProfileSaveRequest{FirstName: "Ada", LastName: "L"}, nil); err != nil {
		t.Fatalf("seed Save failed: %v", err)
	}

	store.failSend = true
	avatar := avatarFileHeader(t, "me.jpg", []byte("jpg"))
	_, err := svc.Save(ctx, uid, &dto.ProfileSaveRequest{FirstName: "Changed", LastName: "L"}, avatar)
	if err == nil {
		t.Fatal("Save succeeded despite upload failure")
	}
	if repo.profiles[uid].FirstName != "Ada" {
		t.Errorf("profile was modified after failed upload: %q", repo.profiles[uid].FirstName)
	}
}
