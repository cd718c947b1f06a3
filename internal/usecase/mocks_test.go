package usecase_test

import (
	"context"
	"io"
	"regexp"
	"sort"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SajeelSafdar99/mockupgenerator-be/internal/auth"
	"github.com/SajeelSafdar99/mockupgenerator-be/internal/storage/mongo"
	"github.com/SajeelSafdar99/mockupgenerator-be/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(logger.Config{Level: "error", DevMode: true})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func testTokenManager(t *testing.T) *auth.TokenManager {
	t.Helper()
	tm, err := auth.NewTokenManager(auth.Config{
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
	})
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}
	return tm
}

// fakeUserRepo is an in-memory UserRepository. Err short-circuits every
// call to simulate a store outage.
type fakeUserRepo struct {
	users map[primitive.ObjectID]*mongo.User
	Err   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*mongo.User)}
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*mongo.User, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, mongo.ErrNotFound
}

func (f *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*mongo.User, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) Insert(_ context.Context, user *mongo.User) (primitive.ObjectID, error) {
	if f.Err != nil {
		return primitive.NilObjectID, f.Err
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, mongo.ErrDuplicateKey
		}
	}
	id := primitive.NewObjectID()
	cp := *user
	cp.ID = id
	f.users[id] = &cp
	return id, nil
}

func (f *fakeUserRepo) TouchLastLogin(_ context.Context, id primitive.ObjectID) error {
	if f.Err != nil {
		return f.Err
	}
	if u, ok := f.users[id]; ok {
		now := u.CreatedAt
		u.LastLogin = &now
	}
	return nil
}

type fakeTokenRepo struct {
	tokens map[primitive.ObjectID]*mongo.RefreshToken
	Err    error
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[primitive.ObjectID]*mongo.RefreshToken)}
}

func (f *fakeTokenRepo) Insert(_ context.Context, token *mongo.RefreshToken) error {
	if f.Err != nil {
		return f.Err
	}
	cp := *token
	cp.ID = primitive.NewObjectID()
	f.tokens[cp.ID] = &cp
	return nil
}

func (f *fakeTokenRepo) Find(_ context.Context, token string, userID primitive.ObjectID) (*mongo.RefreshToken, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	for _, t := range f.tokens {
		if t.Token == token && t.UserID == userID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, mongo.ErrNotFound
}

func (f *fakeTokenRepo) Delete(_ context.Context, token string) error {
	if f.Err != nil {
		return f.Err
	}
	for id, t := range f.tokens {
		if t.Token == token {
			delete(f.tokens, id)
		}
	}
	return nil
}

func (f *fakeTokenRepo) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	if f.Err != nil {
		return f.Err
	}
	delete(f.tokens, id)
	return nil
}

type fakeDesignRepo struct {
	designs map[primitive.ObjectID]*mongo.Design
	Err     error
}

func newFakeDesignRepo() *fakeDesignRepo {
	return &fakeDesignRepo{designs: make(map[primitive.ObjectID]*mongo.Design)}
}

func (f *fakeDesignRepo) Insert(_ context.Context, design *mongo.Design) (primitive.ObjectID, error) {
	if f.Err != nil {
		return primitive.NilObjectID, f.Err
	}
	for _, d := range f.designs {
		if d.UserID == design.UserID && d.Name == design.Name {
			return primitive.NilObjectID, mongo.ErrDuplicateKey
		}
	}
	id := primitive.NewObjectID()
	cp := *design
	cp.ID = id
	f.designs[id] = &cp
	return id, nil
}

func (f *fakeDesignRepo) FindByID(_ context.Context, userID, id primitive.ObjectID) (*mongo.Design, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	d, ok := f.designs[id]
	if !ok || d.UserID != userID {
		return nil, mongo.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDesignRepo) List(_ context.Context, userID primitive.ObjectID, search string, page, limit int64) ([]mongo.Design, int64, error) {
	if f.Err != nil {
		return nil, 0, f.Err
	}
	var re *regexp.Regexp
	if search != "" {
		re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(search))
	}
	var all []mongo.Design
	for _, d := range f.designs {
		if d.UserID != userID {
			continue
		}
		if re != nil && !re.MatchString(d.Name) {
			continue
		}
		all = append(all, *d)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].UpdatedAt.After(all[j].UpdatedAt) })
	total := int64(len(all))
	start := (page - 1) * limit
	if start >= total {
		return nil, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (f *fakeDesignRepo) Update(_ context.Context, userID, id primitive.ObjectID, patch mongo.DesignPatch) (*mongo.Design, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	d, ok := f.designs[id]
	if !ok || d.UserID != userID {
		return nil, mongo.ErrNotFound
	}
	if patch.Name != "" {
		d.Name = patch.Name
	}
	if patch.Data != nil {
		d.Data = patch.Data
	}
	if patch.ThumbnailSet {
		d.Thumbnail = patch.Thumbnail
	}
	d.Version++
	cp := *d
	return &cp, nil
}

func (f *fakeDesignRepo) Delete(_ context.Context, userID, id primitive.ObjectID) error {
	if f.Err != nil {
		return f.Err
	}
	d, ok := f.designs[id]
	if !ok || d.UserID != userID {
		return mongo.ErrNotFound
	}
	delete(f.designs, id)
	return nil
}

func (f *fakeDesignRepo) DeleteMany(_ context.Context, userID primitive.ObjectID, ids []primitive.ObjectID) (int64, error) {
	if f.Err != nil {
		return 0, f.Err
	}
	var n int64
	for _, id := range ids {
		if d, ok := f.designs[id]; ok && d.UserID == userID {
			delete(f.designs, id)
			n++
		}
	}
	return n, nil
}

type fakeImageRepo struct {
	images map[primitive.ObjectID]*mongo.Image
	Err    error
}

func newFakeImageRepo() *fakeImageRepo {
	return &fakeImageRepo{images: make(map[primitive.ObjectID]*mongo.Image)}
}

func (f *fakeImageRepo) Insert(_ context.Context, image *mongo.Image) (primitive.ObjectID, error) {
	if f.Err != nil {
		return primitive.NilObjectID, f.Err
	}
	id := primitive.NewObjectID()
	cp := *image
	cp.ID = id
	f.images[id] = &cp
	return id, nil
}

func (f *fakeImageRepo) FindByID(_ context.Context, userID, id primitive.ObjectID) (*mongo.Image, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	img, ok := f.images[id]
	if !ok || img.UserID != userID {
		return nil, mongo.ErrNotFound
	}
	cp := *img
	return &cp, nil
}

func (f *fakeImageRepo) List(_ context.Context, userID primitive.ObjectID, imageType string, page, limit int64) ([]mongo.Image, int64, error) {
	if f.Err != nil {
		return nil, 0, f.Err
	}
	var all []mongo.Image
	for _, img := range f.images {
		if img.UserID != userID {
			continue
		}
		if imageType != "" && img.ImageType != imageType {
			continue
		}
		cp := *img
		cp.ImageData = "" // listings omit payloads
		all = append(all, cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := int64(len(all))
	start := (page - 1) * limit
	if start >= total {
		return nil, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (f *fakeImageRepo) DeleteMany(_ context.Context, userID primitive.ObjectID, ids []primitive.ObjectID) (int64, error) {
	if f.Err != nil {
		return 0, f.Err
	}
	var n int64
	for _, id := range ids {
		if img, ok := f.images[id]; ok && img.UserID == userID {
			delete(f.images, id)
			n++
		}
	}
	return n, nil
}

type storedFile struct {
	info mongo.FileInfo
	data []byte
}

type fakeFileRepo struct {
	files map[primitive.ObjectID]*storedFile
	Err   error
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{files: make(map[primitive.ObjectID]*storedFile)}
}

func (f *fakeFileRepo) Upload(_ context.Context, filename string, meta mongo.FileMetadata, data []byte) (primitive.ObjectID, error) {
	if f.Err != nil {
		return primitive.NilObjectID, f.Err
	}
	id := primitive.NewObjectID()
	f.files[id] = &storedFile{
		info: mongo.FileInfo{ID: id, Name: filename, Length: int64(len(data)), Metadata: meta},
		data: append([]byte(nil), data...),
	}
	return id, nil
}

func (f *fakeFileRepo) Stat(_ context.Context, id primitive.ObjectID) (*mongo.FileInfo, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	sf, ok := f.files[id]
	if !ok {
		return nil, mongo.ErrNotFound
	}
	cp := sf.info
	return &cp, nil
}

func (f *fakeFileRepo) Download(_ context.Context, id primitive.ObjectID, w io.Writer) error {
	if f.Err != nil {
		return f.Err
	}
	sf, ok := f.files[id]
	if !ok {
		return mongo.ErrNotFound
	}
	_, err := w.Write(sf.data)
	return err
}
