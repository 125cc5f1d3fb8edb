package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fazetwerpgit/saleshub_backend/models"
	"github.com/fazetwerpgit/saleshub_backend/repositories"
)

// =============================================================================
// IN-MEMORY FAKES
// =============================================================================

type fakeSaleRepo struct {
	mu    sync.Mutex
	sales map[primitive.ObjectID]*models.Sale

	failFind    bool
	failResolve bool
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: make(map[primitive.ObjectID]*models.Sale)}
}

func (f *fakeSaleRepo) Insert(_ context.Context, sale *models.Sale) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if sale.ID.IsZero() {
		sale.ID = primitive.NewObjectID()
	}
	stored := *sale
	f.sales[sale.ID] = &stored
	return nil
}

func (f *fakeSaleRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFind {
		return nil, errors.New("store down")
	}
	sale, ok := f.sales[id]
	if !ok {
		return nil, nil
	}
	copied := *sale
	return &copied, nil
}

func (f *fakeSaleRepo) FindByStatus(_ context.Context, status string) ([]models.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFind {
		return nil, errors.New("store down")
	}
	var out []models.Sale
	for _, sale := range f.sales {
		if sale.Status == status {
			out = append(out, *sale)
		}
	}
	return out, nil
}

func (f *fakeSaleRepo) FindBySalesRep(_ context.Context, repID primitive.ObjectID) ([]models.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Sale
	for _, sale := range f.sales {
		if sale.SalesRepID == repID {
			out = append(out, *sale)
		}
	}
	return out, nil
}

func (f *fakeSaleRepo) Resolve(_ context.Context, id primitive.ObjectID, res repositories.SaleResolution) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failResolve {
		return false, errors.New("store down")
	}
	sale, ok := f.sales[id]
	if !ok || sale.Status != models.SaleStatusPending {
		return false, nil
	}
	sale.Status = res.Status
	sale.ApprovedBy = res.ApprovedBy
	sale.ApproverName = res.ApproverName
	approvedAt := res.ApprovedAt
	sale.ApprovedAt = &approvedAt
	sale.RejectionReason = res.RejectionReason
	return true, nil
}

type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (f *fakeUserRepo) add(user *models.User) *models.User {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserRepo) Insert(_ context.Context, user *models.User) error {
	f.add(user)
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, user := range f.users {
		out = append(out, *user)
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, id primitive.ObjectID, fullName, territory string) error {
	if user, ok := f.users[id]; ok {
		if fullName != "" {
			user.FullName = fullName
		}
		if territory != "" {
			user.Territory = territory
		}
	}
	return nil
}

func (f *fakeUserRepo) TouchActivity(_ context.Context, id primitive.ObjectID) error {
	if user, ok := f.users[id]; ok {
		user.LastActivityAt = time.Now()
	}
	return nil
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, id primitive.ObjectID, role string) error {
	if user, ok := f.users[id]; ok {
		user.Role = role
	}
	return nil
}

type fakeNotificationRepo struct {
	mu       sync.Mutex
	inserted []models.Notification

	failInsert bool
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (f *fakeNotificationRepo) Insert(_ context.Context, notification *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failInsert {
		return errors.New("store down")
	}
	if notification.ID.IsZero() {
		notification.ID = primitive.NewObjectID()
	}
	f.inserted = append(f.inserted, *notification)
	return nil
}

func (f *fakeNotificationRepo) ListByUser(_ context.Context, userID primitive.ObjectID, limit int64) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Notification
	for i := len(f.inserted) - 1; i >= 0; i-- {
		if f.inserted[i].UserID == userID {
			out = append(out, f.inserted[i])
		}
		if int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) CountUnread(_ context.Context, userID primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, n := range f.inserted {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, userID primitive.ObjectID, ids []primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.inserted {
		if f.inserted[i].UserID != userID {
			continue
		}
		for _, id := range ids {
			if f.inserted[i].ID == id {
				f.inserted[i].Read = true
			}
		}
	}
	return nil
}

func (f *fakeNotificationRepo) MarkAllRead(_ context.Context, userID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.inserted {
		if f.inserted[i].UserID == userID {
			f.inserted[i].Read = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) byType(notifType string) []models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Notification
	for _, n := range f.inserted {
		if n.Type == notifType {
			out = append(out, n)
		}
	}
	return out
}

type fakeMailer struct {
	sent []string
	fail bool
}

func (f *fakeMailer) SendSaleResolved(email string, _ *models.Sale) error {
	if f.fail {
		return errors.New("smtp down")
	}
	f.sent = append(f.sent, email)
	return nil
}
