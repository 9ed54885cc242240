package service

// In-memory repository stubs shared by the service tests. They mirror the
// Postgres implementations closely enough for unit tests: lookups that miss
// return gorm.ErrRecordNotFound, name lookups are case-insensitive, and DB()
// returns nil so runTx executes the callback without a transaction.

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Sabogal22/Sistema-de-inventario/internal/dto"
	"github.com/Sabogal22/Sistema-de-inventario/internal/model"
	"github.com/Sabogal22/Sistema-de-inventario/internal/worker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── Item repository ──────────────────────────────────────────────────────────

type stubItemRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*model.Item
}

func newStubItemRepo() *stubItemRepo {
	return &stubItemRepo{items: make(map[uuid.UUID]*model.Item)}
}

func (r *stubItemRepo) Create(_ context.Context, it *model.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	it.CreatedAt = time.Now()
	cp := *it
	r.items[it.ID] = &cp
	return nil
}

func (r *stubItemRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *it
	return &cp, nil
}

func (r *stubItemRepo) List(_ context.Context, filter dto.ItemFilter) ([]model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []model.Item
	for _, it := range r.items {
		if filter.Query != "" && !strings.Contains(strings.ToLower(it.Name), strings.ToLower(filter.Query)) {
			continue
		}
		if filter.CategoryID != "" && it.CategoryID.String() != filter.CategoryID {
			continue
		}
		if filter.LocationID != "" && it.LocationID.String() != filter.LocationID {
			continue
		}
		if filter.StatusID != "" && it.StatusID.String() != filter.StatusID {
			continue
		}
		result = append(result, *it)
	}
	return result, nil
}

func (r *stubItemRepo) ListAll(_ context.Context) ([]model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]model.Item, 0, len(r.items))
	for _, it := range r.items {
		result = append(result, *it)
	}
	return result, nil
}

func (r *stubItemRepo) Search(_ context.Context, query string) ([]model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := strings.ToLower(query)
	var result []model.Item
	for _, it := range r.items {
		if strings.Contains(strings.ToLower(it.Name), q) ||
			(it.Description != nil && strings.Contains(strings.ToLower(*it.Description), q)) {
			result = append(result, *it)
		}
	}
	return result, nil
}

func (r *stubItemRepo) Update(_ context.Context, it *model.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[it.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *it
	r.items[it.ID] = &cp
	return nil
}

func (r *stubItemRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Item, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubItemRepo) SetStockTx(_ *gorm.DB, id uuid.UUID, stock int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	it.Stock = stock
	return nil
}

func (r *stubItemRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *stubItemRepo) DB() *gorm.DB { return nil }

// ── Stock history repository ─────────────────────────────────────────────────

type stubHistoryRepo struct {
	mu      sync.Mutex
	entries []model.StockHistoryEntry
}

func newStubHistoryRepo() *stubHistoryRepo { return &stubHistoryRepo{} }

func (r *stubHistoryRepo) CreateTx(_ *gorm.DB, e *model.StockHistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.CreatedAt = time.Now()
	r.entries = append(r.entries, *e)
	return nil
}

func (r *stubHistoryRepo) ListByItem(_ context.Context, itemID uuid.UUID) ([]model.StockHistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []model.StockHistoryEntry
	for _, e := range r.entries {
		if e.ItemID == itemID {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *stubHistoryRepo) CountByItem(_ context.Context, itemID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, e := range r.entries {
		if e.ItemID == itemID {
			n++
		}
	}
	return n, nil
}

func (r *stubHistoryRepo) DeleteByItemTx(_ *gorm.DB, itemID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.ItemID != itemID {
			kept = append(kept, e)
		}
	}
	r.entries = kept
	return nil
}

// ── Notification repository ──────────────────────────────────────────────────

type stubNotifRepo struct {
	mu     sync.Mutex
	notifs map[uuid.UUID]*model.Notification
}

func newStubNotifRepo() *stubNotifRepo {
	return &stubNotifRepo{notifs: make(map[uuid.UUID]*model.Notification)}
}

func (r *stubNotifRepo) Create(_ context.Context, n *model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	n.CreatedAt = time.Now()
	cp := *n
	r.notifs[n.ID] = &cp
	return nil
}

func (r *stubNotifRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notifs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *n
	return &cp, nil
}

func (r *stubNotifRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []model.Notification
	for _, n := range r.notifs {
		if n.RecipientUserID == userID {
			result = append(result, *n)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *stubNotifRepo) MarkRead(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notifs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	n.IsRead = true
	return nil
}

func (r *stubNotifRepo) MarkAllRead(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifs {
		if n.RecipientUserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (r *stubNotifRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.notifs, id)
	return nil
}

func (r *stubNotifRepo) DeleteByItemTx(_ *gorm.DB, itemID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, n := range r.notifs {
		if n.ItemID != nil && *n.ItemID == itemID {
			delete(r.notifs, id)
		}
	}
	return nil
}

// ── User repository ──────────────────────────────────────────────────────────

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username && u.Active {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, mail string) (*model.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, mail) && u.Active {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range r.users {
		if u.Active {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (r *stubUserRepo) ListAdmins(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range r.users {
		if u.Role == model.RoleAdmin && u.Active {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *stubUserRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Active = false
	return nil
}

// ── Catalog repositories ─────────────────────────────────────────────────────

type stubCategoryRepo struct {
	categories map[uuid.UUID]*model.Category
	itemCount  map[uuid.UUID]int64
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{
		categories: make(map[uuid.UUID]*model.Category),
		itemCount:  make(map[uuid.UUID]int64),
	}
}

func (r *stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *stubCategoryRepo) List(_ context.Context) ([]model.Category, error) {
	var result []model.Category
	for _, c := range r.categories {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubCategoryRepo) FindByName(_ context.Context, name string) (*model.Category, error) {
	for _, c := range r.categories {
		if strings.EqualFold(c.Name, name) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoryRepo) Update(_ context.Context, c *model.Category) error {
	if _, ok := r.categories[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.categories, id)
	return nil
}

func (r *stubCategoryRepo) CountItems(_ context.Context, id uuid.UUID) (int64, error) {
	return r.itemCount[id], nil
}

type stubLocationRepo struct {
	locations map[uuid.UUID]*model.Location
	itemCount map[uuid.UUID]int64
}

func newStubLocationRepo() *stubLocationRepo {
	return &stubLocationRepo{
		locations: make(map[uuid.UUID]*model.Location),
		itemCount: make(map[uuid.UUID]int64),
	}
}

func (r *stubLocationRepo) Create(_ context.Context, l *model.Location) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	cp := *l
	r.locations[l.ID] = &cp
	return nil
}

func (r *stubLocationRepo) List(_ context.Context) ([]model.Location, error) {
	var result []model.Location
	for _, l := range r.locations {
		result = append(result, *l)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *stubLocationRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Location, error) {
	l, ok := r.locations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *stubLocationRepo) FindByName(_ context.Context, name string) (*model.Location, error) {
	for _, l := range r.locations {
		if strings.EqualFold(l.Name, name) {
			cp := *l
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubLocationRepo) Update(_ context.Context, l *model.Location) error {
	if _, ok := r.locations[l.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *l
	r.locations[l.ID] = &cp
	return nil
}

func (r *stubLocationRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.locations, id)
	return nil
}

func (r *stubLocationRepo) CountItems(_ context.Context, id uuid.UUID) (int64, error) {
	return r.itemCount[id], nil
}

type stubStatusRepo struct {
	statuses map[uuid.UUID]*model.Status
}

func newStubStatusRepo() *stubStatusRepo {
	return &stubStatusRepo{statuses: make(map[uuid.UUID]*model.Status)}
}

func (r *stubStatusRepo) List(_ context.Context) ([]model.Status, error) {
	var result []model.Status
	for _, st := range r.statuses {
		result = append(result, *st)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *stubStatusRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Status, error) {
	st, ok := r.statuses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *st
	return &cp, nil
}

func (r *stubStatusRepo) FindByName(_ context.Context, name string) (*model.Status, error) {
	for _, st := range r.statuses {
		if strings.EqualFold(st.Name, name) {
			cp := *st
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubStatusRepo) Create(_ context.Context, st *model.Status) error {
	if st.ID == uuid.Nil {
		st.ID = uuid.New()
	}
	cp := *st
	r.statuses[st.ID] = &cp
	return nil
}

// ── Fakes for the notification path ──────────────────────────────────────────

type fakeNotifier struct {
	mu    sync.Mutex
	calls []int // newStock per call
}

func (f *fakeNotifier) NotifyLowStock(_ context.Context, _ *model.Item, newStock int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, newStock)
	return nil
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeDispatcher struct {
	payloads []worker.LowStockEmailPayload
}

func (f *fakeDispatcher) EnqueueLowStockEmail(_ context.Context, p worker.LowStockEmailPayload) error {
	f.payloads = append(f.payloads, p)
	return nil
}
