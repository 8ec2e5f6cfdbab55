package service

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsdevblog/learnmarket/internal/domain"
	"github.com/fsdevblog/learnmarket/internal/repository/repoargs"
	"github.com/fsdevblog/learnmarket/pkg/uow"
)

// memStore keeps all tables in memory. Do works on a snapshot that is restored when fn fails.
type memStore struct {
	mu sync.Mutex

	users         map[int64]domain.User
	courses       map[int64]domain.Course
	lectures      map[int64]domain.Lecture
	payments      []domain.Payment
	subscriptions map[int64][]int64
	outbox        []domain.OutboxEvent
	seq           int64
}

func newMemStore() *memStore {
	return &memStore{
		users:         make(map[int64]domain.User),
		courses:       make(map[int64]domain.Course),
		lectures:      make(map[int64]domain.Lecture),
		subscriptions: make(map[int64][]int64),
	}
}

type memSnapshot struct {
	users         map[int64]domain.User
	courses       map[int64]domain.Course
	lectures      map[int64]domain.Lecture
	payments      []domain.Payment
	subscriptions map[int64][]int64
	outbox        []domain.OutboxEvent
	seq           int64
}

func (m *memStore) snapshot() memSnapshot {
	subs := make(map[int64][]int64, len(m.subscriptions))
	for k, v := range m.subscriptions {
		subs[k] = slices.Clone(v)
	}
	return memSnapshot{
		users:         maps.Clone(m.users),
		courses:       maps.Clone(m.courses),
		lectures:      maps.Clone(m.lectures),
		payments:      slices.Clone(m.payments),
		subscriptions: subs,
		outbox:        slices.Clone(m.outbox),
		seq:           m.seq,
	}
}

func (m *memStore) restore(s memSnapshot) {
	m.users = s.users
	m.courses = s.courses
	m.lectures = s.lectures
	m.payments = s.payments
	m.subscriptions = s.subscriptions
	m.outbox = s.outbox
	m.seq = s.seq
}

func (m *memStore) nextID() int64 {
	m.seq++
	return m.seq
}

func (m *memStore) addUser(name string, role domain.RoleType) domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := domain.User{
		ID:        m.nextID(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Name:      name,
		Email:     strings.ToLower(name) + "@example.com",
		Role:      role,
	}
	m.users[u.ID] = u
	return u
}

func (m *memStore) addCourse(course domain.Course) domain.Course {
	m.mu.Lock()
	defer m.mu.Unlock()
	course.ID = m.nextID()
	m.courses[course.ID] = course
	return course
}

func (m *memStore) addLecture(courseID int64, title string) domain.Lecture {
	m.mu.Lock()
	defer m.mu.Unlock()
	l := domain.Lecture{ID: m.nextID(), CourseID: courseID, Title: title, CreatedAt: time.Now()}
	m.lectures[l.ID] = l
	return l
}

// memUOW implements uow.UOW and uow.TX over memStore. Transactions are serialized.
type memUOW struct {
	store *memStore
	txMu  sync.Mutex
}

func newMemUOW(store *memStore) *memUOW {
	return &memUOW{store: store}
}

func (u *memUOW) Register(uow.RepositoryName, uow.RepositoryFactory) error {
	return nil
}

func (u *memUOW) Do(ctx context.Context, fn func(context.Context, uow.TX) error) error {
	u.txMu.Lock()
	defer u.txMu.Unlock()

	u.store.mu.Lock()
	snap := u.store.snapshot()
	u.store.mu.Unlock()

	if err := fn(ctx, u); err != nil {
		u.store.mu.Lock()
		u.store.restore(snap)
		u.store.mu.Unlock()
		return err
	}
	return nil
}

func (u *memUOW) GetRepository(name uow.RepositoryName) (uow.Repository, error) {
	return u.Get(name)
}

func (u *memUOW) Get(name uow.RepositoryName) (uow.Repository, error) {
	switch repoargs.RepositoryName(name) {
	case repoargs.UserRepoName:
		return &memUserRepo{u.store}, nil
	case repoargs.CourseRepoName:
		return &memCourseRepo{u.store}, nil
	case repoargs.LectureRepoName:
		return &memLectureRepo{u.store}, nil
	case repoargs.PaymentRepoName:
		return &memPaymentRepo{u.store}, nil
	case repoargs.SubscriptionRepoName:
		return &memSubscriptionRepo{u.store}, nil
	case repoargs.OutboxRepoName:
		return &memOutboxRepo{u.store}, nil
	}
	return nil, uow.ErrRepositoryNotRegistered
}

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Count(context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.users)), nil
}

func (r *memUserRepo) CreateUser(_ context.Context, args repoargs.CreateUser) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, args.Email) {
			return nil, domain.ErrDuplicateKey
		}
	}
	u := domain.User{
		ID:        r.s.nextID(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Name:      args.Name,
		Email:     args.Email,
		Password:  args.Password,
		Role:      args.Role,
	}
	r.s.users[u.ID] = u
	return &u, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	u.Subscription = slices.Clone(r.s.subscriptions[id])
	return &u, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			u.Subscription = slices.Clone(r.s.subscriptions[u.ID])
			return &u, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

type memCourseRepo struct{ s *memStore }

func (r *memCourseRepo) Count(context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.courses)), nil
}

func (r *memCourseRepo) FindByID(_ context.Context, id int64) (*domain.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.courses[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return &c, nil
}

func (r *memCourseRepo) GetByIDs(_ context.Context, ids []int64) ([]domain.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res := make([]domain.Course, 0, len(ids))
	for _, id := range ids {
		if c, ok := r.s.courses[id]; ok {
			res = append(res, c)
		}
	}
	return res, nil
}

type memLectureRepo struct{ s *memStore }

func (r *memLectureRepo) Count(context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.lectures)), nil
}

func (r *memLectureRepo) FindByID(_ context.Context, id int64) (*domain.Lecture, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.lectures[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return &l, nil
}

func (r *memLectureRepo) GetByCourseID(_ context.Context, courseID int64) ([]domain.Lecture, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var res []domain.Lecture
	for _, l := range r.s.lectures {
		if l.CourseID == courseID {
			res = append(res, l)
		}
	}
	slices.SortFunc(res, func(a, b domain.Lecture) int { return int(a.ID - b.ID) })
	return res, nil
}

type memPaymentRepo struct{ s *memStore }

func (r *memPaymentRepo) CreateIfNotExists(
	_ context.Context,
	args repoargs.CreatePayment,
) (*domain.Payment, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.payments {
		if p.ProviderPaymentID == args.ProviderPaymentID {
			return nil, false, nil
		}
	}
	p := domain.Payment{
		ID:                r.s.nextID(),
		CreatedAt:         time.Now(),
		UserID:            args.UserID,
		CourseID:          args.CourseID,
		ProviderOrderID:   args.ProviderOrderID,
		ProviderPaymentID: args.ProviderPaymentID,
		ProviderSignature: args.ProviderSignature,
	}
	r.s.payments = append(r.s.payments, p)
	return &p, true, nil
}

func (r *memPaymentRepo) FindByProviderPaymentID(_ context.Context, paymentID string) (*domain.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.payments {
		if p.ProviderPaymentID == paymentID {
			return &p, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

type memSubscriptionRepo struct{ s *memStore }

func (r *memSubscriptionRepo) Add(_ context.Context, userID, courseID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[userID]; !ok {
		return false, domain.ErrRecordNotFound
	}
	if slices.Contains(r.s.subscriptions[userID], courseID) {
		return false, nil
	}
	r.s.subscriptions[userID] = append(r.s.subscriptions[userID], courseID)
	return true, nil
}

type memOutboxRepo struct{ s *memStore }

func (r *memOutboxRepo) Create(_ context.Context, args repoargs.CreateOutboxEvent) (*domain.OutboxEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e := domain.OutboxEvent{
		ID:        r.s.nextID(),
		CreatedAt: time.Now(),
		EventType: args.EventType,
		Payload:   slices.Clone(args.Payload),
	}
	r.s.outbox = append(r.s.outbox, e)
	return &e, nil
}

func (r *memOutboxRepo) ClaimPending(
	_ context.Context,
	limit, maxAttempts int32,
	lease time.Duration,
) ([]domain.OutboxEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	lockedUntil := now.Add(lease)
	var res []domain.OutboxEvent
	for i := range r.s.outbox {
		e := &r.s.outbox[i]
		if int32(len(res)) >= limit { //nolint:gosec
			break
		}
		if e.SentAt != nil || e.Attempts >= maxAttempts || (e.LockedUntil != nil && e.LockedUntil.After(now)) {
			continue
		}
		e.LockedUntil = &lockedUntil
		res = append(res, *e)
	}
	return res, nil
}

func (r *memOutboxRepo) MarkSent(_ context.Context, ids []int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	for i := range r.s.outbox {
		if slices.Contains(ids, r.s.outbox[i].ID) {
			r.s.outbox[i].SentAt = &now
		}
	}
	return nil
}

func (r *memOutboxRepo) IncrementAttempts(_ context.Context, ids []int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.outbox {
		if slices.Contains(ids, r.s.outbox[i].ID) {
			r.s.outbox[i].Attempts++
			r.s.outbox[i].LockedUntil = nil
		}
	}
	return nil
}
